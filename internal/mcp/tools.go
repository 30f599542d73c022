// Package mcp exposes the forge pipeline as MCP tools over stdio.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/fateforge/internal/forge/domain"
	"github.com/louisbranch/fateforge/internal/forge/gate"
	"github.com/louisbranch/fateforge/internal/forge/hints"
	"github.com/louisbranch/fateforge/internal/forge/service"
)

// Forge is the slice of the generation service the MCP tools use.
type Forge interface {
	GenerateSkeleton(ctx context.Context, in service.SkeletonInput) (service.Skeleton, error)
	GenerateRemaining(ctx context.Context, in service.RemainingInput) (domain.Sheet, error)
	GenerateHints(ctx context.Context, in service.HintsInput) (hints.Response, error)
}

// SkeletonInput is the MCP tool input for skeleton generation.
type SkeletonInput struct {
	Idea      string   `json:"idea" jsonschema:"free-text character idea to build from"`
	Setting   string   `json:"setting,omitempty" jsonschema:"optional campaign setting"`
	SkillList []string `json:"skill_list,omitempty" jsonschema:"optional allowed skill names; defaults to the Fate Core list"`
}

// RemainingInput is the MCP tool input for remaining-content generation.
type RemainingInput struct {
	Character      domain.Sheet `json:"character" jsonschema:"the current character sheet"`
	Mode           string       `json:"mode" jsonschema:"section to generate: aspects, stunts, single_stunt, skills, high_concept, or trouble"`
	AllowOverwrite bool         `json:"allow_overwrite,omitempty" jsonschema:"allow replacing user-edited entries"`
	Count          int          `json:"count,omitempty" jsonschema:"how many entries to generate"`
	TargetSkillID  string       `json:"target_skill_id,omitempty" jsonschema:"skill the generated stunts should build on"`
	ActionType     string       `json:"action_type,omitempty" jsonschema:"stunt action type: overcome, create_advantage, attack, or defend"`
	Note           string       `json:"note,omitempty" jsonschema:"free-text guidance for the generator"`
}

// HintsInput is the MCP tool input for GM hint generation.
type HintsInput struct {
	Character  domain.Sheet `json:"character" jsonschema:"the current character sheet"`
	TargetType string       `json:"target_type" jsonschema:"hint target category: aspect or stunt"`
	TargetID   string       `json:"target_id" jsonschema:"id of the targeted aspect or stunt"`
	Tone       string       `json:"tone,omitempty" jsonschema:"optional tone: neutral or cinematic"`
}

// SkeletonTool defines the MCP tool schema for skeleton generation.
func SkeletonTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "fate_generate_skeleton",
		Description: "Generates a Fate Core character skeleton (high concept, trouble, ranked skills) from an idea",
	}
}

// RemainingTool defines the MCP tool schema for remaining-content generation.
func RemainingTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "fate_generate_remaining",
		Description: "Generates one section of a Fate Core character sheet, respecting locked and user-edited entries",
	}
}

// HintsTool defines the MCP tool schema for GM hint generation.
func HintsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "fate_gm_hints",
		Description: "Produces GM and player usage hints for one aspect or stunt on a Fate Core sheet",
	}
}

// SkeletonHandler runs the skeleton pipeline.
func SkeletonHandler(forge Forge) mcp.ToolHandlerFor[SkeletonInput, service.Skeleton] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SkeletonInput) (*mcp.CallToolResult, service.Skeleton, error) {
		out, err := forge.GenerateSkeleton(ctx, service.SkeletonInput{
			Idea:      input.Idea,
			Setting:   input.Setting,
			SkillList: input.SkillList,
		})
		if err != nil {
			return nil, service.Skeleton{}, fmt.Errorf("generate skeleton: %w", err)
		}
		return nil, out, nil
	}
}

// RemainingHandler runs the remaining-content pipeline.
func RemainingHandler(forge Forge) mcp.ToolHandlerFor[RemainingInput, domain.Sheet] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RemainingInput) (*mcp.CallToolResult, domain.Sheet, error) {
		out, err := forge.GenerateRemaining(ctx, service.RemainingInput{
			Sheet:          input.Character,
			Mode:           gate.Mode(input.Mode),
			AllowOverwrite: input.AllowOverwrite,
			Count:          input.Count,
			TargetSkillID:  input.TargetSkillID,
			ActionType:     input.ActionType,
			Note:           input.Note,
		})
		if err != nil {
			return nil, domain.Sheet{}, fmt.Errorf("generate remaining: %w", err)
		}
		return nil, out, nil
	}
}

// HintsHandler runs the GM hints pipeline.
func HintsHandler(forge Forge) mcp.ToolHandlerFor[HintsInput, hints.Response] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input HintsInput) (*mcp.CallToolResult, hints.Response, error) {
		out, err := forge.GenerateHints(ctx, service.HintsInput{
			Sheet:      input.Character,
			TargetType: input.TargetType,
			TargetID:   input.TargetID,
			Tone:       input.Tone,
		})
		if err != nil {
			return nil, hints.Response{}, fmt.Errorf("generate hints: %w", err)
		}
		return nil, out, nil
	}
}
