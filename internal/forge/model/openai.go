package model

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/louisbranch/fateforge/internal/platform/errors"
)

// OpenAIConfig configures the chat-completion collaborator.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
}

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAICollaborator generates sheet content through a chat-completion
// API in JSON mode.
type OpenAICollaborator struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAICollaborator builds a collaborator from config.
func NewOpenAICollaborator(cfg OpenAIConfig) (*OpenAICollaborator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.7
	}
	return &OpenAICollaborator{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		temperature: temperature,
	}, nil
}

const skeletonSystemPrompt = `You design Fate Core characters. Given a character idea, a setting, and an allowed skill list, respond with JSON: {"high_concept": string, "trouble": string, "ranked_skills": [string]}. The high concept and trouble are each one short sentence without labels, dice, or modifiers. ranked_skills orders every allowed skill from strongest to weakest, using only names from the allowed list.`

const remainingSystemPrompt = `You fill in Fate Core character sheets. Given the current sheet and a generation mode, respond with JSON: {"aspects": [{"id"?, "name"?, "description"?}], "skills": [{"id"?, "name"?, "rank"?}], "stunts": [{"id"?, "name"?, "description"?}], "notes"?: string}. Only include sections the mode asks for. Aspect descriptions are one sentence under 140 characters. Stunt descriptions are one sentence under 200 characters and may reference mechanics like +2 bonuses. Never change entities the prompt marks as locked.`

const hintsSystemPrompt = `You are a Fate Core GM assistant. Given a character sheet and a target aspect or stunt, respond with JSON: {"hints": [{"type", "title", "narrative", "mechanics"}], "notes"?: string}. For an aspect use types invoke, compel, create_advantage, or player_invoke. For a stunt produce exactly three hints typed trigger, edge_case, and synergy.`

// Skeleton implements Collaborator.
func (c *OpenAICollaborator) Skeleton(ctx context.Context, req SkeletonRequest) (SkeletonPrediction, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Idea: %s\n", req.Idea)
	if req.Setting != "" {
		fmt.Fprintf(&sb, "Setting: %s\n", req.Setting)
	}
	fmt.Fprintf(&sb, "Allowed skills: %s\n", strings.Join(req.SkillList, ", "))
	if req.Feedback != "" {
		fmt.Fprintf(&sb, "Previous attempt was rejected: %s\n", req.Feedback)
	}

	var out SkeletonPrediction
	if err := c.complete(ctx, skeletonSystemPrompt, sb.String(), &out); err != nil {
		return SkeletonPrediction{}, err
	}
	return out, nil
}

// Remaining implements Collaborator.
func (c *OpenAICollaborator) Remaining(ctx context.Context, req RemainingRequest) (RemainingPrediction, error) {
	sheetJSON, err := json.Marshal(req.Sheet)
	if err != nil {
		return RemainingPrediction{}, fmt.Errorf("marshal sheet: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Mode: %s\n", req.Mode)
	fmt.Fprintf(&sb, "Sheet: %s\n", sheetJSON)
	if req.Count > 0 {
		fmt.Fprintf(&sb, "Requested count: %d\n", req.Count)
	}
	if req.TargetSkillName != "" {
		fmt.Fprintf(&sb, "Target skill: %s\n", req.TargetSkillName)
	}
	if req.ActionType != "" {
		fmt.Fprintf(&sb, "Action type: %s\n", req.ActionType)
	}
	if req.Mode == "aspects" {
		fmt.Fprintf(&sb, "Aspect slots left: %d\n", req.AspectSlotsLeft)
	}
	if len(req.SkillBank) > 0 {
		fmt.Fprintf(&sb, "Skill bank: %s\n", strings.Join(req.SkillBank, ", "))
	}
	if req.Note != "" {
		fmt.Fprintf(&sb, "User note: %s\n", req.Note)
	}
	if req.Feedback != "" {
		fmt.Fprintf(&sb, "Previous attempt was rejected: %s\n", req.Feedback)
	}

	var out RemainingPrediction
	if err := c.complete(ctx, remainingSystemPrompt, sb.String(), &out); err != nil {
		return RemainingPrediction{}, err
	}
	return out, nil
}

// Hints implements Collaborator.
func (c *OpenAICollaborator) Hints(ctx context.Context, req HintsRequest) (HintsPrediction, error) {
	sheetJSON, err := json.Marshal(req.Sheet)
	if err != nil {
		return HintsPrediction{}, fmt.Errorf("marshal sheet: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Target: %s %s\n", req.TargetType, req.TargetID)
	if req.Tone != "" {
		fmt.Fprintf(&sb, "Tone: %s\n", req.Tone)
	}
	fmt.Fprintf(&sb, "Sheet: %s\n", sheetJSON)
	if req.Feedback != "" {
		fmt.Fprintf(&sb, "Previous attempt was rejected: %s\n", req.Feedback)
	}

	var out HintsPrediction
	if err := c.complete(ctx, hintsSystemPrompt, sb.String(), &out); err != nil {
		return HintsPrediction{}, err
	}
	return out, nil
}

func (c *OpenAICollaborator) complete(ctx context.Context, system, user string, target any) error {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return errors.Wrap(errors.CodeForgeCollaboratorFailed, "chat completion failed", err)
	}
	if len(resp.Choices) == 0 {
		return errors.New(errors.CodeForgeCollaboratorFailed, "chat completion returned no choices")
	}

	content := resp.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), target); err != nil {
		return errors.Wrap(errors.CodeForgeCollaboratorFailed, "decode chat completion payload", err)
	}
	return nil
}
