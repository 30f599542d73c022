package mcp

import (
	"context"
	stderrors "errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "fateforge"
	serverVersion = "0.1.0"
)

// NewServer builds an MCP server with the fate generation tools
// registered.
func NewServer(forge Forge) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcp.AddTool(server, SkeletonTool(), SkeletonHandler(forge))
	mcp.AddTool(server, RemainingTool(), RemainingHandler(forge))
	mcp.AddTool(server, HintsTool(), HintsHandler(forge))
	return server
}

// Run serves MCP over stdio until the context is canceled.
func Run(ctx context.Context, forge Forge) error {
	err := NewServer(forge).Run(ctx, &mcp.StdioTransport{})
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
