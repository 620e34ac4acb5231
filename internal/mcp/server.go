// ABOUTME: MCP server initialization and configuration
// ABOUTME: Sets up server with marker tools and resources for AI agents

package mcp

import (
	"context"
	"fmt"

	"github.com/harper/geomark/internal/markers"
	"github.com/harper/geomark/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server around the marker collection.
type Server struct {
	mcp     *mcp.Server
	markers *markers.Manager
	variant models.Variant
}

// NewServer creates MCP server with all capabilities.
func NewServer(mgr *markers.Manager, variant models.Variant) (*Server, error) {
	if mgr == nil {
		return nil, fmt.Errorf("marker manager is required")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "geomark",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcp:     mcpServer,
		markers: mgr,
		variant: variant,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
