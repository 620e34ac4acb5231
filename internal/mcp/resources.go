// ABOUTME: MCP resource definitions
// ABOUTME: Provides a read-only JSON view of the marker collection

package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MarkersResourceURI addresses the whole marker collection.
const MarkersResourceURI = "geomark://markers"

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		Name:        MarkersResourceURI,
		Description: "All saved markers with coordinates, notes, and photos",
		URI:         MarkersResourceURI,
		MIMEType:    "application/json",
	}, s.handleMarkersResource)
}

func (s *Server) handleMarkersResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	list := s.markers.List()
	output := ListMarkersOutput{
		Markers: list,
		Count:   len(list),
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      MarkersResourceURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		},
	}, nil
}
