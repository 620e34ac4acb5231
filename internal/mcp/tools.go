// ABOUTME: MCP tool definitions and handlers
// ABOUTME: Provides marker CRUD, relocation, and sharing for AI agents

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/harper/geomark/internal/form"
	"github.com/harper/geomark/internal/models"
	"github.com/harper/geomark/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	s.registerListMarkersTool()
	s.registerGetMarkerTool()
	s.registerCreateMarkerTool()
	s.registerUpdateMarkerTool()
	s.registerRelocateMarkerTool()
	s.registerDeleteMarkerTool()
	if s.variant.Features().Share {
		s.registerShareMarkerTool()
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	jsonBytes, _ := json.MarshalIndent(v, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}
}

var idProperty = map[string]interface{}{
	"type":        "string",
	"description": "Marker id, a unique id prefix, or the exact title",
}

// resolve looks a marker up by id, id prefix, or title.
func (s *Server) resolve(ref string) (*models.Marker, error) {
	m, err := s.markers.Find(ref)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("marker '%s' not found", ref)
	}
	if err != nil {
		return nil, fmt.Errorf("marker '%s': %w", ref, err)
	}
	return m, nil
}

// normalizeDate validates an optional date against the variant.
func (s *Server) normalizeDate(date *string) (*string, error) {
	if date == nil {
		return nil, nil
	}
	if !s.variant.Features().Date {
		return nil, fmt.Errorf("date: %w", form.ErrFieldDisabled)
	}
	parsed, err := models.ParseDate(*date)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// MarkerOutput wraps a single marker.
type MarkerOutput struct {
	Marker *models.Marker `json:"marker"`
}

// ListMarkersInput filters list_markers.
type ListMarkersInput struct {
	Query string `json:"query,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

// ListMarkersOutput defines output for list_markers and the markers resource.
type ListMarkersOutput struct {
	Markers []*models.Marker `json:"markers"`
	Count   int              `json:"count"`
}

func (s *Server) registerListMarkersTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_markers",
		Description: "List saved markers in creation order, optionally filtered by text in the title or observation.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Case-insensitive text to match in title or observation",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of markers to return (0 for all)",
				},
			},
		},
	}, s.handleListMarkers)
}

func (s *Server) handleListMarkers(_ context.Context, req *mcp.CallToolRequest, input ListMarkersInput) (*mcp.CallToolResult, ListMarkersOutput, error) {
	query := strings.ToLower(strings.TrimSpace(input.Query))

	out := make([]*models.Marker, 0)
	for _, m := range s.markers.List() {
		if query != "" &&
			!strings.Contains(strings.ToLower(m.Title), query) &&
			!strings.Contains(strings.ToLower(m.Observation), query) {
			continue
		}
		out = append(out, m)
		if input.Limit > 0 && len(out) >= input.Limit {
			break
		}
	}

	output := ListMarkersOutput{Markers: out, Count: len(out)}
	return jsonResult(output), output, nil
}

// GetMarkerInput defines input for get_marker.
type GetMarkerInput struct {
	ID string `json:"id"`
}

func (s *Server) registerGetMarkerTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_marker",
		Description: "Get one marker with all its fields.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": idProperty,
			},
			"required": []string{"id"},
		},
	}, s.handleGetMarker)
}

func (s *Server) handleGetMarker(_ context.Context, req *mcp.CallToolRequest, input GetMarkerInput) (*mcp.CallToolResult, MarkerOutput, error) {
	m, err := s.resolve(input.ID)
	if err != nil {
		return nil, MarkerOutput{}, err
	}
	output := MarkerOutput{Marker: m}
	return jsonResult(output), output, nil
}

// CreateMarkerInput defines input for create_marker.
type CreateMarkerInput struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Title       *string `json:"title,omitempty"`
	Observation *string `json:"observation,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Date        *string `json:"date,omitempty"`
}

func (s *Server) registerCreateMarkerTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "create_marker",
		Description: "Drop a new marker at a coordinate. A missing title becomes 'Point N'.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"latitude": map[string]interface{}{
					"type":        "number",
					"description": "Latitude coordinate (-90 to 90)",
				},
				"longitude": map[string]interface{}{
					"type":        "number",
					"description": "Longitude coordinate (-180 to 180)",
				},
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Optional title (e.g., 'Fox den')",
				},
				"observation": map[string]interface{}{
					"type":        "string",
					"description": "Optional free-text observation",
				},
				"image_url": map[string]interface{}{
					"type":        "string",
					"description": "Optional local image URI (file://...)",
				},
				"date": map[string]interface{}{
					"type":        "string",
					"description": "Optional observation date, YYYY-MM-DD or RFC3339 (wildwatch only)",
				},
			},
			"required": []string{"latitude", "longitude"},
		},
	}, s.handleCreateMarker)
}

func (s *Server) handleCreateMarker(ctx context.Context, req *mcp.CallToolRequest, input CreateMarkerInput) (*mcp.CallToolResult, MarkerOutput, error) {
	if err := models.ValidateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, MarkerOutput{}, err
	}
	if input.Title != nil && strings.TrimSpace(*input.Title) != "" {
		if err := models.ValidateTitle(*input.Title); err != nil {
			return nil, MarkerOutput{}, err
		}
	}
	date, err := s.normalizeDate(input.Date)
	if err != nil {
		return nil, MarkerOutput{}, err
	}

	var draft models.Draft
	if input.Title != nil {
		draft.Title = *input.Title
	}
	if input.Observation != nil {
		draft.Observation = *input.Observation
	}
	if input.ImageURL != nil {
		draft.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if date != nil {
		draft.Date = *date
	}

	loc := models.SelectedLocation{Latitude: input.Latitude, Longitude: input.Longitude}
	output := MarkerOutput{Marker: s.markers.Create(ctx, loc, draft)}
	return jsonResult(output), output, nil
}

// UpdateMarkerInput defines input for update_marker. Omitted fields are kept.
type UpdateMarkerInput struct {
	ID          string  `json:"id"`
	Title       *string `json:"title,omitempty"`
	Observation *string `json:"observation,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Date        *string `json:"date,omitempty"`
}

func (s *Server) registerUpdateMarkerTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "update_marker",
		Description: "Change a marker's title, observation, image, or date. Omitted fields are left as they are; an empty string clears an optional field.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": idProperty,
				"title": map[string]interface{}{
					"type":        "string",
					"description": "New title (cannot be blank)",
				},
				"observation": map[string]interface{}{
					"type":        "string",
					"description": "New observation",
				},
				"image_url": map[string]interface{}{
					"type":        "string",
					"description": "New local image URI",
				},
				"date": map[string]interface{}{
					"type":        "string",
					"description": "New date, YYYY-MM-DD or RFC3339 (wildwatch only)",
				},
			},
			"required": []string{"id"},
		},
	}, s.handleUpdateMarker)
}

func (s *Server) handleUpdateMarker(ctx context.Context, req *mcp.CallToolRequest, input UpdateMarkerInput) (*mcp.CallToolResult, MarkerOutput, error) {
	m, err := s.resolve(input.ID)
	if err != nil {
		return nil, MarkerOutput{}, err
	}
	if input.Title != nil {
		if err := models.ValidateTitle(*input.Title); err != nil {
			return nil, MarkerOutput{}, err
		}
	}
	date, err := s.normalizeDate(input.Date)
	if err != nil {
		return nil, MarkerOutput{}, err
	}

	patch := models.Patch{
		Title:       input.Title,
		Observation: input.Observation,
		ImageURL:    input.ImageURL,
		Date:        date,
	}
	if !s.markers.Update(ctx, m.ID, patch) {
		return nil, MarkerOutput{}, fmt.Errorf("marker '%s' not found", input.ID)
	}

	updated, _ := s.markers.Get(m.ID)
	output := MarkerOutput{Marker: updated}
	return jsonResult(output), output, nil
}

// RelocateMarkerInput defines input for relocate_marker.
type RelocateMarkerInput struct {
	ID        string  `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (s *Server) registerRelocateMarkerTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "relocate_marker",
		Description: "Move a marker to new coordinates. Other fields are unchanged.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": idProperty,
				"latitude": map[string]interface{}{
					"type":        "number",
					"description": "New latitude (-90 to 90)",
				},
				"longitude": map[string]interface{}{
					"type":        "number",
					"description": "New longitude (-180 to 180)",
				},
			},
			"required": []string{"id", "latitude", "longitude"},
		},
	}, s.handleRelocateMarker)
}

func (s *Server) handleRelocateMarker(ctx context.Context, req *mcp.CallToolRequest, input RelocateMarkerInput) (*mcp.CallToolResult, MarkerOutput, error) {
	if err := models.ValidateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, MarkerOutput{}, err
	}
	m, err := s.resolve(input.ID)
	if err != nil {
		return nil, MarkerOutput{}, err
	}
	if !s.markers.Relocate(ctx, m.ID, input.Latitude, input.Longitude) {
		return nil, MarkerOutput{}, fmt.Errorf("marker '%s' not found", input.ID)
	}

	moved, _ := s.markers.Get(m.ID)
	output := MarkerOutput{Marker: moved}
	return jsonResult(output), output, nil
}

// DeleteMarkerInput defines input for delete_marker.
type DeleteMarkerInput struct {
	ID string `json:"id"`
}

// DeleteMarkerOutput defines output for delete_marker.
type DeleteMarkerOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) registerDeleteMarkerTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "delete_marker",
		Description: "Delete a marker. This cannot be undone.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": idProperty,
			},
			"required": []string{"id"},
		},
	}, s.handleDeleteMarker)
}

func (s *Server) handleDeleteMarker(ctx context.Context, req *mcp.CallToolRequest, input DeleteMarkerInput) (*mcp.CallToolResult, DeleteMarkerOutput, error) {
	m, err := s.resolve(input.ID)
	if err != nil {
		return nil, DeleteMarkerOutput{}, err
	}
	s.markers.Delete(ctx, m.ID)

	output := DeleteMarkerOutput{
		Success: true,
		Message: fmt.Sprintf("Deleted '%s'", m.Title),
	}
	return jsonResult(output), output, nil
}

// ShareMarkerInput defines input for share_marker.
type ShareMarkerInput struct {
	ID string `json:"id"`
}

// ShareMarkerOutput defines output for share_marker.
type ShareMarkerOutput struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (s *Server) registerShareMarkerTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "share_marker",
		Description: "Build the plain-text share message for an observation.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": idProperty,
			},
			"required": []string{"id"},
		},
	}, s.handleShareMarker)
}

func (s *Server) handleShareMarker(_ context.Context, req *mcp.CallToolRequest, input ShareMarkerInput) (*mcp.CallToolResult, ShareMarkerOutput, error) {
	if !s.variant.Features().Share {
		return nil, ShareMarkerOutput{}, fmt.Errorf("share: %w", form.ErrFieldDisabled)
	}
	m, err := s.resolve(input.ID)
	if err != nil {
		return nil, ShareMarkerOutput{}, err
	}

	msg := form.ShareMessage(m.Draft(), m.Location())
	output := ShareMarkerOutput{Title: msg.Title, Message: msg.Body}
	return jsonResult(output), output, nil
}
