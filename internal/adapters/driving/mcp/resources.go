package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for archive resources.
	uriScheme = "crhp://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	if s.ports.Lesson != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "lesson",
			Name:        "lesson",
			Description: "The configured lesson: title, rationale, prompts, terms and sources",
			MIMEType:    "application/json",
		}, s.handleLessonResource)
	}

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "interviews/{interviewId}",
		Name:        "interview",
		Description: "Summary of one interview in the active collection",
		MIMEType:    "application/json",
	}, s.handleInterviewResource)
}

// handleLessonResource returns the lesson content descriptor.
func (s *Server) handleLessonResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Lesson.Content())
}

// handleInterviewResource returns one interview record.
func (s *Server) handleInterviewResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// crhp://interviews/{interviewId}
	interviewID := extractInterviewID(req.Params.URI)
	if interviewID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	rec, err := s.ports.Archive.Interview(ctx, interviewID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("reading interview: %w", err)
	}

	return jsonResource(req.Params.URI, rec)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractInterviewID extracts the interview ID from a URI like crhp://interviews/{interviewId}.
func extractInterviewID(uri string) string {
	const prefix = uriScheme + "interviews/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
