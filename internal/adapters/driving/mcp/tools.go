package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

// LessonPlanInput is the input schema for the lesson_plan tool.
type LessonPlanInput struct{}

// LessonPlanOutput is the output schema for the lesson_plan tool.
type LessonPlanOutput struct {
	Title      string                          `json:"title"`
	Collection string                          `json:"collection"`
	Terms      map[string]*domain.GlossaryTerm `json:"termDetails"`
	Clips      map[string]domain.ClipPair      `json:"clipDetails"`
}

// InterviewInput is the input schema for the get_interview tool.
type InterviewInput struct {
	InterviewID string `json:"interview_id" jsonschema:"logical interview id, e.g. Little_Rock_Nine"`
}

// ClipInput is the input schema for the get_clip tool.
type ClipInput struct {
	InterviewID string `json:"interview_id" jsonschema:"logical interview id"`
	ClipID      string `json:"clip_id" jsonschema:"clip id within the interview, e.g. segment_12"`
}

// TermInput is the input schema for the get_term tool.
type TermInput struct {
	TermID string `json:"term_id" jsonschema:"glossary term id, e.g. segregation"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	if s.ports.Lesson != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "lesson_plan",
			Description: "Build the configured lesson plan with its glossary terms and interview clips",
		}, s.handleLessonPlan)
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_interview",
		Description: "Read an oral history interview summary",
	}, s.handleInterview)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_clip",
		Description: "Read one clip of an interview",
	}, s.handleClip)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_term",
		Description: "Read a glossary term",
	}, s.handleTerm)
}

// handleLessonPlan runs the aggregation and returns the composite view.
func (s *Server) handleLessonPlan(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ LessonPlanInput,
) (*mcp.CallToolResult, LessonPlanOutput, error) {
	state := s.ports.Lesson.Run(ctx)
	if state.Err != nil {
		return nil, LessonPlanOutput{}, fmt.Errorf("lesson content unavailable: %w", state.Err)
	}
	if state.View == nil {
		return nil, LessonPlanOutput{}, domain.ErrContentUnavailable
	}

	return nil, LessonPlanOutput{
		Title:      s.ports.Lesson.Content().Title,
		Collection: state.Collection.String(),
		Terms:      state.View.Terms,
		Clips:      state.View.Clips,
	}, nil
}

// handleInterview handles the get_interview tool invocation.
func (s *Server) handleInterview(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input InterviewInput,
) (*mcp.CallToolResult, domain.Interview, error) {
	rec, err := s.ports.Archive.Interview(ctx, input.InterviewID)
	if err != nil {
		return nil, domain.Interview{}, err
	}
	return nil, *rec, nil
}

// handleClip handles the get_clip tool invocation.
func (s *Server) handleClip(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ClipInput,
) (*mcp.CallToolResult, domain.Clip, error) {
	rec, err := s.ports.Archive.Clip(ctx, input.InterviewID, input.ClipID)
	if err != nil {
		return nil, domain.Clip{}, err
	}
	return nil, *rec, nil
}

// handleTerm handles the get_term tool invocation.
func (s *Server) handleTerm(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TermInput,
) (*mcp.CallToolResult, domain.GlossaryTerm, error) {
	rec, err := s.ports.Archive.Term(ctx, input.TermID)
	if err != nil {
		return nil, domain.GlossaryTerm{}, err
	}
	return nil, *rec, nil
}
