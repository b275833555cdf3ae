package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/crhp-archive/internal/collections"
	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

type handlers struct {
	ports Ports
}

// lessonResponse is the JSON body of GET /api/lesson.
type lessonResponse struct {
	Title      string                          `json:"title"`
	Rationale  string                          `json:"rationale,omitempty"`
	Prompts    []string                        `json:"prompts,omitempty"`
	Collection string                          `json:"collection"`
	Generation uint64                          `json:"generation"`
	Phase      domain.Phase                    `json:"phase"`
	Terms      map[string]*domain.GlossaryTerm `json:"termDetails"`
	Clips      map[string]domain.ClipPair      `json:"clipDetails"`
}

// lesson runs the aggregation when nothing has been loaded yet or when
// ?refresh=true is passed, then returns the current view.
func (h *handlers) lesson(c *gin.Context) {
	state := h.ports.Lesson.State()
	if state.Phase() == domain.PhaseIdle || c.Query("refresh") == "true" {
		// The service is shared; a client hanging up must not cancel its run.
		state = h.ports.Lesson.Run(context.WithoutCancel(c.Request.Context()))
	}

	if state.Err != nil {
		writeError(c, state.Err)
		return
	}
	if state.View == nil {
		c.JSON(http.StatusAccepted, gin.H{"phase": state.Phase(), "generation": state.Generation})
		return
	}

	content := h.ports.Lesson.Content()
	c.JSON(http.StatusOK, lessonResponse{
		Title:      content.Title,
		Rationale:  content.Rationale,
		Prompts:    content.Prompts,
		Collection: state.Collection.String(),
		Generation: state.Generation,
		Phase:      state.Phase(),
		Terms:      state.View.Terms,
		Clips:      state.View.Clips,
	})
}

func (h *handlers) collection(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"active": h.ports.Archive.Collection(),
		"known":  collections.Known(),
	})
}

func (h *handlers) interview(c *gin.Context) {
	rec, err := h.ports.Archive.Interview(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *handlers) clip(c *gin.Context) {
	rec, err := h.ports.Archive.Clip(c.Request.Context(), c.Param("id"), c.Param("clipId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *handlers) term(c *gin.Context) {
	rec, err := h.ports.Archive.Term(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// writeError maps domain errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedType):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrContentUnavailable):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
