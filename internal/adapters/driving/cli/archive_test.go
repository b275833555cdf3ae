package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/crhp-archive/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

func TestInterviewGet(t *testing.T) {
	useRuntime(t, seededStore())

	out, err := execute(t, "interview", "get", "Little Rock Nine")

	require.NoError(t, err)
	assert.Contains(t, out, "Interview: little_rock_nine")
	assert.Contains(t, out, "Minnijean Brown Trickey")
	assert.Contains(t, out, "Student")
}

func TestInterviewGet_NotFound(t *testing.T) {
	useRuntime(t, memory.NewDocumentStore())

	_, err := execute(t, "interview", "get", "nobody")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInterviewGet_RequiresID(t *testing.T) {
	useRuntime(t, seededStore())

	_, err := execute(t, "interview", "get")

	assert.Error(t, err)
}

func TestClipGet_JSON(t *testing.T) {
	useRuntime(t, seededStore())

	out, err := execute(t, "clip", "get", "little_rock_nine", "segment_12", "--json")
	require.NoError(t, err)

	var clip domain.Clip
	require.NoError(t, json.Unmarshal([]byte(out), &clip))
	assert.Equal(t, "segment_12", clip.ID)
	assert.Equal(t, "little_rock_nine", clip.InterviewID)
	assert.Equal(t, "00:12:04", *clip.Timestamp)
}

func TestTermGet(t *testing.T) {
	useRuntime(t, seededStore())

	out, err := execute(t, "term", "get", "segregation")

	require.NoError(t, err)
	assert.Contains(t, out, "Term: segregation")
	assert.Contains(t, out, "Separation by race.")
}
