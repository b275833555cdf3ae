package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/crhp-archive/internal/core/domain"
	"github.com/custodia-labs/crhp-archive/internal/core/services"
)

func TestCollectionShow(t *testing.T) {
	useRuntime(t, seededStore())

	out, err := execute(t, "collection", "show")

	require.NoError(t, err)
	assert.Equal(t, "interviewsV2", strings.TrimSpace(out))
}

func TestCollectionList(t *testing.T) {
	out, err := execute(t, "collection", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "interviewSummaries")
	assert.Contains(t, out, "interviewsV2")
	assert.Contains(t, out, "clips=subSummaries")
}

func TestCollectionNormalize(t *testing.T) {
	useRuntime(t, seededStore())

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"active collection", []string{"Fannie Lou Hamer"}, "fannie_lou_hamer"},
		{"legacy keeps case", []string{"Fannie Lou Hamer", "--collection", "interviewSummaries"}, "Fannie Lou Hamer"},
		{"idempotent", []string{"fannie_lou_hamer"}, "fannie_lou_hamer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"collection", "normalize"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}

func TestCollectionNormalize_Unknown(t *testing.T) {
	_, err := execute(t, "collection", "normalize", "x", "--collection", "interviewsV9")

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestCollectionUse(t *testing.T) {
	cfg := useRuntime(t, seededStore())

	out, err := execute(t, "collection", "use", "interviewSummaries")

	require.NoError(t, err)
	assert.Contains(t, out, "archive.collection = interviewSummaries")
	assert.NotContains(t, out, "takes precedence")
	assert.Equal(t, "interviewSummaries", cfg.GetString(services.ConfigKeyCollection))
}

func TestCollectionUse_EnvOverride(t *testing.T) {
	useRuntime(t, seededStore())
	t.Setenv(services.EnvCollection, "interviewsV2")

	out, err := execute(t, "collection", "use", "interviewSummaries")

	require.NoError(t, err)
	assert.Contains(t, out, "takes precedence")
}

func TestCollectionUse_Unknown(t *testing.T) {
	cfg := useRuntime(t, seededStore())

	_, err := execute(t, "collection", "use", "interviewsV9")

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Equal(t, "interviewsV2", cfg.GetString(services.ConfigKeyCollection))
}
