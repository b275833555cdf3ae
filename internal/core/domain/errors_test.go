package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrCollectionUnresolved", ErrCollectionUnresolved},
		{"ErrInvalidLesson", ErrInvalidLesson},
		{"ErrFetchFailed", ErrFetchFailed},
		{"ErrContentUnavailable", ErrContentUnavailable},
		{"ErrClosed", ErrClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.True(t, errors.Is(ErrNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrNotFound, ErrFetchFailed))
}

func TestFetchError(t *testing.T) {
	cause := errors.New("permission denied")
	ref := DocumentRef{Collection: "interviewsV2", ID: "little_rock_nine"}
	err := &FetchError{Ref: ref, Err: cause}

	assert.Equal(t, "fetching interviewsV2/little_rock_nine: permission denied", err.Error())
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, ErrContentUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFetchError_Wrapped(t *testing.T) {
	err := fmt.Errorf("lesson run: %w", &FetchError{Ref: DocumentRef{Collection: "glossary", ID: "x"}, Err: errors.New("io")})

	var fe *FetchError
	assert.True(t, errors.As(err, &fe))
	assert.Equal(t, "glossary/x", fe.Ref.Path())
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestLessonError(t *testing.T) {
	tests := []struct {
		name     string
		err      *LessonError
		expected string
	}{
		{"entry", &LessonError{Field: "terms", Index: 2, Reason: "is empty"}, "lesson terms[2]: is empty"},
		{"descriptor", &LessonError{Field: "content", Index: -1, Reason: "missing"}, "lesson content: missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrInvalidLesson)
		})
	}
}
