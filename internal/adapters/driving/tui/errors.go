package tui

import "errors"

// ErrMissingLessonService is returned when the lesson plan service is not provided.
var ErrMissingLessonService = errors.New("tui: lesson plan service is required")
