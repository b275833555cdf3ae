package file

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

//go:embed lessons/default.toml
var defaultLesson []byte

// DefaultLesson returns the lesson descriptor shipped with the binary.
func DefaultLesson() (domain.LessonContent, error) {
	return decodeLesson(defaultLesson, ".toml")
}

// LoadLesson reads and validates a lesson descriptor from path.
// The format is chosen by extension: .toml, .yaml or .yml.
// An empty path returns the embedded default.
func LoadLesson(path string) (domain.LessonContent, error) {
	if path == "" {
		return DefaultLesson()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.LessonContent{}, fmt.Errorf("read lesson %s: %w", path, err)
	}

	lesson, err := decodeLesson(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return domain.LessonContent{}, fmt.Errorf("%s: %w", path, err)
	}
	return lesson, nil
}

func decodeLesson(data []byte, ext string) (domain.LessonContent, error) {
	var lesson domain.LessonContent

	switch ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&lesson); err != nil {
			return domain.LessonContent{}, fmt.Errorf("decode lesson: %w: %v", domain.ErrInvalidLesson, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&lesson); err != nil {
			return domain.LessonContent{}, fmt.Errorf("decode lesson: %w: %v", domain.ErrInvalidLesson, err)
		}
	default:
		return domain.LessonContent{}, fmt.Errorf("lesson format %q: %w", ext, domain.ErrUnsupportedType)
	}

	if err := lesson.Validate(); err != nil {
		return domain.LessonContent{}, err
	}
	return lesson, nil
}
