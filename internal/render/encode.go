package render

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/chored-dev/chored/internal/domain"
	"github.com/chored-dev/chored/internal/errors"
)

// YAMLHeader starts every generated yaml file.
const YAMLHeader = "# NOTE: This file is generated by chored. Do not edit; run `chored run render`.\n"

// Encode serializes f for writing. Text and computed files are written
// verbatim; yaml files are marshalled from Data with two-space indentation.
func Encode(f domain.RenderedFile) ([]byte, error) {
	switch f.Kind {
	case domain.FileKindText, domain.FileKindComputed:
		return []byte(f.Content), nil
	case domain.FileKindYAML:
		var buf bytes.Buffer
		buf.WriteString(YAMLHeader)
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(f.Data); err != nil {
			return nil, fmt.Errorf("%w: marshal %s: %w", errors.ErrRenderFailed, f.Path, err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("%w: marshal %s: %w", errors.ErrRenderFailed, f.Path, err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %s has unknown kind %q", errors.ErrRenderFailed, f.Path, f.Kind)
	}
}
