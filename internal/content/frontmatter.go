package content

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingFrontMatter indicates the document did not start with a YAML fence.
	ErrMissingFrontMatter = errors.New("content: missing frontmatter")
	// ErrMalformedFrontMatter indicates the YAML block was not closed.
	ErrMalformedFrontMatter = errors.New("content: malformed frontmatter")
)

var validate = validator.New()

// ParseFrontMatter splits a record into its metadata and body.
// The document must start with a `---` line and the block must be closed by
// another `---` line.
func ParseFrontMatter(raw []byte) (Frontmatter, string, error) {
	normalized := bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	normalized = bytes.TrimPrefix(normalized, []byte("\ufeff"))
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return Frontmatter{}, "", ErrMissingFrontMatter
	}

	rest := normalized[4:]
	var meta, body []byte
	switch {
	case bytes.HasPrefix(rest, []byte("---\n")):
		body = rest[4:]
	case bytes.Equal(rest, []byte("---")):
	default:
		parts := bytes.SplitN(rest, []byte("\n---"), 2)
		if len(parts) < 2 {
			return Frontmatter{}, "", ErrMalformedFrontMatter
		}
		after := parts[1]
		if len(after) > 0 && after[0] != '\n' {
			return Frontmatter{}, "", ErrMalformedFrontMatter
		}
		meta = parts[0]
		body = bytes.TrimPrefix(after, []byte("\n"))
	}

	var fm Frontmatter
	if err := yaml.Unmarshal(meta, &fm); err != nil {
		return Frontmatter{}, "", fmt.Errorf("content: parse frontmatter: %w", err)
	}

	return fm, string(body), nil
}

// FieldError describes one frontmatter field that failed validation.
type FieldError struct {
	Field   string
	Value   string
	Message string
}

func (e FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Message, e.Value)
}

// Validate checks the frontmatter of a record. Records with problems are still
// rendered; the result is used by diagnostics only.
func (fm Frontmatter) Validate() []FieldError {
	err := validate.Struct(fm)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "frontmatter", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   yamlName(fe.Field()),
			Value:   fmt.Sprint(fe.Value()),
			Message: describeTag(fe),
		})
	}
	return out
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field is empty"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

func yamlName(field string) string {
	switch field {
	case "Title":
		return "title"
	case "Owner":
		return "owner"
	case "Status":
		return "status"
	case "Environment":
		return "environment"
	default:
		return field
	}
}
