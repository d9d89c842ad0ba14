package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrontMatter(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		raw      string
		wantFM   Frontmatter
		wantBody string
		wantErr  error
	}{
		"full record": {
			raw: "---\ntitle: Search API\nowner: Alice\nstatus: in-dev\nenvironment: dev\n---\n\n### 2025-03-01\nStarted.\n",
			wantFM: Frontmatter{
				Title: "Search API", Owner: "Alice", Status: StatusInDev, Environment: EnvDev,
			},
			wantBody: "\n### 2025-03-01\nStarted.\n",
		},
		"crlf line endings": {
			raw:      "---\r\ntitle: X\r\nowner: Bob\r\nstatus: deployed\r\n---\r\nBody\r\n",
			wantFM:   Frontmatter{Title: "X", Owner: "Bob", Status: StatusDeployed},
			wantBody: "Body\n",
		},
		"closing fence at eof": {
			raw:    "---\ntitle: X\n---",
			wantFM: Frontmatter{Title: "X"},
		},
		"empty block": {
			raw:      "---\n---\nBody\n",
			wantBody: "Body\n",
		},
		"unknown status kept verbatim": {
			raw:    "---\ntitle: X\nstatus: shipped\n---\n",
			wantFM: Frontmatter{Title: "X", Status: Status("shipped")},
		},
		"missing fence": {
			raw:     "title: X\n",
			wantErr: ErrMissingFrontMatter,
		},
		"unclosed fence": {
			raw:     "---\ntitle: X\n",
			wantErr: ErrMalformedFrontMatter,
		},
		"closing fence with trailing text": {
			raw:     "---\ntitle: X\n----\n",
			wantErr: ErrMalformedFrontMatter,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fm, body, err := ParseFrontMatter([]byte(tt.raw))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFM, fm)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestParseFrontMatter_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, _, err := ParseFrontMatter([]byte("---\ntitle: [unclosed\n---\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse frontmatter")
}

func TestFrontmatter_Validate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		fm         Frontmatter
		wantFields []string
	}{
		"valid": {
			fm: Frontmatter{Title: "X", Owner: "Alice", Status: StatusBlocked, Environment: EnvProd},
		},
		"environment optional": {
			fm: Frontmatter{Title: "X", Owner: "Alice", Status: StatusDeployed},
		},
		"missing title and owner": {
			fm:         Frontmatter{Status: StatusInDev},
			wantFields: []string{"title", "owner"},
		},
		"unknown status": {
			fm:         Frontmatter{Title: "X", Owner: "Alice", Status: "done"},
			wantFields: []string{"status"},
		},
		"unknown environment": {
			fm:         Frontmatter{Title: "X", Owner: "Alice", Status: StatusInDev, Environment: "staging"},
			wantFields: []string{"environment"},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			errs := tt.fm.Validate()
			var fields []string
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestFieldError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "title: required field is empty",
		FieldError{Field: "title", Message: "required field is empty"}.Error())
	assert.Equal(t, `status: must be one of: a b (got "c")`,
		FieldError{Field: "status", Value: "c", Message: "must be one of: a b"}.Error())
}
