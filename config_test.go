package md2epub

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/alnah/go-md2epub/internal/assets"
)

func contextWithEpubTable(raw string) *RenderContext {
	ctx := &RenderContext{}
	if raw != "" {
		ctx.Config.Output = map[string]json.RawMessage{"epub": json.RawMessage(raw)}
	}
	return ctx
}

func TestConfigFromContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    Config
		wantErr bool
	}{
		{
			name: "no table keeps defaults",
			raw:  "",
			want: DefaultConfig(),
		},
		{
			name: "empty table keeps defaults",
			raw:  `{}`,
			want: DefaultConfig(),
		},
		{
			name: "partial table keeps other defaults",
			raw:  `{"curly-quotes": true}`,
			want: Config{UseDefaultCSS: true, CurlyQuotes: true, CodeTheme: assets.DefaultTheme},
		},
		{
			name: "full table",
			raw: `{
				"use-default-css": false,
				"curly-quotes": true,
				"no-section-label": true,
				"cover-image": "cover.png",
				"additional-css": ["a.css", "b.css"],
				"additional-resources": ["font.ttf"],
				"index-template": "page.hbs",
				"code-theme": "monokai"
			}`,
			want: Config{
				CurlyQuotes:         true,
				NoSectionLabel:      true,
				CoverImage:          "cover.png",
				AdditionalCSS:       []string{"a.css", "b.css"},
				AdditionalResources: []string{"font.ttf"},
				IndexTemplate:       "page.hbs",
				CodeTheme:           "monokai",
			},
		},
		{
			name:    "malformed table",
			raw:     `{"curly-quotes": "yes"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ConfigFromContext(contextWithEpubTable(tt.raw))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRenderContext) {
					t.Fatalf("ConfigFromContext() error = %v, want %v", err, ErrInvalidRenderContext)
				}
				return
			}
			if err != nil {
				t.Fatalf("ConfigFromContext() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ConfigFromContext() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestConfigTemplate(t *testing.T) {
	t.Parallel()

	t.Run("built-in when unset", func(t *testing.T) {
		t.Parallel()

		got, err := Config{}.Template("")
		if err != nil {
			t.Fatalf("Template() unexpected error: %v", err)
		}
		if got != assets.DefaultTemplate() {
			t.Error("Template() should return the built-in template")
		}
	})

	t.Run("file relative to root", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		want := "<html>{{{ body }}}</html>"
		if err := os.WriteFile(filepath.Join(root, "page.hbs"), []byte(want), 0o644); err != nil {
			t.Fatalf("WriteFile() unexpected error: %v", err)
		}

		got, err := Config{IndexTemplate: "page.hbs"}.Template(root)
		if err != nil {
			t.Fatalf("Template() unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("Template() = %q, want %q", got, want)
		}
	})

	t.Run("absolute path used as-is", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "abs.hbs")
		want := "abs template"
		if err := os.WriteFile(path, []byte(want), 0o644); err != nil {
			t.Fatalf("WriteFile() unexpected error: %v", err)
		}

		got, err := Config{IndexTemplate: path}.Template(t.TempDir())
		if err != nil {
			t.Fatalf("Template() unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("Template() = %q, want %q", got, want)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Config{IndexTemplate: "missing.hbs"}.Template(t.TempDir())
		if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("Template() error = %v, want %v", err, os.ErrNotExist)
		}
	})
}
