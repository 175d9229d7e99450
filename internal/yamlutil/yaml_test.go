package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2epub/internal/yamlutil"
)

type bookManifest struct {
	Title   string   `yaml:"title"`
	Authors []string `yaml:"authors"`
	Draft   bool     `yaml:"draft"`
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "valid YAML",
			data: []byte("title: Trees\nauthors: [Ada, Grace]\ndraft: true"),
			dest: &bookManifest{},
			check: func(t *testing.T, v any) {
				m := v.(*bookManifest)
				if m.Title != "Trees" {
					t.Errorf("Title = %q, want %q", m.Title, "Trees")
				}
				if len(m.Authors) != 2 || m.Authors[0] != "Ada" {
					t.Errorf("Authors = %v, want [Ada Grace]", m.Authors)
				}
				if !m.Draft {
					t.Error("Draft = false, want true")
				}
			},
		},
		{
			name: "unknown fields ignored",
			data: []byte("title: Trees\nnot-a-field: 1"),
			dest: &bookManifest{},
			check: func(t *testing.T, v any) {
				if m := v.(*bookManifest); m.Title != "Trees" {
					t.Errorf("Title = %q, want %q", m.Title, "Trees")
				}
			},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &bookManifest{},
			wantErr: yamlutil.ErrEmptyData,
		},
		{
			name:    "empty data",
			data:    []byte{},
			dest:    &bookManifest{},
			wantErr: yamlutil.ErrEmptyData,
		},
		{
			name:    "nil destination",
			data:    []byte("title: x"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name: "unicode content",
			data: []byte("title: 木の本"),
			dest: &bookManifest{},
			check: func(t *testing.T, v any) {
				if m := v.(*bookManifest); m.Title != "木の本" {
					t.Errorf("Title = %q, want %q", m.Title, "木の本")
				}
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

func TestUnmarshalSyntaxError(t *testing.T) {
	t.Parallel()

	err := yamlutil.Unmarshal([]byte("title: [unclosed"), &bookManifest{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.HasPrefix(err.Error(), "yamlutil:") {
		t.Errorf("error = %q, want prefix 'yamlutil:'", err)
	}
}

// Modifies the global MaxInputSize, so no t.Parallel here.
func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	yamlutil.MaxInputSize = 64

	t.Run("input at limit succeeds", func(t *testing.T) {
		data := make([]byte, 64)
		copy(data, "title: x")
		var m bookManifest
		if err := yamlutil.Unmarshal(data, &m); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("input exceeding limit fails", func(t *testing.T) {
		data := make([]byte, 65)
		copy(data, "title: x")
		var m bookManifest
		err := yamlutil.Unmarshal(data, &m)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
		if !strings.Contains(err.Error(), "65 bytes") {
			t.Errorf("error should contain actual size, got: %s", err)
		}
	})
}
