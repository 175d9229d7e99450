package md2epub

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yuin/goldmark/text"
)

func TestConvertQuotesToCurly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		want        string
		wantChanged bool
	}{
		{
			name:        "double quotes around word",
			input:       `"hello"`,
			want:        "“hello”",
			wantChanged: true,
		},
		{
			name:        "nested single inside double",
			input:       `"hello 'world'"`,
			want:        "“hello ‘world’”",
			wantChanged: true,
		},
		{
			name:        "apostrophe closes",
			input:       "it's fine",
			want:        "it’s fine",
			wantChanged: true,
		},
		{
			name:  "no quotes",
			input: "plain text",
			want:  "plain text",
		},
		{
			name:        "quote after newline opens",
			input:       "line\n'quote",
			want:        "line\n‘quote",
			wantChanged: true,
		},
		{
			name:        "unicode around quotes",
			input:       `日本語 "引用"`,
			want:        "日本語 “引用”",
			wantChanged: true,
		},
		{
			name:  "empty fragment",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, changed := convertQuotesToCurly([]byte(tt.input))
			if string(got) != tt.want {
				t.Errorf("convertQuotesToCurly(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if changed != tt.wantChanged {
				t.Errorf("convertQuotesToCurly(%q) changed = %v, want %v", tt.input, changed, tt.wantChanged)
			}
		})
	}
}

// renderMarkdown runs the full parse, quote-convert, render sequence.
func renderMarkdown(t *testing.T, input string, curly bool) string {
	t.Helper()

	md := newMarkdown()
	source := []byte(input)
	doc := md.Parser().Parse(text.NewReader(source))
	source = convertQuotes(doc, source, curly)

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, source, doc); err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	return buf.String()
}

func TestConvertQuotes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantNot      []string
	}{
		{
			name:         "prose double quotes",
			input:        `She said "hello" to me.`,
			wantContains: []string{"“hello”"},
			wantNot:      []string{"&quot;"},
		},
		{
			name:         "prose single quotes",
			input:        `It's a 'test' here.`,
			wantContains: []string{"It’s", "‘test’"},
		},
		{
			name:         "fenced code untouched",
			input:        "```\n\"quoted\"\n```",
			wantContains: []string{"&quot;quoted&quot;"},
			wantNot:      []string{"“", "”"},
		},
		{
			name:         "indented code untouched",
			input:        "    \"indented\"",
			wantContains: []string{"&quot;indented&quot;"},
			wantNot:      []string{"“"},
		},
		{
			name:         "inline code untouched",
			input:        "A \"real\" quote and `\"code\"` span.",
			wantContains: []string{"“real”", "<code>&quot;code&quot;</code>"},
			wantNot:      []string{"“code”"},
		},
		{
			name:         "prose after code block converts again",
			input:        "```\ncode\n```\n\nThen \"after\" works.",
			wantContains: []string{"“after”"},
		},
		{
			name:         "quote straight after inline markup opens",
			input:        "*word*'s tail",
			wantContains: []string{"<em>word</em>‘s tail"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := renderMarkdown(t, tt.input, true)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output should contain %q\nGot:\n%s", want, got)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(got, not) {
					t.Errorf("output should not contain %q\nGot:\n%s", not, got)
				}
			}
		})
	}
}

func TestConvertQuotesDisabled(t *testing.T) {
	t.Parallel()

	input := "She said \"hello\" and 'bye'.\n\n```\n\"code\"\n```\n"

	md := newMarkdown()
	source := []byte(input)
	doc := md.Parser().Parse(text.NewReader(source))
	var plain bytes.Buffer
	if err := md.Renderer().Render(&plain, source, doc); err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	if got := renderMarkdown(t, input, false); got != plain.String() {
		t.Errorf("disabled conversion changed output\ngot:\n%s\nwant:\n%s", got, plain.String())
	}
}
