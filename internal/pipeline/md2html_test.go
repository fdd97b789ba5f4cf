package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		markdown     string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:     "wraps output in markdown-body article",
			markdown: "# Hello\n\nWorld",
			wantContains: []string{
				`<article class="markdown-body">`,
				`<h1 id="hello">Hello</h1>`,
				`<p>World</p>`,
				`</article>`,
			},
		},
		{
			name:         "GFM table",
			markdown:     "| a | b |\n|---|---|\n| 1 | 2 |\n",
			wantContains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:         "highlight becomes mark",
			markdown:     "this is ==important== text",
			wantContains: []string{"<mark>important</mark>"},
			wantExcludes: []string{"==", "\uE000"},
		},
		{
			name:         "fenced code is highlighted with classes",
			markdown:     "```go\nfunc main() {}\n```\n",
			wantContains: []string{`class="chroma"`},
		},
		{
			name:         "footnote",
			markdown:     "text[^1]\n\n[^1]: note\n",
			wantContains: []string{`class="footnotes"`},
		},
		{
			name:         "CRLF line endings",
			markdown:     "line one\r\n\r\nline two",
			wantContains: []string{"<p>line one</p>", "<p>line two</p>"},
			wantExcludes: []string{"\r"},
		},
		{
			name:         "raw HTML is not passed through",
			markdown:     "<script>alert(1)</script>",
			wantExcludes: []string{"<script>"},
		},
	}

	converter := NewGoldmarkConverter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := converter.ToHTML(context.Background(), tt.markdown)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() missing %q in:\n%s", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("ToHTML() should not contain %q in:\n%s", exclude, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "# Title")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
