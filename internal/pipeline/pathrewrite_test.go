package pipeline

// Notes:
// - File-base cases use Unix paths and are skipped on Windows
// - Traversal tests check observable behavior (reference left unchanged)

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse(%q): %v", raw, err)
	}
	return u
}

// ---------------------------------------------------------------------------
// TestRewriteRelativePaths - file:// base
// ---------------------------------------------------------------------------

func TestRewriteRelativePaths_FileBase(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}

	base := mustParseURL(t, "file:///docs/python/")

	tests := []struct {
		name string
		html string
		want string
	}{
		{"relative image", `<img src="images/logo.png">`, `src="file:///docs/python/images/logo.png"`},
		{"dot slash image", `<img src="./images/logo.png">`, `src="file:///docs/python/images/logo.png"`},
		{"relative link", `<a href="other.md">x</a>`, `href="file:///docs/python/other.md"`},
		{"spaces are escaped", `<img src="my image.png">`, `src="file:///docs/python/my%20image.png"`},
		{"root relative unchanged", `<img src="/abs/logo.png">`, `src="/abs/logo.png"`},
		{"traversal unchanged", `<img src="../../etc/passwd">`, `src="../../etc/passwd"`},
		{"http URL unchanged", `<img src="https://example.com/a.png">`, `src="https://example.com/a.png"`},
		{"anchor unchanged", `<a href="#top">x</a>`, `href="#top"`},
		{"mailto unchanged", `<a href="mailto:me@example.com">x</a>`, `href="mailto:me@example.com"`},
		{"data URL unchanged", `<img src="data:image/png;base64,AAAA">`, `src="data:image/png;base64,AAAA"`},
		{"other elements untouched", `<script src="app.js"></script>`, `src="app.js"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativePaths(tt.html, base)
			if err != nil {
				t.Fatalf("RewriteRelativePaths() error = %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("RewriteRelativePaths() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRewriteRelativePaths - http(s) base
// ---------------------------------------------------------------------------

func TestRewriteRelativePaths_HTTPBase(t *testing.T) {
	t.Parallel()

	base := mustParseURL(t, "https://github.com/me/notes/blob/main/python/intro.md")

	tests := []struct {
		name string
		html string
		want string
	}{
		{"root relative resolves against host", `<img src="/me/notes/raw/main/a.png">`, `src="https://github.com/me/notes/raw/main/a.png"`},
		{"sibling link", `<a href="decorators.md">x</a>`, `href="https://github.com/me/notes/blob/main/python/decorators.md"`},
		{"parent link", `<a href="../go/channels.md">x</a>`, `href="https://github.com/me/notes/blob/main/go/channels.md"`},
		{"anchor unchanged", `<a href="#usage">x</a>`, `href="#usage"`},
		{"absolute URL unchanged", `<img src="https://camo.example/x">`, `src="https://camo.example/x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativePaths(tt.html, base)
			if err != nil {
				t.Fatalf("RewriteRelativePaths() error = %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("RewriteRelativePaths() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestRewriteRelativePaths_NilBase(t *testing.T) {
	t.Parallel()

	in := `<img src="a.png"><p>unparsed & untouched`
	got, err := RewriteRelativePaths(in, nil)
	if err != nil {
		t.Fatalf("RewriteRelativePaths() error = %v", err)
	}
	if got != in {
		t.Errorf("RewriteRelativePaths() = %q, want input unchanged", got)
	}
}

func TestRewriteRelativePaths_FullDocument(t *testing.T) {
	t.Parallel()

	base := mustParseURL(t, "https://example.com/notes/")
	in := `<!DOCTYPE html><html><head></head><body><img src="a.png"></body></html>`

	got, err := RewriteRelativePaths(in, base)
	if err != nil {
		t.Fatalf("RewriteRelativePaths() error = %v", err)
	}
	if !strings.HasPrefix(got, "<!DOCTYPE html>") {
		t.Errorf("doctype lost: %q", got)
	}
	if !strings.Contains(got, `src="https://example.com/notes/a.png"`) {
		t.Errorf("image not rewritten: %q", got)
	}
}

func TestRewriteRelativePaths_FragmentNotWrapped(t *testing.T) {
	t.Parallel()

	base := mustParseURL(t, "https://example.com/")
	got, err := RewriteRelativePaths(`<article class="markdown-body"><p>x</p></article>`, base)
	if err != nil {
		t.Fatalf("RewriteRelativePaths() error = %v", err)
	}
	if strings.Contains(got, "<body>") || strings.Contains(got, "<html>") {
		t.Errorf("fragment was wrapped: %q", got)
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func TestDirURL(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	u, err := DirURL(dir)
	if err != nil {
		t.Fatalf("DirURL() error = %v", err)
	}
	if u.Scheme != "file" {
		t.Errorf("Scheme = %q, want file", u.Scheme)
	}
	if !strings.HasSuffix(u.Path, "/") {
		t.Errorf("Path = %q, want trailing slash", u.Path)
	}
	if !strings.HasSuffix(strings.TrimSuffix(u.Path, "/"), filepath.ToSlash(filepath.Base(dir))) {
		t.Errorf("Path = %q, want it to end with %q", u.Path, filepath.Base(dir))
	}
}

func TestIsRelativePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ref  string
		want bool
	}{
		{"", false},
		{"#top", false},
		{"//cdn.example/x.png", false},
		{"https://example.com", false},
		{"mailto:a@b", false},
		{"C:/docs/a.png", false},
		{"a.png", true},
		{"./a.png", true},
		{"../a.png", true},
		{"/abs.png", true},
		{"dir/a:b.png", true},
		{"?page=2", true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			t.Parallel()
			if got := isRelativePath(tt.ref); got != tt.want {
				t.Errorf("isRelativePath(%q) = %v, want %v", tt.ref, got, tt.want)
			}
		})
	}
}

func TestIsPathUnderDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path, dir string
		want      bool
	}{
		{"/docs/a.png", "/docs/", true},
		{"/docs/sub/a.png", "/docs", true},
		{"/docs", "/docs/", true},
		{"/docsx/a.png", "/docs/", false},
		{"/etc/passwd", "/docs/", false},
		{"/docs/../etc/passwd", "/docs/", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			if got := isPathUnderDir(tt.path, tt.dir); got != tt.want {
				t.Errorf("isPathUnderDir(%q, %q) = %v, want %v", tt.path, tt.dir, got, tt.want)
			}
		})
	}
}
