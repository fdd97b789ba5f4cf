package assets

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// partialExtensions are the file extensions considered as companion templates.
var partialExtensions = map[string]bool{".html": true, ".tmpl": true}

var (
	// definePattern matches a {{define}} or {{block}} action.
	definePattern = regexp.MustCompile(`\{\{-?\s*(define|block)\s`)
	// includePattern captures the name of a {{template "name"}} action.
	includePattern = regexp.MustCompile(`\{\{-?\s*template\s+"([^"]+)"`)
)

// FilesystemLoader loads templates from a directory on the filesystem.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for the given base path.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Resolve symlinks so containment checks compare real paths.
	realPath, err := filepath.EvalSymlinks(absPath)
	if err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}

	return &FilesystemLoader{basePath: absPath}, nil
}

// LoadTemplate parses {basePath}/{name} together with the companion files
// it needs (see companions). The returned template executes name.
func (f *FilesystemLoader) LoadTemplate(name string) (*template.Template, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	mainPath := filepath.Join(f.basePath, name)
	if err := f.verifyPathContainment(mainPath); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(mainPath) // #nosec G304 -- path validated above
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("template %q not found in %s: %w", name, f.basePath, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	partials, err := f.companions(name, string(content))
	if err != nil {
		return nil, err
	}
	for _, p := range partials {
		if _, err := tmpl.New(p.name).Parse(p.content); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", p.name, err)
		}
	}

	return tmpl, nil
}

type companion struct {
	name    string
	content string
}

// companions returns, in name order, the template files of basePath that
// entry needs: files defining named templates, and files included by name
// from entry or from another companion. Other HTML files are ignored.
func (f *FilesystemLoader) companions(entry, entryContent string) ([]companion, error) {
	names, err := f.partials(entry)
	if err != nil {
		return nil, err
	}

	contents := make(map[string]string, len(names))
	for _, n := range names {
		data, err := os.ReadFile(filepath.Join(f.basePath, n)) // #nosec G304 -- listed from basePath
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
		}
		contents[n] = string(data)
	}

	selected := make(map[string]bool, len(names))
	var queue []string
	for _, n := range names {
		if definePattern.MatchString(contents[n]) {
			selected[n] = true
			queue = append(queue, contents[n])
		}
	}
	queue = append(queue, entryContent)

	for len(queue) > 0 {
		text := queue[0]
		queue = queue[1:]
		for _, m := range includePattern.FindAllStringSubmatch(text, -1) {
			ref := m[1]
			content, ok := contents[ref]
			if !ok || selected[ref] {
				continue
			}
			selected[ref] = true
			queue = append(queue, content)
		}
	}

	var out []companion
	for _, n := range names {
		if selected[n] {
			out = append(out, companion{name: n, content: contents[n]})
		}
	}
	return out, nil
}

// partials lists the candidate companion files of basePath in name order,
// excluding the entry template.
func (f *FilesystemLoader) partials(entry string) ([]string, error) {
	entries, err := os.ReadDir(f.basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	var names []string
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || n == entry || strings.HasPrefix(n, ".") {
			continue
		}
		if partialExtensions[strings.ToLower(filepath.Ext(n))] {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names, nil
}

// verifyPathContainment ensures the resolved file path is within basePath,
// following symlinks.
func (f *FilesystemLoader) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	// A missing file fails later on open; the prefix check still applies.
	realPath, err := filepath.EvalSymlinks(absFilePath)
	if err == nil {
		absFilePath = realPath
	}

	if !strings.HasPrefix(absFilePath, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}

	return nil
}

// LoadTemplate loads the named template from dir. Every failure wraps
// ErrTemplateLoad.
func LoadTemplate(dir, name string) (*template.Template, error) {
	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateLoad, err)
	}
	tmpl, err := loader.LoadTemplate(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateLoad, err)
	}
	return tmpl, nil
}

// LoadStyle reads a stylesheet file.
// Returns ErrStyleNotFound if the file does not exist.
func LoadStyle(path string) (string, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path comes from configuration
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrStyleNotFound, path)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}
