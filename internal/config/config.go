package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"gopkg.in/ini.v1"

	"github.com/alnah/notes2pdf/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrMissingKey      = errors.New("missing required config key")
	ErrInvalidValue    = errors.New("invalid config value")
)

// SectionName is the INI section holding every option.
const SectionName = "defaults"

// DefaultTimeout bounds each HTTP fetch and each page load.
const DefaultTimeout = 30 * time.Second

// MaxInputSize limits config input to prevent memory exhaustion (1MB).
const MaxInputSize = 1 << 20

// DefaultExclude lists the substrings that keep a note out of every run.
var DefaultExclude = []string{"README", "TODOS"}

// Config holds the options of a run. LoadConfig returns it with every path
// resolved to an absolute path.
type Config struct {
	NotesDir       string   `yaml:"notesDir"`
	OutputDir      string   `yaml:"outputDir"`      // relative to NotesDir
	GitURL         string   `yaml:"gitURL"`         // empty = render Markdown locally
	TemplateDir    string   `yaml:"templateDir"`    // INI: jinja_env
	Template       string   `yaml:"template"`       // INI: jinja_template
	CSSFile        string   `yaml:"cssFile"`        // relative to the executable
	LandscapeStyle string   `yaml:"landscapeStyle"` // inline CSS
	LandscapeFiles []string `yaml:"landscapeFiles"` // basenames, e.g. "big_table.md"
	Exclude        []string `yaml:"exclude"`
	Timeout        string   `yaml:"timeout"` // e.g. "30s", "2m"
}

// iniKeys maps INI option names to the Config fields they fill.
var iniKeys = []struct {
	key      string
	required bool
	set      func(*Config, string)
}{
	{"notes_dir", true, func(c *Config, v string) { c.NotesDir = v }},
	{"output_dir", true, func(c *Config, v string) { c.OutputDir = v }},
	{"git_url", false, func(c *Config, v string) { c.GitURL = v }},
	{"jinja_env", true, func(c *Config, v string) { c.TemplateDir = v }},
	{"jinja_template", true, func(c *Config, v string) { c.Template = v }},
	{"css_file", true, func(c *Config, v string) { c.CSSFile = v }},
	{"landscape_style", true, func(c *Config, v string) { c.LandscapeStyle = v }},
	{"landscape_files", false, func(c *Config, v string) { c.LandscapeFiles = SplitList(v) }},
	{"exclude", false, func(c *Config, v string) { c.Exclude = SplitList(v) }},
	{"timeout", false, func(c *Config, v string) { c.Timeout = v }},
}

// executableDir returns the directory of the running binary.
// Replaced in tests.
var executableDir = func() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(exe)
}

// DefaultConfig returns a configuration with only the optional keys set.
func DefaultConfig() *Config {
	return &Config{
		Exclude: append([]string(nil), DefaultExclude...),
	}
}

// LoadConfig loads configuration from a file path or config name.
// Files ending in .yaml or .yml are parsed as YAML, anything else as INI
// with a [defaults] section. A bare name is searched in standard locations.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath, err := resolveConfigPath(nameOrPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigParse, len(data), MaxInputSize)
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		cfg, err = parseYAML(data)
	default:
		cfg, err = parseINI(data)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.resolvePaths(filepath.Dir(configPath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseINI reads the [defaults] section. Keys are case-insensitive, values
// may continue on indented lines, and ";" or "#" inside a value is kept
// since stylesheets and URLs contain them.
func parseINI(data []byte) (*Config, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:                true,
		IgnoreInlineComment:        true,
		AllowPythonMultilineValues: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	sec, err := file.GetSection(SectionName)
	if err != nil {
		return nil, fmt.Errorf("%w: missing [%s] section", ErrConfigParse, SectionName)
	}

	cfg := DefaultConfig()
	for _, k := range iniKeys {
		if !sec.HasKey(k.key) {
			if k.required {
				return nil, fmt.Errorf("%w: %s", ErrMissingKey, k.key)
			}
			continue
		}
		k.set(cfg, strings.TrimSpace(sec.Key(k.key).String()))
	}
	return cfg, nil
}

// parseYAML decodes a YAML document, rejecting unknown fields.
func parseYAML(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return cfg, nil
}

// Validate checks that required options are present and values are usable.
// Called automatically by LoadConfig.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"notes_dir", c.NotesDir},
		{"output_dir", c.OutputDir},
		{"jinja_env", c.TemplateDir},
		{"jinja_template", c.Template},
		{"css_file", c.CSSFile},
		{"landscape_style", c.LandscapeStyle},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingKey, r.name)
		}
	}

	if c.GitURL != "" && !fileutil.IsURL(c.GitURL) {
		return fmt.Errorf("%w: git_url %q must start with http:// or https://", ErrInvalidValue, c.GitURL)
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	for _, f := range c.LandscapeFiles {
		if strings.ContainsAny(f, "/\\") {
			return fmt.Errorf("%w: landscape_files entry %q must be a basename", ErrInvalidValue, f)
		}
	}

	return nil
}

// TimeoutDuration parses Timeout, returning DefaultTimeout when unset.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// resolvePaths makes every path absolute. configDir is the fallback base
// for a relative css_file that does not exist next to the executable.
func (c *Config) resolvePaths(configDir string) error {
	notesDir, err := filepath.Abs(expandHome(c.NotesDir))
	if err != nil {
		return fmt.Errorf("%w: notes_dir: %v", ErrInvalidValue, err)
	}
	c.NotesDir = notesDir

	if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.NotesDir, c.OutputDir)
	}

	templateDir, err := filepath.Abs(expandHome(c.TemplateDir))
	if err != nil {
		return fmt.Errorf("%w: jinja_env: %v", ErrInvalidValue, err)
	}
	c.TemplateDir = templateDir

	c.CSSFile = resolveCSSFile(expandHome(c.CSSFile), executableDir(), configDir)
	return nil
}

// resolveCSSFile resolves a relative stylesheet path against the executable
// directory first, then against the config file directory.
func resolveCSSFile(cssFile, exeDir, configDir string) string {
	if filepath.IsAbs(cssFile) {
		return cssFile
	}
	if exeDir != "" {
		candidate := filepath.Join(exeDir, cssFile)
		if fileutil.FileExists(candidate) {
			return candidate
		}
	}
	abs, err := filepath.Abs(filepath.Join(configDir, cssFile))
	if err != nil {
		return filepath.Join(configDir, cssFile)
	}
	return abs
}

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// SplitList splits a comma or whitespace separated list, dropping empties.
func SplitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// SearchPaths lists, in order, the files a bare config name is looked up
// as: the name with "", .ini, .yaml and .yml extensions in the current
// directory, then in the user config directory under notes2pdf/.
func SearchPaths(name string) []string {
	extensions := []string{"", ".ini", ".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "notes2pdf", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns nameOrPath when it names an existing file or
// looks like a path. Otherwise the first existing SearchPaths entry wins.
func resolveConfigPath(nameOrPath string) (string, error) {
	if fileutil.FileExists(nameOrPath) || fileutil.IsFilePath(nameOrPath) {
		return nameOrPath, nil
	}

	tried := SearchPaths(nameOrPath)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
