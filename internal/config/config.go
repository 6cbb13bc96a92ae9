// Package config loads .rblint.toml, the per-project lint configuration.
// The file is discovered by walking up from the start directory, the same
// way editors discover their own dotfiles.
package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"rblint/internal/rules"
)

// FileName is the manifest rblint looks for.
const FileName = ".rblint.toml"

// DefaultMaxDiagnostics caps how many diagnostics a single run keeps.
const DefaultMaxDiagnostics = 256

// RuleConfig is one [rules.NAME] table.
type RuleConfig struct {
	Enabled  *bool  `toml:"enabled"`
	Severity string `toml:"severity"`
}

// Config is the parsed manifest plus defaults for everything unset.
type Config struct {
	MaxDiagnostics int `toml:"max-diagnostics"`
	// Exclude holds path glob patterns, matched against the path relative
	// to the lint root and against the basename.
	Exclude []string              `toml:"exclude"`
	Rules   map[string]RuleConfig `toml:"rules"`

	// Path is where the manifest was found; empty when defaults are in use.
	Path string `toml:"-"`
}

// Excluded reports whether relPath matches any exclude pattern. Patterns
// are slash-separated globs; a pattern without a separator also matches
// any path component.
func (c *Config) Excluded(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, pat := range c.Exclude {
		if ok, err := path.Match(pat, relPath); err == nil && ok {
			return true
		}
		if !strings.Contains(pat, "/") {
			for _, part := range strings.Split(relPath, "/") {
				if ok, err := path.Match(pat, part); err == nil && ok {
					return true
				}
			}
		}
	}
	return false
}

// Default returns the configuration used when no manifest exists.
func Default() *Config {
	return &Config{
		MaxDiagnostics: DefaultMaxDiagnostics,
		Rules:          map[string]RuleConfig{},
	}
}

// Find walks up from startDir to locate the nearest .rblint.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses the manifest at path.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := checkUndecoded(path, meta); err != nil {
		return nil, err
	}
	if cfg.MaxDiagnostics <= 0 {
		cfg.MaxDiagnostics = DefaultMaxDiagnostics
	}
	if cfg.Rules == nil {
		cfg.Rules = map[string]RuleConfig{}
	}
	cfg.Path = path
	return cfg, nil
}

// Discover finds and loads the nearest manifest, falling back to defaults
// when none exists.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// checkUndecoded rejects keys the schema does not know. A typo in a rule
// option silently disabling nothing is the worst failure mode a linter
// config can have.
func checkUndecoded(path string, meta toml.MetaData) error {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, 0, len(undecoded))
	for _, k := range undecoded {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)
	return fmt.Errorf("%s: unknown keys: %v", path, keys)
}

// Resolve matches the manifest against the registered rules and returns
// the enabled set. Rule tables that name no registered rule are errors.
func (c *Config) Resolve(available []rules.Rule) ([]rules.Enabled, error) {
	byName := make(map[string]rules.Rule, len(available))
	for _, r := range available {
		byName[r.Meta().Name] = r
	}
	for name := range c.Rules {
		if _, ok := byName[name]; !ok {
			return nil, fmt.Errorf("unknown rule %q in %s", name, c.pathOrDefaults())
		}
	}

	enabled := make([]rules.Enabled, 0, len(available))
	for _, r := range available {
		meta := r.Meta()
		rc, configured := c.Rules[meta.Name]

		if configured && rc.Enabled != nil && !*rc.Enabled {
			continue
		}
		sev := meta.DefaultSeverity
		if configured && rc.Severity != "" {
			if err := sev.UnmarshalText([]byte(rc.Severity)); err != nil {
				return nil, fmt.Errorf("rule %q: %w", meta.Name, err)
			}
		}
		enabled = append(enabled, rules.Enabled{Rule: r, Severity: sev})
	}
	sort.Slice(enabled, func(i, j int) bool {
		return enabled[i].Rule.Meta().Name < enabled[j].Rule.Meta().Name
	})
	return enabled, nil
}

func (c *Config) pathOrDefaults() string {
	if c.Path == "" {
		return "defaults"
	}
	return c.Path
}
