// Package config loads cartctl's YAML configuration file and layers a
// local .env on top of the process environment.
//
// The file is cartctl.yaml, searched for in XDG_CONFIG_HOME, APPDATA, and
// HOME, in that order. Values may reference environment variables with
// ${VAR}; a reference to an unset variable fails the load rather than
// silently passing the literal through, so credential-bearing settings
// never leak placeholders into requests.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file cartctl looks for.
const FileName = "cartctl.yaml"

// ErrNoConfigFile is returned by Load when no cartctl.yaml exists in any
// of the standard locations. Callers that treat configuration as optional
// check for it with errors.Is and carry on with the zero Type.
var ErrNoConfigFile = errors.New("config: no cartctl.yaml found in standard locations")

// Type holds one loaded configuration.
//
// Namespace scopes lookups to a subcommand: Get("base") with Namespace
// "count" tries "count.base" before the bare "base" key, so per-command
// settings override shared ones.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]any
}

// Load reads cartctl.yaml, expands ${VAR} references strictly, and
// returns the result scoped to the given namespace.
//
// A .env file in the working directory is loaded into the process
// environment first, so expansion and env-sourced flags both see it.
func Load(namespace string) (Type, error) {
	_ = godotenv.Load() // loads .env if present

	cfg := Type{Namespace: namespace}

	path, err := configPath()
	if err != nil {
		return cfg, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	expanded, err := expandTree(data)
	if err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}

	cfg.Source = path
	cfg.Data = expanded
	return cfg, nil
}

// GetString retrieves a string value, trying the namespaced key first.
// A single default may be supplied for the missing-key case.
func (cfg Type) GetString(key string, defaultValue ...string) (string, error) {
	val, err := cfg.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("config: value at %q is not a string", key)
	}
	return s, nil
}

// GetInt retrieves an integer value, trying the namespaced key first.
func (cfg Type) GetInt(key string, defaultValue ...int) (int, error) {
	val, err := cfg.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	// YAML numbers may be unmarshaled as int or float64 depending on content.
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("config: value at %q is not an int", key)
	}
}

// GetBool retrieves a boolean value, trying the namespaced key first.
func (cfg Type) GetBool(key string, defaultValue ...bool) (bool, error) {
	val, err := cfg.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return false, err
	}

	b, ok := val.(bool)
	if !ok {
		return false, fmt.Errorf("config: value at %q is not a bool", key)
	}
	return b, nil
}

// get traverses Data using a dotted key path, preferring the namespaced
// form of the key.
func (cfg Type) get(kspec string) (any, error) {
	candidateKeys := []string{kspec}
	if cfg.Namespace != "" {
		candidateKeys = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidateKeys {
		current := any(cfg.Data)
		found := true
		for _, part := range strings.Split(key, ".") {
			m, ok := current.(map[string]any)
			if !ok {
				found = false
				break
			}
			current, ok = m[part]
			if !ok {
				found = false
				break
			}
		}
		if found {
			return current, nil
		}
	}

	return nil, fmt.Errorf("config: no value at any of %v", candidateKeys)
}

func configPath() (string, error) {
	candidates := []string{
		os.Getenv("XDG_CONFIG_HOME"),
		os.Getenv("APPDATA"),
		os.Getenv("HOME"),
	}

	for _, dir := range candidates {
		if dir == "" {
			continue
		}
		file := filepath.Join(dir, FileName)
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			return file, nil
		}
	}
	return "", ErrNoConfigFile
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandEnvStrict expands environment variables in s.
//
// Semantics:
//   - `$VAR` and `${VAR}` are expanded via os.ExpandEnv.
//   - If `${VAR}` is present but VAR is missing from the environment, it errors.
//   - `$$` emits a literal `$` (escape hatch).
func ExpandEnvStrict(s string) (string, error) {
	const dollarSentinel = "\x00CARTCTL_CONFIG_DOLLAR\x00"
	s = strings.ReplaceAll(s, "$$", dollarSentinel)

	missing := make(map[string]struct{})
	for _, match := range envVarPattern.FindAllStringSubmatch(s, -1) {
		key := match[1]
		if _, ok := os.LookupEnv(key); !ok {
			missing[key] = struct{}{}
		}
	}
	if len(missing) > 0 {
		keys := make([]string, 0, len(missing))
		for k := range missing {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "", fmt.Errorf("missing required environment variables: %s", strings.Join(keys, ", "))
	}

	s = os.ExpandEnv(s)
	s = strings.ReplaceAll(s, dollarSentinel, "$")
	return s, nil
}

// expandTree applies ExpandEnvStrict to every string leaf of a parsed
// YAML document, descending through maps and sequences.
func expandTree(data map[string]any) (map[string]any, error) {
	out, err := expandValue(data)
	if err != nil {
		return nil, err
	}
	m, _ := out.(map[string]any)
	return m, nil
}

func expandValue(v any) (any, error) {
	switch val := v.(type) {
	case string:
		return ExpandEnvStrict(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			expanded, err := expandValue(elem)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			out[k] = expanded
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			expanded, err := expandValue(elem)
			if err != nil {
				return nil, err
			}
			out[i] = expanded
		}
		return out, nil
	default:
		return v, nil
	}
}
