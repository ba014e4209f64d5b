package mommy

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// configRelPath is where the optional config file lives under the XDG config
// directories.
var configRelPath = filepath.Join("shell-mommy", "config.toml")

// Source is a key/value lookup used to resolve settings. Keeping it an
// interface lets tests hand [Resolve] an isolated environment instead of
// mutating the real one.
type Source interface {
	Lookup(key string) (string, bool)
}

// SourceFunc adapts a lookup function to [Source].
type SourceFunc func(key string) (string, bool)

// Lookup implements Source.
func (f SourceFunc) Lookup(key string) (string, bool) { return f(key) }

// OSEnv reads the process environment.
var OSEnv Source = SourceFunc(os.LookupEnv)

// MapSource is a fixed set of values.
type MapSource map[string]string

// Lookup implements Source.
func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Environ returns the values as sorted KEY=VALUE pairs, the form os/exec
// expects for a child environment.
func (m MapSource) Environ() []string {
	pairs := make([]string, 0, len(m))
	for k, v := range m {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return pairs
}

// Layered consults each source in order and returns the first hit. Nil
// sources are skipped.
func Layered(sources ...Source) Source {
	return SourceFunc(func(key string) (string, bool) {
		for _, s := range sources {
			if s == nil {
				continue
			}
			if v, ok := s.Lookup(key); ok {
				return v, true
			}
		}
		return "", false
	})
}

// environOf returns the child environment for src: its own pairs when it can
// list them, otherwise the process environment.
func environOf(src Source) []string {
	if lister, ok := src.(interface{ Environ() []string }); ok {
		return lister.Environ()
	}
	return os.Environ()
}

// fileSource serves settings out of a parsed config file. Keys are the
// lowercase setting names.
type fileSource struct {
	v *viper.Viper
}

// LoadConfigFile reads the TOML config file at path. Array values are joined
// with "/" and true booleans become "1", so they parse exactly like their
// environment counterparts.
func LoadConfigFile(path string) (Source, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return fileSource{v: v}, nil
}

func (f fileSource) Lookup(key string) (string, bool) {
	if !f.v.IsSet(key) {
		return "", false
	}
	switch val := f.v.Get(key).(type) {
	case string:
		return val, true
	case bool:
		if val {
			return "1", true
		}
		return "0", true
	case []any:
		parts := make([]string, 0, len(val))
		for _, p := range val {
			parts = append(parts, fmt.Sprint(p))
		}
		return strings.Join(parts, "/"), true
	case nil:
		return "", false
	default:
		return fmt.Sprint(val), true
	}
}

// ConfigFilePath returns the config file to read for mode m: the
// <PREFIX>_CONFIG variable when set, otherwise the first config.toml found
// under the XDG config directories. It returns "" when there is none.
func ConfigFilePath(m Mode, env Source) string {
	if env != nil {
		if p, ok := env.Lookup(EnvKey(m, KeyConfig)); ok && strings.TrimSpace(p) != "" {
			return strings.TrimSpace(p)
		}
	}
	p, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		return ""
	}
	return p
}
