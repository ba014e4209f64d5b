package mommy

import (
	"fmt"
	"sort"
	"strings"
)

// SetEnv sets a session variable. It applies to the next command and to the
// settings resolved for its affirmation, so SHELL_MOMMYS_* keys take effect
// immediately. The process environment is never modified.
func (s *Shell) SetEnv(key, value string) {
	s.sessionEnv[key] = value
}

// UnsetEnv removes a session variable set with [Shell.SetEnv]. Missing keys
// are a no-op.
func (s *Shell) UnsetEnv(key string) {
	delete(s.sessionEnv, key)
}

// SessionEnv returns the session variables as sorted "KEY=VALUE" pairs. The
// base environment is not included.
func (s *Shell) SessionEnv() []string {
	pairs := make([]string, 0, len(s.sessionEnv))
	for k, v := range s.sessionEnv {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return pairs
}

// buildEnv is the child environment: the base environment followed by the
// session variables. os/exec keeps the last occurrence of a key, so session
// values shadow inherited ones.
func (s *Shell) buildEnv() []string {
	return append(environOf(s.cfg.Env), s.SessionEnv()...)
}

// handleEnvBuiltin runs the env built-in when tokens[0] names it and reports
// whether it did.
func (s *Shell) handleEnvBuiltin(tokens []string) bool {
	name := s.cfg.EnvBuiltin
	if name == "" || tokens[0] != name {
		return false
	}
	if len(tokens) < 2 {
		diag(s.cfg.Stderr, "usage: %s {list|set KEY VALUE|unset KEY}", name)
		return true
	}
	switch tokens[1] {
	case "list":
		for _, pair := range s.SessionEnv() {
			_, _ = fmt.Fprintln(s.cfg.Stdout, pair)
		}
	case "set":
		if len(tokens) != 4 {
			diag(s.cfg.Stderr, "usage: %s set KEY VALUE", name)
			return true
		}
		s.SetEnv(tokens[2], tokens[3])
	case "unset":
		if len(tokens) != 3 {
			diag(s.cfg.Stderr, "usage: %s unset KEY", name)
			return true
		}
		s.UnsetEnv(tokens[2])
	default:
		diag(s.cfg.Stderr, "mommy-shell: %s: unknown subcommand %q", name, tokens[1])
	}
	return true
}

// envBuiltinKeys extracts the keys from "KEY=VALUE" pairs.
func envBuiltinKeys(pairs []string) []string {
	keys := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		if k, _, ok := strings.Cut(pair, "="); ok {
			keys = append(keys, k)
		}
	}
	return keys
}
