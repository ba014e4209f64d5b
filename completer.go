package mommy

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/shlex"
)

// completer implements readline.AutoCompleter. The first word completes to
// executables on $PATH and the built-ins; later words complete to paths.
type completer struct {
	shell *Shell
}

// Do implements readline.AutoCompleter. It returns the candidates as
// suffixes of the partial word, plus that word's length in runes.
func (c *completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	segment := string(line[:pos])

	endsWithSpace := len(segment) > 0 &&
		(segment[len(segment)-1] == ' ' || segment[len(segment)-1] == '\t')

	tokens, err := shlex.Split(segment)
	if err != nil {
		// Unclosed quote.
		return nil, 0
	}

	var contextArgs []string
	var toComplete string
	switch {
	case endsWithSpace || len(tokens) == 0:
		contextArgs = tokens
	default:
		contextArgs = tokens[:len(tokens)-1]
		toComplete = tokens[len(tokens)-1]
	}

	builtin := c.shell.cfg.EnvBuiltin
	if builtin != "" && len(contextArgs) >= 1 && contextArgs[0] == builtin {
		return c.doEnvBuiltin(contextArgs[1:], toComplete)
	}

	var candidates []string
	if len(contextArgs) == 0 && !strings.ContainsRune(toComplete, '/') {
		candidates = c.commands(toComplete)
	} else {
		candidates = pathCandidates(toComplete)
	}
	return suffixes(candidates, toComplete)
}

// commands lists built-ins and $PATH executables starting with prefix,
// sorted and without duplicates.
func (c *completer) commands(prefix string) []string {
	var out []string
	builtins := []string{"cd", "exit"}
	if c.shell.cfg.EnvBuiltin != "" {
		builtins = append(builtins, c.shell.cfg.EnvBuiltin)
	}
	for _, b := range builtins {
		if strings.HasPrefix(b, prefix) {
			out = append(out, b)
		}
	}

	path, _ := Layered(MapSource(c.shell.sessionEnv), c.shell.cfg.Env).Lookup("PATH")
	for _, dir := range filepath.SplitList(path) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if !strings.HasPrefix(name, prefix) || e.IsDir() {
				continue
			}
			info, err := e.Info()
			if err != nil || info.Mode()&0o111 == 0 {
				continue
			}
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// pathCandidates lists filesystem entries matching partial. Directories get a
// trailing slash; dotfiles are offered only when partial's last element
// starts with a dot.
func pathCandidates(partial string) []string {
	dir, base := filepath.Split(partial)
	readDir := dir
	if readDir == "" {
		readDir = "."
	}
	entries, err := os.ReadDir(readDir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, base) {
			continue
		}
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		if e.IsDir() {
			name += "/"
		}
		out = append(out, dir+name)
	}
	return out
}

// doEnvBuiltin completes the env built-in: its subcommands first, then the
// session keys after "unset".
func (c *completer) doEnvBuiltin(subArgs []string, toComplete string) (newLine [][]rune, length int) {
	var candidates []string

	switch {
	case len(subArgs) == 0:
		for _, name := range []string{"list", "set", "unset"} {
			if strings.HasPrefix(name, toComplete) {
				candidates = append(candidates, name)
			}
		}
	case subArgs[0] == "unset" && len(subArgs) == 1:
		for _, key := range envBuiltinKeys(c.shell.SessionEnv()) {
			if strings.HasPrefix(key, toComplete) {
				candidates = append(candidates, key)
			}
		}
	}
	return suffixes(candidates, toComplete)
}

// suffixes trims the typed prefix off each candidate. readline appends what
// Do returns, so full words would double the prefix ("pl" + "player").
func suffixes(candidates []string, toComplete string) ([][]rune, int) {
	if len(candidates) == 0 {
		return nil, 0
	}
	prefix := []rune(toComplete)
	result := make([][]rune, len(candidates))
	for i, s := range candidates {
		result[i] = []rune(s)[len(prefix):]
	}
	return result, len(prefix)
}
