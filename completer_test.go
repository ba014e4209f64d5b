package mommy

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func runeStrings(rs [][]rune) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

// makeCompleter returns a completer whose $PATH is a temp dir holding the
// given executables, plus one non-executable file and a subdirectory.
func makeCompleter(t *testing.T, envBuiltin string, executables ...string) *completer {
	t.Helper()
	bin := t.TempDir()
	for _, name := range executables {
		if err := os.WriteFile(filepath.Join(bin, name), []byte("#!/bin/sh\n"), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(bin, "cargo-notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(bin, "cargo-dir"), 0o755); err != nil {
		t.Fatal(err)
	}
	s := makeEnvShell(envBuiltin)
	s.cfg.Env = MapSource{"PATH": bin}
	s.sessionEnv = map[string]string{"ALPHA": "1", "BETA": "2"}
	return &completer{shell: s}
}

// --- first word ---

func TestCompleterDo_Executables(t *testing.T) {
	c := makeCompleter(t, "", "cargo", "cargo-mommy", "git")
	line := []rune("car")
	got, length := c.Do(line, len(line))

	if length != 3 {
		t.Errorf("length = %d, want 3", length)
	}
	want := []string{"go", "go-mommy"}
	if !slices.Equal(runeStrings(got), want) {
		t.Errorf("Do(car) = %q, want %q (non-executables and directories excluded)", runeStrings(got), want)
	}
}

func TestCompleterDo_ReturnsSuffix(t *testing.T) {
	// Do must return suffixes so readline does not double the typed prefix.
	c := makeCompleter(t, "", "git")
	line := []rune("gi")
	got, _ := c.Do(line, len(line))
	if !slices.Equal(runeStrings(got), []string{"t"}) {
		t.Errorf("Do(gi) = %q, want [t]", runeStrings(got))
	}
}

func TestCompleterDo_Builtins(t *testing.T) {
	c := makeCompleter(t, "env", "echo")
	line := []rune("e")
	got, _ := c.Do(line, len(line))
	want := []string{"cho", "nv", "xit"}
	if !slices.Equal(runeStrings(got), want) {
		t.Errorf("Do(e) = %q, want %q", runeStrings(got), want)
	}
}

func TestCompleterDo_SessionPATH(t *testing.T) {
	c := makeCompleter(t, "")
	other := t.TempDir()
	if err := os.WriteFile(filepath.Join(other, "zoxide"), []byte("x"), 0o755); err != nil {
		t.Fatal(err)
	}
	c.shell.SetEnv("PATH", other)

	line := []rune("zo")
	got, _ := c.Do(line, len(line))
	if !slices.Equal(runeStrings(got), []string{"xide"}) {
		t.Errorf("Do(zo) = %q, want [xide]", runeStrings(got))
	}
}

func TestCompleterDo_UnclosedQuote(t *testing.T) {
	c := makeCompleter(t, "", "git")
	line := []rune(`echo "unterminated`)
	if got, length := c.Do(line, len(line)); got != nil || length != 0 {
		t.Errorf("Do with unclosed quote = %v, %d; want nil, 0", got, length)
	}
}

// --- later words ---

func TestCompleterDo_Paths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"notes.txt", "novel.md", ".hidden"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nodes"), 0o755); err != nil {
		t.Fatal(err)
	}
	c := makeCompleter(t, "")

	partial := dir + string(filepath.Separator) + "no"
	line := []rune("cat " + partial)
	got, length := c.Do(line, len(line))

	if length != len([]rune(partial)) {
		t.Errorf("length = %d, want %d", length, len([]rune(partial)))
	}
	want := []string{"des/", "tes.txt", "vel.md"}
	if !slices.Equal(runeStrings(got), want) {
		t.Errorf("Do(cat .../no) = %q, want %q", runeStrings(got), want)
	}

	line = []rune("cat " + dir + string(filepath.Separator) + ".h")
	got, _ = c.Do(line, len(line))
	if !slices.Equal(runeStrings(got), []string{"idden"}) {
		t.Errorf("dotfile completion = %q, want [idden]", runeStrings(got))
	}
}

func TestPathCandidates_HidesDotfiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a", ".b"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got := pathCandidates(dir + string(filepath.Separator))
	want := []string{filepath.Join(dir, "a")}
	if !slices.Equal(got, want) {
		t.Errorf("pathCandidates = %q, want %q", got, want)
	}
}

func TestPathCandidates_MissingDir(t *testing.T) {
	if got := pathCandidates("/definitely/not/here/x"); got != nil {
		t.Errorf("pathCandidates on missing dir = %q, want nil", got)
	}
}

// --- env built-in ---

func TestDoEnvBuiltin_AllSubcommands(t *testing.T) {
	c := makeCompleter(t, "env")
	got, length := c.doEnvBuiltin(nil, "")
	if len(got) != 3 {
		t.Errorf("expected 3 subcommand candidates, got %d: %v", len(got), got)
	}
	if length != 0 {
		t.Errorf("expected length 0 for empty toComplete, got %d", length)
	}
}

func TestDoEnvBuiltin_SubcommandPrefix(t *testing.T) {
	c := makeCompleter(t, "env")
	got, _ := c.doEnvBuiltin(nil, "s")
	if len(got) != 1 || string(got[0]) != "et" {
		t.Errorf("expected suffix [et] for prefix 's', got %v", got)
	}
}

func TestDoEnvBuiltin_UnsetKeyPrefix(t *testing.T) {
	c := makeCompleter(t, "env")
	got, _ := c.doEnvBuiltin([]string{"unset"}, "A")
	if len(got) != 1 || string(got[0]) != "LPHA" {
		t.Errorf("expected suffix [LPHA] for prefix 'A', got %v", got)
	}
}

func TestDoEnvBuiltin_UnsetAllKeys(t *testing.T) {
	c := makeCompleter(t, "env")
	got, _ := c.doEnvBuiltin([]string{"unset"}, "")
	if len(got) != 2 {
		t.Errorf("expected 2 key candidates for 'unset', got %v", got)
	}
}

func TestDoEnvBuiltin_SetNoCompletion(t *testing.T) {
	c := makeCompleter(t, "env")
	if got, _ := c.doEnvBuiltin([]string{"set"}, ""); len(got) != 0 {
		t.Errorf("expected no candidates for 'set KEY', got %v", got)
	}
}

func TestCompleterDo_RoutesToEnvBuiltin(t *testing.T) {
	c := makeCompleter(t, "env")
	line := []rune("env un")
	got, length := c.Do(line, len(line))
	if length != 2 || len(got) != 1 || string(got[0]) != "set" {
		t.Errorf("Do(env un) = %q, %d; want [set], 2", runeStrings(got), length)
	}
}
