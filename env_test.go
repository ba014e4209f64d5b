package mommy

import (
	"bytes"
	"strings"
	"testing"
)

// makeEnvShell builds a Shell with isolated env and output, without going
// through NewShell's config file lookup.
func makeEnvShell(envBuiltin string) *Shell {
	return &Shell{
		cfg: ShellConfig{
			Identity:   Identity{Mode: ModeInteractive, Role: "mommy"},
			EnvBuiltin: envBuiltin,
			Env:        MapSource{"PATH": "/usr/bin"},
			Stdout:     &bytes.Buffer{},
			Stderr:     &bytes.Buffer{},
		},
		sessionEnv: make(map[string]string),
	}
}

func stdoutOf(s *Shell) string { return s.cfg.Stdout.(*bytes.Buffer).String() }
func stderrOf(s *Shell) string { return s.cfg.Stderr.(*bytes.Buffer).String() }

// --- SetEnv / UnsetEnv / SessionEnv ---

func TestSetEnv_StoresValue(t *testing.T) {
	s := makeEnvShell("")
	s.SetEnv("FOO", "bar")
	if got := s.sessionEnv["FOO"]; got != "bar" {
		t.Errorf("sessionEnv[FOO] = %q, want %q", got, "bar")
	}
}

func TestSetEnv_Overwrite(t *testing.T) {
	s := makeEnvShell("")
	s.SetEnv("FOO", "bar")
	s.SetEnv("FOO", "baz")
	if got := s.sessionEnv["FOO"]; got != "baz" {
		t.Errorf("after overwrite, sessionEnv[FOO] = %q, want %q", got, "baz")
	}
}

func TestUnsetEnv_Removes(t *testing.T) {
	s := makeEnvShell("")
	s.SetEnv("FOO", "bar")
	s.UnsetEnv("FOO")
	if _, ok := s.sessionEnv["FOO"]; ok {
		t.Error("expected FOO to be deleted after UnsetEnv")
	}
}

func TestUnsetEnv_MissingKeyIsNoOp(t *testing.T) {
	s := makeEnvShell("")
	s.UnsetEnv("MISSING")
}

func TestSessionEnv_SortedPairs(t *testing.T) {
	s := makeEnvShell("")
	s.SetEnv("ZZZ", "last")
	s.SetEnv("AAA", "first")
	s.SetEnv("MMM", "mid")
	got := s.SessionEnv()
	if len(got) != 3 {
		t.Fatalf("SessionEnv() length = %d, want 3", len(got))
	}
	if got[0] != "AAA=first" || got[1] != "MMM=mid" || got[2] != "ZZZ=last" {
		t.Errorf("SessionEnv() = %v, wrong order or values", got)
	}
}

func TestSessionEnv_Empty(t *testing.T) {
	s := makeEnvShell("")
	if got := s.SessionEnv(); len(got) != 0 {
		t.Errorf("SessionEnv() on empty store = %v, want []", got)
	}
}

// --- buildEnv ---

func TestBuildEnv_SessionShadowsBase(t *testing.T) {
	s := makeEnvShell("")
	s.cfg.Env = MapSource{"PRIORITY": "base"}
	s.SetEnv("PRIORITY", "session")

	// os/exec uses the last occurrence, so find the last PRIORITY entry.
	last := ""
	for _, e := range s.buildEnv() {
		if strings.HasPrefix(e, "PRIORITY=") {
			last = e
		}
	}
	if last != "PRIORITY=session" {
		t.Errorf("last PRIORITY entry = %q, want %q", last, "PRIORITY=session")
	}
}

func TestBuildEnv_InheritsOsEnv(t *testing.T) {
	t.Setenv("SM_INHERIT_TEST", "yes")
	s := makeEnvShell("")
	s.cfg.Env = OSEnv
	found := false
	for _, e := range s.buildEnv() {
		if e == "SM_INHERIT_TEST=yes" {
			found = true
		}
	}
	if !found {
		t.Error("os environ key not present in buildEnv output")
	}
}

func TestSessionEnv_FeedsSettings(t *testing.T) {
	s := makeEnvShell("env")
	s.cfg.Env = MapSource{"SHELL_MOMMYS_MOODS": "chill"}
	s.SetEnv("SHELL_MOMMYS_MOODS", "ominous")
	if got := s.settings().Moods; len(got) != 1 || got[0] != "ominous" {
		t.Errorf("settings().Moods = %v, want [ominous]", got)
	}
	s.UnsetEnv("SHELL_MOMMYS_MOODS")
	if got := s.settings().Moods; len(got) != 1 || got[0] != "chill" {
		t.Errorf("after unset, settings().Moods = %v, want [chill]", got)
	}
}

// --- handleEnvBuiltin ---

func TestHandleEnvBuiltin_Disabled(t *testing.T) {
	s := makeEnvShell("")
	if s.handleEnvBuiltin([]string{"env"}) {
		t.Error("handleEnvBuiltin with empty EnvBuiltin should return false")
	}
}

func TestHandleEnvBuiltin_WrongName(t *testing.T) {
	s := makeEnvShell("environ")
	if s.handleEnvBuiltin([]string{"env"}) {
		t.Error("handleEnvBuiltin with non-matching name should return false")
	}
}

func TestHandleEnvBuiltin_NoSubcommand(t *testing.T) {
	s := makeEnvShell("env")
	if !s.handleEnvBuiltin([]string{"env"}) {
		t.Error("handleEnvBuiltin with no subcommand should return true")
	}
	if !strings.Contains(stderrOf(s), "usage: env") {
		t.Errorf("stderr = %q, want usage", stderrOf(s))
	}
}

func TestHandleEnvBuiltin_List(t *testing.T) {
	s := makeEnvShell("env")
	s.SetEnv("K", "V")
	if !s.handleEnvBuiltin([]string{"env", "list"}) {
		t.Error("handleEnvBuiltin list should return true")
	}
	if got := stdoutOf(s); got != "K=V\n" {
		t.Errorf("list output = %q, want %q", got, "K=V\n")
	}
}

func TestHandleEnvBuiltin_Set(t *testing.T) {
	s := makeEnvShell("env")
	if !s.handleEnvBuiltin([]string{"env", "set", "MY_KEY", "my_value"}) {
		t.Error("handleEnvBuiltin set should return true")
	}
	if s.sessionEnv["MY_KEY"] != "my_value" {
		t.Errorf("expected MY_KEY=my_value in sessionEnv, got %v", s.sessionEnv)
	}
}

func TestHandleEnvBuiltin_SetWrongArgCount(t *testing.T) {
	s := makeEnvShell("env")
	if !s.handleEnvBuiltin([]string{"env", "set", "ONLY_KEY"}) {
		t.Error("handleEnvBuiltin set with wrong arg count should return true")
	}
	if len(s.sessionEnv) != 0 {
		t.Errorf("sessionEnv = %v, want empty", s.sessionEnv)
	}
}

func TestHandleEnvBuiltin_Unset(t *testing.T) {
	s := makeEnvShell("env")
	s.SetEnv("DEL", "me")
	if !s.handleEnvBuiltin([]string{"env", "unset", "DEL"}) {
		t.Error("handleEnvBuiltin unset should return true")
	}
	if _, ok := s.sessionEnv["DEL"]; ok {
		t.Error("key should have been deleted by unset")
	}
}

func TestHandleEnvBuiltin_UnsetWrongArgCount(t *testing.T) {
	s := makeEnvShell("env")
	if !s.handleEnvBuiltin([]string{"env", "unset"}) {
		t.Error("handleEnvBuiltin unset with no KEY should return true")
	}
}

func TestHandleEnvBuiltin_UnknownSubcommand(t *testing.T) {
	s := makeEnvShell("env")
	if !s.handleEnvBuiltin([]string{"env", "badcmd"}) {
		t.Error("handleEnvBuiltin with unknown subcommand should return true")
	}
	if !strings.Contains(stderrOf(s), `unknown subcommand "badcmd"`) {
		t.Errorf("stderr = %q", stderrOf(s))
	}
}

// --- envBuiltinKeys ---

func TestEnvBuiltinKeys(t *testing.T) {
	got := envBuiltinKeys([]string{"AAA=1", "BBB=2", "CCC=3"})
	if len(got) != 3 || got[0] != "AAA" || got[1] != "BBB" || got[2] != "CCC" {
		t.Errorf("envBuiltinKeys = %v, want [AAA BBB CCC]", got)
	}
}

func TestEnvBuiltinKeys_Empty(t *testing.T) {
	if got := envBuiltinKeys(nil); len(got) != 0 {
		t.Errorf("envBuiltinKeys(nil) = %v, want []", got)
	}
}
