package mommy

import (
	"path/filepath"
	"strings"
)

// DetectIdentity works out the front-end and role from the name the binary
// was invoked as:
//
//	mommy, daddy            ModeShell, role from the name
//	cargo-mommy             ModeCargo, role after "cargo-"
//	mommy-shell             ModeInteractive, role before "-shell"
//
// Any directory and a trailing ".exe" are ignored. A role is accepted only
// when it is a single lowercase ASCII word; otherwise a name containing
// "daddy" yields "daddy" and anything else "mommy".
func DetectIdentity(name string) Identity {
	base := filepath.Base(name)
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".exe") {
		base = strings.TrimSuffix(base, ext)
	}

	id := Identity{Mode: ModeShell}
	candidate := base
	parts := strings.Split(base, "-")
	switch {
	case len(parts) > 1 && parts[0] == "cargo":
		id.Mode = ModeCargo
		candidate = strings.Join(parts[1:], "-")
	case len(parts) > 1 && parts[len(parts)-1] == "shell":
		id.Mode = ModeInteractive
		candidate = strings.Join(parts[:len(parts)-1], "-")
	}

	switch {
	case isRoleWord(candidate):
		id.Role = candidate
	case strings.Contains(strings.ToLower(base), "daddy"):
		id.Role = "daddy"
	default:
		id.Role = defaultRole
	}
	return id
}

// isRoleWord reports whether s is a non-empty run of a-z.
func isRoleWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
