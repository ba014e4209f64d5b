package mommy

import "strings"

// Values substituted when a Settings list is empty. Resolve never produces
// empty lists, but Settings built by hand may.
var renderDefaults = struct {
	role, pronoun, little, emote string
}{defaultRole, defaultPronoun, defaultLittle, defaultEmotes[0]}

// Placeholder tokens recognised by [Render].
const (
	PlaceholderRoles    = "{roles}"
	PlaceholderPronouns = "{pronouns}"
	PlaceholderLittle   = "{little}"
	PlaceholderEmotes   = "{emotes}"
)

// Render fills the placeholders in tmpl. One value per placeholder is drawn
// from s (roles, pronouns, little, emotes, in that order) and every occurrence
// of that placeholder gets it. Substituted text is not scanned again and
// unknown {...} sequences are left alone.
func Render(tmpl string, s Settings, rng Rand) string {
	values := [...]struct{ token, value string }{
		{PlaceholderRoles, drawOr(rng, s.Roles, renderDefaults.role)},
		{PlaceholderPronouns, drawOr(rng, s.Pronouns, renderDefaults.pronoun)},
		{PlaceholderLittle, drawOr(rng, s.Little, renderDefaults.little)},
		{PlaceholderEmotes, drawOr(rng, s.Emotes, renderDefaults.emote)},
	}

	var b strings.Builder
	b.Grow(len(tmpl))
	rest := tmpl
	for {
		i := strings.IndexByte(rest, '{')
		if i < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:i])
		rest = rest[i:]

		matched := false
		for _, v := range values {
			if strings.HasPrefix(rest, v.token) {
				b.WriteString(v.value)
				rest = rest[len(v.token):]
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte('{')
			rest = rest[1:]
		}
	}
	return b.String()
}

func drawOr(rng Rand, xs []string, def string) string {
	if len(xs) == 0 {
		return def
	}
	return pick(rng, xs)
}
