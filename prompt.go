package mommy

// ANSI codes for [Colorize].
const (
	ColorReset   = "\033[0m"
	ColorRed     = "\033[31m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
	ColorBold    = "\033[1m"
)

// Colorize wraps text in code for use inside a readline prompt. The escape
// sequences sit between \x01 and \x02 (RL_PROMPT_START_IGNORE and
// RL_PROMPT_END_IGNORE) so readline counts only the visible characters.
// An empty code returns text unchanged.
func Colorize(text, code string) string {
	if code == "" {
		return text
	}
	return "\x01" + code + "\x02" + text + "\x01" + ColorReset + "\x02"
}
