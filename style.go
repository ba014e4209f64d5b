package mommy

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// hiddenSeq is SGR 8 (conceal); termenv has no constant for it.
const hiddenSeq = "8"

var attributeCodes = map[string]string{
	"bold":          termenv.BoldSeq,
	"dim":           termenv.FaintSeq,
	"dimmed":        termenv.FaintSeq,
	"faint":         termenv.FaintSeq,
	"italic":        termenv.ItalicSeq,
	"underline":     termenv.UnderlineSeq,
	"blink":         termenv.BlinkSeq,
	"reverse":       termenv.ReverseSeq,
	"reverse-video": termenv.ReverseSeq,
	"hidden":        hiddenSeq,
	"conceal":       hiddenSeq,
}

var namedColors = map[string]termenv.ANSIColor{
	"black":   termenv.ANSIBlack,
	"red":     termenv.ANSIRed,
	"green":   termenv.ANSIGreen,
	"yellow":  termenv.ANSIYellow,
	"blue":    termenv.ANSIBlue,
	"purple":  termenv.ANSIMagenta,
	"magenta": termenv.ANSIMagenta,
	"cyan":    termenv.ANSICyan,
	"white":   termenv.ANSIWhite,
}

// Styler wraps rendered messages in SGR sequences for the terminal it was
// built for. The Ascii profile never styles.
type Styler struct {
	Profile termenv.Profile
}

// NewStyler returns a Styler for whatever w is, honouring NO_COLOR and
// CLICOLOR_FORCE.
func NewStyler(w io.Writer) Styler {
	return Styler{Profile: termenv.NewOutput(w).EnvColorProfile()}
}

// Style draws one color and one attribute combination from s and applies them
// to text. Anything that does not parse is skipped, and text comes back bare
// when nothing applies.
func (st Styler) Style(text string, s Settings, rng Rand) string {
	color := pick(rng, s.Colors)
	attrs := pick(rng, s.Styles)
	if st.Profile == termenv.Ascii {
		return text
	}

	codes := attributeSeqs(attrs)
	if c := parseColor(color); c != nil {
		if seq := st.Profile.Convert(c).Sequence(false); seq != "" {
			codes = append(codes, seq)
		}
	}
	if len(codes) == 0 {
		return text
	}
	return termenv.CSI + strings.Join(codes, ";") + "m" + text + termenv.CSI + termenv.ResetSeq + "m"
}

// attributeSeqs maps attribute names to SGR codes, ascending and without
// duplicates.
func attributeSeqs(attrs StyleSet) []string {
	var nums []int
	for _, a := range attrs {
		seq, ok := attributeCodes[strings.ToLower(strings.TrimSpace(a))]
		if !ok {
			continue
		}
		n, _ := strconv.Atoi(seq)
		nums = append(nums, n)
	}
	slices.Sort(nums)
	nums = slices.Compact(nums)

	out := make([]string, 0, len(nums)+1)
	for _, n := range nums {
		out = append(out, strconv.Itoa(n))
	}
	return out
}

// parseColor returns nil for anything that is not a known color name or a
// well-formed "r,g,b" triple.
func parseColor(c ColorSpec) termenv.Color {
	v := strings.TrimSpace(c.Value)
	if v == "" {
		return nil
	}
	if !c.RGB {
		if ansi, ok := namedColors[strings.ToLower(v)]; ok {
			return ansi
		}
		return nil
	}
	r, g, b, ok := parseRGB(v)
	if !ok {
		return nil
	}
	return termenv.RGBColor(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

func parseRGB(v string) (r, g, b uint8, ok bool) {
	parts := strings.Split(v, ",")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	var rgb [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return 0, 0, 0, false
		}
		rgb[i] = uint8(n)
	}
	return rgb[0], rgb[1], rgb[2], true
}
