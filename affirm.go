package mommy

import (
	"fmt"
	"io"
	"log/slog"
)

// Engine turns an outcome into a styled affirmation. The one-shot front-ends
// build one per invocation; the interactive shell builds one per command line.
type Engine struct {
	Settings Settings
	Catalog  *Catalog
	Styler   Styler
	Rand     Rand
	Logger   *slog.Logger
}

// Affirmation draws a mood, a template for outcome, and renders and styles
// it.
func (e *Engine) Affirmation(outcome Outcome) string {
	rng := e.Rand
	if rng == nil {
		rng = NewRand()
	}
	cat := e.Catalog
	if cat == nil {
		cat = Default()
	}

	mood := pick(rng, e.Settings.Moods)
	if mood == "" {
		mood = defaultMood
	}
	if e.Settings.MoodMixing && mood == MoodOminous {
		cat = cat.Mix(MoodOminous, MoodThirsty, MoodMixChance, rng)
	}

	tmpl := pick(rng, cat.Select(mood, outcome))
	loggerOr(e.Logger).Debug("affirmation selected", "mood", mood, "outcome", outcome)

	return e.Styler.Style(Render(tmpl, e.Settings, rng), e.Settings, rng)
}

// Write prints the affirmation for code to w unless the settings silence it.
// Nothing that goes wrong here is reported: a panic is recovered and write
// errors are dropped, so the caller can always return the wrapped exit code.
func (e *Engine) Write(w io.Writer, code int) {
	outcome := OutcomeOf(code)
	if e.Settings.OnlyNegative && outcome == Success {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			loggerOr(e.Logger).Debug("affirmation failed", "panic", r)
		}
	}()
	_, _ = fmt.Fprintln(w, e.Affirmation(outcome))
}
