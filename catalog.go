package mommy

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed assets/affirmations.json
var defaultCatalogJSON []byte

// FallbackAffirmation is served when the selected list is empty, so a message
// is never silently dropped.
const FallbackAffirmation = "{roles} failed to load any affirmations, {little}~ {emotes}"

// Mood names the engine treats specially.
const (
	MoodChill   = "chill"
	MoodOminous = "ominous"
	MoodThirsty = "thirsty"
)

// MoodMixChance is how often an ominous line picks up a thirsty one when
// mood mixing is on.
const MoodMixChance = 0.2

// Outcome is the result of the wrapped command.
type Outcome int

const (
	Success Outcome = iota
	Failure
)

// OutcomeOf maps an exit code to an Outcome.
func OutcomeOf(code int) Outcome {
	if code == 0 {
		return Success
	}
	return Failure
}

func (o Outcome) String() string {
	if o == Success {
		return "success"
	}
	return "failure"
}

// MoodSet holds the templates of one mood.
type MoodSet struct {
	Positive []string `json:"positive" toml:"positive" yaml:"positive"`
	Negative []string `json:"negative" toml:"negative" yaml:"negative"`
}

// catalogFile is the on-disk document. Both the nested moods and the legacy
// top-level lists are optional.
type catalogFile struct {
	Moods    map[string]MoodSet `json:"moods" toml:"moods" yaml:"moods"`
	Positive []string           `json:"positive" toml:"positive" yaml:"positive"`
	Negative []string           `json:"negative" toml:"negative" yaml:"negative"`
}

// Catalog maps mood names to their templates. Lookups that miss resolve to the
// fallback set: the "chill" mood when the document has one, otherwise the
// top-level lists. A Catalog is read-only once built.
type Catalog struct {
	moods    map[string]MoodSet
	fallback MoodSet
}

// Format is a catalog document encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatTOML
	FormatYAML
)

// FormatFor picks the format from the file extension. Anything unrecognised
// is read as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "json"
	}
}

// Parse decodes a catalog document.
func Parse(data []byte, format Format) (*Catalog, error) {
	var doc catalogFile
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s catalog: %w", format, err)
	}
	return newCatalog(doc), nil
}

func newCatalog(doc catalogFile) *Catalog {
	c := &Catalog{
		moods:    make(map[string]MoodSet, len(doc.Moods)),
		fallback: MoodSet{Positive: doc.Positive, Negative: doc.Negative},
	}
	maps.Copy(c.moods, doc.Moods)
	if chill, ok := c.moods[MoodChill]; ok {
		c.fallback = chill
	}
	return c
}

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	c, err := Parse(defaultCatalogJSON, FormatJSON)
	if err != nil {
		panic("mommy: embedded catalog: " + err.Error())
	}
	return c
}

// Load reads the catalog at path. An empty path, an unreadable file or a
// document that does not parse all yield [Default]; the failure is only
// visible in debug logs.
func Load(path string, logger *slog.Logger) *Catalog {
	logger = loggerOr(logger)
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("custom affirmations unreadable, using defaults", "path", path, "err", err)
		return Default()
	}
	c, err := Parse(data, FormatFor(path))
	if err != nil {
		logger.Debug("custom affirmations invalid, using defaults", "path", path, "err", err)
		return Default()
	}
	logger.Debug("loaded custom affirmations", "path", path, "moods", len(c.moods))
	return c
}

// Select returns the templates for mood and outcome. The result is never
// empty.
func (c *Catalog) Select(mood string, outcome Outcome) []string {
	set, ok := c.moods[mood]
	if !ok {
		set = c.fallback
	}
	list := set.Positive
	if outcome == Failure {
		list = set.Negative
	}
	if len(list) == 0 {
		return []string{FallbackAffirmation}
	}
	return list
}

// Has reports whether mood has its own entry.
func (c *Catalog) Has(mood string) bool {
	_, ok := c.moods[mood]
	return ok
}

// Moods returns the mood names in sorted order.
func (c *Catalog) Moods() []string {
	return slices.Sorted(maps.Keys(c.moods))
}

// Mix returns a catalog in which, with probability p, one random primary
// template of each outcome has a random secondary template of the same
// outcome appended. c is returned unchanged when either mood is missing or
// the draw fails.
func (c *Catalog) Mix(primary, secondary string, p float64, rng Rand) *Catalog {
	pset, ok := c.moods[primary]
	if !ok {
		return c
	}
	sset, ok := c.moods[secondary]
	if !ok {
		return c
	}
	if rng.Float64() >= p {
		return c
	}

	mixed := MoodSet{
		Positive: appendLine(pset.Positive, sset.Positive, rng),
		Negative: appendLine(pset.Negative, sset.Negative, rng),
	}
	out := &Catalog{moods: maps.Clone(c.moods), fallback: c.fallback}
	out.moods[primary] = mixed
	if primary == MoodChill {
		out.fallback = mixed
	}
	return out
}

func appendLine(dst, src []string, rng Rand) []string {
	if len(dst) == 0 || len(src) == 0 {
		return dst
	}
	extra := pick(rng, src)
	out := slices.Clone(dst)
	i := rng.IntN(len(out))
	out[i] += " " + extra
	return out
}
