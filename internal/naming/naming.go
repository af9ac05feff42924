package naming

import (
	"log/slog"
	"strings"
	"unicode"

	"accessor-rename/internal/renametable"
	"accessor-rename/internal/setutil"

	"github.com/jinzhu/inflection"
)

// Namer converts model accessor names (camelCase) into the plural
// snake_case names used for mapped tables.
type Namer struct {
	config Config
	logger *slog.Logger
}

// New creates a Namer with the given configuration
func New(cfg Config, logger *slog.Logger) *Namer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Namer{
		config: cfg,
		logger: logger,
	}
}

// Pluralize converts a singular word to its plural form.
// Checks custom overrides first, then falls back to the inflection library.
func (n *Namer) Pluralize(word string) string {
	if override, ok := n.override(word); ok {
		return override
	}
	return inflection.Plural(word)
}

// override looks word up as given, then lower-cased, since keys loaded
// through the config layer arrive lower-cased.
func (n *Namer) override(word string) (string, bool) {
	if override, ok := n.config.PluralOverrides[word]; ok {
		return override, true
	}
	override, ok := n.config.PluralOverrides[strings.ToLower(word)]
	return override, ok
}

// TableAccessor returns the plural snake_case accessor for a model name.
// Example: "teamMember" -> "team_members", "workflowHistory" -> "workflow_history"
// (with a "history" override).
func (n *Namer) TableAccessor(model string) string {
	if override, ok := n.override(model); ok {
		return override
	}

	words := SplitWords(model)
	if len(words) == 0 {
		return ""
	}
	last := len(words) - 1
	words[last] = n.Pluralize(words[last])
	return strings.Join(words, "_")
}

// Suggest builds rename entries for the given model names. Blank and repeated
// names are dropped. Models that derive the same accessor are kept but logged.
func (n *Namer) Suggest(models []string) []renametable.Entry {
	models = setutil.Dedupe(models)

	seen := make(map[string]string, len(models))
	entries := make([]renametable.Entry, 0, len(models))
	for _, model := range models {
		accessor := n.TableAccessor(model)
		if existing, ok := seen[accessor]; ok {
			n.logger.Warn("models derive the same accessor",
				slog.String("accessor", accessor),
				slog.String("existing_model", existing),
				slog.String("new_model", model),
			)
		} else {
			seen[accessor] = model
		}
		entries = append(entries, renametable.Entry{Singular: model, Plural: accessor})
	}
	return entries
}

// SplitWords splits camelCase, PascalCase, snake_case and kebab-case names
// into lower-case words. Acronym runs stay together: "HTTPRequest" -> [http request].
func SplitWords(name string) []string {
	runes := []rune(name)
	var words []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, strings.ToLower(string(current)))
			current = current[:0]
		}
	}

	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(current) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		current = append(current, r)
	}
	flush()
	return words
}

// ToSnakeCase converts a model name to snake_case without pluralizing.
// Example: "bookingStepConfig" -> "booking_step_config"
func ToSnakeCase(name string) string {
	return strings.Join(SplitWords(name), "_")
}
