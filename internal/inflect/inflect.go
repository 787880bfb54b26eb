// Package inflect converts names between the casing and number forms the
// generator needs: snake_case file segments, pluralized resource names and
// capitalized JavaScript identifiers.
package inflect

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jinzhu/inflection"
)

// Inflector is the name-inflection capability used by the scaffold planner.
// Every method works on a single path segment, never on a slash path.
type Inflector interface {
	Underscore(word string) string
	Pluralize(word string) string
	Camelize(word string) string
}

// Namer is the default Inflector. Plural overrides take precedence over the
// inflection rules and are keyed by the snake_case singular.
type Namer struct {
	PluralOverrides map[string]string
}

// New returns a Namer with the given plural overrides. A nil map is fine.
func New(overrides map[string]string) *Namer {
	return &Namer{PluralOverrides: overrides}
}

var (
	// "HTMLParser" -> "HTML_Parser"
	acronymBoundary = regexp.MustCompile(`(\p{Lu})(\p{Lu}\p{Ll})`)
	// "widgetThing" -> "widget_Thing", "Widget2Thing" -> "Widget2_Thing"
	wordBoundary = regexp.MustCompile(`([\p{Ll}\d])(\p{Lu})`)

	separators = strings.NewReplacer("-", "_", " ", "_", ".", "_")
)

// Underscore converts a word to snake_case. Digits stay attached to the
// letters before them ("Widget2" becomes "widget2", "WidgetV2" becomes
// "widget_v2"), and the result never contains an upper-case rune.
func (n *Namer) Underscore(word string) string {
	if isSnake(word) {
		return word
	}
	word = acronymBoundary.ReplaceAllString(word, "${1}_${2}")
	word = wordBoundary.ReplaceAllString(word, "${1}_${2}")
	return strings.ToLower(separators.Replace(strings.TrimSpace(word)))
}

// Pluralize converts a singular word to its plural form. Words the
// inflection rules leave alone because they end in a digit or a non-ASCII
// letter get a plain "s".
func (n *Namer) Pluralize(word string) string {
	if override, ok := n.PluralOverrides[n.Underscore(word)]; ok {
		return override
	}
	plural := inflection.Plural(word)
	if plural == word && !endsInASCIILetter(word) {
		return word + "s"
	}
	return plural
}

// Camelize capitalizes a snake_case word into an UpperCamelCase identifier
// segment ("widget_thing" → "WidgetThing", "widget_v2s" → "WidgetV2s").
func (n *Namer) Camelize(word string) string {
	var b strings.Builder
	for _, part := range strings.Split(word, "_") {
		r, size := utf8.DecodeRuneInString(part)
		if size == 0 {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}
	return b.String()
}

func isSnake(word string) bool {
	if strings.ContainsAny(word, "- .") {
		return false
	}
	return strings.IndexFunc(word, unicode.IsUpper) < 0
}

func endsInASCIILetter(word string) bool {
	r, _ := utf8.DecodeLastRuneInString(word)
	return r < utf8.RuneSelf && unicode.IsLetter(r)
}
