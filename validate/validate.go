// ABOUTME: Declarative per-field soft validation for record drafts
// ABOUTME: Evaluates one field at a time and reports the first violated rule
package validate

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Rule describes the constraints for one field. Zero values disable a check.
type Rule struct {
	Required        bool
	RequiredMessage string

	MinLength  int
	MinMessage string
	MaxLength  int
	MaxMessage string

	Email         bool
	URL           bool
	FormatMessage string

	Pattern        *regexp.Regexp
	PatternMessage string

	Numeric        bool
	NumericMessage string

	Enum        []string
	EnumMessage string

	// MatchField requires this field to equal another field of the draft.
	MatchField   string
	MatchMessage string
}

// Schema maps field names to rules.
type Schema map[string]Rule

// Errors maps field names to their current advisory message.
type Errors map[string]string

// Pattern compiles a regular expression for use in a Rule.
func Pattern(expr string) *regexp.Regexp {
	return regexp.MustCompile(expr)
}

// Check evaluates the rule for field against the draft's field values.
// It returns the first violation message, or "" when the value is valid.
// Fields without a rule are always valid.
func (s Schema) Check(field string, draft map[string]any) string {
	rule, ok := s[field]
	if !ok {
		return ""
	}
	value := stringify(draft[field])
	trimmed := strings.TrimSpace(value)

	if trimmed == "" {
		if rule.Required {
			return orDefault(rule.RequiredMessage, humanize(field)+" is required")
		}
		return ""
	}

	length := utf8.RuneCountInString(value)
	if rule.MinLength > 0 && length < rule.MinLength {
		return orDefault(rule.MinMessage, humanize(field)+" must be at least "+strconv.Itoa(rule.MinLength)+" characters long")
	}
	if rule.MaxLength > 0 && length > rule.MaxLength {
		return orDefault(rule.MaxMessage, humanize(field)+" cannot exceed "+strconv.Itoa(rule.MaxLength)+" characters")
	}
	if rule.Email && !emailPattern.MatchString(trimmed) {
		return orDefault(rule.FormatMessage, "Invalid email format")
	}
	if rule.URL && !validURL(trimmed) {
		return orDefault(rule.FormatMessage, "Invalid URL format")
	}
	if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
		return orDefault(rule.PatternMessage, humanize(field)+" contains invalid characters")
	}
	if rule.Numeric {
		if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
			return orDefault(rule.NumericMessage, humanize(field)+" must be numeric")
		}
	}
	if len(rule.Enum) > 0 && !contains(rule.Enum, value) {
		return orDefault(rule.EnumMessage, "Invalid "+strings.ToLower(humanize(field)))
	}
	if rule.MatchField != "" && value != stringify(draft[rule.MatchField]) {
		return orDefault(rule.MatchMessage, humanize(field)+" does not match")
	}
	return ""
}

// CheckAll evaluates every rule in the schema.
func (s Schema) CheckAll(draft map[string]any) Errors {
	errs := Errors{}
	for field := range s {
		if msg := s.Check(field, draft); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

// Set returns a copy of errs with the message for field updated.
// An empty message clears the entry.
func (e Errors) Set(field, msg string) Errors {
	out := make(Errors, len(e)+1)
	for k, v := range e {
		out[k] = v
	}
	if msg == "" {
		delete(out, field)
	} else {
		out[field] = msg
	}
	return out
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	}
	return ""
}

func validURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func contains(values []string, v string) bool {
	for _, allowed := range values {
		if allowed == v {
			return true
		}
	}
	return false
}

func orDefault(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}

func humanize(field string) string {
	words := strings.Fields(strings.ReplaceAll(field, "_", " "))
	if len(words) == 0 {
		return field
	}
	words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	return strings.Join(words, " ")
}
