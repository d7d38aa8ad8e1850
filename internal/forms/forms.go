// Package forms validates and sanitizes posted form fields.
//
// Each create or update handler declares an ordered list of rules. Check trims
// every field, validates the trimmed value against each rule with
// go-playground/validator, and always returns the escaped values so a failed
// submission can be re-rendered with what the user typed.
//
//	result := forms.Check(forms.Values(c, "name"), genreRules)
//	if !result.Valid() {
//	    // re-render with result.Values and result.Errors
//	}
package forms

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// DateLayout is the format of HTML date inputs.
const DateLayout = "2006-01-02"

var validate = validator.New()

// Rule is one constraint on one field. Tag uses validator syntax, e.g.
// "required,max=100" or "omitempty,datetime=2006-01-02".
type Rule struct {
	Field   string
	Message string
	Tag     string
}

// FieldError is a failed rule as shown to the user.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result holds the sanitized values of every checked field and the failed rules.
type Result struct {
	Values map[string]string
	Errors []FieldError
}

// Valid reports whether every rule passed.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Has reports whether the field failed at least one rule.
func (r Result) Has(field string) bool {
	for _, e := range r.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Get returns the sanitized value of a field.
func (r Result) Get(field string) string {
	return r.Values[field]
}

// Check applies rules in order. Fields without a rule are sanitized too.
func Check(values map[string]string, rules []Rule) Result {
	result := Result{Values: make(map[string]string, len(values))}

	for field, raw := range values {
		result.Values[field] = Sanitize(raw)
	}

	for _, rule := range rules {
		value := strings.TrimSpace(values[rule.Field])
		if _, ok := result.Values[rule.Field]; !ok {
			result.Values[rule.Field] = ""
		}
		if err := validate.Var(value, rule.Tag); err != nil {
			result.Errors = append(result.Errors, FieldError{Field: rule.Field, Message: rule.Message})
		}
	}

	return result
}

// Values reads the named fields from the posted form. Missing fields are empty.
func Values(c *gin.Context, fields ...string) map[string]string {
	values := make(map[string]string, len(fields))
	for _, field := range fields {
		values[field] = c.PostForm(field)
	}
	return values
}

// Normalize turns a multi-valued field into a uniform sequence. Blank entries
// are dropped, the rest are sanitized. A single value yields one entry.
func Normalize(values []string) []string {
	normalized := make([]string, 0, len(values))
	for _, v := range values {
		v = Sanitize(v)
		if v == "" {
			continue
		}
		normalized = append(normalized, v)
	}
	return normalized
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Sanitize trims surrounding whitespace and escapes HTML-significant characters.
func Sanitize(s string) string {
	return escaper.Replace(strings.TrimSpace(s))
}

// ParseDate parses an optional YYYY-MM-DD value. Blank input yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
