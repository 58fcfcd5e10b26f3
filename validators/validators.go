// Package validators holds the write-time field validation rules shared by
// the repositories. Rules are pure functions over a typed field value; each
// returns nil on success or a structured violation. Repositories run them as
// an ordered sequence and aggregate the results into a single
// errs.ValidationError.
package validators

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nvoronin/portfolio-backend/errs"
)

var slugPattern = regexp.MustCompile(`^[-_a-z0-9]+$`)

// StringRule validates a named string field.
type StringRule func(field, value string) *errs.Violation

// IntRule validates a named integer field.
type IntRule func(field string, value int) *errs.Violation

func Required() StringRule {
	return func(field, value string) *errs.Violation {
		if strings.TrimSpace(value) == "" {
			return &errs.Violation{
				Field:   field,
				Code:    errs.CodeRequired,
				Message: "this field is required",
			}
		}
		return nil
	}
}

func MaxLength(max int) StringRule {
	return func(field, value string) *errs.Violation {
		if len([]rune(value)) > max {
			return &errs.Violation{
				Field:   field,
				Code:    errs.CodeMaxLength,
				Message: fmt.Sprintf("ensure this value has at most %d characters (it has %d)", max, len([]rune(value))),
			}
		}
		return nil
	}
}

// SlugPattern accepts only "[-_a-z0-9]+". Case is not this rule's concern:
// slugs are lower-cased at write time, before validation runs.
func SlugPattern() StringRule {
	return func(field, value string) *errs.Violation {
		if value == "" {
			return nil
		}
		if !slugPattern.MatchString(value) {
			return &errs.Violation{
				Field:   field,
				Code:    errs.CodeInvalidSlug,
				Message: "enter a valid slug consisting of lower-case letters, numbers, underscores or hyphens",
			}
		}
		return nil
	}
}

func IntRange(min, max int) IntRule {
	return func(field string, value int) *errs.Violation {
		if value < min || value > max {
			return &errs.Violation{
				Field:   field,
				Code:    errs.CodeOutOfRange,
				Message: fmt.Sprintf("ensure this value is between %d and %d", min, max),
			}
		}
		return nil
	}
}

// RunString applies rules in order and collects every violation.
func RunString(field, value string, rules ...StringRule) []errs.Violation {
	var out []errs.Violation
	for _, rule := range rules {
		if v := rule(field, value); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

func RunInt(field string, value int, rules ...IntRule) []errs.Violation {
	var out []errs.Violation
	for _, rule := range rules {
		if v := rule(field, value); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// Slugify derives a URL-safe slug from arbitrary text: lower-case, runs of
// non-alphanumerics collapsed to single hyphens, leading and trailing
// hyphens stripped.
func Slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pendingHyphen := false
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == '_':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteByte('_')
		default:
			pendingHyphen = true
		}
	}
	return strings.Trim(b.String(), "-_")
}
