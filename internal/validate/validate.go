// Package validate runs declarative per-field and whole-object validation
// rules before an entity is persisted. All field violations are collected
// into a single error keyed by field name so callers can report every
// problem in one pass.
package validate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// NonFieldKey is the key under which whole-object violations are reported.
const NonFieldKey = "__all__"

// Config controls how validation is applied. It is passed explicitly to the
// services that run validation; there is no process-wide mutable state.
type Config struct {
	// Disabled skips all validation. Use with caution: persisted instances
	// may end up with broken invariants.
	Disabled bool
	// IncludeNonEditable also runs rules attached to fields the user cannot
	// edit directly, such as creator and modifier stamps.
	IncludeNonEditable bool
}

// Rule validates a single field. Check returns nil for a valid value and a
// violation (built with Fail) otherwise. NonEditable marks rules on fields
// that are not user editable; those run only when the config asks for them.
type Rule struct {
	Check       func() error
	NonEditable bool
}

// Rules maps a field name to its rule. One rule per field.
type Rules map[string]Rule

// Validated is implemented by every entity that declares validation rules.
type Validated interface {
	// ValidationRules returns the per-field rules for the entity.
	ValidationRules() Rules
	// ValidateObject performs whole-object validation after the field rules
	// have run. It may return a violation or an Errors value.
	ValidateObject() error
}

// Errors aggregates all violations of one validation run, keyed by field.
type Errors map[string][]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e[k], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// add appends a violation message under the given field.
func (e Errors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

// merge folds another violation set into this one.
func (e Errors) merge(other Errors) {
	for field, msgs := range other {
		e[field] = append(e[field], msgs...)
	}
}

// Fail builds a single-field violation for use inside a Rule.Check.
func Fail(msg string) error { return violation(msg) }

type violation string

func (v violation) Error() string { return string(v) }

// Run executes the entity's field rules followed by its object rule and
// returns the aggregated violations, or nil when the entity is valid.
// Excluded fields are skipped entirely. Rules are not short-circuited: every
// applicable rule runs even after earlier ones have failed.
func Run(v Validated, cfg Config, exclude ...string) error {
	if cfg.Disabled {
		return nil
	}

	skip := make(map[string]bool, len(exclude))
	for _, f := range exclude {
		skip[f] = true
	}

	found := Errors{}
	for field, rule := range v.ValidationRules() {
		if skip[field] {
			continue
		}
		if rule.NonEditable && !cfg.IncludeNonEditable {
			continue
		}
		if rule.Check == nil {
			continue
		}
		if err := rule.Check(); err != nil {
			found.add(field, err.Error())
		}
	}

	if err := v.ValidateObject(); err != nil {
		var nested Errors
		if errors.As(err, &nested) {
			found.merge(nested)
		} else {
			found.add(NonFieldKey, err.Error())
		}
	}

	if len(found) == 0 {
		return nil
	}
	return found
}
