// Package enums maps small fixed code sets to display labels. Entities store
// the single-character code; API responses show the label.
package enums

import "fmt"

// Choice pairs a persisted code with its human readable label.
type Choice struct {
	Code  string
	Label string
}

// Set is an ordered collection of choices for one field.
type Set []Choice

// Label returns the display label for the given code.
func (s Set) Label(code string) (string, error) {
	for _, c := range s {
		if c.Code == code {
			return c.Label, nil
		}
	}
	return "", fmt.Errorf("enums: unknown code %q", code)
}

// Code returns the persisted code for the given label.
func (s Set) Code(label string) (string, error) {
	for _, c := range s {
		if c.Label == label {
			return c.Code, nil
		}
	}
	return "", fmt.Errorf("enums: unknown label %q", label)
}

// Codes returns every code in the set, in declaration order.
func (s Set) Codes() []string {
	codes := make([]string, 0, len(s))
	for _, c := range s {
		codes = append(codes, c.Code)
	}
	return codes
}

// Valid reports whether the code belongs to the set.
func (s Set) Valid(code string) bool {
	_, err := s.Label(code)
	return err == nil
}
