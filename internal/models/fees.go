package models

import "sort"

// FeeTable maps program code -> category code -> yearly amount in rupees.
// Immutable after load.
type FeeTable map[string]map[string]int

// Lookup returns the configured amount for a program/category pair. The
// second return is false when the pair is not defined.
func (t FeeTable) Lookup(program, category string) (int, bool) {
	categories, ok := t[program]
	if !ok {
		return 0, false
	}
	amount, ok := categories[category]
	return amount, ok
}

// Programs returns the configured program codes in sorted order. The sorted
// order doubles as the match priority used by the fee resolver.
func (t FeeTable) Programs() []string {
	programs := make([]string, 0, len(t))
	for p := range t {
		programs = append(programs, p)
	}
	sort.Strings(programs)
	return programs
}
