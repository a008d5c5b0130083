package main

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// ErrInvalidSelection is the sentinel error wrapped by InvalidSelectionError.
var ErrInvalidSelection = errors.New("invalid selection")

var (
	selectionSeparators = regexp.MustCompile(`[,\s]+`)
	quitKeywords        = map[string]bool{"q": true, "quit": true, "exit": true}
)

// SelectionKind tells callers how to branch on a parsed selection
type SelectionKind int

const (
	// SelectionNone means the user entered nothing and wants to cancel.
	SelectionNone SelectionKind = iota
	// SelectionQuit means the user typed a quit keyword.
	SelectionQuit
	// SelectionPicked means Indices holds at least one valid index.
	SelectionPicked
)

// Selection is the result of parsing a selection expression such as "1 2 5-7".
type Selection struct {
	Kind SelectionKind
	// Indices are 1-based, unique and ascending.
	Indices []int
}

// InvalidSelectionError is returned for malformed or out-of-range expressions.
// It wraps ErrInvalidSelection for errors.Is() compatibility.
type InvalidSelectionError struct {
	Input  string
	Reason string
}

func (e *InvalidSelectionError) Error() string {
	return e.Reason
}

// Unwrap returns ErrInvalidSelection for errors.Is() compatibility.
func (e *InvalidSelectionError) Unwrap() error { return ErrInvalidSelection }

func isQuit(input string) bool {
	return quitKeywords[strings.ToLower(strings.TrimSpace(input))]
}

// ParseSelection turns raw user input into indices within [1, count].
// Tokens are separated by commas or whitespace and are either a number or an
// inclusive "start-end" range; reversed ranges are swapped.
func ParseSelection(raw string, count int) (Selection, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Selection{Kind: SelectionNone}, nil
	}
	if isQuit(raw) {
		return Selection{Kind: SelectionQuit}, nil
	}

	picked := make(map[int]bool)
	for _, token := range selectionSeparators.Split(raw, -1) {
		if token == "" {
			continue
		}
		start, end, err := parseSelectionToken(token)
		if err != nil {
			return Selection{}, &InvalidSelectionError{
				Input:  raw,
				Reason: fmt.Sprintf("invalid selection %q: %v", token, err),
			}
		}
		if start > end {
			start, end = end, start
		}
		// Out-of-range indices are dropped, so only the overlap is expanded
		for i := max(start, 1); i <= min(end, count); i++ {
			picked[i] = true
		}
	}

	if len(picked) == 0 {
		return Selection{}, &InvalidSelectionError{Input: raw, Reason: "no valid selections"}
	}
	return Selection{Kind: SelectionPicked, Indices: slices.Sorted(maps.Keys(picked))}, nil
}

func parseSelectionToken(token string) (int, int, error) {
	startText, endText, isRange := strings.Cut(token, "-")
	if !isRange {
		n, err := strconv.Atoi(token)
		if err != nil {
			return 0, 0, errors.New("not a number")
		}
		return n, n, nil
	}

	start, err := strconv.Atoi(startText)
	if err != nil {
		return 0, 0, errors.New("range start is not a number")
	}
	end, err := strconv.Atoi(endText)
	if err != nil {
		return 0, 0, errors.New("range end is not a number")
	}
	return start, end, nil
}
