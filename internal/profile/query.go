package profile

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

const (
	// MaxCompare is the most diagnoses that can be compared at once.
	MaxCompare = 3

	// SpinCost is the point price of one reward draw.
	SpinCost = 10
)

// SortKey orders a history listing.
type SortKey string

const (
	SortByDate  SortKey = "date"
	SortByTitle SortKey = "title"
)

// FindDiagnoses returns the stored diagnoses whose IDs are in ids, in stored
// order, capped at MaxCompare. Unknown IDs are skipped.
func FindDiagnoses(ud *UserData, ids []string) []Diagnosis {
	var found []Diagnosis
	for _, d := range ud.CompletedDiagnoses {
		if len(found) == MaxCompare {
			break
		}
		if slices.Contains(ids, d.ID) {
			found = append(found, d)
		}
	}
	return found
}

// SearchDiagnoses filters list to entries whose result title or type
// contains term, case-insensitively, and sorts the matches. Date order is
// newest first. The input slice is not modified.
func SearchDiagnoses(list []Diagnosis, term string, by SortKey) []Diagnosis {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]Diagnosis, 0, len(list))
	for _, d := range list {
		if term == "" ||
			strings.Contains(strings.ToLower(d.Result.Title), term) ||
			strings.Contains(strings.ToLower(d.Result.Type), term) {
			out = append(out, d)
		}
	}

	switch by {
	case SortByTitle:
		slices.SortStableFunc(out, func(a, b Diagnosis) int {
			return cmp.Compare(strings.ToLower(a.Result.Title), strings.ToLower(b.Result.Title))
		})
	default:
		slices.SortStableFunc(out, func(a, b Diagnosis) int {
			return b.CompletedAt.Compare(a.CompletedAt)
		})
	}
	return out
}

// CanSpin reports whether ud may pay for a reward draw: at least one
// completed diagnosis and SpinCost points.
func CanSpin(ud *UserData) bool {
	return len(ud.CompletedDiagnoses) > 0 && ud.Points >= SpinCost
}

// ExportFilename is the suggested file name for an export taken at t.
func ExportFilename(t time.Time) string {
	return "shindan-data-" + t.Format(time.DateOnly) + ".json"
}

// DebugFilename is the suggested file name for a raw store dump taken at t.
func DebugFilename(t time.Time) string {
	return "debug-store-" + t.Format(time.DateOnly) + ".json"
}
