// Package approval locates approval-stage fields in flattened records.
//
// A flattened column is named stage+role+field with no separator. Consumers
// find the fields of one stage/role pair by testing whether a key contains
// stage+role and one of the fixed field suffixes.
package approval

import (
	"sort"
	"strings"
)

// Field suffixes of an approval step. The set is closed.
const (
	DateAssigned   = "Дата назначения"
	DateCompleted  = "Дата выполнения"
	DaysInProgress = "Дней в работе"
)

// Suffixes lists the field suffixes in display order.
var Suffixes = []string{DateAssigned, DateCompleted, DaysInProgress}

// Key returns the flat column name for a stage, role and field.
func Key(stage, role, field string) string {
	return stage + role + field
}

// Matches reports whether key belongs to the stage/role pair and the field suffix.
func Matches(key, stage, role, suffix string) bool {
	return strings.Contains(key, stage+role) && strings.Contains(key, suffix)
}

// Lookup returns the value of the field identified by stage, role and suffix.
// The exact key wins; otherwise the first matching key in sorted order is used.
func Lookup(record map[string]string, stage, role, suffix string) (string, bool) {
	if v, ok := record[Key(stage, role, suffix)]; ok {
		return v, true
	}

	keys := make([]string, 0, len(record))
	for k := range record {
		if Matches(k, stage, role, suffix) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return "", false
	}
	sort.Strings(keys)
	return record[keys[0]], true
}

// Step holds the three fields of one stage/role pair. Missing fields are empty.
type Step struct {
	Stage          string `json:"stage"`
	Role           string `json:"role"`
	DateAssigned   string `json:"date_assigned,omitempty"`
	DateCompleted  string `json:"date_completed,omitempty"`
	DaysInProgress string `json:"days_in_progress,omitempty"`
}

// StepFields collects the approval step of a stage/role pair from a record.
// ok is false when none of the three fields is present.
func StepFields(record map[string]string, stage, role string) (Step, bool) {
	step := Step{Stage: stage, Role: role}
	found := false
	if v, ok := Lookup(record, stage, role, DateAssigned); ok {
		step.DateAssigned, found = v, true
	}
	if v, ok := Lookup(record, stage, role, DateCompleted); ok {
		step.DateCompleted, found = v, true
	}
	if v, ok := Lookup(record, stage, role, DaysInProgress); ok {
		step.DaysInProgress, found = v, true
	}
	return step, found
}
