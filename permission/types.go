// Package permission holds the domain types shared by the comparison and
// reconciliation packages: permission records, snapshots, and the rows of
// the left-vs-right grid.
package permission

import "encoding/json"

// DisplaySentinel marks an absent action or domain in grid output. Real
// action values never collide with it; the owning system stores verbs.
const DisplaySentinel = "-"

// Record is one granted action for a named capability within a domain.
// The store holds at most one record per (Domain, Name) pair; the gateway's
// check-then-write enforces that, not a schema constraint.
type Record struct {
	Domain string
	Name   string
	Action string
}

// Action is an optional action value. An invalid Action means the
// permission is absent on that side of a comparison. Comparable with ==,
// so grid cells never need a null check.
type Action struct {
	Value string
	Valid bool
}

// Present wraps a real action value.
func Present(value string) Action {
	return Action{Value: value, Valid: true}
}

func (a Action) String() string {
	if !a.Valid {
		return DisplaySentinel
	}
	return a.Value
}

// MarshalJSON renders the action as its grid cell: the value, or the
// display sentinel when absent.
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts a grid cell: the sentinel, an empty string, and
// JSON null all decode as absent.
func (a *Action) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" || s == DisplaySentinel {
		*a = Action{}
		return nil
	}
	*a = Action{Value: s, Valid: true}
	return nil
}

// Status classifies one comparison row.
type Status string

const (
	StatusCommon    Status = "Common"
	StatusOnlyLeft  Status = "Only in Left"
	StatusOnlyRight Status = "Only in Right"
	StatusDifferent Status = "Different"
)

// Row is one line of a left-vs-right comparison. Rows are rebuilt on every
// comparison request and never persisted; the UI keeps the previous grid as
// its baseline for change detection. TargetAction is the only field the
// grid lets the operator edit.
type Row struct {
	SourceDomain string `json:"source_domain"`
	Name         string `json:"name"`
	SourceAction Action `json:"source_action"`
	TargetDomain string `json:"target_domain"`
	TargetAction Action `json:"target_action"`
	Status       Status `json:"status"`
	CanUpdate    bool   `json:"can_update"`
	CanDelete    bool   `json:"can_delete"`
}

// Snapshot is the full permission set fetched for a set of domains at a
// point in time. Snapshots are immutable once handed to the cache; a fresh
// fetch produces a new one.
type Snapshot struct {
	Domains []string
	Records []Record
}

// ByName indexes the snapshot for the comparison join. When several
// domains of the set carry the same permission name, the record fetched
// last wins, keeping the grid to a single row per name.
func (s Snapshot) ByName() map[string]Record {
	byName := make(map[string]Record, len(s.Records))
	for _, rec := range s.Records {
		byName[rec.Name] = rec
	}
	return byName
}
