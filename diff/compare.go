// Package diff computes the classified comparison between two permission
// snapshots and detects which rows of an edited grid actually changed.
package diff

import (
	"sort"

	"permsync/permission"
)

// Compare performs a full outer join of left and right on permission name
// and classifies every joined row. The side missing a name contributes an
// absent action, so the classification below is total. Rows come back
// sorted by name so repeated comparisons render identically.
func Compare(left, right permission.Snapshot) []permission.Row {
	leftByName := left.ByName()
	rightByName := right.ByName()

	names := make([]string, 0, len(leftByName)+len(rightByName))
	for name := range leftByName {
		names = append(names, name)
	}
	for name := range rightByName {
		if _, ok := leftByName[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	rows := make([]permission.Row, 0, len(names))
	for _, name := range names {
		row := permission.Row{Name: name}
		if rec, ok := leftByName[name]; ok {
			row.SourceDomain = rec.Domain
			row.SourceAction = permission.Present(rec.Action)
		}
		if rec, ok := rightByName[name]; ok {
			row.TargetDomain = rec.Domain
			row.TargetAction = permission.Present(rec.Action)
		}
		row.Status = classify(row.SourceAction, row.TargetAction)

		// An update is offered whenever the source side has a real value
		// the target lacks or disagrees with. A delete is offered whenever
		// there is a real target record to remove.
		row.CanUpdate = row.Status != permission.StatusCommon && row.Status != permission.StatusOnlyRight
		row.CanDelete = row.TargetDomain != "" && row.TargetAction.Valid

		rows = append(rows, row)
	}
	return rows
}

func classify(source, target permission.Action) permission.Status {
	switch {
	case source == target:
		return permission.StatusCommon
	case !source.Valid:
		return permission.StatusOnlyRight
	case !target.Valid:
		return permission.StatusOnlyLeft
	default:
		return permission.StatusDifferent
	}
}
