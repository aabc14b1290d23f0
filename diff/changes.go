package diff

import "permsync/permission"

// rowKey is every comparison-row field except the one the grid lets the
// operator edit, the target action.
type rowKey struct {
	sourceDomain string
	name         string
	sourceAction permission.Action
	targetDomain string
	status       permission.Status
	canUpdate    bool
	canDelete    bool
}

func keyOf(r permission.Row) rowKey {
	return rowKey{
		sourceDomain: r.SourceDomain,
		name:         r.Name,
		sourceAction: r.SourceAction,
		targetDomain: r.TargetDomain,
		status:       r.Status,
		canUpdate:    r.CanUpdate,
		canDelete:    r.CanDelete,
	}
}

// DetectChanges matches edited grid rows against the baseline grid they
// were derived from and returns the edited rows whose target action
// differs, in edited-grid order. Rows on either side without a counterpart
// are ignored rather than treated as errors: a grid that drifted from its
// baseline degrades to a no-op. An empty result means nothing needs to be
// written.
func DetectChanges(baseline, edited []permission.Row) []permission.Row {
	base := make(map[rowKey]permission.Action, len(baseline))
	for _, r := range baseline {
		base[keyOf(r)] = r.TargetAction
	}

	var changed []permission.Row
	for _, r := range edited {
		before, ok := base[keyOf(r)]
		if ok && before != r.TargetAction {
			changed = append(changed, r)
		}
	}
	return changed
}
