package diff_test

import (
	"testing"

	"permsync/diff"
	"permsync/permission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridRow(name string, target permission.Action) permission.Row {
	return permission.Row{
		SourceDomain: "D1",
		Name:         name,
		SourceAction: permission.Present("r"),
		TargetDomain: "D2",
		TargetAction: target,
		Status:       permission.StatusDifferent,
		CanUpdate:    true,
		CanDelete:    true,
	}
}

func TestDetectChanges_NoSelfDiff(t *testing.T) {
	baseline := []permission.Row{
		gridRow("Read", permission.Present("r")),
		gridRow("Write", permission.Present("w")),
	}
	assert.Empty(t, diff.DetectChanges(baseline, baseline))
}

func TestDetectChanges_EditedTargetAction(t *testing.T) {
	baseline := []permission.Row{
		gridRow("Read", permission.Present("r")),
		gridRow("Write", permission.Present("w")),
	}
	edited := []permission.Row{
		gridRow("Read", permission.Present("w")),
		gridRow("Write", permission.Present("w")),
	}

	changed := diff.DetectChanges(baseline, edited)
	require.Len(t, changed, 1)
	assert.Equal(t, "Read", changed[0].Name)
	assert.Equal(t, permission.Present("w"), changed[0].TargetAction)
}

func TestDetectChanges_ClearedTargetAction(t *testing.T) {
	baseline := []permission.Row{gridRow("Read", permission.Present("r"))}
	edited := []permission.Row{gridRow("Read", permission.Action{})}

	changed := diff.DetectChanges(baseline, edited)
	require.Len(t, changed, 1)
	assert.False(t, changed[0].TargetAction.Valid)
}

func TestDetectChanges_UnmatchedRowsIgnored(t *testing.T) {
	baseline := []permission.Row{gridRow("Read", permission.Present("r"))}
	edited := []permission.Row{gridRow("Phantom", permission.Present("x"))}

	assert.Empty(t, diff.DetectChanges(baseline, edited))
}

func TestDetectChanges_KeyFieldChangeIsNotAMatch(t *testing.T) {
	baseline := []permission.Row{gridRow("Read", permission.Present("r"))}

	edited := gridRow("Read", permission.Present("w"))
	edited.Status = permission.StatusCommon // key field drifted

	assert.Empty(t, diff.DetectChanges(baseline, []permission.Row{edited}))
}

func TestDetectChanges_EditedOrderPreserved(t *testing.T) {
	baseline := []permission.Row{
		gridRow("A", permission.Present("1")),
		gridRow("B", permission.Present("2")),
		gridRow("C", permission.Present("3")),
	}
	edited := []permission.Row{
		gridRow("C", permission.Present("9")),
		gridRow("A", permission.Present("8")),
		gridRow("B", permission.Present("2")),
	}

	changed := diff.DetectChanges(baseline, edited)
	require.Len(t, changed, 2)
	assert.Equal(t, "C", changed[0].Name)
	assert.Equal(t, "A", changed[1].Name)
}
