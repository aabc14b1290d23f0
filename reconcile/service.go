// Package reconcile turns detected permission differences into store
// writes and serves the comparison requests of the UI layer.
package reconcile

import (
	"context"
	"fmt"
	"strings"

	"permsync/diff"
	"permsync/permission"
	"permsync/snapshot"
)

// Store is the permission store as consumed by the reconciler.
// UpsertPermission reports whether it inserted a new record rather than
// updating an existing one; deleting a record that no longer exists is a
// no-op, not an error.
type Store interface {
	ListDomains(ctx context.Context) ([]string, error)
	UpsertPermission(ctx context.Context, domain, name, action string) (inserted bool, err error)
	DeletePermission(ctx context.Context, domain, name, action string) error
}

// ActionKind selects which single-row operation RequestRowAction performs.
type ActionKind string

const (
	ActionUpdate ActionKind = "update"
	ActionDelete ActionKind = "delete"
)

const noActionMessage = "No action available for this record."

// Service orchestrates comparisons and reconciliation writes. It owns the
// snapshot cache and invalidates it wholesale after every write, so the
// refreshed comparison that follows a write always re-reads the store.
type Service struct {
	store Store
	cache *snapshot.Cache
}

func NewService(store Store, cache *snapshot.Cache) *Service {
	return &Service{store: store, cache: cache}
}

// ListDomainOptions returns the selectable domain identifiers.
func (s *Service) ListDomainOptions(ctx context.Context) ([]string, error) {
	return s.store.ListDomains(ctx)
}

// RequestComparison compares the source domains against the target domain
// and applies the case-insensitive name filter. Pure read, served from the
// cache when possible; the filter is presentation only and never affects
// what gets cached.
func (s *Service) RequestComparison(ctx context.Context, left []string, right string, nameFilter string) ([]permission.Row, error) {
	if len(left) == 0 || right == "" {
		return nil, fmt.Errorf("%w: select the domains to compare", permission.ErrValidation)
	}

	leftSnap, err := s.cache.Get(ctx, left)
	if err != nil {
		return nil, err
	}
	rightSnap, err := s.cache.Get(ctx, []string{right})
	if err != nil {
		return nil, err
	}
	return filterByName(diff.Compare(leftSnap, rightSnap), nameFilter), nil
}

// ApplyRowAction copies the row's source action onto the target side. Rows
// not offering an update return a no-op message without touching the
// store. The destination is the row's own target domain when it has one,
// otherwise fallbackTarget.
func (s *Service) ApplyRowAction(ctx context.Context, row permission.Row, fallbackTarget string) (string, error) {
	if !row.CanUpdate {
		return noActionMessage, nil
	}

	dest := row.TargetDomain
	if dest == "" {
		dest = fallbackTarget
	}
	inserted, err := s.store.UpsertPermission(ctx, dest, row.Name, row.SourceAction.Value)
	if err != nil {
		return "", err
	}
	s.cache.InvalidateAll()

	if inserted {
		return fmt.Sprintf("Inserted: %s in %s with ACTION = %s", row.Name, dest, row.SourceAction.Value), nil
	}
	return fmt.Sprintf("Updated: %s in %s with ACTION = %s", row.Name, dest, row.SourceAction.Value), nil
}

// ApplyRowDeletion removes the row's target-side record. Rows not offering
// a delete return a no-op message without touching the store.
func (s *Service) ApplyRowDeletion(ctx context.Context, row permission.Row) (string, error) {
	if !row.CanDelete {
		return noActionMessage, nil
	}

	if err := s.store.DeletePermission(ctx, row.TargetDomain, row.Name, row.TargetAction.Value); err != nil {
		return "", err
	}
	s.cache.InvalidateAll()
	return fmt.Sprintf("Deleted: %s with ACTION = %s from %s", row.Name, row.TargetAction.Value, row.TargetDomain), nil
}

// ApplyBulkChanges persists detected grid edits in detection order,
// writing each row's edited target action. There is no transaction across
// rows: a failure on row k leaves rows 1..k-1 durably written and aborts
// the remainder. The cache is invalidated once after the loop, and also on
// partial failure since earlier rows already reached the store.
func (s *Service) ApplyBulkChanges(ctx context.Context, changes []permission.Row, fallbackTarget string) (int, string, error) {
	if len(changes) == 0 {
		return 0, "No changes to save.", nil
	}

	for i, row := range changes {
		dest := row.TargetDomain
		if dest == "" {
			dest = fallbackTarget
		}
		if _, err := s.store.UpsertPermission(ctx, dest, row.Name, row.TargetAction.Value); err != nil {
			if i > 0 {
				s.cache.InvalidateAll()
			}
			return i, fmt.Sprintf("Saved %d of %d changes before a write failed.", i, len(changes)), err
		}
	}

	s.cache.InvalidateAll()
	return len(changes), "Modification successfully saved.", nil
}

// RequestRowAction performs a single-row update or deletion, then returns
// the operator message together with a freshly computed comparison.
func (s *Service) RequestRowAction(ctx context.Context, kind ActionKind, row permission.Row, left []string, right string, nameFilter string) (string, []permission.Row, error) {
	var msg string
	var err error
	switch kind {
	case ActionUpdate:
		msg, err = s.ApplyRowAction(ctx, row, right)
	case ActionDelete:
		msg, err = s.ApplyRowDeletion(ctx, row)
	default:
		return "", nil, fmt.Errorf("%w: unknown action kind %q", permission.ErrValidation, kind)
	}
	if err != nil {
		return "", nil, err
	}

	rows, err := s.RequestComparison(ctx, left, right, nameFilter)
	if err != nil {
		return msg, nil, err
	}
	return msg, rows, nil
}

// RequestBulkSave detects which rows of the edited grid changed relative
// to its baseline, persists those changes, and returns a fresh comparison.
// Zero detected changes short-circuit entirely: no write, no cache
// invalidation, no store round trip.
func (s *Service) RequestBulkSave(ctx context.Context, baseline, edited []permission.Row, left []string, right string, nameFilter string) (int, string, []permission.Row, error) {
	if len(left) == 0 || right == "" {
		return 0, "", nil, fmt.Errorf("%w: select the domains to compare", permission.ErrValidation)
	}

	changes := diff.DetectChanges(baseline, edited)
	if len(changes) == 0 {
		return 0, "No changes to save.", edited, nil
	}

	applied, msg, err := s.ApplyBulkChanges(ctx, changes, right)
	if err != nil {
		return applied, msg, nil, err
	}

	rows, err := s.RequestComparison(ctx, left, right, nameFilter)
	if err != nil {
		return applied, msg, nil, err
	}
	return applied, msg, rows, nil
}

func filterByName(rows []permission.Row, filter string) []permission.Row {
	if filter == "" {
		return rows
	}
	needle := strings.ToLower(filter)
	filtered := make([]permission.Row, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
