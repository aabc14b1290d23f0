// Package database is the Postgres gateway for the permission store. It
// implements the four operations the engine needs (list domains, fetch
// permissions, upsert a permission, delete a permission) and keeps an
// audit trail of every write it applies.
package database

import (
	"context"
	"fmt"
	"time"

	"permsync/permission"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// permissionClass is the CLASS value stamped on inserted rows. The owning
// security system keys on it; this tool treats it as opaque.
const permissionClass = "ch.eri.core.security.TaskPermission"

type Database struct {
	pool *pgxpool.Pool
}

// Connect opens a pgx connection pool and verifies connectivity.
func Connect(ctx context.Context, dsn string) (*Database, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", permission.ErrConnection, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", permission.ErrConnection, err)
	}
	return &Database{pool: pool}, nil
}

func (db *Database) Close() {
	db.pool.Close()
}

// ListDomains enumerates the valid domain identifiers.
func (db *Database) ListDomains(ctx context.Context) ([]string, error) {
	rows, err := db.pool.Query(ctx, listDomainsQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: list domains: %v", permission.ErrQuery, err)
	}
	defer rows.Close()

	var domains []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scan domain: %v", permission.ErrQuery, err)
		}
		domains = append(domains, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list domains: %v", permission.ErrQuery, err)
	}
	return domains, nil
}

// FetchPermissions loads every permission row for the given domain set.
// The result is a fresh Snapshot; callers (in practice the cache) own it.
func (db *Database) FetchPermissions(ctx context.Context, domains []string) (permission.Snapshot, error) {
	rows, err := db.pool.Query(ctx, fetchPermissionsQuery, domains)
	if err != nil {
		return permission.Snapshot{}, fmt.Errorf("%w: fetch permissions: %v", permission.ErrQuery, err)
	}
	defer rows.Close()

	snap := permission.Snapshot{Domains: append([]string(nil), domains...)}
	for rows.Next() {
		var rec permission.Record
		var action pgtype.Text
		if err := rows.Scan(&rec.Domain, &rec.Name, &action); err != nil {
			return permission.Snapshot{}, fmt.Errorf("%w: scan permission: %v", permission.ErrQuery, err)
		}
		rec.Action = action.String
		snap.Records = append(snap.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return permission.Snapshot{}, fmt.Errorf("%w: fetch permissions: %v", permission.ErrQuery, err)
	}
	return snap, nil
}

// UpsertPermission looks the record up by (domain, name) and updates its
// action, inserting a new row with the fixed CLASS when none exists. Check
// and write share one transaction, so repeated calls with the same
// arguments leave the store in the same end state. Reports whether a new
// row was inserted.
func (db *Database) UpsertPermission(ctx context.Context, domain, name, action string) (bool, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: begin upsert: %v", permission.ErrConnection, err)
	}
	defer tx.Rollback(ctx)

	var count int
	if err := tx.QueryRow(ctx, countPermissionQuery, domain, name).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: check permission %s/%s: %v", permission.ErrWrite, domain, name, err)
	}

	inserted := count == 0
	if inserted {
		_, err = tx.Exec(ctx, insertPermissionQuery, domain, permissionClass, name, action)
	} else {
		_, err = tx.Exec(ctx, updatePermissionQuery, action, domain, name)
	}
	if err != nil {
		return false, fmt.Errorf("%w: upsert permission %s/%s: %v", permission.ErrWrite, domain, name, err)
	}

	op := "update"
	if inserted {
		op = "insert"
	}
	if err := insertAudit(ctx, tx, op, domain, name, action); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("%w: commit upsert %s/%s: %v", permission.ErrWrite, domain, name, err)
	}
	return inserted, nil
}

// DeletePermission removes the record matching all three fields exactly.
// Deleting a record that no longer exists is a no-op, not an error.
func (db *Database) DeletePermission(ctx context.Context, domain, name, action string) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin delete: %v", permission.ErrConnection, err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, deletePermissionQuery, domain, name, action)
	if err != nil {
		return fmt.Errorf("%w: delete permission %s/%s: %v", permission.ErrWrite, domain, name, err)
	}
	if tag.RowsAffected() > 0 {
		if err := insertAudit(ctx, tx, "delete", domain, name, action); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit delete %s/%s: %v", permission.ErrWrite, domain, name, err)
	}
	return nil
}

func insertAudit(ctx context.Context, tx pgx.Tx, op, domain, name, action string) error {
	_, err := tx.Exec(ctx, insertAuditQuery, uuid.New(), time.Now(), op, domain, name, action)
	if err != nil {
		return fmt.Errorf("%w: record audit entry: %v", permission.ErrWrite, err)
	}
	return nil
}
