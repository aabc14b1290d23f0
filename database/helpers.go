package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// ResetDatabase drops and recreates a development database, then applies
// the embedded schema. Never point it at the shared store.
func ResetDatabase(ctx context.Context, managementDsn, dsn, dbName string) error {
	managementPool, err := pgxpool.New(ctx, managementDsn)
	if err != nil {
		return fmt.Errorf("connect management database: %w", err)
	}
	defer managementPool.Close()

	if _, err := managementPool.Exec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s", dbName)); err != nil {
		return fmt.Errorf("drop database %s: %w", dbName, err)
	}
	if _, err := managementPool.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", dbName)); err != nil {
		return fmt.Errorf("create database %s: %w", dbName, err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect %s: %w", dbName, err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
