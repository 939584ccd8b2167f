package main

import (
	"database/sql"
	"fmt"
)

type storageQueries struct {
	get    string
	set    string
	remove string
}

var sqliteQueries = storageQueries{
	get: "SELECT value FROM local_storage WHERE key = ?",
	set: `
		INSERT INTO local_storage (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
	remove: "DELETE FROM local_storage WHERE key = ?",
}

var postgresQueries = storageQueries{
	get: "SELECT value FROM local_storage WHERE key = $1",
	set: `
		INSERT INTO local_storage (key, value) VALUES ($1, $2)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
	remove: "DELETE FROM local_storage WHERE key = $1",
}

// localStorage is a string key/value table, the process-side stand-in
// for the browser's window.localStorage.
type localStorage struct {
	db *sql.DB
	q  storageQueries
}

func newLocalStorage(db *sql.DB, driver string) *localStorage {
	q := sqliteQueries
	if driver == driverPostgres {
		q = postgresQueries
	}
	return &localStorage{db: db, q: q}
}

func (s *localStorage) getItem(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(s.q.get, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("getting item %q: %w", key, err)
	}
	return value, true, nil
}

func (s *localStorage) setItem(key, value string) error {
	if _, err := s.db.Exec(s.q.set, key, value); err != nil {
		return fmt.Errorf("setting item %q: %w", key, err)
	}
	return nil
}

func (s *localStorage) removeItem(key string) error {
	if _, err := s.db.Exec(s.q.remove, key); err != nil {
		return fmt.Errorf("removing item %q: %w", key, err)
	}
	return nil
}
