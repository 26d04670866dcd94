// Package store exports edgecov results into a self-contained SQLite file.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/huangsam/edgecov/schema"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const driverName = "sqlite"

// Diff sides as written to the side column of diff_edges.
const (
	SideOnlyInFile1 = "only_in_file1"
	SideOnlyInFile2 = "only_in_file2"
	SideLost        = "lost"
)

// Store is a freshly created export database.
type Store struct {
	db   *sql.DB
	path string
}

// Create replaces any file at path with an empty, migrated export database.
func Create(path string) (*Store, error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove existing database at %q: %w", path, err)
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database at %q: %w", path, err)
	}

	if err := migrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// withTx runs fn in a transaction and commits when it succeeds.
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func insertEdges(tx *sql.Tx, side string, edges []schema.EdgeDetail) error {
	stmt, err := tx.Prepare(`
		INSERT INTO diff_edges (side, source_service, source_endpoint, source_method,
		                        target_service, target_endpoint, target_method, source_json, target_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare edge insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range edges {
		k := e.Key
		if _, err := stmt.Exec(side, k.SourceService, k.SourceEndpoint, k.SourceMethod,
			k.TargetService, k.TargetEndpoint, k.TargetMethod, string(e.Source), string(e.Target)); err != nil {
			return fmt.Errorf("failed to insert %s edge: %w", side, err)
		}
	}
	return nil
}

// SaveDiff stores both sides of a coverage diff.
func (s *Store) SaveDiff(result schema.DiffResult) error {
	return s.withTx(func(tx *sql.Tx) error {
		if err := insertEdges(tx, SideOnlyInFile1, result.OnlyInFile1); err != nil {
			return err
		}
		return insertEdges(tx, SideOnlyInFile2, result.OnlyInFile2)
	})
}

// SaveGate stores a regression check outcome along with its lost edges.
func (s *Store) SaveGate(result schema.GateResult) error {
	return s.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			INSERT INTO gate_results (passed, max_lost, lost_edges, gained_edges, baseline_covered, candidate_covered)
			VALUES (?, ?, ?, ?, ?, ?)
		`, result.Passed, result.MaxLost, len(result.LostEdges), result.GainedEdges,
			result.Summary.File1Covered, result.Summary.File2Covered); err != nil {
			return fmt.Errorf("failed to insert gate result: %w", err)
		}
		return insertEdges(tx, SideLost, result.LostEdges)
	})
}

// SaveTrend stores the scenario series, one row per scenario, and the skipped lines.
func (s *Store) SaveTrend(result schema.TrendResult) error {
	return s.withTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO scenario_points (idx, uuid, edge_covered_count, edge_coverage, status_code_count)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare scenario insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		series := result.Series
		for i := range series.Len() {
			uuid := ""
			if i < len(series.UUIDs) {
				uuid = series.UUIDs[i]
			}
			if _, err := stmt.Exec(i+1, uuid, series.EdgeCoveredCount[i], series.EdgeCoverage[i], series.StatusCodeCount[i]); err != nil {
				return fmt.Errorf("failed to insert scenario %d: %w", i+1, err)
			}
		}

		for _, f := range result.Failures {
			if _, err := tx.Exec(`INSERT INTO scenario_failures (line, field, error) VALUES (?, ?, ?)`,
				f.Line, f.Field, f.Err); err != nil {
				return fmt.Errorf("failed to insert failure for line %d: %w", f.Line, err)
			}
		}
		return nil
	})
}

// SaveGraph stores the nodes and edges of a service graph.
func (s *Store) SaveGraph(graph schema.ServiceGraph) error {
	return s.withTx(func(tx *sql.Tx) error {
		for _, node := range graph.Nodes {
			if _, err := tx.Exec(`INSERT INTO service_nodes (name) VALUES (?)`, node); err != nil {
				return fmt.Errorf("failed to insert node %q: %w", node, err)
			}
		}
		for _, e := range graph.Edges {
			if _, err := tx.Exec(`INSERT INTO service_edges (source, target, label) VALUES (?, ?, ?)`,
				e.Source, e.Target, e.Label); err != nil {
				return fmt.Errorf("failed to insert edge %s -> %s: %w", e.Source, e.Target, err)
			}
		}
		return nil
	})
}

// SaveDict stores dictionary entries in output order.
func (s *Store) SaveDict(entries []schema.DictEntry) error {
	return s.withTx(func(tx *sql.Tx) error {
		for i, e := range entries {
			if _, err := tx.Exec(`INSERT INTO dict_entries (position, name, value) VALUES (?, ?, ?)`,
				i+1, e.Name, e.Value); err != nil {
				return fmt.Errorf("failed to insert dictionary entry %d: %w", i+1, err)
			}
		}
		return nil
	})
}

// Export creates a database at path and hands it to save before closing it.
func Export(path string, save func(*Store) error) (err error) {
	s, err := Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return save(s)
}
