// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger keeps a local history of submitted deposits so that a DOI
// re-registered under a different title is noticed before submission.
package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/depositor/internal/crossref"
)

const dbFile = "ledger.db"

// ErrDuplicateBatch is returned when a batch id was already recorded.
var ErrDuplicateBatch = errors.New("deposit batch already recorded")

// Store manages the ledger SQLite database.
type Store struct {
	db  *sql.DB
	dir string
}

// Deposit is one recorded deposit file.
type Deposit struct {
	ID         int64     `json:"id" yaml:"id"`
	BatchID    string    `json:"batch_id" yaml:"batch_id"`
	Timestamp  string    `json:"timestamp" yaml:"timestamp"`
	Journal    string    `json:"journal" yaml:"journal"`
	Volume     string    `json:"volume" yaml:"volume"`
	Issue      string    `json:"issue" yaml:"issue"`
	Year       string    `json:"year" yaml:"year"`
	File       string    `json:"file" yaml:"file"`
	RecordedAt time.Time `json:"recorded_at" yaml:"recorded_at"`
	Articles   int       `json:"article_count" yaml:"article_count"`
}

// Article is one registered article of a deposit.
type Article struct {
	BatchID    string   `json:"batch_id" yaml:"batch_id"`
	DOI        string   `json:"doi" yaml:"doi"`
	Title      string   `json:"title" yaml:"title"`
	Resource   string   `json:"resource" yaml:"resource"`
	FirstPage  string   `json:"first_page" yaml:"first_page"`
	LastPage   string   `json:"last_page" yaml:"last_page"`
	Authors    []string `json:"authors" yaml:"authors"`
	References int      `json:"references" yaml:"references"`
}

// Open opens or creates the ledger at dir/ledger.db.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS deposits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			batch_id TEXT NOT NULL UNIQUE,
			timestamp TEXT NOT NULL,
			journal TEXT,
			volume TEXT,
			issue TEXT,
			year TEXT,
			file TEXT,
			recorded_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS articles (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			deposit_id INTEGER NOT NULL REFERENCES deposits(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			doi TEXT NOT NULL,
			title TEXT,
			resource TEXT,
			first_page TEXT,
			last_page TEXT,
			authors TEXT,
			reference_count INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_doi ON articles(doi)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_deposit ON articles(deposit_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

const batchExistsQuery = `SELECT count(*) FROM deposits WHERE batch_id = ?`

// HasBatch reports whether a deposit with batchID is already recorded.
func (s *Store) HasBatch(ctx context.Context, batchID string) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, batchExistsQuery, batchID).Scan(&n); err != nil {
		return false, fmt.Errorf("checking batch: %w", err)
	}
	return n > 0, nil
}

// Record stores the deposit b written to file. Recording the same batch id
// twice returns ErrDuplicateBatch.
func (s *Store) Record(ctx context.Context, b *crossref.DoiBatch, file string, now time.Time) (Deposit, error) {
	j := b.Body.Journal
	d := Deposit{
		BatchID:    b.Head.DoiBatchID,
		Timestamp:  b.Head.Timestamp,
		Journal:    j.Metadata.FullTitle,
		Volume:     j.Issue.Volume.Volume,
		Issue:      j.Issue.Issue,
		Year:       j.Issue.PublicationDate.Year,
		File:       file,
		RecordedAt: now.UTC(),
		Articles:   len(j.Articles),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Deposit{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, batchExistsQuery, d.BatchID).Scan(&exists); err != nil {
		return Deposit{}, fmt.Errorf("checking batch: %w", err)
	}
	if exists > 0 {
		return Deposit{}, fmt.Errorf("%s: %w", d.BatchID, ErrDuplicateBatch)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO deposits (batch_id, timestamp, journal, volume, issue, year, file, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.BatchID, d.Timestamp, d.Journal, d.Volume, d.Issue, d.Year, d.File,
		d.RecordedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Deposit{}, fmt.Errorf("inserting deposit: %w", err)
	}
	if d.ID, err = res.LastInsertId(); err != nil {
		return Deposit{}, fmt.Errorf("reading deposit id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO articles (deposit_id, position, doi, title, resource, first_page, last_page, authors, reference_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Deposit{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, a := range j.Articles {
		authorsJSON, _ := json.Marshal(authorNames(a.Contributors))
		refs := 0
		if a.Citations != nil {
			refs = len(a.Citations.Citations)
		}
		if _, err := stmt.ExecContext(ctx,
			d.ID, i, a.DOIData.DOI, a.Titles.Title, a.DOIData.Resource,
			a.Pages.FirstPage, a.Pages.LastPage, string(authorsJSON), refs,
		); err != nil {
			return Deposit{}, fmt.Errorf("inserting article %s: %w", a.DOIData.DOI, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Deposit{}, fmt.Errorf("committing deposit: %w", err)
	}
	return d, nil
}

func authorNames(c *crossref.Contributors) []string {
	names := []string{}
	if c == nil {
		return names
	}
	for _, p := range c.People {
		names = append(names, p.GivenName+" "+p.Surname)
	}
	return names
}

// History returns recorded deposits, newest first.
func (s *Store) History(ctx context.Context) ([]Deposit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.id, d.batch_id, d.timestamp, d.journal, d.volume, d.issue, d.year, d.file, d.recorded_at,
			(SELECT count(*) FROM articles a WHERE a.deposit_id = d.id)
		FROM deposits d
		ORDER BY d.recorded_at DESC, d.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying deposits: %w", err)
	}
	defer rows.Close()

	var out []Deposit
	for rows.Next() {
		var (
			d          Deposit
			recordedAt string
		)
		if err := rows.Scan(&d.ID, &d.BatchID, &d.Timestamp, &d.Journal, &d.Volume, &d.Issue,
			&d.Year, &d.File, &recordedAt, &d.Articles); err != nil {
			return nil, fmt.Errorf("scanning deposit: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, recordedAt); err == nil {
			d.RecordedAt = t
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Articles returns the articles of one batch in deposit order.
func (s *Store) Articles(ctx context.Context, batchID string) ([]Article, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.batch_id, a.doi, a.title, a.resource, a.first_page, a.last_page, a.authors, a.reference_count
		FROM articles a JOIN deposits d ON d.id = a.deposit_id
		WHERE d.batch_id = ?
		ORDER BY a.position`, batchID)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()
	return scanArticles(rows)
}

func scanArticles(rows *sql.Rows) ([]Article, error) {
	var out []Article
	for rows.Next() {
		var (
			a       Article
			authors sql.NullString
		)
		if err := rows.Scan(&a.BatchID, &a.DOI, &a.Title, &a.Resource, &a.FirstPage, &a.LastPage,
			&authors, &a.References); err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		if authors.Valid && authors.String != "" {
			if err := json.Unmarshal([]byte(authors.String), &a.Authors); err != nil {
				return nil, fmt.Errorf("decoding authors of %s: %w", a.DOI, err)
			}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Conflict is a DOI in a new deposit that an earlier deposit registered
// under another title.
type Conflict struct {
	DOI           string `json:"doi" yaml:"doi"`
	Title         string `json:"title" yaml:"title"`
	PreviousTitle string `json:"previous_title" yaml:"previous_title"`
	PreviousBatch string `json:"previous_batch" yaml:"previous_batch"`
}

// Conflicts compares the articles of b against every recorded deposit.
// Re-registering a DOI with the same title is not a conflict.
func (s *Store) Conflicts(ctx context.Context, b *crossref.DoiBatch) ([]Conflict, error) {
	var out []Conflict
	for _, a := range b.Body.Journal.Articles {
		rows, err := s.db.QueryContext(ctx,
			`SELECT d.batch_id, a.title
			FROM articles a JOIN deposits d ON d.id = a.deposit_id
			WHERE a.doi = ? AND a.title <> ? AND d.batch_id <> ?
			ORDER BY d.recorded_at DESC, d.id DESC
			LIMIT 1`,
			a.DOIData.DOI, a.Titles.Title, b.Head.DoiBatchID)
		if err != nil {
			return nil, fmt.Errorf("querying conflicts: %w", err)
		}
		for rows.Next() {
			c := Conflict{DOI: a.DOIData.DOI, Title: a.Titles.Title}
			if err := rows.Scan(&c.PreviousBatch, &c.PreviousTitle); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning conflict: %w", err)
			}
			out = append(out, c)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
