package report

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/jobscout/jobscout/internal/scoring"
)

const matchesSchema = `
CREATE TABLE IF NOT EXISTS matches (
	job_url     TEXT PRIMARY KEY,
	job_title   TEXT NOT NULL,
	company     TEXT NOT NULL,
	platform    TEXT,
	location    TEXT,
	posted_date TEXT,
	salary      TEXT,
	match_score DOUBLE PRECISION NOT NULL,
	matched_skills TEXT,
	required_experience DOUBLE PRECISION,
	scraped_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const upsertMatch = `
INSERT INTO matches (
	job_url, job_title, company, platform, location, posted_date, salary,
	match_score, matched_skills, required_experience, scraped_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (job_url) DO UPDATE SET
	match_score = EXCLUDED.match_score,
	matched_skills = EXCLUDED.matched_skills,
	posted_date = EXCLUDED.posted_date,
	scraped_at = EXCLUDED.scraped_at,
	updated_at = now()`

// Store persists ranked matches in Postgres, keyed by job URL so reruns
// update scores instead of duplicating rows.
type Store struct {
	db *sql.DB
}

// OpenStore connects to Postgres and ensures the matches table exists.
func OpenStore(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, matchesSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating matches table: %w", err)
	}
	return &Store{db: db}, nil
}

// Save upserts every match in one transaction. Matches without a URL are
// skipped: there is nothing stable to key them on.
func (s *Store) Save(ctx context.Context, matches []*scoring.MatchResult, scrapedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertMatch)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, m := range matches {
		if m.Posting.URL == "" {
			continue
		}
		_, err := stmt.ExecContext(ctx,
			m.Posting.URL,
			m.Posting.Title,
			m.Posting.Company,
			m.Posting.Platform,
			m.Posting.Location,
			m.Posting.PostedDateRaw,
			m.Posting.Salary,
			m.Score,
			strings.Join(m.MatchedSkills, ";"),
			m.RequiredExperience,
			scrapedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("upserting match %q: %w", m.Posting.URL, err)
		}
	}

	return tx.Commit()
}

func (s *Store) Close() error {
	return s.db.Close()
}
