package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/affscope/affscope/pkg/entity"
)

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS business_records (
  id            INTEGER PRIMARY KEY,
  account       TEXT NOT NULL,
  record_key    TEXT NOT NULL,
  name          TEXT,
  status        TEXT,
  corp_type     TEXT NOT NULL,
  corp_subtype  TEXT,
  nr_number     TEXT,
  payload       TEXT NOT NULL,
  run_id        INTEGER NOT NULL DEFAULT 0,
  first_seen_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  last_seen_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(account, record_key)
);
CREATE INDEX IF NOT EXISTS idx_records_account ON business_records(account);
CREATE TABLE IF NOT EXISTS business_changes (
  id          INTEGER PRIMARY KEY,
  occurred_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  account     TEXT NOT NULL,
  record_key  TEXT NOT NULL,
  name        TEXT,
  corp_type   TEXT NOT NULL,
  change_type TEXT NOT NULL CHECK (change_type IN ('added','updated','removed'))
);
CREATE INDEX IF NOT EXISTS idx_changes_time ON business_changes(occurred_at);
CREATE INDEX IF NOT EXISTS idx_changes_account ON business_changes(account, occurred_at);
    `); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// BuildEntries converts decoded business records into cache entries for an
// account. Records without any identifying number are skipped.
func BuildEntries(account string, records []entity.Business) ([]Entry, error) {
	if account == "" {
		return nil, errors.New("missing account identifier")
	}
	out := make([]Entry, 0, len(records))
	for _, b := range records {
		key := recordKey(b)
		if key == "" {
			continue
		}
		payload, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{
			Account:     account,
			Key:         key,
			Name:        b.Name,
			Status:      b.Status,
			CorpType:    string(b.CorpType),
			CorpSubType: string(b.CorpSubType),
			NRNumber:    b.NRNumber,
			Payload:     string(payload),
		})
	}
	return out, nil
}

func recordKey(b entity.Business) string {
	if b.BusinessIdentifier != "" {
		return b.BusinessIdentifier
	}
	if b.NRNumber != "" {
		return b.NRNumber
	}
	if b.NameRequest != nil {
		return b.NameRequest.Number
	}
	return ""
}

// Record rebuilds the decoded business record from a cache entry.
func (e Entry) Record() (entity.Business, error) {
	var b entity.Business
	err := json.Unmarshal([]byte(e.Payload), &b)
	return b, err
}

// UpsertAccountEntries replaces an account's cached records with the given
// set, logging added/updated entries and sweeping out records no longer
// affiliated with the account.
func (d *DB) UpsertAccountEntries(ctx context.Context, account string, entries []Entry) ([]Change, error) {
	now := time.Now().UTC()
	runID := time.Now().Unix()

	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rows, err := tx.QueryContext(ctx, "SELECT record_key, payload FROM business_records WHERE account = ?", account)
	if err != nil {
		return nil, err
	}
	existingMap := make(map[string]string)
	for rows.Next() {
		var key, payload string
		if err = rows.Scan(&key, &payload); err != nil {
			rows.Close()
			return nil, err
		}
		existingMap[key] = payload
	}
	if err = rows.Close(); err != nil {
		return nil, err
	}

	var changes []Change
	for _, e := range entries {
		existing, existed := existingMap[e.Key]

		if !existed {
			_, err = tx.ExecContext(ctx, `INSERT INTO business_records(account, record_key, name, status, corp_type, corp_subtype, nr_number, payload, run_id, first_seen_at, last_seen_at) VALUES(?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)`, e.Account, e.Key, nullIfEmpty(e.Name), nullIfEmpty(e.Status), e.CorpType, nullIfEmpty(e.CorpSubType), nullIfEmpty(e.NRNumber), e.Payload, runID)
			if err != nil {
				return nil, err
			}
			changes = append(changes, Change{OccurredAt: now, Account: account, Key: e.Key, Name: e.Name, CorpType: e.CorpType, ChangeType: "added"})
			existingMap[e.Key] = e.Payload // Track the new entry
		} else {
			if existing != e.Payload {
				_, err = tx.ExecContext(ctx, `UPDATE business_records SET name = ?, status = ?, corp_type = ?, corp_subtype = ?, nr_number = ?, payload = ?, run_id = ?, last_seen_at = CURRENT_TIMESTAMP WHERE account = ? AND record_key = ?`, nullIfEmpty(e.Name), nullIfEmpty(e.Status), e.CorpType, nullIfEmpty(e.CorpSubType), nullIfEmpty(e.NRNumber), e.Payload, runID, account, e.Key)
				if err != nil {
					return nil, err
				}
				changes = append(changes, Change{OccurredAt: now, Account: account, Key: e.Key, Name: e.Name, CorpType: e.CorpType, ChangeType: "updated"})
			} else {
				_, err = tx.ExecContext(ctx, `UPDATE business_records SET run_id = ?, last_seen_at = CURRENT_TIMESTAMP WHERE account = ? AND record_key = ?`, runID, account, e.Key)
				if err != nil {
					return nil, err
				}
			}
		}
	}

	// Sweep: find and delete records not touched in this run, log removals
	staleRows, err := tx.QueryContext(ctx, "SELECT record_key, name, corp_type FROM business_records WHERE account = ? AND run_id != ?", account, runID)
	if err != nil {
		return nil, err
	}

	type staleEntry struct{ Key, Name, CorpType string }
	var toRemove []staleEntry
	for staleRows.Next() {
		var s staleEntry
		var name sql.NullString
		if err = staleRows.Scan(&s.Key, &name, &s.CorpType); err != nil {
			staleRows.Close()
			return nil, err
		}
		s.Name = name.String
		toRemove = append(toRemove, s)
	}
	if err = staleRows.Close(); err != nil {
		return nil, err
	}

	if len(toRemove) > 0 {
		_, err = tx.ExecContext(ctx, `DELETE FROM business_records WHERE account = ? AND run_id != ?`, account, runID)
		if err != nil {
			return nil, err
		}
		for _, s := range toRemove {
			_, ierr := tx.ExecContext(ctx, `INSERT INTO business_changes(occurred_at, account, record_key, name, corp_type, change_type) VALUES(CURRENT_TIMESTAMP, ?, ?, ?, ?, 'removed')`, account, s.Key, nullIfEmpty(s.Name), s.CorpType)
			if ierr != nil {
				return nil, ierr
			}
			changes = append(changes, Change{OccurredAt: now, Account: account, Key: s.Key, Name: s.Name, CorpType: s.CorpType, ChangeType: "removed"})
		}
	}

	for _, c := range changes {
		if c.ChangeType == "removed" {
			continue // already logged above
		}
		_, ierr := tx.ExecContext(ctx, `INSERT INTO business_changes(occurred_at, account, record_key, name, corp_type, change_type) VALUES(CURRENT_TIMESTAMP, ?, ?, ?, ?, ?)`, c.Account, c.Key, nullIfEmpty(c.Name), c.CorpType, c.ChangeType)
		if ierr != nil {
			return nil, ierr
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return changes, nil
}

// ListOptions controls selection when listing cached records.
type ListOptions struct {
	Account    string
	CorpType   string
	NameFilter string
	Since      time.Time
}

// ListEntries returns cached records matching filters, in insertion order.
func (d *DB) ListEntries(ctx context.Context, opts ListOptions) ([]Entry, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	if opts.Account != "" {
		where += " AND account = ?"
		args = append(args, opts.Account)
	}
	if opts.CorpType != "" && opts.CorpType != "all" {
		where += " AND corp_type = ?"
		args = append(args, opts.CorpType)
	}
	if opts.NameFilter != "" {
		where += " AND name LIKE ?"
		args = append(args, fmt.Sprintf("%%%s%%", opts.NameFilter))
	}
	if !opts.Since.IsZero() {
		where += " AND last_seen_at >= ?"
		args = append(args, opts.Since.UTC())
	}

	q := "SELECT account, record_key, name, status, corp_type, corp_subtype, nr_number, payload FROM business_records " + where + " ORDER BY id"
	rows, err := d.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		var name, status, subtype, nrNumber sql.NullString
		if err := rows.Scan(&e.Account, &e.Key, &name, &status, &e.CorpType, &subtype, &nrNumber, &e.Payload); err != nil {
			return nil, err
		}
		e.Name = name.String
		e.Status = status.String
		e.CorpSubType = subtype.String
		e.NRNumber = nrNumber.String
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRecentChanges returns the most recent N changes across all accounts.
func (d *DB) ListRecentChanges(ctx context.Context, limit int) ([]Change, error) {
	if limit <= 0 {
		limit = 50
	}
	q := "SELECT occurred_at, account, record_key, name, corp_type, change_type FROM business_changes ORDER BY occurred_at DESC LIMIT ?"
	rows, err := d.sql.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	changes := []Change{}
	for rows.Next() {
		var c Change
		var occurredAtStr string
		var name sql.NullString
		if err := rows.Scan(&occurredAtStr, &c.Account, &c.Key, &name, &c.CorpType, &c.ChangeType); err != nil {
			return nil, err
		}
		c.Name = name.String
		// Parse SQLite CURRENT_TIMESTAMP format
		// Try "2006-01-02 15:04:05" then RFC3339
		if t, perr := time.Parse("2006-01-02 15:04:05", occurredAtStr); perr == nil {
			c.OccurredAt = t
		} else if t2, perr2 := time.Parse(time.RFC3339, occurredAtStr); perr2 == nil {
			c.OccurredAt = t2
		} else {
			c.OccurredAt = time.Time{}
		}
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return changes, nil
}

type CorpTypeStats struct {
	CorpType     string
	AccountCount int
	RecordCount  int
}

func (d *DB) GetStats(ctx context.Context) ([]CorpTypeStats, error) {
	query := `
		SELECT
			corp_type,
			COUNT(DISTINCT account),
			COUNT(record_key)
		FROM
			business_records
		GROUP BY
			corp_type
		ORDER BY
			corp_type;
	`
	rows, err := d.sql.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []CorpTypeStats
	for rows.Next() {
		var s CorpTypeStats
		if err := rows.Scan(&s.CorpType, &s.AccountCount, &s.RecordCount); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
