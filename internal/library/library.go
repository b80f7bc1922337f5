// Package library keeps named spectra in a SQLite database so they can be
// reopened, combined and exported later.
//
// Records are stored as their SIMP or XREIM text together with the field and
// nucleus needed to rebuild the chemical-shift view.
package library

import (
	"bytes"
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-nmr/format/simp"
	"github.com/cwbudde/algo-nmr/nmr/field"
	"github.com/cwbudde/algo-nmr/nmr/record"
)

// FileName is the database file inside the library directory.
const FileName = "library.db"

var (
	// ErrNotFound is returned when no entry has the given id or name.
	ErrNotFound = errors.New("library: entry not found")
	// ErrNameTaken is returned when an entry with the name already exists.
	ErrNameTaken = errors.New("library: name already in use")
)

// Entry is one stored spectrum.
type Entry struct {
	ID        string
	Name      string
	Format    simp.Format
	Field     string
	Nucleus   string
	NP        int
	SW        float64
	Data      string
	CreatedAt time.Time
}

// Record decodes the stored text into a record carrying the stored field and
// nucleus. opts are applied first.
func (e *Entry) Record(opts ...record.Option) (*record.Record, error) {
	all := append([]record.Option(nil), opts...)
	if e.Field != "" {
		b0, err := field.Parse(e.Field)
		if err != nil {
			return nil, fmt.Errorf("library: entry %s: %w", e.Name, err)
		}
		all = append(all, record.WithField(b0))
	}
	if e.Nucleus != "" {
		all = append(all, record.WithNucleus(e.Nucleus))
	}
	rec, err := simp.Read(strings.NewReader(e.Data), e.Format, all...)
	if err != nil {
		return nil, fmt.Errorf("library: entry %s: %w", e.Name, err)
	}
	return rec, nil
}

// Library is a handle to an open spectrum database.
type Library struct {
	db  *sql.DB
	log logrus.FieldLogger
	now func() time.Time
}

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the logger for store operations.
func WithLogger(log logrus.FieldLogger) Option {
	return func(l *Library) {
		if log != nil {
			l.log = log
		}
	}
}

// Open opens or creates the library in dir.
func Open(dir string, opts ...Option) (*Library, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("library: create directory: %w", err)
	}
	db, err := openDB(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}

	l := &Library{db: db, log: logrus.StandardLogger(), now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l, nil
}

// Close closes the database.
func (l *Library) Close() error {
	return l.db.Close()
}

func newID(t time.Time) (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", fmt.Errorf("library: generate id: %w", err)
	}
	return id.String(), nil
}

// Put stores rec under name, encoded in format f (FID, SPE or XREIM).
func (l *Library) Put(ctx context.Context, name string, rec *record.Record, f simp.Format) (*Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("library: name is empty")
	}
	if f == simp.CSV {
		return nil, fmt.Errorf("library: cannot store csv exports")
	}

	var buf bytes.Buffer
	if err := simp.Write(&buf, rec, f); err != nil {
		return nil, fmt.Errorf("library: %w", err)
	}

	now := l.now()
	id, err := newID(now)
	if err != nil {
		return nil, err
	}
	e := &Entry{
		ID:        id,
		Name:      name,
		Format:    f,
		Nucleus:   rec.Nucleus(),
		NP:        rec.Len(),
		Data:      buf.String(),
		CreatedAt: time.Unix(now.Unix(), 0),
	}
	if b0, ok := rec.Field(); ok {
		e.Field = b0.String()
	}
	if f != simp.XREIM {
		d, err := simp.Decode(strings.NewReader(e.Data))
		if err != nil {
			return nil, fmt.Errorf("library: %w", err)
		}
		e.NP, e.SW = d.NP, d.SW
	}

	_, err = l.db.ExecContext(ctx, `
		INSERT INTO spectra (id, name, format, field, nucleus, np, sw, data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Format.String(), nullString(e.Field), nullString(e.Nucleus),
		e.NP, e.SW, e.Data, e.CreatedAt.Unix(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("%w: %q", ErrNameTaken, name)
		}
		return nil, fmt.Errorf("library: insert: %w", err)
	}

	l.log.WithFields(logrus.Fields{"id": e.ID, "name": e.Name, "format": f}).Info("spectrum stored")
	return e, nil
}

const selectColumns = `SELECT id, name, format, field, nucleus, np, sw, data, created_at FROM spectra`

// Get returns the entry whose id or name is key.
func (l *Library) Get(ctx context.Context, key string) (*Entry, error) {
	row := l.db.QueryRowContext(ctx, selectColumns+` WHERE id = ? OR name = ? LIMIT 1`, key, key)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// List returns every entry, newest first.
func (l *Library) List(ctx context.Context) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("library: list: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("library: list: %w", err)
	}
	return out, nil
}

// Delete removes the entry whose id or name is key.
func (l *Library) Delete(ctx context.Context, key string) error {
	res, err := l.db.ExecContext(ctx, `DELETE FROM spectra WHERE id = ? OR name = ?`, key, key)
	if err != nil {
		return fmt.Errorf("library: delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("library: delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	l.log.WithField("key", key).Info("spectrum deleted")
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*Entry, error) {
	var (
		e         Entry
		format    string
		fieldStr  sql.NullString
		nucleus   sql.NullString
		createdAt int64
	)
	if err := s.Scan(&e.ID, &e.Name, &format, &fieldStr, &nucleus, &e.NP, &e.SW, &e.Data, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("library: scan: %w", err)
	}
	f, err := simp.ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("library: entry %s: %w", e.ID, err)
	}
	e.Format = f
	e.Field = fieldStr.String
	e.Nucleus = nucleus.String
	e.CreatedAt = time.Unix(createdAt, 0)
	return &e, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
