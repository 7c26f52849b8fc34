package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"study/internal/textutil"
)

const entryColumns = "id, kind, title, input, payload, created_at"

// Add stores an artifact and prunes the log to the configured maximum.
// payload is marshalled to JSON.
func (s *Store) Add(ctx context.Context, kind Kind, title, input string, payload any) (Entry, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Entry{}, fmt.Errorf("encode payload: %w", err)
	}
	entry := Entry{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     strings.TrimSpace(title),
		Input:     input,
		Payload:   data,
		CreatedAt: s.now().UTC(),
	}
	if _, err := s.execWithRetry(ctx,
		"INSERT INTO entries ("+entryColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		entry.ID, string(entry.Kind), entry.Title, entry.Input, string(entry.Payload),
		entry.CreatedAt.Format(timeLayout),
	); err != nil {
		return Entry{}, fmt.Errorf("insert entry: %w", err)
	}
	if s.maxEntries > 0 {
		if _, err := s.Prune(ctx, s.maxEntries); err != nil {
			return entry, err
		}
	}
	return entry, nil
}

// List returns entries newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	ctx = ensureContext(ctx)
	query := "SELECT " + entryColumns + " FROM entries"
	var args []any
	if opts.Kind != "" {
		query += " WHERE kind = ?"
		args = append(args, string(opts.Kind))
	}
	query += " ORDER BY created_at DESC, rowid DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// Get fetches an entry by full ID or unique prefix.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	ctx = ensureContext(ctx)
	id = strings.TrimSpace(id)
	if id == "" {
		return Entry{}, ErrNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE substr(id, 1, ?) = ? LIMIT 2",
		len(id), id,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("get entry: %w", err)
	}
	defer rows.Close()

	var found []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return Entry{}, err
		}
		found = append(found, entry)
	}
	if err := rows.Err(); err != nil {
		return Entry{}, fmt.Errorf("iterate entries: %w", err)
	}
	switch len(found) {
	case 0:
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return found[0], nil
	default:
		return Entry{}, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
	}
}

// Remove deletes one entry by ID or unique prefix.
func (s *Store) Remove(ctx context.Context, id string) error {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.execWithRetry(ctx, "DELETE FROM entries WHERE id = ?", entry.ID); err != nil {
		return fmt.Errorf("remove entry: %w", err)
	}
	return nil
}

// Clear deletes every entry and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, "DELETE FROM entries")
	if err != nil {
		return 0, fmt.Errorf("clear entries: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Prune keeps the newest keep entries and deletes the rest.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.execWithRetry(ctx,
		`DELETE FROM entries WHERE id NOT IN (
            SELECT id FROM entries ORDER BY created_at DESC, rowid DESC LIMIT ?
        )`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune entries: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Count returns the number of stored entries per kind.
func (s *Store) Count(ctx context.Context) (map[Kind]int, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, "SELECT kind, COUNT(1) FROM entries GROUP BY kind")
	if err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}
	defer rows.Close()
	counts := make(map[Kind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[Kind(kind)] = n
	}
	return counts, rows.Err()
}

// Search ranks entries by similarity of their title, input and payload text
// to query and returns up to limit hits with a positive score.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Match, error) {
	needle := textutil.NewFingerprint(query)
	if needle == nil {
		return []Match{}, nil
	}
	entries, err := s.List(ctx, ListOptions{})
	if err != nil {
		return nil, err
	}
	matches := make([]Match, 0)
	for _, entry := range entries {
		text := entry.Title + " " + entry.Input + " " + string(entry.Payload)
		score := textutil.CosineSimilarity(needle, textutil.NewFingerprint(text))
		if score > 0 {
			matches = append(matches, Match{Entry: entry, Score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (Entry, error) {
	var (
		entry      Entry
		kind       string
		payload    string
		createdRaw string
	)
	if err := scanner.Scan(&entry.ID, &kind, &entry.Title, &entry.Input, &payload, &createdRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, fmt.Errorf("scan entry: %w", err)
	}
	entry.Kind = Kind(kind)
	entry.Payload = json.RawMessage(payload)
	created, err := time.Parse(time.RFC3339Nano, createdRaw)
	if err != nil {
		return Entry{}, fmt.Errorf("parse created_at %q: %w", createdRaw, err)
	}
	entry.CreatedAt = created
	return entry, nil
}
