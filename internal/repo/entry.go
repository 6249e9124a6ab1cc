package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/roamlog/backend/internal/domain"
)

// EntryRepo defines the persistence operations for journal Entries.
// Entries have no owner column: callers must authorize through the parent
// trip before using any of these methods.
type EntryRepo interface {
	// Create inserts a new entry and returns the persisted record.
	Create(ctx context.Context, entry domain.Entry) (domain.Entry, error)

	// GetByID retrieves a single entry by its UUID.
	// Returns domain.ErrNotFound if no entry with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Entry, error)

	// ListByTripID returns all entries of a trip, newest date first.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Entry, error)

	// Update overwrites the mutable fields of an entry.
	// Returns domain.ErrNotFound if no entry with that ID exists.
	Update(ctx context.Context, entry domain.Entry) (domain.Entry, error)

	// Delete removes an entry by ID.
	// Returns domain.ErrNotFound if no entry with that ID exists.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgEntryRepo is the Postgres implementation of EntryRepo.
type pgEntryRepo struct {
	db db
}

// NewEntryRepo constructs an EntryRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewEntryRepo(db db) EntryRepo {
	return &pgEntryRepo{db: db}
}

const entryColumns = `id, trip_id, title, content, entry_date, photo_url, created_at, updated_at`

func (r *pgEntryRepo) Create(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	const q = `
		INSERT INTO entries (trip_id, title, content, entry_date, photo_url)
		VALUES (@trip_id, @title, @content, @entry_date, @photo_url)
		RETURNING ` + entryColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"trip_id":    entry.TripID,
		"title":      entry.Title,
		"content":    entry.Content,
		"entry_date": entry.Date,
		"photo_url":  entry.PhotoURL,
	})
	result, err := scanEntry(row)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("repo.EntryRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgEntryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Entry, error) {
	const q = `SELECT ` + entryColumns + ` FROM entries WHERE id = @id`

	result, err := scanEntry(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Entry{}, fmt.Errorf("repo.EntryRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgEntryRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Entry, error) {
	const q = `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE trip_id = @trip_id
		ORDER BY entry_date DESC, created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.EntryRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.EntryRepo.ListByTripID: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.EntryRepo.ListByTripID: rows: %w", err)
	}
	return entries, nil
}

func (r *pgEntryRepo) Update(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	const q = `
		UPDATE entries
		SET title      = @title,
		    content    = @content,
		    entry_date = @entry_date,
		    photo_url  = @photo_url,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + entryColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"id":         entry.ID,
		"title":      entry.Title,
		"content":    entry.Content,
		"entry_date": entry.Date,
		"photo_url":  entry.PhotoURL,
	})
	result, err := scanEntry(row)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("repo.EntryRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgEntryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM entries WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.EntryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.EntryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanEntry(s scanner) (domain.Entry, error) {
	var (
		e      domain.Entry
		id     pgtype.UUID
		tripID pgtype.UUID
		date   pgtype.Date
	)
	err := s.Scan(&id, &tripID, &e.Title, &e.Content, &date, &e.PhotoURL, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return domain.Entry{}, translate(err)
	}
	e.ID = uuid.UUID(id.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)
	e.Date = date.Time
	return e, nil
}
