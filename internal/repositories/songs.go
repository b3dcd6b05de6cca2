package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/vvsong/internal/models"
	"github.com/desertthunder/vvsong/internal/shared"
)

const songColumns = `id, name, cat, font, font2, timestamp, yvideo, bkgndfname, "key", copy, notes,
	lyrics, lyrics2, title2, tags, slideseq, rating, chordsavailable, usagecount, subcat`

// SongRepository implements [SongStore] over the VerseVIEW sm table.
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new SongRepository with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// FindByName implements [SongStore].
func (r *SongRepository) FindByName(ctx context.Context, name string) (int, bool, error) {
	var id sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM sm WHERE name = ? LIMIT 1`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, &shared.StorageError{Op: "find", Name: name, Err: err}
	}
	return int(id.Int64), true, nil
}

// NextID implements [SongStore].
func (r *SongRepository) NextID(ctx context.Context) (int, error) {
	var next int
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM sm`).Scan(&next); err != nil {
		return 0, &shared.StorageError{Op: "next id", Err: err}
	}
	return next, nil
}

// Insert stores a new [models.Song] in a single transaction.
func (r *SongRepository) Insert(ctx context.Context, song *models.Song) error {
	if err := song.Validate(); err != nil {
		return &shared.StorageError{Op: "insert", Name: song.Name, Err: fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)}
	}

	query := `INSERT INTO sm (` + songColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			song.ID,
			song.Name,
			song.Category,
			song.Font,
			nullable(song.Font2),
			nullable(song.Timestamp),
			song.YVideo,
			song.Background,
			song.Key,
			song.Copyright,
			song.Notes,
			song.Lyrics,
			song.Lyrics2,
			song.Title2,
			song.Tags,
			song.SlideSeq,
			song.Rating,
			song.ChordsAvailable,
			song.UsageCount,
			song.Subcat,
		)
		return err
	})
	if err != nil {
		return &shared.StorageError{Op: "insert", Name: song.Name, Err: err}
	}
	return nil
}

// UpdateLyrics implements [SongStore]. No other column is touched.
func (r *SongRepository) UpdateLyrics(ctx context.Context, name, lyrics string) error {
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `UPDATE sm SET lyrics = ? WHERE name = ?`, lyrics, name)
		if err != nil {
			return err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return shared.ErrSongNotFound
		}
		return nil
	})
	if err != nil {
		return &shared.StorageError{Op: "update", Name: name, Err: err}
	}
	return nil
}

// Get retrieves a song by name.
func (r *SongRepository) Get(ctx context.Context, name string) (*models.Song, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+songColumns+` FROM sm WHERE name = ?`, name)
	song, err := scanSong(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", shared.ErrSongNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}
	return song, nil
}

// List returns songs ordered by id, optionally limited to one category.
func (r *SongRepository) List(ctx context.Context, category string) ([]*models.Song, error) {
	query := `SELECT ` + songColumns + ` FROM sm`
	var args []any
	if category != "" {
		query += ` WHERE cat = ?`
		args = append(args, category)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	defer rows.Close()

	var songs []*models.Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating songs: %w", err)
	}
	return songs, nil
}

// Count returns the number of stored songs.
func (r *SongRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sm`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return n, nil
}

func (r *SongRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanSong reads one row. VerseVIEW writes NULL into several text columns,
// so every column is scanned through a nullable type.
func scanSong(s scanner) (*models.Song, error) {
	var (
		id, slideseq, rating, chords, usage                           sql.NullInt64
		name, cat, font, font2, ts, yvideo, bg, key, copyright, notes sql.NullString
		lyrics, lyrics2, title2, tags, subcat                         sql.NullString
	)
	err := s.Scan(&id, &name, &cat, &font, &font2, &ts, &yvideo, &bg, &key, &copyright, &notes,
		&lyrics, &lyrics2, &title2, &tags, &slideseq, &rating, &chords, &usage, &subcat)
	if err != nil {
		return nil, err
	}

	song := &models.Song{
		ID:              int(id.Int64),
		Name:            name.String,
		Category:        cat.String,
		Font:            font.String,
		YVideo:          yvideo.String,
		Background:      bg.String,
		Key:             key.String,
		Copyright:       copyright.String,
		Notes:           notes.String,
		Lyrics:          lyrics.String,
		Lyrics2:         lyrics2.String,
		Title2:          title2.String,
		Tags:            tags.String,
		SlideSeq:        int(slideseq.Int64),
		Rating:          int(rating.Int64),
		ChordsAvailable: int(chords.Int64),
		UsageCount:      int(usage.Int64),
		Subcat:          subcat.String,
	}
	if font2.Valid {
		song.Font2 = &font2.String
	}
	if ts.Valid {
		song.Timestamp = &ts.String
	}
	return song, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
