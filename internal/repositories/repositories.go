// package repositories provides persistence for VerseVIEW songs.
package repositories

import (
	"context"

	"github.com/desertthunder/vvsong/internal/models"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_song_store.go -package=mocks github.com/desertthunder/vvsong/internal/repositories SongStore

// SongStore is the storage capability the merge pipeline needs.
//
// Each mutating call commits on its own; a failed call leaves earlier commits
// in place.
type SongStore interface {
	// FindByName looks up a song by exact name.
	FindByName(ctx context.Context, name string) (id int, found bool, err error)
	// NextID returns one more than the largest stored id, or 1 for an empty store.
	NextID(ctx context.Context) (int, error)
	Insert(ctx context.Context, song *models.Song) error
	// UpdateLyrics replaces only the lyrics of the named song.
	UpdateLyrics(ctx context.Context, name, lyrics string) error
}
