package shared

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// storeGlob matches the songs.db of any installed VerseVIEW version.
var storeGlob = filepath.Join("VerseVIEW*", "vvdata", "songs", "songs.db")

var userConfigDir = os.UserConfigDir

// LocateStore searches base for a VerseVIEW song store and returns the first
// match in lexical order.
func LocateStore(base string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(base, storeGlob))
	if err != nil {
		return "", fmt.Errorf("failed to search for songs.db: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: no VerseVIEW songs.db under %s", ErrStoreNotFound, base)
	}
	sort.Strings(matches)
	return matches[0], nil
}

// FindStore searches the user's application data directory
// (%AppData% on Windows) for a VerseVIEW song store.
func FindStore() (string, error) {
	base, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreNotFound, err)
	}
	return LocateStore(base)
}

// ResolveStore returns configured when set, otherwise the located store.
func ResolveStore(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	return FindStore()
}
