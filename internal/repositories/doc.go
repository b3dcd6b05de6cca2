// Package repositories implements SQLite persistence for the VerseVIEW song table.
//
// Key Implementations:
//   - [SongStore] : the capability consumed by the merge pipeline
//   - [SongRepository] : the sm table, keyed by song name with integer ids
//
// Ids are assigned as max(id)+1 at insert time and are never reused or renumbered.
// Every insert and lyrics update runs in its own transaction.
package repositories
