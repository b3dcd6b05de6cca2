// Package models defines the domain entities for vvsong.
//
// The package contains two categories of types:
//
// 1. Persistent Entities: rows of the VerseVIEW song table
//   - [Song] : a song record with its lyrics and secondary VerseVIEW fields
//
// 2. Batch Results: the per-file fate of an injection batch
//   - [Status] : terminal state of one source file
//   - [Outcome] : name, status and detail for one source file
//   - [BatchReport] : ordered outcomes of a whole batch
//
// Song names are the natural key used for duplicate detection; song IDs are the storage key.
package models
