// Package tasks runs song injection batches with real-time progress reporting.
//
// # Core Operation
//
// [MergeEngine.Run] takes a [Batch] (store path, ordered files, default font and category)
// and moves every file through a small state machine:
//
//  1. Extract and normalize the presentation's lyrics
//     - unreadable, unsupported or empty files end as failed-extraction
//  2. Look the song up by name (file base name without extension)
//  3. Insert a new song with the next free id, or
//  4. Ask the [Decider] and either overwrite the stored lyrics or skip the file
//     - any store failure ends the file as failed-storage
//
// Files are processed one at a time. A failing file never stops the batch; only
// pre-flight problems (no store, missing store, no files) return an error.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Decisions
//
// [AlwaysOverwrite], [NeverOverwrite], [DecisionFunc] and [PromptDecider] implement [Decider].
// The terminal UI supplies its own confirmation dialog through [DecisionFunc].
//
// # Other Jobs
//
// [FolderWatcher] feeds debounced batches from a watched folder to any [BatchRunner].
// [ExportSongs] writes stored songs to files with a small worker pool.
package tasks
