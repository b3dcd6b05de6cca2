// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for injecting songs:
//  1. [FileListView] : Review the source files and remove unwanted ones
//  2. [ConfirmView] : Confirm the injection
//  3. [InjectView] : Monitor real-time progress with a progress bar
//  4. [OverwriteView] : Answer duplicate-song questions from the running batch
//  5. [ResultView] : Display added/updated songs and failed files
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Progress updates and overwrite questions flow through channels from the MergeEngine; the engine blocks on
// each question until the user answers in [OverwriteView].
//
// Keyboard navigation uses vim-style bindings (j/k, enter, d, y/n/a/s, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
