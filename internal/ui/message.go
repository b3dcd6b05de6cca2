package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/vvsong/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgProgressUpdate MsgKind = iota
	MsgOverwriteRequest
	MsgInjectComplete
)

// overwriteRequest is a question from the running batch; the batch waits on reply.
type overwriteRequest struct {
	name  string
	reply chan<- bool
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// overwriteRequestMsg is the constructor for [MsgOverwriteRequest]
func overwriteRequestMsg(req overwriteRequest) Msg {
	return Msg{kind: MsgOverwriteRequest, data: req}
}

// injectCompleteMsg is the constructor for [MsgInjectComplete]
func injectCompleteMsg() Msg {
	return Msg{kind: MsgInjectComplete}
}
