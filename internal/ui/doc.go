// Package ui implements the desktop front end: a form collecting URL,
// destination folder and output mode, driving the orchestrator off the
// event loop and rendering its progress.
package ui
