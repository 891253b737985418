// Package cli implements the interactive ambassador portal shell.
//
// The App wires the configuration, credential store, CMS gateway, session
// controller and catalog searcher together, restores any persisted session on
// startup, and then hands control to a read-eval-print loop. Each command is
// a small method on App; the REPL itself only parses lines and dispatches.
//
// Profile edits are optimistic: a command returns as soon as the change is
// visible locally, and a failed save is reported through a notice printed
// above the next prompt.
package cli
