// Package cli provides the interactive file-vault terminal client.
//
// It wires configuration, the local credential store, the API client with
// its middleware chain, the domain services and the session, then runs a
// read–eval–print loop. Every command prints exactly one outcome line
// ("OK: ..." or "Error: ..."), plus any listing it produced.
//
// Key features:
//   - register / login / logout, password recovery (forgot, reset)
//   - list, filter and inspect stored files
//   - upload, rename, delete (with confirmation), download and preview
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends. See runREPL for the command table.
package cli
