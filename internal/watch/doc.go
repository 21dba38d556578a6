// Package watch emits debounced change events for the source tree, feeding
// the supervisor's auto-reload loop. It watches directories recursively,
// ignores the environment directory and other configured names, and filters
// events down to the configured source extensions.
package watch
