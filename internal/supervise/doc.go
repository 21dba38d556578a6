// Package supervise owns the foreground server process: it starts the child
// with inherited stdio, restarts it when the watcher reports a source
// change, and holds a crashed child until the next change instead of giving
// up. Shutdown is graceful: SIGTERM, a grace period, then SIGKILL.
package supervise
