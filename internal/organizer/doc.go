// Package organizer sorts the immediate files of a directory into category
// subfolders.
//
// One call to Organize is one session: the root is validated and listed
// before any file is moved or logged, then every regular file is classified through
// a category.Table, given a collision-free destination inside its category
// folder, and moved. Each file produces an Outcome that feeds the session
// counters, the append-only audit log, and the optional history journal.
// Per-file failures are recorded and skipped; only an unusable root (or an
// unopenable audit log) fails the whole call.
//
// Subdirectories, including category folders from earlier runs, are never
// entered, which makes repeated runs over the same directory a no-op for
// files that were already sorted. Running two sessions against the same
// directory at once is unsupported: destination checks and moves are not
// atomic with respect to each other. Set Options.LockRoot to refuse such
// overlap.
package organizer
