// Package main hosts the tidydir CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, builds the category
// table and logger from it, and hands the work to internal/organizer. The
// commands only render results: a summary table after organizing, the
// active category table, and the session history journal.
package main
