// Package history journals organization sessions in SQLite so past runs can
// be listed and inspected after the fact.
//
// The journal is optional and secondary to the plain-text audit log: it is
// written on a best-effort basis and never consulted when deciding where a
// file goes. Schema changes are applied through the embedded migrations
// directory; add a new numbered file rather than editing an applied one.
package history
