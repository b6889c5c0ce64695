// Package fileutil holds the filesystem primitives the organizer builds on:
// no-clobber moves with a cross-device fallback and verified copies.
package fileutil
