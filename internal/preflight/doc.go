// Package preflight provides filesystem readiness checks run before an
// organization session.
//
// The organize command calls RunAll and refuses to start when a check
// fails, so permission problems surface as one clear message instead of a
// failure record for every file.
package preflight
