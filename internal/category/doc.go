// Package category maps file extensions onto the named folders the organizer
// sorts files into.
//
// A Table is an ordered, immutable list of categories. Lookups fold case,
// walk categories in definition order, and fall back to a designated
// catch-all category so classification never fails. Tables come either from
// Default or from configuration through New, which rejects overlapping
// extensions and malformed category names.
package category
