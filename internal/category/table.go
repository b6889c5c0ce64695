package category

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
)

// DefaultFallback is the catch-all category used when no other category
// claims an extension.
const DefaultFallback = "Others"

// ErrInvalidTable marks category tables that fail construction checks.
var ErrInvalidTable = errors.New("invalid category table")

// Definition describes one category as supplied by configuration.
type Definition struct {
	Name       string
	Extensions []string
}

type entry struct {
	name       string
	extensions map[string]struct{}
	ordered    []string
}

// Table is an ordered extension-to-category mapping with a fallback sentinel.
// A Table is immutable after construction and safe for concurrent use.
type Table struct {
	entries  []entry
	fallback string
}

// New validates the definitions and builds a Table. The fallback category
// must appear among the definitions with an empty extension list; every
// other extension may belong to at most one category.
func New(defs []Definition, fallback string) (*Table, error) {
	fallback = strings.TrimSpace(fallback)
	if fallback == "" {
		fallback = DefaultFallback
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: no categories defined", ErrInvalidTable)
	}

	table := &Table{fallback: fallback, entries: make([]entry, 0, len(defs))}
	names := make(map[string]struct{}, len(defs))
	owners := make(map[string]string)
	sawFallback := false

	for _, def := range defs {
		name := strings.TrimSpace(def.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		if _, dup := names[name]; dup {
			return nil, fmt.Errorf("%w: category %q defined more than once", ErrInvalidTable, name)
		}
		names[name] = struct{}{}

		if name == fallback {
			if len(def.Extensions) > 0 {
				return nil, fmt.Errorf("%w: fallback category %q must not list extensions", ErrInvalidTable, name)
			}
			sawFallback = true
		}

		e := entry{name: name, extensions: make(map[string]struct{}, len(def.Extensions))}
		for _, raw := range def.Extensions {
			ext := NormalizeExtension(raw)
			if owner, taken := owners[ext]; taken {
				if owner == name {
					continue
				}
				return nil, fmt.Errorf("%w: extension %q claimed by both %q and %q", ErrInvalidTable, ext, owner, name)
			}
			owners[ext] = name
			e.extensions[ext] = struct{}{}
			e.ordered = append(e.ordered, ext)
		}
		table.entries = append(table.entries, e)
	}

	if !sawFallback {
		return nil, fmt.Errorf("%w: fallback category %q is missing", ErrInvalidTable, fallback)
	}
	return table, nil
}

// Classify returns the category for an extension. Matching is
// case-insensitive and the first category in definition order wins;
// unmatched extensions, including the empty one, resolve to the fallback.
func (t *Table) Classify(ext string) string {
	folded := NormalizeExtension(ext)
	for _, e := range t.entries {
		if _, ok := e.extensions[folded]; ok {
			return e.name
		}
	}
	return t.fallback
}

// Fallback returns the name of the catch-all category.
func (t *Table) Fallback() string {
	return t.fallback
}

// Names lists category names in definition order.
func (t *Table) Names() []string {
	out := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e.name)
	}
	return out
}

// Has reports whether name is a category in the table.
func (t *Table) Has(name string) bool {
	for _, e := range t.entries {
		if e.name == name {
			return true
		}
	}
	return false
}

// Extensions returns a copy of the extensions registered for name, in the
// order they were defined.
func (t *Table) Extensions(name string) []string {
	for _, e := range t.entries {
		if e.name == name {
			out := make([]string, len(e.ordered))
			copy(out, e.ordered)
			return out
		}
	}
	return nil
}

// Definitions returns the table in the shape New accepts.
func (t *Table) Definitions() []Definition {
	out := make([]Definition, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, Definition{Name: e.name, Extensions: t.Extensions(e.name)})
	}
	return out
}

// NormalizeExtension trims and case-folds an extension. A missing leading
// dot is added so "jpg" and ".JPG" compare equal.
func NormalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return cases.Fold().String(ext)
}

// ExtensionOf returns the extension of a file name, including the dot. Names
// whose only dot is the leading one (".bashrc") or that end in a dot have no
// extension.
func ExtensionOf(name string) string {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	if ext == base || ext == "." {
		return ""
	}
	return ext
}

// StemOf returns the file name without its extension as defined by
// ExtensionOf.
func StemOf(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, ExtensionOf(base))
}

func validateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: category name must not be empty", ErrInvalidTable)
	case name == "." || name == "..":
		return fmt.Errorf("%w: category name %q is reserved", ErrInvalidTable, name)
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: category name %q must be a single path segment", ErrInvalidTable, name)
	}
	return nil
}
