package config

import "tidydir/internal/category"

const (
	defaultLogFile          = "file_organizer_log.txt"
	defaultHistoryDB        = "~/.local/share/tidydir/history.db"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultFallbackCategory = category.DefaultFallback
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	defs := category.DefaultDefinitions()
	categories := make([]Category, 0, len(defs))
	for _, def := range defs {
		categories = append(categories, Category{Name: def.Name, Extensions: def.Extensions})
	}
	return Config{
		Paths: Paths{
			LogFile:   defaultLogFile,
			HistoryDB: defaultHistoryDB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Organizer: Organizer{
			FallbackCategory: defaultFallbackCategory,
		},
		Categories: categories,
	}
}
