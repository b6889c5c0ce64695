package config

import (
	"fmt"
	"strings"

	"tidydir/internal/category"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	c.normalizeCategories()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogFile) == "" {
		c.Paths.LogFile = defaultLogFile
	}
	if c.Paths.LogFile, err = expandPath(strings.TrimSpace(c.Paths.LogFile)); err != nil {
		return fmt.Errorf("paths.log_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaultHistoryDB
	}
	if c.Paths.HistoryDB, err = expandPath(strings.TrimSpace(c.Paths.HistoryDB)); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		format = defaultLogFormat
	}
	c.Logging.Format = format

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level

	if file := strings.TrimSpace(c.Logging.File); file != "" {
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}

func (c *Config) normalizeCategories() {
	c.Organizer.FallbackCategory = strings.TrimSpace(c.Organizer.FallbackCategory)
	if c.Organizer.FallbackCategory == "" {
		c.Organizer.FallbackCategory = defaultFallbackCategory
	}
	if len(c.Categories) == 0 {
		c.Categories = Default().Categories
	}
	for i := range c.Categories {
		c.Categories[i].Name = strings.TrimSpace(c.Categories[i].Name)
		exts := make([]string, 0, len(c.Categories[i].Extensions))
		for _, ext := range c.Categories[i].Extensions {
			exts = append(exts, category.NormalizeExtension(ext))
		}
		c.Categories[i].Extensions = exts
	}
}
