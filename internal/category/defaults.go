package category

// DefaultDefinitions returns the built-in category list. Callers receive a
// fresh copy they may modify before passing it to New.
func DefaultDefinitions() []Definition {
	return []Definition{
		{Name: "Images", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".webp"}},
		{Name: "Documents", Extensions: []string{".doc", ".docx", ".txt", ".rtf", ".odt"}},
		{Name: "PDFs", Extensions: []string{".pdf"}},
		{Name: "Spreadsheets", Extensions: []string{".xls", ".xlsx", ".csv"}},
		{Name: "Videos", Extensions: []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv"}},
		{Name: "Audio", Extensions: []string{".mp3", ".wav", ".flac", ".aac", ".ogg"}},
		{Name: "Archives", Extensions: []string{".zip", ".rar", ".7z", ".tar", ".gz"}},
		{Name: "Executables", Extensions: []string{".exe", ".msi", ".bat"}},
		{Name: DefaultFallback},
	}
}

// Default returns the built-in table.
func Default() *Table {
	table, err := New(DefaultDefinitions(), DefaultFallback)
	if err != nil {
		panic("category: built-in table is invalid: " + err.Error())
	}
	return table
}
