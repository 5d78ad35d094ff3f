package excel

// ReaderConfig holds configuration for spreadsheet ingestion
type ReaderConfig struct {
	// Sheet to read; empty selects the first sheet of the workbook.
	Sheet string `yaml:"sheet"`
	// MissingTokens are cell values treated as no response.
	MissingTokens []string `yaml:"missing_tokens"`
}

// DefaultMissingTokens mirrors the values spreadsheet tooling reads as missing.
var DefaultMissingTokens = []string{
	"", "#N/A", "N/A", "NA", "<NA>", "NULL", "null", "NaN", "nan", "None", "n/a",
}

// DefaultReaderConfig returns sensible defaults for survey uploads
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		MissingTokens: DefaultMissingTokens,
	}
}

// IsMissing reports whether a cell value counts as no response
func (c ReaderConfig) IsMissing(value string) bool {
	for _, token := range c.MissingTokens {
		if value == token {
			return true
		}
	}
	return false
}
