package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"incosedss/domain/survey"

	"github.com/xuri/excelize/v2"
)

// Supported upload types
const (
	FileTypeXLSX = "xlsx"
	FileTypeCSV  = "csv"
)

// DataReader handles reading Excel and CSV files from disk
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	config   ReaderConfig
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	fileType, ok := FileTypeOf(filePath)
	if !ok {
		fileType = FileTypeXLSX
	}
	return &DataReader{filePath: filePath, fileType: fileType, config: DefaultReaderConfig()}
}

// WithConfig replaces the reader configuration
func (r *DataReader) WithConfig(cfg ReaderConfig) *DataReader {
	r.config = cfg
	return r
}

// FileTypeOf maps a file name to a supported type by extension
func FileTypeOf(name string) (string, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return FileTypeXLSX, true
	case ".csv":
		return FileTypeCSV, true
	default:
		return "", false
	}
}

// ReadData reads data from Excel or CSV files into structured format
func (r *DataReader) ReadData() (*ExcelData, error) {
	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, survey.NewUnreadableError(fmt.Errorf("%s file not found: %w", strings.ToUpper(r.fileType), err))
	}
	defer file.Close()

	return Read(file, r.fileType, r.config)
}

// Read dispatches on the file type
func Read(src io.Reader, fileType string, cfg ReaderConfig) (*ExcelData, error) {
	switch fileType {
	case FileTypeCSV:
		return ReadCSV(src, cfg)
	case FileTypeXLSX:
		return ReadWorkbook(src, cfg)
	default:
		return nil, survey.NewUnreadableError(fmt.Errorf("unsupported file type: %s", fileType))
	}
}

// ReadWorkbook reads the configured sheet (the first one by default) of an xlsx workbook
func ReadWorkbook(src io.Reader, cfg ReaderConfig) (*ExcelData, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, survey.NewUnreadableError(fmt.Errorf("failed to open Excel file: %w", err))
	}
	defer f.Close()
	log.Printf("[DataReader] Excel workbook opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	sheet := cfg.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", survey.ErrEmptyDataset)
		}
		sheet = sheets[0]
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, survey.NewUnreadableError(fmt.Errorf("failed to read %s: %w", sheet, err))
	}
	log.Printf("[DataReader] %s read in %.2fms (%d rows)", sheet, float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	data, err := processRows(rows)
	if err != nil {
		return nil, err
	}
	data.Sheet = sheet
	return data, nil
}

// ReadCSV reads CSV data into structured format
func ReadCSV(src io.Reader, cfg ReaderConfig) (*ExcelData, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, survey.NewUnreadableError(fmt.Errorf("failed to read CSV file: %w", err))
	}
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return processRows(rows)
}

// processRows turns raw sheet rows into a rectangular header + rows table
func processRows(rows [][]string) (*ExcelData, error) {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if len(rows) == 0 || width == 0 {
		return nil, fmt.Errorf("%w: no header row", survey.ErrEmptyDataset)
	}

	headers := repairHeaders(rows[0], width)

	var dataRows [][]string
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		padded := make([]string, width)
		copy(padded, row)
		dataRows = append(dataRows, padded)
	}
	if len(dataRows) == 0 {
		return nil, fmt.Errorf("%w: header row only", survey.ErrEmptyDataset)
	}

	data := &ExcelData{
		Headers: headers,
		Rows:    dataRows,
	}
	log.Printf("[DataReader] sheet processed (%d columns, %d rows)", data.ColumnCount(), data.RowCount())
	return data, nil
}

// repairHeaders names blank header cells "Unnamed: <index>" and suffixes
// repeated names with ".1", ".2", ...
func repairHeaders(raw []string, width int) []string {
	headers := make([]string, width)
	seen := make(map[string]bool, width)
	next := make(map[string]int, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(raw) {
			name = raw[i]
		}
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if seen[name] {
			n := max(next[name], 1)
			candidate := fmt.Sprintf("%s.%d", name, n)
			for seen[candidate] {
				n++
				candidate = fmt.Sprintf("%s.%d", name, n)
			}
			next[name] = n + 1
			name = candidate
		}
		seen[name] = true
		headers[i] = name
	}
	return headers
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
