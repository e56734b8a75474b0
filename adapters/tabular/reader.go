package tabular

import (
	"encoding/csv"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lifelens/internal/errors"

	"github.com/xuri/excelize/v2"
)

// RawRow is one data row keyed by trimmed header name.
type RawRow map[string]string

// Table is the raw string form of a tabular file before typed decoding.
type Table struct {
	Headers []string
	Rows    []RawRow
}

// Reader handles reading CSV and XLSX files into a Table.
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewReader creates a reader that dispatches on the file extension.
func NewReader(filePath string) *Reader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "csv"
	if ext == ".xlsx" {
		fileType = "xlsx"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// Read loads the file into a Table. A missing or unreadable file is a
// LOAD_ERROR; a file without a header row plus at least one data row is a
// SCHEMA_ERROR.
func (r *Reader) Read() (*Table, error) {
	if _, err := os.Stat(r.filePath); err != nil {
		return nil, errors.LoadError("dataset file not found: "+r.filePath, err)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	default:
		return r.readXLSX()
	}
}

func (r *Reader) readCSV() (*Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.LoadError("failed to open CSV file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.LoadError("failed to read CSV file", err)
	}
	log.Printf("[Reader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

func (r *Reader) readXLSX() (*Table, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.LoadError("failed to open XLSX file", err)
	}
	defer f.Close()

	// Always use Sheet1, matching the export convention of the source data.
	readStart := time.Now()
	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, errors.LoadError("failed to read Sheet1", err)
	}
	log.Printf("[Reader] Sheet1 read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// processRows converts raw string rows into a Table keyed by header.
func (r *Reader) processRows(rows [][]string) (*Table, error) {
	if len(rows) < 2 {
		return nil, errors.SchemaError("dataset must have a header row and at least one data row")
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([]RawRow, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowData := make(RawRow, len(headers))
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	log.Printf("[Reader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &Table{Headers: headers, Rows: dataRows}, nil
}

// HasColumn reports whether the table carries a header.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}
