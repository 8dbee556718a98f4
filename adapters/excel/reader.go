// Package excel reads and writes the spreadsheet side of the pipeline:
// CSV/XLSX ingestion into raw tables and the rendered multi-sheet report
// workbook.
package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"datasuite/domain/table"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files into a raw table.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader that handles both Excel and CSV files,
// dispatching on the file extension.
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadTable reads the source file into a RawTable. The first row is the
// header row; empty cells (after trimming) become null cells. Column order
// follows the file.
func (r *DataReader) ReadTable() (table.RawTable, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return table.RawTable{}, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return table.RawTable{}, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

func (r *DataReader) readExcel() (table.RawTable, error) {
	start := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return table.RawTable{}, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return table.RawTable{}, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	log.Printf("[DataReader] Excel sheet %q read in %.2fms (%d rows)",
		sheet, float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	return r.buildTable(rows)
}

func (r *DataReader) readCSV() (table.RawTable, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return table.RawTable{}, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	start := time.Now()
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, short rows pad as null
	rows, err := reader.ReadAll()
	if err != nil {
		return table.RawTable{}, fmt.Errorf("failed to read CSV file: %w", err)
	}
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)",
		float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	return r.buildTable(rows)
}

// buildTable converts raw string rows into the columnar RawTable format.
func (r *DataReader) buildTable(rows [][]string) (table.RawTable, error) {
	if len(rows) < 2 {
		return table.RawTable{}, fmt.Errorf("%s file must have at least a header row and one data row", strings.ToUpper(r.fileType))
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := rows[1:]
	cols := make([]table.Column, len(headers))
	for i, name := range headers {
		cells := make([]table.Cell, len(dataRows))
		for j, row := range dataRows {
			if i >= len(row) || strings.TrimSpace(row[i]) == "" {
				cells[j] = table.Cell{Null: true}
			} else {
				cells[j] = table.Cell{Value: strings.TrimSpace(row[i])}
			}
		}
		cols[i] = table.Column{Name: name, Cells: cells}
	}

	log.Printf("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return table.RawTable{Columns: cols}, nil
}
