// Package importer reads custom part catalog entries from CSV and Excel
// files. It supports automatic delimiter detection and case-insensitive
// header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/voxedit/internal/catalog"
	"github.com/piwi3910/voxedit/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Entries  []model.CatalogEntry
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	ID        int
	Name      int
	Footprint int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"id":        {"id", "part id", "part_id", "type", "type id"},
	"name":      {"name", "label", "part", "part name", "description", "desc"},
	"footprint": {"footprint", "cells", "shape", "occupancy"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, tab, pipe, and semicolon. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', '\t', '|', ';'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping id, name, footprint and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{ID: -1, Name: -1, Footprint: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "id":
					if mapping.ID == -1 {
						mapping.ID = i
					}
				case "name":
					if mapping.Name == -1 {
						mapping.Name = i
					}
				case "footprint":
					if mapping.Footprint == -1 {
						mapping.Footprint = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{ID: 0, Name: 1, Footprint: 2}, false
	}
	return mapping, true
}

// ParseFootprint parses cells written as "x y z; x y z". Cells may also be
// separated by '/', and coordinates by commas.
func ParseFootprint(s string) ([]model.Cell, error) {
	groups := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '/' })
	cells := make([]model.Cell, 0, len(groups))
	for _, g := range groups {
		if strings.TrimSpace(g) == "" {
			continue
		}
		fields := strings.FieldsFunc(g, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' })
		if len(fields) != 3 {
			return nil, fmt.Errorf("cell %q needs 3 coordinates, has %d", strings.TrimSpace(g), len(fields))
		}
		var c model.Cell
		for axis, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("invalid coordinate %q", f)
			}
			c.SetAxis(axis, v)
		}
		cells = append(cells, c)
	}
	if len(cells) == 0 {
		return nil, catalog.ErrEmptyFootprint
	}
	return cells, nil
}

// FormatFootprint writes cells in the form ParseFootprint reads.
func FormatFootprint(cells []model.Cell) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprintf("%d %d %d", c.X, c.Y, c.Z)
	}
	return strings.Join(parts, "; ")
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a CatalogEntry from a row using the given column mapping.
// Returns the entry, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.CatalogEntry, string, string) {
	idStr := getCell(row, mapping.ID)
	if idStr == "" {
		return model.CatalogEntry{}, fmt.Sprintf("%s: Missing id value", rowLabel), ""
	}
	id, err := strconv.ParseUint(idStr, 10, 16)
	if err != nil || id == 0 {
		return model.CatalogEntry{}, fmt.Sprintf("%s: Invalid id '%s'", rowLabel, idStr), ""
	}

	fpStr := getCell(row, mapping.Footprint)
	if fpStr == "" {
		return model.CatalogEntry{}, fmt.Sprintf("%s: Missing footprint value", rowLabel), ""
	}
	footprint, err := ParseFootprint(fpStr)
	if err != nil {
		return model.CatalogEntry{}, fmt.Sprintf("%s: Invalid footprint: %v", rowLabel, err), ""
	}

	var warning string
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Part %d", id)
		warning = fmt.Sprintf("%s: Missing name, using '%s'", rowLabel, name)
	}

	entry := model.CatalogEntry{ID: uint16(id), Name: name, Footprint: footprint}
	if err := catalog.Validate(entry); err != nil {
		return model.CatalogEntry{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
	}
	return entry, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportFile picks the CSV or Excel reader by file extension.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path)
	default:
		return ImportCSV(path)
	}
}

// ImportCSV imports catalog entries from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports catalog entries from a CSV reader with a
// specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports catalog entries from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// A later row with an id already seen replaces the earlier one.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.ID == -1 {
			missing = append(missing, "ID")
		}
		if mapping.Footprint == -1 {
			missing = append(missing, "Footprint")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if _, err := strconv.ParseUint(getCell(rows[0], 0), 10, 16); err != nil {
		// Unrecognized header: skip it but keep positional mapping
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	seen := make(map[uint16]int)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		entry, errMsg, warning := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		if at, dup := seen[entry.ID]; dup {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Duplicate id %d replaces earlier row", rowLabel, entry.ID))
			result.Entries[at] = entry
			continue
		}
		seen[entry.ID] = len(result.Entries)
		result.Entries = append(result.Entries, entry)
	}

	return result
}

// WriteCSV writes entries with an id,name,footprint header in the format
// ImportCSV reads back.
func WriteCSV(w io.Writer, entries []model.CatalogEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "name", "footprint"}); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{strconv.Itoa(int(e.ID)), e.Name, FormatFootprint(e.Footprint)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
