package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/citelab/citeboard/internal/model"
)

// Row is one validated data line of an input file.
type Row struct {
	Line   int
	values map[string]string
	counts map[string]int
}

// Text returns the value of a text column.
func (r Row) Text(column string) string { return r.values[column] }

// Count returns the parsed value of a count column.
func (r Row) Count(column string) int { return r.counts[column] }

// Load reads the schema's file from dir and validates every line. The first
// line must exactly match the schema's column names; each data line must
// split on tab into exactly one value per column. Loading stops at the first
// invalid line.
func Load(dir string, schema Schema) ([]Row, error) {
	path := filepath.Join(dir, schema.File)
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()

	want := schema.header()
	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		if serr := scanner.Err(); serr != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, serr)
		}
		return nil, &SchemaError{Path: path, Want: want}
	}
	header := splitLine(scanner.Text())
	if !equalHeader(header, want) {
		return nil, &SchemaError{Path: path, Want: want, Got: header}
	}

	var rows []Row
	line := 1
	for scanner.Scan() {
		line++
		cells := splitLine(scanner.Text())
		if len(cells) != len(schema.Fields) {
			return nil, &MalformedRowError{Path: path, Line: line, Fields: len(cells), Want: len(schema.Fields)}
		}
		row := Row{
			Line:   line,
			values: make(map[string]string, len(schema.Fields)),
			counts: make(map[string]int, 1),
		}
		for i, field := range schema.Fields {
			cell := cells[i]
			switch field.Kind {
			case FieldText:
				if cell == "" {
					return nil, &FieldError{Path: path, Line: line, Column: field.Name, Value: cell, Reason: "must not be empty"}
				}
				row.values[field.Name] = cell
			case FieldCount:
				n, err := strconv.Atoi(cell)
				if err != nil {
					return nil, &FieldError{Path: path, Line: line, Column: field.Name, Value: cell, Reason: "must be an integer"}
				}
				if n < 0 {
					return nil, &FieldError{Path: path, Line: line, Column: field.Name, Value: cell, Reason: "must not be negative"}
				}
				row.counts[field.Name] = n
			}
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return rows, nil
}

// LoadInstitutions reads and validates institution.txt from dir.
func LoadInstitutions(dir string) ([]model.InstitutionRecord, error) {
	rows, err := Load(dir, InstitutionSchema)
	if err != nil {
		return nil, err
	}
	records := make([]model.InstitutionRecord, len(rows))
	for i, row := range rows {
		records[i] = model.InstitutionRecord{
			Name:    row.Text("name"),
			Count:   row.Count("count"),
			Country: row.Text("country"),
		}
	}
	return records, nil
}

// LoadTopics reads and validates topic.txt from dir.
func LoadTopics(dir string) ([]model.TopicRecord, error) {
	rows, err := Load(dir, TopicSchema)
	if err != nil {
		return nil, err
	}
	records := make([]model.TopicRecord, len(rows))
	for i, row := range rows {
		records[i] = model.TopicRecord{
			Name:  row.Text("name"),
			Count: row.Count("count"),
		}
	}
	return records, nil
}

// LoadTypes reads and validates type.txt from dir.
func LoadTypes(dir string) ([]model.TypeRecord, error) {
	rows, err := Load(dir, TypeSchema)
	if err != nil {
		return nil, err
	}
	records := make([]model.TypeRecord, len(rows))
	for i, row := range rows {
		records[i] = model.TypeRecord{
			Name:  row.Text("name"),
			Count: row.Count("count"),
		}
	}
	return records, nil
}

// splitLine splits a raw input line into cells. A trailing carriage return is
// stripped so CRLF files parse like LF files.
func splitLine(line string) []string {
	return strings.Split(strings.TrimSuffix(line, "\r"), "\t")
}

func equalHeader(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
