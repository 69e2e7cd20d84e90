package service

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jjenkins/legislators/internal/model"
)

// Accepted birthday formats, tried in order. First match wins.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"2006-01-02 15:04:05",
}

// Row is the outcome of parsing one feed line: either a valid record or a
// skip reason.
type Row struct {
	Record     model.Legislator
	Line       int
	SkipReason string
}

// Skipped reports whether the row failed validation and must not be stored.
func (r *Row) Skipped() bool {
	return r.SkipReason != ""
}

// Parser converts the raw CSV feed into validated legislator rows
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a header-delimited CSV dataset and returns one Row per data
// line. Malformed rows are reported as skips, never as a parse failure;
// only an unreadable header aborts.
func (p *Parser) Parse(content []byte) ([]Row, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read feed header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var rows []Row
	line := 1
	for {
		fields, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			rows = append(rows, Row{Line: line, SkipReason: fmt.Sprintf("unreadable row: %v", err)})
			continue
		}

		row := p.parseRow(fields, index)
		row.Line = line
		rows = append(rows, row)
	}

	return rows, nil
}

// parseRow validates a single feed row against the record invariants.
func (p *Parser) parseRow(fields []string, index map[string]int) Row {
	get := func(column string) string {
		i, ok := index[column]
		if !ok || i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	id, err := strconv.Atoi(get("govtrack_id"))
	if err != nil || id <= 0 {
		return Row{SkipReason: "missing or invalid govtrack_id"}
	}

	rec := model.Legislator{
		GovtrackID: id,
		FirstName:  get("first_name"),
		LastName:   get("last_name"),
		Gender:     get("gender"),
		Type:       get("type"),
		State:      get("state"),
		District:   nullable(get("district")),
		Party:      get("party"),
		URL:        nullable(get("url")),
	}

	if birthday, ok := parseDate(get("birthday")); ok {
		rec.Birthday = birthday
	}

	if err := rec.Validate(model.Now()); err != nil {
		return Row{SkipReason: fmt.Sprintf("legislator %d: %v", id, err)}
	}

	return Row{Record: rec}
}

// parseDate tries each accepted format in order. An unparseable or empty
// value is treated as absent.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// nullable normalizes an empty string to an absent value
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
