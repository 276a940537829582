package serializer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ParseCSV reads meter records from a CSV file with the header
// "start,end,value" and an optional fourth "estimated" column. Timestamps
// are RFC 3339; loc, when non-nil, converts them into the given timezone.
func ParseCSV(r io.Reader, loc *time.Location) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	if len(header) < 3 || strings.TrimSpace(header[0]) != "start" ||
		strings.TrimSpace(header[1]) != "end" || strings.TrimSpace(header[2]) != "value" {
		return nil, fmt.Errorf("expected header start,end,value[,estimated], got %v", header)
	}

	var records []Record
	lineNum := 1

	for {
		lineNum++
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", lineNum, err)
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("line %d: expected at least 3 fields, got %d", lineNum, len(row))
		}

		start, err := time.Parse(time.RFC3339, strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: parsing start %q: %w", lineNum, row[0], err)
		}
		end, err := time.Parse(time.RFC3339, strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("line %d: parsing end %q: %w", lineNum, row[1], err)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parsing value %q: %w", lineNum, row[2], err)
		}

		estimated := false
		if len(row) > 3 {
			estimated, err = strconv.ParseBool(strings.TrimSpace(row[3]))
			if err != nil {
				return nil, fmt.Errorf("line %d: parsing estimated %q: %w", lineNum, row[3], err)
			}
		}

		if loc != nil {
			start = start.In(loc)
			end = end.In(loc)
		}
		records = append(records, Record{Start: start, End: end, Value: value, Estimated: estimated})
	}

	return records, nil
}
