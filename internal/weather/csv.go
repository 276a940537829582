package weather

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// CSVParser parses Home-Assistant-style CSV exports of a temperature
// sensor.
//
// Expected format:
//
//	entity_id,state,last_changed
//	sensor.outdoor_temp,41.2,2024-11-21T13:00:00.000Z
type CSVParser struct {
	// Location, when non-nil, converts parsed timestamps into the given
	// timezone.
	Location *time.Location
}

func (p *CSVParser) Parse(r io.Reader) ([]Reading, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	var readings []Reading
	lineNum := 1 // header was line 1

	for {
		lineNum++
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", lineNum, err)
		}

		reading, err := p.parseRecord(record, lineNum)
		if err != nil {
			// Skip unparseable rows (e.g. "unavailable" state)
			continue
		}

		readings = append(readings, reading)
	}

	return readings, nil
}

func validateHeader(header []string) error {
	if len(header) < 3 {
		return fmt.Errorf("expected at least 3 columns, got %d", len(header))
	}

	expected := []string{"entity_id", "state", "last_changed"}
	for i, col := range expected {
		if strings.TrimSpace(header[i]) != col {
			return fmt.Errorf("expected column %d to be %q, got %q", i, col, header[i])
		}
	}

	return nil
}

func (p *CSVParser) parseRecord(record []string, lineNum int) (Reading, error) {
	if len(record) < 3 {
		return Reading{}, fmt.Errorf("line %d: expected 3 fields, got %d", lineNum, len(record))
	}

	tempF, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	if err != nil {
		return Reading{}, fmt.Errorf("line %d: parsing temperature %q: %w", lineNum, record[1], err)
	}

	ts, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(record[2]))
	if err != nil {
		return Reading{}, fmt.Errorf("line %d: parsing timestamp %q: %w", lineNum, record[2], err)
	}
	if p.Location != nil {
		ts = ts.In(p.Location)
	}

	return Reading{Time: ts, TempF: tempF}, nil
}
