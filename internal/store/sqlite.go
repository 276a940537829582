// Package store keeps imported meter records and temperature observations
// in a local SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"energy_baseline/internal/serializer"
	"energy_baseline/internal/weather"
)

// Timestamps are stored as UTC RFC 3339 text so lexicographic order matches
// chronological order.
//
// Store wraps the database connection.
type Store struct {
	conn *sql.DB
}

// Open creates the connection and initializes the schema.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS meter_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		value REAL NOT NULL,
		estimated INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		UNIQUE(start_time, end_time)
	);
	CREATE INDEX IF NOT EXISTS idx_meter_start ON meter_records(start_time);

	CREATE TABLE IF NOT EXISTS temperatures (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ts TEXT NOT NULL UNIQUE,
		temp_f REAL NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_temperatures_ts ON temperatures(ts);
	`

	_, err := s.conn.Exec(schema)
	return err
}

// InsertMeterRecords inserts records, ignoring duplicates. Returns the
// number actually inserted.
func (s *Store) InsertMeterRecords(records []serializer.Record) (int, error) {
	query := `
	INSERT OR IGNORE INTO meter_records (start_time, end_time, value, estimated, created_at)
	VALUES (?, ?, ?, ?, ?)
	`
	createdAt := time.Now().UTC().Format(time.RFC3339)

	inserted := 0
	for _, r := range records {
		estimated := 0
		if r.Estimated {
			estimated = 1
		}
		res, err := s.conn.Exec(query,
			r.Start.UTC().Format(time.RFC3339), r.End.UTC().Format(time.RFC3339), r.Value, estimated, createdAt)
		if err != nil {
			return inserted, fmt.Errorf("inserting meter record: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return inserted, err
		}
		inserted += int(n)
	}
	return inserted, nil
}

// InsertTemperatures inserts temperature readings, ignoring duplicates.
func (s *Store) InsertTemperatures(readings []weather.Reading) (int, error) {
	query := `
	INSERT OR IGNORE INTO temperatures (ts, temp_f, created_at)
	VALUES (?, ?, ?)
	`
	createdAt := time.Now().UTC().Format(time.RFC3339)

	inserted := 0
	for _, r := range readings {
		res, err := s.conn.Exec(query, r.Time.UTC().Format(time.RFC3339), r.TempF, createdAt)
		if err != nil {
			return inserted, fmt.Errorf("inserting temperature: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return inserted, err
		}
		inserted += int(n)
	}
	return inserted, nil
}

// MeterRecords loads all meter records ordered by period start.
func (s *Store) MeterRecords() ([]serializer.Record, error) {
	rows, err := s.conn.Query(`
		SELECT start_time, end_time, value, estimated
		FROM meter_records ORDER BY start_time`)
	if err != nil {
		return nil, fmt.Errorf("querying meter records: %w", err)
	}
	defer rows.Close()

	var records []serializer.Record
	for rows.Next() {
		var startStr, endStr string
		var value float64
		var estimated int
		if err := rows.Scan(&startStr, &endStr, &value, &estimated); err != nil {
			return nil, err
		}
		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return nil, fmt.Errorf("parsing start_time %q: %w", startStr, err)
		}
		end, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			return nil, fmt.Errorf("parsing end_time %q: %w", endStr, err)
		}
		records = append(records, serializer.Record{
			Start: start, End: end, Value: value, Estimated: estimated != 0,
		})
	}
	return records, rows.Err()
}

// Temperatures loads temperature readings ordered by timestamp, optionally
// restricted to [start, end). Zero bounds mean unbounded.
func (s *Store) Temperatures(start, end time.Time) ([]weather.Reading, error) {
	query := `SELECT ts, temp_f FROM temperatures`
	var args []any
	switch {
	case !start.IsZero() && !end.IsZero():
		query += ` WHERE ts >= ? AND ts < ?`
		args = append(args, start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
	case !start.IsZero():
		query += ` WHERE ts >= ?`
		args = append(args, start.UTC().Format(time.RFC3339))
	case !end.IsZero():
		query += ` WHERE ts < ?`
		args = append(args, end.UTC().Format(time.RFC3339))
	}
	query += ` ORDER BY ts`

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying temperatures: %w", err)
	}
	defer rows.Close()

	var readings []weather.Reading
	for rows.Next() {
		var tsStr string
		var tempF float64
		if err := rows.Scan(&tsStr, &tempF); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, tsStr)
		if err != nil {
			return nil, fmt.Errorf("parsing ts %q: %w", tsStr, err)
		}
		readings = append(readings, weather.Reading{Time: ts, TempF: tempF})
	}
	return readings, rows.Err()
}

// Counts returns the number of stored meter records and temperatures.
func (s *Store) Counts() (meterRecords, temperatures int, err error) {
	if err := s.conn.QueryRow(`SELECT COUNT(*) FROM meter_records`).Scan(&meterRecords); err != nil {
		return 0, 0, err
	}
	if err := s.conn.QueryRow(`SELECT COUNT(*) FROM temperatures`).Scan(&temperatures); err != nil {
		return 0, 0, err
	}
	return meterRecords, temperatures, nil
}

// MeterRange returns the covered period of stored meter records.
func (s *Store) MeterRange() (start, end time.Time, ok bool, err error) {
	var minStr, maxStr sql.NullString
	row := s.conn.QueryRow(`SELECT MIN(start_time), MAX(end_time) FROM meter_records`)
	if err := row.Scan(&minStr, &maxStr); err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	if !minStr.Valid || !maxStr.Valid {
		return time.Time{}, time.Time{}, false, nil
	}
	start, err = time.Parse(time.RFC3339, minStr.String)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	end, err = time.Parse(time.RFC3339, maxStr.String)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	return start, end, true, nil
}
