package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // registers the "postgres" driver

	"github.com/katalvlaran/tarjan/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS locations (
	name        TEXT PRIMARY KEY,
	street_name TEXT NOT NULL DEFAULT '',
	district    TEXT NOT NULL DEFAULT '',
	lat         DOUBLE PRECISION NOT NULL,
	lng         DOUBLE PRECISION NOT NULL,
	is_home     BOOLEAN NOT NULL DEFAULT FALSE,
	position    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS transport_modes (
	name              TEXT PRIMARY KEY,
	speed_kmh         DOUBLE PRECISION NOT NULL,
	cost_per_km       DOUBLE PRECISION NOT NULL,
	transfer_time_min DOUBLE PRECISION NOT NULL,
	position          INTEGER NOT NULL
);`

type locationRow struct {
	Name       string  `db:"name"`
	StreetName string  `db:"street_name"`
	District   string  `db:"district"`
	Lat        float64 `db:"lat"`
	Lng        float64 `db:"lng"`
	IsHome     bool    `db:"is_home"`
	Position   int     `db:"position"`
}

type modeRow struct {
	Name            string  `db:"name"`
	SpeedKmh        float64 `db:"speed_kmh"`
	CostPerKm       float64 `db:"cost_per_km"`
	TransferTimeMin float64 `db:"transfer_time_min"`
	Position        int     `db:"position"`
}

// PostgresStore keeps the dataset in the locations and transport_modes
// tables. Save* replace a table inside one transaction.
type PostgresStore struct {
	db *sqlx.DB
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore wraps an open connection pool.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres connects to dsn and ensures the schema exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: connect postgres: %w", err)
	}
	s := NewPostgresStore(db)
	if err = s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Migrate creates the tables when absent.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}

	return nil
}

// Close releases the pool.
func (s *PostgresStore) Close() error { return s.db.Close() }

// Load reads both tables ordered by position.
func (s *PostgresStore) Load(ctx context.Context) (Dataset, error) {
	const (
		locationsQuery = `
		SELECT name, street_name, district, lat, lng, is_home, position
		FROM locations
		ORDER BY position, name`
		modesQuery = `
		SELECT name, speed_kmh, cost_per_km, transfer_time_min, position
		FROM transport_modes
		ORDER BY position, name`
	)

	var locs []locationRow
	if err := s.db.SelectContext(ctx, &locs, locationsQuery); err != nil {
		return Dataset{}, fmt.Errorf("store: query locations: %w", err)
	}
	var modes []modeRow
	if err := s.db.SelectContext(ctx, &modes, modesQuery); err != nil {
		return Dataset{}, fmt.Errorf("store: query transport modes: %w", err)
	}

	var d Dataset
	for _, r := range locs {
		loc := core.Location{ID: r.Name, Street: r.StreetName, District: r.District, Lat: r.Lat, Lng: r.Lng}
		if r.IsHome {
			loc.ID = HomeKey
		}
		if err := d.AddLocation(loc); err != nil {
			return Dataset{}, err
		}
	}
	for _, r := range modes {
		err := d.AddMode(core.TransportMode{
			Name:            r.Name,
			SpeedKmh:        r.SpeedKmh,
			CostPerKm:       r.CostPerKm,
			TransferTimeMin: r.TransferTimeMin,
		})
		if err != nil {
			return Dataset{}, err
		}
	}

	return d, nil
}

// SaveLocations replaces the locations table.
func (s *PostgresStore) SaveLocations(ctx context.Context, home *core.Location, locations []core.Location) error {
	rows := make([]locationRow, 0, len(locations)+1)
	for i, l := range locations {
		rows = append(rows, locationRow{
			Name: l.ID, StreetName: l.Street, District: l.District,
			Lat: l.Lat, Lng: l.Lng, Position: i,
		})
	}
	if home != nil {
		rows = append(rows, locationRow{
			Name: HomeKey, StreetName: home.Street, District: home.District,
			Lat: home.Lat, Lng: home.Lng, IsHome: true, Position: len(locations),
		})
	}

	const insert = `
		INSERT INTO locations (name, street_name, district, lat, lng, is_home, position)
		VALUES (:name, :street_name, :district, :lat, :lng, :is_home, :position)`

	return replace(ctx, s.db, "locations", insert, rows)
}

// SaveModes replaces the transport_modes table.
func (s *PostgresStore) SaveModes(ctx context.Context, modes []core.TransportMode) error {
	rows := make([]modeRow, 0, len(modes))
	for i, m := range modes {
		rows = append(rows, modeRow{
			Name: m.Name, SpeedKmh: m.SpeedKmh, CostPerKm: m.CostPerKm,
			TransferTimeMin: m.TransferTimeMin, Position: i,
		})
	}

	const insert = `
		INSERT INTO transport_modes (name, speed_kmh, cost_per_km, transfer_time_min, position)
		VALUES (:name, :speed_kmh, :cost_per_km, :transfer_time_min, :position)`

	return replace(ctx, s.db, "transport_modes", insert, rows)
}

// replace deletes every row of table and inserts rows, all in one transaction.
func replace[T any](ctx context.Context, db *sqlx.DB, table, insert string, rows []T) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("store: clear %s: %w", table, err)
	}
	for _, r := range rows {
		if _, err = tx.NamedExecContext(ctx, insert, r); err != nil {
			return fmt.Errorf("store: insert into %s: %w", table, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}

	return nil
}
