package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure Go SQLite driver, no CGO

	"nutristat/internal/models"
	"nutristat/internal/reference"
)

// ErrFoodNotFound is returned by LookupFood for unknown names.
var ErrFoodNotFound = errors.New("food not found")

// Fixed-width so that lexicographic ORDER BY matches chronological
// order (RFC3339Nano trims trailing zeros and does not).
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore serves reference-table lookups and keeps a log of the
// analyses run so far. With the default ":memory:" path nothing
// survives the process, which is the intended mode.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at dbPath and seeds the foods
// table from the given reference table.
func NewSQLiteStore(dbPath string, table *reference.Table) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := store.seedFoods(table); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed reference data: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS foods (
        name TEXT PRIMARY KEY,
        energy_kcal_per_100g REAL NOT NULL,
        carbs_g_per_100g REAL NOT NULL,
        protein_g_per_100g REAL NOT NULL,
        fat_g_per_100g REAL NOT NULL,
        price_per_100g REAL NOT NULL
    );

    CREATE TABLE IF NOT EXISTS analyses (
        id TEXT PRIMARY KEY,
        created_at TEXT NOT NULL,
        consumption TEXT NOT NULL,
        discarded TEXT NOT NULL,
        energy_kcal REAL NOT NULL,
        carbs_g REAL NOT NULL,
        protein_g REAL NOT NULL,
        fat_g REAL NOT NULL,
        cost REAL NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) seedFoods(table *reference.Table) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
        INSERT OR REPLACE INTO foods (name, energy_kcal_per_100g, carbs_g_per_100g, protein_g_per_100g, fat_g_per_100g, price_per_100g)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	for _, rec := range table.Records() {
		_, err = tx.Exec(query,
			rec.Name, rec.EnergyPer100g, rec.CarbsPer100g,
			rec.ProteinPer100g, rec.FatPer100g, rec.PricePer100g)
		if err != nil {
			return fmt.Errorf("failed to insert food %q: %w", rec.Name, err)
		}
	}

	return tx.Commit()
}

// ListFoods returns every reference row, alphabetical by name.
func (s *SQLiteStore) ListFoods() ([]models.FoodRecord, error) {
	query := `
        SELECT name, energy_kcal_per_100g, carbs_g_per_100g, protein_g_per_100g, fat_g_per_100g, price_per_100g
        FROM foods
        ORDER BY name
    `

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	defer rows.Close()

	var foods []models.FoodRecord
	for rows.Next() {
		var rec models.FoodRecord
		err := rows.Scan(
			&rec.Name, &rec.EnergyPer100g, &rec.CarbsPer100g,
			&rec.ProteinPer100g, &rec.FatPer100g, &rec.PricePer100g)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		foods = append(foods, rec)
	}

	return foods, rows.Err()
}

// LookupFood returns the reference row for name, or ErrFoodNotFound.
func (s *SQLiteStore) LookupFood(name string) (models.FoodRecord, error) {
	query := `
        SELECT name, energy_kcal_per_100g, carbs_g_per_100g, protein_g_per_100g, fat_g_per_100g, price_per_100g
        FROM foods
        WHERE name = ?
    `

	var rec models.FoodRecord
	err := s.db.QueryRow(query, name).Scan(
		&rec.Name, &rec.EnergyPer100g, &rec.CarbsPer100g,
		&rec.ProteinPer100g, &rec.FatPer100g, &rec.PricePer100g)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FoodRecord{}, fmt.Errorf("%w: %q", ErrFoodNotFound, name)
	}
	if err != nil {
		return models.FoodRecord{}, fmt.Errorf("failed to query food: %w", err)
	}

	return rec, nil
}

// SaveAnalysis records one aggregator run. An ID and timestamp are
// generated when missing.
func (s *SQLiteStore) SaveAnalysis(rec *models.AnalysisRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	consumptionJSON, err := json.Marshal(rec.Consumption)
	if err != nil {
		return fmt.Errorf("failed to marshal consumption: %w", err)
	}
	discarded := rec.Discarded
	if discarded == nil {
		discarded = []string{}
	}
	discardedJSON, err := json.Marshal(discarded)
	if err != nil {
		return fmt.Errorf("failed to marshal discarded foods: %w", err)
	}

	query := `
        INSERT INTO analyses (id, created_at, consumption, discarded, energy_kcal, carbs_g, protein_g, fat_g, cost)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err = s.db.Exec(query,
		rec.ID, rec.CreatedAt.Format(timeLayout),
		string(consumptionJSON), string(discardedJSON),
		rec.Totals.Energy, rec.Totals.Carbs, rec.Totals.Protein,
		rec.Totals.Fat, rec.Totals.Cost)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	return nil
}

// GetAnalyses returns the most recent analyses, newest first.
func (s *SQLiteStore) GetAnalyses(limit int) ([]*models.AnalysisRecord, error) {
	query := `
        SELECT id, created_at, consumption, discarded, energy_kcal, carbs_g, protein_g, fat_g, cost
        FROM analyses
        ORDER BY created_at DESC
        LIMIT ?
    `

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var analyses []*models.AnalysisRecord
	for rows.Next() {
		rec := &models.AnalysisRecord{}
		var createdAtStr, consumptionJSON, discardedJSON string

		err := rows.Scan(
			&rec.ID, &createdAtStr, &consumptionJSON, &discardedJSON,
			&rec.Totals.Energy, &rec.Totals.Carbs, &rec.Totals.Protein,
			&rec.Totals.Fat, &rec.Totals.Cost)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}

		if rec.CreatedAt, err = time.Parse(timeLayout, createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		if err := json.Unmarshal([]byte(consumptionJSON), &rec.Consumption); err != nil {
			return nil, fmt.Errorf("failed to parse consumption: %w", err)
		}
		if err := json.Unmarshal([]byte(discardedJSON), &rec.Discarded); err != nil {
			return nil, fmt.Errorf("failed to parse discarded foods: %w", err)
		}
		if len(rec.Discarded) == 0 {
			rec.Discarded = nil
		}

		analyses = append(analyses, rec)
	}

	return analyses, rows.Err()
}
