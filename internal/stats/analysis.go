package stats

import (
	"errors"
	"log/slog"
	"sort"

	"nutristat/internal/models"
	"nutristat/internal/reference"
)

// ErrNilConsumption is returned when an analysis is constructed from a
// nil consumption map.
var ErrNilConsumption = errors.New("consumption must not be nil")

// Analysis holds the derived views for one consumption record: the
// per-food breakdown, the consolidated totals, and the macro percent
// breakup. It is immutable after construction, so concurrent reads
// need no locking.
type Analysis struct {
	breakdown    []models.BreakdownRow
	consolidated models.ConsolidatedStats
	macros       models.MacroBreakdown
	discarded    []string
}

// NewAnalysis scales each consumed food's per-100g reference row by
// grams/100, sums the contributions, and derives the macro percent
// breakup. Foods missing from the table contribute nothing; they are
// reported on logger and retained for Discarded. An empty consumption
// yields zero totals and NaN macro percentages.
func NewAnalysis(table *reference.Table, consumption map[string]float64, logger *slog.Logger) (*Analysis, error) {
	if consumption == nil {
		return nil, ErrNilConsumption
	}
	if logger == nil {
		logger = slog.Default()
	}

	a := &Analysis{}

	// Table order keeps the breakdown rows alphabetical regardless of
	// map iteration order.
	for _, rec := range table.Records() {
		grams, ok := consumption[rec.Name]
		if !ok {
			continue
		}
		scale := grams / 100
		a.breakdown = append(a.breakdown, models.BreakdownRow{
			Food:    rec.Name,
			Grams:   grams,
			Energy:  rec.EnergyPer100g * scale,
			Carbs:   rec.CarbsPer100g * scale,
			Protein: rec.ProteinPer100g * scale,
			Fat:     rec.FatPer100g * scale,
			Cost:    rec.PricePer100g * scale,
		})
	}

	for name := range consumption {
		if _, ok := table.Lookup(name); !ok {
			a.discarded = append(a.discarded, name)
		}
	}
	sort.Strings(a.discarded)

	if len(a.discarded) > 0 {
		msg := "foods have no reference data and will be discarded"
		if len(a.discarded) == 1 {
			msg = "food has no reference data and will be discarded"
		}
		logger.Warn(msg, "foods", a.discarded)
	}

	for _, row := range a.breakdown {
		a.consolidated.Energy += row.Energy
		a.consolidated.Carbs += row.Carbs
		a.consolidated.Protein += row.Protein
		a.consolidated.Fat += row.Fat
		a.consolidated.Cost += row.Cost
	}

	// 0/0 when no macros were consumed at all; the NaN is deliberate.
	macroSum := a.consolidated.MacroSum()
	a.macros = models.MacroBreakdown{
		CarbsPercent:   a.consolidated.Carbs / macroSum * 100,
		ProteinPercent: a.consolidated.Protein / macroSum * 100,
		FatPercent:     a.consolidated.Fat / macroSum * 100,
	}

	return a, nil
}

// StatsBreakup returns the per-food scaled contributions, one row per
// consumed food found in the reference table, alphabetical by name.
func (a *Analysis) StatsBreakup() []models.BreakdownRow {
	rows := make([]models.BreakdownRow, len(a.breakdown))
	copy(rows, a.breakdown)
	return rows
}

// ConsolidatedStats returns the net totals for the whole consumption.
func (a *Analysis) ConsolidatedStats() models.ConsolidatedStats {
	return a.consolidated
}

// MacroBreakup returns the percent split of carbs, protein and fat.
func (a *Analysis) MacroBreakup() models.MacroBreakdown {
	return a.macros
}

// Discarded returns the consumed food names that had no reference
// data, alphabetically sorted.
func (a *Analysis) Discarded() []string {
	names := make([]string, len(a.discarded))
	copy(names, a.discarded)
	return names
}
