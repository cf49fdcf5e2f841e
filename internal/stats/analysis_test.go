package stats

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutristat/internal/models"
	"nutristat/internal/reference"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestNewAnalysisNilConsumption(t *testing.T) {
	_, err := NewAnalysis(reference.Default(), nil, discardLogger())
	assert.ErrorIs(t, err, ErrNilConsumption)
}

func TestSingleFoodScaling(t *testing.T) {
	analysis, err := NewAnalysis(reference.Default(), map[string]float64{"egg": 120}, discardLogger())
	require.NoError(t, err)

	rows := analysis.StatsBreakup()
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "egg", row.Food)
	assert.Equal(t, 120.0, row.Grams)
	assert.InDelta(t, 155*1.2, row.Energy, 1e-9)
	assert.InDelta(t, 1.1*1.2, row.Carbs, 1e-9)
	assert.InDelta(t, 13*1.2, row.Protein, 1e-9)
	assert.InDelta(t, 11*1.2, row.Fat, 1e-9)
	assert.InDelta(t, 10.66*1.2, row.Cost, 1e-9)
}

func TestMilkAndOatsScenario(t *testing.T) {
	analysis, err := NewAnalysis(reference.Default(), map[string]float64{
		"milk": 500,
		"oats": 40,
	}, discardLogger())
	require.NoError(t, err)

	rows := analysis.StatsBreakup()
	require.Len(t, rows, 2)

	milk, oats := rows[0], rows[1]
	require.Equal(t, "milk", milk.Food)
	require.Equal(t, "oats", oats.Food)

	assert.InDelta(t, 291.0, milk.Energy, 0.01)
	assert.InDelta(t, 24.0, milk.Carbs, 0.01)
	assert.InDelta(t, 15.0, milk.Protein, 0.01)
	assert.InDelta(t, 15.0, milk.Fat, 0.01)

	assert.InDelta(t, 151.6, oats.Energy, 0.01)
	assert.InDelta(t, 27.12, oats.Carbs, 0.01)
	assert.InDelta(t, 4.64, oats.Protein, 0.01)
	assert.InDelta(t, 3.6, oats.Fat, 0.01)

	totals := analysis.ConsolidatedStats()
	assert.InDelta(t, 442.6, totals.Energy, 0.01)
	assert.InDelta(t, 51.12, totals.Carbs, 0.01)
	assert.InDelta(t, 19.64, totals.Protein, 0.01)
	assert.InDelta(t, 18.6, totals.Fat, 0.01)

	breakup := analysis.MacroBreakup()
	assert.InDelta(t, 57.2, breakup.CarbsPercent, 0.1)
	assert.InDelta(t, 22.0, breakup.ProteinPercent, 0.1)
	assert.InDelta(t, 20.8, breakup.FatPercent, 0.1)
}

func TestConsolidatedEqualsColumnSums(t *testing.T) {
	analysis, err := NewAnalysis(reference.Default(), map[string]float64{
		"milk":          500,
		"oats":          40,
		"banana":        100,
		"almond":        25,
		"whey isolate":  30,
		"peanut butter": 30,
	}, discardLogger())
	require.NoError(t, err)

	var want models.ConsolidatedStats
	for _, row := range analysis.StatsBreakup() {
		want.Energy += row.Energy
		want.Carbs += row.Carbs
		want.Protein += row.Protein
		want.Fat += row.Fat
		want.Cost += row.Cost
	}

	got := analysis.ConsolidatedStats()
	assert.InDelta(t, want.Energy, got.Energy, 1e-9)
	assert.InDelta(t, want.Carbs, got.Carbs, 1e-9)
	assert.InDelta(t, want.Protein, got.Protein, 1e-9)
	assert.InDelta(t, want.Fat, got.Fat, 1e-9)
	assert.InDelta(t, want.Cost, got.Cost, 1e-9)
}

func TestMacroPercentagesSumTo100(t *testing.T) {
	analysis, err := NewAnalysis(reference.Default(), map[string]float64{
		"rice":   150,
		"paneer": 80,
		"ghee":   10,
	}, discardLogger())
	require.NoError(t, err)

	breakup := analysis.MacroBreakup()
	sum := breakup.CarbsPercent + breakup.ProteinPercent + breakup.FatPercent
	assert.InDelta(t, 100.0, sum, 1e-6)
}

func TestUnknownFoodsDiscardedWithWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	analysis, err := NewAnalysis(reference.Default(), map[string]float64{
		"milk":     200,
		"unicorn":  50,
		"stardust": 10,
	}, logger)
	require.NoError(t, err)

	assert.Equal(t, []string{"stardust", "unicorn"}, analysis.Discarded())
	assert.Contains(t, buf.String(), "foods have no reference data")
	assert.Contains(t, buf.String(), "unicorn")

	// Discarded foods must not surface in any derived view.
	rows := analysis.StatsBreakup()
	require.Len(t, rows, 1)
	assert.Equal(t, "milk", rows[0].Food)

	totals := analysis.ConsolidatedStats()
	assert.InDelta(t, 58.2*2, totals.Energy, 1e-9)
}

func TestSingleUnknownFoodWarningPhrasing(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	_, err := NewAnalysis(reference.Default(), map[string]float64{"unicorn": 50}, logger)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "food has no reference data")
}

func TestEmptyConsumption(t *testing.T) {
	analysis, err := NewAnalysis(reference.Default(), map[string]float64{}, discardLogger())
	require.NoError(t, err)

	assert.Empty(t, analysis.StatsBreakup())
	assert.Equal(t, models.ConsolidatedStats{}, analysis.ConsolidatedStats())

	breakup := analysis.MacroBreakup()
	assert.True(t, math.IsNaN(breakup.CarbsPercent))
	assert.True(t, math.IsNaN(breakup.ProteinPercent))
	assert.True(t, math.IsNaN(breakup.FatPercent))
}

func TestNegativeGramsPassThrough(t *testing.T) {
	// Negative grams are the caller's responsibility; the arithmetic
	// just scales through.
	analysis, err := NewAnalysis(reference.Default(), map[string]float64{"milk": -100}, discardLogger())
	require.NoError(t, err)

	totals := analysis.ConsolidatedStats()
	assert.InDelta(t, -58.2, totals.Energy, 1e-9)
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	analysis, err := NewAnalysis(reference.Default(), map[string]float64{"milk": 100}, nil)
	require.NoError(t, err)
	assert.Len(t, analysis.StatsBreakup(), 1)
}
