// Package stats computes nutritional statistics over the reference
// table: value-for-money rankings and per-consumption aggregation.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"nutristat/internal/models"
	"nutristat/internal/reference"
)

// ErrInvalidMacro is returned when a macro selector is not one of
// energy, carbs, protein, fat.
var ErrInvalidMacro = errors.New("invalid macro")

// ParseMacro validates a macro selector string.
func ParseMacro(s string) (models.Macro, error) {
	switch m := models.Macro(s); m {
	case models.MacroEnergy, models.MacroCarbs, models.MacroProtein, models.MacroFat:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q (must be one of energy, carbs, protein, fat)", ErrInvalidMacro, s)
}

// MacroPerCurrency ranks every food in the table by how much of the
// given macro one currency unit buys: attribute per 100g divided by
// price per 100g. The 100g basis cancels, so the ratio reads as grams
// (or kcal) per rupee. Results are sorted descending; ties keep table
// order. Zero-price foods rank as +Inf and therefore sort first.
func MacroPerCurrency(table *reference.Table, macro models.Macro) ([]models.RankedFood, error) {
	if _, err := ParseMacro(string(macro)); err != nil {
		return nil, err
	}

	records := table.Records()
	ranked := make([]models.RankedFood, 0, len(records))
	for _, rec := range records {
		ratio := math.Inf(1)
		if rec.PricePer100g != 0 {
			ratio = rec.Attribute(macro) / rec.PricePer100g
		}
		ranked = append(ranked, models.RankedFood{Food: rec.Name, Ratio: ratio})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Ratio > ranked[j].Ratio })
	return ranked, nil
}
