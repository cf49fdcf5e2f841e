package models

import (
	"time"
)

// Macro selects one of the rankable per-100g attributes.
type Macro string

const (
	MacroEnergy  Macro = "energy"
	MacroCarbs   Macro = "carbs"
	MacroProtein Macro = "protein"
	MacroFat     Macro = "fat"
)

// Macros lists every recognized macro selector, in display order.
var Macros = []Macro{MacroEnergy, MacroCarbs, MacroProtein, MacroFat}

// FoodRecord is one row of the per-100g reference table.
// All values are expressed per 100 grams of the food.
type FoodRecord struct {
	Name           string  `json:"name"`
	EnergyPer100g  float64 `json:"energy_kcal_per_100g"`
	CarbsPer100g   float64 `json:"carbs_g_per_100g"`
	ProteinPer100g float64 `json:"protein_g_per_100g"`
	FatPer100g     float64 `json:"fat_g_per_100g"`
	PricePer100g   float64 `json:"price_per_100g"`
}

// Attribute returns the per-100g value selected by m. Unrecognized
// macros return 0; callers validate m before ranking.
func (f FoodRecord) Attribute(m Macro) float64 {
	switch m {
	case MacroEnergy:
		return f.EnergyPer100g
	case MacroCarbs:
		return f.CarbsPer100g
	case MacroProtein:
		return f.ProteinPer100g
	case MacroFat:
		return f.FatPer100g
	}
	return 0
}

// BreakdownRow is one food's scaled contribution to an analysis:
// every per-100g attribute multiplied by grams consumed / 100.
type BreakdownRow struct {
	Food    string  `json:"food"`
	Grams   float64 `json:"grams"`
	Energy  float64 `json:"energy_kcal"`
	Carbs   float64 `json:"carbs_g"`
	Protein float64 `json:"protein_g"`
	Fat     float64 `json:"fat_g"`
	Cost    float64 `json:"cost"`
}

// ConsolidatedStats is the column-wise sum of all breakdown rows.
// Cost is the total money spent on the consumption record.
type ConsolidatedStats struct {
	Energy  float64 `json:"energy_kcal"`
	Carbs   float64 `json:"carbs_g"`
	Protein float64 `json:"protein_g"`
	Fat     float64 `json:"fat_g"`
	Cost    float64 `json:"cost"`
}

// MacroSum returns carbs + protein + fat in grams.
func (c ConsolidatedStats) MacroSum() float64 {
	return c.Carbs + c.Protein + c.Fat
}

// MacroBreakdown is the percent split of the three macros by weight.
// All fields are NaN when the consumption carried no macros at all.
type MacroBreakdown struct {
	CarbsPercent   float64 `json:"carbs_percent"`
	ProteinPercent float64 `json:"protein_percent"`
	FatPercent     float64 `json:"fat_percent"`
}

// RankedFood pairs a food name with its macro-per-currency ratio.
type RankedFood struct {
	Food  string  `json:"food"`
	Ratio float64 `json:"ratio"`
}

// AnalysisRecord is one stored run of the consumption aggregator.
type AnalysisRecord struct {
	ID          string             `json:"id"`
	CreatedAt   time.Time          `json:"created_at"`
	Consumption map[string]float64 `json:"consumption"`
	Discarded   []string           `json:"discarded,omitempty"`
	Totals      ConsolidatedStats  `json:"totals"`
}
