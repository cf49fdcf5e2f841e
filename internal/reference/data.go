package reference

import "nutristat/internal/models"

// Sample per-100g data. Units: energy kcal, carbs/protein/fat grams,
// price rupees.
var defaultRecords = []models.FoodRecord{
	{Name: "milk", EnergyPer100g: 58.2, CarbsPer100g: 4.8, ProteinPer100g: 3, FatPer100g: 3, PricePer100g: 6.36},
	{Name: "oats", EnergyPer100g: 379, CarbsPer100g: 67.8, ProteinPer100g: 11.6, FatPer100g: 9, PricePer100g: 15.13},
	{Name: "banana", EnergyPer100g: 89, CarbsPer100g: 23, ProteinPer100g: 1.1, FatPer100g: 0.3, PricePer100g: 3.7},
	{Name: "peanut butter", EnergyPer100g: 612.5, CarbsPer100g: 19, ProteinPer100g: 26, FatPer100g: 49, PricePer100g: 34.9},
	{Name: "curd", EnergyPer100g: 75, CarbsPer100g: 5, ProteinPer100g: 3.7, FatPer100g: 4.5, PricePer100g: 9},
	{Name: "egg", EnergyPer100g: 155, CarbsPer100g: 1.1, ProteinPer100g: 13, FatPer100g: 11, PricePer100g: 10.66},
	{Name: "whey isolate", EnergyPer100g: 366.3, CarbsPer100g: 1.66, ProteinPer100g: 90, FatPer100g: 1, PricePer100g: 210},
	{Name: "soya granules", EnergyPer100g: 354.1, CarbsPer100g: 33.5, ProteinPer100g: 53.2, FatPer100g: 0.82, PricePer100g: 30},
	{Name: "paneer", EnergyPer100g: 296, CarbsPer100g: 4.5, ProteinPer100g: 20, FatPer100g: 22, PricePer100g: 32},
	{Name: "rice", EnergyPer100g: 344, CarbsPer100g: 77, ProteinPer100g: 6.7, FatPer100g: 0.5, PricePer100g: 9.8},
	{Name: "almond", EnergyPer100g: 194, CarbsPer100g: 2, ProteinPer100g: 7, FatPer100g: 17, PricePer100g: 80},
	{Name: "ghee", EnergyPer100g: 897, CarbsPer100g: 0, ProteinPer100g: 0, FatPer100g: 99.7, PricePer100g: 65},
}

var defaultTable *Table

func init() {
	t, err := New(defaultRecords)
	if err != nil {
		panic(err)
	}
	defaultTable = t
}

// Default returns the built-in reference table.
func Default() *Table {
	return defaultTable
}
