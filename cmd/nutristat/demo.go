package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"text/tabwriter"

	"nutristat/internal/models"
	"nutristat/internal/reference"
	"nutristat/internal/stats"
)

// runDemo analyzes a sample "(bulking) Oat Smoothie" and prints the
// derived views for manual inspection.
func runDemo(w io.Writer) error {
	ingredients := map[string]float64{
		"milk":          500,
		"oats":          40,
		"banana":        100,
		"almond":        25,
		"whey isolate":  30,
		"peanut butter": 30,
	}

	table := reference.Default()
	analysis, err := stats.NewAnalysis(table, ingredients, slog.Default())
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTest run for \"(bulking) Oat Smoothie\"\n---------------------------\n\n")

	totals := analysis.ConsolidatedStats()
	fmt.Fprintf(w, "Consolidated stats for meal:\n\n")
	fmt.Fprintf(w, "  energy   %8.2f kcal\n", totals.Energy)
	fmt.Fprintf(w, "  carbs    %8.2f g\n", totals.Carbs)
	fmt.Fprintf(w, "  protein  %8.2f g\n", totals.Protein)
	fmt.Fprintf(w, "  fat      %8.2f g\n", totals.Fat)
	fmt.Fprintf(w, "  price    %8.2f\n\n", totals.Cost)

	breakup := analysis.MacroBreakup()
	fmt.Fprintf(w, "Macro breakup (in %%):\n\n")
	fmt.Fprintf(w, "  carbs    %6.2f\n", breakup.CarbsPercent)
	fmt.Fprintf(w, "  protein  %6.2f\n", breakup.ProteinPercent)
	fmt.Fprintf(w, "  fat      %6.2f\n\n", breakup.FatPercent)

	fmt.Fprintf(w, "Stats for each ingredient:\n\n")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "food\tgrams\tenergy\tcarbs\tprotein\tfat\tprice")
	for _, row := range analysis.StatsBreakup() {
		fmt.Fprintf(tw, "%s\t%.0f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			row.Food, row.Grams, row.Energy, row.Carbs, row.Protein, row.Fat, row.Cost)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	ranked, err := stats.MacroPerCurrency(table, models.MacroProtein)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nProtein per rupee (best value first):\n\n")
	for _, r := range ranked {
		if math.IsInf(r.Ratio, 1) {
			fmt.Fprintf(w, "  %-15s free\n", r.Food)
			continue
		}
		fmt.Fprintf(w, "  %-15s %.4f\n", r.Food, r.Ratio)
	}
	fmt.Fprintln(w)

	return nil
}
