package server

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	"nutristat/internal/models"
	"nutristat/internal/stats"
)

type AnalyzeConsumptionParams struct {
	Consumption map[string]float64 `json:"consumption" description:"Mapping of food name to grams consumed"`
	Save        bool               `json:"save,omitempty" description:"Record this analysis in the per-run history"`
}

type MacroPerCurrencyParams struct {
	Macro string `json:"macro" description:"Macro to rank by: energy, carbs, protein or fat"`
}

type GetFoodParams struct {
	Name string `json:"name" description:"Exact food name to look up"`
}

type GetAnalysesParams struct {
	Limit int `json:"limit,omitempty" description:"Maximum number of analyses to return"`
}

// AnalysisResult is the wire shape of one consumption analysis.
// MacroBreakup is omitted when the consumption carried no macros,
// since the percentages are undefined (NaN) in that case.
type AnalysisResult struct {
	Breakdown    []models.BreakdownRow    `json:"breakdown"`
	Consolidated models.ConsolidatedStats `json:"consolidated"`
	MacroBreakup *models.MacroBreakdown   `json:"macro_breakup,omitempty"`
	Discarded    []string                 `json:"discarded,omitempty"`
	ID           string                   `json:"id,omitempty"`
}

// rankedEntry renders a ranking row; zero-price foods have an
// infinite ratio, which JSON cannot carry as a number.
type rankedEntry struct {
	Food     string  `json:"food"`
	Ratio    float64 `json:"ratio"`
	Infinite bool    `json:"infinite,omitempty"`
}

// extractParams safely extracts parameters from the request arguments
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}

	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("failed to unmarshal parameters: %w", err)
	}

	return nil
}

// handleAnalyzeConsumption runs the consumption aggregator over the
// reference table and returns the three derived views.
func (s *NutritionServer) handleAnalyzeConsumption(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params AnalyzeConsumptionParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if params.Consumption == nil {
		return nil, fmt.Errorf("consumption is required")
	}

	analysis, err := stats.NewAnalysis(s.table, params.Consumption, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze consumption: %w", err)
	}

	discarded := analysis.Discarded()
	if len(discarded) > 0 {
		discardedFoods.Add(float64(len(discarded)))
	}

	result := AnalysisResult{
		Breakdown:    analysis.StatsBreakup(),
		Consolidated: analysis.ConsolidatedStats(),
		Discarded:    discarded,
	}
	if breakup := analysis.MacroBreakup(); !math.IsNaN(breakup.CarbsPercent) {
		result.MacroBreakup = &breakup
	}

	if params.Save {
		record := &models.AnalysisRecord{
			Consumption: params.Consumption,
			Discarded:   discarded,
			Totals:      analysis.ConsolidatedStats(),
		}
		if err := s.storage.SaveAnalysis(record); err != nil {
			return nil, fmt.Errorf("failed to save analysis: %w", err)
		}
		result.ID = record.ID
	}

	return s.createJSONResponse(result)
}

// handleMacroPerCurrency ranks foods by macro amount per currency unit.
func (s *NutritionServer) handleMacroPerCurrency(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params MacroPerCurrencyParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	macro, err := stats.ParseMacro(params.Macro)
	if err != nil {
		return nil, err
	}

	ranked, err := stats.MacroPerCurrency(s.table, macro)
	if err != nil {
		return nil, err
	}

	entries := make([]rankedEntry, 0, len(ranked))
	for _, r := range ranked {
		entry := rankedEntry{Food: r.Food, Ratio: r.Ratio}
		if math.IsInf(r.Ratio, 1) {
			entry.Ratio = 0
			entry.Infinite = true
		}
		entries = append(entries, entry)
	}

	return s.createJSONResponse(entries)
}

// handleListFoods returns every reference row.
func (s *NutritionServer) handleListFoods(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	foods, err := s.storage.ListFoods()
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}

	return s.createJSONResponse(foods)
}

// handleGetFood looks up a single reference row by exact name.
func (s *NutritionServer) handleGetFood(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params GetFoodParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if params.Name == "" {
		return nil, fmt.Errorf("food name is required")
	}

	food, err := s.storage.LookupFood(params.Name)
	if err != nil {
		return nil, err
	}

	return s.createJSONResponse(food)
}

// handleGetAnalyses returns the per-run analysis history.
func (s *NutritionServer) handleGetAnalyses(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params GetAnalysesParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if params.Limit <= 0 {
		params.Limit = 20
	}

	analyses, err := s.storage.GetAnalyses(params.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve analyses: %w", err)
	}

	return s.createJSONResponse(analyses)
}

func (s *NutritionServer) toolHandlers() map[string]func(*protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	return map[string]func(*protocol.CallToolRequest) (*protocol.CallToolResult, error){
		"analyze_consumption": s.handleAnalyzeConsumption,
		"macro_per_currency":  s.handleMacroPerCurrency,
		"list_foods":          s.handleListFoods,
		"get_food":            s.handleGetFood,
		"get_analyses":        s.handleGetAnalyses,
	}
}

func (s *NutritionServer) registerTools() error {
	for name := range s.toolHandlers() {
		s.logger.Debug("registered tool", "tool", name)
	}
	return nil
}
