// Package services provides the pricing calculation engine and the
// report renderers for translation quotes.
package services

import "math"

// IndividualQuoteThreshold is the total word count above which a task is
// deferred to manual pricing instead of getting a delivery estimate.
const IndividualQuoteThreshold = 25000

// Task is one translation work item with its word counts and tariff parameters.
type Task struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	NewWords         int     `json:"newWords"`
	Repeats          int     `json:"repeats"`
	CrossFileRepeats int     `json:"crossFileRepeats"`
	CostPerWord      float64 `json:"costPerWord"`
	RepeatDiscount   float64 `json:"repeatDiscount"`
	WordsPerDay      int     `json:"wordsPerDay"`
}

// TaskCalculation is the computed cost and schedule breakdown for a single task.
// EstimatedDays is nil exactly when RequiresIndividualQuote is true.
type TaskCalculation struct {
	Task
	TotalWords              int     `json:"totalWords"`
	TotalRepeats            int     `json:"totalRepeats"`
	CostPerRepeat           float64 `json:"costPerRepeat"`
	NewWordsCost            float64 `json:"newWordsCost"`
	RepeatCost              float64 `json:"repeatCost"`
	TotalCost               float64 `json:"totalCost"`
	RequiresIndividualQuote bool    `json:"requiresIndividualQuote"`
	EstimatedDays           *int    `json:"estimatedDays,omitempty"`
}

// CalculationSummary aggregates the per-task breakdowns of one request.
// Tasks preserves the input order.
type CalculationSummary struct {
	Tasks      []TaskCalculation `json:"tasks"`
	TotalWords int               `json:"totalWords"`
	GrandTotal float64           `json:"grandTotal"`
}

// CalculateTask computes the full breakdown for a single task. It is a pure
// function and never fails for a task that passed boundary validation
// (WordsPerDay >= 1 makes the day estimate division safe).
func CalculateTask(t Task) TaskCalculation {
	calc := TaskCalculation{
		Task:          t,
		TotalWords:    t.NewWords + t.Repeats + t.CrossFileRepeats,
		TotalRepeats:  t.Repeats + t.CrossFileRepeats,
		CostPerRepeat: t.CostPerWord * (t.RepeatDiscount / 100),
	}

	calc.NewWordsCost = float64(t.NewWords) * t.CostPerWord
	calc.RepeatCost = float64(calc.TotalRepeats) * calc.CostPerRepeat
	calc.TotalCost = calc.NewWordsCost + calc.RepeatCost

	// Repeats count toward the threshold, so a task can require a manual
	// quote even when its full-price word count is small.
	calc.RequiresIndividualQuote = calc.TotalWords > IndividualQuoteThreshold

	if !calc.RequiresIndividualQuote {
		// The +1 setup buffer is added to the quotient before rounding up.
		days := int(math.Ceil(float64(calc.TotalWords)/float64(t.WordsPerDay) + 1))
		calc.EstimatedDays = &days
	}

	return calc
}

// CalculateSummary maps CalculateTask over the tasks in order and reduces the
// results into grand totals. An empty input yields an empty task list with
// zero totals, not an error.
func CalculateSummary(tasks []Task) CalculationSummary {
	summary := CalculationSummary{
		Tasks: make([]TaskCalculation, 0, len(tasks)),
	}

	for _, t := range tasks {
		calc := CalculateTask(t)
		summary.Tasks = append(summary.Tasks, calc)
		summary.TotalWords += calc.TotalWords
		summary.GrandTotal += calc.TotalCost
	}

	return summary
}
