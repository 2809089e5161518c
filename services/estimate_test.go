package services

import (
	"math"
	"reflect"
	"testing"
)

func TestCalculateTask_Totals(t *testing.T) {
	tests := []struct {
		name           string
		task           Task
		wantTotalWords int
		wantNewCost    float64
		wantRepeatCost float64
		wantTotalCost  float64
	}{
		{
			"new words only",
			Task{NewWords: 1000, CostPerWord: 0.10, WordsPerDay: 1750},
			1000, 100, 0, 100,
		},
		{
			"repeats with discount",
			Task{NewWords: 1000, Repeats: 500, CrossFileRepeats: 250, CostPerWord: 0.10, RepeatDiscount: 30, WordsPerDay: 1750},
			1750, 100, 22.5, 122.5,
		},
		{
			"zero discount makes repeats free",
			Task{NewWords: 100, Repeats: 400, CostPerWord: 0.20, RepeatDiscount: 0, WordsPerDay: 2000},
			500, 20, 0, 20,
		},
		{
			"full discount prices repeats like new words",
			Task{Repeats: 300, CrossFileRepeats: 200, CostPerWord: 0.05, RepeatDiscount: 100, WordsPerDay: 1000},
			500, 0, 25, 25,
		},
		{
			"empty task",
			Task{WordsPerDay: 1},
			0, 0, 0, 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTask(tt.task)
			if got.TotalWords != tt.wantTotalWords {
				t.Errorf("TotalWords = %d, want %d", got.TotalWords, tt.wantTotalWords)
			}
			if got.TotalRepeats != tt.task.Repeats+tt.task.CrossFileRepeats {
				t.Errorf("TotalRepeats = %d, want %d", got.TotalRepeats, tt.task.Repeats+tt.task.CrossFileRepeats)
			}
			if math.Abs(got.NewWordsCost-tt.wantNewCost) > 1e-9 {
				t.Errorf("NewWordsCost = %v, want %v", got.NewWordsCost, tt.wantNewCost)
			}
			if math.Abs(got.RepeatCost-tt.wantRepeatCost) > 1e-9 {
				t.Errorf("RepeatCost = %v, want %v", got.RepeatCost, tt.wantRepeatCost)
			}
			if math.Abs(got.TotalCost-tt.wantTotalCost) > 1e-9 {
				t.Errorf("TotalCost = %v, want %v", got.TotalCost, tt.wantTotalCost)
			}
			if got.TotalCost != got.NewWordsCost+got.RepeatCost {
				t.Errorf("TotalCost %v != NewWordsCost+RepeatCost %v", got.TotalCost, got.NewWordsCost+got.RepeatCost)
			}
		})
	}
}

func TestCalculateTask_EstimatedDays(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want int
	}{
		{"buffer day added inside the ceiling", Task{NewWords: 1000, WordsPerDay: 1750}, 2},
		{"exact multiple of throughput", Task{NewWords: 3500, WordsPerDay: 1750}, 3},
		{"zero words still takes a day", Task{WordsPerDay: 1750}, 1},
		{"fractional quotient rounds up", Task{NewWords: 1751, WordsPerDay: 1750}, 3},
		{"one word per day", Task{NewWords: 3, WordsPerDay: 1}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTask(tt.task)
			if got.RequiresIndividualQuote {
				t.Fatal("RequiresIndividualQuote = true for a small task")
			}
			if got.EstimatedDays == nil {
				t.Fatal("EstimatedDays is nil for an estimable task")
			}
			if *got.EstimatedDays != tt.want {
				t.Errorf("EstimatedDays = %d, want %d", *got.EstimatedDays, tt.want)
			}
		})
	}
}

func TestCalculateTask_IndividualQuoteThreshold(t *testing.T) {
	tests := []struct {
		name           string
		task           Task
		wantIndividual bool
	}{
		{"exactly at threshold", Task{NewWords: 25000, WordsPerDay: 1750}, false},
		{"one word over", Task{NewWords: 25001, WordsPerDay: 1750}, true},
		{"repeats push over the threshold", Task{NewWords: 20000, Repeats: 3000, CrossFileRepeats: 2001, WordsPerDay: 1750}, true},
		{"split exactly at threshold", Task{NewWords: 20000, Repeats: 3000, CrossFileRepeats: 2000, WordsPerDay: 1750}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTask(tt.task)
			if got.RequiresIndividualQuote != tt.wantIndividual {
				t.Errorf("RequiresIndividualQuote = %v, want %v", got.RequiresIndividualQuote, tt.wantIndividual)
			}
			if tt.wantIndividual && got.EstimatedDays != nil {
				t.Errorf("EstimatedDays = %d, want nil for individual quote", *got.EstimatedDays)
			}
			if !tt.wantIndividual && got.EstimatedDays == nil {
				t.Error("EstimatedDays is nil, want a value")
			}
		})
	}
}

func TestCalculateTask_Deterministic(t *testing.T) {
	task := Task{
		ID: "t1", Name: "Manual", NewWords: 1234, Repeats: 56, CrossFileRepeats: 7,
		CostPerWord: 0.11, RepeatDiscount: 25, WordsPerDay: 1500,
	}

	first := CalculateTask(task)
	second := CalculateTask(task)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("CalculateTask is not deterministic:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

func TestCalculateSummary_Empty(t *testing.T) {
	got := CalculateSummary(nil)

	if got.Tasks == nil {
		t.Error("Tasks is nil, want empty slice")
	}
	if len(got.Tasks) != 0 {
		t.Errorf("len(Tasks) = %d, want 0", len(got.Tasks))
	}
	if got.TotalWords != 0 {
		t.Errorf("TotalWords = %d, want 0", got.TotalWords)
	}
	if got.GrandTotal != 0 {
		t.Errorf("GrandTotal = %v, want 0", got.GrandTotal)
	}
}

func TestCalculateSummary_Aggregates(t *testing.T) {
	tasks := []Task{
		{Name: "Manual", NewWords: 1000, Repeats: 200, CostPerWord: 0.10, RepeatDiscount: 30, WordsPerDay: 1750},
		{Name: "UI strings", NewWords: 450, CrossFileRepeats: 50, CostPerWord: 0.15, RepeatDiscount: 50, WordsPerDay: 2000},
		{Name: "Contract", NewWords: 26000, CostPerWord: 0.20, WordsPerDay: 1750},
	}

	got := CalculateSummary(tasks)

	if len(got.Tasks) != len(tasks) {
		t.Fatalf("len(Tasks) = %d, want %d", len(got.Tasks), len(tasks))
	}

	// Input order must be preserved.
	for i, task := range tasks {
		if got.Tasks[i].Name != task.Name {
			t.Errorf("Tasks[%d].Name = %q, want %q", i, got.Tasks[i].Name, task.Name)
		}
	}

	var wantWords int
	var wantTotal float64
	for _, task := range tasks {
		calc := CalculateTask(task)
		wantWords += calc.TotalWords
		wantTotal += calc.TotalCost
	}

	if got.TotalWords != wantWords {
		t.Errorf("TotalWords = %d, want %d", got.TotalWords, wantWords)
	}
	if math.Abs(got.GrandTotal-wantTotal) > 1e-9 {
		t.Errorf("GrandTotal = %v, want %v", got.GrandTotal, wantTotal)
	}
}
