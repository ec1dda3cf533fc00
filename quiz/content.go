package quiz

// PaymentTerms sorts customer payment behaviours into term bins.
func PaymentTerms() *SortExercise {
	return &SortExercise{
		ID:    "payment-terms",
		Title: "When does the cash arrive?",
		Bins: []Bin{
			{ID: "0", Title: "Paid immediately (0 days)"},
			{ID: "30", Title: "30-day credit"},
			{ID: "60", Title: "60-day credit"},
		},
		Cards: []Card{
			{ID: "t1", Text: "Customer pays immediately when they buy something (cash sale)", Want: "0"},
			{ID: "t2", Text: "Customer pays about one month after the sale (30-day credit)", Want: "30"},
			{ID: "t3", Text: "Customer pays about two months after the sale (60-day credit)", Want: "60"},
		},
	}
}

// AdvantagesDisadvantages sorts statements about forecasting.
func AdvantagesDisadvantages() *SortExercise {
	return &SortExercise{
		ID:    "advantages",
		Title: "Advantages and disadvantages of cash flow forecasts",
		Bins: []Bin{
			{ID: "adv", Title: "Advantage"},
			{ID: "dis", Title: "Disadvantage"},
		},
		Cards: []Card{
			{ID: "a1", Text: "Helps businesses spot cash shortages before they happen, allowing time to fix problems", Want: "adv"},
			{ID: "a2", Text: "Supports planning for large purchases like equipment or vehicles", Want: "adv"},
			{ID: "a3", Text: "Can be shown to banks and investors to demonstrate good financial planning", Want: "adv"},
			{ID: "d1", Text: "Based on estimates and predictions, so may not be completely accurate", Want: "dis"},
			{ID: "d2", Text: "Takes time and effort to create and update regularly", Want: "dis"},
			{ID: "d3", Text: "Unexpected events (like losing a big customer) can quickly make forecasts outdated", Want: "dis"},
		},
	}
}

// SortExercises returns the built-in sorting exercises in display order.
func SortExercises() []*SortExercise {
	return []*SortExercise{PaymentTerms(), AdvantagesDisadvantages()}
}

// FindSort returns the built-in sorting exercise with the given id.
func FindSort(id string) (*SortExercise, bool) {
	for _, ex := range SortExercises() {
		if ex.ID == id {
			return ex, true
		}
	}
	return nil, false
}
