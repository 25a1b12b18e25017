package core

// Category is one entry of the suggested vocabulary exposed to the UI. The
// set is open: the store accepts any non-empty category string, suggested or
// not.
type Category struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Type  string `json:"type"` // "income", "expense" or "both"
}

// SuggestedCategories returns the fixed vocabulary the transaction form
// offers, split by applicable transaction type.
func SuggestedCategories() []Category {
	return []Category{
		{Value: "food", Label: "Food & Dining", Type: "expense"},
		{Value: "transportation", Label: "Transportation", Type: "expense"},
		{Value: "entertainment", Label: "Entertainment", Type: "expense"},
		{Value: "shopping", Label: "Shopping", Type: "expense"},
		{Value: "utilities", Label: "Utilities", Type: "expense"},
		{Value: "healthcare", Label: "Healthcare", Type: "expense"},
		{Value: "education", Label: "Education", Type: "expense"},
		{Value: "travel", Label: "Travel", Type: "expense"},
		{Value: "salary", Label: "Salary", Type: "income"},
		{Value: "freelance", Label: "Freelance", Type: "income"},
		{Value: "investment", Label: "Investment", Type: "income"},
		{Value: "other", Label: "Other", Type: "both"},
	}
}
