package categories

import "github.com/budgetbuddy-dev/budgetbuddy/internal/model"

// Builtins returns the categories every registry starts with: five Needs,
// four Wants and one Savings.
func Builtins() []model.Category {
	return []model.Category{
		{ID: "rent", Name: "Rent", Type: model.TypeNeeds, Color: "#e74c3c", Icon: "🏠", Builtin: true},
		{ID: "groceries", Name: "Groceries", Type: model.TypeNeeds, Color: "#2ecc71", Icon: "🛒", Builtin: true},
		{ID: "utilities", Name: "Utilities", Type: model.TypeNeeds, Color: "#3498db", Icon: "💡", Builtin: true},
		{ID: "transport", Name: "Transport", Type: model.TypeNeeds, Color: "#f39c12", Icon: "🚌", Builtin: true},
		{ID: "insurance", Name: "Insurance", Type: model.TypeNeeds, Color: "#16a085", Icon: "🛡", Builtin: true},
		{ID: "entertainment", Name: "Entertainment", Type: model.TypeWants, Color: "#9b59b6", Icon: "🎬", Builtin: true},
		{ID: "dining", Name: "Dining", Type: model.TypeWants, Color: "#e67e22", Icon: "🍽", Builtin: true},
		{ID: "shopping", Name: "Shopping", Type: model.TypeWants, Color: "#e91e63", Icon: "🛍", Builtin: true},
		{ID: "hobbies", Name: "Hobbies", Type: model.TypeWants, Color: "#1abc9c", Icon: "🎨", Builtin: true},
		{ID: "savings", Name: "Savings", Type: model.TypeSavings, Color: "#27ae60", Icon: "💎", Builtin: true},
	}
}
