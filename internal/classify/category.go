package classify

import (
	"strings"

	"github.com/smsledger-dev/smsledger/internal/model"
)

// categoryRule maps a category to the keywords that select it. Rules
// are tried in order; the first category with a matching keyword wins.
type categoryRule struct {
	name     model.CategoryName
	keywords []string
}

var categoryRules = []categoryRule{
	{model.CategoryFood, []string{"swiggy", "zomato", "restaurant", "food", "dining", "eatery"}},
	{model.CategoryShopping, []string{"amazon", "flipkart", "myntra", "shopping", "lifestyle"}},
	{model.CategoryTransport, []string{"uber", "ola", "metro", "petrol", "fuel", "cab", "diesel"}},
	{model.CategoryBills, []string{"electricity", "water", "gas", "mobile", "broadband", "postpaid", "prepaid"}},
	{model.CategoryEntertainment, []string{"netflix", "prime", "hotstar", "movie", "bookmyshow"}},
	{model.CategoryHealth, []string{"hospital", "medical", "pharmacy", "doctor", "clinic"}},
}

// Categorize maps a free-text description to a spending category.
// Total: it always resolves, falling back to Others.
func Categorize(description string) model.CategoryName {
	lower := strings.ToLower(description)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.name
			}
		}
	}
	return model.CategoryOthers
}
