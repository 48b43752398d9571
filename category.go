package billfold

import (
	"maps"
	"slices"
)

// Default category sets seeded into every new CategoryManager.
var (
	defaultIncomeCategories  = []string{"Salary", "Freelance", "Investment", "Gift", "Other"}
	defaultExpenseCategories = []string{"Food", "Transport", "Entertainment", "Bills", "Shopping", "Health", "Other"}
)

// CategoryManager tracks the known category names per transaction
// direction. One instance is shared by every wallet under a Manager and is
// handed to each wallet when it is added; it is never a package-wide
// singleton.
//
// Categories accumulate monotonically: they register on first use and are
// never deleted for the lifetime of the manager.
type CategoryManager struct {
	income  map[string]bool
	expense map[string]bool
}

// NewCategoryManager returns a manager seeded with the default income and
// expense categories.
func NewCategoryManager() *CategoryManager {
	cm := &CategoryManager{
		income:  make(map[string]bool),
		expense: make(map[string]bool),
	}
	for _, c := range defaultIncomeCategories {
		cm.income[c] = true
	}
	for _, c := range defaultExpenseCategories {
		cm.expense[c] = true
	}
	return cm
}

func (cm *CategoryManager) set(dir Direction) map[string]bool {
	if dir == Income {
		return cm.income
	}
	return cm.expense
}

// Add registers a category name for a direction. Adding an already known
// name is a no-op, and the reserved transfer tag never joins the sets.
func (cm *CategoryManager) Add(name string, dir Direction) {
	if name == "" || name == TransferCategory {
		return
	}
	cm.set(dir)[name] = true
}

// Exists reports whether a category name is known for a direction.
func (cm *CategoryManager) Exists(name string, dir Direction) bool {
	return cm.set(dir)[name]
}

// Categories returns a sorted copy of the known category names for a
// direction. Mutating the returned slice does not affect the manager.
func (cm *CategoryManager) Categories(dir Direction) []string {
	return slices.Sorted(maps.Keys(cm.set(dir)))
}
