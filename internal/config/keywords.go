package config

// Keywords drive expense classification. A category label is matched
// against each list by case-insensitive substring; the lists here are
// user-overridable via the [keywords] config table.
type Keywords struct {
	Personnel []string `toml:"personnel"`
	Program   []string `toml:"program"`
}

// DefaultKeywords returns the stock classification lists. "Salaries &
// Wages" style labels match via "Wages"; bare plural forms a list entry
// does not cover need a [keywords] override.
func DefaultKeywords() Keywords {
	return Keywords{
		Personnel: []string{"Salary", "Wages", "Payroll"},
		Program:   []string{"Program", "Construction", "Materials", "Supplies"},
	}
}
