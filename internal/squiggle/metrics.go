package squiggle

// Category classifies a diagnostic for telemetry.
type Category string

// Diagnostic categories.
const (
	PathNonExistent           Category = "PathNonExistent"
	PathNotAFile              Category = "PathNotAFile"
	PathNotADirectory         Category = "PathNotADirectory"
	CompilerPathMissingQuotes Category = "CompilerPathMissingQuotes"
	CompilerModeMismatch      Category = "CompilerModeMismatch"
)

// Categories lists every category in reporting order.
var Categories = []Category{
	PathNonExistent,
	PathNotAFile,
	PathNotADirectory,
	CompilerPathMissingQuotes,
	CompilerModeMismatch,
}

// Counts holds the number of diagnostics per category. Missing entries
// count as zero.
type Counts map[Category]int

// Count tallies diagnostics by category.
func Count(diags []Diagnostic) Counts {
	c := Counts{}
	for _, d := range diags {
		c[d.Category]++
	}
	return c
}

// Diff returns the categories whose count differs between prev and cur,
// with their current count.
func Diff(prev, cur Counts) Counts {
	changed := Counts{}
	for _, cat := range Categories {
		if prev[cat] != cur[cat] {
			changed[cat] = cur[cat]
		}
	}
	return changed
}

// Metrics converts counts to a telemetry payload.
func (c Counts) Metrics() map[string]float64 {
	m := make(map[string]float64, len(c))
	for cat, n := range c {
		m[string(cat)] = float64(n)
	}
	return m
}
