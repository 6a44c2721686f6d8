package depreciation

// Method selects the annual write-down profile for an asset.
type Method string

const (
	MethodStraightLine      Method = "straight_line"
	MethodDoubleDeclining   Method = "double_declining"
	MethodSumOfYearsDigits  Method = "sum_of_years_digits"
	MethodUnitsOfProduction Method = "units_of_production"
)

// AssetInput describes one depreciable asset.
type AssetInput struct {
	Cost       float64
	UsefulLife int
	Method     Method
	Salvage    float64

	// Units-of-production only.
	TotalUnits   float64
	UnitsPerYear []float64

	// Fraction of the fiscal year the asset was held in its first
	// period ((0,1]). Zero is treated as a full year. Ignored for
	// units-of-production.
	FirstYearFraction float64
}
