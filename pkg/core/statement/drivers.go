package statement

import (
	"math"

	"smb_forecast/pkg/models"
)

// NewDriver builds the revenue driver for a sector. An unknown sector
// is an InvalidInputError, matching the engine's contract that only
// input problems surface as errors.
func NewDriver(sector models.Sector, inputs *models.BusinessInputs) (RevenueDriver, error) {
	monthly := inputs.RevenueInputType != "annual"
	base := baseDriver{inputs: inputs}
	switch sector {
	case models.SectorRetail:
		return &retailDriver{baseDriver: base, products: inputs.Products, monthly: monthly}, nil
	case models.SectorService:
		return &serviceDriver{baseDriver: base, services: inputs.Services, monthly: monthly}, nil
	case models.SectorSaaS:
		return &saasDriver{baseDriver: base, plans: inputs.Plans, monthly: monthly}, nil
	default:
		return nil, &InvalidInputError{Field: "company_type", Msg: "unknown company type " + string(sector)}
	}
}

// baseDriver carries behavior shared by every sector.
type baseDriver struct {
	inputs *models.BusinessInputs
}

// OwnerDrawings pads or repeats the request's drawings across the
// horizon: a scalar applies every year, a list is zero padded.
func (b baseDriver) OwnerDrawings(years int) []float64 {
	drawings := make([]float64, years)
	list := b.inputs.OwnerDrawings
	if len(list) == 0 {
		return drawings
	}
	if list.IsScalar() {
		for i := range drawings {
			drawings[i] = list[0]
		}
		return drawings
	}
	copy(drawings, list)
	return drawings
}

func annualize(v float64, monthly bool) float64 {
	if monthly {
		return v * 12
	}
	return v
}

// growthFactor is (1+g)^year with g in percent.
func growthFactor(growthPct float64, year int) float64 {
	return math.Pow(1+growthPct/100, float64(year))
}

// growthOrDefault prefers the line's own rate; older clients send one
// request-level rate instead, which fills in for lines that carry none.
func growthOrDefault(linePct, globalPct float64) float64 {
	if linePct != 0 {
		return linePct
	}
	return globalPct
}

// ---- retail ----

type retailDriver struct {
	baseDriver
	products []models.ProductLine
	monthly  bool
}

func (d *retailDriver) Validate() error { return nil }

func (d *retailDriver) RevenueAndCOGS(year int) (float64, float64) {
	var revenue, cogs float64
	for _, p := range d.products {
		units := annualize(p.Units.V(), d.monthly)
		factor := growthFactor(growthOrDefault(p.GrowthRate.V(), d.inputs.RevenueGrowth.V()), year)
		revenue += p.Price.V() * units * factor
		cogs += p.Cost.V() * units * factor
	}
	return revenue, cogs
}

func (d *retailDriver) RevenueBreakdown() []models.BreakdownEntry {
	entries := make([]models.BreakdownEntry, 0, len(d.products))
	for _, p := range d.products {
		name := p.Name
		if name == "" {
			name = "Product"
		}
		entries = append(entries, models.BreakdownEntry{
			Category: name,
			Value:    p.Price.V() * annualize(p.Units.V(), d.monthly),
		})
	}
	return entries
}

func (d *retailDriver) HasInventory() bool { return true }

// ---- service ----

type serviceDriver struct {
	baseDriver
	services []models.ServiceLine
	monthly  bool
}

func (d *serviceDriver) Validate() error { return nil }

func (d *serviceDriver) RevenueAndCOGS(year int) (float64, float64) {
	var revenue, cogs float64
	for _, s := range d.services {
		clients := annualize(s.Clients.V(), d.monthly)
		factor := growthFactor(growthOrDefault(s.Growth.V(), d.inputs.RevenueGrowth.V()), year)
		revenue += s.Price.V() * clients * factor
		cogs += s.Cost.V() * clients * factor
	}
	return revenue, cogs
}

func (d *serviceDriver) RevenueBreakdown() []models.BreakdownEntry {
	entries := make([]models.BreakdownEntry, 0, len(d.services))
	for _, s := range d.services {
		name := s.Name
		if name == "" {
			name = "Service"
		}
		entries = append(entries, models.BreakdownEntry{
			Category: name,
			Value:    s.Price.V() * annualize(s.Clients.V(), d.monthly),
		})
	}
	return entries
}

func (d *serviceDriver) HasInventory() bool { return false }

// ---- saas ----

type saasDriver struct {
	baseDriver
	plans   []models.PlanLine
	monthly bool
}

// Validate keeps only economically valid plans and fails when none
// remain. Subscription forecasts with no priced plan are meaningless.
func (d *saasDriver) Validate() error {
	if len(d.plans) == 0 {
		return &InvalidInputError{
			Field: "plans",
			Msg:   "no plans provided; add at least one plan with valid data",
		}
	}
	valid := d.plans[:0:0]
	for _, p := range d.plans {
		if p.Price.V() > 0 && p.Users.V() > 0 && p.CostPerUser.V() >= 0 {
			valid = append(valid, p)
		}
	}
	if len(valid) == 0 {
		return &InvalidInputError{
			Field: "plans",
			Msg:   "plans must include price>0, users>0, costPerUser>=0",
		}
	}
	d.plans = valid
	return nil
}

func (d *saasDriver) RevenueAndCOGS(year int) (float64, float64) {
	var revenue, cogs float64
	for _, p := range d.plans {
		users := annualize(p.Users.V(), d.monthly)
		factor := growthFactor(growthOrDefault(p.Growth.V(), d.inputs.RevenueGrowth.V()), year)
		revenue += p.Price.V() * users * factor
		cogs += p.CostPerUser.V() * users * factor
	}
	return revenue, cogs
}

func (d *saasDriver) RevenueBreakdown() []models.BreakdownEntry {
	entries := make([]models.BreakdownEntry, 0, len(d.plans))
	for _, p := range d.plans {
		name := p.Name
		if name == "" {
			name = "Plan"
		}
		entries = append(entries, models.BreakdownEntry{
			Category: name,
			Value:    p.Price.V() * annualize(p.Users.V(), d.monthly),
		})
	}
	return entries
}

func (d *saasDriver) HasInventory() bool { return false }
