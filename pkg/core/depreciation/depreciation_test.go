package depreciation

import (
	"math"
	"testing"
	"time"
)

func TestStraightLine(t *testing.T) {
	// (10000 - 1000) / 5 = 1800 per year
	sched := StraightLine(10000, 5, 1000)
	if len(sched) != 5 {
		t.Fatalf("Expected 5 years, got %d", len(sched))
	}
	for i, d := range sched {
		if math.Abs(d-1800) > 0.01 {
			t.Errorf("Year %d: expected 1800, got %.2f", i+1, d)
		}
	}
}

func TestDoubleDecliningSalvageFloor(t *testing.T) {
	// Cost 10000, life 5, salvage 1000, rate 40%.
	// Year 1: 4000 (book 6000), Year 2: 2400 (book 3600),
	// Year 3: 1440 (book 2160), Year 4: 864 -> clamped? 2160-864=1296 >= 1000 so 864 (book 1296),
	// Year 5: 518.40 -> clamped to 296 so book lands exactly on salvage.
	sched := DoubleDeclining(10000, 5, 1000)
	expected := []float64{4000, 2400, 1440, 864, 296}
	if len(sched) != 5 {
		t.Fatalf("Expected 5 years, got %d", len(sched))
	}
	total := 0.0
	for i, d := range sched {
		if math.Abs(d-expected[i]) > 0.01 {
			t.Errorf("Year %d: expected %.2f, got %.2f", i+1, expected[i], d)
		}
		total += d
	}
	if math.Abs(total-9000) > 0.01 {
		t.Errorf("Total depreciation should equal cost-salvage 9000, got %.2f", total)
	}
}

func TestDoubleDecliningEarlyStopPadsZeros(t *testing.T) {
	// High salvage: book hits salvage in year 1, remaining years are 0.
	sched := DoubleDeclining(10000, 5, 9000)
	if len(sched) != 5 {
		t.Fatalf("Expected 5 years, got %d", len(sched))
	}
	if math.Abs(sched[0]-1000) > 0.01 {
		t.Errorf("Year 1: expected 1000, got %.2f", sched[0])
	}
	for i := 1; i < 5; i++ {
		if sched[i] != 0 {
			t.Errorf("Year %d: expected 0, got %.2f", i+1, sched[i])
		}
	}
}

func TestSumOfYearsDigits(t *testing.T) {
	// Life 4, digit sum 10. Base 9000: 3600, 2700, 1800, 900.
	sched := SumOfYearsDigits(10000, 4, 1000)
	expected := []float64{3600, 2700, 1800, 900}
	for i, d := range sched {
		if math.Abs(d-expected[i]) > 0.01 {
			t.Errorf("Year %d: expected %.2f, got %.2f", i+1, expected[i], d)
		}
	}
}

func TestUnitsOfProduction(t *testing.T) {
	// (10000-1000)/9000 units = 1.0 per unit
	sched := UnitsOfProduction(10000, 9000, []float64{3000, 3000, 2000, 1000}, 1000)
	expected := []float64{3000, 3000, 2000, 1000}
	for i, d := range sched {
		if math.Abs(d-expected[i]) > 0.01 {
			t.Errorf("Year %d: expected %.2f, got %.2f", i+1, expected[i], d)
		}
	}
}

func TestUnitsOfProductionZeroTotalUnits(t *testing.T) {
	sched := UnitsOfProduction(10000, 0, []float64{100, 100}, 0)
	for i, d := range sched {
		if d != 0 {
			t.Errorf("Year %d: expected 0 with no lifetime units, got %.2f", i+1, d)
		}
	}
}

func TestPartialYearFraction(t *testing.T) {
	cases := []struct {
		purchase time.Month
		fiscal   time.Month
		want     float64
	}{
		{time.July, time.January, 0.5},    // bought mid-year, Jan fiscal start
		{time.January, time.January, 1.0}, // held a full year
		{time.October, time.April, 0.5},   // Oct purchase, April fiscal start
		{time.February, time.April, 2.0 / 12},
	}
	for _, c := range cases {
		got := PartialYearFraction(c.purchase, c.fiscal)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("PartialYearFraction(%v, %v): expected %.4f, got %.4f", c.purchase, c.fiscal, c.want, got)
		}
	}
}

func TestScheduleAppliesFirstYearFraction(t *testing.T) {
	sched := Schedule(AssetInput{
		Cost:              10000,
		UsefulLife:        5,
		Method:            MethodStraightLine,
		Salvage:           1000,
		FirstYearFraction: 0.5,
	})
	if math.Abs(sched[0]-900) > 0.01 {
		t.Errorf("First year: expected 900 (half of 1800), got %.2f", sched[0])
	}
	if math.Abs(sched[1]-1800) > 0.01 {
		t.Errorf("Second year: expected full 1800, got %.2f", sched[1])
	}
}
