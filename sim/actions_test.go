package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionSetDefaults(t *testing.T) {
	a := NewDefaultActionSet(true)

	assert.Equal(t, 8.0, a.Workers50())
	assert.Equal(t, 0.0, a.Workers100())
	assert.Equal(t, 1080.0, a.WorkersSalary())
	assert.Equal(t, 50.0, a.WorkerBenefits())
	assert.Equal(t, 52.0, a.ShirtPrice())
	assert.Equal(t, 1.0, a.Outlets())
	assert.Equal(t, float64(LocationCity), a.Location())
	assert.Equal(t, 0.0, a.MaterialOrder())
	assert.Equal(t, 10.0, a.Machines50())
	assert.Equal(t, 0.0, a.Machines100())
	assert.Equal(t, 1200.0, a.MachinesMaintenance())
	assert.Equal(t, 2800.0, a.Advertising())
	assert.True(t, a.Stepping())
}

func TestSettersClampIntoRange(t *testing.T) {
	cases := []struct {
		name     string
		set      func(*ActionSet, float64)
		get      func(*ActionSet) float64
		min, max float64
	}{
		{"workers50", (*ActionSet).SetWorkers50, (*ActionSet).Workers50, 0, 20},
		{"workers100", (*ActionSet).SetWorkers100, (*ActionSet).Workers100, 0, 20},
		{"workers_salary", (*ActionSet).SetWorkersSalary, (*ActionSet).WorkersSalary, 0, 5000},
		{"worker_benefits", (*ActionSet).SetWorkerBenefits, (*ActionSet).WorkerBenefits, 0, 500},
		{"shirt_price", (*ActionSet).SetShirtPrice, (*ActionSet).ShirtPrice, 10, 100},
		{"outlets", (*ActionSet).SetOutlets, (*ActionSet).Outlets, 0, 10},
		{"location", (*ActionSet).SetLocation, (*ActionSet).Location, 0, 2},
		{"material_order", (*ActionSet).SetMaterialOrder, (*ActionSet).MaterialOrder, 0, 5000},
		{"machines50", (*ActionSet).SetMachines50, (*ActionSet).Machines50, 0, 20},
		{"machines100", (*ActionSet).SetMachines100, (*ActionSet).Machines100, 0, 20},
		{"machines_maintenance", (*ActionSet).SetMachinesMaintenance, (*ActionSet).MachinesMaintenance, 0, 5000},
		{"advertising", (*ActionSet).SetAdvertising, (*ActionSet).Advertising, 0, 10000},
	}

	inputs := []float64{-1e9, -1, 0, 3.7, 55.5, 1e9}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewDefaultActionSet(true)
			for _, v := range inputs {
				tc.set(a, v)
				got := tc.get(a)
				assert.GreaterOrEqual(t, got, tc.min, "input %v", v)
				assert.LessOrEqual(t, got, tc.max, "input %v", v)
			}
		})
	}
}

func TestSteppingPhaseInvariant(t *testing.T) {
	// Construction with salary 1080 captures an offset of 80 relative to
	// the 100-wide grid.
	v := DefaultActionValues()
	v.WorkersSalary = 1080
	a := NewActionSet(v, true)
	assert.Equal(t, 1080.0, a.WorkersSalary())

	// Already phase-aligned values are kept exactly.
	a.SetWorkersSalary(1180)
	assert.Equal(t, 1180.0, a.WorkersSalary())

	// Misaligned values floor to the largest phase-aligned value below.
	a.SetWorkersSalary(1150)
	assert.Equal(t, 1080.0, a.WorkersSalary())

	// The phase survives arbitrary writes.
	a.SetWorkersSalary(4711)
	assert.Equal(t, 4680.0, a.WorkersSalary())
	assert.Equal(t, 80.0, math.Mod(a.WorkersSalary(), 100))
}

func TestSteppingSnapsToGrid(t *testing.T) {
	a := NewDefaultActionSet(true)

	a.SetWorkerBenefits(123)
	assert.Equal(t, 120.0, a.WorkerBenefits())

	a.SetShirtPrice(53)
	assert.Equal(t, 52.0, a.ShirtPrice())

	a.SetMaterialOrder(449)
	assert.Equal(t, 400.0, a.MaterialOrder())

	a.SetAdvertising(2850)
	assert.Equal(t, 2800.0, a.Advertising())

	a.SetWorkers50(7.9)
	assert.Equal(t, 7.0, a.Workers50())
}

func TestSteppingDisabledKeepsRawValues(t *testing.T) {
	a := NewDefaultActionSet(false)
	assert.False(t, a.Stepping())

	a.SetWorkersSalary(1153)
	assert.Equal(t, 1153.0, a.WorkersSalary())

	a.SetShirtPrice(53.5)
	assert.Equal(t, 53.5, a.ShirtPrice())

	// Clamping still applies without stepping.
	a.SetShirtPrice(9)
	assert.Equal(t, 10.0, a.ShirtPrice())
	a.SetAdvertising(1e12)
	assert.Equal(t, 10000.0, a.Advertising())
}

func TestOffsetCapturedOncePerConstruction(t *testing.T) {
	v := DefaultActionValues()
	v.MachinesMaintenance = 1230
	a := NewActionSet(v, true)
	assert.Equal(t, 1230.0, a.MachinesMaintenance())

	// All later writes stay on the 30-offset grid.
	a.SetMachinesMaintenance(2000)
	assert.Equal(t, 1930.0, a.MachinesMaintenance())
	a.SetMachinesMaintenance(2030)
	assert.Equal(t, 2030.0, a.MachinesMaintenance())
}

func TestCloneIsIndependentAndPreservesOffsets(t *testing.T) {
	v := DefaultActionValues()
	v.WorkersSalary = 1080
	a := NewActionSet(v, true)

	c := a.Clone()
	assert.Equal(t, a.Values(), c.Values())
	assert.Equal(t, a.Stepping(), c.Stepping())

	c.SetWorkers50(3)
	c.SetWorkersSalary(1150)
	assert.Equal(t, 8.0, a.Workers50())
	assert.Equal(t, 1080.0, a.WorkersSalary())

	// The clone carries the captured offset of the original.
	assert.Equal(t, 1080.0, c.WorkersSalary())
}

func TestSetLocationName(t *testing.T) {
	a := NewDefaultActionSet(true)

	a.SetLocationName("suburb")
	assert.Equal(t, float64(LocationSuburb), a.Location())

	a.SetLocationName("INNER CITY")
	assert.Equal(t, float64(LocationInnerCity), a.Location())
	assert.Equal(t, "Inner City", a.LocationName())

	// Unknown names leave the field unchanged.
	a.SetLocationName("moon base")
	assert.Equal(t, float64(LocationInnerCity), a.Location())
}

func TestLocationIndex(t *testing.T) {
	idx, ok := LocationIndex("City")
	assert.True(t, ok)
	assert.Equal(t, float64(LocationCity), idx)

	_, ok = LocationIndex("village")
	assert.False(t, ok)
}

func TestConstructionCoercesOutOfRangeValues(t *testing.T) {
	v := DefaultActionValues()
	v.Workers50 = 99
	v.ShirtPrice = -5
	v.Advertising = 123456
	a := NewActionSet(v, true)

	assert.Equal(t, 20.0, a.Workers50())
	assert.Equal(t, 10.0, a.ShirtPrice())
	assert.Equal(t, 10000.0, a.Advertising())
}

func TestOffsetAnchorsToClampedConstructionValue(t *testing.T) {
	// An out-of-range construction value anchors the grid at its clamp,
	// not at a phantom phase derived from the raw value. A shirt price of
	// -5 clamps to 10 and must keep the even grid: a raw-value anchor
	// would capture offset -15 (phase 1) and coerce the constructor's own
	// write to 11.
	v := DefaultActionValues()
	v.ShirtPrice = -5
	a := NewActionSet(v, true)
	assert.Equal(t, 10.0, a.ShirtPrice())

	a.SetShirtPrice(57)
	assert.Equal(t, 56.0, a.ShirtPrice())

	// Same on the high side: salary 5050 clamps to 5000 and stays on the
	// zero-phase 100 grid.
	v = DefaultActionValues()
	v.WorkersSalary = 5050
	a = NewActionSet(v, true)
	assert.Equal(t, 5000.0, a.WorkersSalary())

	a.SetWorkersSalary(1150)
	assert.Equal(t, 1100.0, a.WorkersSalary())
}

func TestClampAndStepStaysAboveMinWithOffsetPhase(t *testing.T) {
	// A grid anchored at 80 has no point in [0, 80); the setter must pick
	// the first phase point above the lower bound instead of leaving the
	// range.
	spec := FieldSpec{Min: 0, Max: 5000, Step: 100, Offset: 80}
	got := spec.clampAndStep(-500, true)
	assert.Equal(t, 80.0, got)
	assert.GreaterOrEqual(t, got, spec.Min)
}
