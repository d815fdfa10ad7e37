// Defines the ActionSet container that holds the player-controllable
// decision variables for one turn, together with the clamp-and-step
// validation grids applied on every write.

package sim

import (
	"fmt"
	"math"
	"strings"
)

// Location indices for the shop premises. Rent grows with foot traffic.
const (
	LocationSuburb    = 0
	LocationCity      = 1
	LocationInnerCity = 2
)

// locationNames maps location indices to their display names.
var locationNames = [3]string{"Suburb", "City", "Inner City"}

// LocationIndex resolves a case-insensitive location name ("Suburb",
// "City", "Inner City") to its numeric index.
func LocationIndex(name string) (float64, bool) {
	for i, n := range locationNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return float64(i), true
		}
	}
	return 0, false
}

// FieldSpec describes the legal grid for one controllable field: values
// are clamped into [Min, Max] and, in stepped mode, snapped onto the
// Step-spaced grid anchored at Offset. Offset is captured once when the
// owning ActionSet is constructed, so repeated adjustments by Step stay
// aligned with the construction value instead of drifting onto multiples
// of the step.
type FieldSpec struct {
	Min    float64
	Max    float64
	Step   float64
	Offset float64
}

// clampAndStep coerces v onto the field's legal grid. Out-of-range and
// misaligned inputs are silently corrected, never rejected: v is clamped
// into [Min, Max] and then floored to the largest grid point that does
// not exceed it. If that grid point falls below Min (possible when the
// offset phase and the lower bound disagree), the next grid point up is
// used instead, so the result always satisfies both the range and the
// phase invariant.
func (s FieldSpec) clampAndStep(v float64, stepping bool) float64 {
	v = clamp(v, s.Min, s.Max)
	if !stepping {
		return v
	}
	v = s.Offset + math.Floor((v-s.Offset)/s.Step)*s.Step
	if v < s.Min {
		v += s.Step
	}
	return v
}

// withOffset returns a copy of the spec with its grid anchored to raw:
// the offset is the distance between the clamped raw value and its
// zero-anchored stepped value. Clamping first keeps the anchor on a
// reachable value; an out-of-range construction value must coerce to
// its clamp, not to a phantom phase outside the field's range. Without
// stepping there is no grid to anchor and the offset stays zero.
func (s FieldSpec) withOffset(raw float64, stepping bool) FieldSpec {
	if !stepping {
		return s
	}
	raw = clamp(raw, s.Min, s.Max)
	s.Offset = raw - s.clampAndStep(raw, true)
	return s
}

// Validation grids for the decision variables, from the classic
// Tailorshop parameter table.
var (
	specWorkers     = FieldSpec{Min: 0, Max: 20, Step: 1}
	specSalary      = FieldSpec{Min: 0, Max: 5000, Step: 100}
	specBenefits    = FieldSpec{Min: 0, Max: 500, Step: 10}
	specShirtPrice  = FieldSpec{Min: 10, Max: 100, Step: 2}
	specOutlets     = FieldSpec{Min: 0, Max: 10, Step: 1}
	specLocation    = FieldSpec{Min: 0, Max: 2, Step: 1}
	specOrder       = FieldSpec{Min: 0, Max: 5000, Step: 50}
	specMachines    = FieldSpec{Min: 0, Max: 20, Step: 1}
	specMaintenance = FieldSpec{Min: 0, Max: 5000, Step: 100}
	specAdvertising = FieldSpec{Min: 0, Max: 10000, Step: 100}
)

// ActionValues is the plain bag of decision variables used to construct
// an ActionSet and to snapshot one for display or configuration.
type ActionValues struct {
	Workers50           float64
	Workers100          float64
	WorkersSalary       float64
	WorkerBenefits      float64
	ShirtPrice          float64
	Outlets             float64
	Location            float64
	MaterialOrder       float64
	Machines50          float64
	Machines100         float64
	MachinesMaintenance float64
	Advertising         float64
}

// DefaultActionValues returns the decision variables the classic
// scenario starts from.
func DefaultActionValues() ActionValues {
	return ActionValues{
		Workers50:           8,
		Workers100:          0,
		WorkersSalary:       1080,
		WorkerBenefits:      50,
		ShirtPrice:          52,
		Outlets:             1,
		Location:            LocationCity,
		MaterialOrder:       0,
		Machines50:          10,
		Machines100:         0,
		MachinesMaintenance: 1200,
		Advertising:         2800,
	}
}

// ActionSet holds the player-controllable decision variables in force
// for one turn. The setters are the only mutation path: every write is
// clamped into the field's range and, in stepped mode, snapped onto the
// field's grid. The grids of the money-like fields are anchored to the
// construction values, so a UI that adjusts them in whole steps keeps
// the original phase (a salary constructed as 1080 steps through 980,
// 1080, 1180, never 1000).
type ActionSet struct {
	stepping bool

	salarySpec      FieldSpec
	benefitsSpec    FieldSpec
	priceSpec       FieldSpec
	orderSpec       FieldSpec
	maintenanceSpec FieldSpec
	advertisingSpec FieldSpec

	workers50           float64
	workers100          float64
	workersSalary       float64
	workerBenefits      float64
	shirtPrice          float64
	outlets             float64
	location            float64
	materialOrder       float64
	machines50          float64
	machines100         float64
	machinesMaintenance float64
	advertising         float64
}

// NewActionSet builds a validated action container from v. When stepping
// is enabled, the per-field grid offsets are captured from v before any
// coercion takes place.
func NewActionSet(v ActionValues, stepping bool) *ActionSet {
	a := &ActionSet{
		stepping:        stepping,
		salarySpec:      specSalary.withOffset(v.WorkersSalary, stepping),
		benefitsSpec:    specBenefits.withOffset(v.WorkerBenefits, stepping),
		priceSpec:       specShirtPrice.withOffset(v.ShirtPrice, stepping),
		orderSpec:       specOrder.withOffset(v.MaterialOrder, stepping),
		maintenanceSpec: specMaintenance.withOffset(v.MachinesMaintenance, stepping),
		advertisingSpec: specAdvertising.withOffset(v.Advertising, stepping),
	}
	a.SetWorkers50(v.Workers50)
	a.SetWorkers100(v.Workers100)
	a.SetWorkersSalary(v.WorkersSalary)
	a.SetWorkerBenefits(v.WorkerBenefits)
	a.SetShirtPrice(v.ShirtPrice)
	a.SetOutlets(v.Outlets)
	a.SetLocation(v.Location)
	a.SetMaterialOrder(v.MaterialOrder)
	a.SetMachines50(v.Machines50)
	a.SetMachines100(v.Machines100)
	a.SetMachinesMaintenance(v.MachinesMaintenance)
	a.SetAdvertising(v.Advertising)
	return a
}

// NewDefaultActionSet builds an ActionSet carrying the classic starting
// decisions.
func NewDefaultActionSet(stepping bool) *ActionSet {
	return NewActionSet(DefaultActionValues(), stepping)
}

// Clone returns an independent, value-identical copy preserving the
// stepping flag and all captured grid offsets.
func (a *ActionSet) Clone() *ActionSet {
	c := *a
	return &c
}

// Values returns a snapshot of the current decision variables.
func (a *ActionSet) Values() ActionValues {
	return ActionValues{
		Workers50:           a.workers50,
		Workers100:          a.workers100,
		WorkersSalary:       a.workersSalary,
		WorkerBenefits:      a.workerBenefits,
		ShirtPrice:          a.shirtPrice,
		Outlets:             a.outlets,
		Location:            a.location,
		MaterialOrder:       a.materialOrder,
		Machines50:          a.machines50,
		Machines100:         a.machines100,
		MachinesMaintenance: a.machinesMaintenance,
		Advertising:         a.advertising,
	}
}

// Stepping reports whether stepped-input validation is enabled.
func (a *ActionSet) Stepping() bool { return a.stepping }

func (a *ActionSet) Workers50() float64           { return a.workers50 }
func (a *ActionSet) Workers100() float64          { return a.workers100 }
func (a *ActionSet) WorkersSalary() float64       { return a.workersSalary }
func (a *ActionSet) WorkerBenefits() float64      { return a.workerBenefits }
func (a *ActionSet) ShirtPrice() float64          { return a.shirtPrice }
func (a *ActionSet) Outlets() float64             { return a.outlets }
func (a *ActionSet) Location() float64            { return a.location }
func (a *ActionSet) MaterialOrder() float64       { return a.materialOrder }
func (a *ActionSet) Machines50() float64          { return a.machines50 }
func (a *ActionSet) Machines100() float64         { return a.machines100 }
func (a *ActionSet) MachinesMaintenance() float64 { return a.machinesMaintenance }
func (a *ActionSet) Advertising() float64         { return a.advertising }

// LocationName returns the display name of the current location.
func (a *ActionSet) LocationName() string { return locationNames[int(a.location)] }

func (a *ActionSet) SetWorkers50(v float64) {
	a.workers50 = specWorkers.clampAndStep(v, a.stepping)
}

func (a *ActionSet) SetWorkers100(v float64) {
	a.workers100 = specWorkers.clampAndStep(v, a.stepping)
}

func (a *ActionSet) SetWorkersSalary(v float64) {
	a.workersSalary = a.salarySpec.clampAndStep(v, a.stepping)
}

func (a *ActionSet) SetWorkerBenefits(v float64) {
	a.workerBenefits = a.benefitsSpec.clampAndStep(v, a.stepping)
}

func (a *ActionSet) SetShirtPrice(v float64) {
	a.shirtPrice = a.priceSpec.clampAndStep(v, a.stepping)
}

func (a *ActionSet) SetOutlets(v float64) {
	a.outlets = specOutlets.clampAndStep(v, a.stepping)
}

func (a *ActionSet) SetLocation(v float64) {
	a.location = specLocation.clampAndStep(v, a.stepping)
}

// SetLocationName resolves a case-insensitive location name and sets the
// location index. Unknown names leave the field unchanged.
func (a *ActionSet) SetLocationName(name string) {
	if idx, ok := LocationIndex(name); ok {
		a.SetLocation(idx)
	}
}

func (a *ActionSet) SetMaterialOrder(v float64) {
	a.materialOrder = a.orderSpec.clampAndStep(v, a.stepping)
}

func (a *ActionSet) SetMachines50(v float64) {
	a.machines50 = specMachines.clampAndStep(v, a.stepping)
}

func (a *ActionSet) SetMachines100(v float64) {
	a.machines100 = specMachines.clampAndStep(v, a.stepping)
}

func (a *ActionSet) SetMachinesMaintenance(v float64) {
	a.machinesMaintenance = a.maintenanceSpec.clampAndStep(v, a.stepping)
}

func (a *ActionSet) SetAdvertising(v float64) {
	a.advertising = a.advertisingSpec.clampAndStep(v, a.stepping)
}

// String renders the decision variables as a human-readable block.
func (a *ActionSet) String() string {
	var b strings.Builder
	b.WriteString("Actions\n")
	fmt.Fprintf(&b, "    Workers 50:          %g\n", a.workers50)
	fmt.Fprintf(&b, "    Workers 100:         %g\n", a.workers100)
	fmt.Fprintf(&b, "    Worker Salary:       %g\n", a.workersSalary)
	fmt.Fprintf(&b, "    Worker Benefits:     %g\n", a.workerBenefits)
	fmt.Fprintf(&b, "    Shirt Price:         %g\n", a.shirtPrice)
	fmt.Fprintf(&b, "    Number of Outlets:   %g\n", a.outlets)
	fmt.Fprintf(&b, "    Location:            %s\n", a.LocationName())
	fmt.Fprintf(&b, "    Material Order:      %g\n", a.materialOrder)
	fmt.Fprintf(&b, "    Machines 50:         %g\n", a.machines50)
	fmt.Fprintf(&b, "    Machines 100:        %g\n", a.machines100)
	fmt.Fprintf(&b, "    Machine Maintenance: %g\n", a.machinesMaintenance)
	fmt.Fprintf(&b, "    Advertising:         %g\n", a.advertising)
	return b.String()
}
