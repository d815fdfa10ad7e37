// Defines the SimulationState container that holds the engine-computed
// economic variables for one turn, plus the two presentation-only derived
// fields kept consistent with them.

package sim

import (
	"fmt"
	"math"
	"strings"
)

// clamp bounds v into [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(math.Min(v, hi), lo)
}

// nonNegative floors v at zero.
func nonNegative(v float64) float64 {
	return math.Max(v, 0)
}

// StateValues is the plain bag of state variables used to construct a
// SimulationState.
type StateValues struct {
	BankAccount        float64
	ShirtSales         float64
	MaterialPrice      float64
	ShirtStock         float64
	WorkerSatisfaction float64
	ProductionIdle     float64
	CompanyValue       float64
	CustomerInterest   float64
	MaterialStock      float64
	MachineCapacity    float64
	Turn               int
}

// DefaultStateValues returns the documented starting condition of the
// classic scenario.
func DefaultStateValues() StateValues {
	return StateValues{
		BankAccount:        165775,
		ShirtSales:         407,
		MaterialPrice:      4,
		ShirtStock:         81,
		WorkerSatisfaction: 0.98,
		ProductionIdle:     0,
		CompanyValue:       250691,
		CustomerInterest:   767,
		MaterialStock:      16,
		MachineCapacity:    47,
		Turn:               1,
	}
}

// SimulationState holds the shop's measurable condition after a turn.
// Instances are produced by NewSimulationState (which enforces all field
// invariants) and by the engine's transition; the engine never mutates a
// committed state in place.
//
// Damage and PercentWorkerSatisfaction are presentation-only derivations
// of MachineCapacity and WorkerSatisfaction, recomputed on every
// construction and on RoundAndRefresh.
type SimulationState struct {
	Turn               int
	BankAccount        float64
	ShirtSales         float64
	MaterialPrice      float64
	ShirtStock         float64
	WorkerSatisfaction float64
	ProductionIdle     float64
	CompanyValue       float64
	CustomerInterest   float64
	MaterialStock      float64
	MachineCapacity    float64

	Damage                    float64
	PercentWorkerSatisfaction float64
}

// NewSimulationState builds a state from v, applying the field
// invariants: non-negativity on sales, prices, stocks, satisfaction and
// interest; machine capacity bounded to [0, 50]; production idle bounded
// to [0, 100]. Bank account and company value are signed and pass
// through unclamped.
func NewSimulationState(v StateValues) *SimulationState {
	s := &SimulationState{
		Turn:               max(v.Turn, 0),
		BankAccount:        v.BankAccount,
		ShirtSales:         nonNegative(v.ShirtSales),
		MaterialPrice:      nonNegative(v.MaterialPrice),
		ShirtStock:         nonNegative(v.ShirtStock),
		WorkerSatisfaction: nonNegative(v.WorkerSatisfaction),
		ProductionIdle:     clamp(v.ProductionIdle, 0, 100),
		CompanyValue:       v.CompanyValue,
		CustomerInterest:   nonNegative(v.CustomerInterest),
		MaterialStock:      nonNegative(v.MaterialStock),
		MachineCapacity:    clamp(v.MachineCapacity, 0, maxMachineCapacity),
	}
	s.refreshDerived()
	return s
}

// NewDefaultSimulationState builds the documented default starting state.
func NewDefaultSimulationState() *SimulationState {
	return NewSimulationState(DefaultStateValues())
}

// Clone returns an independent value copy.
func (s *SimulationState) Clone() *SimulationState {
	c := *s
	return &c
}

// Values returns the state variables as a plain value bag.
func (s *SimulationState) Values() StateValues {
	return StateValues{
		BankAccount:        s.BankAccount,
		ShirtSales:         s.ShirtSales,
		MaterialPrice:      s.MaterialPrice,
		ShirtStock:         s.ShirtStock,
		WorkerSatisfaction: s.WorkerSatisfaction,
		ProductionIdle:     s.ProductionIdle,
		CompanyValue:       s.CompanyValue,
		CustomerInterest:   s.CustomerInterest,
		MaterialStock:      s.MaterialStock,
		MachineCapacity:    s.MachineCapacity,
		Turn:               s.Turn,
	}
}

// RoundAndRefresh rounds every real-valued field to an integer and then
// recomputes the derived fields. WorkerSatisfaction and ProductionIdle
// stay unrounded: they only feed the derived-field computation here and
// are recomputed from scratch on the next turn.
func (s *SimulationState) RoundAndRefresh() {
	s.BankAccount = math.Round(s.BankAccount)
	s.ShirtSales = math.Round(s.ShirtSales)
	s.MaterialPrice = math.Round(s.MaterialPrice)
	s.ShirtStock = math.Round(s.ShirtStock)
	s.CompanyValue = math.Round(s.CompanyValue)
	s.CustomerInterest = math.Round(s.CustomerInterest)
	s.MaterialStock = math.Round(s.MaterialStock)
	s.MachineCapacity = math.Round(s.MachineCapacity)
	s.refreshDerived()
}

// refreshDerived recomputes the presentation-only fields from the
// current machine capacity and worker satisfaction.
func (s *SimulationState) refreshDerived() {
	s.Damage = 2 * (maxMachineCapacity - s.MachineCapacity)
	s.PercentWorkerSatisfaction = math.Round(100 * s.WorkerSatisfaction / maxWorkerSatisfaction)
}

// String renders the state as a human-readable block.
func (s *SimulationState) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "State (turn %d)\n", s.Turn)
	fmt.Fprintf(&b, "    Bank Account:        %g\n", s.BankAccount)
	fmt.Fprintf(&b, "    Company Value:       %g\n", s.CompanyValue)
	fmt.Fprintf(&b, "    Shirt Sales:         %g\n", s.ShirtSales)
	fmt.Fprintf(&b, "    Shirt Stock:         %g\n", s.ShirtStock)
	fmt.Fprintf(&b, "    Material Price:      %g\n", s.MaterialPrice)
	fmt.Fprintf(&b, "    Material Stock:      %g\n", s.MaterialStock)
	fmt.Fprintf(&b, "    Customer Interest:   %g\n", s.CustomerInterest)
	fmt.Fprintf(&b, "    Machine Capacity:    %g\n", s.MachineCapacity)
	fmt.Fprintf(&b, "    Damage:              %g\n", s.Damage)
	fmt.Fprintf(&b, "    Worker Satisfaction: %g%%\n", s.PercentWorkerSatisfaction)
	fmt.Fprintf(&b, "    Production Idle:     %.2f\n", s.ProductionIdle)
	return b.String()
}
