package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultStateValues(t *testing.T) {
	s := NewDefaultSimulationState()

	assert.Equal(t, 1, s.Turn)
	assert.Equal(t, 165775.0, s.BankAccount)
	assert.Equal(t, 407.0, s.ShirtSales)
	assert.Equal(t, 4.0, s.MaterialPrice)
	assert.Equal(t, 81.0, s.ShirtStock)
	assert.Equal(t, 0.98, s.WorkerSatisfaction)
	assert.Equal(t, 0.0, s.ProductionIdle)
	assert.Equal(t, 250691.0, s.CompanyValue)
	assert.Equal(t, 767.0, s.CustomerInterest)
	assert.Equal(t, 16.0, s.MaterialStock)
	assert.Equal(t, 47.0, s.MachineCapacity)
}

func TestConstructorAppliesClamps(t *testing.T) {
	s := NewSimulationState(StateValues{
		BankAccount:        -5000,
		ShirtSales:         -10,
		MaterialPrice:      -4,
		ShirtStock:         -1,
		WorkerSatisfaction: -0.3,
		ProductionIdle:     150,
		CompanyValue:       -99999,
		CustomerInterest:   -767,
		MaterialStock:      -16,
		MachineCapacity:    80,
		Turn:               -3,
	})

	// Bank account and company value are signed and pass through.
	assert.Equal(t, -5000.0, s.BankAccount)
	assert.Equal(t, -99999.0, s.CompanyValue)

	assert.Equal(t, 0.0, s.ShirtSales)
	assert.Equal(t, 0.0, s.MaterialPrice)
	assert.Equal(t, 0.0, s.ShirtStock)
	assert.Equal(t, 0.0, s.WorkerSatisfaction)
	assert.Equal(t, 0.0, s.CustomerInterest)
	assert.Equal(t, 0.0, s.MaterialStock)
	assert.Equal(t, 100.0, s.ProductionIdle)
	assert.Equal(t, 50.0, s.MachineCapacity)
	assert.Equal(t, 0, s.Turn)
}

func TestDerivedFieldsTrackTheirSources(t *testing.T) {
	s := NewDefaultSimulationState()

	// damage = 2 * (50 - capacity); percent = round(100 * satisfaction / 1.7)
	assert.Equal(t, 6.0, s.Damage)
	assert.Equal(t, 58.0, s.PercentWorkerSatisfaction)

	v := DefaultStateValues()
	v.MachineCapacity = 30
	v.WorkerSatisfaction = 1.7
	s = NewSimulationState(v)
	assert.Equal(t, 40.0, s.Damage)
	assert.Equal(t, 100.0, s.PercentWorkerSatisfaction)
}

func TestRoundAndRefresh(t *testing.T) {
	s := NewSimulationState(StateValues{
		BankAccount:        100.6,
		ShirtSales:         10.4,
		MaterialPrice:      4.5,
		ShirtStock:         2.4999,
		WorkerSatisfaction: 0.98068,
		ProductionIdle:     0.9527,
		CompanyValue:       250000.5,
		CustomerInterest:   702.95,
		MaterialStock:      15.7,
		MachineCapacity:    44.34,
		Turn:               2,
	})
	s.RoundAndRefresh()

	assert.Equal(t, 101.0, s.BankAccount)
	assert.Equal(t, 10.0, s.ShirtSales)
	assert.Equal(t, 5.0, s.MaterialPrice)
	assert.Equal(t, 2.0, s.ShirtStock)
	assert.Equal(t, 250001.0, s.CompanyValue)
	assert.Equal(t, 703.0, s.CustomerInterest)
	assert.Equal(t, 16.0, s.MaterialStock)
	assert.Equal(t, 44.0, s.MachineCapacity)

	// Satisfaction and idle stay unrounded; they only feed the derived
	// fields, which are refreshed from the rounded capacity.
	assert.Equal(t, 0.98068, s.WorkerSatisfaction)
	assert.Equal(t, 0.9527, s.ProductionIdle)
	assert.Equal(t, 12.0, s.Damage)
	assert.Equal(t, 58.0, s.PercentWorkerSatisfaction)
}

func TestStateCloneIsIndependent(t *testing.T) {
	s := NewDefaultSimulationState()
	c := s.Clone()

	assert.Equal(t, *s, *c)

	c.BankAccount = 0
	c.Turn = 9
	assert.Equal(t, 165775.0, s.BankAccount)
	assert.Equal(t, 1, s.Turn)
}

func TestValuesRoundTrip(t *testing.T) {
	s := NewDefaultSimulationState()
	again := NewSimulationState(s.Values())
	assert.Equal(t, *s, *again)
}
