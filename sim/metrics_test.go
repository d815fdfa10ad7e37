package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMetricsAggregation(t *testing.T) {
	m := NewRunMetrics()
	assert.Equal(t, 0, m.TurnsPlayed)

	v := DefaultStateValues()
	v.ShirtSales = 100
	v.BankAccount = 5000
	v.CompanyValue = 200000
	m.Observe(NewSimulationState(v))

	v.ShirtSales = 50
	v.BankAccount = -300
	v.CompanyValue = 260000
	m.Observe(NewSimulationState(v))

	v.ShirtSales = 80
	v.BankAccount = 1200
	v.CompanyValue = 240000
	m.Observe(NewSimulationState(v))

	assert.Equal(t, 3, m.TurnsPlayed)
	assert.Equal(t, 230.0, m.TotalSales)
	assert.Equal(t, 1200.0, m.FinalBankAccount)
	assert.Equal(t, 240000.0, m.FinalCompanyValue)
	assert.Equal(t, 260000.0, m.PeakCompanyValue)
	assert.Equal(t, -300.0, m.LowestBankAccount)
	assert.Equal(t, []float64{200000, 260000, 240000}, m.CompanyValues)
}

func TestRunMetricsOverFullRun(t *testing.T) {
	e := NewEngine(DefaultEngineConfig())
	m := NewRunMetrics()

	for !e.IsFinished() {
		require.NoError(t, e.DoNextStep(e.LastActions()))
		m.Observe(e.CurrentState())
	}

	assert.Equal(t, 13, m.TurnsPlayed)
	assert.Len(t, m.CompanyValues, 13)
	assert.Equal(t, e.CurrentState().CompanyValue, m.FinalCompanyValue)
	assert.GreaterOrEqual(t, m.PeakCompanyValue, m.FinalCompanyValue)
	assert.LessOrEqual(t, m.LowestBankAccount, m.FinalBankAccount)
}
