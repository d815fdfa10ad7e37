// Tracks run-wide aggregates across committed turns for final reporting.

package sim

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// RunMetrics aggregates statistics over the committed states of one
// simulation run. Useful for comparing scripted policies and debugging
// behavior over time.
type RunMetrics struct {
	TurnsPlayed int     // number of committed turns
	TotalSales  float64 // shirts sold across all turns

	FinalBankAccount  float64 // bank account after the last committed turn
	FinalCompanyValue float64 // company value after the last committed turn
	PeakCompanyValue  float64 // highest company value seen
	LowestBankAccount float64 // deepest (possibly negative) cash position

	CompanyValues []float64 // company value trajectory, one entry per turn
}

// NewRunMetrics returns an empty aggregate.
func NewRunMetrics() *RunMetrics {
	return &RunMetrics{}
}

// Observe records the committed state of one turn.
func (m *RunMetrics) Observe(s *SimulationState) {
	if m.TurnsPlayed == 0 {
		m.PeakCompanyValue = s.CompanyValue
		m.LowestBankAccount = s.BankAccount
	}
	m.TurnsPlayed++
	m.TotalSales += s.ShirtSales
	m.FinalBankAccount = s.BankAccount
	m.FinalCompanyValue = s.CompanyValue
	m.PeakCompanyValue = max(m.PeakCompanyValue, s.CompanyValue)
	m.LowestBankAccount = min(m.LowestBankAccount, s.BankAccount)
	m.CompanyValues = append(m.CompanyValues, s.CompanyValue)
}

// Print displays the aggregated run metrics at the end of a simulation.
func (m *RunMetrics) Print() {
	fmt.Println("=== Tailorshop Run Metrics ===")
	fmt.Printf("Turns Played         : %d\n", m.TurnsPlayed)
	if m.TurnsPlayed == 0 {
		return
	}
	fmt.Printf("Total Shirt Sales    : %s\n", humanize.Commaf(m.TotalSales))
	fmt.Printf("Average Sales/Turn   : %.2f\n", m.TotalSales/float64(m.TurnsPlayed))
	fmt.Printf("Final Bank Account   : %s\n", humanize.Commaf(m.FinalBankAccount))
	fmt.Printf("Lowest Bank Account  : %s\n", humanize.Commaf(m.LowestBankAccount))
	fmt.Printf("Final Company Value  : %s\n", humanize.Commaf(m.FinalCompanyValue))
	fmt.Printf("Peak Company Value   : %s\n", humanize.Commaf(m.PeakCompanyValue))
}
