// The simulation kernel: the pure Transition function implementing the
// Tailorshop economics, and the stateful Engine that tracks the committed
// state and the last-applied actions on top of it.

package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Economic constants of the classic Tailorshop parameterization.
const (
	positiveInterest      = 0.0025
	negativeInterest      = 0.0066
	maxMachineCapacity    = 50.0
	maxAdvertisingEffect  = 900.0
	maxWorkerSatisfaction = 1.7
	outletRent            = 500.0
	priceMachine50        = 10000.0
	priceMachine100       = 20000.0
	priceOutlet           = 10000.0

	// Demand decays exponentially in the squared shirt price. The classic
	// model uses this slightly truncated approximation of e as the base,
	// and keeping it is required for run compatibility.
	demandBase = 2.7181

	// Guards the maintenance-per-machine division when no machines are
	// owned; with zero maintenance the huge ratio contributes nothing.
	machineCountEpsilon = 1e-8
)

// locationRents is indexed by the location enum (Suburb, City, Inner City).
var locationRents = [3]float64{500, 1000, 2000}

// ErrSimulationFinished is returned by DoNextStep once the prepared
// noise draws are depleted.
var ErrSimulationFinished = errors.New("cannot advance a finished simulation")

// tradeValue prices a buy/sell of count assets. Buying (count > 0) pays
// the list price; selling (count <= 0) recovers the depreciated resale
// price, yielding a negative cost.
func tradeValue(count, buyingPrice, sellingPrice float64) float64 {
	if count > 0 {
		return count * buyingPrice
	}
	return count * sellingPrice
}

// productionCapacity50 is the shirt output the 50-class machines can
// reach this turn: staffed machines times jittered capacity, scaled by
// the square root of (the magnitude of) worker satisfaction.
func productionCapacity50(noise NoiseTables, actions *ActionSet, capacity, satisfaction float64, turn int) float64 {
	staffed := math.Min(actions.Machines50(), actions.Workers50())
	return staffed * (capacity + noise.Machines50[turn-1]) * math.Sqrt(math.Abs(satisfaction))
}

// productionCapacity100 is the 100-class counterpart; these machines run
// at twice the base capacity.
func productionCapacity100(noise NoiseTables, actions *ActionSet, capacity, satisfaction float64, turn int) float64 {
	staffed := math.Min(actions.Machines100(), actions.Workers100())
	return staffed * (2*capacity + noise.Machines100[turn-1]) * math.Sqrt(math.Abs(satisfaction))
}

// shirtsDemand models the market: base demand grows with carried-over
// customer interest and falls off exponentially in the squared price.
func shirtsDemand(actions *ActionSet, prev *SimulationState) float64 {
	baseDemand := prev.CustomerInterest/2 + 280
	price := actions.ShirtPrice()
	elasticity := 1.25 * math.Pow(demandBase, -(price*price)/4250)
	return baseDemand * elasticity
}

// investments prices this turn's outlet and machine count changes against
// last turn's. Machines resell at 80% of list scaled by their previous
// condition; outlets resell at 80% of list minus 100 per elapsed turn.
func investments(actions, last *ActionSet, prev *SimulationState) float64 {
	condition := prev.MachineCapacity / maxMachineCapacity
	tradeOutlets := tradeValue(actions.Outlets()-last.Outlets(),
		priceOutlet, 0.8*priceOutlet-100*float64(prev.Turn))
	tradeM50 := tradeValue(actions.Machines50()-last.Machines50(),
		priceMachine50, 0.8*priceMachine50*condition)
	tradeM100 := tradeValue(actions.Machines100()-last.Machines100(),
		priceMachine100, 0.8*priceMachine100*condition)
	return tradeOutlets + tradeM50 + tradeM100
}

// regularExpenses sums material purchases, the wage bill, advertising,
// rents, maintenance and the storage-holding cost of carried stock.
func regularExpenses(actions *ActionSet, prev *SimulationState) float64 {
	material := actions.MaterialOrder() * prev.MaterialPrice
	numWorkers := actions.Workers50() + actions.Workers100()
	wages := (actions.WorkersSalary() + actions.WorkerBenefits()) * numWorkers
	rent := actions.Outlets()*outletRent + locationRents[int(actions.Location())]
	storage := prev.ShirtStock + 0.5*prev.MaterialStock
	return material + wages + actions.Advertising() + rent + actions.MachinesMaintenance() + storage
}

// customerInterest carries the marketing effect into the next turn:
// capped advertising plus outlet presence, scaled by the location and
// perturbed by the interest jitter.
func customerInterest(noise NoiseTables, actions *ActionSet, prev *SimulationState) float64 {
	advertisingEffect := math.Min(actions.Advertising()/5, maxAdvertisingEffect)
	outletEffect := 100 * actions.Outlets()
	locationFactor := 1 + actions.Location()/10
	return (advertisingEffect+outletEffect)*locationFactor + noise.CustomerInterest[prev.Turn-1]
}

// companyValue is the derived net worth: cash plus condition-depreciated
// machines, turn-depreciated outlets and inventory value.
func companyValue(actions *ActionSet, bank, capacity, materialStock, shirtStock float64, newTurn int) float64 {
	machines50 := actions.Machines50() * (capacity / maxMachineCapacity * priceMachine50)
	machines100 := actions.Machines100() * (capacity / maxMachineCapacity * priceMachine100)
	outlets := actions.Outlets()*priceOutlet - float64(newTurn)*100
	return bank + machines50 + machines100 + outlets + materialStock*2 + shirtStock*20
}

// Transition computes the successor of prev under actions, pricing
// investment deltas against last (the actions applied on the previous
// turn). It is pure: none of its inputs are mutated, so callers can
// explore hypothetical outcomes on the same state. Returns nil, with a
// warning, when prev is already at the horizon of the noise tables.
func Transition(noise NoiseTables, actions, last *ActionSet, prev *SimulationState) *SimulationState {
	if prev.Turn < 1 || noise.Exhausted(prev.Turn) {
		logrus.Warnf("cannot step turn %d: no prepared noise draws left", prev.Turn)
		return nil
	}
	turn := prev.Turn

	// Material available for this turn's production.
	materialBefore := prev.MaterialStock + actions.MaterialOrder()

	// Machine capacity decays 10% per turn and recovers with maintenance
	// spend per machine. Stored uncapped here; the state constructor
	// applies the [0, 50] bound.
	numMachines := actions.Machines50() + actions.Machines100()
	capacity := 0.9*prev.MachineCapacity + (actions.MachinesMaintenance()/(numMachines+machineCountEpsilon))*0.017

	// Raw worker satisfaction; may be negative for very poor pay. The
	// production formulas use its magnitude, the state constructor floors
	// the stored value at zero.
	satisfaction := 0.5 + (actions.WorkersSalary()-850)/550 + actions.WorkerBenefits()/800

	// Production, bounded by the available material.
	capacityTotal := productionCapacity50(noise, actions, capacity, satisfaction, turn) +
		productionCapacity100(noise, actions, capacity, satisfaction, turn)
	actualProduction := math.Min(materialBefore, capacityTotal)
	idle := 0.0
	if capacityTotal != 0 {
		idle = (capacityTotal - actualProduction) / capacityTotal
	}
	materialStock := materialBefore - actualProduction

	// Sales, bounded by demand.
	shirtsBefore := prev.ShirtStock + actualProduction
	demand := shirtsDemand(actions, prev)
	sales := math.Min(shirtsBefore, demand)
	revenue := sales * actions.ShirtPrice()
	shirtStock := shirtsBefore - sales

	// Cash flow: asymmetric interest, revenue, investment trades and the
	// regular expense block.
	interest := prev.BankAccount * negativeInterest
	if prev.BankAccount > 0 {
		interest = prev.BankAccount * positiveInterest
	}
	bank := prev.BankAccount + interest + revenue -
		investments(actions, last, prev) - regularExpenses(actions, prev)

	next := NewSimulationState(StateValues{
		BankAccount:        bank,
		ShirtSales:         sales,
		MaterialPrice:      math.Round(noise.MaterialPrice[turn-1]),
		ShirtStock:         shirtStock,
		WorkerSatisfaction: satisfaction,
		ProductionIdle:     idle,
		CompanyValue:       companyValue(actions, bank, capacity, materialStock, shirtStock, turn+1),
		CustomerInterest:   customerInterest(noise, actions, prev),
		MaterialStock:      materialStock,
		MachineCapacity:    capacity,
		Turn:               turn + 1,
	})
	next.RoundAndRefresh()
	return next
}

// EngineConfig groups the construction parameters for NewEngine.
type EngineConfig struct {
	InitialState   *SimulationState // starting state; nil = classic defaults
	InitialActions *ActionSet       // actions in force before turn 1; nil = classic defaults
	Randomize      bool             // draw fresh noise tables instead of the fixed ones
	Seed           int64            // master seed for randomized noise tables
	Stepping       bool             // stepped-input validation on action fields
}

// DefaultEngineConfig returns the classic setup: fixed noise tables and
// stepped inputs.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{Seed: 42, Stepping: true}
}

// Engine owns the noise tables, the committed state of the current turn
// and the last-applied actions. It is meant to be owned by exactly one
// controller at a time; callers sharing an instance must serialize their
// DoNextStep calls themselves.
type Engine struct {
	noise       NoiseTables
	state       *SimulationState
	lastActions *ActionSet
}

// NewEngine builds an engine from cfg. Initial state and actions are
// cloned, never aliased; the stepping flag of the initial actions is
// overridden by cfg.Stepping.
func NewEngine(cfg EngineConfig) *Engine {
	noise := FixedNoiseTables()
	if cfg.Randomize {
		noise = NewRandomNoiseTables(cfg.Seed, DefaultHorizon)
	}
	state := NewDefaultSimulationState()
	if cfg.InitialState != nil {
		state = cfg.InitialState.Clone()
	}
	actions := NewDefaultActionSet(cfg.Stepping)
	if cfg.InitialActions != nil {
		actions = cfg.InitialActions.Clone()
		actions.stepping = cfg.Stepping
	}
	return &Engine{noise: noise, state: state, lastActions: actions}
}

// Noise returns the engine's noise tables.
func (e *Engine) Noise() NoiseTables { return e.noise }

// CurrentState returns a clone of the committed state of the current
// turn, so callers can read or mutate it freely without touching the
// engine's bookkeeping.
func (e *Engine) CurrentState() *SimulationState { return e.state.Clone() }

// LastActions returns a clone of the most recently applied actions,
// ready to be adjusted through its setters into next turn's input
// without corrupting engine state.
func (e *Engine) LastActions() *ActionSet { return e.lastActions.Clone() }

// IsFinished reports whether the prepared noise draws are depleted for
// the current turn.
func (e *Engine) IsFinished() bool { return e.noise.Exhausted(e.state.Turn) }

// CalculateStep computes the successor of state without committing
// anything, enabling what-if exploration against the engine's noise
// tables. Returns nil when state is already at the horizon.
func (e *Engine) CalculateStep(actions, lastActions *ActionSet, state *SimulationState) *SimulationState {
	return Transition(e.noise, actions, lastActions, state)
}

// DoNextStep advances the simulation by one turn: it computes the
// successor of the committed state under actions and commits both the
// new state and a clone of actions as the last-applied set. Fails with
// ErrSimulationFinished once the horizon is exhausted.
func (e *Engine) DoNextStep(actions *ActionSet) error {
	if e.IsFinished() {
		return fmt.Errorf("turn %d: %w", e.state.Turn, ErrSimulationFinished)
	}
	next := e.CalculateStep(actions, e.lastActions, e.state)
	if next == nil {
		return fmt.Errorf("turn %d: %w", e.state.Turn, ErrSimulationFinished)
	}
	e.state = next
	e.lastActions = actions.Clone()
	return nil
}

// String renders the engine's status, state and last actions.
func (e *Engine) String() string {
	status := "not finished"
	if e.IsFinished() {
		status = "finished"
	}
	return fmt.Sprintf("Tailorshop Simulation: %s\n%s%s", status, e.state, e.lastActions)
}
