package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/brand-d/tailorshop/sim"
)

// StateConfig optionally overrides fields of the default starting state
// in a scenario file. Absent fields keep their classic defaults.
type StateConfig struct {
	BankAccount        *float64 `yaml:"bank_account"`
	ShirtSales         *float64 `yaml:"shirt_sales"`
	MaterialPrice      *float64 `yaml:"material_price"`
	ShirtStock         *float64 `yaml:"shirt_stock"`
	WorkerSatisfaction *float64 `yaml:"worker_satisfaction"`
	ProductionIdle     *float64 `yaml:"production_idle"`
	CompanyValue       *float64 `yaml:"company_value"`
	CustomerInterest   *float64 `yaml:"customer_interest"`
	MaterialStock      *float64 `yaml:"material_stock"`
	MachineCapacity    *float64 `yaml:"machine_capacity"`
	Turn               *int     `yaml:"turn"`
}

// StateValues merges the provided overrides onto the default starting
// values.
func (c StateConfig) StateValues() sim.StateValues {
	v := sim.DefaultStateValues()
	if c.BankAccount != nil {
		v.BankAccount = *c.BankAccount
	}
	if c.ShirtSales != nil {
		v.ShirtSales = *c.ShirtSales
	}
	if c.MaterialPrice != nil {
		v.MaterialPrice = *c.MaterialPrice
	}
	if c.ShirtStock != nil {
		v.ShirtStock = *c.ShirtStock
	}
	if c.WorkerSatisfaction != nil {
		v.WorkerSatisfaction = *c.WorkerSatisfaction
	}
	if c.ProductionIdle != nil {
		v.ProductionIdle = *c.ProductionIdle
	}
	if c.CompanyValue != nil {
		v.CompanyValue = *c.CompanyValue
	}
	if c.CustomerInterest != nil {
		v.CustomerInterest = *c.CustomerInterest
	}
	if c.MaterialStock != nil {
		v.MaterialStock = *c.MaterialStock
	}
	if c.MachineCapacity != nil {
		v.MachineCapacity = *c.MachineCapacity
	}
	if c.Turn != nil {
		v.Turn = *c.Turn
	}
	return v
}

// ActionsConfig optionally overrides decision variables, either for the
// initial action set or as a scripted per-turn change. Location is given
// by name ("Suburb", "City", "Inner City"), case-insensitively.
type ActionsConfig struct {
	Workers50           *float64 `yaml:"workers50"`
	Workers100          *float64 `yaml:"workers100"`
	WorkersSalary       *float64 `yaml:"workers_salary"`
	WorkerBenefits      *float64 `yaml:"worker_benefits"`
	ShirtPrice          *float64 `yaml:"shirt_price"`
	Outlets             *float64 `yaml:"outlets"`
	Location            *string  `yaml:"location"`
	MaterialOrder       *float64 `yaml:"material_order"`
	Machines50          *float64 `yaml:"machines50"`
	Machines100         *float64 `yaml:"machines100"`
	MachinesMaintenance *float64 `yaml:"machines_maintenance"`
	Advertising         *float64 `yaml:"advertising"`
}

// validate rejects location names the simulation does not know.
func (c ActionsConfig) validate() error {
	if c.Location != nil {
		if _, ok := sim.LocationIndex(*c.Location); !ok {
			return fmt.Errorf("unknown location %q", *c.Location)
		}
	}
	return nil
}

// MergeInto writes the provided overrides onto v, used before an
// ActionSet is constructed so the stepping offsets are captured from the
// merged values.
func (c ActionsConfig) MergeInto(v *sim.ActionValues) {
	if c.Workers50 != nil {
		v.Workers50 = *c.Workers50
	}
	if c.Workers100 != nil {
		v.Workers100 = *c.Workers100
	}
	if c.WorkersSalary != nil {
		v.WorkersSalary = *c.WorkersSalary
	}
	if c.WorkerBenefits != nil {
		v.WorkerBenefits = *c.WorkerBenefits
	}
	if c.ShirtPrice != nil {
		v.ShirtPrice = *c.ShirtPrice
	}
	if c.Outlets != nil {
		v.Outlets = *c.Outlets
	}
	if c.Location != nil {
		if idx, ok := sim.LocationIndex(*c.Location); ok {
			v.Location = idx
		}
	}
	if c.MaterialOrder != nil {
		v.MaterialOrder = *c.MaterialOrder
	}
	if c.Machines50 != nil {
		v.Machines50 = *c.Machines50
	}
	if c.Machines100 != nil {
		v.Machines100 = *c.Machines100
	}
	if c.MachinesMaintenance != nil {
		v.MachinesMaintenance = *c.MachinesMaintenance
	}
	if c.Advertising != nil {
		v.Advertising = *c.Advertising
	}
}

// Apply mutates an existing ActionSet through its setters, so the usual
// clamp-and-step coercion applies to every scripted change.
func (c ActionsConfig) Apply(a *sim.ActionSet) {
	if c.Workers50 != nil {
		a.SetWorkers50(*c.Workers50)
	}
	if c.Workers100 != nil {
		a.SetWorkers100(*c.Workers100)
	}
	if c.WorkersSalary != nil {
		a.SetWorkersSalary(*c.WorkersSalary)
	}
	if c.WorkerBenefits != nil {
		a.SetWorkerBenefits(*c.WorkerBenefits)
	}
	if c.ShirtPrice != nil {
		a.SetShirtPrice(*c.ShirtPrice)
	}
	if c.Outlets != nil {
		a.SetOutlets(*c.Outlets)
	}
	if c.Location != nil {
		a.SetLocationName(*c.Location)
	}
	if c.MaterialOrder != nil {
		a.SetMaterialOrder(*c.MaterialOrder)
	}
	if c.Machines50 != nil {
		a.SetMachines50(*c.Machines50)
	}
	if c.Machines100 != nil {
		a.SetMachines100(*c.Machines100)
	}
	if c.MachinesMaintenance != nil {
		a.SetMachinesMaintenance(*c.MachinesMaintenance)
	}
	if c.Advertising != nil {
		a.SetAdvertising(*c.Advertising)
	}
}

// TurnConfig scripts action changes that take effect at the start of the
// named turn.
type TurnConfig struct {
	Turn    int           `yaml:"turn"`
	Actions ActionsConfig `yaml:"actions"`
}

// ScenarioConfig represents the full scenario YAML structure: optional
// starting-state overrides, optional initial decisions, and scripted
// per-turn changes.
type ScenarioConfig struct {
	InitialState   *StateConfig   `yaml:"initial_state"`
	InitialActions *ActionsConfig `yaml:"initial_actions"`
	Turns          []TurnConfig   `yaml:"turns"`
}

// OverrideFor returns the action changes scripted for the given turn.
func (c *ScenarioConfig) OverrideFor(turn int) (ActionsConfig, bool) {
	for _, t := range c.Turns {
		if t.Turn == turn {
			return t.Actions, true
		}
	}
	return ActionsConfig{}, false
}

func (c *ScenarioConfig) validate() error {
	if c.InitialActions != nil {
		if err := c.InitialActions.validate(); err != nil {
			return err
		}
	}
	for _, t := range c.Turns {
		if t.Turn < 1 {
			return fmt.Errorf("turn overrides must name a turn >= 1, got %d", t.Turn)
		}
		if err := t.Actions.validate(); err != nil {
			return fmt.Errorf("turn %d: %w", t.Turn, err)
		}
	}
	return nil
}

// LoadScenarioConfig parses a scenario YAML with strict field checking,
// so typos in field names cause errors instead of silent defaults.
func LoadScenarioConfig(path string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	var cfg ScenarioConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &cfg, nil
}
