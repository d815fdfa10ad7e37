// Defines the turn-indexed noise tables that perturb machine capacity,
// customer interest and the material market, and the seeded RNG used to
// draw them in randomized mode.

package sim

import (
	"hash/fnv"
	"math/rand"
)

// DefaultHorizon is the number of prepared draws per noise table and
// therefore the number of playable turns in a default simulation.
const DefaultHorizon = 14

// RNG subsystem names, one per noise table. Each table is drawn from its
// own deterministically derived stream so that tables stay individually
// reproducible no matter in which order they are generated.
const (
	SubsystemMachines50       = "machines50"
	SubsystemMachines100      = "machines100"
	SubsystemCustomerInterest = "customer_interest"
	SubsystemMaterialPrice    = "material_price"
)

// SimulationKey uniquely identifies a reproducible simulation run. Two
// simulations with the same SimulationKey and identical action sequences
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// PartitionedRNG provides deterministic, isolated RNG instances per
// subsystem, derived as masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same subsystem name always returns the same *rand.Rand
// instance (cached). Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// NoiseTables holds the four fixed-length perturbation sequences, each
// indexed by (turn - 1). They are immutable for the lifetime of one
// engine instance; their shared length defines the simulation horizon.
type NoiseTables struct {
	Machines50       []float64
	Machines100      []float64
	CustomerInterest []float64
	MaterialPrice    []float64
}

// FixedNoiseTables returns the reproducible default tables, fourteen
// literal draws per table.
func FixedNoiseTables() NoiseTables {
	return NoiseTables{
		Machines50: []float64{
			-1.6794734, 0.3962952, -1.2906776, -1.69717836,
			0.6770368, 0.3517432, -1.5712524, 1.154388,
			-0.5179668, 1.634584, -1.3330284, -0.9713408,
			0.1261412, 0.8854424,
		},
		Machines100: []float64{
			-0.8060082, 1.3505922, -1.7557848, -2.44459788,
			-1.0919448, -2.66181528, 0.2626608, -2.0520366,
			1.4789304, -1.7724894, -1.1784876, 1.6133514,
			0.6488046, 1.135758,
		},
		CustomerInterest: []float64{
			-23.04985, 19.2422, 34.44874, 19.7927,
			-24.671, 30.50709, -4.26652, 38.93418,
			-12.88273, -47.064686, -13.75205, -49.315691,
			25.20559, 30.6675,
		},
		MaterialPrice: []float64{
			8.2671817, 4.8714296, 4.8530515, 5.9098319,
			5.18731075, 7.09909075, 6.772157, 7.6171843,
			8.02385095, 2.6811532, 5.0227145, 6.29710125,
			7.7631327, 2.51019404,
		},
	}
}

// NewRandomNoiseTables draws fresh tables of length turns from the given
// master seed: machine-50 jitter in [-2, 2], machine-100 jitter in
// [-3, 3], customer-interest jitter in [-50, 50] and material price in
// [2, 8.5].
func NewRandomNoiseTables(seed int64, turns int) NoiseTables {
	rng := NewPartitionedRNG(NewSimulationKey(seed))
	return NoiseTables{
		Machines50:       uniformDraws(rng.ForSubsystem(SubsystemMachines50), turns, -2, 2),
		Machines100:      uniformDraws(rng.ForSubsystem(SubsystemMachines100), turns, -3, 3),
		CustomerInterest: uniformDraws(rng.ForSubsystem(SubsystemCustomerInterest), turns, -50, 50),
		MaterialPrice:    uniformDraws(rng.ForSubsystem(SubsystemMaterialPrice), turns, 2, 8.5),
	}
}

// uniformDraws samples n values uniformly from [lo, hi).
func uniformDraws(rng *rand.Rand, n int, lo, hi float64) []float64 {
	draws := make([]float64, n)
	for i := range draws {
		draws[i] = lo + (hi-lo)*rng.Float64()
	}
	return draws
}

// Horizon returns the number of playable turns, the shortest table
// length.
func (n NoiseTables) Horizon() int {
	return min(len(n.Machines50), len(n.Machines100), len(n.CustomerInterest), len(n.MaterialPrice))
}

// Exhausted reports whether the given turn has no prepared draw left in
// at least one table.
func (n NoiseTables) Exhausted(turn int) bool {
	return turn >= len(n.Machines50) || turn >= len(n.Machines100) ||
		turn >= len(n.CustomerInterest) || turn >= len(n.MaterialPrice)
}
