package efficiency

import "math"

// Config holds the system parameters of the network model.
// Units:
//   - Alpha: pathloss exponent (> 2)
//   - PropLossNoise: noise power divided by the pathloss at 1 km (W)
//   - Tau: coherence block length (symbols)
//   - Eta: power amplifier efficiency (0..1]
//   - Epsilon: transceiver hardware impairment level [0..1)
//   - SymbolTime: seconds per symbol
//   - C0: static power per BS (W), C1: power per active UE (W)
//   - D0: power per BS antenna (W)
//   - D1: signal processing energy per antenna, UE and symbol (J)
//   - A: coding, decoding and backhaul energy (J/bit)
//   - TargetRate: required spectral efficiency per UE (bit/s/Hz)
type Config struct {
	Alpha         float64 `yaml:"alpha"`
	PropLossNoise float64 `yaml:"prop_loss_noise"`
	Tau           float64 `yaml:"coherence_block"`
	Eta           float64 `yaml:"amplifier_efficiency"`
	Epsilon       float64 `yaml:"impairment"`
	SymbolTime    float64 `yaml:"symbol_time"`
	C0            float64 `yaml:"static_power"`
	C1            float64 `yaml:"power_per_user"`
	D0            float64 `yaml:"power_per_antenna"`
	D1            float64 `yaml:"signal_processing"`
	A             float64 `yaml:"coding_backhaul"`
	TargetRate    float64 `yaml:"target_rate"`
}

// _defaultConfig returns a Config pre-filled with the reference scenario:
// 20 MHz bandwidth, 7 dB noise figure and 128.1 dB loss at 1 km.
func _defaultConfig() *Config {
	return &Config{
		Alpha:         3.76,
		PropLossNoise: math.Pow(10, (-94.0-30.0+128.1)/10), // W
		Tau:           400,
		Eta:           0.39,
		Epsilon:       0.05,
		SymbolTime:    1 / 2e7, // s
		C0:            10,      // W per BS
		C1:            0.1,     // W per UE
		D0:            0.2,     // W per antenna
		D1:            1.56e-10,
		A:             1.15e-9, // J/bit
		TargetRate:    2,
	}
}

// DefaultConfig returns a copy of the default parameters.
func DefaultConfig() Config { return *_defaultConfig() }

// OperatingPoint is the coordinate at which the EE is evaluated.
// Density is the user density in UE/km².
type OperatingPoint struct {
	Density float64
	M       int
	K       int
}

// BSDensity returns the BS density (BS/km²) implied by serving K UEs per cell.
func (op OperatingPoint) BSDensity() float64 {
	if op.K <= 0 {
		return 0
	}
	return op.Density / float64(op.K)
}

// Candidate is the outcome of evaluating one operating point at an SNR.
// Infeasible candidates carry zeros in every numeric field.
type Candidate struct {
	SNR      float64
	EE       float64 // bit/J
	Beta     float64
	Feasible bool
}

// Aggregates are the closed-form interference terms behind the pilot reuse factor.
type Aggregates struct {
	B1 float64
	B2 float64
}

// Power is the per-cell rate and power split at one SNR.
type Power struct {
	Rate       float64 // bit/s per cell
	Transmit   float64 // W, PA input for the K UEs
	Static     float64 // W, C0
	Users      float64 // W, C1*K
	Antennas   float64 // W, D0*M
	Processing float64 // W, D1*M*K/T
	Coding     float64 // W, A*Rate
}

// Circuit returns the power that does not scale with the SNR.
func (p Power) Circuit() float64 {
	return p.Static + p.Users + p.Antennas + p.Processing + p.Coding
}

// Total returns the power per cell in W.
func (p Power) Total() float64 { return p.Transmit + p.Circuit() }

// EE returns Rate/Total in bit/J, or 0 when Total is not positive.
func (p Power) EE() float64 {
	t := p.Total()
	if t <= 0 {
		return 0
	}
	return p.Rate / t
}
