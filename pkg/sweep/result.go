package sweep

// Config is the optimal (M, K) pair at one density; zero when infeasible.
type Config struct {
	M int
	K int
}

// Densities returns the user densities in sweep order.
func (r *Result) Densities() []float64 {
	out := make([]float64, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.Density
	}
	return out
}

// EE returns the optimal EE (bit/J) per density.
func (r *Result) EE() []float64 {
	out := make([]float64, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.EE
	}
	return out
}

// Configs returns the optimal (M, K) per density.
func (r *Result) Configs() []Config {
	out := make([]Config, len(r.Points))
	for i, p := range r.Points {
		out[i] = Config{M: p.M, K: p.K}
	}
	return out
}

// BSDensity returns the implied BS density (BS/km²) per density.
func (r *Result) BSDensity() []float64 {
	out := make([]float64, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.BSDensity
	}
	return out
}

// MISO returns the EE of the MISO reference per density.
func (r *Result) MISO() []float64 {
	out := make([]float64, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.MISO
	}
	return out
}

// MIMO returns the EE of the MIMO reference per density.
func (r *Result) MIMO() []float64 {
	out := make([]float64, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.MIMO
	}
	return out
}
