package types

import "fmt"

// BitsPerJoule is an energy efficiency in bit/J.
type BitsPerJoule float64

// Humanized returns a human-readable string with automatic unit (bit/J .. Gbit/J).
func (e BitsPerJoule) Humanized() string {
	switch v := float64(e); {
	case v >= 1e9:
		return fmt.Sprintf("%.2f Gbit/J", e.Gbit())
	case v >= 1e6:
		return fmt.Sprintf("%.2f Mbit/J", e.Mbit())
	case v >= 1e3:
		return fmt.Sprintf("%.2f kbit/J", e.Kbit())
	default:
		return fmt.Sprintf("%.2f bit/J", v)
	}
}

// Kbit returns the efficiency in kbit/J (1000 base).
func (e BitsPerJoule) Kbit() float64 { return float64(e) / 1e3 }

// Mbit returns the efficiency in Mbit/J.
func (e BitsPerJoule) Mbit() float64 { return float64(e) / 1e6 }

// Gbit returns the efficiency in Gbit/J.
func (e BitsPerJoule) Gbit() float64 { return float64(e) / 1e9 }

// Density is an areal density (UE/km² or BS/km²).
type Density float64

// String formats the density as "1.00e+02/km²".
func (d Density) String() string { return fmt.Sprintf("%.2e/km²", float64(d)) }
