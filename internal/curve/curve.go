// Package curve generates deterministic synthetic channel curves.
package curve

import (
	"math"
	"math/rand"
)

// Sine generates a sine curve completing cycles periods every frames
// samples.
func Sine(cycles, frames int, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * float64(cycles) / float64(frames)
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Noise generates uniform noise in [-amplitude, amplitude] from seed.
func Noise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Ramp returns start, start+step, start+2*step, ...
func Ramp(start, step float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// Constant returns a curve holding value for every frame.
func Constant(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Motion approximates a captured joint angle: a slow swing, a faster
// secondary oscillation, linear drift and a little sensor noise.
func Motion(seed int64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	swing := 20 + rng.Float64()*40
	phase := rng.Float64() * 2 * math.Pi
	drift := rng.Float64()*0.05 - 0.025

	out := make([]float64, length)
	for i := range out {
		t := float64(i)
		out[i] = swing*math.Sin(0.03*t+phase) +
			0.2*swing*math.Sin(0.21*t) +
			drift*t +
			(rng.Float64()*2-1)*0.05
	}
	return out
}
