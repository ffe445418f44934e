package acoustic

import "math"

// yin returns the f0 of frame in Hz, or NaN when no period passes the threshold.
// The integration window is half the frame so every lag has the same number of terms.
func yin(frame []float64, sampleRate int) float64 {
	w := len(frame) / 2
	tauMin := int(math.Floor(float64(sampleRate) / maxPitchHz))
	tauMax := int(math.Ceil(float64(sampleRate) / minPitchHz))
	if tauMax > w-1 {
		tauMax = w - 1
	}
	if tauMin < 1 {
		tauMin = 1
	}
	if tauMin >= tauMax {
		return math.NaN()
	}

	d := make([]float64, tauMax+1)
	for tau := 1; tau <= tauMax; tau++ {
		var sum float64
		for j := 0; j < w; j++ {
			delta := frame[j] - frame[j+tau]
			sum += delta * delta
		}
		d[tau] = sum
	}

	// cumulative mean normalised difference
	cmnd := make([]float64, tauMax+1)
	cmnd[0] = 1
	var running float64
	for tau := 1; tau <= tauMax; tau++ {
		running += d[tau]
		if running == 0 {
			cmnd[tau] = 1
			continue
		}
		cmnd[tau] = d[tau] * float64(tau) / running
	}

	for tau := tauMin; tau <= tauMax; tau++ {
		if cmnd[tau] >= yinThreshold {
			continue
		}
		for tau+1 <= tauMax && cmnd[tau+1] < cmnd[tau] {
			tau++
		}
		return float64(sampleRate) / refine(cmnd, tau)
	}
	return math.NaN()
}

// refine fits a parabola through the minimum and its neighbours.
func refine(y []float64, i int) float64 {
	if i <= 0 || i >= len(y)-1 {
		return float64(i)
	}
	a, b, c := y[i-1], y[i], y[i+1]
	den := a - 2*b + c
	if den == 0 {
		return float64(i)
	}
	return float64(i) + 0.5*(a-c)/den
}
