package acoustic

import "math"

// estimateTempo scores onset-envelope autocorrelation peaks inside [minBPM, maxBPM],
// weighted by a log-normal prior around priorBPM.
func estimateTempo(onset []float64, frameRate float64) []float64 {
	lagMin := int(math.Floor(60 * frameRate / maxBPM))
	lagMax := int(math.Ceil(60 * frameRate / minBPM))
	if lagMin < 1 {
		lagMin = 1
	}
	if lagMax > len(onset)-1 {
		lagMax = len(onset) - 1
	}
	if lagMax-lagMin < 2 {
		return nil
	}

	var mean float64
	for _, v := range onset {
		mean += v
	}
	mean /= float64(len(onset))
	env := make([]float64, len(onset))
	for i, v := range onset {
		env[i] = v - mean
	}

	ac := make([]float64, lagMax+2)
	for lag := lagMin - 1; lag <= lagMax+1 && lag < len(env); lag++ {
		if lag < 0 {
			continue
		}
		var sum float64
		for i := 0; i+lag < len(env); i++ {
			sum += env[i] * env[i+lag]
		}
		ac[lag] = sum
	}

	return tempoCandidates(ac, lagMin, lagMax, frameRate)
}

// tempoCandidates returns the best-scoring tempo, followed by the octave-related
// runner-up (half or double the best lag) when it scores within runnerUpRatio of the best.
func tempoCandidates(ac []float64, lagMin, lagMax int, frameRate float64) []float64 {
	score := func(lag int) float64 {
		if ac[lag] <= 0 {
			return 0
		}
		bpm := 60 * frameRate / float64(lag)
		octaves := math.Log2(bpm / priorBPM)
		return ac[lag] * math.Exp(-0.5*octaves*octaves)
	}

	best, bestScore := -1, 0.0
	for lag := lagMin; lag <= lagMax; lag++ {
		if sc := score(lag); sc > bestScore {
			best, bestScore = lag, sc
		}
	}
	if best < 0 {
		return nil
	}
	out := []float64{60 * frameRate / refineLag(ac, best)}

	runner, runnerScore := -1, 0.0
	for _, target := range []float64{float64(best) / 2, float64(best) * 2} {
		lo := max(lagMin, int(math.Round(target*(1-octaveTolerance))))
		hi := min(lagMax, int(math.Round(target*(1+octaveTolerance))))
		for lag := lo; lag <= hi; lag++ {
			if lag == best {
				continue
			}
			if sc := score(lag); sc > runnerScore {
				runner, runnerScore = lag, sc
			}
		}
	}
	if runner >= 0 && runnerScore >= runnerUpRatio*bestScore {
		out = append(out, 60*frameRate/refineLag(ac, runner))
	}
	return out
}

// refineLag places the peak at lag with a parabola through its neighbours.
func refineLag(ac []float64, lag int) float64 {
	refined := float64(lag)
	if lag+1 < len(ac) && lag-1 >= 0 {
		a, b, c := ac[lag-1], ac[lag], ac[lag+1]
		if den := a - 2*b + c; den < 0 {
			refined += 0.5 * (a - c) / den
		}
	}
	return refined
}
