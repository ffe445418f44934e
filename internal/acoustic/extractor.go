package acoustic

import (
	"context"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// Extract frames the slice, then derives pitch, centroid and tempo from the same frames.
func (e *implExtractor) Extract(ctx context.Context, samples []float64, sampleRate int) (Features, error) {
	if sampleRate <= 0 || len(samples) < frameLength {
		return Features{}, ErrTooShort
	}

	nFrames := 1 + (len(samples)-frameLength)/hopLength
	fft := fourier.NewFFT(frameLength)
	buf := make([]float64, frameLength)
	coeffs := make([]complex128, frameLength/2+1)
	prevMag := make([]float64, frameLength/2+1)
	mag := make([]float64, frameLength/2+1)

	pitch := make([]float64, 0, nFrames)
	onset := make([]float64, 0, nFrames)
	var centroidSum float64
	var voicedFrames int

	for i := 0; i < nFrames; i++ {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return Features{}, err
			}
		}
		frame := samples[i*hopLength : i*hopLength+frameLength]

		if rms(frame) < silenceRMS {
			pitch = append(pitch, math.NaN())
			for k := range mag {
				mag[k] = 0
			}
		} else {
			pitch = append(pitch, yin(frame, sampleRate))

			copy(buf, frame)
			window.Hann(buf)
			coeffs = fft.Coefficients(coeffs, buf)
			for k, c := range coeffs {
				mag[k] = math.Hypot(real(c), imag(c))
			}
			if c, ok := centroid(mag, sampleRate); ok {
				centroidSum += c
				voicedFrames++
			}
		}

		onset = append(onset, flux(prevMag, mag, i == 0))
		prevMag, mag = mag, prevMag
	}

	if voicedFrames == 0 {
		return Features{}, ErrSilent
	}

	f := Features{
		Pitch:            pitch,
		SpectralCentroid: centroidSum / float64(voicedFrames),
	}
	frameRate := float64(sampleRate) / hopLength
	f.Tempo = estimateTempo(onset, frameRate)
	return f, nil
}

func rms(frame []float64) float64 {
	var sum float64
	for _, v := range frame {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(frame)))
}

// centroid is the magnitude-weighted mean bin frequency.
func centroid(mag []float64, sampleRate int) (float64, bool) {
	binHz := float64(sampleRate) / frameLength
	var num, den float64
	for k, m := range mag {
		num += float64(k) * binHz * m
		den += m
	}
	if den == 0 {
		return 0, false
	}
	return num / den, true
}

// flux is the positive log-magnitude difference between consecutive frames.
func flux(prev, cur []float64, first bool) float64 {
	if first {
		return 0
	}
	var sum float64
	for k := range cur {
		if d := math.Log1p(cur[k]) - math.Log1p(prev[k]); d > 0 {
			sum += d
		}
	}
	return sum
}
