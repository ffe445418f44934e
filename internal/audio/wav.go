// Package audio decodes PCM WAV files into mono float samples for analysis.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
)

var ErrNotWAV = errors.New("not a valid WAV file")

// Buffer is mono audio normalised to [-1, 1].
type Buffer struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the buffer length in seconds.
func (b Buffer) Duration() float64 {
	if b.SampleRate == 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// IsWAV reports whether path has a .wav extension.
func IsWAV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".wav")
}

// Load decodes the WAV file at path and mixes all channels down to mono.
func Load(path string) (Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return Buffer{}, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return Buffer{}, fmt.Errorf("%s: %w", path, ErrNotWAV)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return Buffer{}, fmt.Errorf("decode audio: %w", err)
	}
	if pcm.Format == nil || pcm.Format.NumChannels <= 0 || pcm.Format.SampleRate <= 0 {
		return Buffer{}, fmt.Errorf("%s: missing format chunk: %w", path, ErrNotWAV)
	}

	bitDepth := pcm.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(dec.BitDepth)
	}

	return Buffer{
		Samples:    mixdown(pcm.Data, pcm.Format.NumChannels, bitDepth),
		SampleRate: pcm.Format.SampleRate,
	}, nil
}

// mixdown averages interleaved channels and scales integer PCM to [-1, 1].
func mixdown(data []int, channels, bitDepth int) []float64 {
	scale := 1.0
	if bitDepth > 1 {
		scale = float64(int64(1) << uint(bitDepth-1))
	}
	// 8-bit WAV is unsigned
	offset := 0.0
	if bitDepth == 8 {
		offset = 128
	}

	frames := len(data) / channels
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(data[i*channels+c]) - offset
		}
		out[i] = sum / float64(channels) / scale
	}
	return out
}
