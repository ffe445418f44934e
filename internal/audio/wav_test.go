package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func writeWAV(t *testing.T, path string, rate, channels int, data []int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadStereoMixdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	// L/R pairs
	writeWAV(t, path, 16000, 2, []int{16384, 0, -16384, -16384, 32767, 32767})

	buf, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if buf.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want 16000", buf.SampleRate)
	}
	want := []float64{0.25, -0.5, 32767.0 / 32768.0}
	if len(buf.Samples) != len(want) {
		t.Fatalf("len(Samples) = %d, want %d", len(buf.Samples), len(want))
	}
	for i := range want {
		if math.Abs(buf.Samples[i]-want[i]) > 1e-9 {
			t.Errorf("Samples[%d] = %v, want %v", i, buf.Samples[i], want[i])
		}
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.wav")
	if err := os.WriteFile(path, []byte("definitely not riff"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrNotWAV) {
		t.Errorf("Load() error = %v, want ErrNotWAV", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Error("Load() should fail for a missing file")
	}
}

func TestIsWAV(t *testing.T) {
	if !IsWAV("show.WAV") || IsWAV("show.mp3") {
		t.Error("IsWAV() misclassified extension")
	}
}
