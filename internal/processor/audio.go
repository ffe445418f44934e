package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/podcast-flow/internal/audio"
)

// loadAudio decodes audioPath, converting non-WAV input to a temporary mono WAV first.
func (p *implProcessor) loadAudio(ctx context.Context, audioPath string) (audio.Buffer, error) {
	wavPath := audioPath
	if !audio.IsWAV(audioPath) {
		converted, err := p.convertToWAV(ctx, audioPath)
		if err != nil {
			return audio.Buffer{}, err
		}
		defer p.cleanupTempFile(ctx, converted)
		wavPath = converted
	}

	buf, err := audio.Load(wavPath)
	if err != nil {
		return audio.Buffer{}, err
	}
	p.logger.Info(ctx, "Loaded %.1fs of audio at %d Hz", buf.Duration(), buf.SampleRate)
	return buf, nil
}

// convertToWAV writes a 16-bit mono WAV at the configured sample rate into the temp folder.
func (p *implProcessor) convertToWAV(ctx context.Context, audioPath string) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Temp, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	out, err := os.CreateTemp(p.cfg.Paths.Temp, base+"-*.wav")
	if err != nil {
		return "", fmt.Errorf("create temp wav: %w", err)
	}
	out.Close()

	p.logger.Info(ctx, "Converting to WAV: %s", audioPath)

	args := []string{
		"-i", audioPath,
		"-vn",
		"-ac", "1",
		"-ar", strconv.Itoa(p.cfg.Audio.SampleRate),
		"-c:a", "pcm_s16le",
		"-y",
		out.Name(),
	}
	if _, err := p.executor.Execute(ctx, p.cfg.Audio.FFmpegPath, args...); err != nil {
		os.Remove(out.Name())
		return "", fmt.Errorf("ffmpeg convert: %w", err)
	}

	return out.Name(), nil
}
