package transcriber

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
	"github.com/nguyentantai21042004/podcast-flow/internal/transcript"
)

const serviceTimeout = 60 * time.Minute

// Service uploads audio to a diarizing transcription server (POST {url}/transcribe).
type Service struct {
	url    string
	client *http.Client
	logger logger.Logger
}

func NewService(url string, log logger.Logger) *Service {
	return &Service{
		url: strings.TrimRight(url, "/"),
		client: &http.Client{
			Timeout: serviceTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        4,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
				ForceAttemptHTTP2:   true,
			},
		},
		logger: log,
	}
}

func (s *Service) Transcribe(ctx context.Context, req Request) (transcript.Transcript, error) {
	if err := checkAudio(req.AudioPath); err != nil {
		return nil, err
	}

	f, err := os.Open(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	// stream the upload instead of buffering the whole file
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeForm(mw, f, req))
	}()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url+"/transcribe", pr)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("create transcription request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	s.logger.Info(ctx, "Uploading %s to %s", req.AudioPath, s.url)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("transcription service status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	t, err := decodeResponse(resp.Body)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Transcription completed. Found %d segments.", len(t))
	return t, nil
}

func writeForm(mw *multipart.Writer, f *os.File, req Request) error {
	fields := map[string]string{
		"language":     req.Language,
		"min_speakers": strconv.Itoa(req.MinSpeakers),
		"max_speakers": strconv.Itoa(req.MaxSpeakers),
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}

	fw, err := mw.CreateFormFile("file", filepath.Base(req.AudioPath))
	if err != nil {
		return err
	}
	if _, err := io.Copy(fw, f); err != nil {
		return err
	}
	return mw.Close()
}
