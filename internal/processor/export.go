package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/podcast-flow/internal/speaker"
	"github.com/nguyentantai21042004/podcast-flow/internal/translator"
)

const (
	fontName    = "Times New Roman"
	cjkFontName = "SimSun"
	fontSize    = 12
	titleSize   = 16
)

// export writes the enabled output documents into paths.output/<audio-name>/.
func (p *implProcessor) export(ctx context.Context, audioPath string, info *translator.PodcastInfo, res *Result) ([]string, error) {
	if !p.cfg.Export.JSON && !p.cfg.Export.Docx {
		return nil, nil
	}

	name := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	dir := filepath.Join(p.cfg.Paths.Output, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var written []string
	if p.cfg.Export.JSON {
		path := filepath.Join(dir, "result.json")
		if err := writeJSON(path, res); err != nil {
			return written, fmt.Errorf("write json: %w", err)
		}
		written = append(written, path)
	}
	if p.cfg.Export.Docx {
		path := filepath.Join(dir, "transcript.docx")
		if err := writeDocx(path, documentTitle(name, info), res); err != nil {
			return written, fmt.Errorf("write docx: %w", err)
		}
		written = append(written, path)
	}

	for _, path := range written {
		p.logger.Info(ctx, "Exported: %s", path)
	}
	return written, nil
}

func writeJSON(path string, res *Result) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func documentTitle(name string, info *translator.PodcastInfo) string {
	if info != nil && info.Title != "" {
		return info.Title
	}
	return name
}

// writeDocx renders a bilingual transcript: one heading line per segment followed by
// the English original and the Mandarin translation.
func writeDocx(path, title string, res *Result) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addRun(doc.AddParagraph(""), title, fontName, titleSize, true)
	doc.AddParagraph("")

	for _, seg := range res.TranslatedSegments {
		style := speaker.StyleFor(res.SpeakerData, seg.Speaker)
		heading := fmt.Sprintf("[%s - %s] %s (%s, %s)",
			timestamp(seg.Start), timestamp(seg.End), seg.Speaker, style.Tone, style.Pace)

		addRun(doc.AddParagraph(""), heading, fontName, fontSize, true)
		addRun(doc.AddParagraph(""), seg.Original, fontName, fontSize, false)
		addRun(doc.AddParagraph(""), seg.Translated, cjkFontName, fontSize, false)
		doc.AddParagraph("")
	}

	return doc.SaveTo(path)
}

func addRun(p *docx.Paragraph, text, font string, size uint64, bold bool) {
	run := p.AddText(text).Font(font).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

// timestamp formats seconds as HH:MM:SS.
func timestamp(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	total := int(sec)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60)
}
