package translator

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/podcast-flow/internal/speaker"
	"github.com/nguyentantai21042004/podcast-flow/internal/transcript"
)

const systemPrompt = "You are an expert translator specializing in podcast localization from English to Mandarin Chinese."

var requirements = []string{
	"Use natural, conversational Mandarin (not formal written Chinese)",
	"Adapt any cultural references, idioms, or jokes to resonate with a Chinese audience",
	"Maintain the same meaning and emotional tone as the original",
	"If there are technical terms, provide appropriate Chinese terminology",
	"Return only the translated text in Simplified Chinese characters",
}

// contextWindow reads neighbours from the source transcript, never from translated output.
func contextWindow(t transcript.Transcript, i int) Window {
	w := Window{Current: t[i].Text}
	if i > 0 {
		w.Prev = t[i-1].Text
	}
	if i < len(t)-1 {
		w.Next = t[i+1].Text
	}
	return w
}

// BuildRequest assembles the provider request for one segment.
func BuildRequest(info *PodcastInfo, style speaker.Style, w Window) Request {
	var b strings.Builder

	if info != nil {
		fmt.Fprintf(&b, "This is from a podcast titled \"%s\" about %s.\n\n", info.Title, info.Description)
	}

	b.WriteString("Translate the following English podcast segment to natural, conversational Mandarin Chinese.\n")
	fmt.Fprintf(&b, "Maintain the speaker's tone which is characterized as %s with a %s speaking pace.\n\n", style.Tone, style.Pace)
	fmt.Fprintf(&b, "Previous segment: %s\n\n", w.Prev)
	fmt.Fprintf(&b, "SEGMENT TO TRANSLATE: %s\n\n", w.Current)
	fmt.Fprintf(&b, "Next segment: %s\n\n", w.Next)

	b.WriteString("Requirements:\n")
	for i, r := range requirements {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r)
	}

	return Request{
		System: systemPrompt,
		User:   b.String(),
		Window: w,
		Style:  style,
	}
}
