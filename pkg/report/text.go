package report

import (
	"fmt"
	"io"
	"strings"
)

// TextOptions controls the terminal rendering.
type TextOptions struct {
	Theme Theme
	Color bool
	Width int
}

type palette struct {
	heading, text, muted, reset string
}

func paletteFor(o TextOptions) palette {
	if !o.Color {
		return palette{}
	}
	if o.Theme == Dark {
		return palette{heading: "\033[1;97m", text: "\033[37m", muted: "\033[90m", reset: "\033[0m"}
	}
	return palette{heading: "\033[1;30m", text: "\033[30m", muted: "\033[2m", reset: "\033[0m"}
}

func toneANSI(t Tone, color bool) (string, string) {
	if !color {
		return "", ""
	}
	if t == ToneGreen {
		return "\033[1;32m", "\033[0m"
	}
	return "\033[1;33m", "\033[0m"
}

// WriteText renders the interactive view of doc. The symptoms-detail block is
// export-only and is not written.
func WriteText(w io.Writer, doc *Document, o TextOptions) error {
	if o.Width <= 0 {
		o.Width = 80
	}
	p := paletteFor(o)
	toneOn, toneOff := toneANSI(doc.Tone, o.Color)

	var b strings.Builder
	rule := strings.Repeat("─", o.Width)

	fmt.Fprintf(&b, "%s%s%s\n", p.muted, rule, p.reset)
	fmt.Fprintf(&b, "%sTEŞHİS RAPORU%s\n", p.muted, p.reset)
	fmt.Fprintf(&b, "%s%s%s\n", toneOn, doc.Disease, toneOff)
	fmt.Fprintf(&b, "%sOlasılık: %%%d%s\n\n", p.text, doc.ConfidencePercent, p.reset)

	fmt.Fprintf(&b, "%sOLASILIK DAĞILIMI%s\n", p.heading, p.reset)
	nameWidth := 0
	for _, s := range doc.Chart {
		if n := len([]rune(s.Name)); n > nameWidth {
			nameWidth = n
		}
	}
	barWidth := o.Width - nameWidth - 12
	if barWidth < 10 {
		barWidth = 10
	}
	for _, s := range doc.Chart {
		bar := strings.Repeat("█", int(s.Value*float64(barWidth)+0.5))
		pad := strings.Repeat(" ", nameWidth-len([]rune(s.Name)))
		fmt.Fprintf(&b, "%s%s%s  %s %s%s\n", p.text, s.Name, pad, bar, s.Percent(), p.reset)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%sHASTALIK TANIMI%s\n", p.heading, p.reset)
	for _, line := range wrapWords(doc.Description, o.Width) {
		fmt.Fprintf(&b, "%s%s%s\n", p.text, line, p.reset)
	}
	b.WriteString("\n")

	if len(doc.Precautions) > 0 {
		fmt.Fprintf(&b, "%sÖNERİLEN ÖNLEMLER%s\n", p.heading, p.reset)
		for i, pr := range doc.Precautions {
			fmt.Fprintf(&b, "%s%d. %s%s\n", p.text, i+1, pr, p.reset)
		}
		b.WriteString("\n")
	}

	for _, line := range wrapWords(doc.Disclaimer, o.Width) {
		fmt.Fprintf(&b, "%s%s%s\n", p.muted, line, p.reset)
	}
	fmt.Fprintf(&b, "%s%s%s\n", p.muted, rule, p.reset)

	_, err := io.WriteString(w, b.String())
	return err
}

// wrapWords breaks text into lines of at most width runes, on spaces.
func wrapWords(text string, width int) []string {
	var lines []string
	var cur []string
	curLen := 0
	for _, word := range strings.Fields(text) {
		wl := len([]rune(word))
		if curLen > 0 && curLen+1+wl > width {
			lines = append(lines, strings.Join(cur, " "))
			cur, curLen = nil, 0
		}
		if curLen > 0 {
			curLen++
		}
		cur = append(cur, word)
		curLen += wl
	}
	if len(cur) > 0 {
		lines = append(lines, strings.Join(cur, " "))
	}
	return lines
}
