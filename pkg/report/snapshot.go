package report

import (
	"bytes"
	"io"

	"github.com/PuerkitoBio/goquery"
)

const (
	exportCardStyle     = "animation: none; opacity: 1; transform: none; box-shadow: none; width: 1000px; max-width: none; margin: 0 auto;"
	exportSymptomsStyle = "display: block; height: auto; overflow: visible;"
)

// Snapshot applies the export pass to an interactive page: the light
// appearance is forced whatever the display theme, the symptoms-detail block
// is revealed and the card is pinned to a fixed desktop width without
// animations.
func Snapshot(r io.Reader) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	doc.Find("html").RemoveClass("dark")
	doc.Find("body").SetAttr("style", "background-color: #ffffff;")

	card := doc.Find("#" + CardID)
	card.RemoveClass("animate-fade-in-up", "shadow-2xl")
	card.SetAttr("style", exportCardStyle)

	symptoms := doc.Find("#" + SymptomsID)
	symptoms.RemoveClass("hidden")
	symptoms.SetAttr("style", exportSymptomsStyle)

	out, err := doc.Html()
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// WriteSnapshotHTML renders doc the way it is displayed in theme, then runs
// the export pass over it.
func WriteSnapshotHTML(w io.Writer, doc *Document, theme Theme) error {
	var page bytes.Buffer
	if err := WriteHTML(&page, doc, theme); err != nil {
		return err
	}
	snap, err := Snapshot(&page)
	if err != nil {
		return err
	}
	_, err = w.Write(snap)
	return err
}
