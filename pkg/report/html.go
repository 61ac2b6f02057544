package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

const (
	CardID     = "result-card-container"
	SymptomsID = "pdf-symptoms-section"
)

// Layout is the page shell shared by the web front end and HTML exports.
// Tailwind runs in class mode, so the dark appearance hangs off the <html>
// element's "dark" class.
func Layout(title string, theme Theme, body ...g.Node) g.Node {
	htmlClass := ""
	if theme == Dark {
		htmlClass = "dark"
	}
	return h.Doctype(
		h.HTML(h.Lang("tr"), h.Class(htmlClass),
			h.Head(
				h.Meta(h.Charset("UTF-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1.0")),
				h.TitleEl(g.Text(title)),
				h.Script(h.Src("https://cdn.tailwindcss.com")),
				h.Script(g.Raw(`tailwind.config={darkMode:'class'}`)),
			),
			h.Body(h.Class("min-h-screen bg-slate-50 dark:bg-slate-900 text-slate-800 dark:text-slate-100 font-sans"),
				g.Group(body),
			),
		),
	)
}

// Card renders the result card of the interactive view. The symptoms-detail
// block is present but hidden; Snapshot reveals it for exports.
func Card(doc *Document) g.Node {
	return h.Div(h.ID(CardID),
		h.Class("bg-white dark:bg-slate-800 rounded-3xl shadow-2xl border border-slate-100 dark:border-slate-700 overflow-hidden animate-fade-in-up max-w-5xl mx-auto my-8"),
		cardHeader(doc),
		symptomsSection(doc),
		h.Div(h.Class("p-6 md:p-10"),
			h.Div(h.Class("grid grid-cols-1 lg:grid-cols-2 gap-10 mb-10"),
				chartSection(doc),
				descriptionSection(doc),
			),
			precautionsSection(doc),
			h.P(h.Class("text-xs text-slate-400 dark:text-slate-500 mt-8"), g.Text(doc.Disclaimer)),
		),
	)
}

func cardHeader(doc *Document) g.Node {
	return h.Div(h.Class(fmt.Sprintf("bg-%s-600 p-8 text-white", doc.Tone)),
		h.Div(h.Class("flex flex-col md:flex-row justify-between items-start md:items-end gap-6"),
			h.Div(
				h.Span(h.Class("text-sm font-bold uppercase tracking-wider opacity-90"), g.Text("Teşhis Raporu")),
				h.H2(h.Class("text-3xl md:text-4xl font-bold leading-tight"), g.Text(doc.Disease)),
			),
			h.Div(h.Class("bg-white/10 px-5 py-3 rounded-xl border border-white/20"),
				h.Span(h.Class("text-xs font-bold opacity-80 uppercase tracking-wide block mb-1"), g.Text("Olasılık")),
				h.Span(h.Class("text-4xl font-bold"), g.Textf("%%%d", doc.ConfidencePercent)),
			),
		),
	)
}

func symptomsSection(doc *Document) g.Node {
	if len(doc.Symptoms) == 0 {
		return nil
	}
	return h.Div(h.ID(SymptomsID), h.Class("hidden bg-slate-50 border-b border-slate-100"),
		h.Div(h.Class("px-8 py-6"),
			h.H4(h.Class("text-sm font-bold text-slate-700 uppercase tracking-wider mb-4"), g.Text("Analiz Edilen Belirtiler")),
			h.Div(h.Class("flex flex-wrap gap-3"),
				g.Map(doc.Symptoms, func(s string) g.Node {
					return h.Span(h.Class("bg-white px-4 py-3 rounded-xl border border-slate-200 text-sm font-semibold text-slate-700 capitalize"), g.Text(s))
				}),
			),
		),
	)
}

func chartSection(doc *Document) g.Node {
	return h.Div(h.Class("bg-slate-50 dark:bg-slate-700/50 rounded-2xl p-6 border border-slate-100 dark:border-slate-700"),
		h.H4(h.Class("text-sm font-bold text-slate-700 dark:text-slate-300 uppercase tracking-wider mb-6"), g.Text("Olasılık Dağılımı")),
		h.Div(h.Class("relative w-56 h-56 mx-auto rounded-full"), h.Style("background: "+conicGradient(doc.Chart)),
			h.Div(h.Class("absolute inset-12 rounded-full bg-slate-50 dark:bg-slate-800")),
		),
		h.Ul(h.Class("mt-6 space-y-1 text-sm"),
			g.Map(doc.Chart, func(s Slice) g.Node {
				return h.Li(h.Class("flex items-center gap-2"),
					h.Span(h.Class("inline-block w-3 h-3 rounded-full"), h.Style("background-color: "+hex(s.Color))),
					h.Span(g.Text(s.Name)),
					h.Span(h.Class("ml-auto font-semibold"), g.Text(s.Percent())),
				)
			}),
		),
	)
}

// conicGradient draws the distribution as a CSS pie. Values are normalized so
// partial distributions still fill the circle.
func conicGradient(slices []Slice) string {
	total := 0.0
	for _, s := range slices {
		total += s.Value
	}
	if total <= 0 {
		return "#e2e8f0"
	}
	var stops []string
	start := 0.0
	for _, s := range slices {
		end := start + s.Value/total*100
		stops = append(stops, fmt.Sprintf("%s %.2f%% %.2f%%", hex(s.Color), start, end))
		start = end
	}
	return "conic-gradient(" + strings.Join(stops, ", ") + ")"
}

func descriptionSection(doc *Document) g.Node {
	return h.Div(h.Class("flex flex-col"),
		h.H4(h.Class("text-sm font-bold text-slate-900 dark:text-white uppercase tracking-wider mb-4"), g.Text("Hastalık Tanımı")),
		h.Div(h.Class("prose dark:prose-invert bg-white dark:bg-slate-700/50 p-6 rounded-2xl border border-slate-100 dark:border-slate-700 leading-relaxed text-slate-600 dark:text-slate-300 text-lg"),
			g.Raw(markdownHTML(doc.Description)),
		),
	)
}

func precautionsSection(doc *Document) g.Node {
	if len(doc.Precautions) == 0 {
		return nil
	}
	return h.Div(
		h.H4(h.Class("text-sm font-bold text-slate-900 dark:text-white uppercase tracking-wider mb-4"), g.Text("Önerilen Önlemler")),
		h.Ol(h.Class("grid grid-cols-1 md:grid-cols-2 gap-4 list-decimal list-inside"),
			g.Map(doc.Precautions, func(p string) g.Node {
				return h.Li(h.Class("bg-slate-50 dark:bg-slate-700/50 p-4 rounded-xl"), g.Text(p))
			}),
		),
	)
}

// markdownHTML renders text that has already been stripped of HTML tags.
func markdownHTML(text string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	return string(markdown.ToHTML([]byte(text), p, nil))
}

// WriteHTML writes the interactive page of doc in the given theme.
func WriteHTML(w io.Writer, doc *Document, theme Theme) error {
	return Layout("MediMind Raporu - "+doc.Disease, theme,
		h.Main(h.Class("container mx-auto px-4 py-12 max-w-5xl"), Card(doc)),
	).Render(w)
}
