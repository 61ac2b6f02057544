package server

import (
	"fmt"

	"github.com/sw33tLie/medimind/pkg/catalog"
	"github.com/sw33tLie/medimind/pkg/history"
	"github.com/sw33tLie/medimind/pkg/regions"
	"github.com/sw33tLie/medimind/pkg/report"
	"github.com/sw33tLie/medimind/pkg/session"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// indexPage renders the whole session: region filter, search, options,
// selection, report and history.
func (s *Server) indexPage(q string) g.Node {
	app := s.App
	theme := app.Theme()
	selected := app.Selected()

	return report.Layout("MediMind - Yapay Zeka Destekli Teşhis", theme,
		Div(Class("container mx-auto px-4 py-8 max-w-7xl"),
			pageHeader(theme),
			Div(Class("grid grid-cols-1 lg:grid-cols-4 gap-8"),
				Div(Class("lg:col-span-3 space-y-6"),
					regionButtons(app.Region(), q),
					searchBox(q),
					optionList(app.Catalog(), app.Visible(q), selected, q),
					selectionPanel(selected, app.CanSubmit(), app.State(), q),
					errorBanner(app.ErrorMessage()),
					resultSection(app),
				),
				historySidebar(app.History(), q),
			),
		),
	)
}

func hiddenQuery(q string) g.Node {
	return Input(Type("hidden"), Name("q"), Value(q))
}

func pageHeader(theme report.Theme) g.Node {
	label := "Karanlık Mod"
	if theme == report.Dark {
		label = "Aydınlık Mod"
	}
	return Header(Class("flex items-center justify-between mb-8"),
		Div(
			H1(Class("text-3xl font-bold text-blue-600 dark:text-blue-400"), g.Text("MediMind")),
			P(Class("text-sm text-slate-500 dark:text-slate-400"), g.Text("Belirtilerinizi seçin, olası hastalıkları öğrenin.")),
		),
		Form(Method("post"), Action("/theme"),
			Button(Type("submit"), Class("px-4 py-2 rounded-xl bg-slate-200 dark:bg-slate-700 text-sm font-semibold"), g.Text(label)),
		),
	)
}

func regionButtons(current regions.Region, q string) g.Node {
	var buttons []g.Node
	for _, r := range regions.All() {
		cls := "px-4 py-2 rounded-xl text-sm font-semibold border "
		if r == current {
			cls += "bg-blue-600 text-white border-blue-600"
		} else {
			cls += "bg-white dark:bg-slate-800 border-slate-200 dark:border-slate-700"
		}
		buttons = append(buttons,
			Form(Method("post"), Action("/region"),
				hiddenQuery(q),
				Input(Type("hidden"), Name("region"), Value(r.String())),
				Button(Type("submit"), Class(cls), g.Text(r.Label())),
			),
		)
	}
	return Section(
		H3(Class("text-sm font-bold uppercase tracking-wider mb-3"), g.Textf("Bölge: %s", current.Label())),
		Div(Class("flex flex-wrap gap-2"), g.Group(buttons)),
	)
}

func searchBox(q string) g.Node {
	return Form(Method("get"), Action("/"),
		Input(Type("search"), Name("q"), Value(q), Placeholder("Belirti ara..."), AutoComplete("off"),
			Class("w-full px-4 py-3 rounded-xl border border-slate-200 dark:border-slate-700 bg-white dark:bg-slate-800"),
		),
	)
}

func optionList(all, visible, selected []catalog.SymptomOption, q string) g.Node {
	if len(all) == 0 {
		return P(Class("text-sm text-slate-500"), g.Text("Belirti listesi yüklenemedi."))
	}
	if len(visible) == 0 {
		return P(Class("text-sm text-slate-500"), g.Text("Sonuç bulunamadı."))
	}
	picked := make(map[string]bool, len(selected))
	for _, o := range selected {
		picked[o.Value] = true
	}
	return Ul(ID("symptom-options"), Class("flex flex-wrap gap-2 max-h-80 overflow-y-auto"),
		g.Map(visible, func(o catalog.SymptomOption) g.Node {
			return Li(
				Form(Method("post"), Action("/select"),
					hiddenQuery(q),
					Input(Type("hidden"), Name("value"), Value(o.Value)),
					Button(Type("submit"), g.If(picked[o.Value], Disabled()),
						Class("px-3 py-2 rounded-lg text-sm bg-slate-100 dark:bg-slate-700 disabled:opacity-40"),
						g.Text(o.Label),
					),
				),
			)
		}),
	)
}

func selectionPanel(selected []catalog.SymptomOption, canSubmit bool, state session.RequestState, q string) g.Node {
	submitLabel := "Tahmin Et"
	if state == session.InFlight {
		submitLabel = "Analiz Ediliyor..."
	}
	return Section(ID("selection"), Class("bg-white dark:bg-slate-800 rounded-2xl p-6 border border-slate-100 dark:border-slate-700"),
		H3(Class("text-sm font-bold uppercase tracking-wider mb-3"), g.Textf("Seçilen Belirtiler (%d)", len(selected))),
		Div(Class("flex flex-wrap gap-2 mb-4"),
			g.Map(selected, func(o catalog.SymptomOption) g.Node {
				return Form(Method("post"), Action("/remove"), Class("inline"),
					hiddenQuery(q),
					Input(Type("hidden"), Name("value"), Value(o.Value)),
					Button(Type("submit"), Class("px-3 py-1 rounded-full bg-blue-100 text-blue-800 text-sm"), g.Text(o.Label+" ×")),
				)
			}),
		),
		Div(Class("flex gap-3"),
			Form(Method("post"), Action("/predict"),
				hiddenQuery(q),
				Button(ID("predict-button"), Type("submit"), g.If(!canSubmit, Disabled()),
					Class("px-6 py-3 rounded-xl bg-blue-600 text-white font-bold disabled:opacity-50"),
					g.Text(submitLabel),
				),
			),
			g.If(len(selected) > 0,
				Form(Method("post"), Action("/clear"),
					hiddenQuery(q),
					Button(Type("submit"), Class("px-6 py-3 rounded-xl bg-slate-200 dark:bg-slate-700 font-semibold"), g.Text("Temizle")),
				),
			),
		),
	)
}

func errorBanner(msg string) g.Node {
	if msg == "" {
		return nil
	}
	return Div(ID("error-banner"), Role("alert"),
		Class("bg-red-50 dark:bg-red-900/20 border border-red-200 dark:border-red-800 text-red-700 dark:text-red-400 px-4 py-3 rounded-xl"),
		g.Text(msg),
	)
}

func resultSection(app *session.App) g.Node {
	doc, ok := app.Document()
	if !ok {
		return nil
	}
	link := func(href, label string) g.Node {
		return A(Href(href), Class("px-4 py-2 rounded-xl bg-slate-800 dark:bg-slate-200 text-white dark:text-slate-900 text-sm font-semibold"), g.Text(label))
	}
	return Section(ID("report"),
		Div(Class("flex justify-end gap-2"),
			link("/export.pdf", "PDF İndir"),
			link("/export.html", "HTML İndir"),
		),
		report.Card(doc),
	)
}

func historySidebar(entries []history.Entry, q string) g.Node {
	content := []g.Node{
		H3(Class("text-sm font-bold uppercase tracking-wider mb-4"), g.Text("Geçmiş Tahminler")),
	}
	if len(entries) == 0 {
		content = append(content, P(Class("text-sm text-slate-500"), g.Text("Henüz geçmiş yok.")))
	} else {
		content = append(content,
			Ul(ID("history"), Class("space-y-2"),
				g.Map(entries, func(e history.Entry) g.Node {
					return Li(
						A(Href(fmt.Sprintf("/history/%d", e.ID)), Class("block p-3 rounded-xl bg-slate-50 dark:bg-slate-700/50 hover:bg-slate-100"),
							Div(Class("font-semibold"), g.Text(e.Disease)),
							Div(Class("text-xs text-slate-500"), g.Textf("%s %s · %%%d", e.Date, e.Time, e.ConfidencePercent())),
						),
					)
				}),
			),
			Form(Method("post"), Action("/history/clear"), Class("mt-4"),
				hiddenQuery(q),
				Button(Type("submit"), Class("text-sm text-red-600 font-semibold"), g.Text("Geçmişi Temizle")),
			),
		)
	}
	return Aside(Class("bg-white dark:bg-slate-800 rounded-2xl p-6 border border-slate-100 dark:border-slate-700 h-fit"), g.Group(content))
}
