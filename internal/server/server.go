package server

import (
	"net/http"
	"net/url"

	"github.com/sw33tLie/medimind/internal/utils"
	"github.com/sw33tLie/medimind/pkg/session"
)

// Server is the local web front end of a session.
type Server struct {
	App *session.App
}

func New(app *session.App) *Server {
	return &Server{App: app}
}

// Handler returns the routes of the front end and its JSON API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Pages
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /history/{id}", s.handleShowHistory)
	mux.HandleFunc("GET /export.pdf", s.handleExport)
	mux.HandleFunc("GET /export.html", s.handleExport)
	mux.HandleFunc("GET /export.png", s.handleExport)

	// Form posts
	mux.HandleFunc("POST /select", s.handleSelect)
	mux.HandleFunc("POST /remove", s.handleRemove)
	mux.HandleFunc("POST /clear", s.handleClear)
	mux.HandleFunc("POST /region", s.handleRegion)
	mux.HandleFunc("POST /predict", s.handlePredict)
	mux.HandleFunc("POST /theme", s.handleTheme)
	mux.HandleFunc("POST /history/clear", s.handleClearHistory)

	// API Group
	mux.HandleFunc("GET /api/symptoms", s.handleAPISymptoms)
	mux.HandleFunc("POST /api/predict", s.handleAPIPredict)
	mux.HandleFunc("GET /api/history", s.handleAPIHistory)
	mux.HandleFunc("DELETE /api/history", s.handleAPIClearHistory)

	return mux
}

func (s *Server) Start(addr string) error {
	utils.Log.Infof("Starting MediMind on http://%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// back sends the browser to the index page, keeping the search query.
func back(w http.ResponseWriter, r *http.Request) {
	target := "/"
	if q := r.FormValue("q"); q != "" {
		target += "?q=" + url.QueryEscape(q)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
