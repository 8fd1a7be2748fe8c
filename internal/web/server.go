// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the catalog search page over HTTP. Each browser gets
// its own query session, identified by a cookie; every request applies one
// action to that session and redirects back to the page.
package web

import (
	"crypto/hmac"
	"crypto/sha256"
	"embed"
	"encoding/base64"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/journal-search/internal/query"
	"github.com/pdiddy/journal-search/internal/render"
	"github.com/pdiddy/journal-search/internal/session"
	"github.com/pdiddy/journal-search/pkg/types"
)

// CookieName is the session cookie.
const CookieName = "jsid"

//go:embed templates/index.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Options configures a Server.
type Options struct {
	// Title and Footer default to types.DefaultTitle and types.DefaultFooter.
	Title  string
	Footer string

	// ArticleTypes fills the type selector.
	ArticleTypes []string

	// SessionKey signs session cookies when non-empty.
	SessionKey []byte
}

// Server handles the search page.
type Server struct {
	sessions *session.Manager
	opts     Options
	years    []int
	logger   *zap.Logger
}

// NewServer returns a Server over sessions.
func NewServer(sessions *session.Manager, opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Title == "" {
		opts.Title = types.DefaultTitle
	}
	if opts.Footer == "" {
		opts.Footer = types.DefaultFooter
	}
	return &Server{
		sessions: sessions,
		opts:     opts,
		years:    types.YearOptions(),
		logger:   logger,
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /search", s.handleSearch)
	mux.HandleFunc("POST /reset", s.handleReset)
	mux.HandleFunc("POST /page", s.handlePage)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok\n"))
	})
	return s.logRequests(mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	st := sess.State()
	s.render(w, http.StatusOK, sess.View(), formFromCriteria(st.Criteria), "")
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	form := formValues{
		Keyword: r.PostForm.Get("keyword"),
		Year:    r.PostForm.Get("year"),
		Type:    r.PostForm.Get("type"),
		Author:  r.PostForm.Get("author"),
	}

	c, err := query.ParseCriteria(form.Keyword, form.Year, form.Type, form.Author)
	if err == nil {
		err = sess.SubmitSearch(c)
	}
	if err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if msg := render.ValidationMessage(err); msg != "" {
		s.render(w, http.StatusUnprocessableEntity, sess.View(), form, msg)
		return
	}
	s.logger.Error("search failed", zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.session(w, r).Reset()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	nav, err := query.ParseNav(r.FormValue("nav"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// Without an active search there is no pager to act on; the page is
	// simply shown again.
	if err := sess.Navigate(nav); err != nil && !errors.Is(err, query.ErrInactive) {
		s.logger.Error("navigation failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// --- rendering ---

type formValues struct {
	Keyword string
	Year    string
	Type    string
	Author  string
}

func formFromCriteria(c query.Criteria) formValues {
	f := formValues{Keyword: c.Keyword, Type: c.Type, Author: c.Author}
	if c.Year != 0 {
		f.Year = strconv.Itoa(c.Year)
	}
	return f
}

type navButton struct {
	Name  string
	Label string
}

type pageData struct {
	Title  string
	Footer string
	Form   formValues
	Years  []int
	Types  []string
	Error  string
	Count  string
	Page   query.Page
	Navs   []navButton
}

func (s *Server) render(w http.ResponseWriter, status int, p query.Page, form formValues, msg string) {
	data := pageData{
		Title:  s.opts.Title,
		Footer: s.opts.Footer,
		Form:   form,
		Years:  s.years,
		Types:  s.opts.ArticleTypes,
		Error:  msg,
		Count:  render.ResultCount(p.Window.Total),
		Page:   p,
	}
	for _, n := range query.Navs {
		if p.Can(n) {
			data.Navs = append(data.Navs, navButton{Name: n.String(), Label: n.Label()})
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTmpl.Execute(w, data); err != nil {
		s.logger.Error("rendering page", zap.Error(err))
	}
}

// --- sessions ---

// session returns the caller's session, creating one and setting the
// cookie when the request carries no valid session id.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *query.Session {
	var id string
	if c, err := r.Cookie(CookieName); err == nil {
		id, _ = s.verify(c.Value)
	}
	sid, sess, created := s.sessions.GetOrCreate(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    s.sign(sid),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

func (s *Server) sign(id string) string {
	if len(s.opts.SessionKey) == 0 {
		return id
	}
	return id + "." + s.mac(id)
}

// verify returns the session id carried by a cookie value.
func (s *Server) verify(value string) (string, bool) {
	if len(s.opts.SessionKey) == 0 {
		return value, value != ""
	}
	id, sig, ok := strings.Cut(value, ".")
	if !ok || !hmac.Equal([]byte(sig), []byte(s.mac(id))) {
		return "", false
	}
	return id, true
}

func (s *Server) mac(id string) string {
	h := hmac.New(sha256.New, s.opts.SessionKey)
	h.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// --- logging ---

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Duration("duration", time.Since(start)))
	})
}
