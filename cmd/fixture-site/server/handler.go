package server

import (
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/thesyncim/pagesuite/pkg/logger"
)

// Credentials accepted by /authenticate.
const (
	Username = "tomsmith"
	Password = "SuperSecretPassword!"
)

// Flash texts rendered by the login flow.
const (
	MsgLoggedIn        = "You logged into a secure area!"
	MsgLoggedOut       = "You logged out of the secure area!"
	MsgInvalidUsername = "Your username is invalid!"
	MsgInvalidPassword = "Your password is invalid!"
	MsgLoginRequired   = "You must login to view the secure area!"
	MsgFormRequired    = "Please enter a first or last name."
)

const (
	flashCookie   = "flash"
	sessionCookie = "session"
)

// Flash is a one-shot status message shown on the next rendered page.
type Flash struct {
	Kind    string // success or error
	Message string
}

type view struct {
	Flash *Flash
	Data  any
}

type formResult struct {
	FirstName string
	LastName  string
	Message   string
	Failed    bool
}

// Site renders the fixture pages and tracks logged-in sessions.
type Site struct {
	pages map[string]*template.Template

	mu       sync.Mutex
	sessions map[string]struct{}
}

// NewSite parses every page template.
func NewSite() (*Site, error) {
	layout, err := template.New("layout").Parse(layoutHTML)
	if err != nil {
		return nil, errors.Wrap(err, "parse layout")
	}

	sources := map[string]string{
		"index":        indexHTML,
		"login":        loginHTML,
		"secure":       secureHTML,
		"checkboxes":   checkboxesHTML,
		"dropdown":     dropdownHTML,
		"formelements": formElementsHTML,
	}

	pages := make(map[string]*template.Template, len(sources))
	for name, src := range sources {
		t, err := template.Must(layout.Clone()).Parse(src)
		if err != nil {
			return nil, errors.Wrapf(err, "parse page %q", name)
		}
		pages[name] = t
	}

	return &Site{pages: pages, sessions: make(map[string]struct{})}, nil
}

// Routes returns the handler for every fixture route.
func (s *Site) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.page("index"))
	mux.HandleFunc("GET /login", s.page("login"))
	mux.HandleFunc("POST /authenticate", s.handleAuthenticate)
	mux.HandleFunc("GET /secure", s.handleSecure)
	mux.HandleFunc("GET /logout", s.handleLogout)
	mux.HandleFunc("GET /checkboxes", s.page("checkboxes"))
	mux.HandleFunc("GET /dropdown", s.page("dropdown"))
	mux.HandleFunc("GET /formelements", s.page("formelements"))
	mux.HandleFunc("POST /formelements", s.handleFormElements)

	return mux
}

func (s *Site) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, name, nil)
	}
}

// handleAuthenticate checks the username first, then the password.
func (s *Site) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	switch {
	case r.PostForm.Get("username") != Username:
		redirectWithFlash(w, r, "/login", Flash{Kind: "error", Message: MsgInvalidUsername})
	case r.PostForm.Get("password") != Password:
		redirectWithFlash(w, r, "/login", Flash{Kind: "error", Message: MsgInvalidPassword})
	default:
		token := uuid.NewString()
		s.mu.Lock()
		s.sessions[token] = struct{}{}
		s.mu.Unlock()

		http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: token, Path: "/", HttpOnly: true})
		logger.Debug(r.Context(), "session opened", zap.String("session", token))
		redirectWithFlash(w, r, "/secure", Flash{Kind: "success", Message: MsgLoggedIn})
	}
}

func (s *Site) handleSecure(w http.ResponseWriter, r *http.Request) {
	if !s.loggedIn(r) {
		redirectWithFlash(w, r, "/login", Flash{Kind: "error", Message: MsgLoginRequired})
		return
	}

	s.render(w, r, "secure", nil)
}

func (s *Site) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		s.mu.Lock()
		delete(s.sessions, c.Value)
		s.mu.Unlock()
	}

	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Path: "/", MaxAge: -1})
	redirectWithFlash(w, r, "/login", Flash{Kind: "success", Message: MsgLoggedOut})
}

func (s *Site) handleFormElements(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	res := formResult{
		FirstName: r.PostForm.Get("fname"),
		LastName:  r.PostForm.Get("lname"),
	}
	name := strings.TrimSpace(strings.TrimSpace(res.FirstName) + " " + strings.TrimSpace(res.LastName))
	if name == "" {
		res.Message = MsgFormRequired
		res.Failed = true
	} else {
		res.Message = FormSubmitted(name)
	}

	s.render(w, r, "formelements", res)
}

// FormSubmitted is the confirmation shown after the form elements page is posted.
func FormSubmitted(name string) string {
	return "Thank you, " + name + "! Your form has been submitted."
}

func (s *Site) loggedIn(r *http.Request) bool {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[c.Value]
	return ok
}

// render writes page name, consuming any pending flash.
func (s *Site) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	v := view{Flash: popFlash(w, r), Data: data}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.pages[name].ExecuteTemplate(w, "layout", v); err != nil {
		logger.Error(r.Context(), "render page", zap.String("page", name), zap.Error(err))
	}
}

func redirectWithFlash(w http.ResponseWriter, r *http.Request, to string, f Flash) {
	v := url.Values{"kind": {f.Kind}, "msg": {f.Message}}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: v.Encode(), Path: "/", HttpOnly: true})
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// popFlash reads the pending flash and expires its cookie.
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1})

	v, err := url.ParseQuery(c.Value)
	if err != nil || v.Get("msg") == "" {
		return nil
	}

	return &Flash{Kind: v.Get("kind"), Message: v.Get("msg")}
}
