package server

import (
	"bytes"
	"context"
	"crypto/subtle"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	termmeta "github.com/goliatone/go-termmeta"
	"github.com/goliatone/go-termmeta/pkg/access"
	"github.com/goliatone/go-termmeta/pkg/choices"
	"github.com/goliatone/go-termmeta/pkg/field"
	"github.com/goliatone/go-termmeta/pkg/hooks"
	"github.com/goliatone/go-termmeta/pkg/render"
	"github.com/goliatone/go-termmeta/pkg/render/template/gotemplate"
	"github.com/goliatone/go-termmeta/pkg/save"
	"github.com/goliatone/go-termmeta/pkg/schema"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const pageTemplate = "templates/page"

// Default identity headers.
const (
	DefaultActorHeader = "X-Termmeta-Actor"
	DefaultRolesHeader = "X-Termmeta-Roles"
)

// Option configures the server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIdentityHeaders names the headers carrying the actor id and its
// comma separated roles.
func WithIdentityHeaders(actor, roles string) Option {
	return func(s *Server) {
		if actor != "" {
			s.actorHeader = actor
		}
		if roles != "" {
			s.rolesHeader = roles
		}
	}
}

// WithTermIDs sets the allocator used for newly created terms.
func WithTermIDs(next func() int64) Option {
	return func(s *Server) {
		if next != nil {
			s.nextTermID = next
		}
	}
}

// WithChoices serves searches over the named option sources at
// /options/{name}.
func WithChoices(registry *choices.Registry) Option {
	return func(s *Server) {
		s.choices = registry
	}
}

// NonceFunc issues the request token embedded in term screens. Submissions
// must post back the token issued for the same request identity.
type NonceFunc func(r *http.Request) string

// WithNonce embeds a token hidden field in the term screens and rejects
// form submissions that do not return it.
func WithNonce(fn NonceFunc) Option {
	return func(s *Server) {
		s.nonce = fn
	}
}

// WithVersion sets the version reported in the OpenAPI document.
func WithVersion(version string) Option {
	return func(s *Server) {
		if version != "" {
			s.version = version
		}
	}
}

// Server is a minimal term admin host: it fires the screen and lifecycle
// hooks the taxonomies attach to and exposes term meta as JSON.
type Server struct {
	manager     *termmeta.Manager
	bus         *hooks.Bus
	pages       *gotemplate.Engine
	logger      *zap.Logger
	actorHeader string
	rolesHeader string
	version     string
	nextTermID  func() int64
	choices     *choices.Registry
	nonce       NonceFunc
	router      chi.Router
}

// New attaches every registered taxonomy to a fresh hook bus and builds the
// router.
func New(manager *termmeta.Manager, opts ...Option) (*Server, error) {
	if manager == nil {
		return nil, errors.New("server: manager is required")
	}
	var counter atomic.Int64
	s := &Server{
		manager:     manager,
		bus:         hooks.NewBus(),
		logger:      zap.NewNop(),
		actorHeader: DefaultActorHeader,
		rolesHeader: DefaultRolesHeader,
		version:     "dev",
		nextTermID:  func() int64 { return counter.Add(1) },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	pages, err := gotemplate.New(gotemplate.WithFS(templateFS))
	if err != nil {
		return nil, fmt.Errorf("server: page engine: %w", err)
	}
	s.pages = pages

	for _, name := range manager.Fields().Taxonomies() {
		tax, _ := manager.Taxonomy(name)
		if err := tax.Attach(s.bus); err != nil {
			return nil, fmt.Errorf("server: attach %s: %w", name, err)
		}
	}

	s.router = s.routes()
	return s, nil
}

// Bus exposes the hook bus so hosts can attach additional hooks.
func (s *Server) Bus() *hooks.Bus { return s.bus }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(loggingMiddleware(s.logger))
	r.Use(actorMiddleware(s.actorHeader, s.rolesHeader))

	r.Get("/openapi.json", s.handleOpenAPI)
	r.Get("/taxonomies", s.handleTaxonomies)
	if s.choices != nil {
		r.Method(http.MethodGet, "/options/{name}", choices.Handler(s.choices,
			func(r *http.Request) string { return chi.URLParam(r, "name") },
			choices.WithGuard(s.requireEditor),
		))
	}
	r.Route("/taxonomies/{taxonomy}", func(r chi.Router) {
		r.Use(s.requireTaxonomy)
		r.Get("/fields", s.handleFields)
		r.Get("/terms/new", s.handleAddScreen)
		r.Post("/terms", s.handleCreate)
		r.Get("/terms/{id}/edit", s.handleEditScreen)
		r.Post("/terms/{id}", s.handleUpdate)
		r.Get("/terms/{id}/meta", s.handleGetMeta)
		r.Put("/terms/{id}/meta", s.handlePutMeta)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("term meta server listening", zap.String("addr", addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("term meta server shutting down")
		return httpServer.Shutdown(shutdownCtx)
	}
}

// requireEditor admits actors allowed to manage terms.
func (s *Server) requireEditor(r *http.Request) error {
	if s.manager.Can(r.Context(), field.DefaultCapability) {
		return nil
	}
	if _, ok := access.ActorFrom(r.Context()); !ok {
		return choices.StatusError{Code: http.StatusUnauthorized}
	}
	return choices.StatusError{Code: http.StatusForbidden}
}

type taxonomyKey struct{}

func (s *Server) requireTaxonomy(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tax, ok := s.manager.Taxonomy(chi.URLParam(r, "taxonomy"))
		if !ok {
			writeError(w, http.StatusNotFound, "unknown taxonomy")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), taxonomyKey{}, tax)))
	})
}

func taxonomyFrom(r *http.Request) *termmeta.Taxonomy {
	tax, _ := r.Context().Value(taxonomyKey{}).(*termmeta.Taxonomy)
	return tax
}

func termID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid term id %q", chi.URLParam(r, "id"))
	}
	return id, nil
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, schema.Document(s.manager.Fields(), "Term meta", s.version))
}

func (s *Server) handleTaxonomies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"taxonomies": s.manager.Fields().Taxonomies()})
}

type fieldResponse struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Default     string `json:"default,omitempty"`
	Capability  string `json:"capability"`
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	tax := taxonomyFrom(r)
	out := make([]fieldResponse, 0)
	for _, cfg := range tax.Fields() {
		if !s.manager.Can(r.Context(), cfg.Capability) {
			continue
		}
		out = append(out, fieldResponse{
			Key:         cfg.Key,
			Label:       cfg.Label,
			Type:        cfg.Type().String(),
			Description: cfg.Description,
			Default:     cfg.Default,
			Capability:  cfg.Capability,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"taxonomy": tax.Name(), "fields": out})
}

func (s *Server) handleAddScreen(w http.ResponseWriter, r *http.Request) {
	tax := taxonomyFrom(r)
	s.renderScreen(w, r, tax, hooks.AddFormEvent(tax.Name()), 0)
}

func (s *Server) handleEditScreen(w http.ResponseWriter, r *http.Request) {
	id, err := termID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tax := taxonomyFrom(r)
	s.renderScreen(w, r, tax, hooks.EditFormEvent(tax.Name()), id)
}

func (s *Server) renderScreen(w http.ResponseWriter, r *http.Request, tax *termmeta.Taxonomy, event string, id int64) {
	var fields bytes.Buffer
	if err := s.bus.RunForm(r.Context(), event, &fields, id); err != nil {
		s.logger.Error("form hooks failed", zap.String("event", event), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not render term screen")
		return
	}

	data := map[string]any{
		"taxonomy": tax.Name(),
		"fields":   fields.String(),
		"mode":     "add",
		"title":    "Add New " + tax.Name(),
		"action":   "/taxonomies/" + tax.Name() + "/terms",
		"form_id":  "addtag",
		"submit":   "Add New",
		"term_id":  "",
		"hidden":   []render.HiddenField{},
	}
	if s.nonce != nil {
		data["hidden"] = []render.HiddenField{render.NonceField(s.nonce(r))}
	}
	if id > 0 {
		data["mode"] = "edit"
		data["title"] = "Edit " + tax.Name()
		data["action"] = "/taxonomies/" + tax.Name() + "/terms/" + strconv.FormatInt(id, 10)
		data["form_id"] = "edittag"
		data["submit"] = "Update"
		data["term_id"] = strconv.FormatInt(id, 10)
	}

	page, err := s.pages.RenderTemplate(pageTemplate, data)
	if err != nil {
		s.logger.Error("page render failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not render term screen")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}

// checkNonce reports whether a parsed form carries the expected token.
func (s *Server) checkNonce(w http.ResponseWriter, r *http.Request) bool {
	if s.nonce == nil {
		return true
	}
	want := s.nonce(r)
	if want != "" && subtle.ConstantTimeCompare([]byte(r.PostForm.Get(render.HiddenNonce)), []byte(want)) == 1 {
		return true
	}
	writeError(w, http.StatusForbidden, "invalid or missing form token")
	return false
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form submission")
		return
	}
	if !s.checkNonce(w, r) {
		return
	}
	tax := taxonomyFrom(r)
	id := s.nextTermID()
	if err := s.bus.RunSave(r.Context(), hooks.CreatedEvent(tax.Name()), id, save.Values(r.PostForm)); err != nil {
		s.logger.Warn("save hooks failed", zap.Int64("term_id", id), zap.Error(err))
	}
	http.Redirect(w, r, "/taxonomies/"+tax.Name()+"/terms/"+strconv.FormatInt(id, 10)+"/edit", http.StatusSeeOther)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := termID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form submission")
		return
	}
	if !s.checkNonce(w, r) {
		return
	}
	tax := taxonomyFrom(r)
	if err := s.bus.RunSave(r.Context(), hooks.EditedEvent(tax.Name()), id, save.Values(r.PostForm)); err != nil {
		s.logger.Warn("save hooks failed", zap.Int64("term_id", id), zap.Error(err))
	}
	http.Redirect(w, r, "/taxonomies/"+tax.Name()+"/terms/"+strconv.FormatInt(id, 10)+"/edit", http.StatusSeeOther)
}

func (s *Server) handleGetMeta(w http.ResponseWriter, r *http.Request) {
	id, err := termID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tax := taxonomyFrom(r)
	values := make(map[string]string)
	for _, cfg := range tax.Fields() {
		if !s.manager.Can(r.Context(), cfg.Capability) {
			continue
		}
		value, err := s.manager.GetFieldValue(r.Context(), id, cfg.Key, tax.Name())
		if err != nil {
			s.logger.Error("meta read failed", zap.Int64("term_id", id), zap.String("key", cfg.Key), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not read term meta")
			return
		}
		values[cfg.Key] = value
	}
	writeJSON(w, http.StatusOK, values)
}

type saveResponse struct {
	Updated []string          `json:"updated"`
	Deleted []string          `json:"deleted"`
	Skipped []string          `json:"skipped"`
	Failed  map[string]string `json:"failed,omitempty"`
}

func (s *Server) handlePutMeta(w http.ResponseWriter, r *http.Request) {
	id, err := termID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tax := taxonomyFrom(r)

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := schema.Validate(r.Context(), tax.Fields(), payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sub := make(save.Map, len(payload))
	for key, value := range payload {
		if str, ok := value.(string); ok {
			sub[key] = str
		}
	}
	result := tax.Save(r.Context(), id, sub)

	resp := saveResponse{
		Updated: orEmpty(result.Updated),
		Deleted: orEmpty(result.Deleted),
		Skipped: orEmpty(result.Skipped),
	}
	status := http.StatusOK
	if len(result.Failed) > 0 {
		resp.Failed = make(map[string]string, len(result.Failed))
		for key, err := range result.Failed {
			resp.Failed[key] = err.Error()
		}
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, resp)
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
