package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	analyticsapp "salesboard/internal/analytics/application"
	exportapp "salesboard/internal/export/application"
	exportdomain "salesboard/internal/export/domain"
	shareddomain "salesboard/internal/shared/domain"
	sharedinfra "salesboard/internal/shared/infrastructure"
)

// Vues du tableau de bord
const (
	ViewEcommerce = "ecommerce"
	ViewStands    = "stands"
)

// Handler contient les dépendances des handlers HTTP
type Handler struct {
	dashboard *analyticsapp.DashboardService
	exports   *exportapp.ExportService
	gate      *AccessGate
	logger    *log.Logger
	now       func() time.Time
}

// New crée les handlers HTTP
func New(
	dashboard *analyticsapp.DashboardService,
	exports *exportapp.ExportService,
	gate *AccessGate,
	logger *log.Logger,
) *Handler {
	return &Handler{
		dashboard: dashboard,
		exports:   exports,
		gate:      gate,
		logger:    logger.WithPrefix("http"),
		now:       time.Now,
	}
}

// Router câble les routes HTTP
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)
	r.Get("/login", h.loginForm)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)

	r.Group(func(pr chi.Router) {
		pr.Use(h.sessionMiddleware)

		pr.Get("/", h.dashboardPage)

		pr.Route("/api", func(r chi.Router) {
			r.Get("/ecommerce", h.ecommerce)
			r.Get("/stands", h.stands)
			r.Get("/export", h.export)
			r.Post("/cache/invalidate", h.invalidateCache)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ============================================================================
// ACCÈS
// ============================================================================

func (h *Handler) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.gate.Authenticated(r) {
			next.ServeHTTP(w, r)
			return
		}
		if strings.HasPrefix(r.URL.Path, "/api/") {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})
}

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	if h.gate.Authenticated(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderLogin(w, http.StatusOK, "")
}

type loginRequest struct {
	Code string `json:"code"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	isJSON := strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")

	var code string
	if isJSON {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		code = req.Code
	} else {
		code = r.FormValue("code")
	}

	if err := h.gate.Check(code); err != nil {
		h.logger.Warn("access denied", "remote", r.RemoteAddr)
		if isJSON {
			respondError(w, http.StatusUnauthorized, "invalid access code")
			return
		}
		h.renderLogin(w, http.StatusUnauthorized, "Código de acceso incorrecto")
		return
	}

	token, err := h.gate.IssueToken()
	if err != nil {
		h.logger.Error("issue session token", "err", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	http.SetCookie(w, h.gate.sessionCookie(token))

	if isJSON {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, expiredSessionCookie())
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ============================================================================
// VUES
// ============================================================================

// dateRange lit start/end (YYYY-MM-DD). Les bornes absentes viennent de days
// (les N derniers jours) si présent, sinon du 1er du mois à aujourd'hui.
func (h *Handler) dateRange(r *http.Request) (shareddomain.DateRange, error) {
	q := r.URL.Query()

	fallback := shareddomain.DefaultDateRange(h.now())
	if raw := q.Get("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return shareddomain.DateRange{}, fmt.Errorf("%w: days %q", shareddomain.ErrInvalidDateRange, raw)
		}
		if fallback, err = shareddomain.NewDateRangeFromDays(days, h.now()); err != nil {
			return shareddomain.DateRange{}, err
		}
	}
	return shareddomain.ParseDateRange(q.Get("start"), q.Get("end"), fallback)
}

func (h *Handler) ecommerce(w http.ResponseWriter, r *http.Request) {
	dr, err := h.dateRange(r)
	if err != nil {
		h.respondFailure(w, err)
		return
	}
	view, err := h.dashboard.Ecommerce(dr)
	if err != nil {
		h.respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handler) stands(w http.ResponseWriter, r *http.Request) {
	dr, err := h.dateRange(r)
	if err != nil {
		h.respondFailure(w, err)
		return
	}
	view, err := h.dashboard.Stands(dr)
	if err != nil {
		h.respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handler) dashboardPage(w http.ResponseWriter, r *http.Request) {
	page := dashboardPage{View: r.URL.Query().Get("view")}
	if page.View != ViewStands {
		page.View = ViewEcommerce
	}

	dr, err := h.dateRange(r)
	if err != nil {
		page.Error = err.Error()
		h.renderDashboard(w, statusFor(err), page)
		return
	}
	page.Start = dr.Start().Format(shareddomain.DateLayout)
	page.End = dr.End().Format(shareddomain.DateLayout)

	if page.View == ViewStands {
		page.Stands, err = h.dashboard.Stands(dr)
	} else {
		page.Ecommerce, err = h.dashboard.Ecommerce(dr)
	}
	if err != nil {
		page.Error = messageFor(err)
		h.renderDashboard(w, statusFor(err), page)
		return
	}
	h.renderDashboard(w, http.StatusOK, page)
}

// ============================================================================
// EXPORT & CACHE
// ============================================================================

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	dr, err := h.dateRange(r)
	if err != nil {
		h.respondFailure(w, err)
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = string(exportdomain.ExportFormatCSV)
	}
	job, err := exportdomain.NewExportJob(q.Get("view"), q.Get("report"), format, dr, h.now())
	if err != nil {
		h.respondFailure(w, err)
		return
	}

	// rapport encodé en mémoire: une erreur peut encore changer le statut
	var buf bytes.Buffer
	if err := h.exports.Export(job, &buf); err != nil {
		h.respondFailure(w, err)
		return
	}

	w.Header().Set("Content-Type", job.Format().ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename="+job.Filename())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

func (h *Handler) invalidateCache(w http.ResponseWriter, r *http.Request) {
	path := r.FormValue("path")
	if path == "" {
		h.dashboard.ClearCache()
		respondJSON(w, http.StatusOK, map[string]interface{}{"cleared": true, "entries": h.dashboard.CachedEntries()})
		return
	}
	removed := h.dashboard.Invalidate(path)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"path":    path,
		"removed": removed,
		"entries": h.dashboard.CachedEntries(),
	})
}

// ============================================================================
// RÉPONSES
// ============================================================================

// statusFor associe une erreur applicative à un statut HTTP
func statusFor(err error) int {
	switch {
	case errors.Is(err, sharedinfra.ErrSourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, shareddomain.ErrInvalidDateRange),
		errors.Is(err, exportdomain.ErrInvalidView),
		errors.Is(err, exportdomain.ErrInvalidReport),
		errors.Is(err, exportdomain.ErrInvalidFormat),
		errors.Is(err, exportdomain.ErrUnsupportedReport):
		return http.StatusBadRequest
	case errors.Is(err, ErrAccessDenied):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(err error) string {
	if statusFor(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}

func (h *Handler) respondFailure(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "err", err)
	} else {
		h.logger.Debug("request rejected", "status", status, "err", err)
	}
	respondError(w, status, messageFor(err))
}

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
