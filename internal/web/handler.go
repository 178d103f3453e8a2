// Package web serves the HTML pages.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/actuallystonmai/movie-reviews/internal/domain"
	"github.com/actuallystonmai/movie-reviews/internal/render"
	"github.com/actuallystonmai/movie-reviews/internal/session"
	"github.com/actuallystonmai/movie-reviews/internal/view"
)

const reviewSubmittedFlash = "Thanks! Your review was submitted."

// MovieAPI is the slice of the REST API the pages use.
type MovieAPI interface {
	view.MovieLister
	view.DetailFetcher
	view.ReviewSubmitter
}

type Handler struct {
	api      MovieAPI
	renderer *render.Renderer
	sessions *session.Store
	log      *slog.Logger
}

func NewHandler(api MovieAPI, renderer *render.Renderer, sessions *session.Store, log *slog.Logger) *Handler {
	return &Handler{
		api:      api,
		renderer: renderer,
		sessions: sessions,
		log:      log,
	}
}

// GET /
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	state := view.LoadList(r.Context(), h.api, r.URL.Query().Get("q"))
	h.log.DebugContext(r.Context(), "list view settled",
		"phase", state.Phase, "source", state.Source, "movies", len(state.Movies))

	page := render.ListPage{State: state, Flash: h.popFlash(w, r)}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.List(w, page); err != nil {
		h.renderError(w, r, err)
	}
}

// GET /movie/{movieID}
func (h *Handler) MovieDetail(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieID")

	state := view.LoadDetail(r.Context(), h.api, movieID)

	draft, ok, err := h.sessions.TakeDraft(w, r, movieID)
	if err != nil {
		h.log.WarnContext(r.Context(), "review draft unavailable", "movie_id", movieID, "error", err)
	}
	if ok {
		state.Form = view.ReviewForm{Rating: draft.Rating, Message: draft.Message}
	}

	page := render.DetailPage{State: state, Flash: h.popFlash(w, r)}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Detail(w, page); err != nil {
		h.renderError(w, r, err)
	}
}

// POST /movie/{movieID}/review
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieID")
	if err := r.ParseForm(); err != nil {
		h.log.WarnContext(r.Context(), "unreadable review form", "movie_id", movieID, "error", err)
	}

	form := view.ReviewForm{
		Rating:  parseStars(r.PostFormValue("rating")),
		Message: r.PostFormValue("review_msg"),
	}

	form, err := view.SubmitReview(r.Context(), h.api, movieID, form)
	if err != nil {
		h.saveDraft(w, r, movieID, form)
	} else {
		h.log.InfoContext(r.Context(), "review submitted", "movie_id", movieID)
		if err := h.sessions.ClearDraft(w, r, movieID); err != nil {
			h.log.WarnContext(r.Context(), "clear review draft", "movie_id", movieID, "error", err)
		}
		if err := h.sessions.AddFlash(w, r, reviewSubmittedFlash); err != nil {
			h.log.WarnContext(r.Context(), "add flash", "error", err)
		}
	}

	http.Redirect(w, r, "/movie/"+url.PathEscape(movieID), http.StatusSeeOther)
}

func (h *Handler) saveDraft(w http.ResponseWriter, r *http.Request, movieID string, form view.ReviewForm) {
	err := h.sessions.SaveDraft(w, r, movieID, session.Draft{Rating: form.Rating, Message: form.Message})
	if err != nil {
		h.log.WarnContext(r.Context(), "save review draft", "movie_id", movieID, "error", err)
	}
}

func (h *Handler) popFlash(w http.ResponseWriter, r *http.Request) string {
	msg, err := h.sessions.Flash(w, r)
	if err != nil {
		h.log.WarnContext(r.Context(), "flash unavailable", "error", err)
	}
	return msg
}

// renderError reports a template failure. The renderer writes nothing on
// error, so the response is still clean.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	if !isCanceled(r.Context()) {
		h.log.ErrorContext(r.Context(), "render page", "path", r.URL.Path, "error", err)
	}
	http.Error(w, "Something went wrong rendering this page.", http.StatusInternalServerError)
}

// parseStars reads the widget rating; anything unparseable counts as 0.
func parseStars(raw string) float64 {
	stars, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return domain.HalfStep(stars)
}

func isCanceled(ctx context.Context) bool {
	return ctx.Err() != nil
}
