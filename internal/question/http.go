package question

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandler exposes the question bank and quiz endpoints.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a question HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "question_http").Logger(),
	}
}

// ListCategories handles GET /categories.
func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if len(categories) == 0 {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"categories":       categories,
		"total_categories": len(categories),
	})
}

// ListQuestions handles GET /questions?page=N&category=ID.
func (h *HTTPHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := ListRequest{Page: PageFromQuery(query.Get("page"))}
	if query.Has("category") {
		id, err := strconv.Atoi(query.Get("category"))
		if err != nil {
			h.respondError(w, r, unresolvable("category %q is not an id", query.Get("category")))
			return
		}
		req.CategoryID = &id
	}

	page, err := h.svc.ListQuestions(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if len(page.Questions) == 0 {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound)
		return
	}

	var current any
	if page.CurrentCategory != nil {
		current = page.CurrentCategory.Type
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"questions":        page.Questions,
		"total_questions":  len(page.Questions),
		"current_category": current,
		"categories":       page.Categories,
	})
}

// PostQuestions handles POST /questions, which is a search when the body carries a non-empty
// search term and a create otherwise.
func (h *HTTPHandler) PostQuestions(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(r.Body)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	page := PageFromQuery(r.URL.Query().Get("page"))

	term, label, isSearch, err := decodeSearch(b)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if isSearch {
		h.search(w, r, SearchRequest{Term: term, CategoryLabel: label, Page: page})
		return
	}

	q, err := decodeNewQuestion(b)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	result, err := h.svc.CreateQuestion(r.Context(), q, page)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"added":           result.ID,
		"questions":       result.Questions,
		"total_questions": len(result.Questions),
	})
}

func (h *HTTPHandler) search(w http.ResponseWriter, r *http.Request, req SearchRequest) {
	result, err := h.svc.SearchQuestions(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	var current any
	if result.CategoryID != nil {
		current = *result.CategoryID
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"search_term":      result.Term,
		"questions":        result.Questions,
		"total_questions":  len(result.Questions),
		"current_category": current,
	})
}

// DeleteQuestion handles DELETE /questions/{id}.
func (h *HTTPHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound)
		return
	}
	result, err := h.svc.DeleteQuestion(r.Context(), id, PageFromQuery(r.URL.Query().Get("page")))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"deleted":         result.ID,
		"questions":       result.Questions,
		"total_questions": len(result.Questions),
	})
}

// NextQuizQuestion handles POST /quizzes.
func (h *HTTPHandler) NextQuizQuestion(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(r.Body)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	req, err := decodeQuizRequest(b)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	outcome, err := h.svc.NextQuestion(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"question":  outcome.Question,
		"force_end": outcome.End,
	})
}

func (h *HTTPHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	logger := h.logger
	if reqLogger := logging.FromContext(r.Context()); reqLogger.GetLevel() != zerolog.Disabled {
		logger = reqLogger.With().Str("component", "question_http").Logger()
	}
	switch KindOf(err) {
	case KindMalformedRequest:
		logger.Debug().Err(err).Msg("malformed request")
		httperrors.RespondBadRequest(w, httperrors.ErrCodeMissingField)
	case KindUnresolvableReference:
		logger.Debug().Err(err).Msg("unresolvable reference")
		httperrors.RespondBadRequest(w, httperrors.ErrCodeUnknownCategory)
	case KindUnprocessableInput:
		logger.Debug().Err(err).Msg("unprocessable input")
		httperrors.RespondUnprocessable(w, httperrors.ErrCodeUnprocessable)
	case KindNotFound:
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound)
	default:
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		httperrors.RespondInternalError(w, httperrors.ErrCodeInternalError)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
