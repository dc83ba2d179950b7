package question

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	quizSelections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "quiz_selections_total",
		Help:      "Quiz draws by outcome (question or end).",
	}, []string{"outcome"})

	quizRedraws = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "quiz_redraws_total",
		Help:      "Rejected draws that hit an already asked question.",
	})

	quizDrawFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "quiz_draw_fallbacks_total",
		Help:      "Draws that exhausted the attempt cap and picked from the unseen list.",
	})

	categoryCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "category_cache_requests_total",
		Help:      "Category cache lookups by result (hit, miss, error).",
	}, []string{"result"})
)
