package question

import (
	"math/rand"
)

// DefaultMaxDrawAttempts bounds the rejection-sampling loop before falling back to an
// explicit draw over the unseen questions.
const DefaultMaxDrawAttempts = 1000

// IndexSource yields indexes in [0, bound). Implementations must be safe for concurrent use
// when shared across requests.
type IndexSource interface {
	NextIndex(bound int) int
}

// IndexFunc adapts a function to IndexSource.
type IndexFunc func(bound int) int

func (f IndexFunc) NextIndex(bound int) int {
	return f(bound)
}

// RandomIndex draws from the math/rand global generator.
type RandomIndex struct{}

func (RandomIndex) NextIndex(bound int) int {
	return rand.Intn(bound)
}

// Selector picks the next unseen question of a quiz round.
type Selector struct {
	source      IndexSource
	maxAttempts int
}

func NewSelector(source IndexSource, maxAttempts int) *Selector {
	if source == nil {
		source = RandomIndex{}
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxDrawAttempts
	}
	return &Selector{source: source, maxAttempts: maxAttempts}
}

// Next draws uniformly among the pool questions whose ids are not in previous. It returns an
// End outcome when the pool is empty or every pool question has already been asked.
func (s *Selector) Next(pool []Question, previous map[int]struct{}) Outcome {
	unseen := 0
	for _, q := range pool {
		if _, asked := previous[q.ID]; !asked {
			unseen++
		}
	}
	if unseen == 0 {
		return Outcome{End: true}
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		q := pool[s.index(len(pool))]
		if _, asked := previous[q.ID]; !asked {
			return Outcome{Question: &q}
		}
		quizRedraws.Inc()
	}

	quizDrawFallbacks.Inc()
	remaining := make([]Question, 0, unseen)
	for _, q := range pool {
		if _, asked := previous[q.ID]; !asked {
			remaining = append(remaining, q)
		}
	}
	q := remaining[s.index(len(remaining))]
	return Outcome{Question: &q}
}

// index folds whatever the source returns into [0, bound).
func (s *Selector) index(bound int) int {
	i := s.source.NextIndex(bound) % bound
	if i < 0 {
		i += bound
	}
	return i
}
