package question

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// memStore is an in-memory stand-in for the generated queries.
type memStore struct {
	mu         sync.Mutex
	questions  []sqlcgen.Question
	categories []sqlcgen.Category
	nextID     int32

	listErr   error
	insertErr error
	deleteErr error
	lastList  sqlcgen.ListQuestionsParams
}

func newMemStore() *memStore {
	return &memStore{
		categories: []sqlcgen.Category{
			{ID: 1, Type: "Science"},
			{ID: 2, Type: "Art"},
			{ID: 3, Type: "Geography"},
		},
		nextID: 100,
	}
}

func (m *memStore) add(id int32, category int32, text string) {
	m.questions = append(m.questions, sqlcgen.Question{
		ID:         id,
		Question:   text,
		Answer:     "answer",
		Category:   category,
		Difficulty: 1,
	})
}

func (m *memStore) ListQuestions(_ context.Context, arg sqlcgen.ListQuestionsParams) ([]sqlcgen.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastList = arg
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []sqlcgen.Question{}
	for _, q := range m.questions {
		if arg.CategoryID.Valid && q.Category != arg.CategoryID.Int32 {
			continue
		}
		if arg.Pattern.Valid && !matchPattern(arg.Pattern.String, q.Question) {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

// matchPattern evaluates the "%term%" ILIKE patterns built by SearchPattern.
func matchPattern(pattern, text string) bool {
	term := strings.TrimSuffix(strings.TrimPrefix(pattern, "%"), "%")
	var b strings.Builder
	escaped := false
	for _, r := range term {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(b.String()))
}

func (m *memStore) GetQuestion(_ context.Context, id int32) (sqlcgen.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range m.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return sqlcgen.Question{}, pgx.ErrNoRows
}

func (m *memStore) InsertQuestion(_ context.Context, arg sqlcgen.InsertQuestionParams) (sqlcgen.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return sqlcgen.Question{}, m.insertErr
	}
	m.nextID++
	q := sqlcgen.Question{
		ID:         m.nextID,
		Question:   arg.Question,
		Answer:     arg.Answer,
		Category:   arg.Category,
		Difficulty: arg.Difficulty,
	}
	m.questions = append(m.questions, q)
	return q, nil
}

func (m *memStore) DeleteQuestion(_ context.Context, id int32) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	for i, q := range m.questions {
		if q.ID == id {
			m.questions = append(m.questions[:i], m.questions[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memStore) ListCategories(context.Context) ([]sqlcgen.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sqlcgen.Category(nil), m.categories...), nil
}

func (m *memStore) GetCategoryByID(_ context.Context, id int32) (sqlcgen.Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return sqlcgen.Category{}, pgx.ErrNoRows
}

func (m *memStore) GetCategoryByType(_ context.Context, categoryType string) (sqlcgen.Category, error) {
	for _, c := range m.categories {
		if c.Type == categoryType {
			return c, nil
		}
	}
	return sqlcgen.Category{}, pgx.ErrNoRows
}

// fakeCache records cache traffic in memory.
type fakeCache struct {
	categories []Category
	ok         bool
	getErr     error
	sets       int
}

func (c *fakeCache) Get(context.Context) ([]Category, bool, error) {
	return c.categories, c.ok, c.getErr
}

func (c *fakeCache) Set(_ context.Context, categories []Category) error {
	c.categories = categories
	c.ok = true
	c.sets++
	return nil
}

// sequence returns the given indexes in order, repeating the last one.
func sequence(indexes ...int) IndexFunc {
	var mu sync.Mutex
	i := 0
	return func(int) int {
		mu.Lock()
		defer mu.Unlock()
		v := indexes[min(i, len(indexes)-1)]
		i++
		return v
	}
}

func newTestService(t *testing.T, store *memStore, opts ServiceOptions) *Service {
	t.Helper()
	return NewService(
		repository.NewQuestionRepository(store),
		repository.NewCategoryRepository(store),
		nil,
		zerolog.Nop(),
		opts,
	)
}

// seededStore holds 15 questions: ids 1-5 in category 2, 6-12 in category 1 and 13-15 in
// category 3.
func seededStore() *memStore {
	store := newMemStore()
	for id := int32(1); id <= 15; id++ {
		category := int32(1)
		switch {
		case id <= 5:
			category = 2
		case id >= 13:
			category = 3
		}
		store.add(id, category, "Question number "+string(rune('A'+id-1)))
	}
	return store
}

var errBoom = errors.New("boom")
