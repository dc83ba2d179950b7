package question

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// ServiceOptions tunes paging and quiz sampling.
type ServiceOptions struct {
	PageSize        int
	MaxDrawAttempts int
	IndexSource     IndexSource
}

// Service is the question selection engine: filtering, pagination, quiz draws and the thin
// create/delete mutations. It keeps no state between calls.
type Service struct {
	questions  *repository.QuestionRepository
	categories *repository.CategoryRepository
	cache      CategoryCache
	selector   *Selector
	pageSize   int
	logger     zerolog.Logger
}

// NewService wires the engine. cache may be nil to disable category caching.
func NewService(questions *repository.QuestionRepository, categories *repository.CategoryRepository, cache CategoryCache, logger zerolog.Logger, opts ServiceOptions) *Service {
	if cache == nil {
		cache = noCache{}
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		questions:  questions,
		categories: categories,
		cache:      cache,
		selector:   NewSelector(opts.IndexSource, opts.MaxDrawAttempts),
		pageSize:   pageSize,
		logger:     logger.With().Str("component", "question_service").Logger(),
	}
}

// ListCategories returns every category ordered by id, served from cache when possible.
func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	cached, ok, err := s.cache.Get(ctx)
	switch {
	case err != nil:
		categoryCacheRequests.WithLabelValues("error").Inc()
		s.logger.Warn().Err(err).Msg("category cache read failed")
	case ok:
		categoryCacheRequests.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		categoryCacheRequests.WithLabelValues("miss").Inc()
	}
	return s.RefreshCategories(ctx)
}

// RefreshCategories reloads categories from the store and repopulates the cache.
func (s *Service) RefreshCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, storeError("list categories", err)
	}
	categories := toCategories(rows)
	if err := s.cache.Set(ctx, categories); err != nil {
		s.logger.Warn().Err(err).Msg("category cache write failed")
	}
	return categories, nil
}

// ListQuestions returns one page of questions, optionally scoped to a category. An empty page
// is returned as-is; callers decide whether that is a not-found condition.
func (s *Service) ListQuestions(ctx context.Context, req ListRequest) (QuestionPage, error) {
	questions, current, err := s.FilterQuestions(ctx, Filter{CategoryID: req.CategoryID})
	if err != nil {
		return QuestionPage{}, err
	}
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}
	return QuestionPage{
		Questions:       Paginate(questions, req.Page, s.pageSize),
		CurrentCategory: current,
		Categories:      categories,
	}, nil
}

// SearchQuestions pages through questions whose text contains the term, ignoring case.
func (s *Service) SearchQuestions(ctx context.Context, req SearchRequest) (SearchResult, error) {
	if req.Term == "" {
		return SearchResult{}, malformed("search term is required")
	}
	questions, current, err := s.FilterQuestions(ctx, Filter{Search: req.Term, CategoryLabel: req.CategoryLabel})
	if err != nil {
		return SearchResult{}, err
	}
	result := SearchResult{
		Term:      req.Term,
		Questions: Paginate(questions, req.Page, s.pageSize),
	}
	if current != nil {
		id := current.ID
		result.CategoryID = &id
	}
	return result, nil
}

// CreateQuestion stores q and returns its id with the requested page of all questions.
func (s *Service) CreateQuestion(ctx context.Context, q NewQuestion, page int) (Mutation, error) {
	if strings.TrimSpace(q.Question) == "" {
		return Mutation{}, unprocessable("question text must not be empty")
	}
	if !fitsInt32(q.Category) || !fitsInt32(q.Difficulty) {
		return Mutation{}, unprocessable("category and difficulty must be 32-bit integers")
	}

	row, err := s.questions.Insert(ctx, sqlcgen.InsertQuestionParams{
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   int32(q.Category),
		Difficulty: int32(q.Difficulty),
	})
	if err != nil {
		return Mutation{}, storeError("insert question", err)
	}
	s.logger.Info().Int32("question_id", row.ID).Int32("category", row.Category).Msg("question created")

	questions, err := s.pageAll(ctx, page)
	if err != nil {
		return Mutation{}, err
	}
	return Mutation{ID: int(row.ID), Questions: questions}, nil
}

// DeleteQuestion removes question id and returns the requested page of the remaining questions.
func (s *Service) DeleteQuestion(ctx context.Context, id int, page int) (Mutation, error) {
	if id < 1 || id > math.MaxInt32 {
		return Mutation{}, notFound("question %d does not exist", id)
	}
	if _, err := s.questions.Get(ctx, int32(id)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Mutation{}, notFound("question %d does not exist", id)
		}
		return Mutation{}, newError(KindStoreFailure, "load question", err)
	}
	if err := s.questions.Delete(ctx, int32(id)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Mutation{}, notFound("question %d does not exist", id)
		}
		return Mutation{}, newError(KindStoreFailure, "delete question", err)
	}
	s.logger.Info().Int("question_id", id).Msg("question deleted")

	questions, err := s.pageAll(ctx, page)
	if err != nil {
		return Mutation{}, err
	}
	return Mutation{ID: id, Questions: questions}, nil
}

// NextQuestion draws one question of the requested category (AnyCategory for the whole bank)
// that is not among req.PreviousIDs, or ends the quiz when none is left.
func (s *Service) NextQuestion(ctx context.Context, req QuizRequest) (Outcome, error) {
	if req.QuestionsPerPlay < 0 {
		return Outcome{}, unprocessable("questions_per_play must not be negative")
	}

	var filter Filter
	if req.CategoryID != AnyCategory {
		id := req.CategoryID
		filter.CategoryID = &id
	}
	pool, _, err := s.FilterQuestions(ctx, filter)
	if err != nil {
		return Outcome{}, err
	}

	previous := make(map[int]struct{}, len(req.PreviousIDs))
	for _, id := range req.PreviousIDs {
		previous[id] = struct{}{}
	}

	outcome := s.selector.Next(pool, previous)
	event := s.logger.Debug().
		Int("category", req.CategoryID).
		Int("pool", len(pool)).
		Int("previous", len(previous)).
		Int("questions_per_play", req.QuestionsPerPlay)
	if outcome.End {
		quizSelections.WithLabelValues("end").Inc()
		event.Msg("quiz exhausted")
	} else {
		quizSelections.WithLabelValues("question").Inc()
		event.Int("question_id", outcome.Question.ID).Msg("quiz question drawn")
	}
	return outcome, nil
}

func (s *Service) pageAll(ctx context.Context, page int) ([]Question, error) {
	questions, _, err := s.FilterQuestions(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	return Paginate(questions, page, s.pageSize), nil
}

func fitsInt32(v int) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}
