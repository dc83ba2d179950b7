package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

type questionStore interface {
	ListQuestions(ctx context.Context, arg sqlcgen.ListQuestionsParams) ([]sqlcgen.Question, error)
	GetQuestion(ctx context.Context, id int32) (sqlcgen.Question, error)
	InsertQuestion(ctx context.Context, arg sqlcgen.InsertQuestionParams) (sqlcgen.Question, error)
	DeleteQuestion(ctx context.Context, id int32) (int64, error)
}

// QuestionRepository wraps the question queries and normalizes missing rows.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// List returns questions matching params ordered by id.
func (r *QuestionRepository) List(ctx context.Context, params sqlcgen.ListQuestionsParams) ([]sqlcgen.Question, error) {
	rows, err := r.store.ListQuestions(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return rows, nil
}

// Get fetches a single question, returning ErrNotFound when absent.
func (r *QuestionRepository) Get(ctx context.Context, id int32) (sqlcgen.Question, error) {
	row, err := r.store.GetQuestion(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return sqlcgen.Question{}, ErrNotFound
	}
	if err != nil {
		return sqlcgen.Question{}, fmt.Errorf("get question %d: %w", id, err)
	}
	return row, nil
}

// Insert stores a new question and returns it with its assigned id.
func (r *QuestionRepository) Insert(ctx context.Context, params sqlcgen.InsertQuestionParams) (sqlcgen.Question, error) {
	row, err := r.store.InsertQuestion(ctx, params)
	if err != nil {
		return sqlcgen.Question{}, fmt.Errorf("insert question: %w", err)
	}
	return row, nil
}

// Delete removes a question. A delete that touches no row reports ErrNotFound.
func (r *QuestionRepository) Delete(ctx context.Context, id int32) error {
	n, err := r.store.DeleteQuestion(ctx, id)
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
