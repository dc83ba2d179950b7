package question

import (
	"cmp"
	"context"
	"errors"
	"math"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// Filter narrows the question bank. Zero fields do not filter; set fields are combined.
type Filter struct {
	CategoryID    *int
	CategoryLabel string
	Search        string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchPattern turns a search term into an ILIKE pattern that matches it as a literal substring.
func SearchPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// FilterQuestions returns the questions selected by f ordered by id, together with the category
// the filter resolved to (nil when unscoped). Unknown category ids or labels are
// KindUnresolvableReference errors; an empty match is not an error.
func (s *Service) FilterQuestions(ctx context.Context, f Filter) ([]Question, *Category, error) {
	var current *Category
	if f.CategoryID != nil {
		cat, err := s.resolveCategoryID(ctx, *f.CategoryID)
		if err != nil {
			return nil, nil, err
		}
		current = &cat
	}
	if f.CategoryLabel != "" {
		cat, err := s.resolveCategoryLabel(ctx, f.CategoryLabel)
		if err != nil {
			return nil, nil, err
		}
		if current != nil && current.ID != cat.ID {
			return []Question{}, current, nil
		}
		current = &cat
	}

	var params sqlcgen.ListQuestionsParams
	if current != nil {
		params.CategoryID = pgtype.Int4{Int32: int32(current.ID), Valid: true}
	}
	if f.Search != "" {
		params.Pattern = pgtype.Text{String: SearchPattern(f.Search), Valid: true}
	}

	rows, err := s.questions.List(ctx, params)
	if err != nil {
		return nil, nil, storeError("list questions", err)
	}
	questions := toQuestions(rows)
	slices.SortFunc(questions, func(a, b Question) int { return cmp.Compare(a.ID, b.ID) })
	return questions, current, nil
}

func (s *Service) resolveCategoryID(ctx context.Context, id int) (Category, error) {
	if id < math.MinInt32 || id > math.MaxInt32 {
		return Category{}, unresolvable("category %d does not exist", id)
	}
	row, err := s.categories.GetByID(ctx, int32(id))
	if errors.Is(err, repository.ErrNotFound) {
		return Category{}, unresolvable("category %d does not exist", id)
	}
	if err != nil {
		return Category{}, storeError("resolve category", err)
	}
	return toCategory(row), nil
}

func (s *Service) resolveCategoryLabel(ctx context.Context, label string) (Category, error) {
	row, err := s.categories.GetByType(ctx, label)
	if errors.Is(err, repository.ErrNotFound) {
		return Category{}, unresolvable("category %q does not exist", label)
	}
	if err != nil {
		return Category{}, storeError("resolve category", err)
	}
	return toCategory(row), nil
}
