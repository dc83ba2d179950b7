package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]sqlcgen.Category, error)
	GetCategoryByID(ctx context.Context, id int32) (sqlcgen.Category, error)
	GetCategoryByType(ctx context.Context, categoryType string) (sqlcgen.Category, error)
}

// CategoryRepository exposes read-only category lookups.
type CategoryRepository struct {
	store categoryStore
}

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// List returns every category ordered by id.
func (r *CategoryRepository) List(ctx context.Context) ([]sqlcgen.Category, error) {
	rows, err := r.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return rows, nil
}

// GetByID resolves a category id, returning ErrNotFound when absent.
func (r *CategoryRepository) GetByID(ctx context.Context, id int32) (sqlcgen.Category, error) {
	row, err := r.store.GetCategoryByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return sqlcgen.Category{}, ErrNotFound
	}
	if err != nil {
		return sqlcgen.Category{}, fmt.Errorf("get category %d: %w", id, err)
	}
	return row, nil
}

// GetByType resolves a category by its label.
func (r *CategoryRepository) GetByType(ctx context.Context, categoryType string) (sqlcgen.Category, error) {
	row, err := r.store.GetCategoryByType(ctx, categoryType)
	if errors.Is(err, pgx.ErrNoRows) {
		return sqlcgen.Category{}, ErrNotFound
	}
	if err != nil {
		return sqlcgen.Category{}, fmt.Errorf("get category %q: %w", categoryType, err)
	}
	return row, nil
}
