package sqlcgen

import (
	"context"
)

const listCategories = `SELECT id, type FROM categories ORDER BY id`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.Query(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Category
	for rows.Next() {
		var i Category
		if err := rows.Scan(&i.ID, &i.Type); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getCategoryByID = `SELECT id, type FROM categories WHERE id = $1`

func (q *Queries) GetCategoryByID(ctx context.Context, id int32) (Category, error) {
	row := q.db.QueryRow(ctx, getCategoryByID, id)
	var i Category
	err := row.Scan(&i.ID, &i.Type)
	return i, err
}

const getCategoryByType = `SELECT id, type FROM categories WHERE type = $1 ORDER BY id LIMIT 1`

func (q *Queries) GetCategoryByType(ctx context.Context, categoryType string) (Category, error) {
	row := q.db.QueryRow(ctx, getCategoryByType, categoryType)
	var i Category
	err := row.Scan(&i.ID, &i.Type)
	return i, err
}
