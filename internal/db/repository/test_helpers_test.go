package repository

import (
	"github.com/jackc/pgx/v5/pgtype"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

func int4(v int32) pgtype.Int4 {
	return pgtype.Int4{Int32: v, Valid: true}
}

func sqlQuestion(id int32, category int32) sqlcgen.Question {
	return sqlcgen.Question{
		ID:         id,
		Question:   "Question text",
		Answer:     "Answer",
		Category:   category,
		Difficulty: 2,
	}
}
