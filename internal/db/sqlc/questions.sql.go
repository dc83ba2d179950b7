package sqlcgen

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const listQuestions = `SELECT id, question, answer, category, difficulty
FROM questions
WHERE ($1::int IS NULL OR category = $1::int)
  AND ($2::text IS NULL OR question ILIKE $2::text ESCAPE '\')
ORDER BY id`

// ListQuestionsParams filters the question scan. Null fields match every row.
type ListQuestionsParams struct {
	CategoryID pgtype.Int4
	Pattern    pgtype.Text
}

func (q *Queries) ListQuestions(ctx context.Context, arg ListQuestionsParams) ([]Question, error) {
	rows, err := q.db.Query(ctx, listQuestions, arg.CategoryID, arg.Pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Question
	for rows.Next() {
		var i Question
		if err := rows.Scan(&i.ID, &i.Question, &i.Answer, &i.Category, &i.Difficulty); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getQuestion = `SELECT id, question, answer, category, difficulty FROM questions WHERE id = $1`

func (q *Queries) GetQuestion(ctx context.Context, id int32) (Question, error) {
	row := q.db.QueryRow(ctx, getQuestion, id)
	var i Question
	err := row.Scan(&i.ID, &i.Question, &i.Answer, &i.Category, &i.Difficulty)
	return i, err
}

const insertQuestion = `INSERT INTO questions (question, answer, category, difficulty)
VALUES ($1, $2, $3, $4)
RETURNING id, question, answer, category, difficulty`

type InsertQuestionParams struct {
	Question   string
	Answer     string
	Category   int32
	Difficulty int32
}

func (q *Queries) InsertQuestion(ctx context.Context, arg InsertQuestionParams) (Question, error) {
	row := q.db.QueryRow(ctx, insertQuestion, arg.Question, arg.Answer, arg.Category, arg.Difficulty)
	var i Question
	err := row.Scan(&i.ID, &i.Question, &i.Answer, &i.Category, &i.Difficulty)
	return i, err
}

const deleteQuestion = `DELETE FROM questions WHERE id = $1`

// DeleteQuestion returns the number of rows removed.
func (q *Queries) DeleteQuestion(ctx context.Context, id int32) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteQuestion, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
