package question

import (
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// AnyCategory selects the whole question bank in quiz play.
const AnyCategory = 0

// Question is the client-facing form of a stored question.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   int    `json:"category"`
}

// Category is a read-only question grouping such as "Art".
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// Outcome is the result of a quiz draw: either a question or the end of the quiz.
type Outcome struct {
	Question *Question
	End      bool
}

// ListRequest pages through questions, optionally scoped to a category.
type ListRequest struct {
	Page       int
	CategoryID *int
}

// QuestionPage is one page of questions plus the context the list view needs.
type QuestionPage struct {
	Questions       []Question
	CurrentCategory *Category
	Categories      []Category
}

// SearchRequest is a case-insensitive substring search, optionally scoped by category label.
type SearchRequest struct {
	Term          string
	CategoryLabel string
	Page          int
}

// SearchResult holds one page of matches and the category the search was scoped to.
type SearchResult struct {
	Term       string
	Questions  []Question
	CategoryID *int
}

// NewQuestion is a validated create payload.
type NewQuestion struct {
	Question   string
	Answer     string
	Category   int
	Difficulty int
}

// Mutation reports the affected id and the page view after a create or delete.
type Mutation struct {
	ID        int
	Questions []Question
}

// QuizRequest asks for the next unseen question of a quiz round.
type QuizRequest struct {
	CategoryID       int
	PreviousIDs      []int
	QuestionsPerPlay int
}

func toQuestion(row sqlcgen.Question) Question {
	return Question{
		ID:         int(row.ID),
		Question:   row.Question,
		Answer:     row.Answer,
		Difficulty: int(row.Difficulty),
		Category:   int(row.Category),
	}
}

func toQuestions(rows []sqlcgen.Question) []Question {
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toQuestion(row))
	}
	return out
}

func toCategory(row sqlcgen.Category) Category {
	return Category{ID: int(row.ID), Type: row.Type}
}

func toCategories(rows []sqlcgen.Category) []Category {
	out := make([]Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, toCategory(row))
	}
	return out
}
