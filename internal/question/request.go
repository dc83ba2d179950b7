package question

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
)

// maxBodyBytes caps request bodies; question payloads are tiny.
const maxBodyBytes = 1 << 20

// body is a JSON object decoded lazily so that absent fields, nulls and wrongly typed values
// can be told apart.
type body map[string]json.RawMessage

func decodeBody(r io.Reader) (body, error) {
	var b body
	dec := json.NewDecoder(io.LimitReader(r, maxBodyBytes))
	if err := dec.Decode(&b); err != nil {
		return nil, malformed("request body must be a JSON object")
	}
	if b == nil {
		return nil, malformed("request body must be a JSON object")
	}
	return b, nil
}

// field returns the raw value for key; absent keys and JSON null report false.
func (b body) field(key string) (json.RawMessage, bool) {
	raw, ok := b[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}

func (b body) has(key string) bool {
	_, ok := b.field(key)
	return ok
}

func (b body) stringField(key string) (string, error) {
	raw, _ := b.field(key)
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", unprocessable("%s must be a string", key)
	}
	return s, nil
}

func (b body) intField(key string) (int, error) {
	raw, _ := b.field(key)
	n, ok := parseInt(raw)
	if !ok {
		return 0, unprocessable("%s must be an integer", key)
	}
	return n, nil
}

func (b body) intListField(key string) ([]int, error) {
	raw, _ := b.field(key)
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, unprocessable("%s must be a list of integers", key)
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		n, ok := parseInt(item)
		if !ok {
			return nil, unprocessable("%s must be a list of integers", key)
		}
		out = append(out, n)
	}
	return out, nil
}

// parseInt accepts JSON numbers with an integral value only; strings, bools and fractions fail.
func parseInt(raw json.RawMessage) (int, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, false
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	n, err := num.Int64()
	if err != nil || n < math.MinInt || n > math.MaxInt {
		return 0, false
	}
	return int(n), true
}

// decodeQuizRequest validates a POST /quizzes payload.
func decodeQuizRequest(b body) (QuizRequest, error) {
	for _, key := range []string{"questions_per_play", "previous_questions", "quiz_category"} {
		if !b.has(key) {
			return QuizRequest{}, malformed("%s is required", key)
		}
	}

	perPlay, err := b.intField("questions_per_play")
	if err != nil {
		return QuizRequest{}, err
	}
	previous, err := b.intListField("previous_questions")
	if err != nil {
		return QuizRequest{}, err
	}

	raw, _ := b.field("quiz_category")
	var category body
	if err := json.Unmarshal(raw, &category); err != nil || category == nil {
		return QuizRequest{}, unprocessable("quiz_category must be an object")
	}
	if !category.has("id") {
		return QuizRequest{}, unprocessable("quiz_category.id is required")
	}
	categoryID, err := category.intField("id")
	if err != nil {
		return QuizRequest{}, err
	}

	return QuizRequest{
		CategoryID:       categoryID,
		PreviousIDs:      previous,
		QuestionsPerPlay: perPlay,
	}, nil
}

// decodeNewQuestion validates a create payload. All four fields are required.
func decodeNewQuestion(b body) (NewQuestion, error) {
	for _, key := range []string{"question", "answer", "category", "difficulty"} {
		if !b.has(key) {
			return NewQuestion{}, malformed("%s is required", key)
		}
	}

	text, err := b.stringField("question")
	if err != nil {
		return NewQuestion{}, err
	}
	answer, err := b.stringField("answer")
	if err != nil {
		return NewQuestion{}, err
	}
	category, err := b.intField("category")
	if err != nil {
		return NewQuestion{}, err
	}
	difficulty, err := b.intField("difficulty")
	if err != nil {
		return NewQuestion{}, err
	}

	return NewQuestion{
		Question:   text,
		Answer:     answer,
		Category:   category,
		Difficulty: difficulty,
	}, nil
}

// decodeSearch reports whether b is a search request and, if so, its term and category label.
// A missing or empty search term means the body is a create request instead.
func decodeSearch(b body) (term, label string, isSearch bool, err error) {
	if !b.has("search") {
		return "", "", false, nil
	}
	term, err = b.stringField("search")
	if err != nil {
		return "", "", true, err
	}
	if term == "" {
		return "", "", false, nil
	}
	if b.has("current_category") {
		label, err = b.stringField("current_category")
		if err != nil {
			return "", "", true, err
		}
	}
	return term, label, true, nil
}
