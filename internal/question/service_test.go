package question

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

func TestNextQuestionDrawsFromCategory(t *testing.T) {
	svc := newTestService(t, seededStore(), ServiceOptions{})

	out, err := svc.NextQuestion(context.Background(), QuizRequest{CategoryID: 2, QuestionsPerPlay: 5})

	require.NoError(t, err)
	require.False(t, out.End)
	assert.Equal(t, 2, out.Question.Category)
}

func TestNextQuestionEndsWhenCategoryExhausted(t *testing.T) {
	svc := newTestService(t, seededStore(), ServiceOptions{})

	out, err := svc.NextQuestion(context.Background(), QuizRequest{
		CategoryID:       3,
		PreviousIDs:      []int{13, 14, 15},
		QuestionsPerPlay: 5,
	})

	require.NoError(t, err)
	assert.True(t, out.End)
	assert.Nil(t, out.Question)
}

func TestNextQuestionEndsWhenPoolLargerThanRoundIsExhausted(t *testing.T) {
	svc := newTestService(t, seededStore(), ServiceOptions{})

	out, err := svc.NextQuestion(context.Background(), QuizRequest{
		CategoryID:       2,
		PreviousIDs:      []int{1, 2, 3, 4, 5},
		QuestionsPerPlay: 3,
	})

	require.NoError(t, err)
	assert.True(t, out.End)
}

func TestNextQuestionEmptyCategoryEnds(t *testing.T) {
	store := newMemStore()
	store.add(1, 1, "only science")
	svc := newTestService(t, store, ServiceOptions{})

	out, err := svc.NextQuestion(context.Background(), QuizRequest{CategoryID: 2, QuestionsPerPlay: 5})

	require.NoError(t, err)
	assert.True(t, out.End)
}

func TestNextQuestionAnyCategoryUsesWholeBank(t *testing.T) {
	store := seededStore()
	var asked []int
	for id := 1; id <= 14; id++ {
		asked = append(asked, id)
	}
	svc := newTestService(t, store, ServiceOptions{IndexSource: sequence(0, 14)})

	out, err := svc.NextQuestion(context.Background(), QuizRequest{
		CategoryID:       AnyCategory,
		PreviousIDs:      asked,
		QuestionsPerPlay: 5,
	})

	require.NoError(t, err)
	require.NotNil(t, out.Question)
	assert.Equal(t, 15, out.Question.ID)
	assert.False(t, store.lastList.CategoryID.Valid)
}

func TestNextQuestionNeverRepeats(t *testing.T) {
	svc := newTestService(t, seededStore(), ServiceOptions{})
	var previous []int

	for i := 0; i < 7; i++ {
		out, err := svc.NextQuestion(context.Background(), QuizRequest{CategoryID: 1, PreviousIDs: previous, QuestionsPerPlay: 5})
		require.NoError(t, err)
		require.False(t, out.End)
		assert.NotContains(t, previous, out.Question.ID)
		assert.Equal(t, 1, out.Question.Category)
		previous = append(previous, out.Question.ID)
	}

	out, err := svc.NextQuestion(context.Background(), QuizRequest{CategoryID: 1, PreviousIDs: previous, QuestionsPerPlay: 5})
	require.NoError(t, err)
	assert.True(t, out.End)
}

func TestNextQuestionUnknownCategory(t *testing.T) {
	svc := newTestService(t, seededStore(), ServiceOptions{})

	_, err := svc.NextQuestion(context.Background(), QuizRequest{CategoryID: 1000, QuestionsPerPlay: 5})

	assert.True(t, IsKind(err, KindUnresolvableReference))
}

func TestNextQuestionNegativeRoundLength(t *testing.T) {
	svc := newTestService(t, seededStore(), ServiceOptions{})

	_, err := svc.NextQuestion(context.Background(), QuizRequest{CategoryID: 1, QuestionsPerPlay: -1})

	assert.True(t, IsKind(err, KindUnprocessableInput))
}

func TestListQuestionsPagesAndCategories(t *testing.T) {
	svc := newTestService(t, seededStore(), ServiceOptions{})

	page, err := svc.ListQuestions(context.Background(), ListRequest{Page: 2})

	require.NoError(t, err)
	assert.Equal(t, []int{11, 12, 13, 14, 15}, ids(page.Questions))
	assert.Nil(t, page.CurrentCategory)
	assert.Len(t, page.Categories, 3)
}

func TestListQuestionsPastTheEndIsEmpty(t *testing.T) {
	store := newMemStore()
	store.add(1, 1, "a")
	store.add(2, 1, "b")
	store.add(3, 1, "c")
	svc := newTestService(t, store, ServiceOptions{})

	page, err := svc.ListQuestions(context.Background(), ListRequest{Page: 1000})

	require.NoError(t, err)
	assert.Empty(t, page.Questions)
}

func TestListQuestionsUnknownCategory(t *testing.T) {
	svc := newTestService(t, seededStore(), ServiceOptions{})
	category := 1000

	_, err := svc.ListQuestions(context.Background(), ListRequest{Page: 1, CategoryID: &category})

	assert.True(t, IsKind(err, KindUnresolvableReference))
}

func TestListQuestionsHonoursPageSize(t *testing.T) {
	svc := newTestService(t, seededStore(), ServiceOptions{PageSize: 4})

	page, err := svc.ListQuestions(context.Background(), ListRequest{Page: 4})

	require.NoError(t, err)
	assert.Equal(t, []int{13, 14, 15}, ids(page.Questions))
}

func TestSearchQuestionsReportsResolvedCategoryID(t *testing.T) {
	store := newMemStore()
	store.add(1, 3, "Which river is the longest?")
	store.add(2, 1, "What is the speed of light?")
	svc := newTestService(t, store, ServiceOptions{})

	result, err := svc.SearchQuestions(context.Background(), SearchRequest{Term: "THE", CategoryLabel: "Geography", Page: 1})

	require.NoError(t, err)
	assert.Equal(t, "THE", result.Term)
	assert.Equal(t, []int{1}, ids(result.Questions))
	require.NotNil(t, result.CategoryID)
	assert.Equal(t, 3, *result.CategoryID)
}

func TestSearchQuestionsRequiresTerm(t *testing.T) {
	svc := newTestService(t, seededStore(), ServiceOptions{})

	_, err := svc.SearchQuestions(context.Background(), SearchRequest{})

	assert.True(t, IsKind(err, KindMalformedRequest))
}

func TestCreateQuestion(t *testing.T) {
	store := seededStore()
	svc := newTestService(t, store, ServiceOptions{})

	result, err := svc.CreateQuestion(context.Background(), NewQuestion{
		Question:   "Who wrote Hamlet?",
		Answer:     "Shakespeare",
		Category:   2,
		Difficulty: 1,
	}, 2)

	require.NoError(t, err)
	assert.Equal(t, 101, result.ID)
	assert.Equal(t, []int{11, 12, 13, 14, 15, 101}, ids(result.Questions))
}

func TestCreateQuestionRejectsBlankText(t *testing.T) {
	svc := newTestService(t, seededStore(), ServiceOptions{})

	_, err := svc.CreateQuestion(context.Background(), NewQuestion{Question: "  ", Answer: "x", Category: 1, Difficulty: 1}, 1)

	assert.True(t, IsKind(err, KindUnprocessableInput))
}

func TestCreateQuestionClassifiesConstraintViolations(t *testing.T) {
	store := seededStore()
	store.insertErr = &pgconn.PgError{Code: "23514", Message: "check violation"}
	svc := newTestService(t, store, ServiceOptions{})

	_, err := svc.CreateQuestion(context.Background(), NewQuestion{Question: "q", Answer: "a", Category: 1, Difficulty: 9}, 1)

	assert.True(t, IsKind(err, KindUnprocessableInput))
}

func TestCreateQuestionStoreFailure(t *testing.T) {
	store := seededStore()
	store.insertErr = errBoom
	svc := newTestService(t, store, ServiceOptions{})

	_, err := svc.CreateQuestion(context.Background(), NewQuestion{Question: "q", Answer: "a", Category: 1, Difficulty: 1}, 1)

	assert.True(t, IsKind(err, KindStoreFailure))
}

func TestDeleteQuestion(t *testing.T) {
	store := seededStore()
	svc := newTestService(t, store, ServiceOptions{})

	result, err := svc.DeleteQuestion(context.Background(), 3, 1)

	require.NoError(t, err)
	assert.Equal(t, 3, result.ID)
	assert.Equal(t, []int{1, 2, 4, 5, 6, 7, 8, 9, 10, 11}, ids(result.Questions))
}

func TestDeleteQuestionMissing(t *testing.T) {
	svc := newTestService(t, seededStore(), ServiceOptions{})

	for _, id := range []int{-5, 0, 1000} {
		_, err := svc.DeleteQuestion(context.Background(), id, 1)
		assert.True(t, IsKind(err, KindNotFound), "id %d", id)
	}
}

func TestDeleteQuestionStoreFailure(t *testing.T) {
	store := seededStore()
	store.deleteErr = errBoom
	svc := newTestService(t, store, ServiceOptions{})

	_, err := svc.DeleteQuestion(context.Background(), 1, 1)

	assert.True(t, IsKind(err, KindStoreFailure))
}

func TestListCategoriesUsesCache(t *testing.T) {
	store := seededStore()
	cache := &fakeCache{}
	svc := NewService(repository.NewQuestionRepository(store), repository.NewCategoryRepository(store), cache, zerolog.Nop(), ServiceOptions{})

	first, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	store.categories = nil
	second, err := svc.ListCategories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets)
}

func TestListCategoriesFallsBackOnCacheError(t *testing.T) {
	store := seededStore()
	cache := &fakeCache{getErr: errBoom}
	svc := NewService(repository.NewQuestionRepository(store), repository.NewCategoryRepository(store), cache, zerolog.Nop(), ServiceOptions{})

	categories, err := svc.ListCategories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []Category{{1, "Science"}, {2, "Art"}, {3, "Geography"}}, categories)
}
