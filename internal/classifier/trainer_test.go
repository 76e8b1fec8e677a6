package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"college-chatbot/internal/common/errors"
	"college-chatbot/internal/intents"
	"college-chatbot/internal/models"
)

func trainingCorpus(t *testing.T) *intents.Corpus {
	t.Helper()
	corpus, err := intents.New([]models.Intent{
		{
			Tag:       "greeting",
			Patterns:  []string{"hi", "hello there", "hey buddy", "good morning"},
			Responses: []string{"Hello! How can I help you today?"},
		},
		{
			Tag:       "admission",
			Patterns:  []string{"admission process", "how do apply", "application deadline"},
			Responses: []string{"Admissions open in April."},
		},
		{
			Tag:       "placements",
			Patterns:  []string{"placement statistics", "which companies recruit", "highest package"},
			Responses: []string{"Over 600 companies visit campus."},
		},
		{
			Tag:       "scholarship",
			Patterns:  []string{"scholarship criteria", "merit waiver", "financial aid"},
			Responses: []string{"Merit scholarships cover up to 100% tuition."},
		},
	})
	require.NoError(t, err)
	return corpus
}

func TestTrain_RecallsEveryTrainingPattern(t *testing.T) {
	corpus := trainingCorpus(t)

	result, err := Train(corpus, DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, result.Bundle)

	// Sanity property of the training procedure, not a generalization claim:
	// every training pattern must classify back to its own tag.
	for _, intent := range corpus.Intents() {
		for _, pattern := range intent.Patterns {
			assert.Equal(t, intent.Tag, result.Bundle.Classify(pattern),
				"pattern %q", pattern)
		}
	}

	assert.Equal(t, 13, result.Examples)
	assert.Greater(t, result.Epochs, 0)
	assert.Less(t, result.FinalLoss, 1.0)
}

func TestTrain_Deterministic(t *testing.T) {
	corpus := trainingCorpus(t)

	r1, err := Train(corpus, DefaultOptions())
	require.NoError(t, err)
	r2, err := Train(corpus, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, r1.Bundle.Model.Classes, r2.Bundle.Model.Classes)
	assert.Equal(t, r1.Bundle.Model.Weights, r2.Bundle.Model.Weights)
	assert.Equal(t, r1.Bundle.Model.Bias, r2.Bundle.Model.Bias)
	assert.Equal(t, r1.Bundle.Vectorizer.Vocabulary, r2.Bundle.Vectorizer.Vocabulary)
}

func TestTrain_ClassesAreSortedTags(t *testing.T) {
	corpus := trainingCorpus(t)

	result, err := Train(corpus, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"admission", "greeting", "placements", "scholarship"},
		result.Bundle.Model.Classes)
}

func TestTrain_RejectsBadCorpora(t *testing.T) {
	tests := []struct {
		name    string
		intents []models.Intent
	}{
		{
			name:    "empty corpus",
			intents: nil,
		},
		{
			name: "single tag",
			intents: []models.Intent{
				{Tag: "greeting", Patterns: []string{"hi", "hello"}, Responses: []string{"Hello!"}},
			},
		},
		{
			name: "intent without patterns",
			intents: []models.Intent{
				{Tag: "greeting", Patterns: []string{"hi"}, Responses: []string{"Hello!"}},
				{Tag: "admission", Patterns: nil, Responses: []string{"April."}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			corpus, err := intents.New(tt.intents)
			require.NoError(t, err)

			_, err = Train(corpus, DefaultOptions())
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeTrainingDataInvalid, errors.CodeOf(err))
		})
	}
}

func TestModel_PredictDeterministic(t *testing.T) {
	corpus := trainingCorpus(t)
	result, err := Train(corpus, DefaultOptions())
	require.NoError(t, err)

	first := result.Bundle.Classify("scholarship criteria for merit students")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, result.Bundle.Classify("scholarship criteria for merit students"))
	}
}
