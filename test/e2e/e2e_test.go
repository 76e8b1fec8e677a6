// test/e2e/e2e_test.go
//
// End-to-end pipeline: intents.json and fees.yaml on disk -> trainer -> persisted
// bundle -> fresh load -> router -> session transcript. No external services.
package e2e

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"college-chatbot/internal/classifier"
	"college-chatbot/internal/common/logger"
	"college-chatbot/internal/fees"
	"college-chatbot/internal/intents"
	"college-chatbot/internal/models"
	"college-chatbot/internal/router"
	"college-chatbot/internal/session"
)

const intentsJSON = `{
  "intents": [
    {
      "tag": "greeting",
      "patterns": ["hi", "hello", "hey there", "good morning"],
      "responses": ["Hello! How can I help you today?"]
    },
    {
      "tag": "admission",
      "patterns": ["admission process", "how do I apply", "application procedure"],
      "responses": ["Admissions are through VITEEE."]
    },
    {
      "tag": "placements",
      "patterns": ["placements", "placement statistics", "which companies recruit"],
      "responses": ["Over 600 companies visit campus every year."]
    }
  ]
}`

const feesYAML = `
cse:
  category_1: 150000
  category_2: 250000
ece:
  category_1: 140000
mechanical:
  category_1: 120000
`

func TestFullPipeline(t *testing.T) {
	dir := t.TempDir()
	log := logger.NewTestLogger(t)

	intentsPath := filepath.Join(dir, "intents.json")
	feesPath := filepath.Join(dir, "fees.yaml")
	bundlePath := filepath.Join(dir, "model_bundle.json")
	require.NoError(t, os.WriteFile(intentsPath, []byte(intentsJSON), 0o644))
	require.NoError(t, os.WriteFile(feesPath, []byte(feesYAML), 0o644))

	// Offline: load, train, verify training-set recall, persist.
	corpus, err := intents.Load(intentsPath)
	require.NoError(t, err)

	result, err := classifier.Train(corpus, classifier.DefaultOptions())
	require.NoError(t, err)

	for _, intent := range corpus.Intents() {
		for _, pattern := range intent.Patterns {
			require.Equal(t, intent.Tag, result.Bundle.Classify(pattern),
				"pattern %q", pattern)
		}
	}

	require.NoError(t, result.Bundle.Save(bundlePath))

	// Online: load everything the way the chatbot binary does.
	bundle, err := classifier.LoadBundle(bundlePath)
	require.NoError(t, err)

	table, err := fees.LoadTable(feesPath)
	require.NoError(t, err)

	resolver := fees.NewResolver(table,
		"Hostel fee ranges ₹85k–₹1.2L depending on room type.",
		"Mess fee is ₹50,000 per year.",
		log)

	rtr := router.New(resolver, bundle, corpus, log,
		router.WithRand(rand.New(rand.NewSource(7))))
	manager := session.NewManager(rtr, "Hello! How can I help you today?", nil, log)

	s := manager.Open()
	ctx := context.Background()

	// Fee path with a defined pair.
	reply, err := s.Submit(ctx, "cse category 1 fee")
	require.NoError(t, err)
	assert.Equal(t, "CSE category 1 fee is ₹150000", reply)

	// Fixed keyword answer.
	reply, err = s.Submit(ctx, "hostel fee")
	require.NoError(t, err)
	assert.Equal(t, "Hostel fee ranges ₹85k–₹1.2L depending on room type.", reply)

	// Undefined pair falls through to the classifier.
	reply, err = s.Submit(ctx, "ece category 9")
	require.NoError(t, err)
	var all []string
	for _, intent := range corpus.Intents() {
		all = append(all, intent.Responses...)
	}
	assert.Contains(t, all, reply)

	// Classifier path.
	reply, err = s.Submit(ctx, "placement statistics")
	require.NoError(t, err)
	assert.Equal(t, "Over 600 companies visit campus every year.", reply)

	// Transcript: greeting + four (user, bot) pairs, in order.
	transcript := s.Transcript()
	require.Len(t, transcript, 9)
	assert.Equal(t, models.SpeakerBot, transcript[0].Speaker)
	for i := 1; i < len(transcript); i += 2 {
		assert.Equal(t, models.SpeakerUser, transcript[i].Speaker)
		assert.Equal(t, models.SpeakerBot, transcript[i+1].Speaker)
	}

	manager.Close(s.ID())
	assert.Equal(t, 0, manager.Count())
}
