// cmd/trainer/main.go
//
// Offline training: fit the vectorizer vocabulary and the intent classifier
// from the intent corpus, verify training-set recall, and persist both as one
// bundle for the chatbot binary to load at startup.
package main

import (
	"os"

	"go.uber.org/zap"

	"college-chatbot/internal/classifier"
	"college-chatbot/internal/common/config"
	"college-chatbot/internal/common/logger"
	"college-chatbot/internal/intents"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load configuration", zap.Error(err))
	}

	corpus, err := intents.Load(cfg.Assistant.IntentsPath)
	if err != nil {
		zapLog.Fatal("failed to load intent corpus", zap.Error(err))
	}

	log.Info("training classifier", map[string]interface{}{
		"intents": corpus.Len(),
		"path":    cfg.Assistant.IntentsPath,
	})

	result, err := classifier.Train(corpus, classifier.Options{
		LearningRate: cfg.Training.LearningRate,
		MaxEpochs:    cfg.Training.MaxEpochs,
		Tolerance:    cfg.Training.Tolerance,
	})
	if err != nil {
		zapLog.Fatal("training failed", zap.Error(err))
	}

	// Sanity check on the training procedure, not a generalization claim:
	// every training pattern must classify back to its own tag.
	missed := 0
	for _, intent := range corpus.Intents() {
		for _, pattern := range intent.Patterns {
			if got := result.Bundle.Classify(pattern); got != intent.Tag {
				missed++
				log.Warn("training pattern not recalled", map[string]interface{}{
					"pattern":   pattern,
					"expected":  intent.Tag,
					"predicted": got,
				})
			}
		}
	}
	if missed > 0 {
		log.Error("training-set recall below 100%, refusing to persist bundle", map[string]interface{}{
			"missed":   missed,
			"examples": result.Examples,
		})
		os.Exit(1)
	}

	if err := result.Bundle.Save(cfg.Assistant.BundlePath); err != nil {
		zapLog.Fatal("failed to persist bundle", zap.Error(err))
	}

	log.Info("model trained", map[string]interface{}{
		"bundle":     cfg.Assistant.BundlePath,
		"examples":   result.Examples,
		"vocabulary": result.Bundle.Vectorizer.NumFeatures(),
		"classes":    len(result.Bundle.Model.Classes),
		"epochs":     result.Epochs,
		"finalLoss":  result.FinalLoss,
	})
}
