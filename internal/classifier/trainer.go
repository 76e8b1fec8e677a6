package classifier

import (
	"fmt"
	"math"
	"sort"
	"time"

	"college-chatbot/internal/common/errors"
	"college-chatbot/internal/intents"
	"college-chatbot/internal/nlp"
)

// Options control the softmax-regression optimizer.
type Options struct {
	LearningRate float64
	MaxEpochs    int
	Tolerance    float64
}

// DefaultOptions converge comfortably on pattern sets of this size.
func DefaultOptions() Options {
	return Options{
		LearningRate: 0.5,
		MaxEpochs:    2000,
		Tolerance:    1e-6,
	}
}

// Result carries training diagnostics alongside the fitted bundle.
type Result struct {
	Bundle    *Bundle
	Epochs    int
	FinalLoss float64
	Examples  int
}

// Train flattens the corpus into (pattern, tag) examples, fits the vectorizer
// vocabulary, and fits a softmax-regression classifier by full-batch gradient
// descent. Training is fully deterministic: weights start at zero and examples
// are visited in corpus order.
func Train(corpus *intents.Corpus, opts Options) (*Result, error) {
	if opts.LearningRate <= 0 {
		opts.LearningRate = DefaultOptions().LearningRate
	}
	if opts.MaxEpochs <= 0 {
		opts.MaxEpochs = DefaultOptions().MaxEpochs
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultOptions().Tolerance
	}

	patterns, tags, err := flatten(corpus)
	if err != nil {
		return nil, err
	}

	classes := distinctSorted(tags)
	if len(classes) < 2 {
		return nil, errors.NewTrainingDataInvalidError(
			fmt.Sprintf("need at least 2 distinct tags, got %d", len(classes)))
	}

	vectorizer := nlp.FitVectorizer(patterns)
	if vectorizer.NumFeatures() == 0 {
		return nil, errors.NewTrainingDataInvalidError("patterns produced an empty vocabulary")
	}

	classIndex := make(map[string]int, len(classes))
	for i, c := range classes {
		classIndex[c] = i
	}

	features := make([][]float64, len(patterns))
	targets := make([]int, len(patterns))
	for i, p := range patterns {
		features[i] = vectorizer.Transform(p)
		targets[i] = classIndex[tags[i]]
	}

	model := &Model{
		Classes: classes,
		Weights: make([][]float64, len(classes)),
		Bias:    make([]float64, len(classes)),
	}
	for c := range model.Weights {
		model.Weights[c] = make([]float64, vectorizer.NumFeatures())
	}

	epochs, loss := fit(model, features, targets, opts)

	bundle := &Bundle{
		SchemaVersion:    BundleSchemaVersion,
		TokenizerVersion: nlp.TokenizerVersion,
		TrainedAt:        time.Now().UTC(),
		Vectorizer:       vectorizer,
		Model:            model,
	}

	return &Result{
		Bundle:    bundle,
		Epochs:    epochs,
		FinalLoss: loss,
		Examples:  len(patterns),
	}, nil
}

// flatten expands each intent into one example per pattern, the tag repeated.
func flatten(corpus *intents.Corpus) ([]string, []string, error) {
	if corpus == nil || corpus.Len() == 0 {
		return nil, nil, errors.NewTrainingDataInvalidError("intent corpus is empty")
	}

	var patterns, tags []string
	for _, intent := range corpus.Intents() {
		if len(intent.Patterns) == 0 {
			return nil, nil, errors.NewTrainingDataInvalidError(
				fmt.Sprintf("intent %q has no patterns", intent.Tag))
		}
		for _, pattern := range intent.Patterns {
			patterns = append(patterns, pattern)
			tags = append(tags, intent.Tag)
		}
	}
	return patterns, tags, nil
}

func distinctSorted(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, tag := range tags {
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	sort.Strings(out)
	return out
}

// fit runs full-batch gradient descent on the cross-entropy loss until the
// loss improvement drops below tolerance or the epoch budget runs out.
// Returns the number of epochs run and the final loss.
func fit(model *Model, features [][]float64, targets []int, opts Options) (int, float64) {
	n := float64(len(features))
	prevLoss := math.Inf(1)
	loss := prevLoss
	epoch := 0

	for epoch = 1; epoch <= opts.MaxEpochs; epoch++ {
		gradW := make([][]float64, len(model.Classes))
		for c := range gradW {
			gradW[c] = make([]float64, len(model.Weights[c]))
		}
		gradB := make([]float64, len(model.Classes))

		loss = 0
		for i, x := range features {
			scores := make([]float64, len(model.Classes))
			for c := range model.Classes {
				scores[c] = model.score(c, x)
			}
			probs := softmax(scores)

			p := probs[targets[i]]
			if p < 1e-12 {
				p = 1e-12
			}
			loss -= math.Log(p)

			for c := range model.Classes {
				delta := probs[c]
				if c == targets[i] {
					delta -= 1
				}
				gradB[c] += delta
				for j, v := range x {
					if v != 0 {
						gradW[c][j] += delta * v
					}
				}
			}
		}
		loss /= n

		for c := range model.Classes {
			model.Bias[c] -= opts.LearningRate * gradB[c] / n
			for j := range model.Weights[c] {
				model.Weights[c][j] -= opts.LearningRate * gradW[c][j] / n
			}
		}

		if math.Abs(prevLoss-loss) < opts.Tolerance {
			break
		}
		prevLoss = loss
	}

	if epoch > opts.MaxEpochs {
		epoch = opts.MaxEpochs
	}
	return epoch, loss
}
