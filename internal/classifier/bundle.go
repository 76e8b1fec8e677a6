package classifier

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"college-chatbot/internal/common/errors"
	"college-chatbot/internal/nlp"
)

// BundleSchemaVersion identifies the persisted artifact layout.
const BundleSchemaVersion = 1

// Bundle is the matched pair of vocabulary and model produced by one training
// run. The two are persisted and loaded as a single artifact: a vocabulary
// paired with a model trained against a different vocabulary is undefined
// behavior, and bundling is what prevents it.
type Bundle struct {
	SchemaVersion    int             `json:"schema_version"`
	TokenizerVersion int             `json:"tokenizer_version"`
	TrainedAt        time.Time       `json:"trained_at"`
	Vectorizer       *nlp.Vectorizer `json:"vectorizer"`
	Model            *Model          `json:"model"`
}

// Classify is the single inference entry point: vectorize with the bundled
// vocabulary, predict with the bundled model.
func (b *Bundle) Classify(text string) string {
	return b.Model.Predict(b.Vectorizer.Transform(text))
}

// Save writes the bundle as one JSON artifact. The write goes through a temp
// file and a rename so a crashed trainer never leaves a partial bundle.
func (b *Bundle) Save(path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return errors.NewBundleWriteFailedError(path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".bundle-*")
	if err != nil {
		return errors.NewBundleWriteFailedError(path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewBundleWriteFailedError(path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewBundleWriteFailedError(path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.NewBundleWriteFailedError(path, err)
	}
	return nil
}

// LoadBundle reads a bundle and verifies it is usable by this binary: schema
// and tokenizer versions must match and the model dimensions must agree with
// the vocabulary. Loaded once at process start, immutable afterward.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewBundleReadFailedError(path, err)
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, errors.NewBundleCorruptError(fmt.Sprintf("decode %s: %v", path, err))
	}

	if b.SchemaVersion != BundleSchemaVersion {
		return nil, errors.NewBundleVersionMismatchError(b.SchemaVersion, BundleSchemaVersion)
	}
	if b.TokenizerVersion != nlp.TokenizerVersion {
		return nil, errors.NewTokenizerVersionMismatchError(b.TokenizerVersion, nlp.TokenizerVersion)
	}

	if err := b.check(); err != nil {
		return nil, err
	}
	return &b, nil
}

// check verifies internal consistency of the bundle contents.
func (b *Bundle) check() error {
	if b.Vectorizer == nil || b.Model == nil {
		return errors.NewBundleCorruptError("vectorizer or model missing")
	}
	if len(b.Model.Classes) < 2 {
		return errors.NewBundleCorruptError(
			fmt.Sprintf("model has %d classes, need at least 2", len(b.Model.Classes)))
	}
	if len(b.Model.Weights) != len(b.Model.Classes) || len(b.Model.Bias) != len(b.Model.Classes) {
		return errors.NewBundleCorruptError("weight and bias rows do not match class count")
	}
	for c, row := range b.Model.Weights {
		if len(row) != b.Vectorizer.NumFeatures() {
			return errors.NewBundleCorruptError(
				fmt.Sprintf("class %d weight row has %d features, vocabulary has %d",
					c, len(row), b.Vectorizer.NumFeatures()))
		}
	}
	return nil
}
