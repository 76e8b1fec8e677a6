// Package intents loads and validates the intent corpus the classifier is
// trained on and the router answers from.
package intents

import (
	"encoding/json"
	"fmt"
	"os"

	"college-chatbot/internal/common/errors"
	"college-chatbot/internal/common/validation"
	"college-chatbot/internal/models"
)

// Corpus is the immutable set of intents loaded at startup. The trainer
// consumes the patterns, the router consumes the responses keyed by tag.
type Corpus struct {
	intents []models.Intent
	byTag   map[string]models.Intent
}

// Load reads, schema-validates and decodes an intents document.
func Load(path string) (*Corpus, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIntentsInvalidError(fmt.Sprintf("read %s: %v", path, err))
	}
	return Parse(raw)
}

// Parse builds a Corpus from raw intents JSON.
func Parse(raw []byte) (*Corpus, error) {
	var generic map[string]interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, errors.NewIntentsInvalidError(fmt.Sprintf("parse JSON: %v", err))
	}

	if msgs := validation.ValidateIntentsDocument(generic); len(msgs) > 0 {
		return nil, errors.NewIntentsInvalidError(validation.FormatErrors(msgs))
	}

	var doc models.IntentsDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.NewIntentsInvalidError(fmt.Sprintf("decode intents: %v", err))
	}

	return New(doc.Intents)
}

// New builds a Corpus from already-decoded intents, rejecting duplicate tags.
func New(list []models.Intent) (*Corpus, error) {
	byTag := make(map[string]models.Intent, len(list))
	for _, intent := range list {
		if _, exists := byTag[intent.Tag]; exists {
			return nil, errors.NewIntentsInvalidError(fmt.Sprintf("duplicate tag %q", intent.Tag))
		}
		byTag[intent.Tag] = intent
	}

	intents := make([]models.Intent, len(list))
	copy(intents, list)

	return &Corpus{intents: intents, byTag: byTag}, nil
}

// Intents returns the intents in document order.
func (c *Corpus) Intents() []models.Intent {
	return c.intents
}

// ByTag looks up the intent for a tag.
func (c *Corpus) ByTag(tag string) (models.Intent, bool) {
	intent, ok := c.byTag[tag]
	return intent, ok
}

// Len returns the number of intents.
func (c *Corpus) Len() int {
	return len(c.intents)
}

// Tags returns the tags in document order.
func (c *Corpus) Tags() []string {
	tags := make([]string, 0, len(c.intents))
	for _, intent := range c.intents {
		tags = append(tags, intent.Tag)
	}
	return tags
}
