package fees

import (
	"fmt"
	"regexp"
	"strings"

	"college-chatbot/internal/common/logger"
	"college-chatbot/internal/models"
)

// categoryPattern matches the literal word "category" followed by optional
// whitespace and a single digit. Category indices of 10 and above are
// therefore unreachable; the upstream data never defines them.
var categoryPattern = regexp.MustCompile(`category\s*(\d)`)

// Resolver answers fee questions with deterministic text rules. It never
// fails: when no rule applies it declines and the caller falls back to the
// classifier.
type Resolver struct {
	table        models.FeeTable
	programs     []string
	hostelAnswer string
	messAnswer   string
	logger       logger.Logger
}

// NewResolver builds a Resolver over a loaded fee table. Program codes are
// matched in sorted order.
func NewResolver(table models.FeeTable, hostelAnswer, messAnswer string, log logger.Logger) *Resolver {
	return &Resolver{
		table:        table,
		programs:     table.Programs(),
		hostelAnswer: hostelAnswer,
		messAnswer:   messAnswer,
		logger:       log.WithFields(map[string]interface{}{"component": "fee-resolver"}),
	}
}

// Resolve extracts a program and category from the utterance and answers from
// the fee table. The second return is false when no rule-based answer exists.
func (r *Resolver) Resolve(utterance string) (string, bool) {
	text := strings.ToLower(utterance)

	program := r.extractProgram(text)
	category := extractCategory(text)

	if program != "" && category != "" {
		if amount, ok := r.table.Lookup(program, category); ok {
			answer := fmt.Sprintf("%s %s fee is ₹%d",
				strings.ToUpper(program),
				strings.ReplaceAll(category, "_", " "),
				amount,
			)
			return answer, true
		}
		// Undefined program/category combination: decline rather than fail,
		// the classifier fallback handles the utterance.
		r.logger.Debug("fee pair not defined, declining", map[string]interface{}{
			"program":  program,
			"category": category,
		})
	}

	if strings.Contains(text, "hostel") {
		return r.hostelAnswer, true
	}

	if strings.Contains(text, "mess") {
		return r.messAnswer, true
	}

	return "", false
}

// extractProgram returns the first configured program code appearing as a
// substring of the normalized text. Substring matching is intentional and a
// known false-positive source: "piece" contains "ece".
func (r *Resolver) extractProgram(text string) string {
	for _, p := range r.programs {
		if strings.Contains(text, p) {
			return p
		}
	}
	return ""
}

func extractCategory(text string) string {
	match := categoryPattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return "category_" + match[1]
}
