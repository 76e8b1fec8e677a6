// Package fees holds the static fee table and the rule-based resolver that
// answers fee questions before the classifier is consulted.
package fees

import (
	"fmt"

	"github.com/spf13/viper"

	"college-chatbot/internal/common/errors"
	"college-chatbot/internal/common/validation"
	"college-chatbot/internal/models"
)

// LoadTable reads and validates the fee table document (yaml, program code ->
// category code -> amount).
func LoadTable(path string) (models.FeeTable, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.NewFeesInvalidError(fmt.Sprintf("read %s: %v", path, err))
	}

	if msgs := validation.ValidateFeesDocument(v.AllSettings()); len(msgs) > 0 {
		return nil, errors.NewFeesInvalidError(validation.FormatErrors(msgs))
	}

	var table models.FeeTable
	if err := v.Unmarshal(&table); err != nil {
		return nil, errors.NewFeesInvalidError(fmt.Sprintf("decode fee table: %v", err))
	}
	if len(table) == 0 {
		return nil, errors.NewFeesInvalidError("fee table is empty")
	}

	return table, nil
}
