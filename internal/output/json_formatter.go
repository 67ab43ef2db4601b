package output

import (
	"encoding/json"

	"github.com/fireplan/fireplan/internal/domain"
)

// JSONFormatter emits the full result as indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }
func (JSONFormatter) Ext() string  { return "json" }

func (JSONFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
