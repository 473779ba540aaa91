package output

import (
	"encoding/json"

	"github.com/vinod-lakhani/planengine/internal/domain"
)

// JSONFormatter emits the full scenario result as indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(result *domain.ScenarioResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
