package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fireplan/fireplan/internal/domain"
)

// Formatter renders a projection result. Implementations must be pure:
// identical input yields byte-identical output.
type Formatter interface {
	Format(result *domain.ProjectionResult) ([]byte, error)
	// Name returns a short identifier for lookup and logging.
	Name() string
	// Ext is the file extension WriteFormatted uses.
	Ext() string
}

// builtInFormatters stores the available projection formatters.
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVExporter{},
	JSONFormatter{},
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"table":       "console",
	"text":        "console",
	"json-pretty": "json",
	"export":      "csv",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if resolved, ok := aliasMap[n]; ok {
		return resolved
	}
	return n
}

// GetFormatterByName fetches a registered formatter, or nil when unknown.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// Render runs the named formatter against a result.
func Render(result *domain.ProjectionResult, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	return f.Format(result)
}

// WriteFormatted renders a result and writes it to a timestamped file,
// returning the filename.
func WriteFormatted(f Formatter, result *domain.ProjectionResult) (string, error) {
	data, err := f.Format(result)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("fireplan_projection_%s.%s", time.Now().Format("20060102_150405"), f.Ext())
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", err
	}
	return filename, nil
}
