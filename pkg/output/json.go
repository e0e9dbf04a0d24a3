package output

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/types"
)

// jsonReporter stays silent per entry and prints one document at the end
type jsonReporter struct {
	enc *json.Encoder
}

func newJSONReporter(w io.Writer) *jsonReporter {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &jsonReporter{enc: enc}
}

// runSummary is the JSON document printed after a run
type runSummary struct {
	*types.RunResult
	Directories int `json:"directories"`
	Files       int `json:"files"`
	Skipped     int `json:"skipped"`
}

func (r *jsonReporter) Entry(types.EntryResult) {}

func (r *jsonReporter) Done(result *types.RunResult) {
	summary := runSummary{RunResult: result}
	for _, e := range result.Entries {
		switch {
		case e.Status == types.StatusSkipped:
			summary.Skipped++
		case e.Kind == types.EntryDirectory:
			summary.Directories++
		default:
			summary.Files++
		}
	}
	if err := r.enc.Encode(summary); err != nil {
		logger := logging.GetLogger("output")
		logger.Error().Err(err).Msg("Failed to write run summary")
	}
}

func (r *jsonReporter) Templates(list *types.ListTemplatesResult) error {
	return r.enc.Encode(list)
}

func (r *jsonReporter) Describe(info types.TemplateInfo) error {
	return r.enc.Encode(info)
}

func (r *jsonReporter) Message(msg string) error {
	return r.enc.Encode(map[string]string{"message": msg})
}
