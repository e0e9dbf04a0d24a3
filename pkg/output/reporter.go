package output

import (
	"io"
	"os"

	"github.com/arthur-debert/scaffold/pkg/types"
	"github.com/arthur-debert/scaffold/pkg/ui"
)

// Reporter prints everything a command shows on stdout
type Reporter interface {
	types.Reporter

	// Templates prints the template listing
	Templates(list *types.ListTemplatesResult) error

	// Describe prints a single template in detail
	Describe(info types.TemplateInfo) error

	// Message prints a free form line
	Message(msg string) error
}

// NewReporter creates a reporter for format, resolving FormatAuto against w
func NewReporter(format ui.Format, w io.Writer) Reporter {
	if w == nil {
		w = os.Stdout
	}
	switch ui.Resolve(format, w) {
	case ui.FormatJSON:
		return newJSONReporter(w)
	case ui.FormatTerminal:
		return newTextReporter(w, true)
	default:
		return newTextReporter(w, false)
	}
}

// NoticeLabel is the prefix printed for an entry
func NoticeLabel(status types.EntryStatus) string {
	switch status {
	case types.StatusSkipped:
		return "Skipped"
	case types.StatusFailed:
		return "Failed"
	default:
		return "Created"
	}
}
