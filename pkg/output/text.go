package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/scaffold/pkg/types"
	"github.com/arthur-debert/scaffold/pkg/ui/styles"
	"github.com/charmbracelet/glamour"
)

// textReporter prints the plain notices, optionally styled
type textReporter struct {
	w      io.Writer
	styled bool
}

func newTextReporter(w io.Writer, styled bool) *textReporter {
	return &textReporter{w: w, styled: styled}
}

func (r *textReporter) style(name, text string) string {
	if !r.styled {
		return text
	}
	return styles.Render(name, text)
}

func (r *textReporter) Entry(entry types.EntryResult) {
	label := NoticeLabel(entry.Status) + ":"
	if r.styled {
		styleName := "Created"
		switch entry.Status {
		case types.StatusExisted:
			styleName = "Existed"
		case types.StatusOverwritten:
			styleName = "Overwritten"
		case types.StatusSkipped:
			styleName = "Skipped"
		}
		label = styles.Render(styleName, label)
		_, _ = fmt.Fprintf(r.w, "%s%s\n", label, r.style("FilePath", entry.Path))
		return
	}
	_, _ = fmt.Fprintf(r.w, "%s %s\n", label, entry.Path)
}

func (r *textReporter) Done(result *types.RunResult) {
	msg := fmt.Sprintf("✓ %s files created successfully!", result.Scaffold)
	_, _ = fmt.Fprintf(r.w, "\n%s\n", r.style("Success", msg))
	if result.DryRun {
		_, _ = fmt.Fprintln(r.w, r.style("Muted", "(dry run, nothing was written to disk)"))
	}
}

func (r *textReporter) Templates(list *types.ListTemplatesResult) error {
	width := 0
	for _, t := range list.Templates {
		if len(t.Name) > width {
			width = len(t.Name)
		}
	}
	for _, t := range list.Templates {
		name := fmt.Sprintf("%-*s", width, t.Name)
		summary := firstLine(t.Description)
		if _, err := fmt.Fprintf(r.w, "%s  %s\n", r.style("TemplateName", name), summary); err != nil {
			return err
		}
	}
	return nil
}

func (r *textReporter) Describe(info types.TemplateInfo) error {
	md := DescribeMarkdown(info)
	if r.styled {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err == nil {
			if rendered, err := renderer.Render(md); err == nil {
				md = rendered
			}
		}
	}
	_, err := io.WriteString(r.w, md)
	return err
}

func (r *textReporter) Message(msg string) error {
	_, err := fmt.Fprintln(r.w, msg)
	return err
}

// DescribeMarkdown documents a template as markdown
func DescribeMarkdown(info types.TemplateInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", info.Name)
	if info.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", info.Description)
	}
	b.WriteString("## Directories\n\n")
	for _, d := range info.Directories {
		fmt.Fprintf(&b, "- `%s/`\n", d)
	}
	b.WriteString("\n## Files\n\n")
	for _, f := range info.Files {
		fmt.Fprintf(&b, "- `%s`\n", f)
	}
	return b.String()
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
