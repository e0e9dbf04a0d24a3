package scaffold

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Generate the boilerplate files of a web application shell"
	MsgGenerateShort   = "Create the scaffold directories and files"
	MsgListShort       = "List the built-in templates"
	MsgListLong        = "List displays every built-in template with the first line of its description."
	MsgDescribeShort   = "Show the directories and files of a template"
	MsgGenConfigShort  = "Print the default configuration"
	MsgGenConfigLong   = "Print the default configuration with every value commented out.\n\nWith --write the output is saved as .scaffold.toml in the current directory, unless that file already exists."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"
	MsgManLong         = "Print the scaffold man page to stdout, or write a page per command into --dir."

	// Status messages
	MsgConfigWritten = "Wrote %s"
	MsgConfigExists  = "%s already exists, nothing written"
	MsgVersionFormat = "scaffold version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrNoCommand  = "no command specified"

	// Flag descriptions
	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat        = "Output format: auto, term, text or json"
	MsgFlagTemplate      = "Template to generate, repeatable (default from templates.default)"
	MsgFlagManifest      = "Scaffold manifest file (.toml, .yaml or .yml)"
	MsgFlagOverwrite     = "What to do with existing files: overwrite, error or skip"
	MsgFlagTransactional = "Apply all changes as one batch and roll back on failure"
	MsgFlagDryRun        = "Run against an in-memory copy, nothing is written to disk"
	MsgFlagWrite         = "Write the config to ./.scaffold.toml instead of stdout"
	MsgFlagManDir        = "Write one man page per command into this directory"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/generate-long.txt
	msgGenerateLongRaw string
	MsgGenerateLong    = strings.TrimSpace(msgGenerateLongRaw)

	//go:embed msgs/generate-example.txt
	msgGenerateExampleRaw string
	MsgGenerateExample    = strings.TrimSpace(msgGenerateExampleRaw)

	//go:embed msgs/describe-example.txt
	msgDescribeExampleRaw string
	MsgDescribeExample    = strings.TrimSpace(msgDescribeExampleRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
