// Package commands is the orchestration layer between the CLI and the
// scaffold packages. Each command lives in its own subdirectory:
//   - generate/  - emit templates or a manifest into a base directory
//   - list/      - list the built-in templates
//   - describe/  - summarise a template or manifest
//   - genconfig/ - print or write the default configuration
//
// This file re-exports the command functions so callers import one package.
package commands

import (
	"github.com/arthur-debert/scaffold/pkg/commands/describe"
	"github.com/arthur-debert/scaffold/pkg/commands/generate"
	"github.com/arthur-debert/scaffold/pkg/commands/genconfig"
	"github.com/arthur-debert/scaffold/pkg/commands/list"
	"github.com/arthur-debert/scaffold/pkg/types"
)

// GenerateOptions configures Generate.
type GenerateOptions = generate.GenerateOptions

// Generate emits the selected scaffold into the base directory.
func Generate(opts GenerateOptions) (*types.RunResult, error) {
	return generate.Generate(opts)
}

// ListTemplates returns every built-in template.
func ListTemplates() (*types.ListTemplatesResult, error) {
	return list.ListTemplates()
}

// DescribeOptions configures Describe.
type DescribeOptions = describe.DescribeOptions

// Describe summarises a template or manifest.
func Describe(opts DescribeOptions) (types.TemplateInfo, error) {
	return describe.Describe(opts)
}

// GenConfigOptions configures GenConfig.
type GenConfigOptions = genconfig.GenConfigOptions

// GenConfig outputs or writes the default configuration.
func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	return genconfig.GenConfig(opts)
}
