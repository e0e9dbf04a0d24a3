package list

import (
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/templates"
	"github.com/arthur-debert/scaffold/pkg/types"
)

// ListTemplates returns every built-in template in name order.
func ListTemplates() (*types.ListTemplatesResult, error) {
	log := logging.GetLogger("commands.list")
	log.Debug().Str("command", "ListTemplates").Msg("Executing command")

	infos, err := templates.Info()
	if err != nil {
		return nil, err
	}

	result := &types.ListTemplatesResult{Templates: infos}

	log.Info().Str("command", "ListTemplates").Int("templateCount", len(result.Templates)).Msg("Command finished")
	return result, nil
}
