package describe

import (
	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/manifest"
	"github.com/arthur-debert/scaffold/pkg/templates"
	"github.com/arthur-debert/scaffold/pkg/types"
)

// DescribeOptions selects what to describe. Exactly one field is set.
type DescribeOptions struct {
	// Template is a built-in template name
	Template string

	// ManifestPath is a manifest file on disk
	ManifestPath string
}

// Describe summarises a built-in template or a manifest
func Describe(opts DescribeOptions) (types.TemplateInfo, error) {
	log := logging.GetLogger("commands.describe")

	var (
		s   *types.Scaffold
		err error
	)
	switch {
	case opts.Template != "" && opts.ManifestPath != "":
		return types.TemplateInfo{}, errors.New(errors.ErrInvalidInput, "describe takes a template name or a manifest, not both")
	case opts.ManifestPath != "":
		s, err = manifest.LoadFile(opts.ManifestPath)
	case opts.Template != "":
		s, err = templates.Get(opts.Template)
	default:
		return types.TemplateInfo{}, errors.New(errors.ErrInvalidInput, "no template or manifest given")
	}
	if err != nil {
		return types.TemplateInfo{}, err
	}

	log.Debug().Str("scaffold", s.Name).Msg("Describing scaffold")
	return templates.InfoFor(s), nil
}
