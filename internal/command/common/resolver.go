package common

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
	"gopkg.in/yaml.v3"
)

func NewFileSourceFromFlagFunc(flag string) func(cCtx *cli.Context) (altsrc.InputSourceContext, error) {
	return func(cCtx *cli.Context) (altsrc.InputSourceContext, error) {
		if path := cCtx.String(flag); path != "" {
			return NewFileInputSource(path)
		}

		return altsrc.NewMapInputSource("", map[any]any{}), nil
	}
}

func NewFileInputSource(path string) (altsrc.InputSourceContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read file '%s'", path)
	}

	ext := filepath.Ext(path)
	switch ext {
	case ".json":
		fallthrough
	case ".yaml":
		fallthrough
	case ".yml":
		var values map[any]any

		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, errors.WithStack(err)
		}

		if values == nil {
			values = map[any]any{}
		}

		return altsrc.NewMapInputSource(path, values), nil

	default:
		return nil, errors.Errorf("no parser associated with '%s' file extension", ext)
	}
}
