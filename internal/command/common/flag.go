package common

import (
	"net/url"

	"github.com/bornholm/todo/pkg/client"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

const (
	paramServer = "server"
	paramConfig = "config"
)

var (
	flagServer = altsrc.NewStringFlag(&cli.StringFlag{
		Name:    paramServer,
		Aliases: []string{"s"},
		Value:   "http://localhost:3000",
		EnvVars: []string{"TODO_CLI_SERVER"},
		Usage:   "Todo server base url",
	})
)

func WithCommonFlags(flags ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		flagServer,
	}, flags...)
}

// LoadConfig fills the flags not set on the command line with the values
// of the yaml file given with the global --config flag.
func LoadConfig(flags []cli.Flag) cli.BeforeFunc {
	return altsrc.InitInputSourceWithContext(flags, NewFileSourceFromFlagFunc(paramConfig))
}

func GetTodoClient(ctx *cli.Context) (*client.Client, error) {
	rawServerURL := ctx.String(paramServer)

	serverURL, err := url.Parse(rawServerURL)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return client.New(
		client.WithBaseURL(serverURL),
	), nil
}
