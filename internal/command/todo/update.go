package todo

import (
	"fmt"
	"os"

	"github.com/bornholm/todo/internal/command/common"
	"github.com/bornholm/todo/internal/core/model"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func toggleCommand() *cli.Command {
	flags := common.WithCommonFlags(outputFlag())

	return &cli.Command{
		Name:      "toggle",
		Usage:     "Flip the completion state of a todo",
		ArgsUsage: "<id>",
		Flags:     flags,
		Before:    common.LoadConfig(flags),
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			todoClient, err := common.GetTodoClient(cCtx)
			if err != nil {
				return errors.Wrap(err, "could not create todo client")
			}

			todoID := model.TodoID(cCtx.Args().First())

			todo, err := todoClient.ToggleTodo(ctx, todoID)
			if err != nil {
				return errors.Wrapf(err, "could not toggle todo '%s'", todoID)
			}

			if err := writeTodos(os.Stdout, cCtx.String(flagOutput), *todo); err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
	}
}

func setCommand() *cli.Command {
	flags := common.WithCommonFlags(
		outputFlag(),
		&cli.BoolFlag{
			Name:  flagCompleted,
			Value: true,
			Usage: "Completion state to set, use --completed=false to reopen the todo",
		},
	)

	return &cli.Command{
		Name:      "set",
		Usage:     "Set the completion state of a todo",
		ArgsUsage: "<id>",
		Flags:     flags,
		Before:    common.LoadConfig(flags),
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			todoClient, err := common.GetTodoClient(cCtx)
			if err != nil {
				return errors.Wrap(err, "could not create todo client")
			}

			todoID := model.TodoID(cCtx.Args().First())

			todo, err := todoClient.SetTodo(ctx, todoID, cCtx.Bool(flagCompleted))
			if err != nil {
				return errors.Wrapf(err, "could not update todo '%s'", todoID)
			}

			if err := writeTodos(os.Stdout, cCtx.String(flagOutput), *todo); err != nil {
				return errors.WithStack(err)
			}

			return nil
		},
	}
}

func deleteCommand() *cli.Command {
	flags := common.WithCommonFlags()

	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a todo",
		ArgsUsage: "<id>",
		Flags:     flags,
		Before:    common.LoadConfig(flags),
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			todoClient, err := common.GetTodoClient(cCtx)
			if err != nil {
				return errors.Wrap(err, "could not create todo client")
			}

			todoID := model.TodoID(cCtx.Args().First())

			if err := todoClient.DeleteTodo(ctx, todoID); err != nil {
				return errors.Wrapf(err, "could not delete todo '%s'", todoID)
			}

			fmt.Fprintf(os.Stdout, "todo '%s' deleted\n", todoID)

			return nil
		},
	}
}
