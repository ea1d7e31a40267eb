package todo

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/bornholm/todo/internal/http/handler/api"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

type todoView struct {
	ID          string    `json:"id" yaml:"id"`
	Value       string    `json:"value" yaml:"value"`
	IsCompleted bool      `json:"isCompleted" yaml:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}

func writeTodos(w io.Writer, format string, todos ...api.Todo) error {
	views := make([]todoView, 0, len(todos))
	for _, t := range todos {
		views = append(views, todoView{
			ID:          string(t.ID),
			Value:       t.Value,
			IsCompleted: t.IsCompleted,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		})
	}

	switch format {
	case OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(views); err != nil {
			return errors.WithStack(err)
		}

	case OutputYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		if err := encoder.Encode(views); err != nil {
			return errors.WithStack(err)
		}

		if err := encoder.Close(); err != nil {
			return errors.WithStack(err)
		}

	case OutputTable, "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

		fmt.Fprintln(tw, "ID\tDONE\tVALUE\tCREATED")

		for _, v := range views {
			done := " "
			if v.IsCompleted {
				done = "x"
			}

			fmt.Fprintf(tw, "%s\t[%s]\t%s\t%s\n", v.ID, done, v.Value, humanize.Time(v.CreatedAt))
		}

		if err := tw.Flush(); err != nil {
			return errors.WithStack(err)
		}

	default:
		return errors.Errorf("unknown output format '%s'", format)
	}

	return nil
}
