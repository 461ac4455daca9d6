package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spektr-org/chartkit/engine"
	"github.com/spektr-org/chartkit/response"
)

var renderCmd = &cobra.Command{
	Use:   "render [response.json]...",
	Short: "Render query service responses into chart options or reports",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry()
		if err != nil {
			return err
		}

		raws := make([][]byte, 0, len(args))
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrap(err, "failed to read response")
			}
			raws = append(raws, data)
		}
		replay, err := response.ParseReplay(raws...)
		if err != nil {
			return err
		}

		for i := range args {
			env, err := replay.Query("")
			if err != nil {
				return err
			}
			rendered, err := response.Render(reg, env.Data)
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"file": args[i],
				"type": rendered.Type,
			}).Info("rendered response")

			if err := writeRendered(rendered); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func writeRendered(r *response.Rendered) error {
	if r.Type == response.TypeReport {
		return withOutput(func(w io.Writer) error {
			switch format {
			case "json", "pretty":
				return writeJSON(w, r)
			default:
				_, err := fmt.Fprintln(w, r.Doc)
				return err
			}
		})
	}

	built := &engine.Built{
		Kind:     engine.ChartKind(r.ChartID),
		Spec:     r.Spec,
		Warnings: r.Warnings,
	}
	return writeBuilt(built, r.Title)
}
