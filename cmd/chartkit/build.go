package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/spektr-org/chartkit/engine"
)

var (
	buildKind     string
	buildData     string
	buildBinds    []string
	buildSkeleton string
	buildTitle    string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a chart option from a data file and role bindings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry()
		if err != nil {
			return err
		}

		rows, err := readRows(buildData)
		if err != nil {
			return err
		}

		bindings, err := parseBindings(buildBinds)
		if err != nil {
			return err
		}

		kind := engine.ChartKind(buildKind)
		var built *engine.Built
		if buildSkeleton != "" {
			skeleton, err := readSkeleton(buildSkeleton)
			if err != nil {
				return err
			}
			built, err = reg.BuildWith(kind, skeleton, rows, bindings)
			if err != nil {
				return err
			}
		} else {
			built, err = reg.Build(kind, rows, bindings)
			if err != nil {
				return err
			}
		}

		return writeBuilt(built, buildTitle)
	},
}

func init() {
	flags := buildCmd.Flags()
	flags.StringVarP(&buildKind, "kind", "k", "", "Chart kind: bar, line, scatter, pie, radar, geo")
	flags.StringVarP(&buildData, "data", "d", "", "Rows file (.csv, .json, .xlsx)")
	flags.StringArrayVarP(&buildBinds, "bind", "b", nil, "Role binding role=field (repeatable)")
	flags.StringVar(&buildSkeleton, "skeleton", "", "JSON option to use instead of the kind's template")
	flags.StringVar(&buildTitle, "title", "", "Title used for csv/text output")
	_ = buildCmd.MarkFlagRequired("kind")
	_ = buildCmd.MarkFlagRequired("data")
	rootCmd.AddCommand(buildCmd)
}

// parseBindings turns ["x=month", "value=revenue"] into a BindingSet.
func parseBindings(pairs []string) (engine.BindingSet, error) {
	bindings := make([]engine.Binding, 0, len(pairs))
	for _, pair := range pairs {
		role, field, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(role) == "" {
			return engine.BindingSet{}, errors.Errorf("invalid --bind %q (want role=field)", pair)
		}
		bindings = append(bindings, engine.Binding{
			Name:  strings.TrimSpace(role),
			Field: strings.TrimSpace(field),
		})
	}
	return engine.NewBindingSet(bindings...)
}

func readSkeleton(path string) (engine.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skeleton")
	}
	var skeleton engine.Spec
	if err := json.Unmarshal(data, &skeleton); err != nil {
		return nil, errors.Wrap(err, "skeleton must be a JSON object")
	}
	return skeleton, nil
}
