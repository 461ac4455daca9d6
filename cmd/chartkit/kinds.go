package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/spektr-org/chartkit/schema"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List chart kinds with their required roles and template channels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry()
		if err != nil {
			return err
		}
		return withOutput(func(w io.Writer) error {
			table := tablewriter.NewWriter(w)
			table.SetHeader([]string{"Kind", "Required roles", "Channels"})
			for _, kind := range reg.Kinds() {
				builder, _ := reg.Builder(kind)
				table.Append([]string{
					string(kind),
					joinOrDash(builder.RequiredRoles()),
					joinOrDash(reg.Channels(kind)),
				})
			}
			table.Render()
			return nil
		})
	},
}

var inspectData string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Profile the columns of a data file to help choose bindings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := readRows(inspectData)
		if err != nil {
			return err
		}
		profile := schema.Discover(rows)

		return withOutput(func(w io.Writer) error {
			if format == "json" || format == "pretty" {
				return writeJSON(w, profile)
			}
			table := tablewriter.NewWriter(w)
			table.SetHeader([]string{"Column", "Type", "Role", "Distinct", "Nulls", "Samples"})
			for _, c := range profile.Columns {
				table.Append([]string{
					c.Key,
					string(c.Type),
					string(c.Role),
					fmt.Sprintf("%d", c.Distinct),
					fmt.Sprintf("%d", c.Nulls),
					joinOrDash(c.Samples),
				})
			}
			table.Render()
			return nil
		})
	},
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectData, "data", "d", "", "Rows file (.csv, .json, .xlsx)")
	_ = inspectCmd.MarkFlagRequired("data")
	rootCmd.AddCommand(kindsCmd, inspectCmd)
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
