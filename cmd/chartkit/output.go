package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ohler55/ojg/jp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/spektr-org/chartkit/engine"
)

// ============================================================================
// OUTPUT — json, pretty, csv, text
// ============================================================================

// createOutput opens the --out file.
var createOutput = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// withOutput runs fn against stdout or --out. A failed close fails the
// command.
func withOutput(fn func(w io.Writer) error) error {
	if outFile == "" {
		return fn(os.Stdout)
	}
	f, err := createOutput(outFile)
	if err != nil {
		return errors.Wrap(err, "failed to create output file")
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "failed to write output file")
	}
	logrus.WithField("file", outFile).Info("output written")
	return nil
}

func writeBuilt(built *engine.Built, title string) error {
	return withOutput(func(w io.Writer) error {
		switch format {
		case "csv":
			return writeCSV(w, engine.BuildTable(built, title))
		case "text":
			if title != "" {
				fmt.Fprintln(w, title)
			}
			fmt.Fprintln(w, engine.Summarize(built))
			for _, warn := range built.Warnings {
				fmt.Fprintf(w, "warning: %s\n", warn.Message)
			}
			return nil
		case "json", "pretty":
			if selectPath == "" {
				return writeJSON(w, built)
			}
			selected, err := selectJSON(built.Spec, selectPath)
			if err != nil {
				return err
			}
			return writeJSON(w, selected)
		}
		return errors.Errorf("unknown --format %q", format)
	})
}

// selectJSON applies a JSONPath to spec. A single match is returned bare.
func selectJSON(spec engine.Spec, path string) (any, error) {
	x, err := jp.ParseString(path)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid --select %q", path)
	}
	matches := x.Get(map[string]any(spec))
	if len(matches) == 1 {
		return matches[0], nil
	}
	return matches, nil
}

// ============================================================================
// CSV OUTPUT — Sheets-ready export of the built chart data
// ============================================================================

func writeCSV(w io.Writer, table *engine.TableData) error {
	cw := csv.NewWriter(w)
	headers := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		headers[i] = c.Label
	}
	if err := cw.Write(headers); err != nil {
		return errors.Wrap(err, "failed to write csv")
	}
	if err := cw.WriteAll(table.Rows); err != nil {
		return errors.Wrap(err, "failed to write csv")
	}
	return nil
}

// ============================================================================
// JSON OUTPUT
// ============================================================================

func writeJSON(w io.Writer, v any) error {
	var out []byte
	var err error
	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return errors.Wrap(err, "failed to marshal output")
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
