package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spektr-org/chartkit/engine"
	"github.com/spektr-org/chartkit/helpers"
	"github.com/spektr-org/chartkit/templates"
)

// ============================================================================
// CHARTKIT CLI — Build chart options from tabular results
// ============================================================================

const version = "0.3.0"

var (
	templatesDir string
	logLevel     string
	strictGeo    bool
	dateLayout   string
	format       string
	outFile      string
	selectPath   string
	sheet        string
)

var rootCmd = &cobra.Command{
	Use:   "chartkit",
	Short: "Bind tabular query results to chart templates",
	Long: `chartkit turns rows plus role→column bindings into a render-ready chart option.

Examples:
  chartkit build --kind bar --data sales.csv --bind group=region --bind x=month --bind value=revenue
  chartkit build --kind pie --data shares.json --bind category=industry --bind value=percentage --format csv
  chartkit render response.json --format pretty --select '$.series[*].name'
  chartkit inspect --data sales.xlsx
  chartkit kinds

Environment:
  CHARTKIT_TEMPLATES   Directory of template overrides (same as --templates)
  CHARTKIT_LOG_LEVEL   Log level (same as --log-level)`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return errors.Wrap(err, "invalid --log-level")
		}
		logrus.SetLevel(level)
		logrus.SetOutput(os.Stderr)
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&templatesDir, "templates", os.Getenv("CHARTKIT_TEMPLATES"), "Directory of template overrides (*.json, *.yaml)")
	flags.StringVar(&logLevel, "log-level", envOr("CHARTKIT_LOG_LEVEL", "warning"), "Log level: debug, info, warning, error")
	flags.BoolVar(&strictGeo, "strict-geo", false, "Fail geo builds instead of returning the template unchanged")
	flags.StringVar(&dateLayout, "date-layout", engine.DefaultDateLayout, "Go time layout for timestamp axes on line charts")
	flags.StringVarP(&format, "format", "f", "json", "Output format: json, pretty, csv, text")
	flags.StringVarP(&outFile, "out", "o", "", "Write output to file instead of stdout")
	flags.StringVar(&selectPath, "select", "", "JSONPath applied to the built spec before output (json/pretty only)")
	flags.StringVar(&sheet, "sheet", "", "Sheet name for .xlsx data (default: first sheet)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("chartkit failed")
		os.Exit(1)
	}
}

// ============================================================================
// SETUP HELPERS
// ============================================================================

// loadStore returns the embedded templates, overridden by --templates.
func loadStore() (*templates.Store, error) {
	store := templates.Defaults()
	if templatesDir == "" {
		return store, nil
	}
	custom, err := templates.LoadDir(templatesDir)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"dir":       templatesDir,
		"templates": strings.Join(custom.IDs(), ","),
	}).Info("loaded template overrides")
	return store.Override(custom), nil
}

func newRegistry() (*engine.Registry, error) {
	store, err := loadStore()
	if err != nil {
		return nil, err
	}
	return engine.NewRegistry(store,
		engine.WithLogger(logrus.StandardLogger()),
		engine.WithStrictGeo(strictGeo),
		engine.WithDateLayout(dateLayout),
	)
}

// readRows loads rows from a .csv, .json or .xlsx file.
func readRows(path string) (engine.RowSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read data file")
	}

	var rows engine.RowSet
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = helpers.ParseCSV(data)
	case ".json":
		rows, err = helpers.ParseJSON(data)
	case ".xlsx":
		rows, err = helpers.ParseXLSX(data, helpers.Options{Sheet: sheet})
	default:
		return nil, errors.Errorf("unsupported data file %q (want .csv, .json or .xlsx)", path)
	}
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"file": path, "rows": len(rows)}).Info("parsed rows")
	return rows, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
