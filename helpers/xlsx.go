package helpers

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/chartkit/engine"
)

// ParseXLSX reads one sheet of an .xlsx workbook into a RowSet. The first
// row is the header. Cells follow the same typing rules as ParseCSV.
func ParseXLSX(data []byte, opts ...Options) (engine.RowSet, error) {
	opt := pickOptions(opts)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open workbook")
	}
	defer f.Close()

	sheet := opt.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	grid, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %q", sheet)
	}
	if len(grid) == 0 {
		return engine.RowSet{}, nil
	}
	return buildRows(grid[0], grid[1:], opt), nil
}
