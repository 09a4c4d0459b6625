package source

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/xuri/excelize/v2"
)

// readXLSX returns the first worksheet as raw cell text. Raw values keep
// dates as Excel serials and amounts unformatted.
func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, parseFailure(FormatXLSX, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, parseFailure(FormatXLSX, errors.New("workbook has no sheets"))
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, parseFailure(FormatXLSX, err)
	}
	return rows, nil
}
