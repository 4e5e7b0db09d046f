package sheetdb

import (
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"
)

// XLSXBackend stores the sheet collection in a local .xlsx workbook. Every
// mutation saves the file, so a crash loses at most the in-flight write.
type XLSXBackend struct {
	mu   sync.Mutex
	path string
	f    *excelize.File
}

// NewXLSXBackend opens or creates the workbook at path. A fresh workbook
// keeps excelize's default "Sheet1" until the store creates the real sheets;
// it is removed once another sheet exists.
func NewXLSXBackend(path string) (*XLSXBackend, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: workbook path is empty", ErrCredentials)
	}
	var f *excelize.File
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f = excelize.NewFile()
		if err := f.SaveAs(path); err != nil {
			return nil, fmt.Errorf("create workbook %s: %w", path, err)
		}
	} else {
		var err error
		f, err = excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("open workbook %s: %w", path, err)
		}
	}
	return &XLSXBackend{path: path, f: f}, nil
}

func (x *XLSXBackend) SheetNames() ([]string, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.f.GetSheetList(), nil
}

func (x *XLSXBackend) CreateSheet(name string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if _, err := x.f.NewSheet(name); err != nil {
		return err
	}
	// Drop the placeholder sheet once a real one exists.
	if name != "Sheet1" {
		for _, n := range x.f.GetSheetList() {
			if n == "Sheet1" {
				rows, err := x.f.GetRows("Sheet1")
				if err == nil && len(rows) == 0 {
					x.f.DeleteSheet("Sheet1")
				}
				break
			}
		}
	}
	return x.save()
}

func (x *XLSXBackend) ReadAll(sheet string) ([][]string, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	idx, err := x.f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)
	}
	return x.f.GetRows(sheet)
}

func (x *XLSXBackend) AppendRow(sheet string, values []string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	rows, err := x.f.GetRows(sheet)
	if err != nil {
		return err
	}
	rowIdx := len(rows) + 1
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowIdx)
		if err != nil {
			return err
		}
		if err := x.f.SetCellStr(sheet, cell, v); err != nil {
			return err
		}
	}
	return x.save()
}

func (x *XLSXBackend) UpdateCell(sheet string, row, col int, value string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := x.f.SetCellStr(sheet, cell, value); err != nil {
		return err
	}
	return x.save()
}

func (x *XLSXBackend) DeleteRow(sheet string, row int) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if err := x.f.RemoveRow(sheet, row); err != nil {
		return err
	}
	return x.save()
}

func (x *XLSXBackend) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.f.Close()
}

func (x *XLSXBackend) save() error {
	if err := x.f.SaveAs(x.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", x.path, err)
	}
	return nil
}
