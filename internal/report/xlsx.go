// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

// SheetName is the worksheet that holds the records.
const SheetName = "Papers"

// XLSXWriter writes records to a single-sheet workbook.
type XLSXWriter struct {
	Path string
}

// Write replaces the workbook at Path.
func (x *XLSXWriter) Write(records []types.ClassifiedRecord) error {
	if err := ensureDir(x.Path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		cells := row(r)
		values := make([]interface{}, len(cells))
		for j, v := range cells {
			values[j] = v
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row for %s: %w", r.PubmedID, err)
		}
	}

	// Author-derived cells hold one line per author.
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("creating cell style: %w", err)
	}
	if err := f.SetColStyle(SheetName, "A:F", style); err != nil {
		return fmt.Errorf("applying cell style: %w", err)
	}
	if err := f.SetColWidth(SheetName, "B", "B", 60); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "D", "F", 40); err != nil {
		return err
	}

	if err := f.SaveAs(x.Path); err != nil {
		return fmt.Errorf("saving %s: %w", x.Path, err)
	}
	return nil
}
