package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ukaji3/slidetools-go/pkg/slidetools/models"
	"github.com/xuri/excelize/v2"
)

// InventorySheet is the worksheet name of an xlsx inventory.
const InventorySheet = "Shapes"

var inventoryHeader = []string{
	"Slide", "Path", "Name", "Kind", "X", "Y", "Width", "Height", "Text", "Fonts", "Bullet", "Image",
}

// InventoryRow is one shape of a presentation, flattened. Geometry is in inches.
type InventoryRow struct {
	Slide  int     `json:"slide"`
	Path   string  `json:"path"`
	Name   string  `json:"name"`
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Text   string  `json:"text,omitempty"`
	Fonts  string  `json:"fonts,omitempty"`
	Bullet bool    `json:"bullet"`
	Image  string  `json:"image,omitempty"`
}

// Inventory flattens every shape of pres, groups first then their children.
// Slide numbers are 1-based; Path joins group names with "/".
func Inventory(pres *models.Presentation) []InventoryRow {
	var rows []InventoryRow
	for i, slide := range pres.Slides {
		rows = appendRows(rows, i+1, "", slide.Shapes)
	}
	return rows
}

func appendRows(rows []InventoryRow, slide int, prefix string, shapes []*models.Shape) []InventoryRow {
	for _, shape := range shapes {
		path := shape.Name
		if prefix != "" {
			path = prefix + "/" + shape.Name
		}
		row := InventoryRow{
			Slide:  slide,
			Path:   path,
			Name:   shape.Name,
			Kind:   string(shape.Kind),
			X:      Inches(shape.X).InexactFloat64(),
			Y:      Inches(shape.Y).InexactFloat64(),
			Width:  Inches(shape.Width).InexactFloat64(),
			Height: Inches(shape.Height).InexactFloat64(),
			Text:   shape.Text(),
			Fonts:  strings.Join(FontSignatures(shape), ";"),
			Bullet: shape.HasBullet(),
		}
		if shape.Picture != nil {
			row.Image = shape.Picture.Image
		}
		rows = append(rows, row)
		if shape.IsGroup() {
			rows = appendRows(rows, slide, path, shape.Children)
		}
	}
	return rows
}

// WriteInventory writes rows to filename as .xlsx or .json, chosen by extension.
func WriteInventory(filename string, rows []InventoryRow) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return writeInventoryXLSX(filename, rows)
	case ".json":
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		return os.WriteFile(filename, data, 0644)
	}
	return fmt.Errorf("unsupported inventory format: %s", filename)
}

func writeInventoryXLSX(filename string, rows []InventoryRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", InventorySheet); err != nil {
		return err
	}

	header := make([]any, len(inventoryHeader))
	for i, h := range inventoryHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(InventorySheet, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastCell, _ := excelize.CoordinatesToCellName(len(inventoryHeader), 1)
	if err := f.SetCellStyle(InventorySheet, "A1", lastCell, bold); err != nil {
		return err
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{
			row.Slide, row.Path, row.Name, row.Kind,
			row.X, row.Y, row.Width, row.Height,
			row.Text, row.Fonts, row.Bullet, row.Image,
		}
		if err := f.SetSheetRow(InventorySheet, cell, &values); err != nil {
			return err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return err
	}
	return os.WriteFile(filename, buf.Bytes(), 0644)
}

// ReadInventory reads an inventory written by WriteInventory.
func ReadInventory(filename string) ([]InventoryRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return readInventoryXLSX(filename)
	case ".json":
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
		var rows []InventoryRow
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, err
		}
		return rows, nil
	}
	return nil, fmt.Errorf("unsupported inventory format: %s", filename)
}

// CompareInventory reports the first row of got that does not identify the same shape
// as expected.
func CompareInventory(expected, got []InventoryRow) error {
	if len(got) != len(expected) {
		return fmt.Errorf("expected %d rows, got %d", len(expected), len(got))
	}
	for i := range expected {
		e, g := expected[i], got[i]
		if e.Slide != g.Slide || e.Path != g.Path || e.Kind != g.Kind {
			return fmt.Errorf("row %d: expected %d %s (%s), got %d %s (%s)", i+1, e.Slide, e.Path, e.Kind, g.Slide, g.Path, g.Kind)
		}
	}
	return nil
}

func readInventoryXLSX(filename string) ([]InventoryRow, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(InventorySheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("inventory %s has no header", filename)
	}

	var result []InventoryRow
	for _, cells := range rows[1:] {
		// GetRows trims trailing empty cells.
		for len(cells) < len(inventoryHeader) {
			cells = append(cells, "")
		}
		slide, err := strconv.Atoi(cells[0])
		if err != nil {
			return nil, fmt.Errorf("slide %q: %w", cells[0], err)
		}
		row := InventoryRow{
			Slide: slide,
			Path:  cells[1],
			Name:  cells[2],
			Kind:  cells[3],
			Text:  cells[8],
			Fonts: cells[9],
			Image: cells[11],
		}
		for i, dst := range []*float64{&row.X, &row.Y, &row.Width, &row.Height} {
			if cells[4+i] == "" {
				continue
			}
			if *dst, err = strconv.ParseFloat(cells[4+i], 64); err != nil {
				return nil, fmt.Errorf("%s %q: %w", inventoryHeader[4+i], cells[4+i], err)
			}
		}
		row.Bullet, _ = strconv.ParseBool(cells[10])
		result = append(result, row)
	}
	return result, nil
}
