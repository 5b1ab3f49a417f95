// Package report renders presentations as text reports and shape inventories.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/models"
)

const separator = "----------------------------------------"

var pointsPerInch = decimal.NewFromInt(72)

// Inches converts points to inches rounded to at most two decimals.
func Inches(points decimal.Decimal) decimal.Decimal {
	return points.Div(pointsPerInch).Round(2)
}

func line(w io.Writer, indent int, format string, args ...any) {
	fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", indent), fmt.Sprintf(format, args...))
}

// PrintShape writes shape at indent.
// A leaf prints its name, then its details one level deeper. A group prints
// "name: GROUP" and its children one level deeper.
func PrintShape(w io.Writer, shape *models.Shape, indent int) {
	if shape.IsGroup() {
		line(w, indent, "%s: GROUP", shape.Name)
		for _, child := range shape.Children {
			PrintShape(w, child, indent+1)
		}
		return
	}

	line(w, indent, "%s", shape.Name)
	detail := indent + 1
	line(w, detail, "T: %s", shape.Kind.ReportTag())
	line(w, detail, "X: %s", Inches(shape.X))
	line(w, detail, "Y: %s", Inches(shape.Y))
	line(w, detail, "W: %s", Inches(shape.Width))
	line(w, detail, "H: %s", Inches(shape.Height))

	switch shape.Kind {
	case models.KindPicture:
		if shape.Picture != nil && shape.Picture.Image != "" {
			line(w, detail, "-> not null")
		} else {
			line(w, detail, "-> null")
		}
	case models.KindText:
		line(w, detail, "-> %s", shape.Text())
		fonts := FontSignatures(shape)
		line(w, detail, "F: %s", strings.Join(fonts, ";"))
		if len(fonts) > 0 && shape.HasBullet() {
			line(w, detail, "B: Bullet")
		} else {
			line(w, detail, "B: No Bullet")
		}
	}
}

// FontSignatures returns the distinct "name:size" pairs of the shape's text runs in
// order of first occurrence.
func FontSignatures(shape *models.Shape) []string {
	var fonts []string
	seen := make(map[string]bool)
	for _, p := range shape.Paragraphs {
		for _, portion := range p.Portions {
			sig := fmt.Sprintf("%s:%s", portion.FontName, portion.FontSize)
			if !seen[sig] {
				seen[sig] = true
				fonts = append(fonts, sig)
			}
		}
	}
	return fonts
}

// SlideReport writes the report of every slide of pres.
func SlideReport(w io.Writer, pres *models.Presentation) {
	line(w, 0, "*** SLIDE REPORT ***")
	line(w, 0, "Width:       %s", Inches(pres.SlideWidth))
	line(w, 0, "Height:      %s", Inches(pres.SlideHeight))
	line(w, 0, "")
	line(w, 0, "Slide Count: %d", len(pres.Slides))

	for i, slide := range pres.Slides {
		line(w, 0, "")
		line(w, 0, "Slide %d", i+1)
		line(w, 0, separator)
		for _, shape := range slide.Shapes {
			PrintShape(w, shape, 1)
		}
		line(w, 0, separator)
	}
}

// WriteSlideReport renders the report in memory and writes it to filename.
func WriteSlideReport(filename string, pres *models.Presentation) error {
	var b strings.Builder
	SlideReport(&b, pres)
	return os.WriteFile(filename, []byte(b.String()), 0644)
}
