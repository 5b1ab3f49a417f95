// Package parser reads and writes PowerPoint (.pptx) packages.
package parser

import "github.com/shopspring/decimal"

// EMUPerPoint is the number of EMUs (English Metric Units) per point.
// 1 inch = 914400 EMU, 1 inch = 72 points.
// Therefore: 914400 / 72 = 12700 EMU per point
const EMUPerPoint = 12700

var emuPerPoint = decimal.NewFromInt(EMUPerPoint)

// EMUToPoints converts EMU to points.
// DrawingML stores offsets and extents in EMU; the object model works in points.
func EMUToPoints(emu int64) decimal.Decimal {
	return decimal.NewFromInt(emu).Div(emuPerPoint)
}

// PointsToEMU converts points to EMU, rounded to the nearest whole EMU.
func PointsToEMU(points decimal.Decimal) int64 {
	return points.Mul(emuPerPoint).Round(0).IntPart()
}

// fontSizeToPoints converts a DrawingML font size (hundredths of a point) to points.
func fontSizeToPoints(sz int64) decimal.Decimal {
	return decimal.New(sz, -2)
}
