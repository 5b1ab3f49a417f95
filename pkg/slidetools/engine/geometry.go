package engine

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/models"
)

var heightCompensation = decimal.RequireFromString("0.2")

func coordinate(shape *models.Shape, a axis) decimal.Decimal {
	if a == axisX {
		return shape.X
	}
	return shape.Y
}

func setCoordinate(shape *models.Shape, a axis, value decimal.Decimal) {
	if a == axisX {
		shape.X = value
	} else {
		shape.Y = value
	}
}

// distribute spaces the selected shapes evenly along an axis between the lowest and
// highest coordinate. The shapes at both extremes stay in place.
func distribute(s *Session, a axis) {
	shapes := s.SelectedShapes()
	if len(shapes) < 2 {
		return
	}
	sort.SliceStable(shapes, func(i, j int) bool {
		return coordinate(shapes[i], a).LessThan(coordinate(shapes[j], a))
	})

	first := coordinate(shapes[0], a)
	last := coordinate(shapes[len(shapes)-1], a)
	step := last.Sub(first).Div(decimal.NewFromInt(int64(len(shapes) - 1)))

	pos := first
	for i, shape := range shapes[1:] {
		pos = pos.Add(step)
		if i == len(shapes)-2 {
			pos = last
		}
		setCoordinate(shape, a, pos)
	}
}

// DistributeVertically spaces the selected shapes evenly by Y.
func DistributeVertically(s *Session) { distribute(s, axisY) }

// DistributeHorizontally spaces the selected shapes evenly by X.
func DistributeHorizontally(s *Session) { distribute(s, axisX) }

// decimalVariable reads name from the variable store as a decimal.
func decimalVariable(s *Session, name string) (decimal.Decimal, error) {
	value, ok := s.Variables.Get(name)
	if !ok {
		return decimal.Zero, fmt.Errorf("variable %q is not set", name)
	}
	d, err := ToDecimal(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error converting variable %q to decimal: %w", name, err)
	}
	return d, nil
}

// SetSelectedX moves every selected shape to the X stored in variable.
func SetSelectedX(s *Session, variable string) error {
	shapes := s.SelectedShapes()
	if len(shapes) == 0 {
		return nil
	}
	x, err := decimalVariable(s, variable)
	if err != nil {
		return err
	}
	for _, shape := range shapes {
		shape.X = x
	}
	return nil
}

// SetSelectedMaxWidth clamps every selected shape to the width stored in variable.
// With adjustHeight, a clamped shape grows by a fifth of the removed width.
func SetSelectedMaxWidth(s *Session, variable string, adjustHeight bool) error {
	shapes := s.SelectedShapes()
	if len(shapes) == 0 {
		return nil
	}
	ceiling, err := decimalVariable(s, variable)
	if err != nil {
		return err
	}
	for _, shape := range shapes {
		if !shape.Width.GreaterThan(ceiling) {
			continue
		}
		overage := shape.Width.Sub(ceiling)
		shape.Width = ceiling
		if adjustHeight {
			shape.Height = shape.Height.Add(overage.Mul(heightCompensation))
		}
	}
	return nil
}

// SetItemYFromVariable moves the shape stored in item to the Y stored in variable.
func SetItemYFromVariable(s *Session, item, variable string) error {
	stored, ok := s.Variables.Get(item)
	if !ok {
		return fmt.Errorf("item %q not found", item)
	}
	shape, ok := stored.(*models.Shape)
	if !ok {
		return fmt.Errorf("item %q is not a shape (%T)", item, stored)
	}
	y, err := decimalVariable(s, variable)
	if err != nil {
		return err
	}
	shape.Y = y
	return nil
}

// storeExtremum stores the lowest or highest coordinate of the selection along an axis
// in variable, or the shape holding it when item is set. The first shape wins ties.
// An empty selection leaves the variable unset.
func storeExtremum(s *Session, a axis, highest, item bool, variable string) {
	shapes := s.SelectedShapes()
	if len(shapes) == 0 {
		return
	}
	best := shapes[0]
	for _, shape := range shapes[1:] {
		c, b := coordinate(shape, a), coordinate(best, a)
		if (highest && c.GreaterThan(b)) || (!highest && c.LessThan(b)) {
			best = shape
		}
	}
	if item {
		s.Variables.Set(variable, best)
	} else {
		s.Variables.Set(variable, coordinate(best, a))
	}
}
