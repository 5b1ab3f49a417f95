package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/models"
)

func TestDistributeVertically(t *testing.T) {
	a := box("A", "0", "10", "5", "5")
	b := box("B", "0", "50", "5", "5")
	c := box("C", "0", "30", "5", "5")
	s := newTestSession([]*models.Shape{a, b, c})
	s.Select(a, b, c)

	DistributeVertically(s)

	for _, tt := range []struct {
		shape    *models.Shape
		expected string
	}{{a, "10"}, {c, "30"}, {b, "50"}} {
		if !tt.shape.Y.Equal(dec(tt.expected)) {
			t.Errorf("Expected %s.Y = %s, got %s", tt.shape.Name, tt.expected, tt.shape.Y)
		}
	}
}

func TestDistributeHorizontallyEvenSteps(t *testing.T) {
	var shapes []*models.Shape
	for i, x := range []string{"0", "7", "3", "100", "11", "2", "9"} {
		shapes = append(shapes, box(string(rune('A'+i)), x, "0", "1", "1"))
	}
	s := newTestSession(shapes)
	for _, shape := range shapes {
		s.Select(shape)
	}

	DistributeHorizontally(s)

	xs := make([]decimal.Decimal, len(shapes))
	for i, shape := range shapes {
		xs[i] = shape.X
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		lo = decimal.Min(lo, x)
		hi = decimal.Max(hi, x)
	}
	if !lo.Equal(dec("0")) || !hi.Equal(dec("100")) {
		t.Errorf("Expected extremes 0 and 100 to be kept, got %s and %s", lo, hi)
	}

	sorted := s.SelectedShapes()
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].X.LessThan(sorted[i].X) {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	step := sorted[1].X.Sub(sorted[0].X)
	tolerance := dec("0.000000001")
	for i := 2; i < len(sorted); i++ {
		diff := sorted[i].X.Sub(sorted[i-1].X)
		if diff.Sub(step).Abs().GreaterThan(tolerance) {
			t.Errorf("Expected equal steps, got %s and %s", step, diff)
		}
	}
}

func TestDistributeSingleItemIsNoop(t *testing.T) {
	a := box("A", "4", "17", "5", "5")
	s := newTestSession([]*models.Shape{a})
	s.Select(a)

	DistributeVertically(s)
	DistributeHorizontally(s)

	if !a.X.Equal(dec("4")) || !a.Y.Equal(dec("17")) {
		t.Errorf("Expected unchanged position, got (%s, %s)", a.X, a.Y)
	}
}

func TestDistributeIgnoresNonShapes(t *testing.T) {
	a := box("A", "0", "0", "1", "1")
	b := box("B", "0", "20", "1", "1")
	s := newTestSession([]*models.Shape{a, b})
	s.Select(&models.Slide{}, a, "text", b)

	DistributeVertically(s)

	if !a.Y.Equal(dec("0")) || !b.Y.Equal(dec("20")) {
		t.Errorf("Expected unchanged extremes, got %s and %s", a.Y, b.Y)
	}
}

func TestSetSelectedMaxWidth(t *testing.T) {
	tests := []struct {
		adjust         bool
		expectedHeight string
	}{
		{false, "50"},
		{true, "58"},
	}

	for _, tt := range tests {
		wide := box("Wide", "0", "0", "100", "50")
		narrow := box("Narrow", "0", "0", "40", "50")
		s := newTestSession([]*models.Shape{wide, narrow})
		s.Select(wide, narrow)
		s.Variables.Set("MaxWidth", "60")

		if err := SetSelectedMaxWidth(s, "MaxWidth", tt.adjust); err != nil {
			t.Fatalf("SetSelectedMaxWidth failed: %v", err)
		}
		if !wide.Width.Equal(dec("60")) {
			t.Errorf("Expected width 60, got %s", wide.Width)
		}
		if !wide.Height.Equal(dec(tt.expectedHeight)) {
			t.Errorf("adjust=%v: expected height %s, got %s", tt.adjust, tt.expectedHeight, wide.Height)
		}
		if !narrow.Width.Equal(dec("40")) || !narrow.Height.Equal(dec("50")) {
			t.Errorf("Expected narrow shape unchanged, got %sx%s", narrow.Width, narrow.Height)
		}
	}
}

func TestSetSelectedMaxWidthUnits(t *testing.T) {
	wide := box("Wide", "0", "0", "100", "50")
	s := newTestSession([]*models.Shape{wide})
	s.Select(wide)
	s.Variables.Set("MaxWidth", "1in")

	if err := SetSelectedMaxWidth(s, "MaxWidth", false); err != nil {
		t.Fatalf("SetSelectedMaxWidth failed: %v", err)
	}
	if !wide.Width.Equal(dec("72")) {
		t.Errorf("Expected width 72, got %s", wide.Width)
	}
}

func TestSetSelectedX(t *testing.T) {
	a := box("A", "1", "0", "1", "1")
	b := box("B", "2", "0", "1", "1")
	s := newTestSession([]*models.Shape{a, b})
	s.Select(a, b)

	s.Variables.Set("Left", "not a number")
	if err := SetSelectedX(s, "Left"); err == nil {
		t.Error("Expected conversion error")
	}
	if !a.X.Equal(dec("1")) || !b.X.Equal(dec("2")) {
		t.Errorf("Expected positions unchanged after failure, got %s, %s", a.X, b.X)
	}

	s.Variables.Set("Left", "0.5in")
	if err := SetSelectedX(s, "Left"); err != nil {
		t.Fatalf("SetSelectedX failed: %v", err)
	}
	if !a.X.Equal(dec("36")) || !b.X.Equal(dec("36")) {
		t.Errorf("Expected X 36, got %s, %s", a.X, b.X)
	}
}

func TestSetItemYFromVariable(t *testing.T) {
	a := box("A", "0", "5", "1", "1")
	s := newTestSession([]*models.Shape{a})
	s.Variables.Set("Item", a)
	s.Variables.Set("Top", "25d")
	s.Variables.Set("NotShape", "hello")

	if err := SetItemYFromVariable(s, "Item", "Top"); err != nil {
		t.Fatalf("SetItemYFromVariable failed: %v", err)
	}
	if !a.Y.Equal(dec("25")) {
		t.Errorf("Expected Y 25, got %s", a.Y)
	}

	if err := SetItemYFromVariable(s, "Missing", "Top"); err == nil {
		t.Error("Expected error for missing item")
	}
	if err := SetItemYFromVariable(s, "NotShape", "Top"); err == nil {
		t.Error("Expected error for non-shape item")
	}
	if err := SetItemYFromVariable(s, "Item", "NotShape"); err == nil {
		t.Error("Expected error for non-decimal value")
	}
}

func TestStoreExtremum(t *testing.T) {
	a := box("A", "30", "20", "1", "1")
	b := box("B", "10", "40", "1", "1")
	c := box("C", "20", "40", "1", "1")
	d := box("D", "50", "20", "1", "1")
	s := newTestSession([]*models.Shape{a, b, c, d})
	s.Select(a, b, c, d)

	storeExtremum(s, axisY, true, false, "MaxY")
	storeExtremum(s, axisY, false, false, "MinY")
	storeExtremum(s, axisX, false, false, "MinX")
	storeExtremum(s, axisY, true, true, "MaxYItem")
	storeExtremum(s, axisY, false, true, "MinYItem")

	for name, expected := range map[string]string{"MaxY": "40", "MinY": "20", "MinX": "10"} {
		value, _ := s.Variables.Get(name)
		if d, ok := value.(decimal.Decimal); !ok || !d.Equal(dec(expected)) {
			t.Errorf("Expected %s = %s, got %v", name, expected, value)
		}
	}
	if item, _ := s.Variables.Get("MaxYItem"); item != b {
		t.Errorf("Expected first max item B, got %v", item)
	}
	if item, _ := s.Variables.Get("MinYItem"); item != a {
		t.Errorf("Expected first min item A, got %v", item)
	}
}

func TestStoreExtremumEmptySelection(t *testing.T) {
	s := newTestSession(nil)
	storeExtremum(s, axisY, true, false, "MaxY")
	if _, ok := s.Variables.Get("MaxY"); ok {
		t.Error("Expected variable to stay unset")
	}
}
