package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/models"
)

var (
	// unitPattern matches a magnitude followed by a unit, e.g. "1in", "25.4mm", "10d".
	unitPattern = regexp.MustCompile(`^\s*([+-]?(?:\d+\.?\d*|\.\d+))\s*([A-Za-z]+)\s*$`)
	// placeholderPattern matches a {name} reference inside an expression.
	placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_.]*)\}`)

	pointsPerInch = decimal.NewFromInt(72)
	mmPerInch     = decimal.RequireFromString("25.4")
)

// CoerceUnit converts "<number><unit>" to points. Units are d (points), in and mm,
// matched case-insensitively. Any other input is returned unchanged.
func CoerceUnit(s string) any {
	m := unitPattern.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	value, err := decimal.NewFromString(m[1])
	if err != nil {
		return s
	}
	switch strings.ToLower(m[2]) {
	case "d":
		return value
	case "in":
		return value.Mul(pointsPerInch)
	case "mm":
		return value.Div(mmPerInch).Mul(pointsPerInch)
	}
	return s
}

// ToDecimal converts a variable value to a decimal.
// Strings are unit-coerced first, then parsed as plain numbers.
func ToDecimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case int64:
		return decimal.NewFromInt(t), nil
	case float64:
		return decimal.NewFromFloat(t), nil
	case string:
		if d, ok := CoerceUnit(t).(decimal.Decimal); ok {
			return d, nil
		}
		return decimal.NewFromString(strings.TrimSpace(t))
	case nil:
		return decimal.Zero, fmt.Errorf("value is not set")
	}
	return decimal.Zero, fmt.Errorf("cannot convert %T to decimal", v)
}

// ToBool parses a flag value. true, 1, yes, on and y are true, ignoring case.
func ToBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on", "y":
		return true
	}
	return false
}

// Variables is a case-insensitive variable store.
type Variables struct {
	values map[string]any
}

// NewVariables returns an empty store.
func NewVariables() *Variables {
	return &Variables{values: make(map[string]any)}
}

// Get returns the value stored under name.
func (v *Variables) Get(name string) (any, bool) {
	value, ok := v.values[strings.ToLower(name)]
	return value, ok
}

// Set stores value under name. String values are unit-coerced.
func (v *Variables) Set(name string, value any) {
	if s, ok := value.(string); ok {
		value = CoerceUnit(s)
	}
	v.values[strings.ToLower(name)] = value
}

// Delete removes name from the store.
func (v *Variables) Delete(name string) {
	delete(v.values, strings.ToLower(name))
}

// Resolve replaces {name} placeholders in text with the formatted variable values.
// Unknown names are left in place.
func (v *Variables) Resolve(text string) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(m string) string {
		name := m[1 : len(m)-1]
		value, ok := v.Get(name)
		if !ok {
			return m
		}
		return formatValue(value)
	})
}

func formatValue(value any) string {
	switch t := value.(type) {
	case decimal.Decimal:
		return t.String()
	case *models.Shape:
		return t.Name
	case nil:
		return ""
	}
	return fmt.Sprint(value)
}
