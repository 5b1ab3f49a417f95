package engine

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ukaji3/slidetools-go/pkg/slidetools/expression"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/models"
)

// Filter variables available to FindObjects conditions.
const (
	VarFontName          = "FontName"
	VarFontSize          = "FontSize"
	VarIsBullet          = "IsBullet"
	VarSlideIndex        = "SlideIndex"
	VarCurrentSlideIndex = "CurrentSlideIndex"
)

// shapeVariables are the per-shape values a condition may reference.
var shapeVariables = []string{VarFontName, VarFontSize, VarIsBullet, VarSlideIndex}

var (
	// operand matches a quoted string, a number or an identifier.
	operand = `'[^']*'|"[^"]*"|[-+]?\d+(?:\.\d+)?|[A-Za-z_]\w*`
	// pairPattern matches "<operand> <op> <operand>".
	pairPattern = regexp.MustCompile(`(` + operand + `)\s*(==|!=|<=|>=|<|>|=)\s*(` + operand + `)`)
	// literalPattern matches a quoted string literal.
	literalPattern = regexp.MustCompile(`'[^']*'|"[^"]*"`)
	// wordPattern matches whole identifiers, not the exponent of a number.
	wordPattern = regexp.MustCompile(`\b[A-Za-z_]\w*`)
)

// keywords are the operators, literals and builtins a condition may use besides variables.
var keywords = map[string]bool{
	"true": true, "false": true, "nil": true,
	"and": true, "or": true, "not": true, "in": true,
	"matches": true, "contains": true, "startsWith": true, "endsWith": true,
	"len": true, "abs": true, "int": true, "float": true, "string": true,
	"lower": true, "upper": true, "trim": true, "round": true, "ceil": true, "floor": true,
	"min": true, "max": true, "hasPrefix": true, "hasSuffix": true,
}

// ErrNoDocument indicates an operation needs a working document and none is open.
var ErrNoDocument = errors.New("no active working document")

// UnknownVariableError indicates a condition references a name outside the
// recognized filter variables.
type UnknownVariableError struct {
	Name string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown filter variable %q", e.Name)
}

// condition is a FindObjects condition after placeholder substitution.
type condition struct {
	text       string
	references map[string]bool
	current    bool
}

// parseCondition normalizes text and collects the variables it references.
// Every identifier outside string literals must be a filter variable or a keyword.
func parseCondition(text string) (*condition, error) {
	c := &condition{references: make(map[string]bool)}

	for _, word := range wordPattern.FindAllString(literalPattern.ReplaceAllString(text, `""`), -1) {
		if keywords[word] {
			continue
		}
		switch {
		case word == VarCurrentSlideIndex:
			c.current = true
		case isShapeVariable(word):
			c.references[word] = true
		default:
			return nil, &UnknownVariableError{Name: word}
		}
	}

	text = pairPattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := pairPattern.FindStringSubmatch(m)
		if sub[2] == "=" {
			return sub[1] + " == " + sub[3]
		}
		return m
	})

	c.text = strings.ReplaceAll(text, "'", `"`)
	return c, nil
}

func isShapeVariable(name string) bool {
	for _, v := range shapeVariables {
		if v == name {
			return true
		}
	}
	return false
}

// bindings computes the referenced variables for shape on slide slideIndex.
func (c *condition) bindings(shape *models.Shape, slideIndex, current int) expression.Bindings {
	env := expression.Bindings{VarCurrentSlideIndex: current}
	if c.references[VarFontName] {
		env[VarFontName] = shape.FirstFontName()
	}
	if c.references[VarFontSize] {
		env[VarFontSize] = shape.FirstFontSize().InexactFloat64()
	}
	if c.references[VarIsBullet] {
		env[VarIsBullet] = shape.HasBullet()
	}
	if c.references[VarSlideIndex] {
		env[VarSlideIndex] = slideIndex
	}
	return env
}

// FindObjects replaces the selection with the shapes matching the condition.
//
// An empty condition changes nothing. A condition naming an unknown variable, or one
// that does not compile, fails before the selection is touched. A condition referencing
// no variables selects every top-level shape of every slide. Otherwise the condition
// is evaluated per shape; a shape whose evaluation fails does not match.
func FindObjects(s *Session, text string) error {
	text = strings.TrimSpace(s.Variables.Resolve(text))
	if text == "" {
		s.Logger.Warn("Condition: (empty)")
		return nil
	}
	s.Logger.Infof("Condition: %s", text)

	pres := s.Presentation()
	if pres == nil {
		return fmt.Errorf("FindObjects requires a working document: %w", ErrNoDocument)
	}

	cond, err := parseCondition(text)
	if err != nil {
		return err
	}

	if len(cond.references) == 0 && !cond.current {
		s.ClearSelection()
		for _, slide := range pres.Slides {
			for _, shape := range slide.Shapes {
				s.Select(shape)
			}
		}
		s.Logger.Infof("Items Selected: %d", len(s.Selection()))
		return nil
	}

	program, err := s.Evaluator.Compile(cond.text, cond.bindings(&models.Shape{}, 0, s.CurrentSlideIndex))
	if err != nil {
		return err
	}

	s.ClearSelection()
	for i, slide := range pres.Slides {
		for _, shape := range slide.Shapes {
			match, err := expression.EvaluateBool(s.Evaluator, program, cond.bindings(shape, i, s.CurrentSlideIndex))
			if err != nil {
				s.Logger.Errorf("Shape %s on slide %d: %v", shape.Name, i+1, err)
				continue
			}
			if match {
				s.Select(shape)
			}
		}
	}
	s.Logger.Infof("Items Selected: %d", len(s.Selection()))
	return nil
}
