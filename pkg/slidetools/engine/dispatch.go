package engine

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ukaji3/slidetools-go/pkg/slidetools/models"
)

// ErrMissingElement indicates an action lacks a field its operation requires.
var ErrMissingElement = errors.New("missing required element")

// Operation is the compiled, typed form of one action item.
type Operation interface {
	Kind() Kind
}

type axis int

const (
	axisX axis = iota
	axisY
)

type (
	batchOp struct{}

	// stubOp is an action whose behavior is not implemented yet.
	stubOp struct{ kind Kind }

	findObjectsOp struct{ condition string }

	forEachSlideOp struct{}

	distributeOp struct{ axis axis }

	// extremumOp stores the min or max of the selection along an axis, either the
	// coordinate or the shape holding it.
	extremumOp struct {
		kind     Kind
		axis     axis
		max      bool
		item     bool
		variable string
	}

	setSelectedXOp struct{ variable string }

	setMaxWidthOp struct {
		variable     string
		adjustHeight bool
	}

	setItemYOp struct {
		item     string
		variable string
	}

	slideReportOp struct{ output string }

	// shapeInventoryOp writes the inventory; verify reads it back and compares.
	shapeInventoryOp struct {
		output string
		verify bool
	}
)

func (batchOp) Kind() Kind          { return KindBatch }
func (o stubOp) Kind() Kind         { return o.kind }
func (findObjectsOp) Kind() Kind    { return KindFindObjects }
func (forEachSlideOp) Kind() Kind   { return KindForEachSlide }
func (o extremumOp) Kind() Kind     { return o.kind }
func (setSelectedXOp) Kind() Kind   { return KindSetSelectedX }
func (setMaxWidthOp) Kind() Kind    { return KindSetSelectedMaxWidth }
func (setItemYOp) Kind() Kind       { return KindSetItemYFromVariable }
func (slideReportOp) Kind() Kind    { return KindSlideReport }
func (shapeInventoryOp) Kind() Kind { return KindShapeInventory }

func (o distributeOp) Kind() Kind {
	if o.axis == axisX {
		return KindDistributeHorizontally
	}
	return KindDistributeVertically
}

// Compile builds the operation for item, checking the fields the operation needs.
func Compile(item *models.ActionItem) (Operation, error) {
	kind, err := ParseKind(item.Action)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindBatch:
		return batchOp{}, nil
	case KindAlignLeft, KindChangeImage, KindForEachSelected:
		return stubOp{kind: kind}, nil
	case KindFindObjects:
		return findObjectsOp{condition: item.Condition}, nil
	case KindForEachSlide:
		return forEachSlideOp{}, nil
	case KindDistributeHorizontally:
		return distributeOp{axis: axisX}, nil
	case KindDistributeVertically:
		return distributeOp{axis: axisY}, nil
	case KindGetSelectedMaxY, KindGetSelectedMaxYItem, KindGetSelectedMinX,
		KindGetSelectedMinY, KindGetSelectedMinYItem:
		if err := checkElements(item, "variableName"); err != nil {
			return nil, err
		}
		op := extremumOp{kind: kind, axis: axisY, variable: item.VariableName}
		switch kind {
		case KindGetSelectedMaxY:
			op.max = true
		case KindGetSelectedMaxYItem:
			op.max, op.item = true, true
		case KindGetSelectedMinX:
			op.axis = axisX
		case KindGetSelectedMinYItem:
			op.item = true
		}
		return op, nil
	case KindSetSelectedX:
		if err := checkElements(item, "variableName"); err != nil {
			return nil, err
		}
		return setSelectedXOp{variable: item.VariableName}, nil
	case KindSetSelectedMaxWidth:
		if err := checkElements(item, "variableName"); err != nil {
			return nil, err
		}
		op := setMaxWidthOp{variable: item.VariableName}
		if p, ok := ResolveProperties(item).Get("AdjustHeightRelative"); ok {
			op.adjustHeight = ToBool(p.Value)
		}
		return op, nil
	case KindSetItemYFromVariable:
		if err := checkElements(item, "itemName", "variableName"); err != nil {
			return nil, err
		}
		return setItemYOp{item: ResolveItemName(item), variable: item.VariableName}, nil
	case KindSlideReport:
		if err := checkElements(item, "inputFile", "outputFile"); err != nil {
			return nil, err
		}
		return slideReportOp{output: resolvePath(item, item.OutputFile)}, nil
	case KindShapeInventory:
		if err := checkElements(item, "inputFile", "outputFile"); err != nil {
			return nil, err
		}
		switch strings.ToLower(filepath.Ext(item.OutputFile)) {
		case ".xlsx", ".json":
		default:
			return nil, fmt.Errorf("inventory output %q must be .xlsx or .json", item.OutputFile)
		}
		return shapeInventoryOp{
			output: resolvePath(item, item.OutputFile),
			verify: HasOption(item, OptionVerify),
		}, nil
	}
	return nil, fmt.Errorf("no operation for %s", kind)
}

// checkElements reports the first named field that is empty on item.
// itemName and the file fields are read through inheritance where they inherit.
func checkElements(item *models.ActionItem, required ...string) error {
	for _, name := range required {
		var value string
		switch name {
		case "variableName":
			value = item.VariableName
		case "itemName":
			value = ResolveItemName(item)
		case "outputFile":
			value = item.OutputFile
		case "inputFile":
			if files := ResolveInputFiles(item); len(files) > 0 {
				value = files[0]
			}
		}
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingElement, name)
		}
	}
	return nil
}

// resolvePath joins a relative file name to the effective working path of item.
func resolvePath(item *models.ActionItem, name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	dir := ResolveWorkingPath(item)
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
