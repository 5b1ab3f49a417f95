// Package engine runs action trees against presentations.
//
// A run is driven by a Runner, which validates the whole tree, then walks it depth
// first. Each node is compiled into a typed Operation and executed against a Session,
// which holds the per-run state: the working document, the selection, the variable
// store and the current slide index.
package engine

import (
	"fmt"
	"strings"
)

// Kind identifies a recognized action.
type Kind int

const (
	// KindBatch runs its children. It is also used for nodes without an action name.
	KindBatch Kind = iota
	KindAlignLeft
	KindChangeImage
	KindDistributeHorizontally
	KindDistributeVertically
	KindFindObjects
	KindForEachSelected
	KindForEachSlide
	KindGetSelectedMaxY
	KindGetSelectedMaxYItem
	KindGetSelectedMinX
	KindGetSelectedMinY
	KindGetSelectedMinYItem
	KindSetItemYFromVariable
	KindSetSelectedMaxWidth
	KindSetSelectedX
	KindShapeInventory
	KindSlideReport
)

var kindNames = [...]string{
	KindBatch:                  "Batch",
	KindAlignLeft:              "AlignLeft",
	KindChangeImage:            "ChangeImage",
	KindDistributeHorizontally: "DistributeHorizontally",
	KindDistributeVertically:   "DistributeVertically",
	KindFindObjects:            "FindObjects",
	KindForEachSelected:        "ForEachSelected",
	KindForEachSlide:           "ForEachSlide",
	KindGetSelectedMaxY:        "GetSelectedMaxY",
	KindGetSelectedMaxYItem:    "GetSelectedMaxYItem",
	KindGetSelectedMinX:        "GetSelectedMinX",
	KindGetSelectedMinY:        "GetSelectedMinY",
	KindGetSelectedMinYItem:    "GetSelectedMinYItem",
	KindSetItemYFromVariable:   "SetItemYFromVariable",
	KindSetSelectedMaxWidth:    "SetSelectedMaxWidth",
	KindSetSelectedX:           "SetSelectedX",
	KindShapeInventory:         "ShapeInventory",
	KindSlideReport:            "SlideReport",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// UnknownActionError indicates an action name outside the recognized set.
type UnknownActionError struct {
	Name string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action %q", e.Name)
}

// ParseKind maps an action name to its Kind, ignoring case.
// An empty name is a Batch.
func ParseKind(name string) (Kind, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return KindBatch, nil
	}
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(k), nil
		}
	}
	return 0, &UnknownActionError{Name: name}
}

// Names returns the recognized action names in declaration order.
func Names() []string {
	names := make([]string, len(kindNames))
	copy(names, kindNames[:])
	return names
}
