// Package models defines data structures for slide automation: the action tree and the
// presentation object model.
package models

import "strings"

// NameValue is a single named value. Names are compared case-insensitively.
type NameValue struct {
	Name  string `json:"name" toml:"name" yaml:"name"`
	Value string `json:"value" toml:"value" yaml:"value"`
}

// NameValueList is an ordered list of name/value pairs.
type NameValueList []NameValue

// Get returns the first entry whose name matches case-insensitively.
func (l NameValueList) Get(name string) (NameValue, bool) {
	for _, item := range l {
		if strings.EqualFold(item.Name, name) {
			return item, true
		}
	}
	return NameValue{}, false
}

// FilterElement is a {property, operator, value} triple.
type FilterElement struct {
	Property string `json:"property" toml:"property" yaml:"property"`
	Operator string `json:"operator" toml:"operator" yaml:"operator"`
	Value    string `json:"value" toml:"value" yaml:"value"`
}

// ActionItem is one node of an action tree.
//
// Filters, ItemName, InputFiles, WorkingPath, Properties and Options are inheritable:
// when unset on a node, readers fall back to the nearest ancestor. The fields hold only
// the node's own values; use the engine's Resolve helpers to read effective values.
type ActionItem struct {
	// Action is the operation name, matched case-insensitively.
	Action string `json:"action" toml:"action" yaml:"action"`
	// Condition is an expression string, used by FindObjects.
	Condition string `json:"condition,omitempty" toml:"condition" yaml:"condition,omitempty"`
	// ItemName names a variable holding an item reference.
	ItemName string `json:"itemName,omitempty" toml:"itemName" yaml:"itemName,omitempty"`
	// VariableName names the variable read or written by the operation.
	VariableName string `json:"variableName,omitempty" toml:"variableName" yaml:"variableName,omitempty"`
	// ConfigFilename loads a subtree of actions appended to Actions.
	ConfigFilename string `json:"configFilename,omitempty" toml:"configFilename" yaml:"configFilename,omitempty"`
	// WorkingPath is the base directory for relative file names.
	WorkingPath string `json:"workingPath,omitempty" toml:"workingPath" yaml:"workingPath,omitempty"`
	// InputFiles lists input documents; the first one is the working document.
	InputFiles []string `json:"inputFiles,omitempty" toml:"inputFiles" yaml:"inputFiles,omitempty"`
	// OutputFile is the destination of the node's document or report.
	OutputFile string `json:"outputFile,omitempty" toml:"outputFile" yaml:"outputFile,omitempty"`
	// Options are free-form option flags.
	Options []string `json:"options,omitempty" toml:"options" yaml:"options,omitempty"`
	// Properties are named parameters of the operation.
	Properties NameValueList `json:"properties,omitempty" toml:"properties" yaml:"properties,omitempty"`
	// Variables are assigned before the node runs.
	Variables NameValueList `json:"variables,omitempty" toml:"variables" yaml:"variables,omitempty"`
	// Filters are reserved {property, operator, value} triples.
	Filters []FilterElement `json:"filters,omitempty" toml:"filters" yaml:"filters,omitempty"`
	// Actions are the child actions.
	Actions []*ActionItem `json:"actions,omitempty" toml:"actions" yaml:"actions,omitempty"`

	// Parent is the enclosing action. It is not serialized.
	Parent *ActionItem `json:"-" toml:"-" yaml:"-"`
}

// AddAction appends a child action and links it to the receiver.
func (a *ActionItem) AddAction(child *ActionItem) {
	child.Parent = a
	a.Actions = append(a.Actions, child)
}

// Link sets the Parent reference of every descendant.
func (a *ActionItem) Link() {
	for _, child := range a.Actions {
		child.Parent = a
		child.Link()
	}
}
