package engine

import (
	"strings"

	"github.com/ukaji3/slidetools-go/pkg/slidetools/models"
)

// OptionVerify makes ShapeInventory read its output back and compare it to the deck.
const OptionVerify = "Verify"

// maxInheritDepth bounds ancestor traversal so a cyclic tree cannot loop forever.
const maxInheritDepth = 64

// inherited returns the first value that own reports as set, starting at item and
// walking up the parent chain.
func inherited[T any](item *models.ActionItem, own func(*models.ActionItem) (T, bool)) (T, bool) {
	node := item
	for depth := 0; node != nil && depth < maxInheritDepth; depth++ {
		if value, ok := own(node); ok {
			return value, true
		}
		node = node.Parent
	}
	var zero T
	return zero, false
}

// ResolveFilters returns the node's filters, or the nearest ancestor's.
// The result is never nil.
func ResolveFilters(item *models.ActionItem) []models.FilterElement {
	filters, ok := inherited(item, func(n *models.ActionItem) ([]models.FilterElement, bool) {
		return n.Filters, len(n.Filters) > 0
	})
	if !ok {
		return []models.FilterElement{}
	}
	return filters
}

// ResolveItemName returns the node's item name, or the nearest ancestor's, or "".
func ResolveItemName(item *models.ActionItem) string {
	name, _ := inherited(item, func(n *models.ActionItem) (string, bool) {
		return n.ItemName, n.ItemName != ""
	})
	return name
}

// ResolveInputFiles returns the node's input files, or the nearest ancestor's.
func ResolveInputFiles(item *models.ActionItem) []string {
	files, _ := inherited(item, func(n *models.ActionItem) ([]string, bool) {
		return n.InputFiles, len(n.InputFiles) > 0
	})
	return files
}

// ResolveWorkingPath returns the node's working path, or the nearest ancestor's.
func ResolveWorkingPath(item *models.ActionItem) string {
	dir, _ := inherited(item, func(n *models.ActionItem) (string, bool) {
		return n.WorkingPath, n.WorkingPath != ""
	})
	return dir
}

// ResolveProperties returns the node's properties, or the nearest ancestor's.
func ResolveProperties(item *models.ActionItem) models.NameValueList {
	props, _ := inherited(item, func(n *models.ActionItem) (models.NameValueList, bool) {
		return n.Properties, len(n.Properties) > 0
	})
	return props
}

// ResolveOptions returns the node's options, or the nearest ancestor's.
func ResolveOptions(item *models.ActionItem) []string {
	opts, _ := inherited(item, func(n *models.ActionItem) ([]string, bool) {
		return n.Options, len(n.Options) > 0
	})
	return opts
}

// HasOption reports whether the node's effective options contain name, ignoring case.
func HasOption(item *models.ActionItem, name string) bool {
	for _, opt := range ResolveOptions(item) {
		if strings.EqualFold(strings.TrimSpace(opt), name) {
			return true
		}
	}
	return false
}
