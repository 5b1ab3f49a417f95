package parser

import (
	"path"
	"strings"

	"github.com/ukaji3/slidetools-go/pkg/slidetools/models"
)

// layoutDepth is the length of the slide -> layout -> master chain.
const layoutDepth = 2

func noMedia(string) string { return "" }

// layoutPlaceholders returns the placeholder shapes of the layout or master related to
// part, with their own inherited geometry already resolved.
func (d *Document) layoutPlaceholders(part string, depth int) []*models.Shape {
	if depth == 0 {
		return nil
	}
	for _, rel := range parseRels(d.part(relsPartName(part))) {
		if !strings.HasSuffix(rel.typ, "/slideLayout") && !strings.HasSuffix(rel.typ, "/slideMaster") {
			continue
		}
		target := resolveTarget(path.Dir(part), rel.target)
		data := d.part(target)
		if data == nil {
			continue
		}
		shapes := placeholders(parseSlideXML(data, noMedia), nil)
		inheritGeometry(shapes, d.layoutPlaceholders(target, depth-1))
		return shapes
	}
	return nil
}

// placeholders collects the placeholder shapes of a tree, descending into groups.
func placeholders(shapes, result []*models.Shape) []*models.Shape {
	for _, shape := range shapes {
		if shape.Placeholder != nil {
			result = append(result, shape)
		}
		if shape.IsGroup() {
			result = placeholders(shape.Children, result)
		}
	}
	return result
}

// inheritGeometry copies position and size from sources to every placeholder shape
// that has no xfrm of its own.
func inheritGeometry(shapes, sources []*models.Shape) {
	for _, shape := range shapes {
		if shape.IsGroup() {
			inheritGeometry(shape.Children, sources)
		}
		ph := shape.Placeholder
		if ph == nil || !ph.Inherited {
			continue
		}
		if src := matchPlaceholder(ph, sources); src != nil {
			shape.X, shape.Y = src.X, src.Y
			shape.Width, shape.Height = src.Width, src.Height
		}
	}
}

// matchPlaceholder finds the source placeholder by idx, then by type.
func matchPlaceholder(ph *models.Placeholder, sources []*models.Shape) *models.Shape {
	if ph.Index != 0 {
		for _, src := range sources {
			if src.Placeholder.Index == ph.Index {
				return src
			}
		}
	}
	class := placeholderClass(ph.Type)
	for _, src := range sources {
		if placeholderClass(src.Placeholder.Type) == class {
			return src
		}
	}
	return nil
}

// placeholderClass folds the slide-level placeholder types onto the ones a master
// declares. An omitted type is obj.
func placeholderClass(t string) string {
	switch t {
	case "title", "ctrTitle":
		return "title"
	case "", "obj", "body", "subTitle":
		return "body"
	}
	return t
}
