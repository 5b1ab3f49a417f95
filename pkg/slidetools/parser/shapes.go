package parser

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"

	"github.com/ukaji3/slidetools-go/pkg/slidetools/models"
)

// shapeKinds maps PresentationML shape elements to shape kinds.
// grpSp is handled separately since it recurses.
var shapeKinds = map[string]models.ShapeKind{
	"sp":           models.KindAutoShape,
	"pic":          models.KindPicture,
	"cxnSp":        models.KindConnector,
	"graphicFrame": models.KindGraphicFrame,
}

// parseSlideXML parses slide XML content and returns the top-level shapes of its shape tree.
func parseSlideXML(data []byte, media mediaResolver) []*models.Shape {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "spTree" {
			shapes := parseShapeTree(decoder, media)
			if shapes == nil {
				shapes = []*models.Shape{}
			}
			return shapes
		}
	}
	return []*models.Shape{}
}

// parseShapeTree parses the children of an spTree element up to its end tag.
func parseShapeTree(decoder *xml.Decoder, media mediaResolver) []*models.Shape {
	shapes, _ := parseContainer(decoder, media)
	return shapes
}

// parseContainer parses shapes of a container element and the container's own
// identity and geometry, which is meaningful for grpSp only.
func parseContainer(decoder *xml.Decoder, media mediaResolver) ([]*models.Shape, *models.Shape) {
	var shapes []*models.Shape
	self := &models.Shape{Kind: models.KindGroup}
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "cNvPr":
				if depth == 3 {
					readIdentity(t, self)
				}
			case "xfrm":
				if depth == 3 {
					parseXfrm(decoder, self)
					depth--
				}
			case "grpSp":
				children, group := parseContainer(decoder, media)
				if children == nil {
					children = []*models.Shape{}
				}
				group.Children = children
				shapes = append(shapes, group)
				depth--
			case "sp", "pic", "cxnSp", "graphicFrame":
				shapes = append(shapes, parseShapeElement(decoder, shapeKinds[t.Name.Local], media))
				depth--
			case "Fallback":
				// mc:AlternateContent repeats the Choice content for older readers.
				skipElement(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return shapes, self
}

// parseShapeElement parses a single non-group shape element.
func parseShapeElement(decoder *xml.Decoder, kind models.ShapeKind, media mediaResolver) *models.Shape {
	shape := &models.Shape{Kind: kind}
	if kind == models.KindPicture {
		shape.Picture = &models.Picture{}
	}

	hasXfrm := false
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "cNvPr":
				if shape.ID == 0 {
					readIdentity(t, shape)
				}
			case "ph":
				shape.Placeholder = readPlaceholder(t)
			case "xfrm":
				parseXfrm(decoder, shape)
				hasXfrm = true
				depth--
			case "txBody":
				if kind == models.KindAutoShape {
					shape.Paragraphs = parseTextBody(decoder)
					shape.Kind = models.KindText
					depth--
				}
			case "blip":
				if shape.Picture != nil {
					for _, attr := range t.Attr {
						if attr.Name.Local == "embed" || attr.Name.Local == "link" {
							shape.Picture.Image = media(attr.Value)
						}
					}
				}
			case "graphic":
				// Tables and charts carry their own text bodies and transforms.
				skipElement(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	if shape.Placeholder != nil && !hasXfrm {
		shape.Placeholder.Inherited = true
	}
	return shape
}

// readPlaceholder reads type and idx from a ph element.
func readPlaceholder(se xml.StartElement) *models.Placeholder {
	ph := &models.Placeholder{}
	for _, attr := range se.Attr {
		switch attr.Name.Local {
		case "type":
			ph.Type = attr.Value
		case "idx":
			if idx, err := strconv.Atoi(attr.Value); err == nil {
				ph.Index = idx
			}
		}
	}
	return ph
}

// readIdentity reads id and name from a cNvPr element.
func readIdentity(se xml.StartElement, shape *models.Shape) {
	for _, attr := range se.Attr {
		switch attr.Name.Local {
		case "id":
			if id, err := strconv.Atoi(attr.Value); err == nil {
				shape.ID = id
			}
		case "name":
			shape.Name = attr.Value
		}
	}
}

// parseXfrm parses an xfrm element for position and size.
func parseXfrm(decoder *xml.Decoder, shape *models.Shape) {
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "off":
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "x":
						if x, err := strconv.ParseInt(attr.Value, 10, 64); err == nil {
							shape.X = EMUToPoints(x)
						}
					case "y":
						if y, err := strconv.ParseInt(attr.Value, 10, 64); err == nil {
							shape.Y = EMUToPoints(y)
						}
					}
				}
			case "ext":
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "cx":
						if cx, err := strconv.ParseInt(attr.Value, 10, 64); err == nil {
							shape.Width = EMUToPoints(cx)
						}
					case "cy":
						if cy, err := strconv.ParseInt(attr.Value, 10, 64); err == nil {
							shape.Height = EMUToPoints(cy)
						}
					}
				}
			}
		case xml.EndElement:
			depth--
		}
	}
}

// parseTextBody parses the paragraphs of a txBody element.
func parseTextBody(decoder *xml.Decoder) []models.Paragraph {
	paragraphs := []models.Paragraph{}
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "p" {
				paragraphs = append(paragraphs, parseParagraph(decoder))
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return paragraphs
}

// parseParagraph parses an a:p element: bullet properties and text runs.
func parseParagraph(decoder *xml.Decoder) models.Paragraph {
	paragraph := models.Paragraph{Bullet: models.BulletNone}
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "buNone":
				paragraph.Bullet = models.BulletNone
			case "buChar":
				paragraph.Bullet = models.BulletCharacter
			case "buAutoNum":
				paragraph.Bullet = models.BulletNumbered
			case "buBlip":
				paragraph.Bullet = models.BulletPicture
				skipElement(decoder)
				depth--
			case "r", "fld":
				paragraph.Portions = append(paragraph.Portions, parseRun(decoder))
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return paragraph
}

// parseRun parses a text run (a:r or a:fld) with its run properties.
func parseRun(decoder *xml.Decoder) models.Portion {
	var portion models.Portion
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "rPr":
				for _, attr := range t.Attr {
					if attr.Name.Local == "sz" {
						if sz, err := strconv.ParseInt(attr.Value, 10, 64); err == nil {
							portion.FontSize = fontSizeToPoints(sz)
						}
					}
				}
			case "latin":
				for _, attr := range t.Attr {
					if attr.Name.Local == "typeface" {
						portion.FontName = attr.Value
					}
				}
			case "t":
				if txt, err := readElementText(decoder); err == nil {
					portion.Text += txt
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return portion
}

// Helper functions

func readElementText(decoder *xml.Decoder) (string, error) {
	var text string
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return text, err
		}
		switch t := token.(type) {
		case xml.CharData:
			text += string(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text, nil
}

func skipElement(decoder *xml.Decoder) {
	_ = decoder.Skip()
}
