package models

import "github.com/shopspring/decimal"

// ShapeKind classifies a shape for reporting and filtering.
type ShapeKind string

const (
	// KindText is a shape carrying a text body.
	KindText ShapeKind = "Text"
	// KindAutoShape is a geometric shape without text.
	KindAutoShape ShapeKind = "AutoShape"
	// KindPicture is an embedded or linked image.
	KindPicture ShapeKind = "Picture"
	// KindConnector is a line or connector.
	KindConnector ShapeKind = "Connector"
	// KindGraphicFrame holds a table, chart or other graphic object.
	KindGraphicFrame ShapeKind = "GraphicFrame"
	// KindGroup contains grouped child shapes.
	KindGroup ShapeKind = "Group"
)

// ReportTag returns the type name printed by the slide report. Text and picture shapes
// use the TextShape and PictureShape names; other kinds print as themselves.
func (k ShapeKind) ReportTag() string {
	switch k {
	case KindText:
		return "TextShape"
	case KindPicture:
		return "PictureShape"
	}
	return string(k)
}

// BulletType is the bullet style of a paragraph.
type BulletType string

const (
	BulletNone      BulletType = "None"
	BulletCharacter BulletType = "Character"
	BulletNumbered  BulletType = "Numbered"
	BulletPicture   BulletType = "Picture"
)

// Portion is a run of text sharing one font.
type Portion struct {
	// Text is the run text.
	Text string `json:"text"`
	// FontName is the latin typeface, empty when inherited from the layout.
	FontName string `json:"font_name,omitempty"`
	// FontSize is the size in points, zero when inherited from the layout.
	FontSize decimal.Decimal `json:"font_size"`
}

// Paragraph is one paragraph of a text body.
type Paragraph struct {
	// Bullet is the explicit bullet style of the paragraph.
	Bullet BulletType `json:"bullet"`
	// Portions are the text runs in document order.
	Portions []Portion `json:"portions,omitempty"`
}

// Text returns the concatenated text of all portions.
func (p Paragraph) Text() string {
	var s string
	for _, portion := range p.Portions {
		s += portion.Text
	}
	return s
}

// Picture describes the image payload of a picture shape.
type Picture struct {
	// Image is the package part name of the image, empty if it could not be resolved.
	Image string `json:"image,omitempty"`
}

// Placeholder binds a slide shape to a placeholder of its layout.
type Placeholder struct {
	// Type is the ph type attribute (title, body, ...), empty when omitted.
	Type string `json:"type,omitempty"`
	// Index is the ph idx attribute, 0 when omitted.
	Index int `json:"index"`
	// Inherited is set when the shape has no xfrm of its own and takes its geometry
	// from the layout or master.
	Inherited bool `json:"inherited,omitempty"`
}

// Shape represents a shape on a slide: geometry, text, grouping and picture payload.
// Geometry is stored in points (72 per inch).
type Shape struct {
	// ID is the cNvPr id, unique within the slide.
	ID int `json:"id"`
	// Name is the shape name shown in the selection pane.
	Name string `json:"name"`
	// Kind classifies the shape.
	Kind ShapeKind `json:"kind"`
	// X is the left offset.
	X decimal.Decimal `json:"x"`
	// Y is the top offset.
	Y decimal.Decimal `json:"y"`
	// Width is the extent along X.
	Width decimal.Decimal `json:"width"`
	// Height is the extent along Y.
	Height decimal.Decimal `json:"height"`
	// Paragraphs is the text body, nil for shapes without text.
	Paragraphs []Paragraph `json:"paragraphs,omitempty"`
	// Children is nil for leaf shapes and the grouped shapes for a group.
	Children []*Shape `json:"children,omitempty"`
	// Picture is set for picture shapes only.
	Picture *Picture `json:"picture,omitempty"`
	// Placeholder is set for shapes bound to a layout placeholder.
	Placeholder *Placeholder `json:"placeholder,omitempty"`
}

// IsGroup reports whether the shape contains grouped children.
func (s *Shape) IsGroup() bool {
	return s.Children != nil
}

// Text returns the text body with paragraphs separated by newlines.
func (s *Shape) Text() string {
	var text string
	for i, p := range s.Paragraphs {
		if i > 0 {
			text += "\n"
		}
		text += p.Text()
	}
	return text
}

// HasBullet reports whether any paragraph has a bullet style other than none.
func (s *Shape) HasBullet() bool {
	for _, p := range s.Paragraphs {
		if p.Bullet != "" && p.Bullet != BulletNone {
			return true
		}
	}
	return false
}

// FirstFontName returns the first non-empty font name, scanning paragraphs then portions.
func (s *Shape) FirstFontName() string {
	for _, p := range s.Paragraphs {
		for _, portion := range p.Portions {
			if portion.FontName != "" {
				return portion.FontName
			}
		}
	}
	return ""
}

// FirstFontSize returns the first non-zero font size, scanning paragraphs then portions.
func (s *Shape) FirstFontSize() decimal.Decimal {
	for _, p := range s.Paragraphs {
		for _, portion := range p.Portions {
			if !portion.FontSize.IsZero() {
				return portion.FontSize
			}
		}
	}
	return decimal.Zero
}
