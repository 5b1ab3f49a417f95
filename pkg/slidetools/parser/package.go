package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/slidetools-go/pkg/slidetools/models"
)

// ErrInvalidFormat indicates the input is not a readable pptx package.
var ErrInvalidFormat = errors.New("invalid pptx format")

const presentationPart = "ppt/presentation.xml"

// part is one entry of the zip package, kept verbatim for saving.
type part struct {
	name     string
	method   uint16
	modified time.Time
	data     []byte
}

// relationship is one entry of a .rels part.
type relationship struct {
	id     string
	typ    string
	target string
}

// Document is an opened presentation together with the package it was read from.
type Document struct {
	Presentation *models.Presentation

	parts []*part
	// baseline holds the geometry of every shape as read, in EMU.
	baseline map[*models.Shape][4]int64
}

// Open reads a pptx file into memory and parses it.
// The file is closed before Open returns; the document keeps no handle on it.
func Open(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Read(bytes.NewReader(data), int64(len(data)), filepath.Base(filename))
}

// Read parses a pptx package from r.
func Read(r io.ReaderAt, size int64, name string) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	doc := &Document{baseline: make(map[*models.Shape][4]int64)}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, f.Name, err)
		}
		doc.parts = append(doc.parts, &part{
			name:     f.Name,
			method:   f.Method,
			modified: f.Modified,
			data:     data,
		})
	}

	presentationXML := doc.part(presentationPart)
	if presentationXML == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidFormat, presentationPart)
	}

	pres := &models.Presentation{Name: name}
	slideIDs, cx, cy := parsePresentationXML(presentationXML)
	pres.SlideWidth = EMUToPoints(cx)
	pres.SlideHeight = EMUToPoints(cy)

	rels := parseRels(doc.part(relsPartName(presentationPart)))
	for _, rID := range slideIDs {
		rel, ok := rels[rID]
		if !ok {
			continue
		}
		slidePart := resolveTarget(path.Dir(presentationPart), rel.target)
		slideXML := doc.part(slidePart)
		if slideXML == nil {
			continue
		}
		slideRels := parseRels(doc.part(relsPartName(slidePart)))
		shapes := parseSlideXML(slideXML, newMediaResolver(doc, slidePart, slideRels))
		inheritGeometry(shapes, doc.layoutPlaceholders(slidePart, layoutDepth))
		doc.record(shapes)
		pres.Slides = append(pres.Slides, &models.Slide{
			Part:   slidePart,
			Shapes: shapes,
		})
	}

	doc.Presentation = pres
	return doc, nil
}

// part returns the contents of the named part, or nil if it does not exist.
func (d *Document) part(name string) []byte {
	for _, p := range d.parts {
		if p.name == name {
			return p.data
		}
	}
	return nil
}

// record stores the current geometry of shapes and their children as the baseline.
func (d *Document) record(shapes []*models.Shape) {
	for _, shape := range shapes {
		d.baseline[shape] = geometry(shape)
		if shape.IsGroup() {
			d.record(shape.Children)
		}
	}
}

// moved reports whether shape differs from its geometry as read.
func (d *Document) moved(shape *models.Shape) bool {
	return geometry(shape) != d.baseline[shape]
}

func geometry(shape *models.Shape) [4]int64 {
	return [4]int64{
		PointsToEMU(shape.X), PointsToEMU(shape.Y),
		PointsToEMU(shape.Width), PointsToEMU(shape.Height),
	}
}

// hasPart reports whether the package contains the named part.
func (d *Document) hasPart(name string) bool {
	for _, p := range d.parts {
		if p.name == name {
			return true
		}
	}
	return false
}

// parsePresentationXML returns the slide relationship ids in order and the slide size in EMU.
func parsePresentationXML(data []byte) (slideIDs []string, cx, cy int64) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "sldId":
			for _, attr := range se.Attr {
				if attr.Name.Local == "id" && attr.Name.Space != "" {
					slideIDs = append(slideIDs, attr.Value)
				}
			}
		case "sldSz":
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "cx":
					cx, _ = strconv.ParseInt(attr.Value, 10, 64)
				case "cy":
					cy, _ = strconv.ParseInt(attr.Value, 10, 64)
				}
			}
		}
	}
	return slideIDs, cx, cy
}

// parseRels parses a relationships part into a map keyed by relationship id.
func parseRels(data []byte) map[string]relationship {
	result := make(map[string]relationship)
	if data == nil {
		return result
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rel relationship
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rel.id = attr.Value
				case "Type":
					rel.typ = attr.Value
				case "Target":
					rel.target = attr.Value
				}
			}
			if rel.id != "" {
				result[rel.id] = rel
			}
		}
	}
	return result
}

// relsPartName returns the relationships part belonging to partName,
// e.g. ppt/slides/slide1.xml -> ppt/slides/_rels/slide1.xml.rels.
func relsPartName(partName string) string {
	return path.Join(path.Dir(partName), "_rels", path.Base(partName)+".rels")
}

// resolveTarget resolves a relationship target against the directory of its source part.
func resolveTarget(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(baseDir, target))
}

// mediaResolver maps a relationship id on a slide to an existing media part.
type mediaResolver func(rID string) string

func newMediaResolver(doc *Document, slidePart string, rels map[string]relationship) mediaResolver {
	return func(rID string) string {
		rel, ok := rels[rID]
		if !ok {
			return ""
		}
		target := resolveTarget(path.Dir(slidePart), rel.target)
		if !doc.hasPart(target) {
			return ""
		}
		return target
	}
}
