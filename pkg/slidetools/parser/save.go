package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/ukaji3/slidetools-go/pkg/slidetools/models"
)

const drawingNamespace = "http://schemas.openxmlformats.org/drawingml/2006/main"

var (
	// geometryAttrPattern matches the coordinate attributes of a:off and a:ext.
	geometryAttrPattern = regexp.MustCompile(`(\s)(x|y|cx|cy)="[^"]*"`)
	// drawingPrefixPattern finds the prefix bound to the DrawingML namespace.
	drawingPrefixPattern = regexp.MustCompile(`xmlns:(\w+)="` + regexp.QuoteMeta(drawingNamespace) + `"`)
)

// xfrmOwners are the parents of an xfrm element that carries the shape's own geometry.
var xfrmOwners = map[string]bool{
	"spPr":         true,
	"grpSpPr":      true,
	"graphicFrame": true,
}

// edit replaces data[start:end] with text.
type edit struct {
	start int64
	end   int64
	text  []byte
}

// shapeFrame tracks the shape element currently being walked during patching.
type shapeFrame struct {
	depth int
	shape *models.Shape

	// properties is the start tag of the shape's spPr or grpSpPr, hasXfrm whether
	// that element carries an xfrm.
	properties *tagSpan
	hasXfrm    bool
}

// tagSpan is the byte range of a start tag.
type tagSpan struct {
	start int64
	end   int64
}

func isShapeProperties(local string) bool {
	return local == "spPr" || local == "grpSpPr"
}

// Save writes the document as a pptx package to w.
// Slide parts are rewritten with the current shape geometry; every other part is
// copied verbatim.
func (d *Document) Save(w io.Writer) error {
	patched := make(map[string][]byte)
	if d.Presentation != nil {
		for _, slide := range d.Presentation.Slides {
			data := d.part(slide.Part)
			if data == nil {
				continue
			}
			out, err := patchSlideXML(data, indexShapes(slide.Shapes, nil), d.moved)
			if err != nil {
				return fmt.Errorf("patch %s: %w", slide.Part, err)
			}
			patched[slide.Part] = out
		}
	}

	zw := zip.NewWriter(w)
	for _, p := range d.parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   p.method,
			Modified: p.modified,
		})
		if err != nil {
			return err
		}
		data := p.data
		if out, ok := patched[p.name]; ok {
			data = out
		}
		if _, err := fw.Write(data); err != nil {
			return err
		}
	}
	return zw.Close()
}

// SaveFile saves the document to filename.
// The package is built in memory and written to a temporary file next to the
// destination, which is then renamed over it; a failure leaves the destination untouched.
func SaveFile(d *Document, filename string) error {
	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), ".slidetools-*.pptx")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	mode := os.FileMode(0644)
	if fi, err := os.Stat(filename); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if _, err := buf.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, filename); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// indexShapes maps shape ids to shapes, descending into groups.
func indexShapes(shapes []*models.Shape, index map[int]*models.Shape) map[int]*models.Shape {
	if index == nil {
		index = make(map[int]*models.Shape)
	}
	for _, shape := range shapes {
		if shape.ID != 0 {
			index[shape.ID] = shape
		}
		if shape.IsGroup() {
			indexShapes(shape.Children, index)
		}
	}
	return index
}

// patchSlideXML rewrites the off/ext elements of every known shape in data.
// A shape without an xfrm of its own gets one when moved reports it changed; a nil
// moved treats every such shape as changed.
func patchSlideXML(data []byte, shapes map[int]*models.Shape, moved func(*models.Shape) bool) ([]byte, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	var (
		edits  []edit
		names  []string
		frames []shapeFrame
	)

	for {
		start := decoder.InputOffset()
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			local := t.Name.Local
			n := len(frames)
			switch local {
			case "sp", "pic", "cxnSp", "graphicFrame", "grpSp":
				frames = append(frames, shapeFrame{depth: len(names)})
			case "cNvPr":
				if n > 0 && frames[n-1].shape == nil {
					for _, attr := range t.Attr {
						if attr.Name.Local == "id" {
							if id, err := strconv.Atoi(attr.Value); err == nil {
								frames[n-1].shape = shapes[id]
							}
						}
					}
				}
			case "spPr", "grpSpPr":
				if n > 0 && frames[n-1].depth == len(names)-1 {
					frames[n-1].properties = &tagSpan{start: start, end: decoder.InputOffset()}
				}
			case "xfrm":
				if n > 0 && len(names) > 0 && isShapeProperties(names[len(names)-1]) && frames[n-1].depth == len(names)-2 {
					frames[n-1].hasXfrm = true
				}
			case "off", "ext":
				if shape := ownGeometryTarget(names, frames); shape != nil {
					end := decoder.InputOffset()
					edits = append(edits, edit{
						start: start,
						end:   end,
						text:  rewriteGeometry(data[start:end], local, shape),
					})
				}
			}
			names = append(names, local)
		case xml.EndElement:
			local := names[len(names)-1]
			names = names[:len(names)-1]
			n := len(frames)
			if n == 0 {
				continue
			}
			frame := &frames[n-1]
			if isShapeProperties(local) && frame.depth == len(names)-1 && frame.properties != nil {
				if !frame.hasXfrm && frame.shape != nil && (moved == nil || moved(frame.shape)) {
					edits = append(edits, insertXfrm(data, *frame.properties, frame.shape))
				}
				frame.properties = nil
			}
			if frame.depth == len(names) {
				frames = frames[:n-1]
			}
		}
	}

	return applyEdits(data, edits), nil
}

// insertXfrm adds an xfrm as the first child of the properties element at span,
// expanding a self-closing tag.
func insertXfrm(data []byte, span tagSpan, shape *models.Shape) edit {
	xfrm := xfrmElement(data, shape)
	tag := data[span.start:span.end]
	if !bytes.HasSuffix(tag, []byte("/>")) {
		return edit{start: span.end, end: span.end, text: xfrm}
	}

	open := bytes.TrimRight(tag[:len(tag)-2], " \t\r\n")
	name := open[1:]
	if i := bytes.IndexAny(name, " \t\r\n"); i >= 0 {
		name = name[:i]
	}
	var b bytes.Buffer
	b.Write(open)
	b.WriteByte('>')
	b.Write(xfrm)
	fmt.Fprintf(&b, "</%s>", name)
	return edit{start: span.start, end: span.end, text: b.Bytes()}
}

// xfrmElement renders the shape's position and size as a DrawingML xfrm.
func xfrmElement(data []byte, shape *models.Shape) []byte {
	prefix, declare := "a", true
	if m := drawingPrefixPattern.FindSubmatch(data); m != nil {
		prefix, declare = string(m[1]), false
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "<%s:xfrm", prefix)
	if declare {
		fmt.Fprintf(&b, ` xmlns:%s="%s"`, prefix, drawingNamespace)
	}
	fmt.Fprintf(&b, `><%s:off x="%d" y="%d"/><%s:ext cx="%d" cy="%d"/></%s:xfrm>`,
		prefix, PointsToEMU(shape.X), PointsToEMU(shape.Y),
		prefix, PointsToEMU(shape.Width), PointsToEMU(shape.Height), prefix)
	return b.Bytes()
}

// ownGeometryTarget returns the shape whose own xfrm is the current parent element,
// or nil when the element belongs to something else (child offsets, graphics).
func ownGeometryTarget(names []string, frames []shapeFrame) *models.Shape {
	n := len(names)
	if n < 2 || len(frames) == 0 || names[n-1] != "xfrm" || !xfrmOwners[names[n-2]] {
		return nil
	}
	frame := frames[len(frames)-1]
	// The xfrm owner must be a direct child of the shape element
	// (spPr, grpSpPr), or the graphicFrame itself.
	if names[n-2] == "graphicFrame" {
		if frame.depth != n-2 {
			return nil
		}
	} else if frame.depth != n-3 {
		return nil
	}
	return frame.shape
}

// rewriteGeometry replaces the coordinate attributes of an off or ext start tag.
func rewriteGeometry(tag []byte, local string, shape *models.Shape) []byte {
	values := map[string]int64{}
	if local == "off" {
		values["x"] = PointsToEMU(shape.X)
		values["y"] = PointsToEMU(shape.Y)
	} else {
		values["cx"] = PointsToEMU(shape.Width)
		values["cy"] = PointsToEMU(shape.Height)
	}

	return geometryAttrPattern.ReplaceAllFunc(tag, func(m []byte) []byte {
		sub := geometryAttrPattern.FindSubmatch(m)
		value, ok := values[string(sub[2])]
		if !ok {
			return m
		}
		return []byte(fmt.Sprintf(`%s%s="%d"`, sub[1], sub[2], value))
	})
}

// applyEdits returns data with all edits applied.
func applyEdits(data []byte, edits []edit) []byte {
	if len(edits) == 0 {
		return data
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	var out bytes.Buffer
	var pos int64
	for _, e := range edits {
		out.Write(data[pos:e.start])
		out.Write(e.text)
		pos = e.end
	}
	out.Write(data[pos:])
	return out.Bytes()
}
