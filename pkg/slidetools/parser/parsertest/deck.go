// Package parsertest builds minimal pptx packages for tests.
package parsertest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	nsP = `xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`
	nsA = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"`
	nsR = `xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`
)

// TextShape returns a p:sp with one paragraph per entry of runs.
// Each run is "font|size|text"; bullet marks every paragraph with buChar.
func TextShape(id int, name string, x, y, cx, cy int64, bullet bool, runs ...string) string {
	var body strings.Builder
	for _, run := range runs {
		parts := strings.SplitN(run, "|", 3)
		body.WriteString("<a:p>")
		if bullet {
			body.WriteString(`<a:pPr><a:buChar char="•"/></a:pPr>`)
		}
		body.WriteString("<a:r><a:rPr lang=\"en-US\"")
		if parts[1] != "" {
			body.WriteString(fmt.Sprintf(` sz="%s"`, parts[1]))
		}
		body.WriteString(">")
		if parts[0] != "" {
			body.WriteString(fmt.Sprintf(`<a:latin typeface="%s"/>`, parts[0]))
		}
		body.WriteString(fmt.Sprintf("</a:rPr><a:t>%s</a:t></a:r></a:p>", parts[2]))
	}
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`+
		`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"/></p:spPr>`+
		`<p:txBody><a:bodyPr/><a:lstStyle/>%s</p:txBody></p:sp>`, id, name, x, y, cx, cy, body.String())
}

// AutoShape returns a p:sp without a text body.
func AutoShape(id int, name string, x, y, cx, cy int64) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`+
		`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="ellipse"/></p:spPr></p:sp>`,
		id, name, x, y, cx, cy)
}

// Placeholder returns a p:sp bound to a layout placeholder, without geometry of its own.
// An empty phType or a zero idx omits the attribute.
func Placeholder(id int, name, phType string, idx int) string {
	var attrs string
	if phType != "" {
		attrs += fmt.Sprintf(` type="%s"`, phType)
	}
	if idx != 0 {
		attrs += fmt.Sprintf(` idx="%d"`, idx)
	}
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr><p:ph%s/></p:nvPr></p:nvSpPr>`+
		`<p:spPr/><p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:r><a:t>%s</a:t></a:r></a:p></p:txBody></p:sp>`,
		id, name, attrs, name)
}

// LayoutPlaceholder returns a layout p:sp placeholder with explicit geometry.
func LayoutPlaceholder(id int, name, phType string, idx int, x, y, cx, cy int64) string {
	var attrs string
	if phType != "" {
		attrs += fmt.Sprintf(` type="%s"`, phType)
	}
	if idx != 0 {
		attrs += fmt.Sprintf(` idx="%d"`, idx)
	}
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr><p:ph%s/></p:nvPr></p:nvSpPr>`+
		`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm></p:spPr></p:sp>`,
		id, name, attrs, x, y, cx, cy)
}

// Picture returns a p:pic referencing relationship rID.
func Picture(id int, name, rID string, x, y, cx, cy int64) string {
	return fmt.Sprintf(`<p:pic><p:nvPicPr><p:cNvPr id="%d" name="%s"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`+
		`<p:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
		`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"/></p:spPr></p:pic>`,
		id, name, rID, x, y, cx, cy)
}

// Group wraps children in a p:grpSp.
func Group(id int, name string, children ...string) string {
	return fmt.Sprintf(`<p:grpSp><p:nvGrpSpPr><p:cNvPr id="%d" name="%s"/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`+
		`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="914400" cy="914400"/>`+
		`<a:chOff x="0" y="0"/><a:chExt cx="914400" cy="914400"/></a:xfrm></p:grpSpPr>%s</p:grpSp>`,
		id, name, strings.Join(children, ""))
}

// Slide wraps shapes in a complete slide part.
func Slide(shapes ...string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<p:sld ` + nsA + ` ` + nsR + ` ` + nsP + `><p:cSld><p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
		`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>` +
		strings.Join(shapes, "") +
		`</p:spTree></p:cSld></p:sld>`
}

// Layout wraps shapes in a slide layout part.
func Layout(shapes ...string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<p:sldLayout ` + nsA + ` ` + nsR + ` ` + nsP + `><p:cSld><p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
		strings.Join(shapes, "") +
		`</p:spTree></p:cSld></p:sldLayout>`
}

// BuildDeck writes a minimal pptx with the given slide parts and returns its path.
// Every slide gets a relationship rId2 to ppt/media/image1.png.
func BuildDeck(t testing.TB, slides ...string) string {
	t.Helper()
	return BuildDeckWithLayout(t, "", slides...)
}

// BuildDeckWithLayout is BuildDeck with every slide related to one layout part.
// An empty layout omits the part.
func BuildDeckWithLayout(t testing.TB, layout string, slides ...string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	write := func(name, content string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	var ids, rels strings.Builder
	for i := range slides {
		ids.WriteString(fmt.Sprintf(`<p:sldId id="%d" r:id="rId%d"/>`, 256+i, 10+i))
		rels.WriteString(fmt.Sprintf(`<Relationship Id="rId%d" `+
			`Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" `+
			`Target="slides/slide%d.xml"/>`, 10+i, i+1))
	}

	write("[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`)
	write("ppt/presentation.xml", `<?xml version="1.0" encoding="UTF-8"?>`+
		`<p:presentation `+nsA+` `+nsR+` `+nsP+`><p:sldIdLst>`+ids.String()+`</p:sldIdLst>`+
		`<p:sldSz cx="9144000" cy="6858000"/></p:presentation>`)
	write("ppt/_rels/presentation.xml.rels", `<?xml version="1.0" encoding="UTF-8"?>`+
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+rels.String()+`</Relationships>`)
	var layoutRel string
	if layout != "" {
		write("ppt/slideLayouts/slideLayout1.xml", layout)
		layoutRel = `<Relationship Id="rId1" ` +
			`Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" ` +
			`Target="../slideLayouts/slideLayout1.xml"/>`
	}
	for i, slide := range slides {
		write(fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slide)
		write(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), `<?xml version="1.0" encoding="UTF-8"?>`+
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+layoutRel+
			`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image1.png"/>`+
			`</Relationships>`)
	}
	write("ppt/media/image1.png", "\x89PNG fake")

	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}

	filename := filepath.Join(t.TempDir(), "deck.pptx")
	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return filename
}
