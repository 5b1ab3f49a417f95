package parser

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/models"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/parser/parsertest"
)

func TestOpen(t *testing.T) {
	deck := parsertest.BuildDeck(t,
		parsertest.Slide(
			parsertest.TextShape(2, "Title", 914400, 457200, 1828800, 914400, false, "Arial|2400|Hello", "|1800|World"),
			parsertest.Picture(3, "Logo", "rId2", 0, 0, 914400, 914400),
		),
		parsertest.Slide(
			parsertest.Group(4, "Cluster",
				parsertest.AutoShape(5, "Dot", 12700, 25400, 127000, 127000),
				parsertest.TextShape(6, "Caption", 0, 0, 914400, 254000, true, "Calibri|1200|Note"),
			),
		),
	)

	doc, err := Open(deck)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	pres := doc.Presentation

	if pres.Name != "deck.pptx" {
		t.Errorf("Expected name deck.pptx, got %q", pres.Name)
	}
	if !pres.SlideWidth.Equal(decimal.NewFromInt(720)) || !pres.SlideHeight.Equal(decimal.NewFromInt(540)) {
		t.Errorf("Expected slide size 720x540, got %sx%s", pres.SlideWidth, pres.SlideHeight)
	}
	if len(pres.Slides) != 2 {
		t.Fatalf("Expected 2 slides, got %d", len(pres.Slides))
	}
	if pres.Slides[0].Part != "ppt/slides/slide1.xml" {
		t.Errorf("Expected slide part ppt/slides/slide1.xml, got %q", pres.Slides[0].Part)
	}

	shapes := pres.Slides[0].Shapes
	if len(shapes) != 2 {
		t.Fatalf("Expected 2 shapes on slide 1, got %d", len(shapes))
	}

	title := shapes[0]
	if title.ID != 2 || title.Name != "Title" || title.Kind != models.KindText {
		t.Errorf("Unexpected title identity: id=%d name=%q kind=%s", title.ID, title.Name, title.Kind)
	}
	if !title.X.Equal(decimal.NewFromInt(72)) || !title.Y.Equal(decimal.NewFromInt(36)) {
		t.Errorf("Expected title at (72, 36), got (%s, %s)", title.X, title.Y)
	}
	if !title.Width.Equal(decimal.NewFromInt(144)) || !title.Height.Equal(decimal.NewFromInt(72)) {
		t.Errorf("Expected title size 144x72, got %sx%s", title.Width, title.Height)
	}
	if title.Text() != "Hello\nWorld" {
		t.Errorf("Expected text %q, got %q", "Hello\nWorld", title.Text())
	}
	if title.FirstFontName() != "Arial" {
		t.Errorf("Expected first font Arial, got %q", title.FirstFontName())
	}
	if !title.FirstFontSize().Equal(decimal.NewFromInt(24)) {
		t.Errorf("Expected first font size 24, got %s", title.FirstFontSize())
	}
	if title.HasBullet() {
		t.Error("Expected title without bullets")
	}

	logo := shapes[1]
	if logo.Kind != models.KindPicture || logo.Picture == nil {
		t.Fatalf("Expected picture shape, got kind %s", logo.Kind)
	}
	if logo.Picture.Image != "ppt/media/image1.png" {
		t.Errorf("Expected image ppt/media/image1.png, got %q", logo.Picture.Image)
	}

	group := pres.Slides[1].Shapes[0]
	if !group.IsGroup() || group.Name != "Cluster" || group.Kind != models.KindGroup {
		t.Fatalf("Expected group Cluster, got %q (%s)", group.Name, group.Kind)
	}
	if len(group.Children) != 2 {
		t.Fatalf("Expected 2 grouped shapes, got %d", len(group.Children))
	}
	if group.Children[0].Kind != models.KindAutoShape || group.Children[0].IsGroup() {
		t.Errorf("Expected leaf AutoShape, got %s", group.Children[0].Kind)
	}
	if !group.Children[0].X.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected dot X 1, got %s", group.Children[0].X)
	}
	if !group.Children[1].HasBullet() {
		t.Error("Expected caption with bullets")
	}
}

func TestOpenInvalid(t *testing.T) {
	if _, err := Read(bytes.NewReader(nil), 0, "empty.pptx"); err == nil {
		t.Error("Expected error for empty package")
	}
}

func TestParseSlideXMLEmpty(t *testing.T) {
	shapes := parseSlideXML([]byte(parsertest.Slide()), func(string) string { return "" })
	if shapes == nil || len(shapes) != 0 {
		t.Errorf("Expected empty non-nil shape list, got %v", shapes)
	}
}

func TestParseParagraphBullets(t *testing.T) {
	tests := []struct {
		bulletXML string
		expected  models.BulletType
	}{
		{"", models.BulletNone},
		{`<a:pPr><a:buNone/></a:pPr>`, models.BulletNone},
		{`<a:pPr><a:buChar char="-"/></a:pPr>`, models.BulletCharacter},
		{`<a:pPr><a:buAutoNum type="arabicPeriod"/></a:pPr>`, models.BulletNumbered},
	}

	for _, tt := range tests {
		slide := parsertest.Slide(`<p:sp><p:nvSpPr><p:cNvPr id="2" name="S"/></p:nvSpPr><p:txBody><a:p>` +
			tt.bulletXML + `<a:r><a:t>x</a:t></a:r></a:p></p:txBody></p:sp>`)
		shapes := parseSlideXML([]byte(slide), func(string) string { return "" })
		if len(shapes) != 1 || len(shapes[0].Paragraphs) != 1 {
			t.Fatalf("Expected one shape with one paragraph for %q", tt.bulletXML)
		}
		if result := shapes[0].Paragraphs[0].Bullet; result != tt.expected {
			t.Errorf("bullet for %q = %s, expected %s", tt.bulletXML, result, tt.expected)
		}
	}
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		baseDir  string
		target   string
		expected string
	}{
		{"ppt", "slides/slide1.xml", "ppt/slides/slide1.xml"},
		{"ppt/slides", "../media/image1.png", "ppt/media/image1.png"},
		{"ppt/slides", "/ppt/media/image2.png", "ppt/media/image2.png"},
	}

	for _, tt := range tests {
		result := resolveTarget(tt.baseDir, tt.target)
		if result != tt.expected {
			t.Errorf("resolveTarget(%q, %q) = %q, expected %q",
				tt.baseDir, tt.target, result, tt.expected)
		}
	}
}

func TestRelsPartName(t *testing.T) {
	result := relsPartName("ppt/slides/slide3.xml")
	if result != "ppt/slides/_rels/slide3.xml.rels" {
		t.Errorf("relsPartName = %q", result)
	}
}
