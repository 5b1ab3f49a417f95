package engine

import (
	"github.com/shopspring/decimal"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/models"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/parser"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func box(name string, x, y, w, h string) *models.Shape {
	return &models.Shape{
		Name:   name,
		Kind:   models.KindAutoShape,
		X:      dec(x),
		Y:      dec(y),
		Width:  dec(w),
		Height: dec(h),
	}
}

func textBox(name, font, size string, bullet models.BulletType) *models.Shape {
	return &models.Shape{
		Name: name,
		Kind: models.KindText,
		Paragraphs: []models.Paragraph{{
			Bullet:   bullet,
			Portions: []models.Portion{{Text: name, FontName: font, FontSize: dec(size)}},
		}},
	}
}

func newTestSession(slides ...[]*models.Shape) *Session {
	s := NewSession(nil, nil)
	pres := &models.Presentation{Name: "test.pptx"}
	for _, shapes := range slides {
		pres.Slides = append(pres.Slides, &models.Slide{Shapes: shapes})
	}
	s.SetDocument(&parser.Document{Presentation: pres})
	return s
}

func names(items []any) []string {
	var result []string
	for _, item := range items {
		if shape, ok := item.(*models.Shape); ok {
			result = append(result, shape.Name)
		}
	}
	return result
}
