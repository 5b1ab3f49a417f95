package models

import "github.com/shopspring/decimal"

// Slide represents one slide and its top-level shapes in z-order.
type Slide struct {
	// Part is the package part name of the slide (e.g. ppt/slides/slide1.xml).
	Part string `json:"part"`
	// Shapes contains the top-level shapes of the slide.
	Shapes []*Shape `json:"shapes"`
}

// Presentation represents a slide deck.
type Presentation struct {
	// Name is the file name (no path).
	Name string `json:"name"`
	// SlideWidth is the slide width in points.
	SlideWidth decimal.Decimal `json:"slide_width"`
	// SlideHeight is the slide height in points.
	SlideHeight decimal.Decimal `json:"slide_height"`
	// Slides lists slides in presentation order.
	Slides []*Slide `json:"slides"`
}
