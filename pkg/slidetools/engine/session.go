package engine

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/expression"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/models"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/parser"
)

// Session is the state of one run.
// It is not safe for concurrent use; a Runner mutates it from a single goroutine.
type Session struct {
	// ID identifies the run in log output.
	ID string
	// Logger receives progress and failure messages.
	Logger *log.Logger
	// Evaluator compiles and runs FindObjects conditions.
	Evaluator expression.Evaluator
	// CurrentSlideIndex is the 0-based slide set by ForEachSlide.
	CurrentSlideIndex int
	// Variables holds the values passed between actions.
	Variables *Variables

	doc       *parser.Document
	selection []any
}

// NewSession returns a session that logs to logger and evaluates conditions with
// evaluator. A nil logger discards output; a nil evaluator uses expr-lang.
func NewSession(logger *log.Logger, evaluator expression.Evaluator) *Session {
	id := uuid.NewString()
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if evaluator == nil {
		evaluator = expression.NewExpr()
	}
	return &Session{
		ID:        id,
		Logger:    logger.With("run", id[:8]),
		Evaluator: evaluator,
		Variables: NewVariables(),
	}
}

// Document returns the working document, or nil when none is open.
func (s *Session) Document() *parser.Document {
	return s.doc
}

// SetDocument replaces the working document.
func (s *Session) SetDocument(doc *parser.Document) {
	s.doc = doc
}

// Presentation returns the presentation of the working document, or nil.
func (s *Session) Presentation() *models.Presentation {
	if s.doc == nil {
		return nil
	}
	return s.doc.Presentation
}

// Selection returns the selected items in selection order.
func (s *Session) Selection() []any {
	return s.selection
}

// ClearSelection empties the selection.
func (s *Session) ClearSelection() {
	s.selection = nil
}

// Select appends items to the selection.
func (s *Session) Select(items ...any) {
	s.selection = append(s.selection, items...)
}

// SelectedShapes returns the shapes in the selection, skipping other items.
func (s *Session) SelectedShapes() []*models.Shape {
	var shapes []*models.Shape
	for _, item := range s.selection {
		if shape, ok := item.(*models.Shape); ok {
			shapes = append(shapes, shape)
		}
	}
	return shapes
}
