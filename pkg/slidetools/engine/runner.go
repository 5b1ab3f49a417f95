package engine

import (
	"context"
	"fmt"

	"github.com/ukaji3/slidetools-go/pkg/slidetools/models"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/parser"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/report"
)

// LoadFunc reads an action tree from a config file.
type LoadFunc func(filename string) (*models.ActionItem, error)

// Runner walks action trees against a Session.
type Runner struct {
	Session *Session
	// Load reads ConfigFilename subtrees. A nil Load rejects trees that use ConfigFilename.
	Load LoadFunc

	expanded map[*models.ActionItem]bool
}

// NewRunner returns a runner for s.
func NewRunner(s *Session, load LoadFunc) *Runner {
	return &Runner{
		Session:  s,
		Load:     load,
		expanded: make(map[*models.ActionItem]bool),
	}
}

// Prepare links the tree, appends the subtrees named by ConfigFilename, and checks
// every action name. Nothing is executed.
func (r *Runner) Prepare(root *models.ActionItem) error {
	if r.expanded == nil {
		r.expanded = make(map[*models.ActionItem]bool)
	}
	root.Link()
	return r.prepare(root, 0)
}

func (r *Runner) prepare(item *models.ActionItem, depth int) error {
	if depth > maxInheritDepth {
		return fmt.Errorf("action tree deeper than %d levels", maxInheritDepth)
	}
	if _, err := ParseKind(item.Action); err != nil {
		return err
	}

	if item.ConfigFilename != "" && !r.expanded[item] {
		r.expanded[item] = true
		if r.Load == nil {
			return fmt.Errorf("cannot load %s: no config loader", item.ConfigFilename)
		}
		sub, err := r.Load(resolvePath(item, item.ConfigFilename))
		if err != nil {
			return fmt.Errorf("load %s: %w", item.ConfigFilename, err)
		}
		item.AddAction(sub)
		sub.Link()
	}

	for _, child := range item.Actions {
		if err := r.prepare(child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Run prepares root and executes it depth first.
// Operation failures are logged and end only the failing node. Run returns an error
// when the tree is invalid or ctx is done.
func (r *Runner) Run(ctx context.Context, root *models.ActionItem) error {
	if err := r.Prepare(root); err != nil {
		return err
	}
	return r.runNode(ctx, root)
}

func (r *Runner) runChildren(ctx context.Context, item *models.ActionItem) error {
	for _, child := range item.Actions {
		if err := r.runNode(ctx, child); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runNode(ctx context.Context, item *models.ActionItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.Session

	for _, v := range item.Variables {
		s.Variables.Set(v.Name, s.Variables.Resolve(v.Value))
	}

	op, err := Compile(item)
	if err != nil {
		s.Logger.Errorf("%s: %v", item.Action, err)
		return nil
	}

	if len(item.InputFiles) > 0 {
		prev := s.Document()
		defer s.SetDocument(prev)
		s.SetDocument(r.open(item))
	}

	if err := r.execute(ctx, item, op); err != nil {
		return err
	}

	if item.OutputFile != "" && !writesOwnOutput(op.Kind()) {
		r.save(item)
	}
	return nil
}

// open loads the first input file of item, returning nil on failure.
func (r *Runner) open(item *models.ActionItem) *parser.Document {
	filename := resolvePath(item, item.InputFiles[0])
	doc, err := parser.Open(filename)
	if err != nil {
		r.Session.Logger.Errorf("Open %s: %v", filename, err)
		return nil
	}
	r.Session.Logger.Infof("Opened %s (%d slides)", filename, len(doc.Presentation.Slides))
	return doc
}

func (r *Runner) save(item *models.ActionItem) {
	doc := r.Session.Document()
	if doc == nil {
		r.Session.Logger.Errorf("Save %s: %v", item.OutputFile, ErrNoDocument)
		return
	}
	filename := resolvePath(item, item.OutputFile)
	if err := parser.SaveFile(doc, filename); err != nil {
		r.Session.Logger.Errorf("Save %s: %v", filename, err)
		return
	}
	r.Session.Logger.Infof("Saved %s", filename)
}

func writesOwnOutput(k Kind) bool {
	return k == KindSlideReport || k == KindShapeInventory
}

// execute runs op for item, then its children. A failed operation is logged and its
// children are skipped. Only cancellation is returned.
func (r *Runner) execute(ctx context.Context, item *models.ActionItem, op Operation) error {
	s := r.Session
	kind := op.Kind()

	var err error
	switch o := op.(type) {
	case batchOp:
	case stubOp:
		s.Logger.Warnf("%s is not implemented", kind)
		if kind == KindForEachSelected {
			return nil
		}
	case findObjectsOp:
		err = FindObjects(s, o.condition)
	case forEachSlideOp:
		return r.forEachSlide(ctx, item)
	case distributeOp:
		distribute(s, o.axis)
	case extremumOp:
		storeExtremum(s, o.axis, o.max, o.item, o.variable)
	case setSelectedXOp:
		err = SetSelectedX(s, o.variable)
	case setMaxWidthOp:
		err = SetSelectedMaxWidth(s, o.variable, o.adjustHeight)
	case setItemYOp:
		err = SetItemYFromVariable(s, o.item, o.variable)
	case slideReportOp:
		err = r.slideReport(o.output)
	case shapeInventoryOp:
		err = r.shapeInventory(o.output, o.verify)
	default:
		err = fmt.Errorf("no handler for %s", kind)
	}
	if err != nil {
		s.Logger.Errorf("%s: %v", kind, err)
		return nil
	}
	return r.runChildren(ctx, item)
}

func (r *Runner) forEachSlide(ctx context.Context, item *models.ActionItem) error {
	s := r.Session
	pres := s.Presentation()
	if pres == nil {
		s.Logger.Errorf("%s: %v", KindForEachSlide, ErrNoDocument)
		return nil
	}
	for i := range pres.Slides {
		s.CurrentSlideIndex = i
		s.Logger.Infof("*** CurrentSlideIndex: %d ***", i)
		if err := r.runChildren(ctx, item); err != nil {
			return err
		}
		s.Logger.Infof("*** End Slide: %d. Next Slide. ***", i)
	}
	return nil
}

func (r *Runner) slideReport(output string) error {
	pres := r.Session.Presentation()
	if pres == nil {
		return ErrNoDocument
	}
	if err := report.WriteSlideReport(output, pres); err != nil {
		return err
	}
	r.Session.Logger.Infof("Wrote report to %s", output)
	return nil
}

func (r *Runner) shapeInventory(output string, verify bool) error {
	pres := r.Session.Presentation()
	if pres == nil {
		return ErrNoDocument
	}
	rows := report.Inventory(pres)
	if err := report.WriteInventory(output, rows); err != nil {
		return err
	}
	r.Session.Logger.Infof("Wrote %d shapes to %s", len(rows), output)
	if !verify {
		return nil
	}

	written, err := report.ReadInventory(output)
	if err != nil {
		return fmt.Errorf("verify %s: %w", output, err)
	}
	if err := report.CompareInventory(rows, written); err != nil {
		return fmt.Errorf("verify %s: %w", output, err)
	}
	r.Session.Logger.Infof("Verified %s", output)
	return nil
}
