package slidetools

import (
	"context"
	"errors"
	"time"

	"github.com/ukaji3/slidetools-go/pkg/slidetools/engine"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/models"
)

// Run executes an action tree.
//
// The whole tree is validated before anything runs; an invalid tree is reported as an
// *ActionError. Failures of individual actions are logged and do not stop the run.
func Run(ctx context.Context, root *models.ActionItem, opts Options) error {
	if root.WorkingPath == "" {
		root.WorkingPath = opts.WorkingPath
	}

	s := engine.NewSession(opts.logger(), opts.Evaluator)
	runner := engine.NewRunner(s, LoadActionFile)

	if err := runner.Prepare(root); err != nil {
		var unknown *engine.UnknownActionError
		if errors.As(err, &unknown) {
			return NewActionError(unknown.Name, "validate", err)
		}
		return NewActionError(root.Action, "load", err)
	}

	start := time.Now()
	s.Logger.Debugf("Running %d top-level actions", len(root.Actions))
	if err := runner.Run(ctx, root); err != nil {
		return NewActionError(root.Action, "run", err)
	}
	s.Logger.Infof("Finished (%s)", time.Since(start).Round(time.Millisecond))
	return nil
}

// RunFile loads an action file and runs it.
func RunFile(ctx context.Context, filename string, opts Options) error {
	root, err := LoadActionFile(filename)
	if err != nil {
		return NewActionError("", "load", err)
	}
	return Run(ctx, root, opts)
}
