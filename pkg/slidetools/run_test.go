package slidetools

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/models"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/parser"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/parser/parsertest"
)

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	deck := parsertest.BuildDeck(t,
		parsertest.Slide(
			parsertest.TextShape(2, "Wide", 0, 0, 1270000, 635000, false, "Arial|2400|Big"),
			parsertest.TextShape(3, "Small", 0, 0, 1270000, 635000, false, "Arial|1000|small"),
		),
	)

	config := filepath.Join(dir, "tree.yaml")
	tree := strings.Join([]string{
		"workingPath: " + dir,
		"inputFiles: [" + deck + "]",
		"outputFile: out.pptx",
		"variables:",
		"  - {name: MaxWidth, value: 60d}",
		"actions:",
		"  - action: FindObjects",
		"    condition: FontSize > 12",
		"  - action: SetSelectedMaxWidth",
		"    variableName: MaxWidth",
		"    properties:",
		"      - {name: AdjustHeightRelative, value: \"true\"}",
		"",
	}, "\n")
	if err := os.WriteFile(config, []byte(tree), 0644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	opts := DefaultOptions()
	opts.Output = &logs
	if err := RunFile(context.Background(), config, opts); err != nil {
		t.Fatalf("RunFile failed: %v", err)
	}

	doc, err := parser.Open(filepath.Join(dir, "out.pptx"))
	if err != nil {
		t.Fatalf("Open output failed: %v", err)
	}
	shapes := doc.Presentation.Slides[0].Shapes
	if shapes[0].Width.String() != "60" || shapes[0].Height.String() != "58" {
		t.Errorf("Expected Wide 60x58, got %sx%s", shapes[0].Width, shapes[0].Height)
	}
	if shapes[1].Width.String() != "100" || shapes[1].Height.String() != "50" {
		t.Errorf("Expected Small unchanged at 100x50, got %sx%s", shapes[1].Width, shapes[1].Height)
	}
	if !strings.Contains(logs.String(), "Items Selected: 1") {
		t.Errorf("Expected selection count in log, got:\n%s", logs.String())
	}
}

func TestRunInvalidTree(t *testing.T) {
	root := &models.ActionItem{Actions: []*models.ActionItem{{Action: "Teleport"}}}
	err := Run(context.Background(), root, Options{Logger: log.New(&bytes.Buffer{})})

	var actionErr *ActionError
	if !errors.As(err, &actionErr) {
		t.Fatalf("Expected ActionError, got %v", err)
	}
	if actionErr.Action != "Teleport" || actionErr.Stage != "validate" {
		t.Errorf("Unexpected ActionError: %+v", actionErr)
	}
}

func TestRunFileMissing(t *testing.T) {
	err := RunFile(context.Background(), filepath.Join(t.TempDir(), "none.json"), DefaultOptions())
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
}

func TestRunUsesDefaultWorkingPath(t *testing.T) {
	dir := t.TempDir()
	deck := parsertest.BuildDeck(t, parsertest.Slide(parsertest.AutoShape(2, "Box", 0, 0, 12700, 12700)))

	root := &models.ActionItem{
		Action:     "SlideReport",
		InputFiles: []string{deck},
		OutputFile: "report.txt",
	}
	opts := Options{WorkingPath: dir, Logger: log.New(&bytes.Buffer{})}
	if err := Run(context.Background(), root, opts); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "report.txt")); err != nil {
		t.Errorf("Expected report in working path: %v", err)
	}
}

func TestActionError(t *testing.T) {
	inner := errors.New("boom")
	err := NewActionError("FindObjects", "run", inner)

	if !errors.Is(err, inner) {
		t.Error("Expected ActionError to unwrap")
	}
	expected := `action error in "FindObjects" (run): boom`
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
}

func TestOptionsLogLevel(t *testing.T) {
	tests := []struct {
		level    Level
		expected log.Level
	}{
		{LevelQuiet, log.ErrorLevel},
		{LevelNormal, log.InfoLevel},
		{LevelVerbose, log.DebugLevel},
		{Level("WARN"), log.WarnLevel},
		{Level("loud"), log.InfoLevel},
	}

	for _, tt := range tests {
		if result := (Options{Level: tt.level}).logLevel(); result != tt.expected {
			t.Errorf("logLevel(%q) = %v, expected %v", tt.level, result, tt.expected)
		}
	}
}
