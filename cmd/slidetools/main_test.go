package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ukaji3/slidetools-go/pkg/slidetools/engine"
	"github.com/ukaji3/slidetools-go/pkg/slidetools/parser/parsertest"
)

func resetFlags() {
	configFile, actionName, condition, itemName, variableName = "", "", "", "", ""
	inputFiles, options = nil, nil
	outputFile, properties, workingPath = "", "", ""
	verbose = false
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestActionsCommand(t *testing.T) {
	out, err := execute(t, "actions")
	if err != nil {
		t.Fatalf("actions failed: %v", err)
	}
	lines := strings.Fields(out)
	if len(lines) != len(engine.Names()) {
		t.Errorf("Expected %d names, got %d", len(engine.Names()), len(lines))
	}
	if !strings.Contains(out, "FindObjects\n") {
		t.Errorf("Expected FindObjects in output, got:\n%s", out)
	}
}

func TestRunSingleAction(t *testing.T) {
	deck := parsertest.BuildDeck(t, parsertest.Slide(parsertest.AutoShape(2, "Box", 0, 0, 914400, 914400)))
	dir := t.TempDir()

	_, err := execute(t, "run", "--action", "SlideReport", "--infile", deck, "--outfile", "report.txt", "--working-path", dir)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "report.txt"))
	if err != nil {
		t.Fatalf("Expected report: %v", err)
	}
	if !strings.Contains(string(data), " Box\n  T: AutoShape\n") {
		t.Errorf("Unexpected report:\n%s", data)
	}
}

func TestRunRequiresConfigOrAction(t *testing.T) {
	if _, err := execute(t, "run"); err == nil {
		t.Error("Expected error without --config or --action")
	}
	if _, err := execute(t, "run", "--config", "a.json", "--action", "Batch"); err == nil {
		t.Error("Expected error for both --config and --action")
	}
}

func TestRunUnknownAction(t *testing.T) {
	_, err := execute(t, "run", "--action", "Teleport")
	if err == nil || !strings.Contains(err.Error(), "Teleport") {
		t.Errorf("Expected unknown action error, got %v", err)
	}
}

func TestActionFromFlags(t *testing.T) {
	resetFlags()
	actionName = "SetSelectedMaxWidth"
	variableName = "MaxWidth"
	inputFiles = []string{"a.pptx", "b.pptx"}
	properties = `[{"Name":"AdjustHeightRelative","Value":"true"}]`

	item, err := actionFromFlags()
	if err != nil {
		t.Fatalf("actionFromFlags failed: %v", err)
	}
	if item.Action != "SetSelectedMaxWidth" || item.VariableName != "MaxWidth" || len(item.InputFiles) != 2 {
		t.Errorf("Unexpected item: %+v", item)
	}
	if p, ok := item.Properties.Get("AdjustHeightRelative"); !ok || p.Value != "true" {
		t.Errorf("Expected parsed properties, got %+v", item.Properties)
	}

	properties = "not json"
	if _, err := actionFromFlags(); err == nil {
		t.Error("Expected error for invalid properties")
	}
}
