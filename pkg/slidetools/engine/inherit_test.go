package engine

import (
	"testing"

	"github.com/ukaji3/slidetools-go/pkg/slidetools/models"
)

func TestResolveFiltersFromAncestor(t *testing.T) {
	root := &models.ActionItem{
		Action: "Batch",
		Filters: []models.FilterElement{
			{Property: "FontSize", Operator: ">", Value: "12"},
			{Property: "IsBullet", Operator: "==", Value: "true"},
		},
	}
	middle := &models.ActionItem{Action: "Batch"}
	leaf := &models.ActionItem{Action: "FindObjects"}
	root.AddAction(middle)
	middle.AddAction(leaf)

	filters := ResolveFilters(leaf)
	if len(filters) != 2 {
		t.Fatalf("Expected 2 inherited filters, got %d", len(filters))
	}
	if filters[0].Property != "FontSize" || filters[1].Property != "IsBullet" {
		t.Errorf("Unexpected filters: %+v", filters)
	}
}

func TestResolveFiltersOwnWins(t *testing.T) {
	root := &models.ActionItem{Filters: []models.FilterElement{{Property: "A"}, {Property: "B"}}}
	leaf := &models.ActionItem{Filters: []models.FilterElement{{Property: "C"}}}
	root.AddAction(leaf)

	filters := ResolveFilters(leaf)
	if len(filters) != 1 || filters[0].Property != "C" {
		t.Errorf("Expected own filter C, got %+v", filters)
	}
}

func TestResolveFiltersEmpty(t *testing.T) {
	root := &models.ActionItem{}
	leaf := &models.ActionItem{}
	root.AddAction(leaf)

	filters := ResolveFilters(leaf)
	if filters == nil || len(filters) != 0 {
		t.Errorf("Expected empty non-nil filters, got %v", filters)
	}
}

func TestResolveItemName(t *testing.T) {
	root := &models.ActionItem{ItemName: "Top"}
	middle := &models.ActionItem{}
	leaf := &models.ActionItem{}
	root.AddAction(middle)
	middle.AddAction(leaf)

	if name := ResolveItemName(leaf); name != "Top" {
		t.Errorf("Expected inherited Top, got %q", name)
	}
	middle.ItemName = "Middle"
	if name := ResolveItemName(leaf); name != "Middle" {
		t.Errorf("Expected nearest Middle, got %q", name)
	}
	if name := ResolveItemName(&models.ActionItem{}); name != "" {
		t.Errorf("Expected empty name, got %q", name)
	}
}

func TestResolveInheritedFields(t *testing.T) {
	root := &models.ActionItem{
		WorkingPath: "/work",
		InputFiles:  []string{"deck.pptx"},
		OutputFile:  "out.pptx",
		Options:     []string{"fast"},
		Properties:  models.NameValueList{{Name: "AdjustHeightRelative", Value: "true"}},
	}
	leaf := &models.ActionItem{}
	root.AddAction(leaf)

	if dir := ResolveWorkingPath(leaf); dir != "/work" {
		t.Errorf("Expected /work, got %q", dir)
	}
	if files := ResolveInputFiles(leaf); len(files) != 1 || files[0] != "deck.pptx" {
		t.Errorf("Expected inherited input files, got %v", files)
	}
	if opts := ResolveOptions(leaf); len(opts) != 1 || opts[0] != "fast" {
		t.Errorf("Expected inherited options, got %v", opts)
	}
	if p, ok := ResolveProperties(leaf).Get("adjustheightrelative"); !ok || p.Value != "true" {
		t.Errorf("Expected inherited property, got %+v", p)
	}
	if leaf.OutputFile != "" {
		t.Errorf("Expected output file not to be copied, got %q", leaf.OutputFile)
	}
}

func TestResolveIsBoundedOnCycles(t *testing.T) {
	a := &models.ActionItem{}
	b := &models.ActionItem{}
	a.Parent = b
	b.Parent = a

	if filters := ResolveFilters(a); len(filters) != 0 {
		t.Errorf("Expected no filters, got %v", filters)
	}
	if name := ResolveItemName(a); name != "" {
		t.Errorf("Expected empty item name, got %q", name)
	}
}
