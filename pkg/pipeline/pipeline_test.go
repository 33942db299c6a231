package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	perrors "github.com/matzehuels/pathdraw/pkg/errors"
	"github.com/matzehuels/pathdraw/pkg/pathway"
)

var quiet = log.New(io.Discard)

const chain = `{
  "nodes": [
    {"id": "A", "type": "species", "structure_id": "InChI=A", "central": true},
    {"id": "B", "type": "species", "structure_id": "InChI=B", "central": true},
    {"id": "C", "type": "species", "structure_id": "InChI=C", "central": true},
    {"id": "W", "type": "species", "name": "water", "structure_id": "InChI=H2O", "cross_refs": {"metanetx": ["MNXM2"]}},
    {"id": "R1", "type": "reaction"},
    {"id": "R2", "type": "reaction"}
  ],
  "edges": [
    {"from": "A", "to": "R1"},
    {"from": "W", "to": "R1"},
    {"from": "R1", "to": "B"},
    {"from": "B", "to": "R2"},
    {"from": "R2", "to": "C"}
  ]
}`

func writePathway(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pathway.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testOptions(root string, formats ...string) Options {
	opts := DefaultOptions()
	opts.Root = root
	opts.Formats = formats
	opts.Logger = quiet
	return opts
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptions_ValidateAndSetDefaults(t *testing.T) {
	opts := Options{Root: "C", Width: -1}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Width != 1.0 || opts.YGap != 0.2 {
		t.Errorf("spacing = %v/%v, want 1/0.2", opts.Width, opts.YGap)
	}
	if !slices.Equal(opts.Formats, []string{FormatSVG}) {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.SubplotWidth != DefaultSubplotWidth || opts.Logger == nil {
		t.Errorf("render defaults not set: %+v", opts)
	}

	missing := Options{}
	if err := missing.ValidateAndSetDefaults(); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("missing root error = %v, want INVALID_INPUT", err)
	}

	bad := Options{Root: "C", Formats: []string{"gif"}}
	if err := bad.ValidateAndSetDefaults(); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("bad format error = %v, want INVALID_INPUT", err)
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if !opts.PlotOnlyCentral || !opts.FilterCofactors || opts.FilterSinkSpecies {
		t.Errorf("filter defaults = %+v", opts.FilterOptions())
	}
	if opts.LenientOrder {
		t.Error("ordering should be strict by default")
	}
}

func TestRunner_Run(t *testing.T) {
	path := writePathway(t, chain)
	r := NewRunner(quiet)

	result, err := r.Run(context.Background(), path, testOptions("C", FormatJSON, FormatDOT))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.RequestID == "" {
		t.Error("RequestID should be set")
	}
	if result.Stats.NodeCount != 6 || result.Stats.EdgeCount != 5 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if !result.Filter.IsDropped("W") {
		t.Error("water should be filtered as a cofactor")
	}
	if got := result.Layout.Layers; len(got) != 5 || got[0][0] != "C" || got[4][0] != "A" {
		t.Errorf("Layers = %v", got)
	}
	if want := []string{"R1", "R2"}; !slices.Equal(result.Order, want) {
		t.Errorf("Order = %v, want %v (err %v)", result.Order, want, result.OrderErr)
	}
	if len(result.Steps) != 2 || !slices.Equal(result.Steps[0].CofactorReactants, []string{"water"}) {
		t.Errorf("Steps = %+v", result.Steps)
	}
	if result.Diagram == nil || len(result.Diagram.Boxes) != 5 {
		t.Fatalf("Diagram = %+v", result.Diagram)
	}

	dot := string(result.Artifacts[FormatDOT])
	if !strings.Contains(dot, `"R1"`) || strings.Contains(dot, `"W"`) {
		t.Errorf("dot artifact should draw R1 and hide W:\n%s", dot)
	}

	var drawing struct {
		Root      string              `json:"root"`
		Positions map[string]struct{} `json:"positions"`
		Order     []string            `json:"order"`
	}
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &drawing); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if drawing.Root != "C" || len(drawing.Positions) != 5 || len(drawing.Order) != 2 {
		t.Errorf("json artifact = %+v", drawing)
	}
}

func TestRunner_Execute_OrderNonFatal(t *testing.T) {
	// C is produced by R1 and R2, so no unambiguous order exists.
	b := pathway.NewBuilder()
	for _, id := range []string{"A", "B", "C"} {
		_ = b.AddSpecies(pathway.Node{ID: id, StructureID: "InChI=" + id, Central: true})
	}
	for _, id := range []string{"R1", "R2"} {
		_ = b.AddReaction(pathway.Node{ID: id})
	}
	for _, e := range [][2]string{{"A", "R1"}, {"R1", "C"}, {"B", "R2"}, {"R2", "C"}} {
		_ = b.AddEdge(pathway.Edge{From: e[0], To: e[1], Stoichiometry: 1})
	}

	result, err := NewRunner(quiet).Execute(context.Background(), b.Build(), testOptions("C", FormatJSON))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !perrors.Is(result.OrderErr, perrors.ErrCodeAmbiguousOrder) {
		t.Errorf("OrderErr = %v, want AMBIGUOUS_OR_NO_FULL_ORDER", result.OrderErr)
	}
	if result.Order != nil || result.Steps != nil {
		t.Errorf("Order = %v, Steps = %v, want nil", result.Order, result.Steps)
	}
	if len(result.Layout.Positions) != 5 {
		t.Errorf("placed %d nodes, want 5", len(result.Layout.Positions))
	}
	if !strings.Contains(string(result.Artifacts[FormatJSON]), "order_error") {
		t.Error("json artifact should carry the order error")
	}
}

func TestRunner_Errors(t *testing.T) {
	r := NewRunner(quiet)
	ctx := context.Background()

	if _, err := r.Run(ctx, writePathway(t, chain), testOptions("Z", FormatJSON)); !perrors.Is(err, perrors.ErrCodeUnknownNode) {
		t.Errorf("unknown root error = %v, want UNKNOWN_NODE", err)
	}
	if _, err := r.Run(ctx, writePathway(t, `{"nodes": [`), testOptions("C", FormatJSON)); !perrors.Is(err, perrors.ErrCodeInvalidFormat) {
		t.Errorf("malformed input error = %v, want INVALID_FORMAT", err)
	}
	if _, err := r.Run(ctx, filepath.Join(t.TempDir(), "missing.json"), testOptions("C", FormatJSON)); err == nil {
		t.Error("missing file should fail")
	}

	opts := testOptions("C", FormatJSON)
	opts.CofactorFile = filepath.Join(t.TempDir(), "missing.toml")
	if _, err := r.Run(ctx, writePathway(t, chain), opts); err == nil {
		t.Error("missing cofactor file should fail")
	}
}

func TestRunner_ShowEverything(t *testing.T) {
	opts := testOptions("C", FormatJSON)
	opts.PlotOnlyCentral = false
	opts.FilterCofactors = false

	result, err := NewRunner(quiet).Run(context.Background(), writePathway(t, chain), opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, ok := result.Layout.Positions["W"]; !ok {
		t.Error("water should be placed when cofactors are shown")
	}
	if result.Stats.Dropped != 0 {
		t.Errorf("Dropped = %d, want 0", result.Stats.Dropped)
	}
}
