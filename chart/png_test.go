package chart

import (
	"bytes"
	"testing"

	"logviz/catalog"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderPNG_AllSpecKinds(t *testing.T) {
	specs := []Spec{
		BuildErrorDistribution(testErrors(), testViz()),
		BuildSeverityComparison(testErrors(), testWarnings(), testViz()),
		BuildDetailedAnalysis(testErrors(), testWarnings(), testViz()),
		BuildErrorHistogram(testErrors(), testViz()),
		BuildWarningHistogram(testWarnings(), testViz()),
	}

	for _, spec := range specs {
		var buf bytes.Buffer
		if err := RenderPNG(&buf, spec); err != nil {
			t.Fatalf("%s: RenderPNG() error = %v", spec.ID(), err)
		}
		if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
			t.Errorf("%s: output is not a PNG", spec.ID())
		}
	}
}

func TestRenderPNG_EmptyCatalogs(t *testing.T) {
	// Zero totals must not divide by zero while drawing wedges or boxes.
	pie := BuildErrorDistribution(catalog.Catalog{}, testViz())
	tree := BuildDetailedAnalysis(catalog.Catalog{}, catalog.Catalog{}, testViz())

	for _, spec := range []Spec{pie, tree} {
		var buf bytes.Buffer
		if err := RenderPNG(&buf, spec); err != nil {
			t.Fatalf("%s: RenderPNG() error = %v", spec.ID(), err)
		}
	}
}

func TestRenderPNG_UnknownSpec(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPNG(&buf, nil); err == nil {
		t.Error("expected error for unknown spec type")
	}
}

func TestParseColor(t *testing.T) {
	c := parseColor("#ff0080", nil)
	r, g, b, a := c.RGBA()
	if r>>8 != 0xff || g>>8 != 0x00 || b>>8 != 0x80 || a>>8 != 0xff {
		t.Errorf("parseColor(#ff0080) = %v", c)
	}

	fallback := parseColor("not-a-color", nil)
	if fallback != nil {
		t.Errorf("parseColor fallback = %v, want nil passthrough", fallback)
	}
}
