// Package chart builds and renders the five descriptive charts summarizing
// a pair of log-message catalogs: a pie of error counts per category, a bar
// of severity totals, a severity→category treemap, and two per-template
// frequency histograms.
//
// Charts are described by small spec structs decoupled from any rendering
// backend; encoders turn a spec into HTML (go-echarts) or PNG (gonum/plot).
package chart

// ID is a fixed chart identifier. It keys display configuration and names
// the output artifact (<id>.<format>).
type ID string

const (
	ErrorDistribution  ID = "error_distribution"
	SeverityComparison ID = "severity_comparison"
	DetailedAnalysis   ID = "detailed_analysis"
	ErrorHistogram     ID = "error_histogram"
	WarningHistogram   ID = "warning_histogram"
)

// IDs returns the chart identifiers in presentation order.
func IDs() []ID {
	return []ID{
		ErrorDistribution,
		SeverityComparison,
		DetailedAnalysis,
		ErrorHistogram,
		WarningHistogram,
	}
}

// Spec is a renderable chart description.
type Spec interface {
	// ID returns the chart identifier the spec was built for.
	ID() ID
}

// PieSpec describes a doughnut chart of labeled values.
type PieSpec struct {
	Chart      ID
	Title      string
	CenterText string // annotation inside the hole
	Labels     []string
	Values     []float64
	Hole       float64 // inner radius as a fraction of the outer, 0..1
}

func (s PieSpec) ID() ID { return s.Chart }

// BarSpec describes a bar chart of labeled values. It covers both the
// severity totals chart and the message-frequency histograms.
type BarSpec struct {
	Chart      ID
	Title      string
	XLabel     string
	YLabel     string
	Labels     []string
	Values     []float64
	Color      string // series color, optional
	ShowValues bool   // draw the value on top of each bar
}

func (s BarSpec) ID() ID { return s.Chart }

// TreemapSpec describes a two-level treemap: branches (severities) holding
// leaves (categories) sized by message count.
type TreemapSpec struct {
	Chart    ID
	Title    string
	Root     string
	Branches []TreemapBranch
}

func (s TreemapSpec) ID() ID { return s.Chart }

// TreemapBranch is a colored group of treemap leaves.
type TreemapBranch struct {
	Name   string
	Color  string
	Leaves []TreemapLeaf
}

// Value returns the branch total.
func (b TreemapBranch) Value() float64 {
	v := 0.0
	for _, l := range b.Leaves {
		v += l.Value
	}
	return v
}

// TreemapLeaf is a single sized cell.
type TreemapLeaf struct {
	Name  string
	Value float64
}
