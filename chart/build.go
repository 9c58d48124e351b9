package chart

import (
	"logviz/catalog"
	"logviz/config"
)

// Semantic keys into the visualization configuration.
const (
	roleError   = "error"
	roleWarning = "warning"

	labelSeverity       = "severity"
	labelMessageCount   = "message_count"
	labelErrorMessage   = "error_message"
	labelWarningMessage = "warning_message"
	labelFrequency      = "frequency"
)

// treemapRoot is the fixed root cell of the detailed analysis treemap.
const treemapRoot = "All Messages"

// BuildErrorDistribution builds the doughnut of error counts per category.
func BuildErrorDistribution(errors catalog.Catalog, viz config.Visualization) PieSpec {
	counts := errors.Counts()
	spec := PieSpec{
		Chart:      ErrorDistribution,
		Title:      viz.Title(string(ErrorDistribution)),
		CenterText: "Errors",
		Labels:     make([]string, len(counts)),
		Values:     make([]float64, len(counts)),
		Hole:       0.3,
	}
	for i, c := range counts {
		spec.Labels[i] = c.Name
		spec.Values[i] = float64(c.Count)
	}
	return spec
}

// BuildSeverityComparison builds the ERROR vs WARNING totals bar chart.
func BuildSeverityComparison(errors, warnings catalog.Catalog, viz config.Visualization) BarSpec {
	return BarSpec{
		Chart:      SeverityComparison,
		Title:      viz.Title(string(SeverityComparison)),
		XLabel:     viz.Label(labelSeverity),
		YLabel:     viz.Label(labelMessageCount),
		Labels:     []string{catalog.SeverityError.String(), catalog.SeverityWarning.String()},
		Values:     []float64{float64(errors.Total()), float64(warnings.Total())},
		ShowValues: true,
	}
}

// BuildDetailedAnalysis builds the severity→category treemap from the
// combined table rows: error categories first, then warnings, in catalog
// order.
func BuildDetailedAnalysis(errors, warnings catalog.Catalog, viz config.Visualization) TreemapSpec {
	branches := map[catalog.Severity]*TreemapBranch{
		catalog.SeverityError:   {Name: catalog.SeverityError.String(), Color: viz.Color(roleError)},
		catalog.SeverityWarning: {Name: catalog.SeverityWarning.String(), Color: viz.Color(roleWarning)},
	}
	for _, row := range catalog.BuildRows(errors, warnings) {
		b := branches[row.Severity]
		b.Leaves = append(b.Leaves, TreemapLeaf{Name: row.Category, Value: float64(row.Count)})
	}

	return TreemapSpec{
		Chart: DetailedAnalysis,
		Title: viz.Title(string(DetailedAnalysis)),
		Root:  treemapRoot,
		Branches: []TreemapBranch{
			*branches[catalog.SeverityError],
			*branches[catalog.SeverityWarning],
		},
	}
}

// BuildErrorHistogram builds the per-template frequency histogram over the
// flattened error catalog.
func BuildErrorHistogram(errors catalog.Catalog, viz config.Visualization) BarSpec {
	labels, values := frequencies(errors.Flatten())
	return BarSpec{
		Chart:  ErrorHistogram,
		Title:  viz.Title(string(ErrorHistogram)),
		XLabel: viz.Label(labelErrorMessage),
		YLabel: viz.Label(labelFrequency),
		Labels: labels,
		Values: values,
		Color:  viz.Color(roleError),
	}
}

// BuildWarningHistogram builds the per-template frequency histogram over the
// flattened warning catalog.
func BuildWarningHistogram(warnings catalog.Catalog, viz config.Visualization) BarSpec {
	labels, values := frequencies(warnings.Flatten())
	return BarSpec{
		Chart:  WarningHistogram,
		Title:  viz.Title(string(WarningHistogram)),
		XLabel: viz.Label(labelWarningMessage),
		YLabel: viz.Label(labelFrequency),
		Labels: labels,
		Values: values,
		Color:  viz.Color(roleWarning),
	}
}

// frequencies counts occurrences of each message, binned in order of first
// appearance so repeated runs bin identically.
func frequencies(messages []string) (labels []string, values []float64) {
	index := make(map[string]int, len(messages))
	for _, m := range messages {
		i, ok := index[m]
		if !ok {
			i = len(labels)
			index[m] = i
			labels = append(labels, m)
			values = append(values, 0)
		}
		values[i]++
	}
	return labels, values
}
