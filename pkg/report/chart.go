package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/itree/pkg/alg/interval"
)

const (
	chartWidth  = "100%"
	chartHeight = "480px"
	seriesName  = "intervals stored"
	barColor    = "#5470c6"
)

// WriteDepthChart renders an HTML page with a bar per tree depth showing how
// many intervals are stored there.
func WriteDepthChart(w io.Writer, stats interval.Stats, source string) error {
	bar := charts.NewBar()

	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "itree depth profile",
			Width:     chartWidth,
			Height:    chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Intervals stored per depth",
			Subtitle: fmt.Sprintf("%s: %d intervals, %d nodes, height %d",
				source, stats.Intervals, stats.Nodes, stats.Height),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "depth"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "intervals"}),
	)

	labels := make([]string, len(stats.PerDepth))
	data := make([]opts.BarData, len(stats.PerDepth))

	for depth, count := range stats.PerDepth {
		labels[depth] = fmt.Sprintf("%d", depth)
		data[depth] = opts.BarData{
			Value:     count,
			ItemStyle: &opts.ItemStyle{Color: barColor},
		}
	}

	bar.SetXAxis(labels).AddSeries(seriesName, data)

	err := bar.Render(w)
	if err != nil {
		return fmt.Errorf("render depth chart: %w", err)
	}

	return nil
}
