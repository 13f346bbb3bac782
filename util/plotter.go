package util

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const ADR_HISTOGRAM_BUCKET_WIDTH = 25.0

// PlotAdrDistribution renders an HTML bar chart of predicted ADR values
// bucketed into fixed-width price bands.
func PlotAdrDistribution(values []float64, outputPath string) error {
	if len(values) == 0 {
		return fmt.Errorf("no ADR values to plot")
	}

	maxValue := values[0]
	for _, v := range values {
		if v > maxValue {
			maxValue = v
		}
	}
	bucketCount := int(math.Floor(maxValue/ADR_HISTOGRAM_BUCKET_WIDTH)) + 1

	counts := make([]int, bucketCount)
	for _, v := range values {
		bucket := int(math.Floor(v / ADR_HISTOGRAM_BUCKET_WIDTH))
		if bucket < 0 {
			bucket = 0
		}
		counts[bucket]++
	}

	labels := make([]string, bucketCount)
	barData := make([]opts.BarData, bucketCount)
	for i := 0; i < bucketCount; i++ {
		lo := float64(i) * ADR_HISTOGRAM_BUCKET_WIDTH
		labels[i] = fmt.Sprintf("%.0f-%.0f", lo, lo+ADR_HISTOGRAM_BUCKET_WIDTH)
		barData[i] = opts.BarData{Value: counts[i]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Predicted ADR Distribution",
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Predicted ADR distribution"}),
	)
	bar.SetXAxis(labels).AddSeries("bookings", barData)

	return renderChart(bar, outputPath)
}

// PlotCancellationProbabilities renders an HTML scatter chart of
// cancellation probabilities (percent) per scored record.
func PlotCancellationProbabilities(probabilities []float64, outputPath string) error {
	if len(probabilities) == 0 {
		return fmt.Errorf("no probabilities to plot")
	}

	labels := make([]string, len(probabilities))
	scatterData := make([]opts.ScatterData, len(probabilities))
	for i, p := range probabilities {
		labels[i] = fmt.Sprintf("%d", i)
		scatterData[i] = opts.ScatterData{Value: p}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Cancellation Probabilities",
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Cancellation probability per booking (%)"}),
	)
	scatter.SetXAxis(labels).AddSeries("probability", scatterData)

	return renderChart(scatter, outputPath)
}

type renderable interface {
	Render(w io.Writer) error
}

func renderChart(chart renderable, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file %q: %w", outputPath, err)
	}
	defer f.Close()

	if err := chart.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
