package telemetry

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	preyColor = color.RGBA{R: 40, G: 170, B: 60, A: 255}
	predColor = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	meanColor = color.RGBA{R: 60, G: 90, B: 200, A: 255}
)

// PlotHistory draws prey and predator counts over simulated seconds and
// saves the chart to path (format from the extension).
func PlotHistory(samples []Sample, title, path string) error {
	if len(samples) == 0 {
		return fmt.Errorf("plotting history: no samples")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Second"
	p.Y.Label.Text = "Population"

	preyPts := make(plotter.XYs, len(samples))
	predPts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		preyPts[i].X = float64(s.Second)
		preyPts[i].Y = float64(s.PreyCount)
		predPts[i].X = float64(s.Second)
		predPts[i].Y = float64(s.PredCount)
	}

	if err := addLines(p, []namedLine{
		{"prey", preyPts, preyColor},
		{"predators", predPts, predColor},
	}); err != nil {
		return err
	}

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving history plot: %w", err)
	}
	return nil
}

// PlotGenerations draws best and mean fitness per generation.
func PlotGenerations(summaries []GenerationSummary, title, path string) error {
	if len(summaries) == 0 {
		return fmt.Errorf("plotting generations: no summaries")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness (s)"

	bestPts := make(plotter.XYs, len(summaries))
	meanPts := make(plotter.XYs, len(summaries))
	for i, s := range summaries {
		bestPts[i].X = float64(s.Generation)
		bestPts[i].Y = s.Best
		meanPts[i].X = float64(s.Generation)
		meanPts[i].Y = s.Mean
	}

	if err := addLines(p, []namedLine{
		{"best", bestPts, predColor},
		{"mean", meanPts, meanColor},
	}); err != nil {
		return err
	}

	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving generation plot: %w", err)
	}
	return nil
}

type namedLine struct {
	name  string
	pts   plotter.XYs
	color color.Color
}

func addLines(p *plot.Plot, lines []namedLine) error {
	for _, l := range lines {
		line, err := plotter.NewLine(l.pts)
		if err != nil {
			return fmt.Errorf("building %s line: %w", l.name, err)
		}
		line.LineStyle.Color = l.color
		p.Add(line)
		p.Legend.Add(l.name, line)
	}
	return nil
}
