// Package report renders search trees and experiment results as ECharts HTML pages.
package report

import (
	"fmt"
	"io"
	"mcts/experiments/metrics"
	"mcts/searcher"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteSearch renders the root move statistics and the tree growth of s.
func WriteSearch(w io.Writer, s *searcher.Search, title string) error {
	page := components.NewPage()
	page.AddCharts(
		rootVisits(s, title),
		treeGrowth(s.Samples()),
	)
	return page.Render(w)
}

// WriteExperiment renders win rates per match up and the search effort per move.
func WriteExperiment(w io.Writer, name string, summaries []metrics.MatchUpSummary, moves []metrics.MoveRecord) error {
	page := components.NewPage()
	page.AddCharts(
		matchUps(name, summaries),
		episodesPerStep(moves),
	)
	return page.Render(w)
}

// WriteFile creates path and its directory and renders into it with write.
func WriteFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	return nil
}

func rootVisits(s *searcher.Search, title string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d iterations, %d nodes", s.Iterations(), s.UniqueNodes()),
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "visits"}),
	)

	children := s.Root().Children()
	moves := make([]string, 0, len(children))
	visits := make([]opts.BarData, 0, len(children))
	winRates := make([]opts.BarData, 0, len(children))
	for _, child := range children {
		moves = append(moves, child.Move().String())
		visits = append(visits, opts.BarData{Value: child.Visits()})
		winRates = append(winRates, opts.BarData{Value: fmt.Sprintf("%.3f", child.WinRate())})
	}

	bar.SetXAxis(moves).
		AddSeries("visits", visits).
		AddSeries("win rate", winRates)
	return bar
}

func treeGrowth(samples []searcher.Sample) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "tree growth"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "ms"}),
	)

	elapsed := make([]string, 0, len(samples))
	nodes := make([]opts.LineData, 0, len(samples))
	iterations := make([]opts.LineData, 0, len(samples))
	for _, sample := range samples {
		elapsed = append(elapsed, fmt.Sprintf("%d", sample.Elapsed.Milliseconds()))
		nodes = append(nodes, opts.LineData{Value: sample.Nodes})
		iterations = append(iterations, opts.LineData{Value: sample.Iterations})
	}

	line.SetXAxis(elapsed).
		AddSeries("nodes", nodes).
		AddSeries("iterations", iterations)
	return line
}

func matchUps(name string, summaries []metrics.MatchUpSummary) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: name, Subtitle: "results per match up"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "games"}),
	)

	labels := make([]string, 0, len(summaries))
	var agent1, agent2, draws, undecided []opts.BarData
	for _, s := range summaries {
		labels = append(labels, fmt.Sprintf("%d vs %d", s.Agent1, s.Agent2))
		agent1 = append(agent1, opts.BarData{Value: s.Agent1Wins})
		agent2 = append(agent2, opts.BarData{Value: s.Agent2Wins})
		draws = append(draws, opts.BarData{Value: s.Draws})
		undecided = append(undecided, opts.BarData{Value: s.Undecided})
	}

	stacked := charts.WithBarChartOpts(opts.BarChart{Stack: "games"})
	bar.SetXAxis(labels).
		AddSeries("agent 1 wins", agent1, stacked).
		AddSeries("agent 2 wins", agent2, stacked).
		AddSeries("draws", draws, stacked).
		AddSeries("undecided", undecided, stacked)
	return bar
}

// episodesPerStep plots the mean number of episodes searched at each move number.
func episodesPerStep(moves []metrics.MoveRecord) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "search effort"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "move"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "episodes"}),
	)

	totals := map[int]int{}
	counts := map[int]int{}
	for _, move := range moves {
		totals[move.Step] += move.Episodes
		counts[move.Step]++
	}
	steps := make([]int, 0, len(totals))
	for step := range totals {
		steps = append(steps, step)
	}
	sort.Ints(steps)

	labels := make([]string, 0, len(steps))
	means := make([]opts.LineData, 0, len(steps))
	for _, step := range steps {
		labels = append(labels, fmt.Sprintf("%d", step))
		means = append(means, opts.LineData{Value: float64(totals[step]) / float64(counts[step])})
	}

	line.SetXAxis(labels).AddSeries("mean episodes", means)
	return line
}
