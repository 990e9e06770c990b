package history

import (
	"fmt"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
	"io"
	"os"
)

func newLine(title, subtitle string, episodes []string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)
	line.SetXAxis(episodes)
	return line
}

func lineData[T any](records []Record, fn func(ii int, r Record) T) []opts.LineData {
	items := make([]opts.LineData, 0, len(records))
	for ii, r := range records {
		items = append(items, opts.LineData{Value: fn(ii, r)})
	}
	return items
}

// WritePlot renders an HTML page with the outcomes moving averages, the exploration rates and
// the value table sizes along the episodes.
func WritePlot(w io.Writer, records []Record, title string) error {
	if len(records) == 0 {
		return errors.New("no history records to plot")
	}
	episodes := make([]string, len(records))
	for ii, r := range records {
		episodes[ii] = fmt.Sprintf("%d", r.Episode)
	}
	subtitle := fmt.Sprintf("run %s", records[0].RunID)

	averages := ComputeMovingAverages(records)
	outcomes := newLine(title+": outcomes (moving average)", subtitle, episodes)
	for outcome, name := range []string{"X wins", "O wins", "Draws"} {
		outcomes.AddSeries(name, lineData(records, func(ii int, _ Record) float32 {
			return averages[ii][outcome]
		}))
	}

	exploration := newLine(title+": exploration rate", subtitle, episodes)
	exploration.AddSeries("X", lineData(records, func(_ int, r Record) float64 { return r.ExplorationA }))
	exploration.AddSeries("O", lineData(records, func(_ int, r Record) float64 { return r.ExplorationB }))

	states := newLine(title+": states in value table", subtitle, episodes)
	states.AddSeries("X", lineData(records, func(_ int, r Record) int64 { return r.StatesA }))
	states.AddSeries("O", lineData(records, func(_ int, r Record) int64 { return r.StatesB }))

	moves := newLine(title+": moves per episode", subtitle, episodes)
	moves.AddSeries("moves", lineData(records, func(_ int, r Record) int32 { return r.Moves }))

	page := components.NewPage()
	page.AddCharts(outcomes, exploration, states, moves)
	if err := page.Render(w); err != nil {
		return errors.Wrap(err, "failed to render history plot")
	}
	return nil
}

// WritePlotFile is like WritePlot, but writes to the given file.
func WritePlotFile(filePath string, records []Record, title string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to create plot file %q", filePath)
	}
	if err := WritePlot(f, records, title); err != nil {
		_ = f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "failed to close plot file %q", filePath)
}
