package sim

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/rodaine/table"

	"github.com/plus3/tetris/loop"
)

type Report struct {
	// Configuration
	Duration       time.Duration
	MaxFrames      int64
	Frame          time.Duration
	Seed           uint64
	Rows           int
	Cols           int
	GCPauseMetrics bool

	// Results
	Games         []GameResult
	TotalFrames   int64
	TotalPieces   int
	TotalLines    int
	TotalTime     time.Duration
	UpdateTime    Stats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) finalize() {
	var all Stats
	for _, g := range r.Games {
		r.TotalFrames += g.Frames
		r.TotalPieces += g.Stats.TotalPieces()
		r.TotalLines += g.Session.Lines
		all.Samples = append(all.Samples, g.Update.Samples...)
	}
	all.Finalize()
	r.UpdateTime = Stats{Min: all.Min, Max: all.Max, Avg: all.Avg}
}

// BestScore is the highest score reached by any game.
func (r *Report) BestScore() int {
	best := 0
	for _, g := range r.Games {
		best = max(best, g.BestScore)
	}
	return best
}

// Systems merges per-system timings across games.
func (r *Report) Systems() []loop.SystemStats {
	var merged []loop.SystemStats
	index := map[string]int{}
	for _, g := range r.Games {
		for _, s := range g.Systems {
			i, ok := index[s.Name]
			if !ok {
				index[s.Name] = len(merged)
				merged = append(merged, s)
				continue
			}
			m := &merged[i]
			if s.ExecutionCount > 0 && (m.ExecutionCount == 0 || s.MinDuration < m.MinDuration) {
				m.MinDuration = s.MinDuration
			}
			m.MaxDuration = max(m.MaxDuration, s.MaxDuration)
			m.ExecutionCount += s.ExecutionCount
			m.TotalDuration += s.TotalDuration
			m.LastDuration = s.LastDuration
		}
	}
	for i := range merged {
		if merged[i].ExecutionCount > 0 {
			merged[i].AvgDuration = merged[i].TotalDuration / time.Duration(merged[i].ExecutionCount)
		}
	}
	return merged
}

const reportTemplate = `
{{heading "# Tetris Simulation Report"}}

{{heading "## Configuration"}}
- Board:       {{.Rows}}x{{.Cols}}
- Games:       {{len .Games}}
- Seed:        {{.Seed}}
- Frame delta: {{.Frame}}
{{- if .Duration}}
- Duration:    {{.Duration}}
{{- end}}
{{- if .MaxFrames}}
- Max frames:  {{comma .MaxFrames}}
{{- end}}

{{heading "## Results"}}
- Total frames: {{comma .TotalFrames}}
- Total pieces: {{comma .TotalPieces}}
- Total lines:  {{comma .TotalLines}}
- Best score:   {{comma .BestScore}}
- Wall time:    {{.TotalTime}}
- Frame update:
  - Avg: {{.UpdateTime.Avg}}
  - Min: {{.UpdateTime.Min}}
  - Max: {{.UpdateTime.Max}}

{{heading "## Memory"}}
- Heap alloc:  {{bytes .MemStatsStart.HeapAlloc}} -> {{bytes .MemStatsEnd.HeapAlloc}}
- Total alloc: {{bytes .MemStatsStart.TotalAlloc}} -> {{bytes .MemStatsEnd.TotalAlloc}} (delta {{bdelta .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}})
- Sys memory:  {{bytes .MemStatsStart.Sys}} -> {{bytes .MemStatsEnd.Sys}}
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
{{heading "## GC Pauses"}}
- Total GC pause: {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}
{{heading "## Games"}}
`

// Generate writes the report as markdown-flavoured text followed by the per
// game and per system tables.
func (r *Report) Generate(w io.Writer) error {
	heading := color.New(color.FgCyan, color.Bold).SprintFunc()

	fm := template.FuncMap{
		"heading": func(s string) string { return heading(s) },
		"comma": func(v any) string {
			switch val := v.(type) {
			case int:
				return humanize.Comma(int64(val))
			case int64:
				return humanize.Comma(val)
			default:
				return fmt.Sprint(v)
			}
		},
		"bytes": humanize.IBytes,
		"bdelta": func(a, b uint64) string {
			if a >= b {
				return "+" + humanize.IBytes(a-b)
			}
			return "-" + humanize.IBytes(b-a)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}
	if err := tmpl.Execute(w, r); err != nil {
		return err
	}

	r.writeGames(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, heading("## Systems"))
	r.writeSystems(w)
	return nil
}

func (r *Report) writeGames(w io.Writer) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Game", "Seed", "Frames", "Pieces", "Lines", "Tetrises", "Game Overs", "Best Score", "Level", "Rejected"})
	tw.SetBorder(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)

	rows := make([][]string, 0, len(r.Games))
	for _, g := range r.Games {
		rows = append(rows, []string{
			fmt.Sprint(g.Index),
			fmt.Sprint(g.Seed),
			humanize.Comma(g.Frames),
			humanize.Comma(int64(g.Stats.TotalPieces())),
			humanize.Comma(int64(g.Session.Lines)),
			fmt.Sprint(g.Stats.ClearCount(4)),
			fmt.Sprint(g.GameOvers),
			humanize.Comma(int64(g.BestScore)),
			fmt.Sprint(g.Session.Level),
			fmt.Sprint(g.Rejected),
		})
	}
	tw.AppendBulk(rows)
	tw.Render()
}

func (r *Report) writeSystems(w io.Writer) {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New("System", "Executions", "Avg", "Min", "Max", "Total").WithWriter(w)
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)
	for _, s := range r.Systems() {
		tbl.AddRow(
			strings.TrimSpace(s.Name),
			humanize.Comma(int64(s.ExecutionCount)),
			s.AvgDuration, s.MinDuration, s.MaxDuration, s.TotalDuration,
		)
	}
	tbl.Print()
}
