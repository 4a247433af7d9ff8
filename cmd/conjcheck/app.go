// # cmd/conjcheck/app.go
package main

import (
	"conjcheck/internal/config"
	"conjcheck/internal/history"
	"conjcheck/internal/output"
	"conjcheck/internal/report"
	"conjcheck/internal/scan"
	"conjcheck/internal/shared/observability"
	"conjcheck/internal/shared/util"
	"conjcheck/internal/watcher"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type App struct {
	Config     *config.Config
	Scanner    *scan.Scanner
	store      *history.Store
	obsServer  *observability.Server
	limiter    *util.Limiter
	teaProgram *tea.Program
	verbose    bool

	mu   sync.Mutex
	last *scan.Result
}

func NewApp(cfg *config.Config, verbose bool) (*App, error) {
	scanner, err := scan.NewScanner(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:  cfg,
		Scanner: scanner,
		limiter: util.NewLimiter(cfg.Watch.RateLimit, cfg.Watch.Burst),
		verbose: verbose,
	}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, err
		}
		a.store = store
	}

	if cfg.Observe.ListenAddr != "" {
		a.obsServer = observability.NewServer(cfg.Observe.ListenAddr)
	}

	return a, nil
}

func (a *App) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			slog.Warn("failed to close history store", "error", err)
		}
	}
}

func (a *App) StartObservability(ctx context.Context) error {
	if a.obsServer == nil {
		return nil
	}
	return a.obsServer.Start(ctx)
}

// RunValidation performs one full corpus scan and records its outcome in the
// history store and metrics endpoint. Printing is left to the caller so watch
// mode and UI mode can share this path.
func (a *App) RunValidation(ctx context.Context) (*scan.Result, error) {
	result, err := a.Scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.last = result
	a.mu.Unlock()

	if a.store != nil {
		if err := a.store.SaveSnapshot(snapshotFromResult(result)); err != nil {
			slog.Warn("failed to save history snapshot", "error", err)
		}
	}
	if a.obsServer != nil {
		a.obsServer.MarkRun(result.Started)
	}

	if a.teaProgram != nil {
		a.teaProgram.Send(updateMsg{result: result})
	}

	if a.Config.Alerts.Beep && !result.Counters.Clean() {
		fmt.Print("\a")
	}

	return result, nil
}

// PrintReport writes the validation transcript to stdout. The per-record
// transcript is verbose-only; the group lines and final summary always print.
func (a *App) PrintReport(result *scan.Result) {
	fmt.Println(strings.Repeat("-", 40))

	for _, s := range result.Structural {
		fmt.Printf("structural: %s\n", s)
	}

	for _, group := range result.Groups {
		fmt.Println(report.RenderGroupLine(group.Language, len(group.Records), group.GroupVerdicts, group.Structural))

		if a.verbose {
			for _, rec := range group.Records {
				fmt.Print(report.RenderRecordTranscript(rec.Name, rec.Verdicts))
			}
		}
		for _, s := range group.Structural {
			fmt.Printf("  structural: %s\n", s)
		}
		for _, v := range group.GroupVerdicts {
			if v.Passed {
				continue
			}
			for _, d := range v.Diagnostics {
				fmt.Printf("  - %s\n", d)
			}
		}
	}

	fmt.Println(strings.Repeat("-", 40))
	corpusName := ""
	if result.Info != nil {
		corpusName = result.Info.Name
	}
	fmt.Print(report.RenderSummary(result.Counters, corpusName))
}

func (a *App) GenerateOutputs(result *scan.Result) error {
	if a.Config.Output.TSV != "" {
		tsvGen := output.NewTSVGenerator(result)
		tsv, err := tsvGen.Generate()
		if err != nil {
			return err
		}
		if err := os.WriteFile(a.Config.Output.TSV, []byte(tsv), 0644); err != nil {
			return err
		}
	}

	if a.Config.Output.Markdown != "" {
		mdGen := output.NewMarkdownGenerator(result)
		md, err := mdGen.Generate()
		if err != nil {
			return err
		}
		if err := os.WriteFile(a.Config.Output.Markdown, []byte(md), 0644); err != nil {
			return err
		}
	}

	return nil
}

// HandleChanges revalidates the whole corpus after the watcher reports
// changed record files. Consistency rules are cross-file, so a single
// changed record can flip the verdict of every other file in its language;
// a full rescan is the only correct response.
func (a *App) HandleChanges(paths []string) {
	slog.Info("detected changes", "count", len(paths))
	observability.RevalidationsTotal.Inc()

	ctx := context.Background()
	if !a.limiter.Allow(1) {
		observability.RevalidationsThrottledTotal.Inc()
		if err := a.limiter.Wait(ctx, 1); err != nil {
			return
		}
	}

	result, err := a.RunValidation(ctx)
	if err != nil {
		slog.Error("revalidation failed", "error", err)
		return
	}

	if a.teaProgram == nil {
		a.PrintReport(result)
	}

	if err := a.GenerateOutputs(result); err != nil {
		slog.Error("failed to generate outputs", "error", err)
	}
}

func (a *App) StartWatcher() error {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.RecordSuffix,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		a.HandleChanges,
	)
	if err != nil {
		return err
	}
	// Note: We don't close here, it should run forever
	return w.Watch([]string{a.Config.CorpusRoot})
}

func (a *App) RunUI() error {
	m := initialModel()
	p := tea.NewProgram(m, tea.WithAltScreen())
	a.teaProgram = p

	// Push the most recent result so the UI is populated before the first
	// watcher-triggered revalidation.
	go func() {
		a.mu.Lock()
		last := a.last
		a.mu.Unlock()
		if last != nil {
			a.teaProgram.Send(updateMsg{result: last})
		}
	}()

	_, err := p.Run()
	return err
}

// PrintTrends renders the error trajectory across stored validation runs.
func (a *App) PrintTrends(since time.Time, window time.Duration) error {
	if a.store == nil {
		return fmt.Errorf("trend analysis requires a history path in the config")
	}

	snapshots, err := a.store.LoadSnapshots(since)
	if err != nil {
		return err
	}

	trends, err := history.BuildTrendReport(snapshots, window)
	if err != nil {
		return err
	}

	fmt.Printf("Validation Trends (%d runs since %s)\n", trends.RunCount, trends.Since.Format("2006-01-02 15:04"))
	fmt.Println(strings.Repeat("-", 40))
	for _, p := range trends.Points {
		fmt.Printf("%s  records=%d (%+d)  valid=%d (%+d)  errors=%d (%+d)  avg=%.2f\n",
			p.Timestamp.Format("2006-01-02 15:04:05"),
			p.TotalRecords, p.DeltaRecords,
			p.ValidRecords, p.DeltaValid,
			p.ErrorTotal, p.DeltaErrors,
			p.AvgErrors)
	}
	return nil
}

func snapshotFromResult(result *scan.Result) history.Snapshot {
	c := result.Counters
	return history.Snapshot{
		SchemaVersion:        history.SchemaVersion,
		RunID:                uuid.NewString(),
		Timestamp:            result.Started,
		Duration:             result.Duration,
		LanguageCount:        len(result.Groups),
		TotalRecords:         c.TotalRecords,
		ValidRecords:         c.ValidRecords,
		SyntaxErrors:         c.SyntaxErrors,
		FieldViolations:      c.FieldViolations,
		TenseStructureErrors: c.TenseStructureErrors,
		FilenameMismatches:   c.FilenameMismatches,
		FormattingViolations: c.FormattingViolations,
		LanguageMismatches:   c.LanguageMismatches,
		TenseSetMismatches:   c.TenseSetMismatches,
		StructuralErrors:     c.StructuralErrors,
	}
}
