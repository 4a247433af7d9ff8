// Package scan walks the corpus hierarchy, drives the rule pipeline per
// record and per language group, and folds verdicts into an explicit result
// value.
package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"conjcheck/internal/config"
	"conjcheck/internal/corpus"
	cerrors "conjcheck/internal/core/errors"
	"conjcheck/internal/report"
	"conjcheck/internal/rules"
	"conjcheck/internal/shared/observability"

	"github.com/gobwas/glob"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type Scanner struct {
	cfg          *config.Config
	recordRules  []rules.RecordRule
	groupRules   []rules.GroupRule
	excludeDirs  []glob.Glob
	excludeFiles []glob.Glob
}

func NewScanner(cfg *config.Config) (*Scanner, error) {
	s := &Scanner{
		cfg:         cfg,
		recordRules: rules.RecordRules(cfg.RecordSuffix),
		groupRules:  rules.GroupRules(),
	}

	for _, p := range cfg.Exclude.Dirs {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude dir pattern %q: %w", p, err)
		}
		s.excludeDirs = append(s.excludeDirs, g)
	}
	for _, p := range cfg.Exclude.Files {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude file pattern %q: %w", p, err)
		}
		s.excludeFiles = append(s.excludeFiles, g)
	}

	return s, nil
}

// RecordResult is the outcome of the record-scoped pipeline for one file.
type RecordResult struct {
	Path string
	Name string
	// Record is nil when the loader failed; the record still counts toward
	// the totals but cannot participate in group-scoped rules.
	Record   *corpus.VerbRecord
	Verdicts []rules.Verdict
}

// Valid reports whether every rule that applied to the record passed.
func (r *RecordResult) Valid() bool {
	for _, v := range r.Verdicts {
		if !v.Passed {
			return false
		}
	}
	return true
}

// GroupResult is the outcome for one language directory.
type GroupResult struct {
	Language      string
	Dir           string
	Records       []RecordResult
	GroupVerdicts []rules.Verdict
	// Structural holds scope-level problems: no record files, unreadable
	// directory. Non-fatal for the corpus scan.
	Structural []string

	Counters report.Counters
}

// Result is the outcome of one full corpus scan.
type Result struct {
	Root       string
	Info       *corpus.Info
	Groups     []GroupResult
	Structural []string
	Counters   report.Counters
	Started    time.Time
	Duration   time.Duration
}

// Scan performs one deterministic depth-first walk: languages sorted by
// name, record files sorted within each language, the reserved metadata file
// excluded. Only a missing corpus root fails the scan itself; every other
// problem is recorded in the result and the walk continues.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	started := time.Now()

	ctx, span := observability.Tracer.Start(ctx, "scanner.Scan",
		trace.WithAttributes(attribute.String("corpus.root", s.cfg.CorpusRoot)))
	defer span.End()

	root := s.cfg.CorpusRoot
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, cerrors.AddContext(
			cerrors.New(cerrors.CodeStructuralError, "corpus root not found"),
			cerrors.CtxPath, root)
	}

	result := &Result{Root: root, Started: started}

	meta, err := corpus.LoadInfo(filepath.Join(root, s.cfg.MetadataFile))
	if err != nil {
		result.Structural = append(result.Structural, err.Error())
		result.Counters.CountStructural(1)
	}
	result.Info = meta

	languages, err := s.languageDirs(root)
	if err != nil {
		result.Structural = append(result.Structural, err.Error())
		result.Counters.CountStructural(1)
	}
	if err == nil && len(languages) == 0 {
		result.Structural = append(result.Structural, fmt.Sprintf("no language directories found in %s", root))
		result.Counters.CountStructural(1)
	}

	for _, language := range languages {
		group := s.scanGroup(ctx, language, filepath.Join(root, language))
		result.Counters.Merge(group.Counters)
		result.Groups = append(result.Groups, group)
	}

	result.Duration = time.Since(started)

	observability.LanguagesGauge.Set(float64(len(result.Groups)))
	observability.RecordsGauge.Set(float64(result.Counters.TotalRecords))
	observability.ValidationDuration.Observe(result.Duration.Seconds())
	span.SetAttributes(
		attribute.Int("corpus.languages", len(result.Groups)),
		attribute.Int("corpus.records", result.Counters.TotalRecords),
		attribute.Int("corpus.errors", result.Counters.ErrorTotal()),
	)

	return result, nil
}

func (s *Scanner) languageDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus root %s: %v", root, err)
	}

	var languages []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if s.excludedDir(entry.Name()) {
			continue
		}
		languages = append(languages, entry.Name())
	}
	sort.Strings(languages)
	return languages, nil
}

func (s *Scanner) scanGroup(ctx context.Context, language, dir string) GroupResult {
	_, span := observability.Tracer.Start(ctx, "scanner.scanGroup",
		trace.WithAttributes(attribute.String("corpus.language", language)))
	defer span.End()

	group := GroupResult{Language: language, Dir: dir}

	files, err := s.recordFiles(dir)
	if err != nil {
		group.Structural = append(group.Structural, err.Error())
		group.Counters.CountStructural(1)
		return group
	}
	if len(files) == 0 {
		group.Structural = append(group.Structural, fmt.Sprintf("no record files found in %s", dir))
		group.Counters.CountStructural(1)
		return group
	}

	loaded := make([]*corpus.VerbRecord, 0, len(files))
	for _, name := range files {
		rr := s.evaluateRecord(language, filepath.Join(dir, name), name)
		group.Counters.CountRecord(rr.Verdicts)
		countViolationMetrics(rr.Verdicts)
		group.Records = append(group.Records, rr)
		if rr.Record != nil {
			loaded = append(loaded, rr.Record)
		}
	}

	// Group rules always run, independently of record-scoped failures; the
	// baseline is the first loaded record in sorted filename order.
	if len(loaded) > 0 {
		for _, rule := range s.groupRules {
			verdict := rule.Evaluate(loaded)
			group.GroupVerdicts = append(group.GroupVerdicts, verdict)
		}
		group.Counters.CountGroup(group.GroupVerdicts)
		countViolationMetrics(group.GroupVerdicts)
	}

	return group
}

func (s *Scanner) recordFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read language directory %s: %v", dir, err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(name) != s.cfg.RecordSuffix {
			continue
		}
		if name == s.cfg.MetadataFile {
			continue
		}
		if s.excludedFile(name) {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

func (s *Scanner) evaluateRecord(language, path, name string) RecordResult {
	rr := RecordResult{Path: path, Name: name}

	start := time.Now()
	record, err := corpus.LoadRecord(path)
	observability.RecordLoadDuration.WithLabelValues(language).Observe(time.Since(start).Seconds())
	observability.RecordsValidatedTotal.Inc()

	if err != nil {
		// Fatal for this record only: no further record rule runs, but the
		// record is counted and the walk continues.
		rr.Verdicts = []rules.Verdict{rules.SyntaxFailure(err)}
		return rr
	}

	rr.Record = record
	rr.Verdicts = append(rr.Verdicts, rules.SyntaxPass())
	for _, rule := range s.recordRules {
		rr.Verdicts = append(rr.Verdicts, rule.Evaluate(record))
	}
	return rr
}

func (s *Scanner) excludedDir(name string) bool {
	for _, g := range s.excludeDirs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

func (s *Scanner) excludedFile(name string) bool {
	for _, g := range s.excludeFiles {
		if g.Match(name) {
			return true
		}
	}
	return false
}

func countViolationMetrics(verdicts []rules.Verdict) {
	for _, v := range verdicts {
		if !v.Passed {
			observability.ViolationsTotal.WithLabelValues(v.Rule).Inc()
		}
	}
}
