package history

import "time"

const SchemaVersion = 1

// Snapshot is the counter state of one validation run.
type Snapshot struct {
	SchemaVersion        int           `json:"schema_version"`
	RunID                string        `json:"run_id"`
	Timestamp            time.Time     `json:"timestamp"`
	Duration             time.Duration `json:"duration"`
	LanguageCount        int           `json:"language_count"`
	TotalRecords         int           `json:"total_records"`
	ValidRecords         int           `json:"valid_records"`
	SyntaxErrors         int           `json:"syntax_errors"`
	FieldViolations      int           `json:"field_violations"`
	TenseStructureErrors int           `json:"tense_structure_errors"`
	FilenameMismatches   int           `json:"filename_mismatches"`
	FormattingViolations int           `json:"formatting_violations"`
	LanguageMismatches   int           `json:"language_mismatches"`
	TenseSetMismatches   int           `json:"tense_set_mismatches"`
	StructuralErrors     int           `json:"structural_errors"`
}

// ErrorTotal is the sum of every error category in the snapshot.
func (s Snapshot) ErrorTotal() int {
	return s.SyntaxErrors +
		s.FieldViolations +
		s.TenseStructureErrors +
		s.FilenameMismatches +
		s.FormattingViolations +
		s.LanguageMismatches +
		s.TenseSetMismatches +
		s.StructuralErrors
}

// TrendPoint is one snapshot enriched with deltas against its predecessor
// and a moving average over the trailing window.
type TrendPoint struct {
	Timestamp         time.Time `json:"timestamp"`
	RunID             string    `json:"run_id"`
	TotalRecords      int       `json:"total_records"`
	ValidRecords      int       `json:"valid_records"`
	ErrorTotal        int       `json:"error_total"`
	DeltaRecords      int       `json:"delta_records"`
	DeltaValid        int       `json:"delta_valid"`
	DeltaErrors       int       `json:"delta_errors"`
	RecordGrowthPct   float64   `json:"record_growth_pct"`
	AvgErrors         float64   `json:"avg_errors"`
	WindowHours       float64   `json:"window_hours"`
}

type TrendReport struct {
	SchemaVersion int          `json:"schema_version"`
	Since         time.Time    `json:"since"`
	Until         time.Time    `json:"until"`
	Window        string       `json:"window"`
	RunCount      int          `json:"run_count"`
	Points        []TrendPoint `json:"points"`
}
