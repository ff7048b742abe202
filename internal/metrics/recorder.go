package metrics

import "time"

// Stage names a pipeline step.
type Stage string

const (
	StageScan   Stage = "scan"
	StageEnrich Stage = "enrich"
	StageRender Stage = "render"
	StageWrite  Stage = "write"
)

// MetadataResult classifies a companion metadata lookup.
type MetadataResult string

const (
	MetadataFound     MetadataResult = "found"
	MetadataMissing   MetadataResult = "missing"
	MetadataAbsent    MetadataResult = "absent"
	MetadataMalformed MetadataResult = "malformed"
)

// RunOutcome is the final status of a generation run.
type RunOutcome string

const (
	OutcomeSuccess RunOutcome = "success"
	OutcomeFailed  RunOutcome = "failed"
)

// Recorder defines observability hooks for generation runs.
type Recorder interface {
	ObserveStageDuration(stage Stage, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncMetadataResult(result MetadataResult)
	// ObserveSections replaces the per-section entry counts of the previous run.
	ObserveSections(entries map[string]int)
	IncRunOutcome(outcome RunOutcome)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(Stage, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)          {}
func (NoopRecorder) IncMetadataResult(MetadataResult)          {}
func (NoopRecorder) ObserveSections(map[string]int)            {}
func (NoopRecorder) IncRunOutcome(RunOutcome)                  {}
