package domain

// RunState is a state of the orchestrator state machine
type RunState string

const (
	StateInitializing    RunState = "initializing"
	StateConfigValidated RunState = "config_validated"
	StateResearching     RunState = "researching"
	StateScripting       RunState = "scripting"
	StateSynthesizing    RunState = "synthesizing"
	StateVisualizing     RunState = "visualizing"
	StateRendering       RunState = "rendering"
	StateThumbnailing    RunState = "thumbnailing"
	StateMetadataBuilt   RunState = "metadata_built"
	StatePublishing      RunState = "publishing"
	StateFinalized       RunState = "finalized"
)

// FailurePolicy declares how the orchestrator treats an error from a stage
type FailurePolicy string

const (
	// PolicyFatal aborts the run and propagates the error
	PolicyFatal FailurePolicy = "fatal"
	// PolicyDegrades means the stage substitutes a fallback artifact and never fails
	PolicyDegrades FailurePolicy = "degrades"
	// PolicyAbsorbed means the failure is recorded on the run but not propagated
	PolicyAbsorbed FailurePolicy = "absorbed"
)

// StagePolicies is the failure classification of every stage, declared once
var StagePolicies = map[RunState]FailurePolicy{
	StateResearching:  PolicyDegrades,
	StateScripting:    PolicyFatal,
	StateSynthesizing: PolicyFatal,
	StateVisualizing:  PolicyDegrades,
	StateRendering:    PolicyFatal,
	StateThumbnailing: PolicyFatal,
	StatePublishing:   PolicyAbsorbed,
}
