package sequence

//-----------------------------------------------------------------------------
// Method name constants, used to prefix errors with the operation name.
//-----------------------------------------------------------------------------

const (
	// MethodCalculateTrialCounts is the canonical name for CalculateTrialCounts.
	MethodCalculateTrialCounts = "CalculateTrialCounts"
	// MethodCheckPools is the canonical name for Counts.CheckPools.
	MethodCheckPools = "CheckPools"
	// MethodSample is the canonical name for Sample.
	MethodSample = "Sample"
	// MethodBuild is the canonical name for Build.
	MethodBuild = "Build"
	// MethodInterleave is the canonical name for InterleaveFixation.
	MethodInterleave = "InterleaveFixation"
	// MethodGenerate is the canonical name for Generate.
	MethodGenerate = "Generate"
)

//-----------------------------------------------------------------------------
// Parameter bounds
//-----------------------------------------------------------------------------

// MinBlockSize is the smallest block able to hold the three special slots
// (vigilance-or-filler, repeat-or-filler, target-or-filler).
const MinBlockSize = 3

// MinVigilanceInterval is the smallest accepted vigilance interval.
const MinVigilanceInterval = 1

//-----------------------------------------------------------------------------
// Reference experiment defaults
//-----------------------------------------------------------------------------

const (
	DefaultTargetNum         = 60
	DefaultBlockSize         = 4
	DefaultFirstRepeatDelay  = 8
	DefaultMinRepeatDelay    = 4
	DefaultVigilanceInterval = 4
)

// DefaultFixationID is the conventional fixation image filename.
const DefaultFixationID = "fixation.jpg"
