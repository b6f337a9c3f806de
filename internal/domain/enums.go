package domain

// AssignmentModel selects which hard-constraint family and scheduling shape
// a Role uses. The source carried migrations renaming these variants
// (UNIVERSAL->HOURLY, COVERAGE_WINDOW->HOURLY_WINDOW, CREW_SPECIFIC->DAILY);
// only the final names are canonical here.
type AssignmentModel string

const (
	AssignmentHourly       AssignmentModel = "HOURLY"
	AssignmentHourlyWindow AssignmentModel = "HOURLY_WINDOW"
	AssignmentDaily        AssignmentModel = "DAILY"
)

// SlotSizeMode constrains which boundaries a Role's assignments may land on.
type SlotSizeMode string

const (
	SlotSizeHalfHourOK SlotSizeMode = "HALF_HOUR_OK"
	SlotSizeHourOnly   SlotSizeMode = "HOUR_ONLY"
)

// PreferenceType selects which scorer in internal/scorers applies.
type PreferenceType string

const (
	PreferenceFirstHour   PreferenceType = "FIRST_HOUR"
	PreferenceFavorite    PreferenceType = "FAVORITE"
	PreferenceTiming      PreferenceType = "TIMING"
	PreferenceConsecutive PreferenceType = "CONSECUTIVE"
)

// LogbookStatus is the lifecycle state of a Logbook.
type LogbookStatus string

const (
	LogbookDraft     LogbookStatus = "DRAFT"
	LogbookPublished LogbookStatus = "PUBLISHED"
)

// RunStatus mirrors the solver output document's status field (§6).
type RunStatus string

const (
	RunOptimal     RunStatus = "OPTIMAL"
	RunFeasible    RunStatus = "FEASIBLE"
	RunInfeasible  RunStatus = "INFEASIBLE"
	RunTimeout     RunStatus = "TIMEOUT"
	RunError       RunStatus = "ERROR"
)
