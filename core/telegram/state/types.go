package state

// Flow identifies which multi-step dialogue a user is running.
type Flow string

const (
	// FlowNone means no dialogue is in progress.
	FlowNone Flow = ""
	// FlowNeedHelp is the "I need help" dialogue.
	FlowNeedHelp Flow = "need_help"
	// FlowCanHelp is the "I can help" dialogue.
	FlowCanHelp Flow = "can_help"
)

// Step identifies the current position inside a dialogue.
type Step string

const (
	// StepNone means the session is idle.
	StepNone Step = ""
	// StepCategory means the bot is waiting for a category selection.
	StepCategory Step = "category"
	// StepDetails means the bot is waiting for free-form details.
	StepDetails Step = "details"
)

// Session stores transient dialogue state for one user.
// A session with Step == StepDetails always carries a Flow and a Category.
type Session struct {
	Flow     Flow
	Step     Step
	Category string
}

// Idle reports whether the session has no active dialogue.
func (s Session) Idle() bool {
	return s.Step == StepNone
}

// Manager keeps per-user sessions. Implementations must be safe for
// concurrent use; sessions are not persisted across restarts.
type Manager interface {
	// Get returns the session for a user, or an empty session if absent.
	Get(userID int64) Session
	// Set replaces the session for a user.
	Set(userID int64, s Session)
	// Clear resets the session to empty.
	Clear(userID int64)
	// InProgress reports whether the user has an active dialogue step.
	InProgress(userID int64) bool
}
