package core

// RunStatus mirrors the lifecycle reported by the hosted assistant service.
type RunStatus string

const (
	RunQueued         RunStatus = "queued"
	RunInProgress     RunStatus = "in_progress"
	RunRequiresAction RunStatus = "requires_action"
	RunCancelling     RunStatus = "cancelling"
	RunCancelled      RunStatus = "cancelled"
	RunFailed         RunStatus = "failed"
	RunCompleted      RunStatus = "completed"
	RunIncomplete     RunStatus = "incomplete"
	RunExpired        RunStatus = "expired"
)

// Terminal reports whether no further transitions will happen.
func (s RunStatus) Terminal() bool {
	switch s {
	case RunCompleted, RunFailed, RunCancelled, RunExpired, RunIncomplete:
		return true
	}
	return false
}

type Run struct {
	ID        string
	ThreadID  string
	Status    RunStatus
	ToolCalls []ToolCall // set only when Status is RunRequiresAction
	LastError string
}
