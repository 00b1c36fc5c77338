package dashboard

import "market_dashboard/internal/models"

// Phase is the controller's position in the load cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of the controller. Data survives Loading
// and Failed so the last good result stays on screen.
type State struct {
	Phase  Phase
	Data   *models.DashboardData
	Err    string
	Filter string
	Seq    uint64
}

// Loading reports whether a load is in flight.
func (s State) Loading() bool { return s.Phase == PhaseLoading }

// ErrorMessage is empty unless the latest load failed.
func (s State) ErrorMessage() string {
	if s.Phase != PhaseFailed {
		return ""
	}
	return s.Err
}

func (s State) begin(seq uint64, filter string) State {
	return State{Phase: PhaseLoading, Data: s.Data, Filter: filter, Seq: seq}
}

func (s State) succeed(data *models.DashboardData) State {
	return State{Phase: PhaseLoaded, Data: data, Filter: s.Filter, Seq: s.Seq}
}

func (s State) fail(msg string) State {
	return State{Phase: PhaseFailed, Data: s.Data, Err: msg, Filter: s.Filter, Seq: s.Seq}
}

// Snapshot is the {data, loading, error} view handed to renderers.
type Snapshot struct {
	Data    *models.DashboardData `json:"data"`
	Loading bool                  `json:"loading"`
	Error   *string               `json:"error"`
	Filter  string                `json:"filter"`
	Phase   string                `json:"phase"`
}

// Snapshot converts the state into its wire form; error is null when absent.
func (s State) Snapshot() Snapshot {
	snap := Snapshot{
		Data:    s.Data,
		Loading: s.Loading(),
		Filter:  s.Filter,
		Phase:   s.Phase.String(),
	}
	if msg := s.ErrorMessage(); msg != "" {
		snap.Error = &msg
	}
	return snap
}
