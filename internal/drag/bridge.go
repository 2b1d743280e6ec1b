package drag

import "fmt"

// UpdateParams is the payload of a commit request. Seq is the sequence
// number of the proposal it was taken from; a later write for the same ID
// always carries a larger Seq.
type UpdateParams struct {
	ID   string
	Data Event
	Seq  uint64
}

// UpdateFunc requests persistence of an event. The engine does not wait for
// it and never sees its result.
type UpdateFunc func(UpdateParams)

// OptimisticFunc patches the host's local copy of an event.
type OptimisticFunc func(id string, ev Event)

// ProposalFunc receives live feedback while a gesture is in progress.
type ProposalFunc func(Proposal)

// CancelFunc is told that a gesture ended without a commit.
type CancelFunc func(original Event, reason string)

// Bridge holds the host callbacks. All fields are optional.
type Bridge struct {
	Update     UpdateFunc
	Optimistic OptimisticFunc
	OnProposal ProposalFunc
	OnCancel   CancelFunc
}

func (b Bridge) commit(p UpdateParams) {
	if b.Update != nil {
		b.Update(p)
	}
	if b.Optimistic != nil {
		b.Optimistic(p.ID, p.Data)
	}
}

func (b Bridge) propose(p Proposal) {
	if b.OnProposal != nil {
		b.OnProposal(p)
	}
}

// Phase tells the host which transition produced a proposal.
type Phase int

const (
	PhaseMove   Phase = iota // pointer move or auto-scroll tick
	PhaseCommit              // pointer released; Event is what was committed
	PhaseCancel              // gesture discarded; Event is the original
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMove:
		return "move"
	case PhaseCommit:
		return "commit"
	case PhaseCancel:
		return "cancel"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Indicator is the drop target overlay of a cross-day drag.
type Indicator struct {
	Top    float64
	Column int
}

// Proposal is the live state of a gesture. Seq increases with every proposal
// of an engine, so hosts receiving proposals asynchronously can drop stale ones.
type Proposal struct {
	Seq       uint64
	Phase     Phase
	Kind      Kind
	Event     Event
	Top       float64 // offset of Event.Start within its day
	Height    float64
	Column    int
	Indicator *Indicator // nil unless a cross-day drag is in progress
}
