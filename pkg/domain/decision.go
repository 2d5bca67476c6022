package domain

import "fmt"

// Swap is the pending DOM update of a before-swap signal.
// The dispatcher may redirect Target and set ShouldSwap; everything else is read-only.
type Swap struct {
	Status Status
	// Retarget is the value of the Hx-Retarget response header, empty when absent.
	Retarget string
	// Target is the selector of the element that will receive the fragment.
	Target string
	// ShouldSwap mirrors the transport's default: true for success, false for errors.
	ShouldSwap bool
}

// NewSwap builds the swap context the transport would hand over by default.
func NewSwap(status Status, retarget, target string) *Swap {
	return &Swap{
		Status:     status,
		Retarget:   retarget,
		Target:     target,
		ShouldSwap: status.Band() == BandSuccess,
	}
}

// HasRetarget reports whether the server chose its own destination.
func (s *Swap) HasRetarget() bool {
	return s.Retarget != ""
}

// Decision is the outcome of the before-swap step.
type Decision int

const (
	// DecisionNone means no before-swap signal has been seen for the cycle yet.
	DecisionNone Decision = iota
	// DecisionProceed lets the update go through as the server sent it.
	DecisionProceed
	// DecisionRedirectToModal moves a client-error fragment into the modal wrapper.
	DecisionRedirectToModal
	// DecisionShowError cancels the update and presents the server-error modal.
	DecisionShowError
)

func (d Decision) String() string {
	switch d {
	case DecisionNone:
		return "none"
	case DecisionProceed:
		return "proceed"
	case DecisionRedirectToModal:
		return "redirect-to-modal"
	case DecisionShowError:
		return "show-error"
	}
	return fmt.Sprintf("decision(%d)", int(d))
}

// StopFinish reports whether the ordinary finish-loading event is suppressed.
func (d Decision) StopFinish() bool {
	return d == DecisionRedirectToModal
}

// AnimateConfirmModal reports whether the after-swap step must animate the confirm modal.
func (d Decision) AnimateConfirmModal() bool {
	return d == DecisionRedirectToModal
}

// Decide applies the status branching to the swap and returns the decision.
// Only RedirectToModal changes Target; only the client-error band touches ShouldSwap.
func Decide(swap *Swap) Decision {
	switch swap.Status.Band() {
	case BandSuccess:
		return DecisionProceed
	case BandClientError:
		swap.ShouldSwap = true
		if swap.HasRetarget() {
			return DecisionProceed
		}
		swap.Target = ModalWrapperSelector
		return DecisionRedirectToModal
	default:
		return DecisionShowError
	}
}

// Cycle carries the decision of one request from before-swap to after-swap and finish.
type Cycle struct {
	RequestID string
	Decision  Decision
	// FinishEmitted is set once a finish-loading event went out for the cycle.
	FinishEmitted bool
}

// Flags renders the cycle as the detail-bag flags older listeners expect.
func (c *Cycle) Flags() DetailFlags {
	return DetailFlags{
		KeepModalOpen:       true,
		StopFinishEvt:       c.Decision.StopFinish(),
		AnimateConfirmModal: c.Decision.AnimateConfirmModal(),
	}
}
