package checkout

import "errors"

var (
	ErrNotLoggedIn      = errors.New("user not logged in")
	ErrNoSession        = errors.New("checkout not started")
	ErrPrecondition     = errors.New("checkout precondition not met")
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrSlotNotRequired  = errors.New("product orders take no slot")
	ErrUpdateFailed     = errors.New("order update failed")
	ErrLeadAssignment   = errors.New("lead assignment failed")
)

// PromptError blocks a submission before any remote call and names the step to reopen.
type PromptError struct {
	Prompt Prompt
	Err    error
}

func (e *PromptError) Error() string { return e.Prompt.Message }
func (e *PromptError) Unwrap() error { return e.Err }

func promptFor(step Step) *PromptError {
	switch step {
	case StepLogin:
		return &PromptError{Prompt: Prompt{Step: step, Message: "Please login to continue."}, Err: ErrNotLoggedIn}
	case StepAddress:
		return &PromptError{Prompt: Prompt{Step: step, Message: "Please select an address before proceeding."}, Err: ErrPrecondition}
	case StepSlot:
		return &PromptError{Prompt: Prompt{Step: step, Message: "Please select a slot before proceeding."}, Err: ErrPrecondition}
	default:
		return &PromptError{Prompt: Prompt{Step: StepOrder, Message: "Order ID not available. Try again."}, Err: ErrPrecondition}
	}
}
