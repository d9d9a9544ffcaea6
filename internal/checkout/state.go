package checkout

type State string

const (
	StateIdle           State = "idle"
	StateAddressPending State = "address_pending"
	StateSlotPending    State = "slot_pending"
	StateReady          State = "ready"
	StateSubmitting     State = "submitting"
	StateSubmitted      State = "submitted"
)

// Step names the selection the client should reopen.
type Step string

const (
	StepLogin   Step = "login"
	StepAddress Step = "address"
	StepSlot    Step = "slot"
	StepOrder   Step = "order"
)

// Prompt is the user-facing message for a blocked submission.
type Prompt struct {
	Step    Step   `json:"step"`
	Message string `json:"message"`
}
