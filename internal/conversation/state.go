package conversation

// Flow is a named multi-turn context that changes how later messages are read
type Flow string

const (
	FlowNone          Flow = ""
	FlowFindDoctor    Flow = "find-doctor"
	FlowMedicine      Flow = "medicine"
	FlowTrackDelivery Flow = "track-delivery"
	FlowAppointment   Flow = "appointment"
	FlowFAQs          Flow = "faqs"
)

// Pending is the yes/no question the assistant is waiting on, if any
type Pending string

const (
	PendingNone                   Pending = ""
	PendingSpecialistConfirmation Pending = "specialist-confirmation"
	PendingBookingHelp            Pending = "booking-help"
	PendingMoreHelp               Pending = "more-help"
)

// State is the authoritative conversation state for one chat session. Only the
// chat engine mutates it; the matcher and classifiers receive it by value.
type State struct {
	AwaitingSymptoms bool    `json:"awaiting_symptoms"`
	CurrentFlow      Flow    `json:"current_flow"`
	HasSession       bool    `json:"has_session"`
	Pending          Pending `json:"pending,omitempty"`
	Specialty        string  `json:"specialty,omitempty"` // last suggested, awaiting confirmation
}

// Phase names the state machine position derived from the flags
type Phase string

const (
	PhaseIdle                           Phase = "idle"
	PhaseAwaitingSymptoms               Phase = "awaiting-symptoms"
	PhaseAwaitingSpecialistConfirmation Phase = "awaiting-specialist-confirmation"
	PhaseAwaitingBookingHelpResponse    Phase = "awaiting-booking-help-response"
	PhaseAwaitingMoreHelpResponse       Phase = "awaiting-more-help-response"
	PhaseFindDoctorFlow                 Phase = "find-doctor-flow"
	PhaseMedicineFlow                   Phase = "medicine-flow"
	PhaseTrackDeliveryFlow              Phase = "track-delivery-flow"
	PhaseAppointmentFlow                Phase = "appointment-flow"
	PhaseFAQFlow                        Phase = "faq-flow"
)

// Phase reports where the conversation is. Waiting flags take precedence over
// the active flow.
func (s State) Phase() Phase {
	switch {
	case s.AwaitingSymptoms:
		return PhaseAwaitingSymptoms
	case s.Pending == PendingSpecialistConfirmation:
		return PhaseAwaitingSpecialistConfirmation
	case s.Pending == PendingBookingHelp:
		return PhaseAwaitingBookingHelpResponse
	case s.Pending == PendingMoreHelp:
		return PhaseAwaitingMoreHelpResponse
	}

	switch s.CurrentFlow {
	case FlowFindDoctor:
		return PhaseFindDoctorFlow
	case FlowMedicine:
		return PhaseMedicineFlow
	case FlowTrackDelivery:
		return PhaseTrackDeliveryFlow
	case FlowAppointment:
		return PhaseAppointmentFlow
	case FlowFAQs:
		return PhaseFAQFlow
	}
	return PhaseIdle
}

// Idle returns the reset state, keeping only the session flag
func (s State) Idle() State {
	return State{HasSession: s.HasSession}
}
