package chat

import (
	"strings"

	"github.com/themobileprof/careportal-assistant/internal/conversation"
	"github.com/themobileprof/careportal-assistant/internal/reply"
)

// Action is a fixed identifier sent by a UI button. Actions bypass the intent
// matcher entirely.
type Action string

const (
	ActionFindDoctor       Action = "find-doctor"
	ActionMedicine         Action = "medicine"
	ActionTrackDelivery    Action = "track-delivery"
	ActionAppointment      Action = "appointment"
	ActionViewAppointments Action = "view-appointments"
	ActionFAQs             Action = "faqs"
	ActionBookingSteps     Action = "booking-steps"
	ActionShowAllDoctors   Action = "show-all-doctors"
	ActionSymptomInput     Action = "symptom-input"
	ActionSymptomChoice    Action = "symptom-choice"
	ActionConfirm          Action = "confirm"
	ActionDecline          Action = "decline"
	ActionGoBack           Action = "go-back"
)

// ParseAction normalizes a client-supplied action name
func ParseAction(name string) (Action, bool) {
	a := Action(strings.ToLower(strings.TrimSpace(name)))
	switch a {
	case ActionFindDoctor, ActionMedicine, ActionTrackDelivery, ActionAppointment,
		ActionViewAppointments, ActionFAQs, ActionBookingSteps, ActionShowAllDoctors,
		ActionSymptomInput, ActionSymptomChoice, ActionConfirm, ActionDecline, ActionGoBack:
		return a, true
	}
	return "", false
}

// dispatchAction applies a button press. text is only read by the symptom
// actions, which forward it to the specialist classifier.
func (e *Engine) dispatchAction(state conversation.State, action Action, text string) (conversation.State, reply.Reply) {
	flow := func(f conversation.Flow) conversation.State {
		next := state.Idle()
		next.CurrentFlow = f
		return next
	}

	switch action {
	case ActionFindDoctor:
		next := flow(conversation.FlowFindDoctor)
		next.AwaitingSymptoms = true
		return next, reply.Compose(reply.StepSymptomPrompt, reply.Params{})

	case ActionMedicine:
		return flow(conversation.FlowMedicine), reply.Compose(reply.StepMedicine, reply.Params{})

	case ActionTrackDelivery:
		return flow(conversation.FlowTrackDelivery), reply.Compose(reply.StepDelivery, reply.Params{})

	case ActionAppointment:
		next := flow(conversation.FlowAppointment)
		next.Pending = conversation.PendingBookingHelp
		return next, reply.Compose(reply.StepAppointment, reply.Params{})

	case ActionViewAppointments:
		return flow(conversation.FlowAppointment), reply.Compose(reply.StepViewAppointments, reply.Params{})

	case ActionFAQs:
		return flow(conversation.FlowFAQs), reply.Compose(reply.StepFAQs, reply.Params{})

	case ActionBookingSteps:
		next := flow(conversation.FlowAppointment)
		next.Pending = conversation.PendingMoreHelp
		return next, reply.Compose(reply.StepBookingSteps, reply.Params{})

	case ActionShowAllDoctors:
		return flow(conversation.FlowFindDoctor), reply.Compose(reply.StepAllDoctors, reply.Params{})

	case ActionSymptomInput, ActionSymptomChoice:
		if strings.TrimSpace(text) == "" {
			next := flow(conversation.FlowFindDoctor)
			next.AwaitingSymptoms = true
			return next, reply.Compose(reply.StepSymptomPrompt, reply.Params{})
		}
		return e.handleSymptoms(state, text)

	case ActionConfirm:
		return answer(state, true)

	case ActionDecline:
		return answer(state, false)

	default: // ActionGoBack
		return state.Idle(), reply.Compose(reply.StepWelcome, reply.Params{})
	}
}

// answer applies a yes/no reply to whatever question is pending. With nothing
// pending the user is offered more help.
func answer(state conversation.State, yes bool) (conversation.State, reply.Reply) {
	next := state
	next.AwaitingSymptoms = false

	switch state.Pending {
	case conversation.PendingSpecialistConfirmation:
		if yes {
			next.Pending = conversation.PendingNone
			next.CurrentFlow = conversation.FlowFindDoctor
			return next, reply.Compose(reply.StepDoctorList, reply.Params{Specialty: state.Specialty})
		}
		next.Pending = conversation.PendingMoreHelp
		next.Specialty = ""
		return next, reply.Compose(reply.StepMoreHelp, reply.Params{})

	case conversation.PendingBookingHelp:
		next.Pending = conversation.PendingMoreHelp
		if yes {
			return next, reply.Compose(reply.StepBookingSteps, reply.Params{})
		}
		return next, reply.Compose(reply.StepMoreHelp, reply.Params{})

	case conversation.PendingMoreHelp:
		if yes {
			return state.Idle(), reply.Compose(reply.StepHelpOptions, reply.Params{})
		}
		return state.Idle(), reply.Compose(reply.StepGoodbye, reply.Params{})

	default:
		next.Pending = conversation.PendingMoreHelp
		return next, reply.Compose(reply.StepMoreHelp, reply.Params{})
	}
}
