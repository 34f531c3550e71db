package reply

import "strings"

// Step is a resolved conversation step the assistant answers with
type Step int

const (
	StepWelcome Step = iota
	StepSymptomPrompt
	StepMoreDetail
	StepSpecialistConfirmation
	StepDoctorList
	StepAllDoctors
	StepDoctorFinder
	StepMedicine
	StepDelivery
	StepAppointment
	StepViewAppointments
	StepBookingSteps
	StepFAQs
	StepHelpOptions
	StepMoreHelp
	StepGoodbye
	StepRescheduleRestricted
	StepFallback
)

// Params fill the placeholders of a step. Text, when set, replaces the
// step's default wording; the widget still comes from the step.
type Params struct {
	Specialty string
	Text      string
}

// Reply is one assistant message ready for the log
type Reply struct {
	Text    string
	Widget  Widget
	Payload map[string]string
}

type template struct {
	text   string
	widget Widget
}

var templates = map[Step]template{
	StepWelcome: {
		text:   "Hello! Welcome to the Care Portal assistant. How can I help you today?",
		widget: WidgetWelcomeButtons,
	},
	StepSymptomPrompt: {
		text:   "Please describe your symptoms so I can suggest the right specialist.",
		widget: WidgetSymptomSelector,
	},
	StepMoreDetail: {
		text: "I couldn't match that to a specialist. Could you describe your symptoms in a little more detail?",
	},
	StepSpecialistConfirmation: {
		text:   "Based on your symptoms, I recommend seeing a {specialty}. Would you like to see available doctors?",
		widget: WidgetSpecialistConfirmation,
	},
	StepDoctorList: {
		text:   "Here are the available {specialty} doctors.",
		widget: WidgetDoctorList,
	},
	StepAllDoctors: {
		text:   "Here are all of our available doctors.",
		widget: WidgetDoctorList,
	},
	StepDoctorFinder: {
		text:   "You can search for a doctor by name or specialty.",
		widget: WidgetDoctorFinder,
	},
	StepMedicine: {
		text:   "Here are some medicines you can order from our pharmacy.",
		widget: WidgetMedicineRecommendation,
	},
	StepDelivery: {
		text:   "Enter your order number to track your delivery.",
		widget: WidgetDeliveryTracking,
	},
	StepAppointment: {
		text:   "Would you like me to walk you through the booking steps?",
		widget: WidgetBookingHelp,
	},
	StepViewAppointments: {
		text:   "Here are your appointments.",
		widget: WidgetViewAppointments,
	},
	StepBookingSteps: {
		text: "To book an appointment: 1. Find a doctor by specialty or name. 2. Pick an available date and time. " +
			"3. Confirm your details and submit. Is there anything else I can help you with?",
		widget: WidgetHelpOptions,
	},
	StepFAQs: {
		text:   "Here are answers to common questions. Choose a topic below.",
		widget: WidgetHelpOptions,
	},
	StepHelpOptions: {
		text:   "Here's what I can help you with.",
		widget: WidgetHelpOptions,
	},
	StepMoreHelp: {
		text:   "Is there anything else I can help you with?",
		widget: WidgetHelpOptions,
	},
	StepGoodbye: {
		text: "Thank you for using the Care Portal assistant. Take care!",
	},
	StepRescheduleRestricted: {
		text:   "Appointments can't be rescheduled or cancelled in chat. Please open My Appointments or contact the clinic.",
		widget: WidgetViewAppointments,
	},
	StepFallback: {
		text: "I can help you book an appointment, find a doctor, order medicine or track a delivery. What would you like to do?",
	},
}

// Compose turns a step into a reply. It never inspects conversation state.
func Compose(step Step, params Params) Reply {
	tpl, ok := templates[step]
	if !ok {
		tpl = templates[StepFallback]
	}

	text := tpl.text
	if params.Text != "" {
		text = params.Text
	}
	text = strings.ReplaceAll(text, "{specialty}", params.Specialty)

	r := Reply{Text: text, Widget: tpl.widget}
	if params.Specialty != "" && tpl.widget != WidgetNone {
		r.Payload = map[string]string{"specialty": params.Specialty}
	}
	return r
}
