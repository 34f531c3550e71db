// Package reply maps resolved conversation steps onto the text, widget and
// payload handed to the rendering layer.
package reply

// Widget identifies a UI component the client renders under a message
type Widget string

const (
	WidgetNone                   Widget = ""
	WidgetWelcomeButtons         Widget = "welcome-buttons"
	WidgetDoctorFinder           Widget = "doctor-finder"
	WidgetDoctorList             Widget = "doctor-list"
	WidgetSymptomSelector        Widget = "symptom-selector"
	WidgetMedicineRecommendation Widget = "medicine-recommendation"
	WidgetDeliveryTracking       Widget = "delivery-tracking"
	WidgetViewAppointments       Widget = "view-appointments"
	WidgetHelpOptions            Widget = "help-options"
	WidgetSpecialistConfirmation Widget = "specialist-confirmation"
	WidgetBookingHelp            Widget = "booking-help"
)

var widgets = map[Widget]bool{
	WidgetWelcomeButtons:         true,
	WidgetDoctorFinder:           true,
	WidgetDoctorList:             true,
	WidgetSymptomSelector:        true,
	WidgetMedicineRecommendation: true,
	WidgetDeliveryTracking:       true,
	WidgetViewAppointments:       true,
	WidgetHelpOptions:            true,
	WidgetSpecialistConfirmation: true,
	WidgetBookingHelp:            true,
}

// Valid reports whether w belongs to the registry. WidgetNone is valid.
func (w Widget) Valid() bool {
	return w == WidgetNone || widgets[w]
}
