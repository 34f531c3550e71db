package classifier

import "strings"

// Intent represents the classified purpose of a user message
type Intent int

const (
	IntentDefault Intent = iota
	IntentGreeting
	IntentBookAppointment
	IntentViewBookings
	IntentFindDoctor
	IntentShowAllDoctors
	IntentDescribeSymptoms
	IntentMedicineRecommendation
	IntentTrackDelivery
	IntentBookingSteps
	IntentBookingHelpYes
	IntentBookingHelpNo
	IntentMoreHelp
	IntentRescheduleRestricted
	IntentError
)

var intentNames = map[Intent]string{
	IntentDefault:                "default",
	IntentGreeting:               "greeting",
	IntentBookAppointment:        "book_appointment",
	IntentViewBookings:           "view_bookings",
	IntentFindDoctor:             "find_doctor",
	IntentShowAllDoctors:         "show_all_doctors",
	IntentDescribeSymptoms:       "describe_symptoms",
	IntentMedicineRecommendation: "medicine_recommendation",
	IntentTrackDelivery:          "track_delivery",
	IntentBookingSteps:           "booking_steps",
	IntentBookingHelpYes:         "booking_help_yes",
	IntentBookingHelpNo:          "booking_help_no",
	IntentMoreHelp:               "more_help",
	IntentRescheduleRestricted:   "reschedule_restricted",
	IntentError:                  "error",
}

// aliases accepted from the remote understanding service in addition to the
// canonical names
var intentAliases = map[string]Intent{
	"hello":             IntentGreeting,
	"book":              IntentBookAppointment,
	"appointment":       IntentBookAppointment,
	"view_appointments": IntentViewBookings,
	"my_bookings":       IntentViewBookings,
	"doctor":            IntentFindDoctor,
	"all_doctors":       IntentShowAllDoctors,
	"symptoms":          IntentDescribeSymptoms,
	"medicine":          IntentMedicineRecommendation,
	"medication":        IntentMedicineRecommendation,
	"delivery":          IntentTrackDelivery,
	"track_order":       IntentTrackDelivery,
	"reschedule":        IntentRescheduleRestricted,
	"cancel":            IntentRescheduleRestricted,
	"help":              IntentMoreHelp,
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}

// ParseIntent maps an intent name, as declared by the remote service, onto the
// closed Intent set. Case, hyphens and spaces are ignored and camelCase is
// accepted. Unknown names report false.
func ParseIntent(name string) (Intent, bool) {
	key := canonicalName(name)
	if key == "" {
		return IntentDefault, false
	}
	for intent, n := range intentNames {
		if n == key {
			return intent, true
		}
	}
	if intent, ok := intentAliases[key]; ok {
		return intent, true
	}
	return IntentDefault, false
}

func canonicalName(name string) string {
	var b strings.Builder
	name = strings.TrimSpace(name)
	for i, r := range name {
		switch {
		case r == '-' || r == ' ' || r == '.':
			b.WriteByte('_')
		case r >= 'A' && r <= 'Z':
			if i > 0 && name[i-1] != '_' && name[i-1] != '-' && name[i-1] != ' ' && !(name[i-1] >= 'A' && name[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RemoteEligible reports whether richer handling from the remote service is
// preferred for the intent when a session exists
func (i Intent) RemoteEligible() bool {
	switch i {
	case IntentBookAppointment, IntentViewBookings, IntentFindDoctor,
		IntentMedicineRecommendation, IntentTrackDelivery:
		return true
	}
	return false
}
