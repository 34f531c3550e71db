// Package fallback holds the canned local responses used when the remote
// understanding service cannot be consulted.
package fallback

import (
	"regexp"
	"strings"
)

// Category groups messages that share one canned response
type Category string

const (
	CategoryBooking      Category = "booking"
	CategoryViewBookings Category = "view-bookings"
	CategoryDoctorFinder Category = "doctor-finder"
	CategoryMedicine     Category = "medicine"
	CategoryDelivery     Category = "delivery"
	CategoryGeneric      Category = "generic"
)

// Response represents a fallback response. Degraded responses never carry a
// widget.
type Response struct {
	Content  string
	Category Category
}

var responses = map[Category]Response{
	CategoryBooking: {
		Content:  "To book an appointment, open the Appointments page, choose a doctor and pick an available time slot. Sign in first so the booking is saved to your account.",
		Category: CategoryBooking,
	},
	CategoryViewBookings: {
		Content:  "You can see your upcoming and past appointments under My Appointments once you are signed in.",
		Category: CategoryViewBookings,
	},
	CategoryDoctorFinder: {
		Content:  "Use the Find a Doctor page to search by specialty or name. You can also tell me your symptoms and I'll suggest the right kind of specialist.",
		Category: CategoryDoctorFinder,
	},
	CategoryMedicine: {
		Content:  "Browse the Pharmacy section to find medicines and place an order. Always check with a doctor before starting a new medication.",
		Category: CategoryMedicine,
	},
	CategoryDelivery: {
		Content:  "To track a delivery, open My Orders and select the order. The tracking number and current status are shown there.",
		Category: CategoryDelivery,
	},
	CategoryGeneric: {
		Content:  "I can help you book an appointment, find a doctor, order medicine or track a delivery. What would you like to do?",
		Category: CategoryGeneric,
	},
}

// keywordChecks mirror the command groups of the intent matcher, in order
var keywordChecks = []struct {
	category Category
	all      []string
	any      []string
}{
	{category: CategoryBooking, all: []string{"book", "appointment"}},
	{category: CategoryViewBookings, all: []string{"view", "booking"}},
	{category: CategoryDoctorFinder, all: []string{"find", "doctor"}},
	{category: CategoryMedicine, any: []string{"medicine", "medication"}},
	{category: CategoryDelivery, all: []string{"track", "delivery"}},
}

var spaces = regexp.MustCompile(`\s+`)

// ForMessage re-evaluates the raw text against the command keywords and
// returns the matching canned response, or the generic one.
func ForMessage(text string) Response {
	normalized := spaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), " ")

	for _, check := range keywordChecks {
		if len(check.all) > 0 && containsAll(normalized, check.all) {
			return responses[check.category]
		}
		if len(check.any) > 0 && containsAny(normalized, check.any) {
			return responses[check.category]
		}
	}
	return Default()
}

// Default returns the generic guidance
func Default() Response {
	return responses[CategoryGeneric]
}

func containsAll(text string, keywords []string) bool {
	for _, k := range keywords {
		if !strings.Contains(text, k) {
			return false
		}
	}
	return true
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
