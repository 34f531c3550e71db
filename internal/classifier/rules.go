package classifier

// symptomKeywords route a message to symptom handling ahead of every command
var symptomKeywords = []string{
	"headache", "dizziness", "pain", "fever", "cough", "rash",
	"nausea", "vomiting", "diarrhea", "constipation",
	"chest", "heart", "skin", "eye", "ear", "nose", "throat", "stomach",
	"back", "joint", "bone",
	"anxiety", "depression", "stress",
	"flu", "infection",
}

var greetingKeywords = []string{
	"hi", "hello", "hey", "hy", "hii",
	"good morning", "good afternoon", "good evening",
	"what's up", "whats up", "yo",
}

// commandRules are evaluated top to bottom; the first match wins
var commandRules = []Rule{
	// book appointment
	{Intent: IntentBookAppointment, Keywords: []string{"book", "appointment"}, All: true},
	{Intent: IntentBookAppointment, Keywords: []string{"schedule an appointment", "schedule appointment", "make an appointment", "new appointment"}},

	// view bookings
	{Intent: IntentViewBookings, Keywords: []string{"view", "booking"}, All: true},
	{Intent: IntentViewBookings, Keywords: []string{"my bookings", "my appointments", "upcoming appointment", "show bookings"}},

	// find doctor
	{Intent: IntentFindDoctor, Keywords: []string{"find", "doctor"}, All: true},
	{Intent: IntentFindDoctor, Keywords: []string{"search doctor", "need a doctor", "see a doctor", "doctor near"}},

	// medicine
	{Intent: IntentMedicineRecommendation, Keywords: []string{"medicine", "medication", "pharmacy", "prescription"}},

	// track delivery
	{Intent: IntentTrackDelivery, Keywords: []string{"track", "delivery"}, All: true},
	{Intent: IntentTrackDelivery, Keywords: []string{"track my order", "order status", "where is my order", "delivery status"}},

	// booking steps
	{Intent: IntentBookingSteps, Keywords: []string{"booking steps", "how to book", "how do i book", "steps to book", "booking process"}},

	// negative response
	{Intent: IntentBookingHelpNo, Keywords: []string{"no", "nope", "not", "nothing"}, WholeWord: true},

	// affirmative response
	{Intent: IntentBookingHelpYes, Keywords: []string{"yes", "yeah", "yep", "sure"}, WholeWord: true},
	{Intent: IntentBookingHelpYes, Keywords: []string{"help", "assist"}},

	// more help
	{Intent: IntentMoreHelp, Keywords: []string{"something else", "anything else", "other options", "more options", "menu"}},

	// reschedule / cancel
	{Intent: IntentRescheduleRestricted, Keywords: []string{"reschedule", "cancel", "change my appointment"}},
}
