package specialist

// Rule binds a symptom keyword to the specialty that treats it
type Rule struct {
	Keyword   string `toml:"keyword"`
	Specialty string `toml:"specialty"`
}

// Specialty names used by the default table
const (
	Neurologist        = "Neurologist"
	Cardiologist       = "Cardiologist"
	Pulmonologist      = "Pulmonologist"
	Dermatologist      = "Dermatologist"
	Pediatrician       = "Pediatrician"
	Gynecologist       = "Gynecologist"
	Gastroenterologist = "Gastroenterologist"
	Dentist            = "Dentist"
	Ophthalmologist    = "Ophthalmologist"
	ENTSpecialist      = "ENT Specialist"
	Psychiatrist       = "Psychiatrist"
	Orthopedist        = "Orthopedist"
	GeneralPhysician   = "General Physician"
)

// DefaultRules is the ordered symptom table. Earlier entries win when several
// keywords appear in the same text, so group order is significant: "chest pain"
// must stay ahead of "heart", and both ahead of "cough".
var DefaultRules = []Rule{
	// neurological
	{"headache", Neurologist},
	{"migraine", Neurologist},
	{"dizziness", Neurologist},
	{"dizzy", Neurologist},
	{"seizure", Neurologist},
	{"numbness", Neurologist},
	{"memory loss", Neurologist},
	{"tremor", Neurologist},

	// cardiovascular
	{"chest pain", Cardiologist},
	{"heart", Cardiologist},
	{"palpitation", Cardiologist},
	{"blood pressure", Cardiologist},
	{"hypertension", Cardiologist},

	// respiratory
	{"shortness of breath", Pulmonologist},
	{"breathing", Pulmonologist},
	{"asthma", Pulmonologist},
	{"wheezing", Pulmonologist},
	{"cough", Pulmonologist},

	// dermatological
	{"rash", Dermatologist},
	{"acne", Dermatologist},
	{"eczema", Dermatologist},
	{"itching", Dermatologist},
	{"skin", Dermatologist},

	// pediatric
	{"child", Pediatrician},
	{"baby", Pediatrician},
	{"infant", Pediatrician},
	{"toddler", Pediatrician},

	// gynecological
	{"pregnan", Gynecologist},
	{"menstrua", Gynecologist},
	{"period", Gynecologist},
	{"pelvic", Gynecologist},

	// gastrointestinal
	{"stomach", Gastroenterologist},
	{"abdominal", Gastroenterologist},
	{"nausea", Gastroenterologist},
	{"vomiting", Gastroenterologist},
	{"diarrhea", Gastroenterologist},
	{"constipation", Gastroenterologist},
	{"acid reflux", Gastroenterologist},

	// dental
	{"toothache", Dentist},
	{"tooth", Dentist},
	{"teeth", Dentist},
	{"gum", Dentist},

	// ophthalmological
	{"blurry", Ophthalmologist},
	{"vision", Ophthalmologist},
	{"eye", Ophthalmologist},

	// ENT
	{"sinus", ENTSpecialist},
	{"throat", ENTSpecialist},
	{"nose", ENTSpecialist},
	{"ear", ENTSpecialist},

	// mental health
	{"anxiety", Psychiatrist},
	{"depression", Psychiatrist},
	{"stress", Psychiatrist},
	{"insomnia", Psychiatrist},
	{"panic", Psychiatrist},

	// orthopedic
	{"back pain", Orthopedist},
	{"joint", Orthopedist},
	{"bone", Orthopedist},
	{"fracture", Orthopedist},
	{"knee", Orthopedist},
	{"sprain", Orthopedist},

	// general medicine
	{"fever", GeneralPhysician},
	{"flu", GeneralPhysician},
	{"infection", GeneralPhysician},
	{"fatigue", GeneralPhysician},
}
