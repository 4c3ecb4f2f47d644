package rules

import "github.com/06piyush13/MedicalTracker-APP/pkg/model"

// Rule pairs a symptom guard with the result it produces.
type Rule struct {
	Name   string
	Match  func(s model.SymptomSet) bool
	Result model.AnalysisResult
}

const (
	Fever             = "Fever"
	Cough             = "Cough"
	BodyAche          = "Body Ache"
	SoreThroat        = "Sore Throat"
	Headache          = "Headache"
	ShortnessOfBreath = "Shortness of Breath"
	ChestPain         = "Chest Pain"
	Diarrhea          = "Diarrhea"
	Nausea            = "Nausea"
	Vomiting          = "Vomiting"
	SkinRash          = "Skin Rash"
	JointPain         = "Joint Pain"
	Earache           = "Earache"
)

func pred(condition string, p model.Probability, description string) model.ConditionPrediction {
	return model.ConditionPrediction{Condition: condition, Probability: p, Description: description}
}

// Table is evaluated top to bottom and the first match wins. Escalation
// (breathing trouble or chest pain) sits first so it overrides every
// softer branch sharing symptoms with it.
var Table = []Rule{
	{
		Name:  "respiratory-escalation",
		Match: func(s model.SymptomSet) bool { return s.HasAny(ShortnessOfBreath, ChestPain) },
		Result: model.AnalysisResult{
			Predictions: []model.ConditionPrediction{
				pred("Respiratory Distress", model.ProbabilityHigh, "Breathing difficulty or chest pain can signal a serious heart or lung problem."),
				pred("Panic Attack", model.ProbabilityMedium, "Anxiety episodes can cause chest tightness and rapid breathing."),
				pred("Bronchitis", model.ProbabilityLow, "Inflammation of the airways can cause breathlessness and chest discomfort."),
			},
			Medications: []string{"Do not self-medicate"},
			NextSteps: []string{
				"Seek immediate medical care",
				"Call emergency services or go to the nearest ER if symptoms are severe",
			},
		},
	},
	{
		Name:  "flu",
		Match: func(s model.SymptomSet) bool { return s.HasAll(Fever, Cough, BodyAche) },
		Result: model.AnalysisResult{
			Predictions: []model.ConditionPrediction{
				pred("Viral Flu", model.ProbabilityHigh, "Fever, cough and body aches together are typical of influenza."),
				pred("COVID-19", model.ProbabilityMedium, "COVID-19 presents with a similar combination of symptoms."),
				pred("Common Cold", model.ProbabilityLow, "A cold can cause cough and aches, though fever is less common."),
			},
			Medications: []string{
				"Paracetamol or Ibuprofen for fever and aches",
				"Cough syrup",
				"Warm fluids",
			},
			NextSteps: []string{
				"Get plenty of rest",
				"Isolate to avoid spreading infection",
				"Monitor your temperature",
			},
		},
	},
	{
		Name:  "throat-infection",
		Match: func(s model.SymptomSet) bool { return s.HasAll(SoreThroat, Fever) },
		Result: model.AnalysisResult{
			Predictions: []model.ConditionPrediction{
				pred("Strep Throat", model.ProbabilityHigh, "A bacterial throat infection commonly causing sore throat with fever."),
				pred("Tonsillitis", model.ProbabilityMedium, "Inflamed tonsils often cause painful swallowing and fever."),
				pred("Viral Pharyngitis", model.ProbabilityMedium, "A viral infection of the throat with similar symptoms."),
			},
			Medications: []string{
				"Throat lozenges",
				"Warm salt-water gargle",
				"Pain relievers",
			},
			NextSteps: []string{
				"Get a throat swab test",
				"Avoid cold drinks",
			},
		},
	},
	{
		Name: "tension-headache",
		Match: func(s model.SymptomSet) bool {
			return s.HasAll(Headache, BodyAche) && !s.Has(Fever)
		},
		Result: model.AnalysisResult{
			Predictions: []model.ConditionPrediction{
				pred("Tension Headache", model.ProbabilityHigh, "Muscle tension and stress commonly cause headache with body aches."),
				pred("Fatigue", model.ProbabilityMedium, "Lack of sleep or overexertion can cause aches and headaches."),
				pred("Dehydration", model.ProbabilityLow, "Insufficient fluid intake can lead to headaches and muscle aches."),
			},
			Medications: []string{
				"Pain relievers",
				"Magnesium supplements",
			},
			NextSteps: []string{
				"Reduce screen time",
				"Rest in a dark, quiet room",
				"Practice stress management",
			},
		},
	},
	{
		Name:  "gastrointestinal",
		Match: func(s model.SymptomSet) bool { return s.HasAny(Diarrhea, Nausea, Vomiting) },
		Result: model.AnalysisResult{
			Predictions: []model.ConditionPrediction{
				pred("Food Poisoning", model.ProbabilityHigh, "Contaminated food often causes sudden nausea, vomiting or diarrhea."),
				pred("Gastroenteritis", model.ProbabilityMedium, "Stomach flu is an infection causing digestive upset."),
				pred("Indigestion", model.ProbabilityLow, "Discomfort in the upper abdomen that may cause nausea."),
			},
			Medications: []string{
				"Oral rehydration salts",
				"Probiotics",
				"Anti-nausea medication",
			},
			NextSteps: []string{
				"Stay hydrated",
				"Eat a bland diet",
				"Avoid dairy products",
			},
		},
	},
	{
		Name:  "skin",
		Match: func(s model.SymptomSet) bool { return s.Has(SkinRash) },
		Result: model.AnalysisResult{
			Predictions: []model.ConditionPrediction{
				pred("Contact Dermatitis", model.ProbabilityHigh, "Skin irritation caused by contact with an irritant or allergen."),
				pred("Eczema", model.ProbabilityMedium, "A chronic condition causing dry, itchy and inflamed skin."),
				pred("Allergic Reaction", model.ProbabilityLow, "The immune system reacting to a food, drug or substance."),
			},
			Medications: []string{
				"Topical steroid cream",
				"Antihistamines",
			},
			NextSteps: []string{
				"Avoid scratching and known triggers",
				"Keep the skin moisturized",
			},
		},
	},
	{
		Name:  "joint",
		Match: func(s model.SymptomSet) bool { return s.Has(JointPain) },
		Result: model.AnalysisResult{
			Predictions: []model.ConditionPrediction{
				pred("Arthritis", model.ProbabilityMedium, "Inflammation of the joints causing pain and stiffness."),
				pred("Strain/Sprain", model.ProbabilityHigh, "Overuse or injury to muscles and ligaments around a joint."),
				pred("Viral Infection", model.ProbabilityLow, "Some viral infections cause temporary joint pain."),
			},
			Medications: []string{
				"Anti-inflammatory medication",
				"Topical pain relief gel",
			},
			NextSteps: []string{
				"Rest the affected joint",
				"Apply ice or heat",
				"Do gentle stretching",
			},
		},
	},
	{
		Name:  "ear",
		Match: func(s model.SymptomSet) bool { return s.Has(Earache) },
		Result: model.AnalysisResult{
			Predictions: []model.ConditionPrediction{
				pred("Ear Infection", model.ProbabilityHigh, "Infection of the middle ear, common after colds."),
				pred("Swimmer's Ear", model.ProbabilityMedium, "Infection of the outer ear canal, often from trapped water."),
				pred("Wax Buildup", model.ProbabilityLow, "Excess earwax can cause discomfort and muffled hearing."),
			},
			Medications: []string{
				"Pain relievers",
				"Prescribed ear drops",
			},
			NextSteps: []string{
				"Keep the ear dry",
				"Avoid inserting objects into the ear",
				"See a doctor if pain persists",
			},
		},
	},
}

// Default applies when no rule in Table matches.
var Default = Rule{
	Name:  "default",
	Match: func(model.SymptomSet) bool { return true },
	Result: model.AnalysisResult{
		Predictions: []model.ConditionPrediction{
			pred("Common Cold", model.ProbabilityMedium, "A mild viral infection of the nose and throat."),
			pred("Seasonal Allergies", model.ProbabilityLow, "Allergic reaction to pollen or other airborne particles."),
		},
		Medications: []string{"Rest", "Hydration"},
		NextSteps: []string{
			"Monitor your symptoms",
			"Get plenty of rest",
		},
	},
}

// Match returns the first rule in Table matching s, or Default.
func Match(s model.SymptomSet) Rule {
	for _, r := range Table {
		if r.Match(s) {
			return r
		}
	}
	return Default
}

// Evaluate runs the table against s. It never fails and the returned
// result is a fresh copy.
func Evaluate(s model.SymptomSet) model.AnalysisResult {
	return Match(s).Result.Clone()
}
