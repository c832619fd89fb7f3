package knowledge

// Built-in reference tables. Illustrative and extensible, not exhaustive:
// deployments are expected to overlay site-specific rules from YAML files
// (see Load). Keys are canonical drug names (lower case, no diacritics).

func builtinPairInteractions() map[string]Interaction {
	return map[string]Interaction{
		"warfarin_aspirin": {
			Type:                 "pharmacodynamic",
			Severity:             SeverityCritical,
			Mechanism:            "additive anticoagulant and antiplatelet effect",
			ClinicalSignificance: "substantially increased risk of major bleeding",
			Management:           "avoid combination unless specifically indicated; if unavoidable, monitor INR closely and watch for bleeding",
			Confidence:           0.95,
		},
		"warfarin_ibuprofen": {
			Type:                 "pharmacodynamic",
			Severity:             SeverityMajor,
			Mechanism:            "NSAID platelet inhibition plus GI mucosal injury on top of anticoagulation",
			ClinicalSignificance: "increased GI and systemic bleeding risk",
			Management:           "prefer acetaminophen for analgesia; add gastroprotection if an NSAID is unavoidable",
			Confidence:           0.9,
		},
		"warfarin_amiodarone": {
			Type:                 "pharmacokinetic",
			Severity:             SeverityMajor,
			Mechanism:            "CYP2C9 inhibition reduces warfarin clearance",
			ClinicalSignificance: "INR rise, typically within 1-2 weeks of starting amiodarone",
			Management:           "reduce warfarin dose 30-50% empirically and recheck INR within one week",
			Confidence:           0.9,
		},
		"digoxin_amiodarone": {
			Type:                 "pharmacokinetic",
			Severity:             SeverityMajor,
			Mechanism:            "P-glycoprotein inhibition raises digoxin serum levels",
			ClinicalSignificance: "digoxin toxicity: nausea, arrhythmia, visual disturbance",
			Management:           "halve digoxin dose on initiation and follow levels",
			Confidence:           0.9,
		},
		"digoxin_furosemide": {
			Type:                 "pharmacodynamic",
			Severity:             SeverityModerate,
			Mechanism:            "diuretic-induced hypokalemia sensitizes myocardium to digoxin",
			ClinicalSignificance: "increased risk of digoxin-associated arrhythmia",
			Management:           "monitor potassium and magnesium; replace electrolytes as needed",
			Confidence:           0.85,
		},
		"sildenafil_nitroglycerin": {
			Type:                 "pharmacodynamic",
			Severity:             SeverityCritical,
			Mechanism:            "combined cGMP-mediated vasodilation",
			ClinicalSignificance: "profound, potentially refractory hypotension",
			Management:           "combination is contraindicated; separate by at least 24 hours (48 for tadalafil)",
			Confidence:           0.95,
		},
		"lisinopril_spironolactone": {
			Type:                 "pharmacodynamic",
			Severity:             SeverityMajor,
			Mechanism:            "dual suppression of the renin-angiotensin-aldosterone axis reduces potassium excretion",
			ClinicalSignificance: "hyperkalemia, particularly with renal impairment",
			Management:           "monitor potassium and renal function within one week of initiation",
			Confidence:           0.9,
		},
		"simvastatin_clarithromycin": {
			Type:                 "pharmacokinetic",
			Severity:             SeverityMajor,
			Mechanism:            "strong CYP3A4 inhibition raises statin exposure",
			ClinicalSignificance: "risk of myopathy and rhabdomyolysis",
			Management:           "hold simvastatin for the duration of the macrolide course",
			Confidence:           0.9,
		},
		"tramadol_sertraline": {
			Type:                 "pharmacodynamic",
			Severity:             SeverityMajor,
			Mechanism:            "additive serotonergic activity",
			ClinicalSignificance: "risk of serotonin syndrome",
			Management:           "use the lowest effective doses; counsel on early symptoms and reassess the opioid choice",
			Confidence:           0.85,
		},
		"clopidogrel_omeprazole": {
			Type:                 "pharmacokinetic",
			Severity:             SeverityModerate,
			Mechanism:            "CYP2C19 inhibition reduces activation of clopidogrel",
			ClinicalSignificance: "attenuated antiplatelet effect",
			Management:           "switch to pantoprazole or an H2 blocker where acid suppression is needed",
			Confidence:           0.8,
		},
		"aspirin_ibuprofen": {
			Type:                 "pharmacodynamic",
			Severity:             SeverityModerate,
			Mechanism:            "ibuprofen competes for the COX-1 acetylation site",
			ClinicalSignificance: "reduced cardioprotective effect of aspirin plus additive GI risk",
			Management:           "take aspirin at least 30 minutes before ibuprofen; avoid chronic co-use",
			Confidence:           0.8,
		},
		"metformin_furosemide": {
			Type:                 "pharmacokinetic",
			Severity:             SeverityMinor,
			Mechanism:            "loop diuretics can raise metformin levels and reduce renal perfusion",
			ClinicalSignificance: "slightly increased lactic acidosis risk with volume depletion",
			Management:           "routine renal function monitoring",
			Confidence:           0.7,
		},
	}
}

func builtinClassInteractions() map[string]Interaction {
	return map[string]Interaction{
		"anticoagulant_antiplatelet": {
			Type:                 "class",
			Severity:             SeverityMajor,
			Mechanism:            "combined inhibition of coagulation cascade and platelet aggregation",
			ClinicalSignificance: "elevated bleeding risk for any agent combination in these classes",
			Management:           "confirm the dual indication is current; add gastroprotection and monitor hemoglobin",
			Confidence:           0.75,
		},
		"anticoagulant_nsaid": {
			Type:                 "class",
			Severity:             SeverityMajor,
			Mechanism:            "NSAID antiplatelet effect and GI injury on top of anticoagulation",
			ClinicalSignificance: "elevated GI bleeding risk",
			Management:           "prefer non-NSAID analgesia; gastroprotection if unavoidable",
			Confidence:           0.75,
		},
		"ace_inhibitor_potassium_sparing_diuretic": {
			Type:                 "class",
			Severity:             SeverityMajor,
			Mechanism:            "additive reduction of renal potassium excretion",
			ClinicalSignificance: "hyperkalemia risk",
			Management:           "check potassium within a week of starting the combination",
			Confidence:           0.75,
		},
		"ssri_nsaid": {
			Type:                 "class",
			Severity:             SeverityModerate,
			Mechanism:            "serotonin-depleted platelets plus mucosal injury",
			ClinicalSignificance: "increased upper GI bleeding risk",
			Management:           "consider gastroprotection in patients with additional risk factors",
			Confidence:           0.7,
		},
		"ssri_triptan": {
			Type:                 "class",
			Severity:             SeverityModerate,
			Mechanism:            "additive serotonergic activity",
			ClinicalSignificance: "low but documented risk of serotonin syndrome",
			Management:           "counsel on symptoms; no routine dose change required",
			Confidence:           0.65,
		},
		"benzodiazepine_opioid": {
			Type:                 "class",
			Severity:             SeverityMajor,
			Mechanism:            "additive CNS and respiratory depression",
			ClinicalSignificance: "boxed-warning combination; overdose deaths documented",
			Management:           "avoid co-prescribing; if unavoidable use minimum doses and durations",
			Confidence:           0.85,
		},
		"nitrate_pde5_inhibitor": {
			Type:                 "class",
			Severity:             SeverityCritical,
			Mechanism:            "combined cGMP-mediated vasodilation",
			ClinicalSignificance: "profound hypotension",
			Management:           "contraindicated combination",
			Confidence:           0.9,
		},
	}
}

func builtinDrugClasses() map[string]string {
	return map[string]string{
		"warfarin":            "anticoagulant",
		"apixaban":            "anticoagulant",
		"rivaroxaban":         "anticoagulant",
		"enoxaparin":          "anticoagulant",
		"aspirin":             "antiplatelet",
		"clopidogrel":         "antiplatelet",
		"ibuprofen":           "nsaid",
		"naproxen":            "nsaid",
		"diclofenac":          "nsaid",
		"lisinopril":          "ace_inhibitor",
		"enalapril":           "ace_inhibitor",
		"ramipril":            "ace_inhibitor",
		"spironolactone":      "potassium_sparing_diuretic",
		"furosemide":          "loop_diuretic",
		"hydrochlorothiazide": "thiazide_diuretic",
		"sertraline":          "ssri",
		"fluoxetine":          "ssri",
		"citalopram":          "ssri",
		"sumatriptan":         "triptan",
		"lorazepam":           "benzodiazepine",
		"diazepam":            "benzodiazepine",
		"alprazolam":          "benzodiazepine",
		"oxycodone":           "opioid",
		"morphine":            "opioid",
		"tramadol":            "opioid",
		"nitroglycerin":       "nitrate",
		"isosorbide":          "nitrate",
		"sildenafil":          "pde5_inhibitor",
		"tadalafil":           "pde5_inhibitor",
		"digoxin":             "cardiac_glycoside",
		"amiodarone":          "antiarrhythmic",
		"simvastatin":         "statin",
		"atorvastatin":        "statin",
		"rosuvastatin":        "statin",
		"clarithromycin":      "macrolide",
		"azithromycin":        "macrolide",
		"metformin":           "biguanide",
		"insulin":             "insulin",
		"acetaminophen":       "analgesic",
		"omeprazole":          "ppi",
		"pantoprazole":        "ppi",
		"metoprolol":          "beta_blocker",
		"atenolol":            "beta_blocker",
		"amlodipine":          "calcium_channel_blocker",
		"levothyroxine":       "thyroid_hormone",
	}
}

// Therapeutic classes are a coarser grouping than drug classes and drive
// duplicate-therapy detection only.
func builtinTherapeuticClasses() map[string]string {
	return map[string]string{
		"warfarin":            "anticoagulant therapy",
		"apixaban":            "anticoagulant therapy",
		"rivaroxaban":         "anticoagulant therapy",
		"enoxaparin":          "anticoagulant therapy",
		"aspirin":             "antiplatelet therapy",
		"clopidogrel":         "antiplatelet therapy",
		"ibuprofen":           "analgesic",
		"naproxen":            "analgesic",
		"diclofenac":          "analgesic",
		"acetaminophen":       "analgesic",
		"oxycodone":           "opioid analgesic",
		"morphine":            "opioid analgesic",
		"tramadol":            "opioid analgesic",
		"lisinopril":          "antihypertensive",
		"enalapril":           "antihypertensive",
		"ramipril":            "antihypertensive",
		"metoprolol":          "antihypertensive",
		"atenolol":            "antihypertensive",
		"amlodipine":          "antihypertensive",
		"furosemide":          "diuretic",
		"hydrochlorothiazide": "diuretic",
		"spironolactone":      "diuretic",
		"sertraline":          "antidepressant",
		"fluoxetine":          "antidepressant",
		"citalopram":          "antidepressant",
		"lorazepam":           "sedative",
		"diazepam":            "sedative",
		"alprazolam":          "sedative",
		"simvastatin":         "lipid lowering",
		"atorvastatin":        "lipid lowering",
		"rosuvastatin":        "lipid lowering",
		"metformin":           "antidiabetic",
		"insulin":             "antidiabetic",
		"omeprazole":          "acid suppression",
		"pantoprazole":        "acid suppression",
	}
}

// High interaction-potential drugs: narrow therapeutic index or dense
// interaction profiles. Everything else defaults to "moderate".
func builtinHighRisk() map[string]bool {
	return map[string]bool{
		"warfarin":     true,
		"digoxin":      true,
		"amiodarone":   true,
		"lithium":      true,
		"methotrexate": true,
		"insulin":      true,
		"phenytoin":    true,
		"theophylline": true,
	}
}

func builtinContraindications() map[string][]Contraindication {
	return map[string][]Contraindication{
		"metformin": {
			{
				Type:           "renal_impairment",
				Reason:         "risk of lactic acidosis with severe renal impairment",
				Severity:       SeverityCritical,
				Recommendation: "stop metformin while eGFR is below 30 and reassess renal function",
			},
		},
		"ibuprofen": {
			{
				Type:           "renal_impairment",
				Reason:         "NSAIDs further reduce renal perfusion in severe impairment",
				Severity:       SeverityMajor,
				Recommendation: "avoid NSAIDs; use acetaminophen for analgesia",
			},
		},
		"naproxen": {
			{
				Type:           "renal_impairment",
				Reason:         "NSAIDs further reduce renal perfusion in severe impairment",
				Severity:       SeverityMajor,
				Recommendation: "avoid NSAIDs; use acetaminophen for analgesia",
			},
		},
		"spironolactone": {
			{
				Type:           "renal_impairment",
				Reason:         "potassium-sparing diuretics cause dangerous hyperkalemia in severe impairment",
				Severity:       SeverityMajor,
				Recommendation: "hold spironolactone and check potassium urgently",
			},
		},
		"warfarin": {
			{
				Type:           "active_bleeding",
				Reason:         "anticoagulation worsens active hemorrhage",
				Severity:       SeverityCritical,
				Recommendation: "hold anticoagulation and evaluate the bleeding source",
			},
			{
				Type:           "pregnancy",
				Reason:         "warfarin is teratogenic",
				Severity:       SeverityCritical,
				Recommendation: "switch to low molecular weight heparin",
			},
		},
		"simvastatin": {
			{
				Type:           "hepatic_impairment",
				Reason:         "statins can worsen active hepatic disease",
				Severity:       SeverityMajor,
				Recommendation: "hold statin therapy and trend liver enzymes",
			},
		},
		"nitroglycerin": {
			{
				Type:           "hypotension",
				Reason:         "nitrates lower blood pressure further",
				Severity:       SeverityMajor,
				Recommendation: "avoid nitrates until blood pressure is stabilized",
			},
		},
	}
}

func builtinGuidelines() map[string]DosingGuideline {
	return map[string]DosingGuideline{
		"acetaminophen": {
			AdultDose:       DoseRange{Min: 325, Max: 1000, Unit: "mg", Frequency: "q4-6h"},
			ElderlyFactor:   0.8,
			RenalModerate:   0.75,
			RenalSevere:     0.5,
			HepaticFactor:   0.5,
			WeightBased:     true,
			MgPerKg:         14,
			MaxDailyDose:    4000,
			ElderlyMaxDaily: 3000,
			Contraindications: []string{"severe hepatic impairment"},
			Monitoring:        []string{"liver function with chronic use"},
		},
		"ibuprofen": {
			AdultDose:       DoseRange{Min: 200, Max: 800, Unit: "mg", Frequency: "q6-8h"},
			ElderlyFactor:   0.75,
			RenalModerate:   0.75,
			RenalSevere:     0.5,
			MaxDailyDose:    3200,
			ElderlyMaxDaily: 2400,
			Contraindications: []string{"severe renal impairment", "active gi bleeding"},
			Monitoring:        []string{"renal function", "blood pressure"},
		},
		"warfarin": {
			AdultDose:     DoseRange{Min: 2, Max: 10, Unit: "mg", Frequency: "daily"},
			ElderlyFactor: 0.75,
			HepaticFactor: 0.5,
			MaxDailyDose:  10,
			Contraindications: []string{"active bleeding", "pregnancy"},
			Monitoring:        []string{"INR", "signs of bleeding"},
		},
		"lisinopril": {
			AdultDose:     DoseRange{Min: 5, Max: 40, Unit: "mg", Frequency: "daily"},
			RenalModerate: 0.75,
			RenalSevere:   0.5,
			MaxDailyDose:  80,
			Contraindications: []string{"angioedema history", "pregnancy"},
			Monitoring:        []string{"potassium", "renal function"},
		},
		"metformin": {
			AdultDose:       DoseRange{Min: 500, Max: 1000, Unit: "mg", Frequency: "bid"},
			RenalModerate:   0.5,
			RenalSevere:     0.25,
			MaxDailyDose:    2550,
			ElderlyMaxDaily: 2000,
			Contraindications: []string{"severe renal impairment"},
			Monitoring:        []string{"renal function", "vitamin B12 with long-term use"},
		},
		"digoxin": {
			AdultDose:     DoseRange{Min: 0.125, Max: 0.25, Unit: "mg", Frequency: "daily"},
			ElderlyFactor: 0.5,
			RenalModerate: 0.5,
			RenalSevere:   0.25,
			MaxDailyDose:  0.5,
			Monitoring:    []string{"digoxin level", "potassium", "heart rate"},
		},
		"enoxaparin": {
			AdultDose:    DoseRange{Min: 30, Max: 100, Unit: "mg", Frequency: "q12h"},
			RenalSevere:  0.5,
			WeightBased:  true,
			MgPerKg:      1,
			MaxDailyDose: 200,
			Contraindications: []string{"active bleeding"},
			Monitoring:        []string{"anti-Xa level in renal impairment", "platelet count"},
		},
		"simvastatin": {
			AdultDose:     DoseRange{Min: 10, Max: 40, Unit: "mg", Frequency: "qhs"},
			HepaticFactor: 0.5,
			MaxDailyDose:  40,
			Contraindications: []string{"active hepatic disease"},
			Monitoring:        []string{"liver enzymes", "muscle symptoms"},
		},
		"sertraline": {
			AdultDose:     DoseRange{Min: 25, Max: 200, Unit: "mg", Frequency: "daily"},
			ElderlyFactor: 0.75,
			HepaticFactor: 0.5,
			MaxDailyDose:  200,
			Monitoring:    []string{"mood changes on initiation", "sodium in the elderly"},
		},
		"lorazepam": {
			AdultDose:       DoseRange{Min: 0.5, Max: 2, Unit: "mg", Frequency: "q8h"},
			ElderlyFactor:   0.5,
			HepaticFactor:   0.5,
			MaxDailyDose:    6,
			ElderlyMaxDaily: 3,
			Monitoring:      []string{"sedation", "fall risk in the elderly"},
		},
	}
}

func builtinFrequencies() map[string]Frequency {
	return map[string]Frequency{
		"daily":             {TimesPerDay: 1, Description: "once daily"},
		"once daily":        {TimesPerDay: 1, Description: "once daily"},
		"qd":                {TimesPerDay: 1, Description: "once daily"},
		"od":                {TimesPerDay: 1, Description: "once daily"},
		"qhs":               {TimesPerDay: 1, Description: "at bedtime"},
		"nightly":           {TimesPerDay: 1, Description: "at bedtime"},
		"bid":               {TimesPerDay: 2, Description: "twice daily"},
		"twice daily":       {TimesPerDay: 2, Description: "twice daily"},
		"tid":               {TimesPerDay: 3, Description: "three times daily"},
		"three times daily": {TimesPerDay: 3, Description: "three times daily"},
		"qid":               {TimesPerDay: 4, Description: "four times daily"},
		"four times daily":  {TimesPerDay: 4, Description: "four times daily"},
		"q4h":               {TimesPerDay: 6, Description: "every 4 hours"},
		"q4-6h":             {TimesPerDay: 5, Description: "every 4 to 6 hours"},
		"q6h":               {TimesPerDay: 4, Description: "every 6 hours"},
		"q6-8h":             {TimesPerDay: 3.5, Description: "every 6 to 8 hours"},
		"q8h":               {TimesPerDay: 3, Description: "every 8 hours"},
		"q12h":              {TimesPerDay: 2, Description: "every 12 hours"},
		"every other day":   {TimesPerDay: 0.5, Description: "every other day"},
		"weekly":            {TimesPerDay: 1.0 / 7.0, Description: "once weekly"},
		"prn":               {TimesPerDay: 1, Description: "as needed"},
		"as needed":         {TimesPerDay: 1, Description: "as needed"},
	}
}
