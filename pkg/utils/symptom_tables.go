package utils

// symptomKeywordMap maps the free-form phrases the text model produces onto
// stable canonical keywords. Phrases are matched after cleaning (lowercase,
// trimmed, parenthesized qualifiers removed). Unknown phrases pass through
// unchanged.
var symptomKeywordMap = map[string]string{
	// common
	"headache":          "headache",
	"throbbing head":    "headache",
	"head pain":         "headache",
	"cough":             "cough",
	"coughing":          "cough",
	"night cough":       "cough",
	"fever":             "fever",
	"high temperature":  "fever",
	"having a fever":    "fever",
	"mild fever":        "mild fever",
	"slight fever":      "mild fever",
	"low-grade fever":   "mild fever",
	"high fever":        "high fever",
	"severe fever":      "high fever",
	"chills":            "chills",
	"shivering":         "chills",
	"fatigue":           "fatigue",
	"tiredness":         "fatigue",
	"exhaustion":        "fatigue",
	"dizziness":         "dizziness",
	"feeling dizzy":     "dizziness",
	"lightheadedness":   "dizziness",
	"muscle pain":       "muscle pain",
	"muscle ache":       "muscle pain",
	"soreness":          "muscle pain",
	"cold sweat":        "cold sweat",
	"clammy skin":       "cold sweat",
	"loss of appetite":  "loss of appetite",
	"no appetite":       "loss of appetite",
	"reduced appetite":  "loss of appetite",
	"weight loss":       "weight loss",
	"losing weight":     "weight loss",

	// skin
	"itchy":            "itching",
	"itchy skin":       "itching",
	"skin itchiness":   "itching",
	"itchiness":        "itching",
	"itching":          "itching",
	"skin irritation":  "itching",
	"dry skin":         "dryness",
	"skin dryness":     "dryness",
	"dryness":          "dryness",
	"redness":          "skin redness",
	"red skin":         "skin redness",
	"flushed skin":     "skin redness",
	"swelling":         "swelling",
	"edema":            "swelling",
	"swollen body":     "swelling",
	"paleness":         "paleness",
	"pale skin":        "paleness",
	"jaundice":         "jaundice",
	"yellow skin":      "jaundice",
	"skin sensitivity": "skin sensitivity",

	// respiratory / ENT
	"sore throat":                   "sore throat",
	"throat pain":                   "sore throat",
	"throat irritation":             "sore throat",
	"runny nose":                    "runny nose",
	"nasal discharge":               "runny nose",
	"nasal congestion":              "nasal congestion",
	"stuffy nose":                   "nasal congestion",
	"blocked nose":                  "nasal congestion",
	"phlegm":                        "phlegm",
	"mucus":                         "phlegm",
	"sputum":                        "phlegm",
	"wheezing":                      "wheezing",
	"wheeze":                        "wheezing",
	"shortness of breath":           "dyspnea",
	"difficulty breathing":          "dyspnea",
	"dyspnea":                       "dyspnea",
	"shortness of breath at night":  "nocturnal dyspnea",
	"nocturnal dyspnea":             "nocturnal dyspnea",
	"difficulty swallowing":         "difficulty swallowing",
	"swallowing pain":               "difficulty swallowing",
	"foreign body sensation in throat": "throat lump",

	// digestive
	"abdominal pain":         "abdominal pain",
	"stomachache":            "abdominal pain",
	"stomach pain":           "abdominal pain",
	"stomach hurt":           "abdominal pain",
	"upper abdominal pain":   "upper abdominal pain",
	"epigastric pain":        "upper abdominal pain",
	"lower abdominal pain":   "lower abdominal pain",
	"lower belly ache":       "lower abdominal pain",
	"abdominal bloating":     "bloating",
	"bloating":               "bloating",
	"stomach bloated":        "bloating",
	"nausea":                 "nausea",
	"queasy":                 "nausea",
	"feel like vomiting":     "nausea",
	"vomiting":               "vomiting",
	"throwing up":            "vomiting",
	"puking":                 "vomiting",
	"diarrhea":               "diarrhea",
	"loose stool":            "diarrhea",
	"watery stool":           "diarrhea",
	"constipation":           "constipation",
	"hard stool":             "constipation",
	"indigestion":            "indigestion",
	"dyspepsia":              "indigestion",
	"heartburn":              "heartburn",
	"burning chest":          "heartburn",
	"acid reflux":            "acid reflux",
	"regurgitation":          "acid reflux",
	"pain after eating":      "pain after eating",
	"postprandial pain":      "pain after eating",

	// cardiovascular / urinary
	"chest pain":          "chest pain",
	"tight chest":         "chest pain",
	"thoracic pain":       "chest pain",
	"chest tightness":     "chest tightness",
	"pressure in chest":   "chest tightness",
	"palpitations":        "palpitations",
	"rapid heartbeat":     "palpitations",
	"heart racing":        "palpitations",
	"painful urination":   "painful urination",
	"dysuria":             "painful urination",
	"burning urination":   "painful urination",
	"frequent urination":  "frequent urination",
	"urinating often":     "frequent urination",
	"blood in urine":      "hematuria",
	"hematuria":           "hematuria",
	"dehydration":         "dehydration",
	"dry mouth":           "dehydration",
}

// symptomLabelKo maps canonical keywords onto the Korean labels shown to
// the user. Keywords without an entry fall back to the keyword itself.
var symptomLabelKo = map[string]string{
	"headache":              "두통",
	"cough":                 "기침",
	"fever":                 "발열",
	"mild fever":            "미열",
	"high fever":            "고열",
	"chills":                "오한",
	"fatigue":               "피로",
	"dizziness":             "어지러움",
	"muscle pain":           "근육통",
	"cold sweat":            "식은땀",
	"loss of appetite":      "식욕 저하",
	"weight loss":           "체중 감소",
	"itching":               "가려움",
	"dryness":               "피부 건조",
	"skin redness":          "피부 발적",
	"swelling":              "부종",
	"paleness":              "창백함",
	"jaundice":              "황달",
	"skin sensitivity":      "피부 민감",
	"sore throat":           "인후통",
	"runny nose":            "콧물",
	"nasal congestion":      "코막힘",
	"phlegm":                "가래",
	"wheezing":              "천명",
	"dyspnea":               "호흡곤란",
	"nocturnal dyspnea":     "야간 호흡곤란",
	"difficulty swallowing": "삼킴 곤란",
	"throat lump":           "목 이물감",
	"abdominal pain":        "복통",
	"upper abdominal pain":  "상복부 통증",
	"lower abdominal pain":  "하복부 통증",
	"bloating":              "복부팽만",
	"nausea":                "메스꺼움",
	"vomiting":              "구토",
	"diarrhea":              "설사",
	"constipation":          "변비",
	"indigestion":           "소화불량",
	"heartburn":             "속쓰림",
	"acid reflux":           "역류",
	"pain after eating":     "식후 통증",
	"chest pain":            "흉통",
	"chest tightness":       "가슴 답답함",
	"palpitations":          "심계항진",
	"painful urination":     "배뇨통",
	"frequent urination":    "빈뇨",
	"hematuria":             "혈뇨",
	"dehydration":           "탈수",
}
