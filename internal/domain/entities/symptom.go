package entities

import "time"

// TimeContext describes when a symptom occurs. The four times of day share
// the highest merge priority; persistent (chronic) symptoms rank below them,
// and an unknown time ranks lowest.
type TimeContext string

const (
	TimeMorning    TimeContext = "morning"
	TimeAfternoon  TimeContext = "afternoon"
	TimeEvening    TimeContext = "evening"
	TimeNight      TimeContext = "night"
	TimePersistent TimeContext = "persistent"
)

// ParseTimeContext maps a raw model-supplied time value onto the enum.
// Anything outside the five known values is treated as absent.
func ParseTimeContext(raw string) *TimeContext {
	switch TimeContext(raw) {
	case TimeMorning, TimeAfternoon, TimeEvening, TimeNight, TimePersistent:
		t := TimeContext(raw)
		return &t
	}
	return nil
}

// TimePriority returns the merge priority tier for a time context.
// time-of-day > persistent > none.
func TimePriority(t *TimeContext) int {
	if t == nil {
		return 0
	}
	if *t == TimePersistent {
		return 1
	}
	return 2
}

// ExtractedSymptom is one raw symptom phrase as returned by the
// text-completion service, before any normalization. It only lives for the
// duration of a single extraction call.
type ExtractedSymptom struct {
	Symptom string       `json:"symptom"`
	Time    *TimeContext `json:"time"`
}

// CanonicalSymptom is the normalized, deduplicated, user-facing form of a
// symptom. Keyword is the stable internal identifier; Label is the Korean
// display string.
type CanonicalSymptom struct {
	Keyword string       `json:"keyword"`
	Label   string       `json:"label"`
	Time    *TimeContext `json:"time"`
}

// SymptomRecord is one self-diagnosis session for a user. A record holds the
// canonical symptoms that were reported and, once the pipeline has run, is
// linked one-to-one with a Prediction.
type SymptomRecord struct {
	ID        string             `json:"id"`
	UserID    string             `json:"userId"`
	Symptoms  []CanonicalSymptom `json:"symptoms,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

// UserContext carries the profile attributes the classification service
// needs alongside the symptom keywords.
type UserContext struct {
	UserID          string   `json:"userId"`
	Age             int      `json:"age"`
	Gender          string   `json:"gender"`
	Height          float64  `json:"height"`
	Weight          float64  `json:"weight"`
	BMI             float64  `json:"bmi"`
	ChronicDiseases []string `json:"chronicDiseases"`
	Medications     []string `json:"medications"`
}

// ClassificationRequest is the wire payload sent to the disease
// classification service.
type ClassificationRequest struct {
	SymptomKeywords []string `json:"symptom_keywords"`
	Age             int      `json:"age"`
	Gender          string   `json:"gender"`
	Height          float64  `json:"height"`
	Weight          float64  `json:"weight"`
	BMI             float64  `json:"bmi"`
	ChronicDiseases []string `json:"chronic_diseases"`
	Medications     []string `json:"medications"`
}
