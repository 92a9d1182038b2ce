// ABOUTME: Mood enum and the canonical display table shared by all call sites.
// ABOUTME: Defines 8 mood labels with label, icon key, and color key mappings.
package models

// Mood represents an enumerated emotional-state label.
type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodCalm      Mood = "calm"
	MoodStressed  Mood = "stressed"
	MoodAnxious   Mood = "anxious"
	MoodTired     Mood = "tired"
	MoodEnergetic Mood = "energetic"
	MoodSad       Mood = "sad"
	MoodExcited   Mood = "excited"
)

// Display holds the presentation attributes for an enumerated value.
// All UI and assistant surfaces read from these canonical tables.
type Display struct {
	Label    string
	IconKey  string
	ColorKey string
}

// MoodDisplays is the canonical mood presentation table.
var MoodDisplays = map[Mood]Display{
	MoodHappy:     {Label: "Happy", IconKey: "sun", ColorKey: "yellow"},
	MoodCalm:      {Label: "Calm", IconKey: "wave", ColorKey: "blue"},
	MoodStressed:  {Label: "Stressed", IconKey: "bolt", ColorKey: "red"},
	MoodAnxious:   {Label: "Anxious", IconKey: "cloud", ColorKey: "orange"},
	MoodTired:     {Label: "Tired", IconKey: "moon", ColorKey: "gray"},
	MoodEnergetic: {Label: "Energetic", IconKey: "spark", ColorKey: "green"},
	MoodSad:       {Label: "Sad", IconKey: "rain", ColorKey: "indigo"},
	MoodExcited:   {Label: "Excited", IconKey: "star", ColorKey: "pink"},
}

// AllMoods returns all valid moods in display order.
var AllMoods = []Mood{
	MoodHappy, MoodCalm, MoodStressed, MoodAnxious,
	MoodTired, MoodEnergetic, MoodSad, MoodExcited,
}

// IsValidMood checks if a string is a valid mood label.
func IsValidMood(s string) bool {
	for _, m := range AllMoods {
		if string(m) == s {
			return true
		}
	}
	return false
}

// Display returns the presentation attributes for the mood,
// falling back to the raw label for unknown values.
func (m Mood) Display() Display {
	if d, ok := MoodDisplays[m]; ok {
		return d
	}
	return Display{Label: string(m), IconKey: "dot", ColorKey: "white"}
}
