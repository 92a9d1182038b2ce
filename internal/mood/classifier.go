// ABOUTME: Heuristic mood classifier over free text and optional voice metrics.
// ABOUTME: Pure keyword scoring with fixed confidence constants; no I/O.
package mood

import (
	"math"
	"strings"
	"time"

	"github.com/harperreed/aria/internal/models"
)

// Keyword sets for lexical scoring. Matching is substring containment,
// so "stress" also hits "stressed" (and "sad" would hit "sadness").
var (
	stressWords = []string{
		"stress", "overwhelm", "pressure", "deadline", "too much",
		"can't cope", "frantic", "panic", "burnout",
	}
	positiveWords = []string{
		"happy", "great", "wonderful", "amazing", "joy", "excited",
		"grateful", "love", "fantastic", "proud",
	}
	negativeWords = []string{
		"sad", "terrible", "awful", "worried", "upset", "lonely",
		"miserable", "angry", "hopeless", "afraid",
	}
	lowEnergyWords = []string{
		"tired", "exhausted", "drained", "sleepy", "fatigued", "worn out",
	}
	highEnergyWords = []string{
		"energized", "pumped", "motivated", "refreshed", "vibrant", "unstoppable",
	}
)

// Voice thresholds.
const (
	pauseFrequencyLimit = 3.0 // pauses per minute before speech reads as hesitant
	speechRateMin       = 80.0
	speechRateMax       = 180.0
	lowVoiceEnergy      = 0.3
	highVoiceEnergy     = 0.7
)

// Classify analyzes text and optional voice metrics and returns a mood
// analysis result. The second return value is false when the input carries
// no classifiable signal (empty or whitespace-only text); callers must not
// persist an entry in that case.
func Classify(text string, voice *models.VoiceMetrics) (*models.MoodAnalysisResult, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}

	lower := strings.ToLower(text)
	stressScore := countHits(lower, stressWords)
	positiveScore := countHits(lower, positiveWords)
	negativeScore := countHits(lower, negativeWords)
	lowEnergyScore := countHits(lower, lowEnergyWords)
	highEnergyScore := countHits(lower, highEnergyWords)

	var indicators []string
	if stressScore > 0 {
		indicators = append(indicators, "stress language")
	}
	if positiveScore > 0 {
		indicators = append(indicators, "positive language")
	}
	if negativeScore > 0 {
		indicators = append(indicators, "negative language")
	}
	if lowEnergyScore > 0 {
		indicators = append(indicators, "low-energy language")
	}
	if highEnergyScore > 0 {
		indicators = append(indicators, "high-energy language")
	}

	// Voice adjustments. The energy multiplier defaults to a neutral 0.5
	// so the arithmetic below is unchanged when no voice data is present.
	voiceEnergy := 0.5
	voiceStressMultiplier := 1.0
	if voice != nil {
		if voice.PausesPerMinute > pauseFrequencyLimit {
			stressScore += 2
			voiceStressMultiplier = 1.3
			indicators = append(indicators, "hesitant speech pattern")
		}
		if voice.SpeechRateWPM < speechRateMin || voice.SpeechRateWPM > speechRateMax {
			stressScore++
			indicators = append(indicators, "unusual speech rate")
		}
		voiceEnergy = voice.Energy
		if voiceEnergy < lowVoiceEnergy {
			indicators = append(indicators, "low voice energy")
		} else if voiceEnergy > highVoiceEnergy {
			indicators = append(indicators, "high voice energy")
		}
	}

	// Mood decision in strict priority order; first match wins.
	var detected models.Mood
	var confidence float64
	switch {
	case stressScore > 2:
		detected = models.MoodStressed
		confidence = clamp(float64(stressScore)*0.2, 0.5, 0.9)
	case negativeScore > positiveScore && negativeScore > 1:
		detected = models.MoodAnxious
		confidence = 0.7
	case positiveScore > negativeScore && positiveScore > 1:
		detected = models.MoodHappy
		confidence = 0.8
	case lowEnergyScore > 0 || voiceEnergy < 0.4:
		detected = models.MoodTired
		confidence = 0.6
	case highEnergyScore > 0 || voiceEnergy > 0.8:
		detected = models.MoodEnergetic
		confidence = 0.7
	default:
		detected = models.MoodCalm
		confidence = 0.5
	}

	energyLevel := clampInt(int(math.Round(
		5+(voiceEnergy-0.5)*4+float64(positiveScore-negativeScore)*0.5)), 1, 10)
	stressLevel := clampInt(int(math.Round(
		5+float64(stressScore)*voiceStressMultiplier+float64(negativeScore)*0.5)), 1, 10)

	return &models.MoodAnalysisResult{
		DetectedMood: detected,
		Confidence:   confidence,
		EnergyLevel:  energyLevel,
		StressLevel:  stressLevel,
		Indicators:   indicators,
		Voice:        voice,
		Timestamp:    time.Now(),
	}, true
}

// countHits counts keyword set members contained in the text.
func countHits(text string, words []string) int {
	count := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			count++
		}
	}
	return count
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
