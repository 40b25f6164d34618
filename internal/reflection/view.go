package reflection

import "math"

type Tier string

const (
	TierHigh   Tier = "High"
	TierMedium Tier = "Medium"
	TierLow    Tier = "Low"
)

type StyleKey string

const StyleNeutral StyleKey = "emotion-neutral"

// KnownEmotions is the closed set of labels with a dedicated style.
var KnownEmotions = []string{
	"Happy",
	"Sad",
	"Anxious",
	"Excited",
	"Angry",
	"Calm",
	"Confused",
	"Confident",
}

var emotionStyles = map[string]StyleKey{
	"Happy":     "emotion-happy",
	"Sad":       "emotion-sad",
	"Anxious":   "emotion-anxious",
	"Excited":   "emotion-excited",
	"Angry":     "emotion-angry",
	"Calm":      "emotion-calm",
	"Confused":  "emotion-confused",
	"Confident": "emotion-confident",
}

// ConfidencePercentage rounds confidence to a whole percent in [0, 100].
func ConfidencePercentage(r Result) int {
	p := math.Round(r.Confidence * 100)
	switch {
	case math.IsNaN(p) || p < 0:
		return 0
	case p > 100:
		return 100
	}
	return int(p)
}

func ConfidenceTier(r Result) Tier {
	switch {
	case r.Confidence >= 0.8:
		return TierHigh
	case r.Confidence >= 0.6:
		return TierMedium
	default:
		return TierLow
	}
}

// EmotionStyleKey is total: unknown labels get StyleNeutral.
func EmotionStyleKey(emotion string) StyleKey {
	if key, ok := emotionStyles[emotion]; ok {
		return key
	}
	return StyleNeutral
}

// ResultView bundles the derived data a page needs for a Succeeded state.
type ResultView struct {
	Emotion    string
	Percentage int
	Tier       Tier
	Style      StyleKey
}

func NewResultView(r Result) ResultView {
	return ResultView{
		Emotion:    r.Emotion,
		Percentage: ConfidencePercentage(r),
		Tier:       ConfidenceTier(r),
		Style:      EmotionStyleKey(r.Emotion),
	}
}
