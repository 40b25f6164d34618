package sentiment

import (
	"math"
	"regexp"
	"strings"
)

const (
	NEUTRAL_EMOTION    = "Neutral"
	NEUTRAL_CONFIDENCE = 0.5
	MIN_CONFIDENCE     = 0.3
)

type emotionKeywords struct {
	Emotion  string
	Keywords []string
	patterns []*regexp.Regexp
}

// Catalog order is also the tie-break order.
var catalog = compile([]emotionKeywords{
	{Emotion: "Happy", Keywords: []string{"happy", "joy", "excited", "great", "wonderful", "amazing", "fantastic", "delighted", "cheerful", "elated"}},
	{Emotion: "Sad", Keywords: []string{"sad", "depressed", "down", "upset", "disappointed", "heartbroken", "melancholy", "gloomy", "sorrowful"}},
	{Emotion: "Anxious", Keywords: []string{"nervous", "worried", "anxious", "stressed", "afraid", "scared", "panic", "overwhelmed", "tense", "uneasy"}},
	{Emotion: "Angry", Keywords: []string{"angry", "mad", "furious", "irritated", "annoyed", "frustrated", "rage", "outraged", "livid"}},
	{Emotion: "Excited", Keywords: []string{"excited", "thrilled", "enthusiastic", "eager", "pumped", "energized", "motivated", "inspired"}},
	{Emotion: "Calm", Keywords: []string{"calm", "peaceful", "relaxed", "serene", "tranquil", "content", "composed", "zen", "balanced"}},
	{Emotion: "Confused", Keywords: []string{"confused", "puzzled", "uncertain", "lost", "bewildered", "perplexed", "unclear", "mixed"}},
	{Emotion: "Confident", Keywords: []string{"confident", "sure", "determined", "strong", "capable", "ready", "prepared", "positive", "optimistic"}},
})

func compile(entries []emotionKeywords) []emotionKeywords {
	for i := range entries {
		for _, kw := range entries[i].Keywords {
			entries[i].patterns = append(entries[i].patterns,
				regexp.MustCompile(`\b`+regexp.QuoteMeta(kw)+`\b`))
		}
	}
	return entries
}

// Emotions lists every label the analyzer can return besides Neutral.
func Emotions() []string {
	out := make([]string, len(catalog))
	for i, e := range catalog {
		out[i] = e.Emotion
	}
	return out
}

type EmotionScore struct {
	Emotion string
	Score   float64
}

// ScoreEmotions scores every catalog emotion against text. Emotions with
// keyword hits score hits/len(keywords) plus a VADER intensity bonus; the rest
// get a small intensity-only baseline that always stays below any hit.
func ScoreEmotions(text string) []EmotionScore {
	scores, _ := scoreEmotions(text)
	return scores
}

func scoreEmotions(text string) ([]EmotionScore, float64) {
	plain := strings.ToLower(ConvertMarkdownToText(text))
	intensity := Intensity(plain)

	scores := make([]EmotionScore, 0, len(catalog))
	for _, e := range catalog {
		hits := 0
		for _, p := range e.patterns {
			hits += len(p.FindAllStringIndex(plain, -1))
		}

		var score float64
		if hits > 0 {
			score = math.Min(float64(hits)/float64(len(e.Keywords))+0.1+0.2*intensity, 1.0)
		} else {
			score = 0.1 * intensity
		}
		scores = append(scores, EmotionScore{Emotion: e.Emotion, Score: score})
	}
	return scores, intensity
}

// AnalyzeEmotion returns the dominant emotion and its confidence rounded to
// two decimals. Weak winners are lifted into [0.3, 0.7] by intensity.
func AnalyzeEmotion(text string) (string, float64) {
	scores, intensity := scoreEmotions(text)
	if len(scores) == 0 {
		return NEUTRAL_EMOTION, NEUTRAL_CONFIDENCE
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}

	confidence := best.Score
	if confidence < MIN_CONFIDENCE {
		confidence = MIN_CONFIDENCE + 0.4*intensity
	}

	return best.Emotion, math.Round(confidence*100) / 100
}
