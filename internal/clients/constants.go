package clients

const (
	ANALYZE_EMOTION_PATH = "/analyze-emotion"
	EMOTIONS_PATH        = "/emotions"
	HEALTH_PATH          = "/"
	USER_AGENT           = "emotion-reflection-client/1.0 (+https://github.com/spacesedan/emotion-reflection)"
	MAX_RESPONSE_BYTES   = 1 << 20
)
