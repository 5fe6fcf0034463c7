package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port            int
	MediaPath       string
	DataPath        string
	DBPath          string
	FFmpegPath      string
	FFprobePath     string
	WhisperURL      string
	OpenAIKey       string
	DeepLKey        string
	SpeechEngine    string
	TranslateEngine string
	SegmentSeconds  int
	CORSOrigins     []string
}

func Load() *Config {
	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	dataPath := getEnv("DATA_PATH", "./data")

	segmentSeconds, _ := strconv.Atoi(getEnv("SEGMENT_SECONDS", "10"))
	if segmentSeconds < 1 {
		segmentSeconds = 10
	}

	// CORS origins: comma-separated list or "*" (default)
	corsOrigins := []string{"*"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		corsOrigins = make([]string, 0, len(origins))
		for _, o := range origins {
			o = strings.TrimSpace(o)
			if o != "" {
				corsOrigins = append(corsOrigins, o)
			}
		}
	}

	return &Config{
		Port:            port,
		MediaPath:       getEnv("MEDIA_PATH", "./media"),
		DataPath:        dataPath,
		DBPath:          getEnv("DB_PATH", dataPath+"/submaker.db"),
		FFmpegPath:      getEnv("FFMPEG_PATH", "ffmpeg"),
		FFprobePath:     getEnv("FFPROBE_PATH", "ffprobe"),
		WhisperURL:      os.Getenv("WHISPER_URL"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		DeepLKey:        os.Getenv("DEEPL_API_KEY"),
		SpeechEngine:    getEnv("SPEECH_ENGINE", "whisper.cpp"),
		TranslateEngine: getEnv("TRANSLATE_ENGINE", "deepl"),
		SegmentSeconds:  segmentSeconds,
		CORSOrigins:     corsOrigins,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
