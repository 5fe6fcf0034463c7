package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/submaker/backend/internal/api"
	"github.com/submaker/backend/internal/config"
	"github.com/submaker/backend/internal/db"
	"github.com/submaker/backend/internal/ffmpeg"
	"github.com/submaker/backend/internal/job"
	"github.com/submaker/backend/internal/pipeline"
	"github.com/submaker/backend/internal/speech"
	"github.com/submaker/backend/internal/translate"
)

func main() {
	cfg := config.Load()

	// One-shot mode: submaker <audio-file> <language-code> [segment-seconds]
	if len(os.Args) > 1 {
		os.Exit(runOnce(cfg, os.Args[1:]))
	}

	// Ensure data directory exists
	os.MkdirAll(cfg.DataPath, 0755)

	// Initialize database
	database, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	decoder := ffmpeg.NewDecoder(cfg.FFmpegPath, cfg.FFprobePath)
	if !decoder.Available() {
		log.Printf("WARNING: ffmpeg not found at %q, subtitle jobs will fail until it is installed", cfg.FFmpegPath)
	}

	speechSvc := speech.NewService(cfg.WhisperURL, cfg.OpenAIKey)
	translateSvc := translate.NewService(cfg.DeepLKey, cfg.OpenAIKey)

	// Job queue with the subtitle pipeline as its only handler
	jobQueue := job.NewJobQueue(database.DB())
	defer jobQueue.Stop()

	pipelineSvc := pipeline.NewService(decoder, speechSvc, translateSvc,
		cfg.MediaPath, cfg.DataPath, cfg.SpeechEngine, cfg.TranslateEngine, cfg.SegmentSeconds)
	jobQueue.RegisterHandler(job.JobSubtitle, pipelineSvc.HandleJob)

	// Create router
	router := api.NewRouter(cfg, decoder, jobQueue)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting server on %s", addr)
	log.Printf("Media path: %s", cfg.MediaPath)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		jobQueue.Stop()
		database.Close()
		os.Exit(0)
	}()

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// runOnce generates subtitles for a single file without the server or the
// job queue, printing progress to the console. Ctrl-C stops at the next
// segment boundary and keeps what was written so far.
func runOnce(cfg *config.Config, args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: submaker <audio-file> <language-code> [segment-seconds]")
		fmt.Fprintln(os.Stderr, "example: submaker interview.mp3 ta-IN 10")
		return 2
	}

	sourcePath := args[0]
	targetLang := args[1]
	segmentSeconds := cfg.SegmentSeconds
	if len(args) > 2 {
		n, err := strconv.Atoi(args[2])
		if err != nil || n < 1 {
			fmt.Fprintf(os.Stderr, "invalid segment duration %q\n", args[2])
			return 2
		}
		segmentSeconds = n
	}

	decoder := ffmpeg.NewDecoder(cfg.FFmpegPath, cfg.FFprobePath)
	speechSvc := speech.NewService(cfg.WhisperURL, cfg.OpenAIKey)
	translateSvc := translate.NewService(cfg.DeepLKey, cfg.OpenAIKey)

	recognizer, err := speechSvc.Engine(cfg.SpeechEngine)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	// The runner rejects a missing translator only when the target needs one.
	translator, _ := translateSvc.Engine(cfg.TranslateEngine)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := pipeline.NewRunner(decoder, recognizer, translator, os.TempDir())
	summary, err := runner.Run(ctx, pipeline.Config{
		SourcePath:     sourcePath,
		TargetLang:     targetLang,
		SegmentSeconds: segmentSeconds,
	}, pipeline.SinkFuncs{
		OnStatus:      func(m string) { fmt.Println(m) },
		OnProgress:    func(n int) { fmt.Printf("segment %d done\n", n) },
		OnMaxProgress: func(n int) { fmt.Printf("%d segments to process\n", n) },
		OnError:       func(m string) { fmt.Fprintln(os.Stderr, m) },
		OnComplete:    func(p string) { fmt.Printf("subtitles written to %s\n", p) },
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if summary.Cancelled {
		return 130
	}
	return 0
}
