package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"

	"github.com/submaker/backend/internal/job"
	"github.com/submaker/backend/internal/speech"
	"github.com/submaker/backend/internal/translate"
)

// Service processes subtitle jobs from the queue, resolving engines and
// paths and mapping run progress onto the job record.
type Service struct {
	decoder         Decoder
	speech          *speech.Service
	translate       *translate.Service
	mediaPath       string
	workDir         string
	speechEngine    string
	translateEngine string
	segmentSeconds  int
}

func NewService(decoder Decoder, speechSvc *speech.Service, translateSvc *translate.Service,
	mediaPath, workDir, speechEngine, translateEngine string, segmentSeconds int) *Service {
	return &Service{
		decoder:         decoder,
		speech:          speechSvc,
		translate:       translateSvc,
		mediaPath:       mediaPath,
		workDir:         workDir,
		speechEngine:    speechEngine,
		translateEngine: translateEngine,
		segmentSeconds:  segmentSeconds,
	}
}

// HandleJob processes one subtitle generation job.
func (s *Service) HandleJob(ctx context.Context, j *job.Job, report job.Reporter) error {
	var params job.SubtitleParams
	if err := json.Unmarshal(j.Params, &params); err != nil {
		return fmt.Errorf("unmarshal params: %w", err)
	}

	engineName := params.SpeechEngine
	if engineName == "" {
		engineName = s.speechEngine
	}
	recognizer, err := s.speech.Engine(engineName)
	if err != nil {
		return err
	}

	// A translator is only needed for non-English targets; resolve lazily
	// so English-only deployments need no translation key.
	var translator translate.Translator
	if !englishTarget(params.TargetLang) {
		translator, err = s.translate.Engine(s.translateEngine)
		if err != nil {
			return err
		}
	}

	segmentSeconds := params.SegmentSeconds
	if segmentSeconds == 0 {
		segmentSeconds = s.segmentSeconds
	}

	sourcePath := j.FilePath
	if !filepath.IsAbs(sourcePath) {
		sourcePath = filepath.Join(s.mediaPath, sourcePath)
	}

	log.Printf("[pipeline] starting subtitle run: engine=%s file=%s language=%s segment=%ds",
		engineName, j.FilePath, params.TargetLang, segmentSeconds)

	runner := NewRunner(s.decoder, recognizer, translator, s.workDir)
	summary, err := runner.Run(ctx, Config{
		SourcePath:     sourcePath,
		TargetLang:     params.TargetLang,
		SegmentSeconds: segmentSeconds,
		OutputPath:     params.OutputPath,
	}, SinkFuncs{
		OnStatus:      func(m string) { report.Message(m) },
		OnProgress:    func(n int) { report.Progress(float64(n)) },
		OnMaxProgress: func(n int) { report.MaxProgress(float64(n)) },
	})
	if err != nil {
		return err
	}
	if summary.Cancelled {
		return nil
	}

	log.Printf("[pipeline] subtitle run complete: %s (%d/%d segments)",
		summary.OutputPath, summary.SegmentsSucceeded, summary.SegmentsTotal)

	resultJSON, _ := json.Marshal(summary)
	j.Result = resultJSON
	return nil
}
