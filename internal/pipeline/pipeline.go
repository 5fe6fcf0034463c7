// Package pipeline drives one subtitle run: decode the source, slice it
// into fixed-length segments, transcribe (and optionally translate) each
// segment, and append the results to an SRT file as they complete.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/submaker/backend/internal/speech"
	"github.com/submaker/backend/internal/srt"
	"github.com/submaker/backend/internal/translate"
	"github.com/submaker/backend/internal/wav"
)

// Fatal run errors. Per-segment failures are never fatal; they surface as
// outcomes and the run continues.
var (
	ErrInputNotFound = errors.New("input file not found")
	ErrDecodeFailed  = errors.New("audio decode failed")
	ErrOutputWrite   = errors.New("output write failed")
)

// Outcome classifies what happened to one segment.
type Outcome string

const (
	OutcomeRecorded         Outcome = "recorded"
	OutcomeNoSpeech         Outcome = "no_speech"
	OutcomeExtractFailed    Outcome = "extract_failed"
	OutcomeTranscribeFailed Outcome = "transcribe_failed"
	OutcomeTranslateFailed  Outcome = "translate_failed"
)

// Config is immutable for the duration of one run.
type Config struct {
	SourcePath     string
	TargetLang     string // locale-qualified code, e.g. "ta-IN"
	SegmentSeconds int
	OutputPath     string // derived from SourcePath when empty
}

// Validate checks the static parts of the configuration.
func (c *Config) Validate() error {
	if c.SourcePath == "" {
		return fmt.Errorf("source path is required")
	}
	if c.TargetLang == "" {
		return fmt.Errorf("target language is required")
	}
	if c.SegmentSeconds < 1 {
		return fmt.Errorf("segment length must be at least 1 second")
	}
	return nil
}

// DefaultOutputPath places the SRT next to the source, with the same base
// name.
func DefaultOutputPath(sourcePath string) string {
	base := strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath))
	return base + ".srt"
}

// Summary is the terminal result of one run.
type Summary struct {
	SegmentsTotal     int    `json:"segments_total"`
	SegmentsAttempted int    `json:"segments_attempted"`
	SegmentsSucceeded int    `json:"segments_succeeded"`
	NoSpeech          int    `json:"no_speech"`
	Failed            int    `json:"failed"`
	OutputPath        string `json:"output_path"`
	Cancelled         bool   `json:"cancelled"`
}

// Decoder is the external decode collaborator.
type Decoder interface {
	Available() bool
	Decode(ctx context.Context, inputPath, outputPath string) error
}

// Runner owns one run at a time. The segment loop is strictly sequential;
// cancellation is observed only at segment boundaries, never mid-call.
type Runner struct {
	decoder    Decoder
	recognizer speech.Recognizer
	translator translate.Translator
	workDir    string
}

// NewRunner builds a runner. translator may be nil when only English
// targets will be processed.
func NewRunner(decoder Decoder, recognizer speech.Recognizer, translator translate.Translator, workDir string) *Runner {
	return &Runner{
		decoder:    decoder,
		recognizer: recognizer,
		translator: translator,
		workDir:    workDir,
	}
}

// englishTarget reports whether the target language's primary subtag is a
// form of English, in which case the transcript is used verbatim.
func englishTarget(lang string) bool {
	return len(lang) >= 2 && strings.EqualFold(lang[:2], "en")
}

// primarySubtag returns the language code portion before the first
// separator, the destination requested from the translation engine.
func primarySubtag(code string) string {
	for i := 0; i < len(code); i++ {
		if code[i] == '-' || code[i] == '_' {
			return code[:i]
		}
	}
	return code
}

// Run executes the full pipeline. Fatal conditions are reported once via
// sink.Error and returned; per-segment conditions are reported via
// sink.Status and the run continues. The returned Summary is valid even
// on error.
func (r *Runner) Run(ctx context.Context, cfg Config, sink Sink) (*Summary, error) {
	summary := &Summary{}

	if err := cfg.Validate(); err != nil {
		sink.Error(err.Error())
		return summary, err
	}

	if _, err := os.Stat(cfg.SourcePath); err != nil {
		err = fmt.Errorf("%w: %s", ErrInputNotFound, cfg.SourcePath)
		sink.Error(err.Error())
		return summary, err
	}

	if !englishTarget(cfg.TargetLang) && r.translator == nil {
		err := fmt.Errorf("target language %q requires a translation engine, none configured", cfg.TargetLang)
		sink.Error(err.Error())
		return summary, err
	}

	if !r.decoder.Available() {
		err := fmt.Errorf("%w: ffmpeg not found, install it and add it to your PATH", ErrDecodeFailed)
		sink.Error(err.Error())
		return summary, err
	}

	outputPath := cfg.OutputPath
	if outputPath == "" {
		outputPath = DefaultOutputPath(cfg.SourcePath)
	}
	summary.OutputPath = outputPath

	// Decode the whole source once; remove any stale artifact from a
	// previous run first.
	wavPath := filepath.Join(r.workDir, "transcript.wav")
	os.Remove(wavPath)

	sink.Status("Converting audio file to WAV format...")
	if err := r.decoder.Decode(ctx, cfg.SourcePath, wavPath); err != nil {
		err = fmt.Errorf("%w: %v", ErrDecodeFailed, err)
		sink.Error(err.Error())
		return summary, err
	}

	segPath := filepath.Join(r.workDir, "segment.wav")
	defer func() {
		os.Remove(segPath)
		os.Remove(wavPath)
	}()

	sink.Status("Loading audio file...")
	buf, err := wav.Load(wavPath)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrDecodeFailed, err)
		sink.Error(err.Error())
		return summary, err
	}

	totalMS := buf.DurationMS()
	segments := ComputeSegments(totalMS, cfg.SegmentSeconds)
	summary.SegmentsTotal = len(segments)

	sink.Status(fmt.Sprintf("Audio length: %.2f seconds", float64(totalMS)/1000))
	sink.Status(fmt.Sprintf("Processing %d segments...", len(segments)))
	sink.MaxProgress(len(segments))

	writer, err := srt.NewWriter(outputPath)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrOutputWrite, err)
		sink.Error(err.Error())
		return summary, err
	}
	defer writer.Close()

	for _, seg := range segments {
		// Cooperative cancellation: observed only between segments.
		if ctx.Err() != nil {
			summary.Cancelled = true
			sink.Status("Operation cancelled by user.")
			break
		}

		summary.SegmentsAttempted++
		outcome, record := r.processSegment(ctx, buf, seg, segPath, cfg.TargetLang, sink)

		switch outcome {
		case OutcomeRecorded:
			if err := writer.Append(*record); err != nil {
				err = fmt.Errorf("%w: %v", ErrOutputWrite, err)
				sink.Error(err.Error())
				return summary, err
			}
			summary.SegmentsSucceeded++
			sink.Status(fmt.Sprintf("Processed segment %d/%d", seg.Ordinal, len(segments)))
		case OutcomeNoSpeech:
			summary.NoSpeech++
		default:
			summary.Failed++
		}

		sink.Progress(seg.Ordinal)
	}

	if !summary.Cancelled {
		sink.Status(fmt.Sprintf("Complete! Successfully processed %d out of %d segments.",
			summary.SegmentsSucceeded, summary.SegmentsTotal))
	}
	sink.Complete(outputPath)
	return summary, nil
}

// processSegment extracts one window, transcribes it, and translates the
// transcript when the target is not English. It never fails the run: any
// problem is reported through the sink and folded into the outcome.
func (r *Runner) processSegment(ctx context.Context, buf *wav.Buffer, seg Segment, segPath, targetLang string, sink Sink) (Outcome, *srt.Record) {
	if err := buf.Slice(seg.StartMS, seg.EndMS).WriteFile(segPath); err != nil {
		sink.Status(fmt.Sprintf("Error extracting segment %d: %v", seg.Ordinal, err))
		return OutcomeExtractFailed, nil
	}

	text, err := r.recognizer.Recognize(ctx, speech.RecognizeRequest{
		AudioPath: segPath,
		Language:  targetLang,
	})
	if errors.Is(err, speech.ErrNoSpeech) {
		sink.Status(fmt.Sprintf("No speech detected in segment %d", seg.Ordinal))
		return OutcomeNoSpeech, nil
	}
	if err != nil {
		sink.Status(fmt.Sprintf("Error processing segment %d: %v", seg.Ordinal, err))
		return OutcomeTranscribeFailed, nil
	}

	if !englishTarget(targetLang) {
		translated, err := r.translator.Translate(ctx, translate.Request{
			Text:       text,
			SourceLang: "auto",
			TargetLang: primarySubtag(targetLang),
		})
		if err != nil {
			log.Printf("[pipeline] segment %d translation failed: %v", seg.Ordinal, err)
			sink.Status(fmt.Sprintf("Error translating segment %d: %v", seg.Ordinal, err))
			return OutcomeTranslateFailed, nil
		}
		text = translated
	}

	return OutcomeRecorded, &srt.Record{
		Ordinal: seg.Ordinal,
		StartMS: seg.StartMS,
		EndMS:   seg.EndMS,
		Text:    text,
	}
}
