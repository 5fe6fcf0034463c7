package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Decoder converts source media to the PCM WAV the recognition engines
// consume. It wraps the external ffmpeg binary, which must be on PATH (or
// pointed at via FFMPEG_PATH).
type Decoder struct {
	ffmpegPath  string
	ffprobePath string
}

func NewDecoder(ffmpegPath, ffprobePath string) *Decoder {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Decoder{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}
}

// Available reports whether the ffmpeg binary can be executed.
func (d *Decoder) Available() bool {
	cmd := exec.Command(d.ffmpegPath, "-version")
	return cmd.Run() == nil
}

// Decode converts inputPath to a 16kHz mono PCM WAV at outputPath,
// overwriting any existing file there.
func (d *Decoder) Decode(ctx context.Context, inputPath, outputPath string) error {
	cmd := exec.CommandContext(ctx, d.ffmpegPath,
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputPath,
		"-vn", // no video
		"-acodec", "pcm_s16le",
		"-ar", "16000", // 16kHz
		"-ac", "1", // mono
		"-y", // overwrite
		outputPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("ffmpeg: %s: %w", string(output), err)
	}
	return nil
}
