package ffmpeg

import (
	"encoding/json"
	"os/exec"
	"strconv"
)

type ProbeResult struct {
	Format  ProbeFormat   `json:"format"`
	Streams []ProbeStream `json:"streams"`
}

type ProbeFormat struct {
	Filename string `json:"filename"`
	Duration string `json:"duration"`
	Size     string `json:"size"`
	BitRate  string `json:"bit_rate"`
}

type ProbeStream struct {
	Index         int    `json:"index"`
	CodecName     string `json:"codec_name"`
	CodecType     string `json:"codec_type"` // video, audio, subtitle
	SampleRate    string `json:"sample_rate,omitempty"`
	Channels      int    `json:"channels,omitempty"`
	ChannelLayout string `json:"channel_layout,omitempty"`
}

type MediaInfo struct {
	Duration   string        `json:"duration"`
	Size       string        `json:"size"`
	BitRate    string        `json:"bit_rate"`
	AudioCodec string        `json:"audio_codec"`
	SampleRate string        `json:"sample_rate"`
	Channels   int           `json:"channels"`
	Streams    []ProbeStream `json:"streams"`
}

// DurationSeconds parses the probed duration; 0 when unknown.
func (m *MediaInfo) DurationSeconds() float64 {
	d, _ := strconv.ParseFloat(m.Duration, 64)
	return d
}

func (d *Decoder) Probe(filePath string) (*MediaInfo, error) {
	cmd := exec.Command(d.ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	var result ProbeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, err
	}

	info := &MediaInfo{
		Duration: result.Format.Duration,
		Size:     result.Format.Size,
		BitRate:  result.Format.BitRate,
		Streams:  result.Streams,
	}

	for _, s := range result.Streams {
		if s.CodecType == "audio" && info.AudioCodec == "" {
			info.AudioCodec = s.CodecName
			info.SampleRate = s.SampleRate
			info.Channels = s.Channels
		}
	}

	return info, nil
}
