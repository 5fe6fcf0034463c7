package wav

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// makeWAV builds a 16-bit mono PCM WAV with the given sample rate and
// number of frames.
func makeWAV(t *testing.T, sampleRate, frames int) []byte {
	t.Helper()
	data := make([]byte, frames*2)
	for i := 0; i < frames; i++ {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(i))
	}

	b := &Buffer{
		sampleRate:    sampleRate,
		numChannels:   1,
		bitsPerSample: 16,
		data:          data,
	}
	var buf bytes.Buffer
	if err := b.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeRoundTrip(t *testing.T) {
	raw := makeWAV(t, 16000, 16000) // exactly 1 second

	b, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.SampleRate() != 16000 {
		t.Errorf("sample rate = %d, want 16000", b.SampleRate())
	}
	if b.NumChannels() != 1 {
		t.Errorf("channels = %d, want 1", b.NumChannels())
	}
	if got := b.DurationMS(); got != 1000 {
		t.Errorf("duration = %dms, want 1000", got)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("definitely not audio")); err == nil {
		t.Fatal("expected error for non-WAV input")
	}
}

func TestSliceBounds(t *testing.T) {
	raw := makeWAV(t, 8000, 8000*25) // 25 seconds
	b, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	tests := []struct {
		name           string
		start, end     int64
		wantDurationMS int64
	}{
		{"full window", 0, 10000, 10000},
		{"middle window", 10000, 20000, 10000},
		{"clamped tail", 20000, 30000, 5000},
		{"past end", 30000, 40000, 0},
		{"negative start", -100, 1000, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := b.Slice(tt.start, tt.end)
			if got := s.DurationMS(); got != tt.wantDurationMS {
				t.Errorf("Slice(%d, %d) duration = %dms, want %dms",
					tt.start, tt.end, got, tt.wantDurationMS)
			}
		})
	}
}

func TestSliceContent(t *testing.T) {
	raw := makeWAV(t, 1000, 1000) // 1kHz, 1s, sample value == frame index
	b, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	s := b.Slice(250, 500)
	if len(s.data) != 250*2 {
		t.Fatalf("slice data = %d bytes, want %d", len(s.data), 250*2)
	}
	first := binary.LittleEndian.Uint16(s.data[:2])
	if first != 250 {
		t.Errorf("first sample = %d, want 250", first)
	}
}

func TestWriteFileAndLoad(t *testing.T) {
	raw := makeWAV(t, 16000, 16000*2)
	b, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	path := filepath.Join(t.TempDir(), "segment.wav")
	if err := b.Slice(0, 500).WriteFile(path); err != nil {
		t.Fatalf("write: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := loaded.DurationMS(); got != 500 {
		t.Errorf("duration = %dms, want 500", got)
	}

	// Overwriting in place must work (segment artifact is reused per run)
	if err := b.Slice(500, 1500).WriteFile(path); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	loaded, err = Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := loaded.DurationMS(); got != 1000 {
		t.Errorf("duration after overwrite = %dms, want 1000", got)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}
}
