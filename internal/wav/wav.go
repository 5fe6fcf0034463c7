package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Buffer holds a fully decoded PCM waveform. It is read-only after Load;
// Slice returns views that share the underlying sample data.
type Buffer struct {
	sampleRate    int
	numChannels   int
	bitsPerSample int
	data          []byte
}

// New constructs a Buffer from raw PCM frames.
func New(sampleRate, numChannels, bitsPerSample int, data []byte) *Buffer {
	return &Buffer{
		sampleRate:    sampleRate,
		numChannels:   numChannels,
		bitsPerSample: bitsPerSample,
		data:          data,
	}
}

// Load reads a RIFF/WAVE file produced by the decode step. Only
// uncompressed PCM is accepted, which is what ffmpeg emits for pcm_s16le.
func Load(path string) (*Buffer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

// Decode parses WAV bytes into a Buffer.
func Decode(raw []byte) (*Buffer, error) {
	if len(raw) < 12 || string(raw[0:4]) != "RIFF" || string(raw[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a RIFF/WAVE file")
	}

	b := &Buffer{}
	pos := 12
	for pos+8 <= len(raw) {
		chunkID := string(raw[pos : pos+4])
		chunkLen := int(binary.LittleEndian.Uint32(raw[pos+4 : pos+8]))
		body := pos + 8
		if body+chunkLen > len(raw) {
			chunkLen = len(raw) - body
		}

		switch chunkID {
		case "fmt ":
			if chunkLen < 16 {
				return nil, fmt.Errorf("fmt chunk too short: %d bytes", chunkLen)
			}
			format := binary.LittleEndian.Uint16(raw[body : body+2])
			if format != 1 {
				return nil, fmt.Errorf("unsupported audio format %d (want PCM)", format)
			}
			b.numChannels = int(binary.LittleEndian.Uint16(raw[body+2 : body+4]))
			b.sampleRate = int(binary.LittleEndian.Uint32(raw[body+4 : body+8]))
			b.bitsPerSample = int(binary.LittleEndian.Uint16(raw[body+14 : body+16]))
		case "data":
			b.data = raw[body : body+chunkLen]
		}

		// Chunks are word-aligned
		pos = body + chunkLen
		if chunkLen%2 == 1 {
			pos++
		}
	}

	if b.sampleRate == 0 || b.numChannels == 0 || b.bitsPerSample == 0 {
		return nil, fmt.Errorf("missing or invalid fmt chunk")
	}
	if b.data == nil {
		return nil, fmt.Errorf("missing data chunk")
	}
	return b, nil
}

func (b *Buffer) SampleRate() int  { return b.sampleRate }
func (b *Buffer) NumChannels() int { return b.numChannels }

// frameSize is the byte width of one sample frame across all channels.
func (b *Buffer) frameSize() int {
	return b.numChannels * b.bitsPerSample / 8
}

// DurationMS returns the total length of the waveform in milliseconds.
func (b *Buffer) DurationMS() int64 {
	frames := int64(len(b.data)) / int64(b.frameSize())
	return frames * 1000 / int64(b.sampleRate)
}

// Slice returns the [startMS, endMS) window of the waveform. Bounds are
// clamped to the buffer; the returned Buffer shares sample memory.
func (b *Buffer) Slice(startMS, endMS int64) *Buffer {
	if startMS < 0 {
		startMS = 0
	}
	total := b.DurationMS()
	if endMS > total {
		endMS = total
	}
	if endMS < startMS {
		endMS = startMS
	}

	fs := int64(b.frameSize())
	startByte := startMS * int64(b.sampleRate) / 1000 * fs
	endByte := endMS * int64(b.sampleRate) / 1000 * fs

	return &Buffer{
		sampleRate:    b.sampleRate,
		numChannels:   b.numChannels,
		bitsPerSample: b.bitsPerSample,
		data:          b.data[startByte:endByte],
	}
}

// Encode writes the buffer as a canonical 44-byte-header WAV stream.
func (b *Buffer) Encode(w io.Writer) error {
	byteRate := b.sampleRate * b.frameSize()

	var hdr bytes.Buffer
	hdr.WriteString("RIFF")
	binary.Write(&hdr, binary.LittleEndian, uint32(36+len(b.data)))
	hdr.WriteString("WAVE")
	hdr.WriteString("fmt ")
	binary.Write(&hdr, binary.LittleEndian, uint32(16))
	binary.Write(&hdr, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&hdr, binary.LittleEndian, uint16(b.numChannels))
	binary.Write(&hdr, binary.LittleEndian, uint32(b.sampleRate))
	binary.Write(&hdr, binary.LittleEndian, uint32(byteRate))
	binary.Write(&hdr, binary.LittleEndian, uint16(b.frameSize()))
	binary.Write(&hdr, binary.LittleEndian, uint16(b.bitsPerSample))
	hdr.WriteString("data")
	binary.Write(&hdr, binary.LittleEndian, uint32(len(b.data)))

	if _, err := w.Write(hdr.Bytes()); err != nil {
		return err
	}
	_, err := w.Write(b.data)
	return err
}

// WriteFile serializes the buffer to a WAV file, replacing any existing
// file at path.
func (b *Buffer) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := b.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
