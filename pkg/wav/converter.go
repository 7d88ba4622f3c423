package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const headerSize = 44

// ErrNotWAV is returned when data does not start with a canonical PCM WAV header.
var ErrNotWAV = errors.New("not a PCM WAV stream")

// Header describes a canonical 16-bit PCM WAV stream.
type Header struct {
	Channels   int
	SampleRate int
	DataSize   int
}

// Duration returns the playback length of the data chunk in seconds.
func (h Header) Duration() float64 {
	bytesPerSecond := h.SampleRate * h.Channels * 2
	if bytesPerSecond == 0 {
		return 0
	}
	return float64(h.DataSize) / float64(bytesPerSecond)
}

// Write writes pcmData (16-bit little-endian samples) to w as a WAV stream.
func Write(w io.Writer, pcmData []byte, channels int, sampleRate int) error {
	fields := []interface{}{
		[]byte("RIFF"),
		uint32(len(pcmData) + 36),
		[]byte("WAVE"),
		// "fmt " chunk
		[]byte("fmt "),
		uint32(16),
		uint16(1),
		uint16(channels),
		uint32(sampleRate),
		uint32(sampleRate * channels * 2),
		uint16(channels * 2),
		uint16(16),
		// "data" chunk
		[]byte("data"),
		uint32(len(pcmData)),
	}
	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return fmt.Errorf("failed to write WAV header: %w", err)
		}
	}
	if _, err := w.Write(pcmData); err != nil {
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	return nil
}

// WriteFile writes pcmData to path as a WAV file.
func WriteFile(path string, pcmData []byte, channels int, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create WAV file: %w", err)
	}
	if err := Write(f, pcmData, channels, sampleRate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadHeader parses the canonical 44-byte header at the start of r.
func ReadHeader(r io.Reader) (Header, error) {
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrNotWAV, err)
	}
	if string(buf[0:4]) != "RIFF" || string(buf[8:12]) != "WAVE" || string(buf[12:16]) != "fmt " {
		return Header{}, ErrNotWAV
	}
	if binary.LittleEndian.Uint16(buf[20:22]) != 1 || binary.LittleEndian.Uint16(buf[34:36]) != 16 {
		return Header{}, fmt.Errorf("%w: only 16-bit PCM is supported", ErrNotWAV)
	}
	return Header{
		Channels:   int(binary.LittleEndian.Uint16(buf[22:24])),
		SampleRate: int(binary.LittleEndian.Uint32(buf[24:28])),
		DataSize:   int(binary.LittleEndian.Uint32(buf[40:44])),
	}, nil
}
