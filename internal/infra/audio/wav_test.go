package audio_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"interview-coach/internal/infra/audio"
)

func TestEncodeWAV(t *testing.T) {
	samples := []int16{0, 1000, -1000, 32767}
	wav := audio.EncodeWAV(samples, 16000)

	if !bytes.Equal(wav[:4], []byte("RIFF")) || !bytes.Equal(wav[8:12], []byte("WAVE")) {
		t.Fatalf("missing RIFF/WAVE markers: % x", wav[:12])
	}
	if len(wav) != 44+len(samples)*2 {
		t.Errorf("length: got %d, want %d", len(wav), 44+len(samples)*2)
	}

	rate := binary.LittleEndian.Uint32(wav[24:28])
	if rate != 16000 {
		t.Errorf("sample rate: got %d, want 16000", rate)
	}

	dataSize := binary.LittleEndian.Uint32(wav[40:44])
	if int(dataSize) != len(samples)*2 {
		t.Errorf("data size: got %d, want %d", dataSize, len(samples)*2)
	}
}

func TestSamplesFromPCM(t *testing.T) {
	pcm := []byte{0x00, 0x00, 0xE8, 0x03, 0x18, 0xFC}
	samples := audio.SamplesFromPCM(pcm)

	want := []int16{0, 1000, -1000}
	if len(samples) != len(want) {
		t.Fatalf("length: got %d, want %d", len(samples), len(want))
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("sample %d: got %d, want %d", i, samples[i], want[i])
		}
	}
}

func TestSamplesFromPCM_DropsTrailingByte(t *testing.T) {
	samples := audio.SamplesFromPCM([]byte{0x01, 0x00, 0xFF})
	if len(samples) != 1 || samples[0] != 1 {
		t.Errorf("samples: got %v, want [1]", samples)
	}
}
