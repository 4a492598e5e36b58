package stt

import "context"

// Provider transcribes one short audio chunk, used for live captions.
type Provider interface {
	Transcribe(ctx context.Context, audio []byte, language string) (text string, confidence float64, err error)
	Close() error
}
