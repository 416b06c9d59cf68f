package upstream

import "context"

// Request is one call to the generative service: a fixed instruction plus
// the recorded audio.
type Request struct {
	Instruction string
	Audio       []byte
	MIMEType    string
	Filename    string
	// TranscriptSection names the section that holds the verbatim
	// transcript, if the instruction asks for one. Backends that transcribe
	// on their own fill it directly instead of asking the model for it.
	TranscriptSection string
}

// Generator sends a Request to the external service and returns its single
// text response. An empty response is returned as "" without error.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
