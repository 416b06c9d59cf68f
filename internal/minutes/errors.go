package minutes

import "errors"

var (
	ErrNoAudio            = errors.New("no audio to process")
	ErrUpstream           = errors.New("transcription service failed")
	ErrEmptyTranscription = errors.New("could not recognise any speech in the recording")
	ErrNoSections         = errors.New("response did not contain any expected section")
)

// ParseError reports a response in which every expected section was absent.
// Raw keeps the response for diagnosis.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return ErrNoSections.Error()
}

func (e *ParseError) Unwrap() error {
	return ErrNoSections
}
