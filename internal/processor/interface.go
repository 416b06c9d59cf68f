package processor

import "context"

// Processor turns recordings on disk into meeting records on disk.
type Processor interface {
	// Process exports the recording into the output folder and archives it.
	Process(ctx context.Context, path string) error
	// Export writes the meeting record for path into destDir/<name>/.
	Export(ctx context.Context, path, destDir string) (Outputs, error)
}

// Outputs lists the files written by Export. Empty fields were not written.
type Outputs struct {
	Dir        string
	Document   string
	Transcript string
	Outline    string
	Followup   string
	Raw        string
}
