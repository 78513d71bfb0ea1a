package drawing

import "errors"

var (
	// ErrNoFiles rejects an upload request carrying no files at all.
	ErrNoFiles = errors.New("no files uploaded")

	// ErrArtifactMissing means the record exists but neither the original
	// nor the display artifact survives on disk.
	ErrArtifactMissing = errors.New("artifact file missing")
)
