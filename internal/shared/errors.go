package shared

import (
	"errors"
	"fmt"
)

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrMissingStore  = fmt.Errorf("no song database selected")
	ErrStoreNotFound = fmt.Errorf("song database not found")
	ErrNoSources     = fmt.Errorf("no source files selected")

	// Extraction errors
	ErrUnsupportedFormat = fmt.Errorf("unsupported presentation format")
	ErrCorruptSource     = fmt.Errorf("corrupt presentation")
	ErrNoLyrics          = fmt.Errorf("no lyrics found")
	ErrConverter         = fmt.Errorf("presentation converter failed")

	// Storage errors
	ErrSongNotFound = fmt.Errorf("song not found")
	ErrBackupFailed = fmt.Errorf("backup failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

// ExtractionError reports an unreadable, unsupported or corrupt source file.
// It is recorded per file and never aborts a batch.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// NewExtractionError wraps err for path, leaving an existing [ExtractionError] as is.
func NewExtractionError(path string, err error) error {
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return err
	}
	return &ExtractionError{Path: path, Err: err}
}

// StorageError reports a constraint or I/O failure while writing a song.
type StorageError struct {
	Op   string
	Name string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Name, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ConfigurationError is a pre-flight failure that prevents a batch from starting.
type ConfigurationError struct {
	Reason error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %v", ErrInvalidConfig, e.Reason)
}

// Unwrap exposes both [ErrInvalidConfig] and the specific reason.
func (e *ConfigurationError) Unwrap() []error {
	return []error{ErrInvalidConfig, e.Reason}
}
