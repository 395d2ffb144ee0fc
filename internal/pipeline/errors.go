package pipeline

import "github.com/pkg/errors"

// Failure taxonomy for one job. Every pipeline error is caught at the per-job
// boundary and becomes a failed ProgressRecord; nothing propagates to the
// scheduler or to other jobs.
var (
	// ErrQuotaExceeded is a reported outcome, not a fault: the owner has no
	// room for the upload.
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrTranscodeTimeout means the external encoder outlived its deadline
	// and was killed.
	ErrTranscodeTimeout = errors.New("transcode timed out")
)

// IsQuotaExceeded reports whether err is a quota denial anywhere in its chain.
func IsQuotaExceeded(err error) bool {
	return errors.Is(err, ErrQuotaExceeded)
}

// IsTranscodeTimeout reports whether err is a transcoder deadline kill.
func IsTranscodeTimeout(err error) bool {
	return errors.Is(err, ErrTranscodeTimeout)
}
