package extraction

import "errors"

// Terminal error kinds for an extraction run. Submission and transport
// failures carry the underlying error wrapped with context instead.
var (
	// ErrMissingCredential means no API key is configured. It aborts the run
	// before any network call.
	ErrMissingCredential = errors.New("api key is not configured")

	// ErrRemoteJobFailed means the remote service reported the job as failed.
	ErrRemoteJobFailed = errors.New("remote job reported failure")

	// ErrRemoteJobTimedOut means polling attempts were exhausted without a
	// terminal status.
	ErrRemoteJobTimedOut = errors.New("remote job did not finish in time")
)
