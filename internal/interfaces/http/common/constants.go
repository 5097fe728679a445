package common

const (
	// MaxSubmissionBody limits JSON request bodies for the submit endpoint.
	MaxSubmissionBody = 1 << 20
)
