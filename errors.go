package piafwd

import (
	"fmt"
)

// ExitCode is the process exit status for a run. The values are fixed
// and scripts depend on them; new conditions get new codes.
type ExitCode int

const (
	// Success -- normal exit
	Success ExitCode = iota
	// InterfaceNotConnected -- vpn is not connected
	InterfaceNotConnected
	// CredentialsUnreadable -- credentials do not exist or are unreadable
	CredentialsUnreadable
	// CredentialsMalformed -- credentials are malformed json
	CredentialsMalformed
	// CredentialsIncomplete -- credentials are missing required keys
	CredentialsIncomplete
	// TooManyAddresses -- more than one address on the vpn interface
	TooManyAddresses
	// APIRequestFailed -- error posting to the port forward api
	APIRequestFailed
	// ResponseMalformed -- api response is not valid json
	ResponseMalformed
	// APIReportedError -- api answered with an error document
	APIReportedError
	// UnrecognizedResponse -- api answered with an unknown document
	UnrecognizedResponse
)

// Description returns the fixed explanation for an exit code.
func (e ExitCode) Description() string {
	switch e {
	case Success:
		return "success, normal exit"
	case InterfaceNotConnected:
		return "VPN is not connected"
	case CredentialsUnreadable:
		return "credentials file cannot be opened"
	case CredentialsMalformed:
		return "JSON credentials are malformed"
	case CredentialsIncomplete:
		return "credentials file is missing required keys"
	case TooManyAddresses:
		return "found more addresses than expected"
	case APIRequestFailed:
		return "error posting to API endpoint"
	case ResponseMalformed:
		return "API JSON response is malformed"
	case APIReportedError:
		return "API returned an error response"
	case UnrecognizedResponse:
		return "API returned an unknown response"
	}
	return "unknown exit status"
}

// Failure is an error that carries the exit status for the run.
// Components return a Failure up the stack; only the cli process exits.
type Failure struct {
	Code    ExitCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Cause == nil {
		return f.Message
	}
	return f.Message + ": " + f.Cause.Error()
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (f *Failure) Unwrap() error {
	return f.Cause
}

// Fail builds a Failure with a formatted message.
func Fail(code ExitCode, cause error, format string, args ...any) *Failure {
	return &Failure{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}
