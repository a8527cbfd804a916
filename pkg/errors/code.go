package errors

// ErrorCode represents a unique error identifier
type ErrorCode int

// Error code ranges allocation:
// 10000-10099: Common errors
// 10100-10199: Local environment errors (files, config, browser)
// 10200-10299: Remote exchange errors (network, http, response body)

const (
	// Success
	Success ErrorCode = 10000

	// Common (10000-10099)
	InternalError ErrorCode = 10001
	InvalidArgs   ErrorCode = 10002

	// Local environment (10100-10199)
	IoError      ErrorCode = 10100
	ConfigError  ErrorCode = 10101
	BrowserError ErrorCode = 10102

	// Remote exchange (10200-10299)
	NetworkError      ErrorCode = 10200
	HttpError         ErrorCode = 10201
	DecodeError       ErrorCode = 10202
	MalformedResponse ErrorCode = 10203
)

var errorMessages = map[ErrorCode]string{
	Success:       "Success",
	InternalError: "Internal error",
	InvalidArgs:   "Invalid arguments",

	IoError:      "File operation failed",
	ConfigError:  "Invalid configuration file",
	BrowserError: "Failed to open browser",

	NetworkError:      "Failed to reach remote service",
	HttpError:         "Remote service returned an error",
	DecodeError:       "Failed to decode response",
	MalformedResponse: "Malformed response",
}

// Message returns the default message for the error code
func (c ErrorCode) Message() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return "Unknown error"
}

// ExitStatus returns the process exit status for a locally detected failure.
// Every failure maps to 1; the remote program status is never derived from a code.
func (c ErrorCode) ExitStatus() int {
	if c == Success {
		return 0
	}
	return 1
}
