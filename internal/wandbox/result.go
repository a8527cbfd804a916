package wandbox

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	appErr "wan/pkg/errors"
)

// Result is the outcome of a compile submission.
type Result struct {
	Status          int     `json:"status"`
	Signal          *string `json:"signal,omitempty"`
	CompilerOutput  *string `json:"compiler_output,omitempty"`
	CompilerError   *string `json:"compiler_error,omitempty"`
	CompilerMessage *string `json:"compiler_message,omitempty"`
	ProgramOutput   *string `json:"program_output,omitempty"`
	ProgramError    *string `json:"program_error,omitempty"`
	ProgramMessage  *string `json:"program_message,omitempty"`
	Permlink        *string `json:"permlink,omitempty"`
	URL             *string `json:"url,omitempty"`
}

// UnmarshalJSON requires status and accepts it as a number or a numeric string.
func (r *Result) UnmarshalJSON(data []byte) error {
	type plain Result
	var raw struct {
		plain
		Status json.RawMessage `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	status, err := parseStatus(raw.Status)
	if err != nil {
		return err
	}
	*r = Result(raw.plain)
	r.Status = status
	return nil
}

func parseStatus(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, fmt.Errorf("status is missing")
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("status must be a number: %s", raw)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("status must be a number: %q", s)
	}
	return n, nil
}

// ExitStatus is the remote program status, used as the process exit status.
func (r Result) ExitStatus() int {
	return r.Status
}

// Message picks what to show: program_message when present, otherwise
// compiler_message. Both absent is a malformed response.
func (r Result) Message() (string, error) {
	if r.ProgramMessage != nil {
		return *r.ProgramMessage, nil
	}
	if r.CompilerMessage != nil {
		return *r.CompilerMessage, nil
	}
	return "", appErr.Malformed("compiler_message")
}

// FromProgram reports whether Message comes from the run phase.
func (r Result) FromProgram() bool {
	return r.ProgramMessage != nil
}

// Report writes the chosen message unchanged.
func (r Result) Report(w io.Writer) error {
	msg, err := r.Message()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, msg); err != nil {
		return appErr.Wrap(err, appErr.IoError)
	}
	return nil
}

// PermlinkURL returns the fully qualified permalink URL when the service sent one.
func (r Result) PermlinkURL() (string, bool) {
	if r.URL == nil || *r.URL == "" {
		return "", false
	}
	return *r.URL, true
}

// PermlinkResult is a stored submission fetched by link.
type PermlinkResult struct {
	Parameter Parameter `json:"parameter"`
	Result    Result    `json:"result"`
}

// UnmarshalJSON rejects bodies without a result object, e.g. error documents.
func (p *PermlinkResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		Parameter *Parameter `json:"parameter"`
		Result    *Result    `json:"result"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Parameter == nil {
		return fmt.Errorf("parameter is missing")
	}
	if raw.Result == nil {
		return fmt.Errorf("result is missing")
	}
	p.Parameter = *raw.Parameter
	p.Result = *raw.Result
	return nil
}

// Report renders the stored result with the same rule as Result.Report.
func (p PermlinkResult) Report(w io.Writer) error {
	return p.Result.Report(w)
}
