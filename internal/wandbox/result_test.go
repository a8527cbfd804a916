package wandbox_test

import (
	"encoding/json"
	"strings"
	"testing"

	"wan/internal/testutil"
	"wan/internal/wandbox"
	appErr "wan/pkg/errors"
)

func TestReportPrefersProgramMessage(t *testing.T) {
	var result wandbox.Result
	testutil.MustUnmarshalJSON(t, []byte(`{"status":0,"program_message":"42\n","compiler_message":"warning: unused"}`), &result)

	var out strings.Builder
	if err := result.Report(&out); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	testutil.AssertEqual(t, out.String(), "42\n")
	testutil.AssertTrue(t, result.FromProgram(), "message should come from program")
}

func TestReportFallsBackToCompilerMessage(t *testing.T) {
	var result wandbox.Result
	testutil.MustUnmarshalJSON(t, []byte(`{"status":1,"compiler_message":"error: syntax"}`), &result)

	var out strings.Builder
	if err := result.Report(&out); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	testutil.AssertEqual(t, out.String(), "error: syntax")
	testutil.AssertEqual(t, result.ExitStatus(), 1)
}

func TestReportEmptyProgramMessageStillWins(t *testing.T) {
	var result wandbox.Result
	testutil.MustUnmarshalJSON(t, []byte(`{"status":7,"program_message":"","compiler_message":null}`), &result)

	var out strings.Builder
	if err := result.Report(&out); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	testutil.AssertEqual(t, out.String(), "")
	testutil.AssertEqual(t, result.ExitStatus(), 7)
}

func TestReportWithoutMessagesIsMalformed(t *testing.T) {
	var result wandbox.Result
	testutil.MustUnmarshalJSON(t, []byte(`{"status":0}`), &result)

	var out strings.Builder
	err := result.Report(&out)
	if !appErr.Is(err, appErr.MalformedResponse) {
		t.Fatalf("expected MalformedResponse, got %v", err)
	}
	testutil.AssertEqual(t, out.Len(), 0)
}

func TestResultStatusDecoding(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{"number", `{"status":3}`, 3, false},
		{"numeric string", `{"status":"139"}`, 139, false},
		{"negative", `{"status":-1}`, -1, false},
		{"missing", `{"program_message":"x"}`, 0, true},
		{"null", `{"status":null}`, 0, true},
		{"not numeric", `{"status":"abc"}`, 0, true},
		{"wrong type", `{"status":true}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result wandbox.Result
			err := json.Unmarshal([]byte(tt.body), &result)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got status %d", result.Status)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, result.Status, tt.want)
		})
	}
}

func TestResultReserializesStatusAsNumber(t *testing.T) {
	var result wandbox.Result
	testutil.MustUnmarshalJSON(t, []byte(`{"status":"0","signal":"Killed","permlink":"abc","url":"https://wandbox.org/permlink/abc"}`), &result)

	var fields map[string]json.RawMessage
	testutil.MustUnmarshalJSON(t, testutil.MustMarshalJSON(t, result), &fields)
	testutil.AssertEqual(t, string(fields["status"]), "0")
	testutil.AssertEqual(t, string(fields["signal"]), `"Killed"`)
	if _, ok := fields["program_message"]; ok {
		t.Error("program_message should be absent")
	}

	url, ok := result.PermlinkURL()
	testutil.AssertTrue(t, ok, "permlink url should be present")
	testutil.AssertEqual(t, url, "https://wandbox.org/permlink/abc")
}

func TestPermlinkResultDecoding(t *testing.T) {
	body := `{
		"parameter": {"code":"puts 1","compiler":"ruby-head","compiler-option-raw":"-w","created-at":"2016-01-01"},
		"result": {"status":"0","program_message":"1\n"}
	}`
	var stored wandbox.PermlinkResult
	testutil.MustUnmarshalJSON(t, []byte(body), &stored)

	testutil.AssertEqual(t, stored.Parameter.Compiler, "ruby-head")
	testutil.AssertEqual(t, *stored.Parameter.CreatedAt, "2016-01-01")
	testutil.AssertEqual(t, stored.Parameter.CompilerArgs()[0], "-w")

	var out strings.Builder
	if err := stored.Report(&out); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	testutil.AssertEqual(t, out.String(), "1\n")
}

func TestPermlinkResultRejectsErrorBody(t *testing.T) {
	var stored wandbox.PermlinkResult
	if err := json.Unmarshal([]byte(`{"error":"not found"}`), &stored); err == nil {
		t.Fatal("expected error for body without parameter/result")
	}
}
