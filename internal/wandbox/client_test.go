package wandbox_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"wan/internal/testutil"
	"wan/internal/wandbox"
	appErr "wan/pkg/errors"

	"github.com/klauspost/compress/gzhttp"
)

func TestCompileEndToEnd(t *testing.T) {
	stub := testutil.NewStubServer(t, nil)
	stub.OnCompile(http.StatusOK, `{"status":7,"program_message":"","compiler_message":null}`)

	client := wandbox.NewClient(stub.URL)
	result, err := client.Compile(context.Background(), wandbox.NewParameter("int main(){return 7;}", "gcc-head"))
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	testutil.AssertEqual(t, result.ExitStatus(), 7)

	req := stub.LastRequest(t)
	testutil.AssertEqual(t, req.Method, http.MethodPost)
	testutil.AssertEqual(t, req.Path, "/api/compile.json")
	testutil.AssertEqual(t, req.ContentType, "application/json")
	testutil.AssertEqual(t, string(req.Body), `{"code":"int main(){return 7;}","compiler":"gcc-head"}`)
}

func TestCompileSendsOptionalFields(t *testing.T) {
	stub := testutil.NewStubServer(t, nil)
	stub.OnCompile(http.StatusOK, `{"status":"0","program_message":"ok\n","permlink":"xyz","url":"https://wandbox.org/permlink/xyz"}`)

	param := wandbox.NewParameter("code", "gcc-head").
		WithCompilerArgs([]string{"-O2", "-Wall"}).
		WithStdin("in").
		SavePermalink(true)
	result, err := wandbox.NewClient(stub.URL + "/").Compile(context.Background(), param)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	url, ok := result.PermlinkURL()
	testutil.AssertTrue(t, ok, "permlink url expected")
	testutil.AssertEqual(t, url, "https://wandbox.org/permlink/xyz")

	var sent map[string]interface{}
	testutil.MustUnmarshalJSON(t, stub.LastRequest(t).Body, &sent)
	testutil.AssertEqual(t, sent["compiler-option-raw"], "-O2\n-Wall")
	testutil.AssertEqual(t, sent["stdin"], "in")
	testutil.AssertEqual(t, sent["save"], true)
}

func TestCompileErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   appErr.ErrorCode
	}{
		{"invalid json", http.StatusOK, `<html>oops</html>`, appErr.DecodeError},
		{"missing status", http.StatusOK, `{"program_message":"x"}`, appErr.DecodeError},
		{"server error with html", http.StatusInternalServerError, `Internal Server Error`, appErr.HttpError},
		{"server error with error json", http.StatusBadRequest, `{"error":"compiler not found"}`, appErr.HttpError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := testutil.NewStubServer(t, nil)
			stub.OnCompile(tt.status, tt.body)

			_, err := wandbox.NewClient(stub.URL).Compile(context.Background(), wandbox.NewParameter("", "gcc-head"))
			if !appErr.Is(err, tt.want) {
				t.Fatalf("expected code %d, got %v", tt.want, err)
			}
		})
	}
}

func TestCompileNonSuccessWithValidResult(t *testing.T) {
	stub := testutil.NewStubServer(t, nil)
	stub.OnCompile(http.StatusInternalServerError, `{"status":1,"compiler_message":"internal"}`)

	result, err := wandbox.NewClient(stub.URL).Compile(context.Background(), wandbox.NewParameter("", "gcc-head"))
	if err != nil {
		t.Fatalf("a parsable result should be accepted: %v", err)
	}
	testutil.AssertEqual(t, result.ExitStatus(), 1)
}

func TestCompileNetworkError(t *testing.T) {
	stub := testutil.NewStubServer(t, nil)
	baseURL := stub.URL
	stub.Close()

	_, err := wandbox.NewClient(baseURL).Compile(context.Background(), wandbox.NewParameter("", "gcc-head"))
	if !appErr.Is(err, appErr.NetworkError) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestListCompilersThroughGzip(t *testing.T) {
	entry := `{"name":"gcc-head","version":"14","language":"C++","display-name":"gcc","compiler-option-raw":true,` +
		`"runtime-option-raw":false,"display-compile-command":"g++ prog.cc","switches":[]}`
	body := "[" + strings.TrimSuffix(strings.Repeat(entry+",", 20), ",") + "]"

	stub := testutil.NewStubServer(t, func(h http.Handler) http.Handler { return gzhttp.GzipHandler(h) })
	stub.OnList(http.StatusOK, body)

	client := wandbox.NewClient(stub.URL)
	infos, err := client.ListCompilers(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	testutil.AssertEqual(t, len(infos), 20)
	testutil.AssertEqual(t, infos[0].Name, "gcc-head")

	raw, err := client.ListCompilersRaw(context.Background())
	if err != nil {
		t.Fatalf("raw list failed: %v", err)
	}
	testutil.AssertEqual(t, string(raw), body)
	testutil.AssertEqual(t, stub.LastRequest(t).Method, http.MethodGet)
}

func TestListCompilersRawRejectsErrorStatus(t *testing.T) {
	stub := testutil.NewStubServer(t, nil)
	stub.OnList(http.StatusServiceUnavailable, `down`)

	_, err := wandbox.NewClient(stub.URL).ListCompilersRaw(context.Background())
	if !appErr.Is(err, appErr.HttpError) {
		t.Fatalf("expected HttpError, got %v", err)
	}
}

func TestGetPermlink(t *testing.T) {
	stub := testutil.NewStubServer(t, nil)
	stub.OnPermlink("abc123", http.StatusOK, `{"parameter":{"code":"p 1","compiler":"ruby-head"},"result":{"status":"0","program_message":"1\n"}}`)

	client := wandbox.NewClient(stub.URL)
	stored, err := client.GetPermlink(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("get permlink failed: %v", err)
	}
	testutil.AssertEqual(t, stored.Parameter.Code, "p 1")
	testutil.AssertEqual(t, stub.LastRequest(t).Path, "/api/permlink/abc123")
	testutil.AssertEqual(t, client.PermlinkURL("abc123"), stub.URL+"/permlink/abc123")

	_, err = client.GetPermlink(context.Background(), "missing")
	if !appErr.Is(err, appErr.HttpError) {
		t.Fatalf("expected HttpError for unknown link, got %v", err)
	}

	_, err = client.GetPermlinkRaw(context.Background(), "missing")
	if !appErr.Is(err, appErr.HttpError) {
		t.Fatalf("expected HttpError for unknown raw link, got %v", err)
	}
}
