package wandbox_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"wan/internal/testutil"
	"wan/internal/wandbox"
)

const singleSwitchJSON = `{"default":true,"name":"sprout","display-name":"Sprout","display-flags":"-I/usr/local/sprout"}`

const multiSwitchJSON = `{"default":"boost-1.55","options":[` +
	`{"name":"boost-nothing","display-name":"Don't Use Boost","display-flags":""},` +
	`{"name":"boost-1.47","display-name":"Boost 1.47.0","display-flags":"-I/usr/local/boost-1.47.0/include"}]}`

func TestSwitchSingleShape(t *testing.T) {
	var sw wandbox.Switch
	testutil.MustUnmarshalJSON(t, []byte(singleSwitchJSON), &sw)

	if sw.Single == nil || sw.Multi != nil {
		t.Fatalf("expected single variant, got %+v", sw)
	}
	want := wandbox.SingleSwitch{Default: true, Name: "sprout", DisplayName: "Sprout", DisplayFlags: "-I/usr/local/sprout"}
	testutil.AssertEqual(t, *sw.Single, want)
}

func TestSwitchMultiShape(t *testing.T) {
	var sw wandbox.Switch
	testutil.MustUnmarshalJSON(t, []byte(multiSwitchJSON), &sw)

	if sw.Multi == nil || sw.Single != nil {
		t.Fatalf("expected multi variant, got %+v", sw)
	}
	testutil.AssertEqual(t, sw.Multi.Default, "boost-1.55")
	want := []wandbox.SwitchOption{
		{Name: "boost-nothing", DisplayName: "Don't Use Boost", DisplayFlags: ""},
		{Name: "boost-1.47", DisplayName: "Boost 1.47.0", DisplayFlags: "-I/usr/local/boost-1.47.0/include"},
	}
	if !reflect.DeepEqual(sw.Multi.Options, want) {
		t.Fatalf("options = %+v", sw.Multi.Options)
	}
}

func TestSwitchRoundTrip(t *testing.T) {
	for _, src := range []string{singleSwitchJSON, multiSwitchJSON} {
		var sw wandbox.Switch
		testutil.MustUnmarshalJSON(t, []byte(src), &sw)

		var want, got interface{}
		testutil.MustUnmarshalJSON(t, []byte(src), &want)
		testutil.MustUnmarshalJSON(t, testutil.MustMarshalJSON(t, sw), &got)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("round trip changed switch:\n got %v\nwant %v", got, want)
		}
	}
}

func TestSwitchRejectsAmbiguousShapes(t *testing.T) {
	tests := []string{
		`{"default":"x","name":"warning"}`,
		`{"default":true,"options":[]}`,
		`{"name":"warning"}`,
		`[]`,
	}
	for _, src := range tests {
		var sw wandbox.Switch
		if err := json.Unmarshal([]byte(src), &sw); err == nil {
			t.Errorf("expected error for %s, got %+v", src, sw)
		}
	}
}

func TestCompilerInfoDecoding(t *testing.T) {
	body := `[{
		"name":"gcc-head","version":"14.0.0","language":"C++","display-name":"gcc",
		"compiler-option-raw":true,"runtime-option-raw":false,
		"display-compile-command":"g++ prog.cc",
		"switches":[` + singleSwitchJSON + `,` + multiSwitchJSON + `]
	}]`
	var infos []wandbox.CompilerInfo
	testutil.MustUnmarshalJSON(t, []byte(body), &infos)

	if len(infos) != 1 {
		t.Fatalf("expected 1 compiler, got %d", len(infos))
	}
	info := infos[0]
	testutil.AssertEqual(t, info.DisplayName, "gcc")
	testutil.AssertTrue(t, info.CompilerOptionRaw, "compiler-option-raw should be true")
	testutil.AssertFalse(t, info.RuntimeOptionRaw, "runtime-option-raw should be false")
	testutil.AssertEqual(t, info.DisplayCompileCommand, "g++ prog.cc")
	testutil.AssertEqual(t, info.String(), "gcc-head C++")
	if len(info.Switches) != 2 || info.Switches[0].Single == nil || info.Switches[1].Multi == nil {
		t.Fatalf("switch variants not recovered: %+v", info.Switches)
	}
}
