package wandbox

import (
	"path/filepath"
	"strings"
)

// DefaultCompiler is used when neither the user nor the extension picks one.
const DefaultCompiler = "gcc-head"

type language struct {
	name       string
	compiler   string
	extensions []string
}

var languages = []language{
	{"Bash script", "bash", []string{"sh", "bash"}},
	{"C", "gcc-head-c", []string{"c", "h"}},
	{"C#", "mono-head", []string{"cs"}},
	{"C++", "gcc-head", []string{"cpp", "cxx", "cc", "hpp", "hxx", "hh"}},
	{"CoffeeScript", "coffeescript-head", []string{"coffee"}},
	{"CPP", "gcc-head-pp", nil},
	{"D", "ldc-head", []string{"d"}},
	{"Elixir", "elixir-head", []string{"ex", "exs"}},
	{"Erlang", "erlang-head", []string{"erl"}},
	{"Go", "go-head", []string{"go"}},
	{"Groovy", "groovy-head", []string{"groovy"}},
	{"Haskell", "ghc-head", []string{"hs"}},
	{"Java", "openjdk-head", []string{"java"}},
	{"JavaScript", "nodejs-head", []string{"js"}},
	{"Lazy K", "lazyk", []string{"lazy"}},
	{"Lisp", "clisp-2.49", []string{"lisp"}},
	{"Lua", "lua-5.3.4", []string{"lua"}},
	{"OCaml", "ocaml-head", []string{"ml"}},
	{"Pascal", "fpc-head", []string{"pas"}},
	{"Perl", "perl-head", []string{"pl"}},
	{"PHP", "php-head", []string{"php"}},
	{"Pony", "pony-head", []string{"pony"}},
	{"Python", "cpython-head", []string{"py"}},
	{"Rill", "rill-head", []string{"rill"}},
	{"Ruby", "ruby-head", []string{"rb"}},
	{"Rust", "rust-head", []string{"rs"}},
	{"Scala", "scala-head", []string{"scala"}},
	{"SQL", "sqlite-head", []string{"sql"}},
	{"Swift", "swift-head", []string{"swift"}},
	{"Vim script", "vim-head", []string{"vim"}},
}

var compilerByExtension = func() map[string]string {
	m := make(map[string]string)
	for _, lang := range languages {
		for _, ext := range lang.extensions {
			m[ext] = lang.compiler
		}
	}
	return m
}()

// CompilerForExtension maps a file extension (with or without the dot) to a
// default compiler name.
func CompilerForExtension(ext string) (string, bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	compiler, ok := compilerByExtension[ext]
	return compiler, ok
}

// CompilerForFile guesses the compiler from a file name. "-" (stdin) never matches.
func CompilerForFile(filename string) (string, bool) {
	if filename == "" || filename == "-" {
		return "", false
	}
	return CompilerForExtension(filepath.Ext(filename))
}
