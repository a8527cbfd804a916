// Package render formats requests, results and compiler listings for humans.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"wan/internal/wandbox"
)

// RequestInfo writes the "[Request info]" block for param.
func RequestInfo(w io.Writer, param wandbox.Parameter) {
	fmt.Fprintln(w, "[Request info]")
	fmt.Fprintf(w, "compiler = %q\n", param.Compiler)
	if param.Options != nil {
		fmt.Fprintf(w, "options = %q\n", *param.Options)
	}
	if args := param.CompilerArgs(); args != nil {
		fmt.Fprintf(w, "compiler_options = %s\n", quoteList(args))
	}
	if args := param.RuntimeArgs(); args != nil {
		fmt.Fprintf(w, "runtime_options = %s\n", quoteList(args))
	}
	if len(param.Codes) > 0 {
		names := make([]string, 0, len(param.Codes))
		for _, code := range param.Codes {
			names = append(names, code.File)
		}
		fmt.Fprintf(w, "files = %s\n", quoteList(names))
	}
	fmt.Fprintln(w)
}

// Result writes the message block and the exit status line.
func Result(w io.Writer, result wandbox.Result) error {
	msg, err := result.Message()
	if err != nil {
		return err
	}
	if result.FromProgram() {
		fmt.Fprintln(w, "[Program message]")
	} else {
		fmt.Fprintln(w, "[Compiler message]")
	}
	fmt.Fprintln(w, msg)
	if result.Signal != nil && *result.Signal != "" {
		fmt.Fprintf(w, "[Program killed by signal %s]\n", *result.Signal)
	}
	fmt.Fprintf(w, "[Program exited with status %d]\n", result.ExitStatus())
	return nil
}

// PermlinkURL writes the "[Permlink URL]" block.
func PermlinkURL(w io.Writer, url string) {
	fmt.Fprintln(w, "[Permlink URL]")
	fmt.Fprintln(w, url)
}

// Permlink writes a stored submission: its request info then its result.
func Permlink(w io.Writer, stored wandbox.PermlinkResult) error {
	RequestInfo(w, stored.Parameter)
	return Result(w, stored.Result)
}

// Compilers writes compilers grouped by language, languages sorted by name.
func Compilers(w io.Writer, infos []wandbox.CompilerInfo) {
	groups := make(map[string][]wandbox.CompilerInfo)
	for _, info := range infos {
		groups[info.Language] = append(groups[info.Language], info)
	}
	langs := make([]string, 0, len(groups))
	for lang := range groups {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	for _, lang := range langs {
		fmt.Fprintf(w, "%s:\n", lang)
		for _, info := range groups[lang] {
			fmt.Fprintf(w, "- name: %s\n", info.Name)
			if info.Version != "" {
				fmt.Fprintf(w, "  version: %s\n", info.Version)
			}
			if len(info.Switches) == 0 {
				continue
			}
			fmt.Fprintln(w, "  switches:")
			for _, sw := range info.Switches {
				switch {
				case sw.Single != nil:
					fmt.Fprintf(w, "  - name: %q\n", sw.Single.Name)
					fmt.Fprintf(w, "    default: %t\n", sw.Single.Default)
				case sw.Multi != nil:
					fmt.Fprintf(w, "  - default: %q\n", sw.Multi.Default)
					fmt.Fprintln(w, "    options:")
					for _, opt := range sw.Multi.Options {
						fmt.Fprintf(w, "    - name: %q\n", opt.Name)
					}
				}
			}
		}
		fmt.Fprintln(w)
	}
}

// FilterCompilers keeps compilers whose language equals language (case
// insensitive) and whose name contains name. Empty filters match everything.
func FilterCompilers(infos []wandbox.CompilerInfo, language, name string) []wandbox.CompilerInfo {
	out := make([]wandbox.CompilerInfo, 0, len(infos))
	for _, info := range infos {
		if language != "" && !strings.EqualFold(info.Language, language) {
			continue
		}
		if name != "" && !strings.Contains(info.Name, name) {
			continue
		}
		out = append(out, info)
	}
	return out
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
