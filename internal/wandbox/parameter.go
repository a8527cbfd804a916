package wandbox

import (
	"os"
	"path/filepath"
	"strings"

	appErr "wan/pkg/errors"
)

// Code is a supplemental source file sent alongside the main code.
type Code struct {
	File string `json:"file"`
	Code string `json:"code"`
}

// NewCodeFromFile reads path fully and names the entry after its base name.
func NewCodeFromFile(path string) (Code, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Code{}, appErr.IoFailure(err, path)
	}
	return Code{File: filepath.Base(path), Code: string(data)}, nil
}

// Parameter is one compile submission.
// Optional fields are pointers so that an unset field is left off the wire.
type Parameter struct {
	Code              string  `json:"code"`
	Compiler          string  `json:"compiler"`
	Stdin             *string `json:"stdin,omitempty"`
	Options           *string `json:"options,omitempty"`
	Codes             []Code  `json:"codes,omitempty"`
	CompilerOptionRaw *string `json:"compiler-option-raw,omitempty"`
	RuntimeOptionRaw  *string `json:"runtime-option-raw,omitempty"`
	Save              *bool   `json:"save,omitempty"`
	CreatedAt         *string `json:"created-at,omitempty"`
}

// NewParameter returns a parameter with only code and compiler set.
func NewParameter(code, compiler string) Parameter {
	return Parameter{Code: code, Compiler: compiler}
}

// The With* methods work on copies, so a Parameter can be extended in any
// order without affecting the value it was derived from.

// WithOptions sets the comma separated switch list verbatim.
func (p Parameter) WithOptions(options string) Parameter {
	p.Options = &options
	return p
}

// WithCompilerArgs stores args newline-joined. No args leaves the field unset.
func (p Parameter) WithCompilerArgs(args []string) Parameter {
	p.CompilerOptionRaw = joinRaw(args)
	return p
}

// WithRuntimeArgs stores args newline-joined. No args leaves the field unset.
func (p Parameter) WithRuntimeArgs(args []string) Parameter {
	p.RuntimeOptionRaw = joinRaw(args)
	return p
}

// WithStdin sets the program standard input.
func (p Parameter) WithStdin(stdin string) Parameter {
	p.Stdin = &stdin
	return p
}

// SavePermalink asks the service to persist the submission.
func (p Parameter) SavePermalink(save bool) Parameter {
	p.Save = &save
	return p
}

// AddFiles appends one Code per path. Either every file is added or, on the
// first read failure, the parameter is returned unchanged with an IoError.
func (p Parameter) AddFiles(paths []string) (Parameter, error) {
	if len(paths) == 0 {
		return p, nil
	}
	added := make([]Code, 0, len(paths))
	for _, path := range paths {
		code, err := NewCodeFromFile(path)
		if err != nil {
			return p, err
		}
		added = append(added, code)
	}
	codes := make([]Code, 0, len(p.Codes)+len(added))
	codes = append(codes, p.Codes...)
	p.Codes = append(codes, added...)
	return p, nil
}

// CompilerArgs splits the raw compiler option field back into arguments.
func (p Parameter) CompilerArgs() []string {
	return splitRaw(p.CompilerOptionRaw)
}

// RuntimeArgs splits the raw runtime option field back into arguments.
func (p Parameter) RuntimeArgs() []string {
	return splitRaw(p.RuntimeOptionRaw)
}

func joinRaw(args []string) *string {
	if len(args) == 0 {
		return nil
	}
	raw := strings.Join(args, "\n")
	return &raw
}

func splitRaw(raw *string) []string {
	if raw == nil {
		return nil
	}
	return strings.Split(*raw, "\n")
}
