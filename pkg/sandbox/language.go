package sandbox

import "strings"

// Language tags accepted by the sandbox.
const (
	Python     = "python"
	Java       = "java"
	Cpp        = "cpp"
	JavaScript = "javascript"
)

// DefaultLanguage is used when a request carries no language tag.
const DefaultLanguage = Python

// Toolchain names the binaries used to run each language.
type Toolchain struct {
	Python string
	Node   string
	Javac  string
	Cxx    string
}

// DefaultToolchain resolves binaries from PATH.
func DefaultToolchain() Toolchain {
	return Toolchain{
		Python: "python3",
		Node:   "node",
		Javac:  "javac",
		Cxx:    "g++",
	}
}

// pipeline is the ordered list of commands for one source file plus any extra
// files or directories those commands produce. outputDirs are created before
// the first step.
type pipeline struct {
	steps      [][]string
	artifacts  []string
	outputDirs []string
}

type languageSpec struct {
	suffix string
	build  func(tc Toolchain, file string) pipeline
}

func pythonPipeline(tc Toolchain, file string) pipeline {
	return pipeline{steps: [][]string{{tc.Python, file}}}
}

var languages = map[string]languageSpec{
	Python: {
		suffix: ".py",
		build:  pythonPipeline,
	},
	JavaScript: {
		suffix: ".js",
		build: func(tc Toolchain, file string) pipeline {
			return pipeline{steps: [][]string{{tc.Node, file}}}
		},
	},
	// javac only compiles; the class is never run. Classes go to a per-run
	// directory so they are removed with the source.
	Java: {
		suffix: ".java",
		build: func(tc Toolchain, file string) pipeline {
			classes := file + "_classes"
			return pipeline{
				steps:      [][]string{{tc.Javac, file, "-d", classes}},
				artifacts:  []string{classes},
				outputDirs: []string{classes},
			}
		},
	},
	Cpp: {
		suffix: ".cpp",
		build: func(tc Toolchain, file string) pipeline {
			binary := file + "_executable"
			return pipeline{
				steps: [][]string{
					{tc.Cxx, file, "-o", binary},
					{binary},
				},
				artifacts: []string{binary},
			}
		},
	},
}

// unknown tags get a .txt file and run through python
var fallbackLanguage = languageSpec{suffix: ".txt", build: pythonPipeline}

func lookupLanguage(tag string) languageSpec {
	if spec, ok := languages[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return spec
	}
	return fallbackLanguage
}

// Suffix returns the temp file suffix used for a language tag.
func Suffix(tag string) string {
	return lookupLanguage(tag).suffix
}
