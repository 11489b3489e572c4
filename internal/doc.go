// Package internal provides the engine behind the constant folding tool.
//
// Key components:
//
// Engine: parses a program with the parser package and, when enabled, runs
// the fold pass over it. Fold failures are turned into issues that carry the
// failing statement's position so the formatter can render them.
//
// Report: the parsed (and possibly folded) program together with its issues.
//
// Cache: remembers the last report per file so watch mode can skip events
// that did not change the file content.
//
// SourceCode: a simple structure to represent the content of a source file as a collection of lines.
//
// Usage:
//
//	engine := internal.NewEngine(internal.EngineConfig{ConstantFold: true}, logger)
//
//	report, err := engine.Run("src/files/before.leo")
//	if err != nil {
//	    // handle error
//	}
//
//	fmt.Print(report.Program)
//	for _, issue := range report.Issues {
//	    fmt.Printf("%s at %s\n", issue.Message, issue.Start)
//	}
//
// This package is intended for internal use within the tool and should not be
// imported by external packages.
package internal
