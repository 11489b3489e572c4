package internal

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/VaibhavRumale/Constant-Fold/internal/ast"
	"github.com/VaibhavRumale/Constant-Fold/internal/fold"
	"github.com/VaibhavRumale/Constant-Fold/internal/parser"
	tt "github.com/VaibhavRumale/Constant-Fold/internal/types"
)

// RuleConstantFold is the rule name attached to every fold issue.
const RuleConstantFold = "constant-fold"

// SourceExtension is the file extension of program sources.
const SourceExtension = ".leo"

// EngineConfig controls what the engine does with a parsed program.
type EngineConfig struct {
	ConstantFold bool
	DefaultType  ast.IntType
}

// Report is the outcome of running the engine on one source.
type Report struct {
	Filename string
	Program  *ast.Program
	Issues   []tt.Issue
	Folded   bool // the fold pass ran, whether or not it reported issues
}

// Engine parses programs and applies the constant folding pass.
type Engine struct {
	config EngineConfig
	logger *zap.Logger
	cache  *Cache

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	done     chan struct{}
	onReport func(*Report, error)
}

// NewEngine creates an engine. A nil logger discards all log output.
func NewEngine(config EngineConfig, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.DefaultType == 0 {
		config.DefaultType = ast.DefaultIntType
	}
	return &Engine{config: config, logger: logger, cache: NewCache(0)}
}

// Config returns the engine configuration.
func (e *Engine) Config() EngineConfig {
	return e.config
}

// Run reads filename and processes its contents.
func (e *Engine) Run(filename string) (*Report, error) {
	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filename, err)
	}
	return e.RunSource(filename, source)
}

// RunSource parses source and, when enabled, folds it. Syntax errors are
// returned as errors; fold failures become issues on the report.
func (e *Engine) RunSource(filename string, source []byte) (*Report, error) {
	program, err := parser.ParseWithType(string(source), e.config.DefaultType)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", filename, err)
	}

	report := &Report{Filename: filename, Program: program}
	if !e.config.ConstantFold {
		return report, nil
	}

	report.Folded = true
	if err := fold.Program(program); err != nil {
		var errs fold.Errors
		if !errors.As(err, &errs) {
			return nil, err
		}
		report.Issues = issuesFromErrors(filename, NewSourceCode(source), program, errs)
	}

	e.logger.Debug("constant folding applied",
		zap.String("file", filename),
		zap.Int("statements", len(program.Statements)),
		zap.Int("issues", len(report.Issues)),
	)
	return report, nil
}

func issuesFromErrors(filename string, source *SourceCode, program *ast.Program, errs fold.Errors) []tt.Issue {
	issues := make([]tt.Issue, 0, len(errs))
	for _, se := range errs {
		start := token.Position{Filename: filename, Line: se.Line, Column: 1}
		end := start
		if se.Line > 0 && se.Line <= len(source.Lines) {
			line := source.Lines[se.Line-1]
			trimmed := strings.TrimRightFunc(line, unicode.IsSpace)
			start.Column = len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace)) + 1
			end.Column = len(trimmed)
		}

		issue := tt.Issue{
			Rule:     RuleConstantFold,
			Category: se.Err.Kind.String(),
			Filename: filename,
			Message:  se.Error(),
			Start:    start,
			End:      end,
			Severity: tt.SeverityError,
		}
		if se.Index < len(program.Statements) {
			issue.Note = "statement left unfolded: " + program.Statements[se.Index].String()
		}
		issues = append(issues, issue)
	}
	return issues
}
