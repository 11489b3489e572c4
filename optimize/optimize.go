package optimize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/VaibhavRumale/Constant-Fold/internal"
)

// Optimizer runs the parse and fold pipeline on a file or a source buffer.
type Optimizer interface {
	Run(filePath string) (*internal.Report, error)
	RunSource(filename string, source []byte) (*internal.Report, error)
}

// Processor handles a single file path.
type Processor func(Optimizer, string) (*internal.Report, error)

// New loads the configuration at configurationPath and builds an engine from it.
func New(configurationPath string, logger *zap.Logger) (*internal.Engine, Config, error) {
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, config, err
	}

	engine, err := NewFromConfig(config, logger)
	return engine, config, err
}

// NewFromConfig builds an engine from an already loaded configuration.
func NewFromConfig(config Config, logger *zap.Logger) (*internal.Engine, error) {
	engineConfig, err := config.EngineConfig()
	if err != nil {
		return nil, err
	}
	return internal.NewEngine(engineConfig, logger), nil
}

// ProcessFile runs the engine on a single file.
func ProcessFile(engine Optimizer, filePath string) (*internal.Report, error) {
	return engine.Run(filePath)
}

// ProcessSource runs the engine on an in-memory source.
func ProcessSource(engine Optimizer, filename string, source []byte) (*internal.Report, error) {
	return engine.RunSource(filename, source)
}

// ProcessFiles processes every path in order and stops at the first path
// that fails.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine Optimizer,
	paths []string,
	processor Processor,
) ([]*internal.Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var reports []*internal.Report
	for _, path := range paths {
		pathReports, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			return nil, err
		}
		reports = append(reports, pathReports...)
	}

	return reports, nil
}

// ProcessPath processes a single file, or every source file below a
// directory. Directory entries are processed concurrently; a file that fails
// there is logged and skipped. Reports come back in lexical path order.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine Optimizer,
	path string,
	processor Processor,
) ([]*internal.Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		report, err := processor(engine, path)
		if err != nil {
			return nil, err
		}
		return []*internal.Report{report}, nil
	}

	files, err := collectSourceFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	// limit the number of workers
	sem := make(chan struct{}, runtime.NumCPU())
	results := make([]*internal.Report, len(files))
	var wg sync.WaitGroup

	for i, filePath := range files {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			report, err := processor(engine, fp)
			if err != nil {
				logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
			} else {
				results[i] = report
			}
			_ = bar.Add(1)
		}(i, filePath)
	}
	wg.Wait()
	_ = bar.Finish()

	reports := make([]*internal.Report, 0, len(results))
	for _, r := range results {
		if r != nil {
			reports = append(reports, r)
		}
	}
	return reports, nil
}

func collectSourceFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fileInfo.IsDir() && hasSourceExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", root, err)
	}
	return files, nil
}

func hasSourceExtension(path string) bool {
	return filepath.Ext(path) == internal.SourceExtension
}
