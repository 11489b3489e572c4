package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/VaibhavRumale/Constant-Fold/formatter"
	"github.com/VaibhavRumale/Constant-Fold/internal"
	"github.com/VaibhavRumale/Constant-Fold/optimize"
)

var (
	constantFold bool
	emitLeo      bool
	inputPath    string
	outputPath   string
)

var errFoldFailed = errors.New("constant folding encountered errors")

var optimizeCmd = &cobra.Command{
	Use:   "optimize [paths...]",
	Short: "Optimize and generate Leo code",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		config, err := optimize.LoadConfig(cfgFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		config = applyOptimizeFlags(cmd, config)

		engine, err := optimize.NewFromConfig(config, logger)
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}

		paths := args
		if len(paths) == 0 {
			paths = []string{config.Input}
		}

		if err := runOptimize(ctx, logger, engine, config, paths, verbose, os.Stdout, os.Stderr); err != nil {
			if !errors.Is(err, errFoldFailed) {
				logger.Error("Error processing files", zap.Error(err))
			}
			os.Exit(1)
		}
	},
}

func init() {
	optimizeCmd.Flags().BoolVarP(&constantFold, "constant-fold", "c", false, "Apply constant fold optimization")
	optimizeCmd.Flags().BoolVarP(&emitLeo, "emit-leo", "e", false, "Emit generated Leo code")
	optimizeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Specify output file for generated Leo code")
	optimizeCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Specify input file for Leo code")
}

// applyOptimizeFlags overrides config with the flags set on the command line.
func applyOptimizeFlags(cmd *cobra.Command, config optimize.Config) optimize.Config {
	flags := cmd.Flags()
	if flags.Changed("constant-fold") {
		config.ConstantFold = constantFold
	}
	if flags.Changed("emit-leo") {
		config.EmitLeo = emitLeo
	}
	if inputPath != "" {
		config.Input = inputPath
	}
	if outputPath != "" {
		config.Output = outputPath
	}
	return config
}

func runOptimize(
	ctx context.Context,
	logger *zap.Logger,
	engine optimize.Optimizer,
	config optimize.Config,
	paths []string,
	echoSource bool,
	stdout, stderr io.Writer,
) error {
	reports, err := optimize.ProcessFiles(ctx, logger, engine, paths, optimize.ProcessFile)
	if err != nil {
		return err
	}

	failed := false
	for _, report := range reports {
		if echoSource {
			printUnparsed(logger, report.Filename, stdout)
		}
		if printReport(logger, report, stdout, stderr) {
			failed = true
		}

		if !config.EmitLeo {
			fmt.Fprintf(stdout, "Parsed Leo code:\n\n%s\n", report.Program)
			continue
		}

		fmt.Fprintf(stdout, "Generated Leo code:\n\n%s\n", report.Program)
		target, err := emitTarget(paths, report.Filename, config.Output, len(reports))
		if err != nil {
			return err
		}
		written, err := optimize.Emit(report.Program, target)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Leo code has been written to %s\n", written)
	}

	if failed {
		return errFoldFailed
	}
	return nil
}

// printUnparsed echoes the raw input as a quoted string.
func printUnparsed(logger *zap.Logger, filename string, stdout io.Writer) {
	source, err := os.ReadFile(filename)
	if err != nil {
		logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
		return
	}
	fmt.Fprintf(stdout, "Unparsed file:\n%q\n\n", source)
}

// printReport writes the fold outcome of report and reports whether folding
// failed for any statement.
func printReport(logger *zap.Logger, report *internal.Report, stdout, stderr io.Writer) bool {
	if !report.Folded {
		return false
	}
	if len(report.Issues) == 0 {
		fmt.Fprintln(stdout, "Constant folding applied successfully.")
		return false
	}

	sourceCode, err := internal.ReadSourceCode(report.Filename)
	if err != nil {
		logger.Error("Error reading source file", zap.String("file", report.Filename), zap.Error(err))
	}
	fmt.Fprintln(stderr, "Constant folding encountered errors:")
	fmt.Fprint(stderr, formatter.GenerateFormattedIssue(report.Issues, sourceCode))
	return true
}

// emitTarget picks where a report is written. A single report goes to
// output; reports found below a directory argument keep their relative
// layout below output.
func emitTarget(paths []string, filename, output string, reports int) (string, error) {
	if reports == 1 {
		return output, nil
	}
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			continue
		}
		target, err := optimize.OutputPathFor(root, filename, output)
		if err == nil {
			return target, nil
		}
	}
	return "", fmt.Errorf("cannot emit %s: multiple inputs need a directory argument", filename)
}
