package optimize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/VaibhavRumale/Constant-Fold/internal"
	"github.com/VaibhavRumale/Constant-Fold/internal/ast"
)

// Emit writes the rendered program to outputPath and returns the path
// actually written. Missing parent directories are created and the source
// extension is appended when outputPath has none.
func Emit(program *ast.Program, outputPath string) (string, error) {
	if filepath.Ext(outputPath) == "" {
		outputPath += internal.SourceExtension
	}

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("could not create directories for %s: %w", outputPath, err)
		}
	}

	if err := os.WriteFile(outputPath, []byte(program.String()), 0o644); err != nil {
		return "", fmt.Errorf("could not write %s: %w", outputPath, err)
	}
	return outputPath, nil
}

// OutputPathFor maps a file found below inputRoot to the same relative
// location below outputDir.
func OutputPathFor(inputRoot, file, outputDir string) (string, error) {
	rel, err := filepath.Rel(inputRoot, file)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is not below %s", file, inputRoot)
	}
	return filepath.Join(outputDir, rel), nil
}
