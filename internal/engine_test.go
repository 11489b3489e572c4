package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VaibhavRumale/Constant-Fold/internal/ast"
	"github.com/VaibhavRumale/Constant-Fold/internal/parser"
	tt "github.com/VaibhavRumale/Constant-Fold/internal/types"
)

// createTempDir creates a temporary directory and returns its path.
// It also registers a cleanup function to remove the directory after the test.
func createTempDir(t testing.TB, prefix string) string {
	tempDir, err := os.MkdirTemp("", prefix)
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })
	return tempDir
}

const mixedSource = `function main(x: u8) {
    let a = 1u8 + 2u8;
    let b = 10u8 / 0u8;
    let c = x + (2u8 * 3u8);
}
`

func TestNewEngineDefaults(t *testing.T) {
	t.Parallel()
	engine := NewEngine(EngineConfig{ConstantFold: true}, nil)
	assert.NotNil(t, engine.logger)
	assert.Equal(t, ast.U8, engine.Config().DefaultType)
	assert.True(t, engine.Config().ConstantFold)
}

func TestEngineRunSourceFolds(t *testing.T) {
	t.Parallel()
	engine := NewEngine(EngineConfig{ConstantFold: true}, nil)

	report, err := engine.RunSource("main.leo", []byte(mixedSource))
	require.NoError(t, err)
	assert.True(t, report.Folded)
	assert.Equal(t, "main.leo", report.Filename)

	expected := `function main(x: u8) {
    let a = 3u8;
    let b = 10u8 / 0u8;
    let c = x + 6u8;
}
`
	assert.Equal(t, expected, report.Program.String())

	require.Len(t, report.Issues, 1)
	issue := report.Issues[0]
	assert.Equal(t, RuleConstantFold, issue.Rule)
	assert.Equal(t, "division-by-zero", issue.Category)
	assert.Equal(t, "Division by zero", issue.Message)
	assert.Equal(t, tt.SeverityError, issue.Severity)
	assert.Equal(t, 3, issue.Start.Line)
	assert.Equal(t, 5, issue.Start.Column)
	assert.Equal(t, 23, issue.End.Column)
	assert.Equal(t, "statement left unfolded: let b = 10u8 / 0u8;", issue.Note)
}

func TestEngineRunSourceWithoutFolding(t *testing.T) {
	t.Parallel()
	engine := NewEngine(EngineConfig{}, nil)

	report, err := engine.RunSource("main.leo", []byte(mixedSource))
	require.NoError(t, err)
	assert.False(t, report.Folded)
	assert.Empty(t, report.Issues)
	assert.Equal(t, mixedSource, report.Program.String())
}

func TestEngineRunSourceDefaultType(t *testing.T) {
	t.Parallel()
	engine := NewEngine(EngineConfig{ConstantFold: true, DefaultType: ast.U16}, nil)

	report, err := engine.RunSource("wide.leo", []byte("function main() { let a = 255 + 1; }"))
	require.NoError(t, err)
	assert.Empty(t, report.Issues)
	assert.Equal(t, "let a = 256u16;", report.Program.Statements[0].String())
}

func TestEngineRunSourceParseError(t *testing.T) {
	t.Parallel()
	engine := NewEngine(EngineConfig{ConstantFold: true}, nil)

	_, err := engine.RunSource("bad.leo", []byte("function main() { let a = ; }"))
	require.Error(t, err)

	var perr *parser.Error
	assert.ErrorAs(t, err, &perr)
	assert.Contains(t, err.Error(), "error parsing bad.leo")
}

func TestEngineRun(t *testing.T) {
	t.Parallel()
	dir := createTempDir(t, "engine_test")
	path := filepath.Join(dir, "main.leo")
	require.NoError(t, os.WriteFile(path, []byte(mixedSource), 0o644))

	engine := NewEngine(EngineConfig{ConstantFold: true}, nil)
	report, err := engine.Run(path)
	require.NoError(t, err)
	assert.Len(t, report.Issues, 1)
	assert.Equal(t, path, report.Issues[0].Filename)

	_, err = engine.Run(filepath.Join(dir, "missing.leo"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadSourceCode(t *testing.T) {
	t.Parallel()
	dir := createTempDir(t, "source_test")
	path := filepath.Join(dir, "main.leo")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0o644))

	code, err := ReadSourceCode(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", ""}, code.Lines)
}

func TestEngineWatch(t *testing.T) {
	t.Parallel()
	dir := createTempDir(t, "watch_test")
	engine := NewEngine(EngineConfig{ConstantFold: true}, nil)

	reports := make(chan *Report, 16)
	require.NoError(t, engine.StartWatching([]string{dir}, func(r *Report, err error) {
		if err == nil {
			reports <- r
		}
	}))
	defer engine.StopWatching()

	assert.Error(t, engine.StartWatching([]string{dir}, nil))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))
	path := filepath.Join(dir, "main.leo")
	require.NoError(t, os.WriteFile(path, []byte(mixedSource), 0o644))

	select {
	case r := <-reports:
		assert.Equal(t, path, r.Filename)
		assert.Len(t, r.Issues, 1)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch report")
	}
}

func TestEngineStopWatchingWhenIdle(t *testing.T) {
	t.Parallel()
	engine := NewEngine(EngineConfig{}, nil)
	assert.NoError(t, engine.StopWatching())
}

func TestEngineRunChangedSkipsUnchanged(t *testing.T) {
	t.Parallel()
	dir := createTempDir(t, "changed_test")
	path := filepath.Join(dir, "main.leo")
	require.NoError(t, os.WriteFile(path, []byte(mixedSource), 0o644))

	engine := NewEngine(EngineConfig{ConstantFold: true}, nil)

	report, err := engine.runChanged(path)
	require.NoError(t, err)
	require.NotNil(t, report)

	report, err = engine.runChanged(path)
	require.NoError(t, err)
	assert.Nil(t, report)

	require.NoError(t, os.WriteFile(path, []byte("function main() {\n    let a = 1u8 - 2u8;\n}\n"), 0o644))
	report, err = engine.runChanged(path)
	require.NoError(t, err)
	require.NotNil(t, report)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "underflow", report.Issues[0].Category)

	require.NoError(t, os.Remove(path))
	_, err = engine.runChanged(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
