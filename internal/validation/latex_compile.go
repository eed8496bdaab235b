// Package validation checks tailored resume content against its original and compiles LaTeX output.
package validation

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// CompilationTimeout is the maximum time to wait for one pdflatex pass
	CompilationTimeout = 30 * time.Second
	// compilationPasses runs pdflatex twice so references resolve
	compilationPasses = 2
)

// pdflatexBinary is a variable so tests can point it at a missing binary
var pdflatexBinary = "pdflatex"

// CheckLaTeXInstalled reports whether pdflatex can be found in PATH
func CheckLaTeXInstalled() error {
	if _, err := exec.LookPath(pdflatexBinary); err != nil {
		return &CompilationError{
			Message: "pdflatex not found in PATH. Please install a LaTeX distribution (e.g., TeX Live, MiKTeX)",
			Cause:   err,
		}
	}
	return nil
}

// CompileToPDF compiles LaTeX source in a temporary directory and copies the
// resulting PDF to outputPath, creating parent directories as needed.
func CompileToPDF(ctx context.Context, latexContent string, outputPath string) error {
	if err := CheckLaTeXInstalled(); err != nil {
		return err
	}

	tmpDir, err := os.MkdirTemp("", "latex-compile-*")
	if err != nil {
		return &CompilationError{
			Message: "failed to create temporary working directory",
			Cause:   err,
		}
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	texPath := filepath.Join(tmpDir, "document.tex")
	if err := os.WriteFile(texPath, []byte(latexContent), 0644); err != nil {
		return &CompilationError{
			Message: "failed to write LaTeX source",
			Cause:   err,
		}
	}

	pdfPath, _, err := CompileLaTeX(ctx, texPath, tmpDir)
	if err != nil && pdfPath == "" {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	pdf, err := os.ReadFile(pdfPath)
	if err != nil {
		return &FileReadError{
			Message: fmt.Sprintf("failed to read compiled PDF: %s", pdfPath),
			Cause:   err,
		}
	}
	if err := os.WriteFile(outputPath, pdf, 0644); err != nil {
		return fmt.Errorf("failed to write PDF to %s: %w", outputPath, err)
	}
	return nil
}

// CompileLaTeX compiles a LaTeX file in workDir using pdflatex. A PDF produced
// despite errors is returned together with a CompilationError.
func CompileLaTeX(ctx context.Context, texPath string, workDir string) (pdfPath string, logOutput string, err error) {
	if err := CheckLaTeXInstalled(); err != nil {
		return "", "", err
	}

	if err := os.MkdirAll(workDir, 0755); err != nil {
		return "", "", &CompilationError{
			Message: fmt.Sprintf("failed to create working directory: %s", workDir),
			Cause:   err,
		}
	}

	texBaseName := filepath.Base(texPath)
	workTexPath := filepath.Join(workDir, texBaseName)
	if texPath != workTexPath {
		texContent, err := os.ReadFile(texPath)
		if err != nil {
			return "", "", &FileReadError{
				Message: fmt.Sprintf("failed to read LaTeX file: %s", texPath),
				Cause:   err,
			}
		}
		if err := os.WriteFile(workTexPath, texContent, 0644); err != nil {
			return "", "", &CompilationError{
				Message: fmt.Sprintf("failed to write LaTeX file to working directory: %s", workDir),
				Cause:   err,
			}
		}
	}

	var runErr error
	var output strings.Builder
	for pass := 0; pass < compilationPasses; pass++ {
		passCtx, cancel := context.WithTimeout(ctx, CompilationTimeout)
		cmd := exec.CommandContext(passCtx, pdflatexBinary, "-interaction=nonstopmode", "-output-directory", workDir, workTexPath)
		cmd.Dir = workDir
		var stdout, stderr strings.Builder
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		runErr = cmd.Run()
		timedOut := passCtx.Err() == context.DeadlineExceeded
		cancel()

		output.Reset()
		output.WriteString(stdout.String())
		output.WriteString(stderr.String())

		if timedOut {
			return "", output.String(), &CompilationError{
				Message:   fmt.Sprintf("LaTeX compilation timed out (>%s)", CompilationTimeout),
				LogOutput: output.String(),
				Cause:     runErr,
			}
		}
	}
	logOutput = output.String()

	baseName := strings.TrimSuffix(texBaseName, ".tex")
	pdfPath = filepath.Join(workDir, baseName+".pdf")
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		message := "PDF file was not generated"
		if line := FirstLaTeXError(filepath.Join(workDir, baseName+".log")); line != "" {
			message = line
		}
		return "", logOutput, &CompilationError{
			Message:   message,
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	// pdflatex exits non-zero on warnings too; a produced PDF is a partial success
	if runErr != nil {
		return pdfPath, logOutput, &CompilationError{
			Message:   "LaTeX compilation completed with errors (PDF may be incomplete)",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	return pdfPath, logOutput, nil
}

// FirstLaTeXError returns the first error line ("! ...") of a pdflatex log, or "" if none
func FirstLaTeXError(logPath string) string {
	file, err := os.Open(logPath)
	if err != nil {
		return ""
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := scanner.Text(); strings.HasPrefix(line, "!") {
			return line
		}
	}
	return ""
}
