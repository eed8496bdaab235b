package validation

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
)

// CountPDFPages counts the number of pages in a PDF file.
// It reads the page tree directly, then falls back to pdfinfo and ghostscript
// for files the reader cannot parse.
func CountPDFPages(ctx context.Context, pdfPath string) (int, error) {
	if count, err := countPagesWithReader(pdfPath); err == nil {
		return count, nil
	}

	if count, err := countPagesWithPdfinfo(ctx, pdfPath); err == nil {
		return count, nil
	}

	if count, err := countPagesWithGhostscript(ctx, pdfPath); err == nil {
		return count, nil
	}

	return 0, &CompilationError{
		Message: "failed to count PDF pages: file is unreadable and neither pdfinfo nor ghostscript is available",
	}
}

// countPagesWithReader uses the pure Go PDF reader; it panics on some
// malformed files, which is reported as an error
func countPagesWithReader(pdfPath string) (count int, err error) {
	defer func() {
		if r := recover(); r != nil {
			count, err = 0, fmt.Errorf("failed to read PDF: %v", r)
		}
	}()

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer func() { _ = f.Close() }()

	if count = r.NumPage(); count == 0 {
		return 0, fmt.Errorf("PDF has no pages")
	}
	return count, nil
}

func countPagesWithPdfinfo(ctx context.Context, pdfPath string) (int, error) {
	output, err := exec.CommandContext(ctx, "pdfinfo", pdfPath).Output()
	if err != nil {
		return 0, fmt.Errorf("pdfinfo command failed: %w", err)
	}
	return parsePdfinfoPages(string(output))
}

// parsePdfinfoPages reads the "Pages: N" line of pdfinfo output
func parsePdfinfoPages(output string) (int, error) {
	for _, line := range strings.Split(output, "\n") {
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) >= 2 {
			if count, err := strconv.Atoi(parts[1]); err == nil {
				return count, nil
			}
		}
	}
	return 0, fmt.Errorf("could not parse page count from pdfinfo output")
}

func countPagesWithGhostscript(ctx context.Context, pdfPath string) (int, error) {
	output, err := exec.CommandContext(ctx, "gs", ghostscriptArgs(pdfPath)...).Output()
	if err != nil {
		return 0, fmt.Errorf("ghostscript command failed: %w", err)
	}

	outputStr := strings.TrimSpace(string(output))
	count, err := strconv.Atoi(outputStr)
	if err != nil {
		return 0, fmt.Errorf("could not parse page count from ghostscript output: %s", outputStr)
	}
	return count, nil
}

// postScriptEscaper escapes the characters that would end or corrupt a
// PostScript string literal
var postScriptEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

func ghostscriptArgs(pdfPath string) []string {
	script := fmt.Sprintf("(%s) (r) file runpdfbegin pdfpagecount = quit", postScriptEscaper.Replace(pdfPath))
	return []string{"-q", "-dNODISPLAY", "-c", script}
}
