// Package ingestion loads job descriptions from files, stdin or URLs and normalizes their text.
package ingestion

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// StdinSource is the source name that reads the job description from stdin
const StdinSource = "-"

var (
	innerSpace  = regexp.MustCompile(`\s+`)
	blankLines  = regexp.MustCompile(`\n\n\n+`)
	bulletMarks = []string{"- ", "* ", "• ", "· "}
)

// CleanText normalizes line endings and whitespace while keeping headings,
// bullet lists and paragraph breaks
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := line[:len(line)-len(trimmed)]
	if isBulletLine(trimmed) {
		return indent + trimmed
	}
	return indent + innerSpace.ReplaceAllString(trimmed, " ")
}

func isBulletLine(trimmed string) bool {
	for _, mark := range bulletMarks {
		if strings.HasPrefix(trimmed, mark) {
			return true
		}
	}
	return false
}

// Load reads a job description from a file path, StdinSource or an http(s)
// URL. HTML content is reduced to its main text before cleaning.
func Load(ctx context.Context, source string, stdin io.Reader) (string, *Metadata, error) {
	var (
		raw      string
		platform Platform
		isHTML   bool
	)

	switch {
	case source == StdinSource:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		raw = string(data)
		isHTML = looksLikeHTML(raw)
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		result, err := FetchURL(ctx, source, nil)
		if err != nil {
			return "", nil, err
		}
		raw = result.HTML
		platform = DetectPlatform(source)
		isHTML = true
	default:
		data, err := os.ReadFile(source)
		if err != nil {
			if os.IsNotExist(err) {
				return "", nil, fmt.Errorf("file not found: %w", err)
			}
			return "", nil, fmt.Errorf("failed to read file: %w", err)
		}
		raw = string(data)
		ext := strings.ToLower(filepath.Ext(source))
		isHTML = ext == ".html" || ext == ".htm" || looksLikeHTML(raw)
	}

	format := FormatText
	if isHTML {
		text, err := ExtractMainText(raw, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
		if err != nil {
			return "", nil, err
		}
		raw = text
		format = FormatHTML
	}

	cleaned := CleanText(raw)
	if cleaned == "" {
		return "", nil, fmt.Errorf("job description from %s is empty", source)
	}

	meta := NewMetadata(cleaned, source)
	meta.Format = format
	if platform != "" && platform != PlatformUnknown {
		meta.Platform = string(platform)
	}
	if check := ScreenInstructions(cleaned); !check.IsSafe {
		meta.Flagged = check.Matches
	}
	return cleaned, meta, nil
}

func looksLikeHTML(content string) bool {
	head := strings.ToLower(strings.TrimSpace(content))
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.HasPrefix(head, "<!doctype html") || strings.Contains(head, "<html") || strings.Contains(head, "<body")
}

// WriteOutput writes the cleaned text, a quoted copy for the agent layer and
// the metadata to outDir
func WriteOutput(outDir string, cleanedText string, metadata *Metadata) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cleanedPath := filepath.Join(outDir, "job_description.cleaned.txt")
	if err := os.WriteFile(cleanedPath, []byte(cleanedText), 0644); err != nil {
		return fmt.Errorf("failed to write cleaned text file: %w", err)
	}

	quotedPath := filepath.Join(outDir, "job_description.quoted.txt")
	if err := os.WriteFile(quotedPath, []byte(QuoteExternalContent(cleanedText, "job description")), 0644); err != nil {
		return fmt.Errorf("failed to write quoted text file: %w", err)
	}

	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return err
	}
	metaPath := filepath.Join(outDir, "job_description.meta.json")
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}
