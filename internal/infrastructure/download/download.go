// Package download resolves paper PDFs to local files and extracts
// their text lines.
package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/ledongthuc/pdf"

	"PaperReview/internal/domain"
	"PaperReview/internal/ports"
)

// Error is a failed PDF download: network error or non-2xx status.
type Error struct {
	URL    string
	Status string
	Err    error
}

func (e *Error) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("download %s: unexpected status %s", e.URL, e.Status)
	}
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// PDFSource fetches and parses paper PDFs under a fixed directory
// layout: <dir>/<year>/<month>/<paper id>.pdf.
type PDFSource struct {
	dir    string
	client *http.Client
	logger *slog.Logger
}

var _ ports.Fetcher = (*PDFSource)(nil)

// New wires the storage directory and a download timeout.
func New(dir string, timeout time.Duration, logger *slog.Logger) *PDFSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFSource{
		dir:    dir,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Path returns the deterministic local location for one paper's PDF.
func (s *PDFSource) Path(paper domain.Paper) string {
	year := paper.Published.Format("2006")
	month := paper.Published.Format("01")
	return filepath.Join(s.dir, year, month, paper.ArxivID+".pdf")
}

// Ensure returns the local PDF path, downloading the file first when
// it is not already present.
func (s *PDFSource) Ensure(ctx context.Context, paper domain.Paper) (string, error) {
	path := s.Path(paper)
	if _, err := os.Stat(path); err == nil {
		s.logger.Debug("pdf already downloaded", "paper", paper.ArxivID, "path", path)
		return path, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create pdf dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, paper.PDFURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "PaperReview/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &Error{URL: paper.PDFURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &Error{URL: paper.PDFURL, Status: resp.Status}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+paper.ArxivID+".*")
	if err != nil {
		return "", fmt.Errorf("create temp pdf: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return "", &Error{URL: paper.PDFURL, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp pdf: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("move pdf into place: %w", err)
	}

	s.logger.Info("pdf downloaded", "paper", paper.ArxivID, "path", path)
	return path, nil
}

// Lines parses the PDF and returns its non-empty, trimmed text lines.
func (s *PDFSource) Lines(path string) ([]string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract pdf text %s: %w", path, err)
	}
	raw, err := io.ReadAll(plain)
	if err != nil {
		return nil, fmt.Errorf("read pdf text %s: %w", path, err)
	}

	return SplitLines(string(raw)), nil
}

// SplitLines normalizes raw document text into the extractor's input:
// control characters stripped, lines trimmed, empties dropped.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		clean := strings.TrimSpace(stripControl(line))
		if clean != "" {
			lines = append(lines, clean)
		}
	}
	return lines
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\t' {
			return -1
		}
		return r
	}, s)
}
