package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/nfu-tools/nfu-announcements/internal/render"
)

// DirName is the output directory created next to the executable.
const DirName = "public"

const extension = ".html"

// WriteError reports a failure creating or writing an output file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// CleanupReport lists what a best-effort cleanup removed and what it could
// not remove.
type CleanupReport struct {
	Removed []string
	Failed  map[string]error
}

// Writer manages one output directory.
type Writer struct {
	dir string
}

// DefaultDir returns the public directory beside the running executable.
func DefaultDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), DirName), nil
}

// New creates a Writer for dir, creating the directory if needed.
func New(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving output directory: %w", err)
	}

	return &Writer{dir: abs}, nil
}

// Dir returns the absolute output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Path returns the output file path for a domain.
func (w *Writer) Path(domainName string) string {
	return filepath.Join(w.dir, domainName+extension)
}

// Cleanup removes every .html file whose name starts with domainName.
// Failures are collected in the report and never returned as errors.
func (w *Writer) Cleanup(domainName string) CleanupReport {
	report := CleanupReport{Failed: map[string]error{}}

	entries, err := os.ReadDir(w.dir)
	if err != nil {
		report.Failed[w.dir] = err
		return report
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, domainName) || !strings.HasSuffix(name, extension) {
			continue
		}
		path := filepath.Join(w.dir, name)
		if err := os.Remove(path); err != nil {
			report.Failed[path] = err
			continue
		}
		report.Removed = append(report.Removed, path)
	}

	return report
}

// Write replaces the output for domainName with fragments wrapped in the list
// container. Stale files are cleaned up first. When fragments is empty no file
// is written and the returned path is "".
func (w *Writer) Write(domainName string, fragments []string) (string, CleanupReport, error) {
	report := w.Cleanup(domainName)
	if len(fragments) == 0 {
		return "", report, nil
	}

	path := w.Path(domainName)
	if err := writeBOM(path, render.Document(fragments)); err != nil {
		return "", report, &WriteError{Path: path, Err: err}
	}
	return path, report, nil
}

func writeBOM(path, content string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	tw := transform.NewWriter(f, unicode.UTF8BOM.NewEncoder())
	if _, err := tw.Write([]byte(content)); err != nil {
		return err
	}
	return tw.Close()
}
