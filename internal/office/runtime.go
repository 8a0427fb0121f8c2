// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package office locates a LibreOffice installation and drives its
// headless document conversion.
package office

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	binSoffice     = "soffice"
	binLibreOffice = "libreoffice"
)

// windowsPaths and darwinPaths are checked when no binary is on PATH.
var (
	windowsPaths = []string{
		`C:\Program Files\LibreOffice\program\soffice.exe`,
		`C:\Program Files (x86)\LibreOffice\program\soffice.exe`,
	}
	darwinPaths = []string{
		"/Applications/LibreOffice.app/Contents/MacOS/soffice",
	}
)

// Runtime converts office documents with a LibreOffice binary.
type Runtime interface {
	// Name returns the resolved binary path.
	Name() string

	// Available reports whether the binary answers a version query.
	Available() bool

	// ConvertToPDF renders the document at path into outDir. LibreOffice
	// names the output after the input with a .pdf extension.
	ConvertToPDF(path, outDir string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Exists(path string) bool
	RunSilent(name string, args ...string) error
	RunCombined(name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunCombined(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

type soffice struct {
	bin  string
	exec executor
}

func (s *soffice) Name() string { return s.bin }

func (s *soffice) Available() bool {
	return s.exec.RunSilent(s.bin, "--version") == nil
}

func (s *soffice) ConvertToPDF(path, outDir string) error {
	args := []string{"--headless", "--convert-to", "pdf", "--outdir", outDir, path}
	out, err := s.exec.RunCombined(s.bin, args...)
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("converting %s with %s: %w: %s", filepath.Base(path), s.bin, err, msg)
		}
		return fmt.Errorf("converting %s with %s: %w", filepath.Base(path), s.bin, err)
	}
	return nil
}

var defaultExec = &osExecutor{}

// Detect resolves the LibreOffice binary. A non-empty override is used as
// given (name on PATH or file path). Otherwise soffice and libreoffice are
// looked up on PATH, then the platform's usual install locations.
func Detect(override string) (Runtime, error) {
	return detect(defaultExec, runtime.GOOS, override)
}

func detect(exec executor, goos, override string) (Runtime, error) {
	if override != "" {
		if bin, ok := resolve(exec, override); ok {
			return &soffice{bin: bin, exec: exec}, nil
		}
		return nil, fmt.Errorf("office binary %s not found", override)
	}

	for _, name := range []string{binSoffice, binLibreOffice} {
		if bin, err := exec.LookPath(name); err == nil {
			rt := &soffice{bin: bin, exec: exec}
			if rt.Available() {
				return rt, nil
			}
		}
	}

	var candidates []string
	switch goos {
	case "windows":
		candidates = windowsPaths
	case "darwin":
		candidates = darwinPaths
	}
	for _, p := range candidates {
		if exec.Exists(p) {
			return &soffice{bin: p, exec: exec}, nil
		}
	}

	return nil, fmt.Errorf(
		"LibreOffice not available: neither %s nor %s found or operational; install LibreOffice and put %s on PATH",
		binSoffice, binLibreOffice, binSoffice,
	)
}

func resolve(exec executor, name string) (string, bool) {
	if exec.Exists(name) {
		return name, true
	}
	if bin, err := exec.LookPath(name); err == nil {
		return bin, true
	}
	return "", false
}
