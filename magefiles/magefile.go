//go:build mage

// Package main contains Mage build targets for depositor developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the pipeline expects.
var projectDirs = []string{
	"articles",
	"output/pdfs",
	"ledger",
}

// Init creates the project directory structure for the pipeline.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "depositor"
	cmdPkg  = "./cmd/depositor"
)

// binPath is the compiled CLI location.
var binPath = filepath.Join(binDir, binName)

// Build compiles the CLI binary into bin/. The sqlite3 driver needs cgo.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	env := map[string]string{"CGO_ENABLED": "1"}
	ldflags := "-X main.version=" + version
	if err := sh.RunWithV(env, "go", "build", "-ldflags", ldflags, "-o", binPath, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", binPath)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Stats prints project metrics: Go production/test LOC and documentation word count.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}
	docWords, err := countDocWords(".")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (documentation):           %d\n", docWords)
	return nil
}

// skipDir reports directories Stats ignores.
func skipDir(name string) bool {
	return name == ".git" || name == "bin" || strings.HasPrefix(name, "_")
}

// countGoLines walks the tree and counts non-blank lines in Go files. With
// testOnly only _test.go files are counted, otherwise only non-test files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && skipDir(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			if strings.TrimSpace(sc.Text()) != "" {
				total++
			}
		}
		return sc.Err()
	})
	return total, err
}

// countDocWords counts words in the top-level Markdown files.
func countDocWords(root string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(root, "*.md"))
	if err != nil {
		return 0, err
	}
	total := 0
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", path, err)
		}
		total += len(strings.Fields(string(data)))
	}
	return total, nil
}

// Pipeline groups targets that run the CLI against the working directories.
type Pipeline mg.Namespace

// Render converts the manuscripts to PDF with LibreOffice.
func (Pipeline) Render() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "render")
}

// Merge joins the rendered PDFs into the issue PDF.
func (Pipeline) Merge() error {
	mg.Deps(Pipeline.Render)
	return sh.RunV(binPath, "merge")
}

// Validate checks the manuscripts for required sections.
func (Pipeline) Validate() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "validate")
}

// Deposit builds the deposit XML and issue documents.
func (Pipeline) Deposit() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "build")
}

// Scanned builds the deposit with page ranges read from the merged issue PDF.
func (Pipeline) Scanned() error {
	mg.Deps(Pipeline.Merge)
	return sh.RunV(binPath, "build", "--strategy", "marker-scan", "--pdf", filepath.Join("output", "issue.pdf"))
}
