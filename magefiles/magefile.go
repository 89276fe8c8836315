//go:build mage

// Package main provides build targets for the survey service using Mage.
//
// Usage:
//
//	mage build    Compile the survey binary to bin/
//	mage test     Run all tests
//	mage lint     Run golangci-lint
//	mage serve    Build and start the server
//	mage clean    Remove build artifacts
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "survey"
	binaryDir  = "bin"
	cmdDir     = "./cmd/survey"
)

// Build compiles the survey binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}

	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || version == "" {
		version = "dev"
	}

	return sh.RunV(binGo, "build",
		"-ldflags", "-X main.version="+version,
		"-o", filepath.Join(binaryDir, binaryName),
		cmdDir,
	)
}

// Test runs every package's tests with the race detector.
func Test() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Serve builds the binary and runs it with the current environment.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binaryDir, binaryName), "serve")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}
