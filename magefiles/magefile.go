// Package main provides build targets for machokit using Mage.
//
// Usage:
//
//	mage build          Compile the machokit binary to bin/
//	mage test           Run all tests
//	mage fuzz           Run every fuzz target for a short time
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install machokit to GOPATH/bin
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "machokit"
	binaryDir  = "bin"
	cmdDir     = "./cmd/machokit"
)

// fuzzTime bounds each fuzz target; override with MACHOKIT_FUZZTIME.
var fuzzTime = "20s"

// Build compiles the machokit binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests with the race detector.
func Test() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Fuzz runs each fuzz target in turn.
func Fuzz() error {
	if v := os.Getenv("MACHOKIT_FUZZTIME"); v != "" {
		fuzzTime = v
	}
	targets, err := fuzzTargets()
	if err != nil {
		return err
	}
	for _, t := range targets {
		fmt.Printf("fuzzing %s %s\n", t.pkg, t.name)
		if err := sh.RunV(binGo, "test", "-run", "^$", "-fuzz", "^"+t.name+"$", "-fuzztime", fuzzTime, t.pkg); err != nil {
			return err
		}
	}
	return nil
}

type fuzzTarget struct {
	pkg  string
	name string
}

// fuzzTargets lists FuzzXxx functions per package; go test -fuzz accepts
// only one package and one target at a time.
func fuzzTargets() ([]fuzzTarget, error) {
	pkgs, err := sh.Output(binGo, "list", "./...")
	if err != nil {
		return nil, err
	}
	var targets []fuzzTarget
	for pkg := range strings.SplitSeq(pkgs, "\n") {
		if pkg == "" {
			continue
		}
		out, err := sh.Output(binGo, "test", "-list", "^Fuzz", pkg)
		if err != nil {
			return nil, err
		}
		for name := range strings.SplitSeq(out, "\n") {
			if strings.HasPrefix(name, "Fuzz") {
				targets = append(targets, fuzzTarget{pkg: pkg, name: name})
			}
		}
	}
	return targets, nil
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	return sh.Copy(filepath.Join(gopath, "bin", binaryName), filepath.Join(binaryDir, binaryName))
}
