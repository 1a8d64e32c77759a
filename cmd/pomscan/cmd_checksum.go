package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ochairo/pomscan/internal/domain-adapters/gateways"
	"github.com/ochairo/pomscan/internal/external-adapters/filesystem"
)

func runChecksum(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("checksum", flag.ExitOnError)
	var (
		verify  = fs.Bool("verify", false, "Verify each file against its .sha1 sidecar")
		pattern = fs.String("pattern", "*", "Glob applied when a directory is given")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: pomscan checksum [options] <file|dir>...

Print SHA-1 checksums in sha1sum format, or verify them against the
<file>.sha1 sidecars published by Maven repositories.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  pomscan checksum commons-io-2.11.0.jar
  pomscan checksum --pattern '*.jar' ./lib
  pomscan checksum --verify ./lib/commons-io-2.11.0.jar
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: at least one file or directory is required\n\n")
		fs.Usage()
		os.Exit(1)
	}

	failures, err := executeChecksum(ctx, fs.Args(), *pattern, *verify, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if failures > 0 {
		os.Exit(1)
	}
}

// executeChecksum prints or verifies every path; directories are expanded
// one level. It returns the number of files that failed.
func executeChecksum(ctx context.Context, paths []string, pattern string, verify bool, out io.Writer) (int, error) {
	files, err := expandPaths(ctx, paths, pattern)
	if err != nil {
		return 0, err
	}

	verifier := gateways.NewChecksumVerifier()
	failures := 0
	for _, file := range files {
		if verify {
			if err := verifier.VerifySidecar(ctx, file); err != nil {
				fmt.Fprintf(out, "%s: FAILED (%v)\n", file, err)
				failures++
				continue
			}
			fmt.Fprintf(out, "%s: OK\n", file)
			continue
		}

		sum, err := verifier.CalculateChecksum(file)
		if err != nil {
			fmt.Fprintf(out, "%s: FAILED (%v)\n", file, err)
			failures++
			continue
		}
		fmt.Fprintf(out, "%s  %s\n", sum, file)
	}

	return failures, nil
}

func expandPaths(ctx context.Context, paths []string, pattern string) ([]string, error) {
	files := make([]string, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to access %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		artifacts, err := filesystem.NewArtifactRepository(p, pattern).ListArtifacts(ctx)
		if err != nil {
			return nil, err
		}
		for _, a := range artifacts {
			if isSidecar(a.Name) {
				continue
			}
			files = append(files, filepath.Clean(a.Path))
		}
	}
	return files, nil
}

// isSidecar reports whether name is a checksum or signature file
func isSidecar(name string) bool {
	switch filepath.Ext(name) {
	case ".sha1", ".md5", ".asc":
		return true
	}
	return false
}
