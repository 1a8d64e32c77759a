package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "scan":
		runScan(ctx, os.Args[2:])
	case "checksum":
		runChecksum(ctx, os.Args[2:])
	case "version":
		fmt.Println("pomscan " + version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`pomscan - Generate Maven dependency declarations from a directory of jars

Usage:
  pomscan <command> [options]

Commands:
  scan       Identify every jar in a directory and print <dependency> elements
  checksum   Print or verify SHA-1 checksums of files
  version    Print the pomscan version

Use "pomscan <command> --help" for more information about a command.`)
}
