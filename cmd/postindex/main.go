package main

import (
	"fmt"
	"os"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "lint":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: postindex lint <file>")
			os.Exit(1)
		}
		clean, err := runLint(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !clean {
			os.Exit(1)
		}
	case "import":
		if err := runImport(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "render":
		if err := runRender(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("postindex %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`postindex - A single-document blog index engine built with Go, Echo, and templ

Usage:
  postindex <command> [arguments]

Commands:
  serve [-config site.yaml]    Start the index server
  lint <file>                  Check an index document and report issues
  import [-config f] <file>    Import an index document into the database
  render [-config f] [-o file] Render the canonical document from the database
  version                      Print the postindex version
  help                         Show this help message

Examples:
  postindex lint posts.md
  postindex import posts.md
  postindex render -o posts.md
  postindex serve -config site.yaml`)
}
