package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/erraggy/oasload"
	"github.com/erraggy/oasload/cmd/oasload/commands"
)

// commandNames lists the commands offered as "did you mean" suggestions.
var commandNames = []string{"parse", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	os.Exit(run(os.Args[1], os.Args[2:]))
}

// run executes a command and returns the process exit code.
func run(command string, args []string) int {
	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasload v%s\n", oasload.Version())
		if len(args) > 0 && args[0] == "--verbose" {
			fmt.Println(oasload.BuildInfo())
		}
		return 0
	case "help", "-h", "--help":
		printUsage()
		return 0
	case "parse":
		err = commands.HandleParse(args)
	case "mcp":
		err = commands.HandleMCP(args)
	default:
		_, _ = fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			_, _ = fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		_, _ = fmt.Fprintln(os.Stderr)
		printUsage()
		return 1
	}

	if err != nil {
		// The diagnostics were already printed.
		if !errors.Is(err, commands.ErrLoadErrors) {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// suggestCommand returns the known command closest to input, or "" when
// none is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`oasload - OpenAPI 3.x document loader

Usage:
  oasload <command> [options]

Commands:
  parse       Load an OpenAPI document and report its diagnostics
  mcp         Serve the parse tool over the Model Context Protocol (stdio)
  version     Show version information (--verbose for build details)
  help        Show this help message

Examples:
  oasload parse openapi.yaml
  oasload parse --format json --strict-refs openapi.yaml
  cat openapi.yaml | oasload parse -q --document -

Run 'oasload <command> --help' for more information on a command.`)
}
