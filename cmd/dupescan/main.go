package main

import (
	"fmt"
	"os"
	"strings"

	dupescan "github.com/mattkeenan/dupescan/pkg"
)

// globalOptions are the flags accepted before the subcommand.
type globalOptions struct {
	quiet      bool
	verbosity  int
	debug      string
	configPath string
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		showUsage()
		os.Exit(1)
	}
	if args[0] == "--help" || args[0] == "-h" || args[0] == "help" {
		showHelp()
		return
	}

	global, rest, err := parseGlobalOptions(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dupescan: %v\n", err)
		showUsage()
		os.Exit(1)
	}
	if len(rest) == 0 {
		showUsage()
		os.Exit(1)
	}

	cfg, err := loadConfig(global.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dupescan: %v\n", err)
		os.Exit(1)
	}

	level := cfg.VerboseLevel()
	if global.verbosity > 0 {
		level = global.verbosity
	}
	if global.quiet {
		level = 0
	}
	dupescan.SetVerboseLevel(level)

	debug := cfg.DebugFlags()
	if global.debug != "" {
		debug = global.debug
	}
	dupescan.SetDebugFlags(debug)

	if err := runCommand(rest, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "dupescan: %v\n", err)
		os.Exit(1)
	}
}

// parseGlobalOptions consumes leading global flags and returns the rest of
// the argument list, which starts at the subcommand.
func parseGlobalOptions(args []string) (*globalOptions, []string, error) {
	g := &globalOptions{}
	i := 0
	for ; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			break
		}
		switch {
		case arg == "-q" || arg == "--quiet":
			g.quiet = true
		case arg == "--verbose":
			g.verbosity++
		case strings.HasPrefix(arg, "-v") && strings.Trim(arg[1:], "v") == "":
			g.verbosity += len(arg) - 1
		case arg == "--debug":
			i++
			if i >= len(args) {
				return nil, nil, fmt.Errorf("option --debug requires a value")
			}
			g.debug = args[i]
		case arg == "--config":
			i++
			if i >= len(args) {
				return nil, nil, fmt.Errorf("option --config requires a value")
			}
			g.configPath = args[i]
		default:
			return nil, nil, fmt.Errorf("unknown global option %s", arg)
		}
	}
	return g, args[i:], nil
}

// loadConfig loads the user config, defaulting to $HOME/.dupescan/config.
// When the default path cannot even be resolved, built-in defaults apply.
func loadConfig(path string) (*dupescan.Config, error) {
	if path == "" {
		defaultPath, err := dupescan.DefaultConfigPath()
		if err != nil {
			return dupescan.LoadConfig("")
		}
		path = defaultPath
	}
	return dupescan.LoadConfig(path)
}

// runCommand dispatches to the subcommand implementations.
func runCommand(args []string, cfg *dupescan.Config) error {
	switch args[0] {
	case "list":
		return runList(args[1:], cfg)
	case "index":
		return runIndex(args[1:], cfg)
	case "match":
		return runMatch(args[1:], cfg)
	case "confirm":
		return runConfirm(args[1:])
	case "zeroes":
		return runZeroes(args[1:])
	case "dupes":
		if len(args) < 2 {
			return fmt.Errorf("missing dupes subcommand, expected find|listdirs|size|copy|delete")
		}
		switch args[1] {
		case "find":
			return runDupesFind(args[2:])
		case "listdirs":
			return runDupesListDirs(args[2:])
		case "size":
			return runDupesSize(args[2:])
		case "copy":
			return runDupesCopy(args[2:])
		case "delete":
			return runDupesDelete(args[2:])
		default:
			return fmt.Errorf("unknown dupes subcommand %q", args[1])
		}
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func showUsage() {
	fmt.Fprintf(os.Stderr, "Usage: dupescan [-q] [-v]... [--config FILE] <command> [options] [paths...]\n")
	fmt.Fprintf(os.Stderr, "Try 'dupescan --help' for more information.\n")
}

func showHelp() {
	fmt.Printf("dupescan - find duplicate files across directory trees by content digest\n\n")
	fmt.Printf("Usage: dupescan [-q] [-v]... [--config FILE] <command> [options] [paths...]\n\n")

	fmt.Printf("GLOBAL OPTIONS:\n")
	fmt.Printf("  -q, --quiet       Silence all verbose output\n")
	fmt.Printf("  -v, --verbose     Increase verbosity (repeatable: -vv, -vvv)\n")
	fmt.Printf("  --debug FLAGS     Comma-separated debug flags\n")
	fmt.Printf("  --config FILE     Config file (default: ~/.dupescan/config)\n\n")

	fmt.Printf("COMMANDS:\n")
	fmt.Printf("  list [--fast] [--max-size SIZE] [--exclude GLOB]... [root] [output]\n")
	fmt.Printf("        Recursively scan a tree and output digest+size+path lines\n")
	fmt.Printf("  index [--dupes] [--fast] [--max-size SIZE] [--exclude GLOB]... [root] [output]\n")
	fmt.Printf("        Scan a tree and output a merged index, optionally tracking dupes\n")
	fmt.Printf("  match [--fast] [root] [input] [output]\n")
	fmt.Printf("        Find duplicates of indexed files inside another tree\n")
	fmt.Printf("  confirm [input] [output]\n")
	fmt.Printf("        Re-verify an index's dupes with full (non-sampled) digests\n")
	fmt.Printf("  zeroes [input] [output]\n")
	fmt.Printf("        Drop zero-length entries from an index\n")
	fmt.Printf("  dupes find [needle] [haystack] [output]\n")
	fmt.Printf("        Report which needle entries already exist in the haystack\n")
	fmt.Printf("  dupes listdirs [input] [output]\n")
	fmt.Printf("        List the unique parent directories of all dupes\n")
	fmt.Printf("  dupes size [input] [output]\n")
	fmt.Printf("        Sum the storage reclaimable by de-duping\n")
	fmt.Printf("  dupes copy [--dry-run] [input] [dest] [output]\n")
	fmt.Printf("        Copy every dupe into dest, named by digest; log actions\n")
	fmt.Printf("  dupes delete [--dry-run] [input] [output]\n")
	fmt.Printf("        Delete every dupe in the index; log actions\n\n")

	fmt.Printf("PATHS:\n")
	fmt.Printf("  Roots default to the current directory. Index inputs and outputs\n")
	fmt.Printf("  default to the standard streams; '-' selects them explicitly.\n")
	fmt.Printf("  Paths ending in .gz are compressed/decompressed transparently.\n")
}
