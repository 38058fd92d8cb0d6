package main

import (
	"fmt"
	"os"

	dupescan "github.com/mattkeenan/dupescan/pkg"
)

// scanOptions defines the flags shared by the tree-scanning commands.
func scanOptions() *ParsedOptions {
	opts := NewParsedOptions()
	opts.DefineOption("fast", "", OptionTypeBool, "use fast head+tail digesting")
	opts.DefineOption("max-size", "", OptionTypeString, "skip files larger than SIZE")
	opts.DefineOption("exclude", "", OptionTypeStrings, "skip paths matching this glob")
	return opts
}

// buildScan assembles a scan builder from command flags and config
// defaults.
func buildScan(root string, opts *ParsedOptions, cfg *dupescan.Config) (dupescan.ScanListBuilder, error) {
	builder := dupescan.NewScanListBuilder(root)
	builder = builder.Fast(opts.GetBool("fast") || cfg.Fast())

	if raw := opts.GetString("max-size"); raw != "" {
		max, err := dupescan.ParseHumanSize(raw)
		if err != nil {
			return builder, err
		}
		builder = builder.MaxSize(max)
	} else if max, err := cfg.MaxSize(); err != nil {
		return builder, err
	} else if max > 0 {
		builder = builder.MaxSize(max)
	}

	builder = builder.Exclude(cfg.Exclude()...)
	builder = builder.Exclude(opts.GetStrings("exclude")...)
	return builder, nil
}

func runList(args []string, cfg *dupescan.Config) error {
	opts := scanOptions()
	if err := opts.Parse(args); err != nil {
		return err
	}
	root, output := opts.Arg(0), opts.Arg(1)
	dupescan.VerboseLog(1, "listing %s to %s", dupescan.DirName(root), dupescan.WriterName(output))

	builder, err := buildScan(root, opts, cfg)
	if err != nil {
		return err
	}
	list, err := builder.Build()
	if err != nil {
		return err
	}

	w, err := dupescan.OpenWriter(output)
	if err != nil {
		return err
	}
	for _, item := range list.Items {
		if _, err := fmt.Fprintln(w, item); err != nil {
			w.Close()
			return fmt.Errorf("failed to write list: %w", err)
		}
	}
	return w.Close()
}

func runIndex(args []string, cfg *dupescan.Config) error {
	opts := scanOptions()
	opts.DefineOption("dupes", "", OptionTypeBool, "track duplicate paths")
	if err := opts.Parse(args); err != nil {
		return err
	}
	root, output := opts.Arg(0), opts.Arg(1)
	dupescan.VerboseLog(1, "indexing %s to %s", dupescan.DirName(root), dupescan.WriterName(output))

	builder, err := buildScan(root, opts, cfg)
	if err != nil {
		return err
	}
	list, err := builder.Build()
	if err != nil {
		return err
	}
	idx, err := dupescan.NewIndexBuilder().
		WithDupes(opts.GetBool("dupes")).
		FromList(list).
		Build()
	if err != nil {
		return err
	}
	return writeIndex(idx, output)
}

func runMatch(args []string, cfg *dupescan.Config) error {
	opts := scanOptions()
	if err := opts.Parse(args); err != nil {
		return err
	}
	root, input, output := opts.Arg(0), opts.Arg(1), opts.Arg(2)
	dupescan.VerboseLog(1, "matching %s to %s output to %s",
		dupescan.DirName(root), dupescan.ReaderName(input), dupescan.WriterName(output))

	idx, err := readIndex(input, false)
	if err != nil {
		return err
	}

	// Cap the scan at the largest indexed size; anything bigger cannot
	// match and need not be digested.
	builder, err := buildScan(root, opts, cfg)
	if err != nil {
		return err
	}
	list, err := builder.MaxSize(idx.Max()).Build()
	if err != nil {
		return err
	}

	idx.MatchList(list)
	return writeIndex(idx, output)
}

func runConfirm(args []string) error {
	opts := NewParsedOptions()
	if err := opts.Parse(args); err != nil {
		return err
	}
	input, output := opts.Arg(0), opts.Arg(1)
	dupescan.VerboseLog(1, "confirming %s, output to %s",
		dupescan.ReaderName(input), dupescan.WriterName(output))

	idx, err := readIndex(input, true)
	if err != nil {
		return err
	}
	confirmed, err := dupescan.NewIndexBuilder().Confirm(idx).Build()
	if err != nil {
		return err
	}
	return writeIndex(confirmed, output)
}

func runZeroes(args []string) error {
	opts := NewParsedOptions()
	if err := opts.Parse(args); err != nil {
		return err
	}
	input, output := opts.Arg(0), opts.Arg(1)
	dupescan.VerboseLog(1, "removing zero length items from %s, output to %s",
		dupescan.ReaderName(input), dupescan.WriterName(output))

	idx, err := readIndex(input, true)
	if err != nil {
		return err
	}
	return writeIndex(idx.PruneZeroes(), output)
}

func runDupesFind(args []string) error {
	opts := NewParsedOptions()
	if err := opts.Parse(args); err != nil {
		return err
	}
	needlePath, haystackPath, output := opts.Arg(0), opts.Arg(1), opts.Arg(2)
	dupescan.VerboseLog(1, "finding needles from %s in haystack %s, output to %s",
		dupescan.ReaderName(needlePath), dupescan.ReaderName(haystackPath), dupescan.WriterName(output))

	needle, err := readIndex(needlePath, false)
	if err != nil {
		return err
	}
	dupescan.VerboseLog(2, "loaded %d items with %d dupes in the needle", needle.Len(), needle.CountDupes())

	haystack, err := readIndex(haystackPath, true)
	if err != nil {
		return err
	}
	dupescan.VerboseLog(2, "loaded %d items with %d dupes in the haystack", haystack.Len(), haystack.CountDupes())

	return writeIndex(dupescan.FindDupes(needle, haystack), output)
}

func runDupesListDirs(args []string) error {
	opts := NewParsedOptions()
	if err := opts.Parse(args); err != nil {
		return err
	}
	input, output := opts.Arg(0), opts.Arg(1)
	dupescan.VerboseLog(1, "listing dupe dirs in %s to %s",
		dupescan.ReaderName(input), dupescan.WriterName(output))

	idx, err := readIndex(input, true)
	if err != nil {
		return err
	}
	dirs := idx.DupeDirs()
	dupescan.VerboseLog(2, "found %d unique dupe dirs", len(dirs))

	w, err := dupescan.OpenWriter(output)
	if err != nil {
		return err
	}
	for _, d := range dirs {
		if _, err := fmt.Fprintln(w, d); err != nil {
			w.Close()
			return fmt.Errorf("failed to write dir list: %w", err)
		}
	}
	return w.Close()
}

func runDupesSize(args []string) error {
	opts := NewParsedOptions()
	if err := opts.Parse(args); err != nil {
		return err
	}
	input, output := opts.Arg(0), opts.Arg(1)
	dupescan.VerboseLog(1, "summing size of dupes in %s to %s",
		dupescan.ReaderName(input), dupescan.WriterName(output))

	idx, err := readIndex(input, true)
	if err != nil {
		return err
	}

	w, err := dupescan.OpenWriter(output)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, dupescan.FormatSavings(idx.DupesSize())); err != nil {
		w.Close()
		return fmt.Errorf("failed to write size report: %w", err)
	}
	return w.Close()
}

func runDupesCopy(args []string) error {
	opts := NewParsedOptions()
	opts.DefineOption("dry-run", "", OptionTypeBool, "log actions without copying")
	if err := opts.Parse(args); err != nil {
		return err
	}
	input, dest, output := opts.Arg(0), opts.Arg(1), opts.Arg(2)

	destDir, err := dupescan.Dir(dest)
	if err != nil {
		return err
	}
	dupescan.VerboseLog(1, "copying dupe files in %s to %s, logging to %s",
		dupescan.ReaderName(input), destDir, dupescan.WriterName(output))

	idx, err := readIndex(input, true)
	if err != nil {
		return err
	}

	w, err := dupescan.OpenWriter(output)
	if err != nil {
		return err
	}
	if err := idx.CopyDupes(destDir, w, opts.GetBool("dry-run")); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func runDupesDelete(args []string) error {
	opts := NewParsedOptions()
	opts.DefineOption("dry-run", "", OptionTypeBool, "log actions without deleting")
	if err := opts.Parse(args); err != nil {
		return err
	}
	input, output := opts.Arg(0), opts.Arg(1)
	dupescan.VerboseLog(1, "deleting dupe files in %s, logging to %s",
		dupescan.ReaderName(input), dupescan.WriterName(output))

	idx, err := readIndex(input, true)
	if err != nil {
		return err
	}

	w, err := dupescan.OpenWriter(output)
	if err != nil {
		return err
	}
	if err := idx.DeleteDupes(w, opts.GetBool("dry-run")); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// readIndex deserializes an index from a resolved input path.
func readIndex(input string, withDupes bool) (*dupescan.Index, error) {
	r, err := dupescan.OpenReader(input)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return dupescan.NewIndexBuilder().WithDupes(withDupes).FromReader(r).Build()
}

// writeIndex serializes idx to a resolved output path, using the gathered
// writev path when the destination is a plain file.
func writeIndex(idx *dupescan.Index, output string) error {
	w, err := dupescan.OpenWriter(output)
	if err != nil {
		return err
	}
	if f, ok := w.(*os.File); ok {
		if err := idx.WriteToFile(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	if _, err := idx.WriteTo(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
