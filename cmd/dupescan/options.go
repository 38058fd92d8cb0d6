package main

import (
	"fmt"
	"strings"
)

// OptionType defines the kind of value an option expects.
type OptionType int

const (
	OptionTypeBool OptionType = iota
	OptionTypeString
	OptionTypeStrings // repeatable, accumulates values
	OptionTypeCount   // repeatable, counts occurrences
)

// OptionDef defines a command-line option.
type OptionDef struct {
	Long        string // long option name (without --)
	Short       string // short option name (without -), may be empty
	Type        OptionType
	Description string
}

// ParsedOptions holds option definitions and the parsed results for one
// subcommand invocation.
type ParsedOptions struct {
	bools    map[string]bool
	strs     map[string]string
	lists    map[string][]string
	counts   map[string]int
	args     []string
	defs     map[string]*OptionDef
	shortMap map[string]string
}

// NewParsedOptions creates an empty options parser.
func NewParsedOptions() *ParsedOptions {
	return &ParsedOptions{
		bools:    make(map[string]bool),
		strs:     make(map[string]string),
		lists:    make(map[string][]string),
		counts:   make(map[string]int),
		defs:     make(map[string]*OptionDef),
		shortMap: make(map[string]string),
	}
}

// DefineOption registers an option before parsing.
func (p *ParsedOptions) DefineOption(long, short string, optType OptionType, description string) {
	def := &OptionDef{Long: long, Short: short, Type: optType, Description: description}
	p.defs[long] = def
	if short != "" {
		p.shortMap[short] = long
	}
}

// Parse walks args, filling option values and collecting the remaining
// positional arguments. A bare "-" is positional: it names a standard
// stream, not an option.
func (p *ParsedOptions) Parse(args []string) error {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			p.args = append(p.args, args[i+1:]...)
			return nil

		case strings.HasPrefix(arg, "--"):
			name := strings.TrimPrefix(arg, "--")
			value := ""
			hasValue := false
			if idx := strings.Index(name, "="); idx >= 0 {
				value = name[idx+1:]
				name = name[:idx]
				hasValue = true
			}
			def, ok := p.defs[name]
			if !ok {
				return fmt.Errorf("unknown option --%s", name)
			}
			switch def.Type {
			case OptionTypeBool:
				p.bools[name] = true
			case OptionTypeCount:
				p.counts[name]++
			default:
				if !hasValue {
					i++
					if i >= len(args) {
						return fmt.Errorf("option --%s requires a value", name)
					}
					value = args[i]
				}
				if def.Type == OptionTypeString {
					p.strs[name] = value
				} else {
					p.lists[name] = append(p.lists[name], value)
				}
			}

		case strings.HasPrefix(arg, "-") && arg != "-":
			// Grouped short options; only flag-like types may group.
			for _, c := range arg[1:] {
				long, ok := p.shortMap[string(c)]
				if !ok {
					return fmt.Errorf("unknown option -%c", c)
				}
				switch p.defs[long].Type {
				case OptionTypeBool:
					p.bools[long] = true
				case OptionTypeCount:
					p.counts[long]++
				default:
					return fmt.Errorf("option -%c requires a value; use --%s", c, long)
				}
			}

		default:
			p.args = append(p.args, arg)
		}
	}
	return nil
}

// GetBool returns whether a bool option was set.
func (p *ParsedOptions) GetBool(long string) bool {
	return p.bools[long]
}

// GetString returns a string option's value, or "" when unset.
func (p *ParsedOptions) GetString(long string) string {
	return p.strs[long]
}

// GetStrings returns every value given for a repeatable option.
func (p *ParsedOptions) GetStrings(long string) []string {
	return p.lists[long]
}

// GetCount returns the occurrence count of a counted option.
func (p *ParsedOptions) GetCount(long string) int {
	return p.counts[long]
}

// Args returns the positional arguments in order.
func (p *ParsedOptions) Args() []string {
	return p.args
}

// Arg returns the i'th positional argument, or "" when absent. An empty
// value resolves to the standard streams or the working directory at the
// point of use.
func (p *ParsedOptions) Arg(i int) string {
	if i >= len(p.args) {
		return ""
	}
	return p.args[i]
}
