package dupescan

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

var globalVerboseLevel int
var debugFlags map[string]bool

// SetVerboseLevel sets the global verbose level. 0 is quiet; higher levels
// add per-file and trace output.
func SetVerboseLevel(level int) {
	globalVerboseLevel = level
}

// GetVerboseLevel returns the current verbose level.
func GetVerboseLevel() int {
	return globalVerboseLevel
}

// VerboseLog writes a message to stderr when the global level is at least
// level.
func VerboseLog(level int, format string, args ...interface{}) {
	if globalVerboseLevel >= level {
		fmt.Fprintf(os.Stderr, format, args...)
		if !strings.HasSuffix(format, "\n") {
			fmt.Fprintf(os.Stderr, "\n")
		}
	}
}

// SetDebugFlags sets the debug flags from a comma-separated string.
// Supports simple flags ("scan,digest") and key:value form ("scan:false").
func SetDebugFlags(flagsStr string) {
	debugFlags = make(map[string]bool)
	if flagsStr == "" {
		return
	}

	for _, flag := range strings.Split(flagsStr, ",") {
		flag = strings.TrimSpace(flag)
		if flag == "" {
			continue
		}

		parts := strings.SplitN(flag, ":", 2)
		name := strings.ToLower(parts[0])
		value := true
		if len(parts) > 1 {
			if parsed, err := strconv.ParseBool(parts[1]); err == nil {
				value = parsed
			}
		}
		debugFlags[name] = value
	}
}

// IsDebugEnabled reports whether the named debug flag is set.
func IsDebugEnabled(name string) bool {
	return debugFlags[strings.ToLower(name)]
}
