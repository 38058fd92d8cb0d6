//go:build !linux

package dupescan

import "os"

func adviseSequential(*os.File) {}
