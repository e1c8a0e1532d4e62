package engine

import (
	"log"
	"os"
)

// debugEnabled gates the per-tier scheduling logs. Set HYPERTASK_DEBUG to
// any non-empty value to see every tier attempt and fall-through.
var debugEnabled = os.Getenv("HYPERTASK_DEBUG") != ""

func debugf(format string, args ...interface{}) {
	if !debugEnabled {
		return
	}
	log.Printf("[engine] "+format, args...)
}
