// Package detector handles system detection of ROM files.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles system detection from file extensions.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Check reports whether a file is expected to contain a CHIP-8 program.
// Files whose extension belongs to another system are logged as a warning,
// unknown extensions are accepted as CHIP-8 images have no header.
func (d *Detector) Check(filename string) bool {
	system, known := detectFromFile(filename)
	if !known {
		d.logger.Debug("Unknown file extension, assuming CHIP-8 image",
			log.String("file", filename))
		return true
	}

	if system != arch.CHIP8System {
		d.logger.Warn("File extension indicates a ROM for a different system",
			log.Stringer("system", system),
			log.String("file", filename))
		return false
	}
	return true
}

// detectFromFile determines the system type based on file extension.
func detectFromFile(filename string) (arch.System, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".ch8", ".c8", ".rom":
		return arch.CHIP8System, true
	case ".nes":
		return arch.NES, true
	default:
		return "", false
	}
}
