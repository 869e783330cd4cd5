package pdf

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Opener launches PDF files in an external reader.
type Opener struct {
	reader string
}

// ValidReaders lists the supported reader values.
var ValidReaders = []string{"system", "skim", "zathura", "evince", "okular"}

// NewOpener creates an opener. An empty reader defaults to the system one.
func NewOpener(reader string) *Opener {
	if reader == "" {
		reader = "system"
	}
	return &Opener{reader: reader}
}

// Open opens the PDF at the given absolute path with the configured reader.
func (o *Opener) Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("checking PDF: %w", err)
	}

	var cmd *exec.Cmd
	switch o.reader {
	case "system":
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", path)
		case "windows":
			cmd = exec.Command("cmd", "/c", "start", "", path)
		default:
			cmd = exec.Command("xdg-open", path)
		}
	case "skim":
		cmd = exec.Command("open", "-a", "Skim", path)
	default:
		cmd = exec.Command(o.reader, path)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching %s: %w", o.reader, err)
	}
	return nil
}
