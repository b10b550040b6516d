package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// tempFilePrefix names the scratch file a bundle is written to before rename.
const tempFilePrefix = ".bundle-tmp-"

// Section is one source file's contribution to a bundle.
type Section struct {
	Note    string // written on its own line before Content; empty = none
	Content string
}

// Assemble concatenates sections into bundle text. A non-empty author adds a
// "# Author: <author>" first line. Every section ends with a line break.
func Assemble(author string, sections []Section) string {
	var sb strings.Builder

	if author != "" {
		fmt.Fprintf(&sb, "# Author: %s\n", author)
	}
	for _, s := range sections {
		if s.Note != "" {
			sb.WriteString(s.Note)
			sb.WriteString("\n")
		}
		sb.WriteString(s.Content)
		sb.WriteString("\n")
	}

	return sb.String()
}

// WriteFileAtomic writes data to a temp file next to filename and renames it
// into place, so filename is either fully replaced or left untouched.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("setting permissions on temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", filename, err)
	}

	return nil
}
