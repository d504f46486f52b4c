package buffer

import (
	"os"
	"strings"
)

// Load replaces the buffer's contents with the file at path split on
// line terminators, and clears the modified flag. A missing or
// unreadable file yields a single empty line: opening a new path is
// new-file semantics, not an error.
func (b *Buffer) Load(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		b.lines = []string{""}
		b.modified = false
		return
	}
	b.lines = decode(data)
	b.modified = false
}

// Save writes every line followed by a line terminator to path. The
// modified flag clears only when the write fully succeeds; on failure
// the buffer's content and flag are left untouched.
func (b *Buffer) Save(path string) error {
	if err := os.WriteFile(path, encode(b.lines), 0o644); err != nil {
		return err
	}
	b.modified = false
	return nil
}

// decode splits file contents into lines. A single trailing empty
// fragment from a terminator-ended file is dropped so Save then Load
// reproduces the same line sequence.
func decode(data []byte) []string {
	lines := strings.Split(string(data), "\n")
	if n := len(lines); n > 1 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// encode renders lines in on-disk form, one terminator per line.
func encode(lines []string) []byte {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}
