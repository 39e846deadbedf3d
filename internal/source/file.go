package source

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"strings"
)

// File is a single Robot Framework source file, normalized to LF and split
// into 1-based lines. One File feeds exactly one parse + format pass.
type File struct {
	Path    string
	Content []byte
	Hash    [sha256.Size]byte

	lines []string
	// finalNewline records whether the original content ended with a newline,
	// so Render can reproduce the file byte-for-byte when nothing changed.
	finalNewline bool

	HadBOM  bool
	HadCRLF bool
	Virtual bool
}

// Load reads a file from disk, strips a UTF-8 BOM and normalizes CRLF to LF.
func Load(path string) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	f := newFile(normalizePath(path), content)
	f.HadBOM = hadBOM
	f.HadCRLF = hadCRLF
	return f, nil
}

// NewVirtual wraps in-memory content (stdin, tests) as a File.
func NewVirtual(name string, content []byte) *File {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	f := newFile(name, content)
	f.HadBOM = hadBOM
	f.HadCRLF = hadCRLF
	f.Virtual = true
	return f
}

func newFile(path string, content []byte) *File {
	f := &File{
		Path:    path,
		Content: content,
		Hash:    sha256.Sum256(content),
	}
	text := string(content)
	f.finalNewline = strings.HasSuffix(text, "\n")
	if f.finalNewline {
		text = text[:len(text)-1]
	}
	if text == "" && len(content) > 0 {
		// content was a single "\n"
		f.lines = []string{""}
	} else if text == "" {
		f.lines = nil
	} else {
		f.lines = strings.Split(text, "\n")
	}
	return f
}

// Lines returns a copy of the file's lines; index 0 is line 1.
func (f *File) Lines() []string {
	return append([]string(nil), f.lines...)
}

// Line returns the 1-based line n, or "" when n is out of range.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lines) {
		return ""
	}
	return f.lines[n-1]
}

// LineCount returns the number of lines in the file.
func (f *File) LineCount() int {
	return len(f.lines)
}

// Render joins lines back into file content, preserving the original
// final-newline state.
func (f *File) Render(lines []string) []byte {
	if len(lines) == 0 {
		return []byte{}
	}
	out := strings.Join(lines, "\n")
	if f.finalNewline {
		out += "\n"
	}
	return []byte(out)
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
