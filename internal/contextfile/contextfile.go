// Package contextfile validates context file paths and reads bounded
// prefixes of their content.
package contextfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	// SnippetChars is the preview length shown by "context show".
	SnippetChars = 200

	// MaxContextChars bounds how much of a context file is sent with a query.
	MaxContextChars = 10000
)

// Path validation and read errors.
var (
	ErrFileNotFound   = errors.New("file does not exist")
	ErrNotRegularFile = errors.New("not a valid file")
	ErrNotText        = errors.New("file is not valid UTF-8 text")
)

// Resolve checks that path names an existing regular file and returns its
// absolute form.
func Resolve(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return "", fmt.Errorf("checking %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsPDF reports whether path looks like a PDF by extension.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// ReadHead returns at most maxChars characters (Unicode code points) from the
// start of the file. truncated reports whether the file holds more.
// PDF files are read as their extracted page text.
func ReadHead(path string, maxChars int) (text string, truncated bool, err error) {
	if IsPDF(path) {
		full, err := ExtractPDFText(path)
		if err != nil {
			return "", false, err
		}
		return headOf(full, maxChars)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	return readRunes(bufio.NewReader(f), maxChars)
}

// headOf applies the same bound to text already in memory.
func headOf(s string, maxChars int) (string, bool, error) {
	return readRunes(bufio.NewReader(strings.NewReader(s)), maxChars)
}

func readRunes(r *bufio.Reader, maxChars int) (string, bool, error) {
	var b strings.Builder
	for n := 0; n < maxChars; n++ {
		ch, size, err := r.ReadRune()
		if err == io.EOF {
			return b.String(), false, nil
		}
		if err != nil {
			return "", false, err
		}
		if ch == utf8.RuneError && size == 1 {
			return "", false, ErrNotText
		}
		b.WriteRune(ch)
	}

	if _, _, err := r.ReadRune(); err == io.EOF {
		return b.String(), false, nil
	} else if err != nil {
		return "", false, err
	}
	return b.String(), true, nil
}
