package upload

import (
	"regexp"
	"strings"

	"pdf-qr-scanner/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// AllowedFile reports whether filename has an extension from the allow list.
// Only the text after the last dot counts, compared case-insensitively.
func AllowedFile(filename string) bool {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 {
		return false
	}
	return domain.AllowedExtensions[strings.ToLower(filename[i+1:])]
}

// SecureFilename reduces a client supplied name to a flat ASCII file name:
// "/" becomes a space, runs of whitespace become "_", anything
// outside [A-Za-z0-9_.-] is dropped and leading or trailing "." and "_" are
// trimmed. The result can be empty.
func SecureFilename(filename string) string {
	filename = norm.NFKD.String(filename)

	var b strings.Builder
	for _, r := range filename {
		if r < 0x80 {
			b.WriteRune(r)
		}
	}
	filename = b.String()

	filename = strings.ReplaceAll(filename, "/", " ")
	filename = strings.Join(strings.Fields(filename), "_")
	filename = unsafeFilenameChars.ReplaceAllString(filename, "")

	return strings.Trim(filename, "._")
}

// scratchName is the on-disk name for an accepted upload.
func scratchName(secured string) string {
	if secured == "" {
		return uuid.NewString() + ".pdf"
	}
	return secured
}
