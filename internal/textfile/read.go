// Package textfile reads text files written by editors on any platform. A
// UTF-8 byte order mark is removed and UTF-16 files are converted to UTF-8.
package textfile

import (
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/restic/countdown/internal/errors"
)

// Decode converts data to UTF-8 according to its byte order mark. Data
// without a BOM is returned unchanged.
func Decode(data []byte) ([]byte, error) {
	res, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	return res, nil
}

// ReadAll reads rd until EOF and decodes the content.
func ReadAll(rd io.Reader) ([]byte, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Read returns the decoded content of the file filename.
func Read(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
