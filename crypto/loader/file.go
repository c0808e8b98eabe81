package loader

import (
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/xerrors"
)

// keyFilePerm only lets the owner read the key.
const keyFilePerm = 0400

// fileLoader stores the key in hexadecimal in a file. An optional "0x" prefix
// and surrounding spaces are ignored when reading.
//
// - implements loader.Loader
type fileLoader struct {
	path string

	readFn  func(path string) ([]byte, error)
	writeFn func(path string, data []byte, perm os.FileMode) error
}

// NewFileLoader returns the loader of the key in the file.
func NewFileLoader(path string) Loader {
	return fileLoader{
		path:    path,
		readFn:  os.ReadFile,
		writeFn: os.WriteFile,
	}
}

// Load implements loader.Loader.
func (l fileLoader) Load() ([]byte, error) {
	text, err := l.readFn(l.path)
	if err != nil {
		return nil, xerrors.Errorf("couldn't read key file: %v", err)
	}

	return decodeKey(text)
}

// LoadOrCreate implements loader.Loader. The file is created readable by the
// owner only.
func (l fileLoader) LoadOrCreate(g Generator) ([]byte, error) {
	text, err := l.readFn(l.path)
	if err == nil {
		return decodeKey(text)
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return nil, xerrors.Errorf("couldn't read key file: %v", err)
	}

	data, err := g.Generate()
	if err != nil {
		return nil, xerrors.Errorf("generator failed: %v", err)
	}

	err = l.writeFn(l.path, []byte(hex.EncodeToString(data)), keyFilePerm)
	if err != nil {
		return nil, xerrors.Errorf("couldn't write key file: %v", err)
	}

	return data, nil
}

func decodeKey(text []byte) ([]byte, error) {
	str := strings.TrimPrefix(strings.TrimSpace(string(text)), "0x")

	data, err := hex.DecodeString(str)
	if err != nil {
		return nil, xerrors.Errorf("malformed key: %v", err)
	}

	if len(data) == 0 {
		return nil, xerrors.New("empty key")
	}

	return data, nil
}
