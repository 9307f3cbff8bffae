package epub

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"
)

// Compression selects how an archive entry is stored.
type Compression int

const (
	// Deflated entries are compressed.
	Deflated Compression = iota
	// Stored entries are written as-is. The mimetype entry must be stored.
	Stored
)

// Archive receives package entries in order.
type Archive interface {
	// Add writes one entry at the virtual path name.
	Add(name string, data []byte, mode Compression) error
	// Close finishes the archive. It must be called on every path.
	Close() error
}

// zipArchive writes entries to a zip stream.
type zipArchive struct {
	zw *zip.Writer
}

// NewZipArchive returns an Archive that writes a zip stream to w.
func NewZipArchive(w io.Writer) Archive {
	return &zipArchive{zw: zip.NewWriter(w)}
}

func (a *zipArchive) Add(name string, data []byte, mode Compression) error {
	method := zip.Deflate
	if mode == Stored {
		method = zip.Store
	}
	fw, err := a.zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func (a *zipArchive) Close() error {
	return a.zw.Close()
}
