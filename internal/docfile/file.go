package docfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrInvalidOutput is returned by Commit when the text to be written is
	// not a valid document. Nothing is written.
	ErrInvalidOutput = errors.New("docfile: output is not a valid document")

	// ErrReadOnly is returned by Commit on a file opened without write access.
	ErrReadOnly = errors.New("docfile: file is read-only")

	// ErrClosed is returned when using a closed File.
	ErrClosed = errors.New("docfile: file is closed")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Options configures a File.
type Options struct {
	// Validate parses the text handed to Commit and refuses to write it if
	// it is not a valid document.
	Validate bool

	// Sync flushes file data to stable storage after each Commit.
	Sync bool

	// FullSync asks for a flush through the drive cache where the platform
	// distinguishes one (F_FULLFSYNC on macOS). Implies Sync.
	FullSync bool

	// Perm is the mode used when Commit creates the file. Default: 0644.
	Perm fs.FileMode
}

// DefaultOptions returns validating, syncing options.
func DefaultOptions() Options {
	return Options{Validate: true, Sync: true, Perm: 0o644}
}

// File is an open, locked document file.
type File struct {
	path     string
	opts     Options
	fh       *os.File // nil while the file does not exist
	readOnly bool
	text     string
	bom      bool              // UTF-8 input started with a byte order mark
	enc      encoding.Encoding // non-nil for UTF-16 input
	closed   bool
}

// Open locks and reads the file at path.
func Open(path string, opts Options) (*File, error) {
	if opts.Perm == 0 {
		opts.Perm = 0o644
	}
	f := &File{path: path, opts: opts}

	fh, err := os.OpenFile(path, os.O_RDWR, 0)
	if errors.Is(err, fs.ErrPermission) {
		fh, err = os.Open(path)
		f.readOnly = true
	}
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("docfile: open %s: %w", path, err)
	}

	if err := lockFile(fh, !f.readOnly); err != nil {
		fh.Close()
		return nil, fmt.Errorf("docfile: lock %s: %w", path, err)
	}
	f.fh = fh

	data, err := io.ReadAll(fh)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("docfile: read %s: %w", path, err)
	}
	if err := f.decode(data); err != nil {
		f.Close()
		return nil, fmt.Errorf("docfile: decode %s: %w", path, err)
	}
	return f, nil
}

// decode converts data to UTF-8 text and records how to encode it back.
func (f *File) decode(data []byte) error {
	switch {
	case bytes.HasPrefix(data, utf8BOM):
		f.bom = true
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		f.enc = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		f.enc = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		f.text = string(data)
		return nil
	}
	text, _, err := transform.String(unicode.BOMOverride(unicode.UTF8.NewDecoder()), string(data))
	if err != nil {
		return err
	}
	f.text = text
	return nil
}

func (f *File) encode(text string) ([]byte, error) {
	switch {
	case f.enc != nil:
		out, err := f.enc.NewEncoder().String(text)
		return []byte(out), err
	case f.bom:
		return append(append([]byte(nil), utf8BOM...), text...), nil
	default:
		return []byte(text), nil
	}
}

// Path returns the file's path.
func (f *File) Path() string { return f.path }

// Text returns the file contents as UTF-8, without a byte order mark.
func (f *File) Text() string { return f.text }

// Exists reports whether the file existed when opened or has been created
// by Commit.
func (f *File) Exists() bool { return f.fh != nil }

// Commit replaces the file contents with text.
func (f *File) Commit(text string) error {
	if f.closed {
		return ErrClosed
	}
	if f.readOnly {
		return fmt.Errorf("%w: %s", ErrReadOnly, f.path)
	}
	if f.opts.Validate {
		var decoded map[string]any
		if err := toml.Unmarshal([]byte(text), &decoded); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidOutput, err)
		}
	}
	data, err := f.encode(text)
	if err != nil {
		return fmt.Errorf("docfile: encode %s: %w", f.path, err)
	}

	if f.fh == nil {
		fh, err := os.OpenFile(f.path, os.O_RDWR|os.O_CREATE, f.opts.Perm)
		if err != nil {
			return fmt.Errorf("docfile: create %s: %w", f.path, err)
		}
		if err := lockFile(fh, true); err != nil {
			fh.Close()
			return fmt.Errorf("docfile: lock %s: %w", f.path, err)
		}
		f.fh = fh
	}

	if err := f.fh.Truncate(0); err != nil {
		return fmt.Errorf("docfile: truncate %s: %w", f.path, err)
	}
	if _, err := f.fh.WriteAt(data, 0); err != nil {
		return fmt.Errorf("docfile: write %s: %w", f.path, err)
	}
	if f.opts.Sync || f.opts.FullSync {
		if err := syncFile(f.fh, f.opts.FullSync); err != nil {
			return fmt.Errorf("docfile: sync %s: %w", f.path, err)
		}
	}
	f.text = text
	return nil
}

// Close releases the lock and closes the file. It is safe to call more
// than once.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if f.fh == nil {
		return nil
	}
	unlockErr := unlockFile(f.fh)
	closeErr := f.fh.Close()
	f.fh = nil
	if unlockErr != nil {
		return fmt.Errorf("docfile: unlock %s: %w", f.path, unlockErr)
	}
	return closeErr
}
