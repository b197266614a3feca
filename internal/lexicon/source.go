package lexicon

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/edsrzf/mmap-go"
)

// ErrNotConfigured is returned by a Source when the table names no file for
// the requested resource.
var ErrNotConfigured = errors.New("lexicon: resource not configured")

// Source supplies the raw bytes of one language resource.
type Source interface {
	ReadResource(ctx context.Context, code string, kind Kind) ([]byte, error)
}

// Tabled is implemented by sources that know the configured language table.
type Tabled interface {
	Table() Table
}

// FileSource reads resources from disk through read-only memory maps.
// Relative paths in the table are resolved against Dir.
type FileSource struct {
	Dir       string
	Languages Table
}

// NewFileSource returns a FileSource over dir using table.
func NewFileSource(dir string, table Table) *FileSource {
	return &FileSource{Dir: dir, Languages: table}
}

// Table returns the language table.
func (s *FileSource) Table() Table { return s.Languages }

func (s *FileSource) resolve(code string, kind Kind) (string, error) {
	res, ok := s.Languages[code]
	if !ok {
		return "", &UnsupportedLanguageError{Language: code}
	}
	p := res.Path(kind)
	if p == "" {
		return "", ErrNotConfigured
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(s.Dir, p)
	}
	return p, nil
}

// ReadResource maps the file into memory and returns a private copy of its
// contents; the mapping is released before returning.
func (s *FileSource) ReadResource(ctx context.Context, code string, kind Kind) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.resolve(code, kind)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", p, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", p)
	}
	if fi.Size() == 0 {
		return []byte{}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", p, err)
	}
	data := make([]byte, len(m))
	copy(data, m)
	if err := m.Unmap(); err != nil {
		return nil, fmt.Errorf("unmap %s: %w", p, err)
	}
	return data, nil
}

// Check stats every configured file and returns a joined error for the
// required resources that are missing. Missing bigram files are not errors.
func (s *FileSource) Check() error {
	var errs []error
	for _, code := range s.Languages.Codes() {
		for _, kind := range []Kind{KindDictionary, KindUnigram} {
			p, err := s.resolve(code, kind)
			if err != nil {
				errs = append(errs, &ResourceLoadError{Language: code, Resource: kind, Err: err})
				continue
			}
			if _, err := os.Stat(p); err != nil {
				errs = append(errs, &ResourceLoadError{Language: code, Resource: kind, Err: err})
			}
		}
	}
	return errors.Join(errs...)
}

// FSSource reads resources from an fs.FS, such as embedded data or a
// testing/fstest.MapFS.
type FSSource struct {
	FS        fs.FS
	Languages Table
}

// NewFSSource returns an FSSource over fsys using table.
func NewFSSource(fsys fs.FS, table Table) *FSSource {
	return &FSSource{FS: fsys, Languages: table}
}

// Table returns the language table.
func (s *FSSource) Table() Table { return s.Languages }

func (s *FSSource) ReadResource(ctx context.Context, code string, kind Kind) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, ok := s.Languages[code]
	if !ok {
		return nil, &UnsupportedLanguageError{Language: code}
	}
	p := res.Path(kind)
	if p == "" {
		return nil, ErrNotConfigured
	}
	return fs.ReadFile(s.FS, path.Clean(p))
}
