package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files keyed by name.
// It is the scanner-resolution capability consumed by the diagnostic
// renderer: spans carry a source name, the FileSet turns a name back
// into something that can translate offsets and hand out line text.
type FileSet struct {
	files   []File
	index   map[string]FileID // name -> id
	baseDir string            // базовая директория для относительных путей
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// SetBaseDir устанавливает базовую директорию для относительных путей.
func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.baseDir = dir
}

// BaseDir возвращает текущую базовую директорию.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// Add stores a file from normalized bytes, computes LineIdx, and returns a
// new FileID. It always creates a new FileID even if a file with the same
// name already exists; the index keeps pointing at the latest version.
func (fileSet *FileSet) Add(name string, content []byte, flags FileFlags) FileID {
	lineIdx := buildLineIndex(content)
	normalizedName := normalizePath(name)

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Name:    normalizedName,
		Content: content,
		LineIdx: lineIdx,
		Flags:   flags,
	})
	fileSet.index[normalizedName] = id
	return id
}

// ReadNormalized reads a file from disk and normalizes it (BOM stripped,
// CRLF collapsed). It performs no FileSet mutation, so callers may run it
// concurrently and Add the results afterwards.
func ReadNormalized(path string) ([]byte, FileFlags, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return content, flags, nil
}

// Load reads a file from disk via ReadNormalized and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	content, flags, err := ReadNormalized(path)
	if err != nil {
		return 0, err
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the
// FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// GetByName возвращает *File по имени, если был загружен в этот FileSet.
func (fileSet *FileSet) GetByName(name string) (*File, bool) {
	if id, ok := fileSet.index[normalizePath(name)]; ok {
		return &fileSet.files[id], true
	}
	return nil, false
}

// Resolve converts a span into zero-based start and end positions.
// The span's source must have been added to this FileSet.
func (fileSet *FileSet) Resolve(span Span) (start, end Pos, err error) {
	f, ok := fileSet.GetByName(span.Name)
	if !ok {
		return Pos{}, Pos{}, fmt.Errorf("source %q not found in FileSet", span.Name)
	}
	return f.LineColAt(span.Start), f.LineColAt(span.End), nil
}
