package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
// Content is normalized: BOM stripped, CRLF collapsed to LF.
type File struct {
	ID      FileID
	Name    string
	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}

// Pos is a zero-based position within a source file. Display layers add 1
// to both coordinates when printing for humans.
type Pos struct {
	Line uint32 // 0-based
	Col  uint32 // 0-based, in bytes from the line start
}
