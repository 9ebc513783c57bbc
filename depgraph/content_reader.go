package depgraph

import "os"

// ContentReader reads file content given a file path. Callers control how
// files are read so tests can inject in-memory sources.
type ContentReader func(filePath string) ([]byte, error)

// FilesystemContentReader returns a ContentReader backed by the local filesystem.
func FilesystemContentReader() ContentReader {
	return os.ReadFile
}
