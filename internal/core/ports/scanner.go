package ports

// DependencyScanner recognizes local-include syntax in a single line of
// source text.
//
//go:generate go run go.uber.org/mock/mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type DependencyScanner interface {
	// ScanLine inspects one raw line from the file at sourcePath. If the line
	// is a local include that resolves (relative to the including file's
	// directory) to an existing file, it returns the dependency's absolute
	// path and true. It returns false for non-include lines and for includes
	// of paths that do not exist on disk. ScanLine must not read any file
	// itself beyond the line it is given.
	ScanLine(sourcePath, line string) (string, bool)
}
