package depgraph

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/depscope/depscope/discover"
	"github.com/depscope/depscope/internal/devlog"
	"github.com/depscope/depscope/pyimports"
	"github.com/depscope/depscope/resolve"
)

// FileReadError reports a file that could not be read. The file is skipped;
// the build continues.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// Options configures a graph build.
type Options struct {
	// Root is the project directory to analyze.
	Root string
	// ModuleBase optionally qualifies absolute import resolution.
	ModuleBase string
	// ExcludeDirs adds directory names to the default exclusion set.
	ExcludeDirs []string
	// Reader reads file contents; defaults to the filesystem.
	Reader ContentReader
	// Parallelism bounds concurrent per-file parsing; defaults to GOMAXPROCS.
	Parallelism int
}

// SkippedFile identifies a discovered file excluded from edge extraction.
type SkippedFile struct {
	Path   string
	Reason string
}

// Report describes a completed build, including files that were discovered
// but could not be read or parsed.
type Report struct {
	Root       string
	ModuleBase string
	FileCount  int
	Skipped    []SkippedFile
}

// fileResult is the outcome of extracting and resolving one file.
type fileResult struct {
	deps []string
	skip *SkippedFile
}

// Build discovers Python files under opts.Root, extracts and resolves their
// imports in parallel, and assembles the dependency graph. Per-file read and
// parse failures are recorded in the report; a skipped file still appears as
// a node with no outgoing edges. Only a missing root or an invalid module
// base fails the build.
func Build(ctx context.Context, opts Options) (*DependencyGraph, Report, error) {
	reader := opts.Reader
	if reader == nil {
		reader = FilesystemContentReader()
	}

	walker, err := discover.NewWalker(opts.Root, opts.ExcludeDirs)
	if err != nil {
		return nil, Report{}, err
	}

	files, err := walker.Walk()
	if err != nil {
		return nil, Report{}, err
	}

	resolver, err := resolve.NewResolver(walker.Root(), opts.ModuleBase, files)
	if err != nil {
		return nil, Report{}, err
	}

	results := make([]fileResult, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	limit := opts.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	group.SetLimit(limit)

	for i, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			results[i] = analyzeFile(path, reader, resolver)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, Report{}, err
	}

	// Merge deterministically: files are sorted and edge sets are
	// order-independent, so parallel scheduling cannot change the graph.
	graph := NewDependencyGraph()
	report := Report{
		Root:       walker.Root(),
		ModuleBase: opts.ModuleBase,
		FileCount:  len(files),
	}

	for i, path := range files {
		graph.AddFile(SourceFile{
			Path:   path,
			Module: resolve.ModuleName(walker.Root(), opts.ModuleBase, path),
			Dir:    filepath.Dir(path),
		})
		if skip := results[i].skip; skip != nil {
			report.Skipped = append(report.Skipped, *skip)
		}
	}

	for i, path := range files {
		for _, dep := range results[i].deps {
			if !graph.Contains(dep) {
				continue
			}
			if err := graph.AddDependency(path, dep); err != nil {
				return nil, Report{}, fmt.Errorf("failed to add dependency %s -> %s: %w", path, dep, err)
			}
		}
	}

	devlog.Debug("dependency graph built", map[string]any{
		"root":    report.Root,
		"files":   report.FileCount,
		"edges":   graph.Size(),
		"skipped": len(report.Skipped),
	})

	return graph, report, nil
}

func analyzeFile(path string, reader ContentReader, resolver *resolve.Resolver) fileResult {
	content, err := reader(path)
	if err != nil {
		readErr := &FileReadError{Path: path, Err: err}
		return fileResult{skip: &SkippedFile{Path: path, Reason: readErr.Error()}}
	}

	decls, err := pyimports.Extract(path, content)
	if err != nil {
		return fileResult{skip: &SkippedFile{Path: path, Reason: err.Error()}}
	}

	var deps []string
	for _, decl := range decls {
		deps = append(deps, resolver.Resolve(decl, path)...)
	}
	return fileResult{deps: deps}
}
