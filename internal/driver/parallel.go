package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"ember/internal/diag"
	"ember/internal/source"
)

// SourceExt is the extension of Ember source files.
const SourceExt = ".em"

// ListSourceFiles returns the sorted *.em files under dir.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ExpandTargets turns a mix of files and directories into a sorted,
// duplicate-free list of source files.
func ExpandTargets(targets []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, err
		}
		files := []string{target}
		if info.IsDir() {
			if files, err = ListSourceFiles(target); err != nil {
				return nil, err
			}
		}
		for _, f := range files {
			clean := filepath.Clean(f)
			if _, ok := seen[clean]; ok {
				continue
			}
			seen[clean] = struct{}{}
			out = append(out, clean)
		}
	}
	sort.Strings(out)
	return out, nil
}

// CompileAll compiles paths in parallel, at most jobs at a time.
// Files are preloaded into one FileSet; every file gets its own Memory.
// Results are in the order of paths. A file that fails to load gets a
// result holding only an IO diagnostic.
func CompileAll(ctx context.Context, paths []string, opts Options, jobs int) (*source.FileSet, []*Result, error) {
	fileSet := source.NewFileSet()
	results := make([]*Result, len(paths))
	if len(paths) == 0 {
		return fileSet, results, nil
	}

	fileIDs := make([]source.FileID, len(paths))
	loadErrors := make(map[int]error)
	for i, path := range paths {
		id, err := fileSet.Load(path)
		if err != nil {
			// пустой виртуальный файл, чтобы диагностика указывала на путь
			loadErrors[i] = err
			id = fileSet.AddVirtual(path, nil)
		}
		fileIDs[i] = id
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErr, failed := loadErrors[i]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fileIDs[i]}, "failed to load file: "+loadErr.Error()))
				results[i] = &Result{Path: path, FileSet: fileSet, FileID: fileIDs[i], Bag: bag}
				return nil
			}
			// индекс i уникален для горутины, мьютекс не нужен
			results[i] = CompileFile(gctx, fileSet, fileIDs[i], opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
