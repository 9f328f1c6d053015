package worker

import (
	"bufio"
	"context"
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/avolkov/dealbrief/internal/model"
)

// Processor turns one digest file into a report.
type Processor interface {
	ProcessFile(ctx context.Context, path string) (*model.DigestReport, error)
}

// FileJob processes a single digest file.
type FileJob struct {
	Path      string
	Processor Processor
}

// Execute runs the processor against the file.
func (j *FileJob) Execute(ctx context.Context) Result {
	report, err := j.Processor.ProcessFile(ctx, j.Path)
	return &FileResult{Path: j.Path, Report: report, Error: err}
}

// FileResult is the outcome of one file job.
type FileResult struct {
	Path   string
	Report *model.DigestReport
	Error  error
}

// Err returns the job error, if any.
func (r *FileResult) Err() error {
	return r.Error
}

// BatchProcessor processes many digest files concurrently.
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{processor: processor, concurrency: concurrency}
}

// ProcessFiles runs every path through the pool. Results come back sorted by
// path so batch output is stable regardless of completion order.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*FileResult {
	if len(paths) == 0 {
		return []*FileResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&FileJob{Path: path, Processor: b.processor})
	}

	raw := pool.Wait()
	results := make([]*FileResult, len(raw))
	for i, r := range raw {
		results[i] = r.(*FileResult)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results
}

// ProcessManifest reads digest paths from a manifest file and processes them.
func (b *BatchProcessor) ProcessManifest(ctx context.Context, manifestPath string) ([]*FileResult, error) {
	paths, err := ReadManifest(manifestPath)
	if err != nil {
		return nil, eris.Wrap(err, "read manifest")
	}
	return b.ProcessFiles(ctx, paths), nil
}

// ReadManifest reads one digest path per line, skipping blanks, comments,
// and duplicates.
func ReadManifest(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open manifest %s", path)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrap(err, "scan manifest")
	}
	return paths, nil
}
