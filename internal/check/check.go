// Package check runs a full configuration check: read, parse, precondition
// checks and per-document schema validation folded into one result.
package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/huppifluppi/survey-tool-cli/internal/document"
	"github.com/huppifluppi/survey-tool-cli/internal/observability"
	"github.com/huppifluppi/survey-tool-cli/internal/schemas"
	"github.com/huppifluppi/survey-tool-cli/internal/types"
)

const (
	// DefaultMinDocuments is the survey header plus one page.
	DefaultMinDocuments = 2
	// DefaultParallelism bounds the number of documents validated at once.
	DefaultParallelism = 4
)

// DefaultExtensions are the accepted configuration file extensions.
var DefaultExtensions = []string{".yaml", ".yml"}

// Options configures a Checker. Zero values select the defaults.
type Options struct {
	Extensions   []string
	MinDocuments int
	Parallelism  int

	// Schema replaces the embedded survey schema when set.
	Schema *schemas.Schema
	// SchemaPath names a schema file to load when Schema is nil.
	SchemaPath string
}

// Checker validates survey configuration files.
// A Checker holds no per-run state and may be shared.
type Checker struct {
	opts Options
}

// New creates a Checker.
func New(opts Options) *Checker {
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	if opts.MinDocuments <= 0 {
		opts.MinDocuments = DefaultMinDocuments
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = DefaultParallelism
	}
	return &Checker{opts: opts}
}

// Run checks the configuration file at path.
// Unreadable files, malformed YAML and schema load failures are returned as
// errors; every other problem is reported in the result.
func (c *Checker) Run(ctx context.Context, path string) (*types.CheckResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Cause: err}
	}
	if info.IsDir() {
		return nil, &FileReadError{Path: path, Cause: fmt.Errorf("is a directory")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Cause: err}
	}

	return c.RunSource(ctx, string(data), path)
}

// RunSource checks text as if it had been read from a file called name.
func (c *Checker) RunSource(ctx context.Context, text, name string) (*types.CheckResult, error) {
	runID := uuid.NewString()
	logger := observability.FromContext(ctx).With().
		Str("run_id", runID).
		Str("source", name).
		Logger()

	if !c.hasAcceptedExtension(name) {
		logger.Debug().Strs("extensions", c.opts.Extensions).Msg("extension not accepted")
		result := types.NewNotOK()
		result.RunID = runID
		result.RecordStructuralFailure(c.extensionMessage())
		return result, nil
	}

	docs, err := document.Parse(text)
	if err != nil {
		logger.Debug().Err(err).Msg("parse failed")
		return nil, err
	}
	logger.Debug().Int("documents", len(docs)).Msg("parsed")

	if len(docs) < c.opts.MinDocuments {
		result := types.NewNotOK()
		result.RunID = runID
		result.RecordStructuralFailure(c.countMessage(len(docs)))
		return result, nil
	}

	schema, err := c.schema()
	if err != nil {
		logger.Error().Err(err).Msg("schema load failed")
		return nil, err
	}

	perDocument, err := c.validateAll(ctx, docs, schema)
	if err != nil {
		return nil, err
	}

	result := types.NewAllOK()
	result.RunID = runID
	for i, violations := range perDocument {
		if len(violations) > 0 {
			logger.Debug().Int("document", i+1).Int("violations", len(violations)).Msg("document invalid")
		}
		result.RecordDocumentViolations(i, violations)
	}

	logger.Info().
		Bool("all_ok", result.AllOK).
		Int("errors", len(result.Errors)).
		Msg("check finished")
	return result, nil
}

// validateAll evaluates every document with bounded parallelism. The returned
// slice is indexed by document so merging keeps document order.
func (c *Checker) validateAll(ctx context.Context, docs []document.Value, schema *schemas.Schema) ([][]types.Violation, error) {
	out := make([][]types.Violation, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Parallelism)
	for i := range docs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			violations, err := schemas.Validate(docs[i], schema)
			if err != nil {
				return &ValidationError{Document: i, Cause: err}
			}
			out[i] = violations
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Checker) schema() (*schemas.Schema, error) {
	if c.opts.Schema != nil {
		return c.opts.Schema, nil
	}
	if c.opts.SchemaPath != "" {
		return schemas.LoadFile(c.opts.SchemaPath)
	}
	return schemas.Load()
}

func (c *Checker) hasAcceptedExtension(name string) bool {
	ext := filepath.Ext(name)
	for _, accepted := range c.opts.Extensions {
		if ext == accepted {
			return true
		}
	}
	return false
}

func (c *Checker) extensionMessage() string {
	return fmt.Sprintf("File has no Yaml extension (%s)", strings.Join(c.opts.Extensions, " or "))
}

func (c *Checker) countMessage(found int) string {
	if c.opts.MinDocuments == DefaultMinDocuments {
		return fmt.Sprintf("Found only %d documents in yaml. At least two (survey header and one page) are needed", found)
	}
	return fmt.Sprintf("Found only %d documents in yaml. At least %d (survey header and pages) are needed", found, c.opts.MinDocuments)
}
