package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/GriffinCanCode/miniapp/internal/infrastructure/logging"
	"github.com/GriffinCanCode/miniapp/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/miniapp/internal/persistence"
	"github.com/GriffinCanCode/miniapp/internal/shared/paths"
	"github.com/GriffinCanCode/miniapp/internal/shared/utils"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// unregisteredLabel keeps user supplied format strings out of metric labels
const unregisteredLabel = "unregistered"

// Context mediates between an application and its persisted state.
// It is not safe for concurrent use.
type Context[S any] struct {
	resources paths.Resources
	adapters  *persistence.Registry[S]
	logger    *logging.Logger
	metrics   *monitoring.Metrics
	limit     *utils.SizeValidator

	data    S
	present bool
}

type options struct {
	logger  *logging.Logger
	metrics *monitoring.Metrics
	maxSize *int
}

// Option configures a Context
type Option func(*options)

// WithLogger sets the logger used for import/export outcomes
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics records import/export metrics
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(o *options) {
		o.metrics = metrics
	}
}

// WithMaxSize limits the size of files Import reads. Zero disables the
// limit; the default is utils.MaxStateSize.
func WithMaxSize(n int) Option {
	return func(o *options) {
		o.maxSize = &n
	}
}

// New creates a context with no current state
func New[S any](resources paths.Resources, adapters *persistence.Registry[S], opts ...Option) (*Context[S], error) {
	if err := paths.ValidateAppName(resources.App); err != nil {
		return nil, err
	}
	if adapters == nil || adapters.Len() == 0 {
		return nil, fmt.Errorf("at least one persistence adapter is required")
	}

	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}
	limit := utils.DefaultSizeValidator()
	if o.maxSize != nil {
		limit = utils.NewSizeValidator(*o.maxSize)
	}

	return &Context[S]{
		resources: resources,
		adapters:  adapters,
		logger:    o.logger,
		metrics:   o.metrics,
		limit:     limit,
	}, nil
}

// Name returns the application name
func (c *Context[S]) Name() string {
	return c.resources.App
}

// Resources returns the resource location
func (c *Context[S]) Resources() paths.Resources {
	return c.resources
}

// Formats returns the registered format tags
func (c *Context[S]) Formats() []string {
	return c.adapters.Formats()
}

// Data returns the current state, and false when none is set
func (c *Context[S]) Data() (S, bool) {
	return c.data, c.present
}

// SetData replaces the current state
func (c *Context[S]) SetData(s S) {
	c.data = s
	c.present = true
}

// Clear drops the current state
func (c *Context[S]) Clear() {
	var zero S
	c.data = zero
	c.present = false
}

// DefaultPath returns the conventional file for a format
func (c *Context[S]) DefaultPath(format string) string {
	return c.resources.Default(persistence.NormalizeFormat(format))
}

// Exists reports whether the target file of an import exists
func (c *Context[S]) Exists(format, filename string) bool {
	info, err := os.Stat(c.resources.Resolve(filename, persistence.NormalizeFormat(format)))
	return err == nil && !info.IsDir()
}

// Export writes the current state with the adapter for format. An empty
// filename writes {base}/{appName}.{format}; relative names resolve under
// the base path. It returns the path written.
func (c *Context[S]) Export(ctx context.Context, format, filename string) (path string, err error) {
	format = persistence.NormalizeFormat(format)
	adapter, lookupErr := c.adapters.Lookup(format)

	timer := c.metrics.StartOperation(c.resources.App, monitoring.OpExport, c.label(format, lookupErr))
	defer func() {
		timer.Stop(err)
		c.logOutcome(monitoring.OpExport, format, path, err)
	}()

	if !c.present {
		return "", fmt.Errorf("export %s: %w", format, persistence.ErrNoData)
	}
	if lookupErr != nil {
		return "", fmt.Errorf("export: %w", lookupErr)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("export %s: %w", format, err)
	}

	data, err := adapter.Encode(c.data)
	if err != nil {
		return "", fmt.Errorf("export %s: %w", format, err)
	}

	target := c.resources.Resolve(filename, format)
	if err := writeAtomic(target, data); err != nil {
		return "", err
	}
	c.metrics.RecordBytes(c.resources.App, monitoring.OpExport, format, len(data))
	return target, nil
}

// Import reads a file with the adapter for format and replaces the current
// state. On any failure the current state is left untouched. A file holding
// an empty record array clears the current state.
func (c *Context[S]) Import(ctx context.Context, format, filename string) (path string, err error) {
	format = persistence.NormalizeFormat(format)
	adapter, lookupErr := c.adapters.Lookup(format)

	timer := c.metrics.StartOperation(c.resources.App, monitoring.OpImport, c.label(format, lookupErr))
	defer func() {
		timer.Stop(err)
		c.logOutcome(monitoring.OpImport, format, path, err)
	}()

	if lookupErr != nil {
		return "", fmt.Errorf("import: %w", lookupErr)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("import %s: %w", format, err)
	}

	target := c.resources.Resolve(filename, format)
	data, err := os.ReadFile(target)
	if err != nil {
		return "", &persistence.IOError{Op: "read", Path: target, Err: err}
	}
	if err := c.limit.ValidateSize(data); err != nil {
		return "", &persistence.ParseError{Format: format, Path: target, Err: err}
	}

	decoded, ok, err := adapter.Decode(data)
	if err != nil {
		var pe *persistence.ParseError
		if errors.As(err, &pe) {
			pe.Path = target
			if pe.MediaType == "" {
				pe.MediaType = mimetype.Detect(data).String()
			}
			return "", pe
		}
		return "", &persistence.ParseError{Format: format, Path: target, Err: err}
	}

	if ok {
		c.SetData(decoded)
	} else {
		c.Clear()
	}
	c.metrics.RecordBytes(c.resources.App, monitoring.OpImport, format, len(data))
	return target, nil
}

func (c *Context[S]) label(format string, lookupErr error) string {
	if lookupErr != nil {
		return unregisteredLabel
	}
	return format
}

func (c *Context[S]) logOutcome(op, format, path string, err error) {
	fields := []zap.Field{
		zap.String("app", c.resources.App),
		zap.String("op", op),
		zap.String("format", format),
	}
	if path != "" {
		fields = append(fields, zap.String("path", path))
	}
	if err != nil {
		c.logger.Warn("state "+op+" failed", append(fields, zap.Error(err))...)
		return
	}
	c.logger.Info("state "+op+" completed", fields...)
}

// writeAtomic writes data to a temp file next to path and renames it over
// path, creating the parent directory when needed.
func writeAtomic(path string, data []byte) error {
	fail := func(err error) error {
		return &persistence.IOError{Op: "write", Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fail(err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fail(err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		return fail(err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fail(err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fail(err)
	}
	return nil
}
