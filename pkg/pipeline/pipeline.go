// Package pipeline runs conversions for the CLI and the HTTP server.
//
// The conversion itself lives in [convert]; this package adds everything an
// entry point needs around it:
//
//  1. Load: read the input file (or take bytes from a request body)
//  2. Parse: decode the Excalidraw JSON, reporting bad syntax as INVALID_DOCUMENT
//  3. Convert: extract and render, consulting the cache first
//  4. Write: store the markup at Options.Output, byte for byte
//
// Previews follow the same load/parse/cache path but render through Graphviz.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Input:     "diagram.excalidraw",
//	    Direction: "LR",
//	    Output:    "diagram.mmd",
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Conversion.NodeCount)
//
// A Runner holds no per-run state, so one instance can serve concurrent
// requests.
//
// [convert]: github.com/matzehuels/excalimaid/pkg/convert
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/excalimaid/pkg/cache"
	"github.com/matzehuels/excalimaid/pkg/convert"
	"github.com/matzehuels/excalimaid/pkg/errors"
	"github.com/matzehuels/excalimaid/pkg/flowchart"
	"github.com/matzehuels/excalimaid/pkg/render/nodelink"
)

// MaxDocumentSize bounds the accepted document size in bytes.
const MaxDocumentSize = 32 << 20

// =============================================================================
// Options
// =============================================================================

// Options configures a conversion run.
type Options struct {
	// Input is the path of the Excalidraw document. Ignored by ExecuteBytes.
	Input string `json:"input,omitempty"`

	// Direction forces the layout direction (TD, TB, LR, BT, RL, any case).
	// Empty infers it from the diagram.
	Direction string `json:"direction,omitempty"`

	// Output, when set, receives the rendered markup.
	Output string `json:"output,omitempty"`

	// Refresh skips the cache lookup (the fresh result is still stored).
	Refresh bool `json:"refresh,omitempty"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`

	direction flowchart.Direction
	validated bool
}

// ValidateAndSetDefaults checks user-supplied fields. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Direction != "" {
		d, err := flowchart.ParseDirection(o.Direction)
		if err != nil {
			return err
		}
		o.direction = d
	}
	if o.Output != "" {
		if err := errors.ValidatePath(o.Output); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ConvertOptions returns the options passed to convert.Convert.
func (o *Options) ConvertOptions() convert.Options {
	return convert.Options{Direction: o.direction, Output: o.Output}
}

// ConvertKeyOpts returns cache key options for a conversion.
func (o *Options) ConvertKeyOpts() cache.ConvertKeyOpts {
	return cache.ConvertKeyOpts{Direction: string(o.direction)}
}

// PreviewOptions configures a Graphviz preview.
type PreviewOptions struct {
	Direction string
	Format    string
	Refresh   bool
}

func (o PreviewOptions) parse() (flowchart.Direction, nodelink.Format, error) {
	var dir flowchart.Direction
	if o.Direction != "" {
		d, err := flowchart.ParseDirection(o.Direction)
		if err != nil {
			return "", "", err
		}
		dir = d
	}
	format, err := nodelink.ParseFormat(o.Format)
	if err != nil {
		return "", "", err
	}
	return dir, format, nil
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Conversion is the conversion result. Its Graph is nil when the result
	// was served from the cache.
	Conversion convert.Result

	// DocHash is the SHA-256 of the raw document.
	DocHash string

	// CacheHit reports whether the conversion came from the cache.
	CacheHit bool

	// Stats contains timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ParseTime   time.Duration
	ConvertTime time.Duration
}
