package quill

import (
	"context"

	"github.com/deepnoodle-ai/quill/expr"
	"github.com/deepnoodle-ai/quill/parser"
	"github.com/deepnoodle-ai/quill/program"
)

// Option configures parsing.
type Option func(*options)

type options struct {
	filename string
	maxDepth int
}

func collectOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) parserOpts() []parser.Option {
	var opts []parser.Option
	if o.filename != "" {
		opts = append(opts, parser.WithFilename(o.filename))
	}
	if o.maxDepth > 0 {
		opts = append(opts, parser.WithMaxDepth(o.maxDepth))
	}
	return opts
}

// WithFilename sets the filename for the source code being parsed.
// This is used for error messages.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithMaxDepth limits expression nesting during parsing. Inputs that nest
// deeper fail with a parse error instead of exhausting the stack.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// Parse parses Quil source code into a Program. The returned Program is
// immutable and safe for concurrent use; its analyses (Validate,
// BasicBlocks, DependencyGraph) are pure reads.
//
// Parsing stops at the first error. The returned error describes the
// failure with its source location and renders a friendly report through
// the errors package.
func Parse(ctx context.Context, source string, opts ...Option) (*program.Program, error) {
	o := collectOptions(opts...)
	return parser.Parse(ctx, source, o.parserOpts()...)
}

// ParseExpression parses a single arithmetic expression, such as a gate
// parameter. The entire input must be consumed.
func ParseExpression(source string, opts ...Option) (expr.Expression, error) {
	o := collectOptions(opts...)
	return parser.ParseExpression(source, o.parserOpts()...)
}

// MustParse is like Parse but panics if the source does not parse. It is
// intended for tests and for initializing package-level variables from
// trusted source text.
func MustParse(source string, opts ...Option) *program.Program {
	prog, err := Parse(context.Background(), source, opts...)
	if err != nil {
		panic(err)
	}
	return prog
}
