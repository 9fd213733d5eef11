package extract

import (
	"context"
	"fmt"
	"runtime"

	"github.com/goliatone/go-pagefill/pkg/document"
	"github.com/goliatone/go-pagefill/pkg/placeholder"
)

const defaultYieldEvery = 256

// Option configures an extraction.
type Option func(*config)

type config struct {
	yieldEvery int
	cache      *placeholder.Cache
}

// WithYieldEvery sets how many nodes are visited between cooperative yields
// and context checks. Values <= 0 restore the default.
func WithYieldEvery(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.yieldEvery = n
		}
	}
}

// WithCache uses the provided matcher cache instead of the package default.
func WithCache(cache *placeholder.Cache) Option {
	return func(cfg *config) {
		if cache != nil {
			cfg.cache = cache
		}
	}
}

type frame struct {
	node  document.Node
	owner string
	path  []int
}

// Extract walks root and collects every placeholder found for delims. The
// tree is never modified. The walk yields the processor periodically so very
// large trees do not monopolise a worker; only the final result is returned
// and a cancelled ctx aborts with its error.
func Extract(ctx context.Context, root document.Node, delims placeholder.Delimiters, opts ...Option) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config{yieldEvery: defaultYieldEvery}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var (
		matcher *placeholder.Matcher
		err     error
	)
	if cfg.cache != nil {
		matcher, err = cfg.cache.Compile(delims)
	} else {
		matcher, err = placeholder.Cached(delims)
	}
	if err != nil {
		return Result{}, fmt.Errorf("extract: %w", err)
	}

	acc := newAccumulator()
	stack := []frame{{node: root}}
	visited := 0

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		visited++
		if visited%cfg.yieldEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			runtime.Gosched()
		}

		owner := visit(matcher, acc, top)

		// Push in reverse so children pop in document order.
		children := top.node.Children
		for i := len(children) - 1; i >= 0; i-- {
			path := make([]int, len(top.path)+1)
			copy(path, top.path)
			path[len(top.path)] = i
			stack = append(stack, frame{node: children[i], owner: owner, path: path})
		}
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return acc.result(delims), nil
}

// visit scans one node and returns the owner its children inherit.
func visit(m *placeholder.Matcher, acc *accumulator, f frame) string {
	n := f.node
	switch n.Kind {
	case document.KindText:
		scan(m, acc, n.Text, f.owner, SourceText, f.path)
		return f.owner
	case document.KindElement:
		owner := f.owner
		if id := n.OwnerID(); id != "" {
			owner = id
		}
		scan(m, acc, n.Content, owner, SourceText, f.path)
		for _, name := range document.SortedAttributeNames(n.Attributes) {
			scan(m, acc, n.Attributes[name], owner, SourceAttrPrefix+name, f.path)
		}
		return owner
	default:
		return f.owner
	}
}

func scan(m *placeholder.Matcher, acc *accumulator, text, owner, source string, path []int) {
	if text == "" {
		return
	}
	for _, key := range m.Keys(text) {
		acc.add(key, owner, source, path)
	}
}

// ExtractProject decodes editor project JSON and extracts from it.
func ExtractProject(ctx context.Context, project []byte, delims placeholder.Delimiters, opts ...Option) (Result, error) {
	root, err := document.DecodeProject(project)
	if err != nil {
		return Result{}, fmt.Errorf("extract: %w", err)
	}
	return Extract(ctx, root, delims, opts...)
}
