package loader

import (
	"github.com/Carmen-Shannon/oxy-spread/common"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithNamePrefix sets the node name prefix that selects panels. A panel name is the prefix, an optional
// underscore and a number, matched case-insensitively; an empty prefix selects every named mesh node.
//
// Parameters:
//   - prefix: the name prefix
//
// Returns:
//   - LoaderBuilderOption: a function that applies the prefix option to a loader
func WithNamePrefix(prefix string) LoaderBuilderOption {
	return func(l *loader) {
		l.namePrefix = prefix
	}
}

// WithWorkers sets the number of workers LoadAll uses. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the workers option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = max(n, 1)
	}
}

// WithElements pre-populates the cache with elements, for scenes built without a file.
//
// Parameters:
//   - key: the cache key
//   - elements: the elements to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the elements option to a loader
func WithElements(key string, elements []*common.Element) LoaderBuilderOption {
	return func(l *loader) {
		l.cache[key] = cloneElements(elements)
	}
}
