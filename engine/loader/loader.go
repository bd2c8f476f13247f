package loader

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-spread/common"
)

// LoaderBackendType identifies the scene file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// DefaultNamePrefix selects the card panels of a scene.
const DefaultNamePrefix = "Card"

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	namePrefix string
	cardName   *regexp.Regexp
	cache      map[string][]*common.Element

	backend loaderBackend

	workers int
	pool    worker.DynamicWorkerPool
}

// Loader extracts card panels from scene files and caches them by path.
// A panel is a mesh node named by the configured prefix, an optional underscore and a number
// ("Card_3", "card12"; case-insensitive). Group nodes such as "Cards" are skipped.
// Its position is the node's world-space translation. Results come back in scene traversal order,
// so callers sort them (see panel.SortByNameSuffix) before building a registry.
// Every call returns fresh Element copies, so callers may modify them.
type Loader interface {
	// Load imports a scene file and caches the result.
	// If the file is already cached, the cached elements are returned.
	// The backend is selected based on the file extension (.gltf/.glb → glTF backend).
	//
	// Parameters:
	//   - path: the file path to the scene file
	//
	// Returns:
	//   - []*common.Element: the matching elements
	//   - error: error if loading fails
	Load(path string) ([]*common.Element, error)

	// LoadReader imports a scene from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key for the loaded scene
	//   - r: the reader providing scene data
	//   - isGLB: true if the reader provides GLB binary data
	//
	// Returns:
	//   - []*common.Element: the matching elements
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, isGLB bool) ([]*common.Element, error)

	// LoadAll loads several files concurrently on the loader's worker pool.
	// Every file is attempted; failures are joined into the returned error.
	//
	// Parameters:
	//   - paths: the files to load
	//
	// Returns:
	//   - map[string][]*common.Element: the elements of each successfully loaded path
	//   - error: the joined load errors, or nil
	LoadAll(paths []string) (map[string][]*common.Element, error)

	// Get retrieves cached elements by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - []*common.Element: copies of the cached elements, or nil
	Get(name string) []*common.Element

	// NamePrefix returns the prefix panels are selected by.
	NamePrefix() string

	// Close stops the loader's worker pool. The loader must not be used afterwards.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:         sync.RWMutex{},
		namePrefix: DefaultNamePrefix,
		cache:      make(map[string][]*common.Element),
		workers:    max(runtime.NumCPU()-1, 1),
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	l.cardName = cardNamePattern(l.namePrefix)

	// Queue size of 256 covers any realistic number of deck files.
	l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	return l
}

func (l *loader) Load(path string) ([]*common.Element, error) {
	if cached := l.Get(path); cached != nil {
		return cached, nil
	}

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	nodes, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return l.store(path, nodes), nil
}

func (l *loader) LoadReader(name string, r io.Reader, isGLB bool) ([]*common.Element, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}

	nodes, err := l.backend.LoadReader(r, isGLB)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	return l.store(name, nodes), nil
}

func (l *loader) LoadAll(paths []string) (map[string][]*common.Element, error) {
	type result struct {
		elements []*common.Element
		err      error
	}
	results := make([]result, len(paths))

	// The pool's Wait blocks until workers idle out, so a WaitGroup is the barrier.
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		l.pool.SubmitTask(worker.Task{
			ID:      i,
			Payload: path,
			Do: func() (any, error) {
				defer wg.Done()
				els, err := l.Load(path)
				results[i] = result{elements: els, err: err}
				return els, err
			},
		})
	}
	wg.Wait()

	out := make(map[string][]*common.Element, len(paths))
	var errs []error
	for i, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		out[paths[i]] = r.elements
	}
	return out, errors.Join(errs...)
}

func (l *loader) Get(name string) []*common.Element {
	l.mu.RLock()
	defer l.mu.RUnlock()
	cached, ok := l.cache[name]
	if !ok {
		return nil
	}
	return cloneElements(cached)
}

func (l *loader) NamePrefix() string {
	return l.namePrefix
}

func (l *loader) Close() {
	l.pool.Stop()
}

// cardNamePattern matches prefix, an optional underscore and a numeric suffix, ignoring case.
// An empty prefix matches any name.
func cardNamePattern(prefix string) *regexp.Regexp {
	if prefix == "" {
		return regexp.MustCompile(`.`)
	}
	return regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(prefix) + `_?\d+$`)
}

// store keeps the mesh nodes whose name matches the card pattern, caches them under key and returns a copy.
func (l *loader) store(key string, nodes []sceneNode) []*common.Element {
	elements := make([]*common.Element, 0, len(nodes))
	for _, n := range nodes {
		if !n.mesh || !l.cardName.MatchString(n.name) {
			continue
		}
		elements = append(elements, &common.Element{Name: n.name, Position: n.world})
	}
	log.Printf("[Loader] %s: %d of %d named nodes are %q cards", key, len(elements), len(nodes), l.namePrefix)

	l.mu.Lock()
	l.cache[key] = elements
	l.mu.Unlock()
	return cloneElements(elements)
}

// resolveBackend selects an appropriate loader backend based on the file extension.
// Currently only glTF/GLB is supported.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf", ".glb":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("unsupported scene format: %s", ext)
	}
}

func cloneElements(src []*common.Element) []*common.Element {
	out := make([]*common.Element, len(src))
	for i, el := range src {
		cp := *el
		out[i] = &cp
	}
	return out
}
