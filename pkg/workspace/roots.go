// Package workspace resolves the workspace root and data directory for a
// running tool process.
//
// Root hints arrive from protocol events ("roots/list" and "initialize") and
// are held in a RootStore. A Resolver combines those hints with environment
// settings and process fallbacks.
package workspace

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
)

// RootSnapshot is an immutable view of the workspace root hints.
// Entries may be blank; lookups skip them.
type RootSnapshot struct {
	// ListRoots are the hints from the most recent roots/list response.
	ListRoots []string
	// InitializeRoots are the hints supplied when the session was initialized.
	InitializeRoots []string
}

// Root is a protocol-level location handle.
type Root struct {
	URI  string `json:"uri" yaml:"uri"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// RootStore holds the current RootSnapshot. It is safe for concurrent use;
// readers always observe a complete snapshot.
type RootStore struct {
	current atomic.Pointer[RootSnapshot]
}

// NewRootStore creates an empty store.
func NewRootStore() *RootStore {
	s := &RootStore{}
	s.current.Store(&RootSnapshot{ListRoots: []string{}, InitializeRoots: []string{}})
	return s
}

// Snapshot returns a copy of the current hints.
func (s *RootStore) Snapshot() RootSnapshot {
	snap := s.current.Load()
	return RootSnapshot{
		ListRoots:       clonePaths(snap.ListRoots),
		InitializeRoots: clonePaths(snap.InitializeRoots),
	}
}

// SetListRoots replaces the list-roots hints, keeping the initialize hints.
func (s *RootStore) SetListRoots(paths []string) {
	s.update(func(snap *RootSnapshot) {
		snap.ListRoots = clonePaths(paths)
	})
}

// SetInitializeRoots replaces the initialize hints, keeping the list-roots hints.
func (s *RootStore) SetInitializeRoots(paths []string) {
	s.update(func(snap *RootSnapshot) {
		snap.InitializeRoots = clonePaths(paths)
	})
}

// HandleListRoots records the roots returned by a roots/list request.
func (s *RootStore) HandleListRoots(roots []Root) {
	s.SetListRoots(PathsFromRoots(roots))
}

// HandleInitialize records the roots supplied at session initialization.
func (s *RootStore) HandleInitialize(roots []Root) {
	s.SetInitializeRoots(PathsFromRoots(roots))
}

// update swaps in a modified copy of the current snapshot. The CAS loop keeps
// a concurrent update of the other field from being lost.
func (s *RootStore) update(apply func(*RootSnapshot)) {
	for {
		old := s.current.Load()
		next := *old
		apply(&next)
		if s.current.CompareAndSwap(old, &next) {
			return
		}
	}
}

func clonePaths(paths []string) []string {
	out := make([]string, len(paths))
	copy(out, paths)
	return out
}

// PathsFromRoots converts location handles to absolute local paths. Handles
// that do not denote a local file-system location are dropped.
func PathsFromRoots(roots []Root) []string {
	paths := make([]string, 0, len(roots))
	for _, root := range roots {
		if p, ok := PathFromURI(root.URI); ok {
			paths = append(paths, p)
		}
	}
	return paths
}

// PathFromURI returns the cleaned absolute path for a file:// URI.
func PathFromURI(uri string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(uri))
	if err != nil || !strings.EqualFold(u.Scheme, "file") {
		return "", false
	}
	if u.Host != "" && !strings.EqualFold(u.Host, "localhost") {
		return "", false
	}

	p := u.Path
	if p == "" {
		p = u.Opaque
	}
	if p == "" {
		return "", false
	}

	// file:///C:/work -> C:/work
	if runtime.GOOS == "windows" && len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}

	p = filepath.FromSlash(p)
	if !filepath.IsAbs(p) {
		return "", false
	}
	return filepath.Clean(p), true
}
