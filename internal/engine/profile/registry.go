package profile

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Registry maps filetypes and file extensions to profiles.
// It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	profiles   map[string]Profile
	extensions map[string]string // extension -> filetype
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		profiles:   make(map[string]Profile),
		extensions: make(map[string]string),
	}
}

// NewBuiltinRegistry creates a registry holding the built-in profiles.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, p := range Builtins() {
		r.MustRegister(p)
	}
	return r
}

// Register adds or replaces the profile for p.Name.
func (r *Registry) Register(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p = p.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.profiles[p.Name]; ok {
		for _, ext := range old.Extensions {
			if r.extensions[normalizeExt(ext)] == old.Name {
				delete(r.extensions, normalizeExt(ext))
			}
		}
	}
	r.profiles[p.Name] = p
	for _, ext := range p.Extensions {
		r.extensions[normalizeExt(ext)] = p.Name
	}
	return nil
}

// MustRegister registers a profile and panics on error.
// Useful for registering built-in profiles.
func (r *Registry) MustRegister(p Profile) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// Lookup returns the profile registered for filetype.
func (r *Registry) Lookup(filetype string) (Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[strings.ToLower(filetype)]
	if !ok {
		return Profile{}, false
	}
	return p.Clone(), true
}

// Has reports whether a profile is registered for filetype.
func (r *Registry) Has(filetype string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.profiles[strings.ToLower(filetype)]
	return ok
}

// FiletypeForPath returns the filetype registered for the extension of path.
func (r *Registry) FiletypeForPath(path string) (string, bool) {
	ext := normalizeExt(filepath.Ext(path))
	if ext == "" {
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	ft, ok := r.extensions[ext]
	return ft, ok
}

// ForPath returns the profile registered for the extension of path.
func (r *Registry) ForPath(path string) (Profile, bool) {
	ft, ok := r.FiletypeForPath(path)
	if !ok {
		return Profile{}, false
	}
	return r.Lookup(ft)
}

// Filetypes returns all registered filetypes sorted by name.
func (r *Registry) Filetypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply resolves definitions in order and registers the results.
// A definition may extend a profile registered earlier in the same call.
func (r *Registry) Apply(defs []Definition) error {
	for _, d := range defs {
		p, err := d.Resolve(r)
		if err != nil {
			return fmt.Errorf("profile %q: %w", d.Name, err)
		}
		if err := r.Register(p); err != nil {
			return fmt.Errorf("profile %q: %w", d.Name, err)
		}
	}
	return nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
