package feed

import "sort"

// Registry is a name-keyed set of plugin instances. It is built once at
// startup and passed explicitly through the pipeline; there is no ambient
// global registry, so concurrent runs never share state.
type Registry struct {
	plugins map[string]Plugin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// Register adds a plugin, replacing any previous plugin of the same name.
func (r *Registry) Register(p Plugin) {
	r.plugins[p.Name()] = p
}

// Get returns the plugin registered under name.
func (r *Registry) Get(name string) (Plugin, bool) {
	p, ok := r.plugins[name]
	return p, ok
}

// Has reports whether a plugin is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.plugins[name]
	return ok
}

// Names returns all registered plugin names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
