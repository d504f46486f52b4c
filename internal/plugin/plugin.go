// Package plugin hosts editor extensions. Plugins observe the session
// through notification hooks; they cannot veto or alter an edit, and a
// misbehaving plugin must never take the editor down with it.
package plugin

import (
	"fmt"
	"io"

	"github.com/tern-editor/tern/internal/log"
)

// Plugin is the contract an extension implements. Name must be stable
// and unique within a registry. OnLoad runs once at registration;
// returning an error rejects the plugin. The notification hooks are
// fire-and-forget.
type Plugin interface {
	Name() string
	OnLoad() error
	OnKeyPress(key int)
	OnBufferChange()
}

// Registry owns the loaded plugins and fans out notifications in
// registration order.
type Registry struct {
	plugins map[string]Plugin
	order   []string
	logger  *log.Logger
}

// NewRegistry returns an empty registry. A nil logger discards
// plugin diagnostics.
func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Discard()
	}
	return &Registry{
		plugins: make(map[string]Plugin),
		logger:  logger.WithComponent("plugin"),
	}
}

// Register loads p into the registry. Registration fails if the name
// is taken or OnLoad reports an error; a rejected plugin is not
// retained.
func (r *Registry) Register(p Plugin) error {
	name := p.Name()
	if name == "" {
		return fmt.Errorf("plugin has no name")
	}
	if _, exists := r.plugins[name]; exists {
		return fmt.Errorf("plugin %q already registered", name)
	}
	if err := r.guardedLoad(p); err != nil {
		return fmt.Errorf("plugin %q: %w", name, err)
	}
	r.plugins[name] = p
	r.order = append(r.order, name)
	r.logger.WithField("name", name).Info("plugin loaded")
	return nil
}

// Unregister removes a plugin by name, closing it if it holds
// resources.
func (r *Registry) Unregister(name string) error {
	p, ok := r.plugins[name]
	if !ok {
		return fmt.Errorf("plugin %q not registered", name)
	}
	delete(r.plugins, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	closePlugin(p, r.logger)
	return nil
}

// Names returns the registered plugin names in load order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	return len(r.order)
}

// NotifyKeyPress fans a key press out to every plugin. A panic in one
// plugin is logged and the rest still run.
func (r *Registry) NotifyKeyPress(key int) {
	for _, name := range r.order {
		p := r.plugins[name]
		r.guardedNotify(name, "on_key_press", func() { p.OnKeyPress(key) })
	}
}

// NotifyBufferChange fans a content change out to every plugin.
func (r *Registry) NotifyBufferChange() {
	for _, name := range r.order {
		p := r.plugins[name]
		r.guardedNotify(name, "on_buffer_change", func() { p.OnBufferChange() })
	}
}

// Close releases every plugin in reverse load order.
func (r *Registry) Close() {
	for i := len(r.order) - 1; i >= 0; i-- {
		closePlugin(r.plugins[r.order[i]], r.logger)
	}
	r.plugins = make(map[string]Plugin)
	r.order = nil
}

func (r *Registry) guardedLoad(p Plugin) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic during load: %v", rec)
		}
	}()
	return p.OnLoad()
}

func (r *Registry) guardedNotify(name, hook string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.WithField("name", name).WithField("hook", hook).
				Error("plugin panicked: %v", rec)
		}
	}()
	fn()
}

func closePlugin(p Plugin, logger *log.Logger) {
	c, ok := p.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		logger.WithField("name", p.Name()).Warn("plugin close failed: %v", err)
	}
}
