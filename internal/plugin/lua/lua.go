// Package lua runs plugin scripts on an embedded Lua interpreter.
// Each script gets its own interpreter state with a reduced standard
// library: base, table, string, and math, with the code-loading
// escape hatches removed. Scripts declare a plugin_name global and
// may define on_load, on_key_press, and on_buffer_change hooks.
package lua

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/tern-editor/tern/internal/log"
)

// Hook names looked up as script globals.
const (
	hookLoad         = "on_load"
	hookKeyPress     = "on_key_press"
	hookBufferChange = "on_buffer_change"
)

// ScriptPlugin adapts one Lua script to the plugin contract.
//
// gopher-lua states are not goroutine safe; the mutex serializes all
// calls into the interpreter.
type ScriptPlugin struct {
	name   string
	path   string
	logger *log.Logger

	mu     sync.Mutex
	state  *lua.LState
	closed bool
}

// Load runs the script at path and wraps it as a plugin. The script
// must set a plugin_name string global. A nil logger discards script
// diagnostics.
func Load(path string, logger *log.Logger) (*ScriptPlugin, error) {
	if logger == nil {
		logger = log.Discard()
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openLibraries(L)
	scrubGlobals(L)

	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("plugin script %s: %w", path, err)
	}

	nameVal := L.GetGlobal("plugin_name")
	name, ok := nameVal.(lua.LString)
	if !ok || string(name) == "" {
		L.Close()
		return nil, fmt.Errorf("plugin script %s: plugin_name not set", path)
	}

	return &ScriptPlugin{
		name:   string(name),
		path:   path,
		logger: logger.WithComponent("plugin").WithField("name", string(name)),
		state:  L,
	}, nil
}

// Name returns the script's declared plugin_name.
func (p *ScriptPlugin) Name() string { return p.name }

// Path returns the script file the plugin was loaded from.
func (p *ScriptPlugin) Path() string { return p.path }

// OnLoad runs the script's on_load hook if it defines one.
func (p *ScriptPlugin) OnLoad() error {
	return p.callHook(hookLoad)
}

// OnKeyPress runs the on_key_press hook with the pressed key code.
// Hook failures are logged, never propagated.
func (p *ScriptPlugin) OnKeyPress(key int) {
	if err := p.callHook(hookKeyPress, lua.LNumber(key)); err != nil {
		p.logger.Warn("%s failed: %v", hookKeyPress, err)
	}
}

// OnBufferChange runs the on_buffer_change hook.
func (p *ScriptPlugin) OnBufferChange() {
	if err := p.callHook(hookBufferChange); err != nil {
		p.logger.Warn("%s failed: %v", hookBufferChange, err)
	}
}

// Close shuts the interpreter down. Further hook calls are no-ops.
func (p *ScriptPlugin) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.state.Close()
	return nil
}

// callHook invokes a global function by name. A missing hook is not
// an error; scripts implement only what they care about.
func (p *ScriptPlugin) callHook(hook string, args ...lua.LValue) (err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}

	fn := p.state.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("lua panic: %v", rec)
		}
	}()

	p.state.Push(fn)
	for _, arg := range args {
		p.state.Push(arg)
	}
	return p.state.PCall(len(args), 0, nil)
}

// openLibraries opens the reduced library set. io, os, debug, and
// package stay closed.
func openLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// scrubGlobals removes base-library functions that load code from
// outside the script.
func scrubGlobals(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// LoadDir loads every enabled .lua script under dir. A script that
// fails to load is logged and skipped; a missing directory yields no
// plugins. The enabled list filters by file name without the .lua
// suffix; an empty list enables everything.
func LoadDir(dir string, enabled []string, logger *log.Logger) []*ScriptPlugin {
	if logger == nil {
		logger = log.Discard()
	}
	scriptLog := logger.WithComponent("plugin")

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			scriptLog.Warn("plugin dir unreadable: %v", err)
		}
		return nil
	}

	allow := make(map[string]bool, len(enabled))
	for _, name := range enabled {
		allow[name] = true
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".lua") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var plugins []*ScriptPlugin
	for _, name := range names {
		base := strings.TrimSuffix(name, ".lua")
		if len(allow) > 0 && !allow[base] {
			continue
		}
		p, err := Load(filepath.Join(dir, name), logger)
		if err != nil {
			scriptLog.Warn("skipping script: %v", err)
			continue
		}
		plugins = append(plugins, p)
	}
	return plugins
}
