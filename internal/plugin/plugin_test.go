package plugin

import (
	"errors"
	"testing"
)

type fakePlugin struct {
	name       string
	loadErr    error
	loadCalls  int
	keys       []int
	changes    int
	closed     bool
	panicOnKey bool
}

func (p *fakePlugin) Name() string { return p.name }

func (p *fakePlugin) OnLoad() error {
	p.loadCalls++
	return p.loadErr
}

func (p *fakePlugin) OnKeyPress(key int) {
	if p.panicOnKey {
		panic("boom")
	}
	p.keys = append(p.keys, key)
}

func (p *fakePlugin) OnBufferChange() { p.changes++ }

func (p *fakePlugin) Close() error {
	p.closed = true
	return nil
}

func TestRegisterCallsOnLoad(t *testing.T) {
	reg := NewRegistry(nil)
	p := &fakePlugin{name: "hello"}

	if err := reg.Register(p); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if p.loadCalls != 1 {
		t.Errorf("expected 1 OnLoad call, got %d", p.loadCalls)
	}
	if reg.Len() != 1 {
		t.Errorf("expected 1 plugin, got %d", reg.Len())
	}
}

func TestRegisterRejectsLoadFailure(t *testing.T) {
	reg := NewRegistry(nil)
	p := &fakePlugin{name: "broken", loadErr: errors.New("no dice")}

	if err := reg.Register(p); err == nil {
		t.Fatal("expected load error")
	}
	if reg.Len() != 0 {
		t.Errorf("expected rejected plugin to be dropped, got %d registered", reg.Len())
	}
}

func TestRegisterRejectsDuplicateName(t *testing.T) {
	reg := NewRegistry(nil)
	if err := reg.Register(&fakePlugin{name: "dup"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := reg.Register(&fakePlugin{name: "dup"}); err == nil {
		t.Fatal("expected duplicate name error")
	}
}

func TestRegisterRejectsEmptyName(t *testing.T) {
	reg := NewRegistry(nil)
	if err := reg.Register(&fakePlugin{}); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestNotifyKeyPressInLoadOrder(t *testing.T) {
	reg := NewRegistry(nil)
	first := &fakePlugin{name: "first"}
	second := &fakePlugin{name: "second"}
	if err := reg.Register(first); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(second); err != nil {
		t.Fatal(err)
	}

	reg.NotifyKeyPress(120)
	reg.NotifyKeyPress(121)

	want := []int{120, 121}
	for _, p := range []*fakePlugin{first, second} {
		if len(p.keys) != len(want) {
			t.Fatalf("%s: expected %d keys, got %d", p.name, len(want), len(p.keys))
		}
		for i, k := range want {
			if p.keys[i] != k {
				t.Errorf("%s: expected key %d at %d, got %d", p.name, k, i, p.keys[i])
			}
		}
	}
	names := reg.Names()
	if len(names) != 2 || names[0] != "first" || names[1] != "second" {
		t.Errorf("expected load order preserved, got %v", names)
	}
}

func TestNotifySurvivesPanickingPlugin(t *testing.T) {
	reg := NewRegistry(nil)
	bad := &fakePlugin{name: "bad", panicOnKey: true}
	good := &fakePlugin{name: "good"}
	if err := reg.Register(bad); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(good); err != nil {
		t.Fatal(err)
	}

	reg.NotifyKeyPress(42)

	if len(good.keys) != 1 || good.keys[0] != 42 {
		t.Errorf("expected later plugin still notified, got %v", good.keys)
	}
}

func TestNotifyBufferChange(t *testing.T) {
	reg := NewRegistry(nil)
	p := &fakePlugin{name: "watcher"}
	if err := reg.Register(p); err != nil {
		t.Fatal(err)
	}

	reg.NotifyBufferChange()
	reg.NotifyBufferChange()

	if p.changes != 2 {
		t.Errorf("expected 2 change notifications, got %d", p.changes)
	}
}

func TestUnregisterClosesPlugin(t *testing.T) {
	reg := NewRegistry(nil)
	p := &fakePlugin{name: "closable"}
	if err := reg.Register(p); err != nil {
		t.Fatal(err)
	}

	if err := reg.Unregister("closable"); err != nil {
		t.Fatalf("Unregister: %v", err)
	}
	if !p.closed {
		t.Error("expected Close to be called")
	}
	if reg.Len() != 0 {
		t.Errorf("expected empty registry, got %d", reg.Len())
	}
	if err := reg.Unregister("closable"); err == nil {
		t.Error("expected error for unknown plugin")
	}
}

func TestCloseReleasesAllPlugins(t *testing.T) {
	reg := NewRegistry(nil)
	a := &fakePlugin{name: "a"}
	b := &fakePlugin{name: "b"}
	if err := reg.Register(a); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(b); err != nil {
		t.Fatal(err)
	}

	reg.Close()

	if !a.closed || !b.closed {
		t.Error("expected every plugin closed")
	}
	if reg.Len() != 0 {
		t.Errorf("expected empty registry after Close, got %d", reg.Len())
	}
}

func TestRegisterRecoversFromPanickingLoad(t *testing.T) {
	reg := NewRegistry(nil)
	err := reg.Register(panicOnLoad{})
	if err == nil {
		t.Fatal("expected error from panicking OnLoad")
	}
	if reg.Len() != 0 {
		t.Errorf("expected plugin dropped, got %d registered", reg.Len())
	}
}

type panicOnLoad struct{}

func (panicOnLoad) Name() string    { return "panics" }
func (panicOnLoad) OnLoad() error   { panic("load failure") }
func (panicOnLoad) OnKeyPress(int)  {}
func (panicOnLoad) OnBufferChange() {}
