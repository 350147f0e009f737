package feed

import (
	"reflect"
	"testing"
)

type namedPlugin struct {
	plainPlugin
	name string
}

func (p namedPlugin) Name() string { return p.name }

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	if registry.Has("pyth") {
		t.Error("empty registry must not report plugins")
	}
	if _, ok := registry.Get("pyth"); ok {
		t.Error("Get on empty registry must report absence")
	}

	registry.Register(namedPlugin{name: "pyth"})
	registry.Register(namedPlugin{name: "coingecko"})

	if !registry.Has("pyth") || !registry.Has("coingecko") {
		t.Error("registered plugins must be reported")
	}
	p, ok := registry.Get("pyth")
	if !ok || p.Name() != "pyth" {
		t.Errorf("Get(pyth) = %v, %v", p, ok)
	}

	if got, want := registry.Names(), []string{"coingecko", "pyth"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	// Re-registering under the same name replaces the instance.
	replacement := namedPlugin{name: "pyth"}
	registry.Register(replacement)
	if got, _ := registry.Get("pyth"); got != Plugin(replacement) {
		t.Error("Register must replace a plugin of the same name")
	}
}
