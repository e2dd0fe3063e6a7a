// Package actions defines the action surface a provider exposes to the
// host agent framework: named operations with declared input schemas,
// collected in an explicit registry.
package actions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Traf333/agentkit/internal/wallet"
)

// Network identifies a blockchain network as the host framework sees it.
type Network struct {
	// ProtocolFamily is the protocol family, e.g. "evm"
	ProtocolFamily string `json:"protocolFamily"`

	// ChainID is the decimal chain id string
	ChainID string `json:"chainId"`

	// NetworkID is an optional human-readable network identifier
	NetworkID string `json:"networkId,omitempty"`
}

// HandlerFunc executes one action. Handlers render all failures into the
// returned string; they never panic or propagate errors to the host.
type HandlerFunc func(ctx context.Context, w wallet.Provider, input json.RawMessage) string

// Action is one named operation with its input schema and handler.
type Action struct {
	// Name is the action identifier the host invokes it by
	Name string

	// Description tells the agent what the action does
	Description string

	// Schema declares the expected input as a JSON-schema-shaped map
	Schema map[string]interface{}

	// Handler executes the action
	Handler HandlerFunc
}

// Provider is an action provider: a named bundle of actions with a
// capability predicate, held by composition rather than inheritance.
type Provider interface {
	// Name returns the provider's identifier.
	Name() string

	// SupportsNetwork reports whether the provider can serve the network.
	SupportsNetwork(network Network) bool

	// Actions returns the provider's actions in declaration order.
	Actions() []Action
}

// Registry maps action names to actions, preserving declaration order.
// It is built explicitly at provider construction and never mutated after.
type Registry struct {
	order  []string
	byName map[string]Action
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Action)}
}

// Register adds an action. Empty names and duplicate registrations are
// construction bugs and fail loudly.
func (r *Registry) Register(a Action) error {
	if a.Name == "" {
		return fmt.Errorf("action name must not be empty")
	}
	if a.Handler == nil {
		return fmt.Errorf("action %q has no handler", a.Name)
	}
	if _, exists := r.byName[a.Name]; exists {
		return fmt.Errorf("action %q already registered", a.Name)
	}

	r.byName[a.Name] = a
	r.order = append(r.order, a.Name)
	return nil
}

// MustRegister is Register for static action sets built at init time.
func (r *Registry) MustRegister(a Action) {
	if err := r.Register(a); err != nil {
		panic(err)
	}
}

// Get returns the action registered under name.
func (r *Registry) Get(name string) (Action, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// List returns all actions in declaration order.
func (r *Registry) List() []Action {
	out := make([]Action, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Names returns the registered action names in declaration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ObjectSchema builds a JSON-schema object declaration from property
// descriptors and the list of required property names.
func ObjectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// StringProperty describes a free-form string property.
func StringProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// PatternProperty describes a string property constrained by a regex.
func PatternProperty(description, pattern string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
		"pattern":     pattern,
	}
}
