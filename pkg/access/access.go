package access

import (
	"context"
	"strings"
	"sync"
)

// Authorizer decides whether the actor carried by ctx holds a capability.
type Authorizer interface {
	Can(ctx context.Context, capability string) bool
}

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc func(ctx context.Context, capability string) bool

func (f AuthorizerFunc) Can(ctx context.Context, capability string) bool {
	return f(ctx, capability)
}

// AllowAll grants every capability. Intended for trusted tooling.
var AllowAll Authorizer = AuthorizerFunc(func(context.Context, string) bool { return true })

// Actor identifies who is rendering or saving a term form.
type Actor struct {
	ID    string
	Roles []string
}

type actorKey struct{}

// WithActor attaches actor to ctx.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the actor attached to ctx.
func ActorFrom(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}

// Roles grants capabilities through role membership.
type Roles struct {
	mu    sync.RWMutex
	grant map[string]map[string]struct{}
}

// DefaultRoleCapabilities mirrors the stock role set: editors and
// administrators may manage taxonomy terms, authors and contributors may not.
func DefaultRoleCapabilities() map[string][]string {
	return map[string][]string{
		"administrator": {"manage_options", "manage_categories", "edit_posts", "publish_posts"},
		"editor":        {"manage_categories", "edit_posts", "publish_posts", "edit_others_posts"},
		"author":        {"edit_posts", "publish_posts"},
		"contributor":   {"edit_posts"},
		"subscriber":    {"read"},
	}
}

// NewRoles builds a Roles authorizer. A nil map uses DefaultRoleCapabilities.
func NewRoles(capabilities map[string][]string) *Roles {
	if capabilities == nil {
		capabilities = DefaultRoleCapabilities()
	}
	r := &Roles{grant: make(map[string]map[string]struct{}, len(capabilities))}
	for role, caps := range capabilities {
		r.Grant(role, caps...)
	}
	return r
}

// Grant adds capabilities to role.
func (r *Roles) Grant(role string, capabilities ...string) {
	role = normalize(role)
	if role == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.grant[role]
	if !ok {
		set = make(map[string]struct{}, len(capabilities))
		r.grant[role] = set
	}
	for _, capability := range capabilities {
		if c := normalize(capability); c != "" {
			set[c] = struct{}{}
		}
	}
}

// Can reports whether any role of the context actor grants capability. An
// empty capability is always granted; a missing actor is always denied.
func (r *Roles) Can(ctx context.Context, capability string) bool {
	capability = normalize(capability)
	if capability == "" {
		return true
	}
	actor, ok := ActorFrom(ctx)
	if !ok {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, role := range actor.Roles {
		if _, granted := r.grant[normalize(role)][capability]; granted {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
