// Package business_logic hosts the named functions that dynamic
// configuration can invoke: small computation hooks resolved by name at
// runtime. The registry replaces on-the-fly code loading with a fixed,
// auditable function table.
package business_logic

import (
	"context"
	"net/http"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/engagekit/engage-backend/models"
)

// Func is one registered business-logic function. Params and results are
// loosely typed maps so configuration can address fields by name.
type Func func(ctx context.Context, params map[string]any) (map[string]any, error)

type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry builds a registry with the built-in functions installed. The
// http client is used by the "api" function and owns its own timeout.
func NewRegistry(client *http.Client) *Registry {
	if client == nil {
		client = http.DefaultClient
	}
	r := &Registry{funcs: make(map[string]Func)}
	r.Register("value_calc", valueCalcFunc)
	r.Register("offer_groups", offerGroupsFunc)
	r.Register("dowork", doWorkFunc)
	r.Register("doupdate", doUpdateFunc)
	r.Register("api", apiFunc(client))
	return r
}

func (r *Registry) Register(name string, f Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = f
}

// Invoke resolves name and calls it. An unknown name is an error; the caller
// decides whether that is fatal (it never is for reward computation).
func (r *Registry) Invoke(ctx context.Context, name string, params map[string]any) (map[string]any, error) {
	r.mu.RLock()
	f, ok := r.funcs[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Wrap(models.ErrUnknownBusinessFunction, name)
	}
	return f(ctx, params)
}
