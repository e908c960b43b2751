package wpgraphql

import (
	"context"
	"fmt"
	"sync"

	"github.com/gocipe/wpgraphql/store"
)

//AppContext carries request-scoped data visible to every resolver. It is
//populated once by the HTTP layer and read-only afterwards.
type AppContext struct {
	Viewer    *store.Record
	RootURL   string
	Request   map[string]interface{}
	RequestID string
	Debug     bool
}

type appContextKey struct{}

type diagnosticsKey struct{}

//NewContext returns a copy of ctx carrying app
func NewContext(ctx context.Context, app *AppContext) context.Context {
	return context.WithValue(ctx, appContextKey{}, app)
}

//FromContext returns the AppContext of ctx, or nil
func FromContext(ctx context.Context) *AppContext {
	if ctx == nil {
		return nil
	}
	app, _ := ctx.Value(appContextKey{}).(*AppContext)
	return app
}

//diagnostics collects non-fatal problems met while executing a request
type diagnostics struct {
	mu       sync.Mutex
	messages []string
}

func withDiagnostics(ctx context.Context) (context.Context, *diagnostics) {
	d := &diagnostics{}
	return context.WithValue(ctx, diagnosticsKey{}, d), d
}

//addDiagnostic records a message when ctx collects diagnostics
func addDiagnostic(ctx context.Context, format string, args ...interface{}) {
	if ctx == nil {
		return
	}
	d, ok := ctx.Value(diagnosticsKey{}).(*diagnostics)
	if !ok {
		return
	}
	d.mu.Lock()
	d.messages = append(d.messages, fmt.Sprintf(format, args...))
	d.mu.Unlock()
}

func (d *diagnostics) list() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.messages...)
}
