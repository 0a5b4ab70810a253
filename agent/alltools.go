package agent

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/toolmesh/toolmesh/mcp"
)

// AllTools lists the tool catalogs of every registered server concurrently,
// grouped by server name. Each server gets its own short-lived session; one
// failing server fails the whole listing.
func (a *BaseAgent) AllTools(ctx context.Context) (map[string][]mcp.ToolDescriptor, error) {
	var mu sync.Mutex
	var wg errgroup.Group
	result := map[string][]mcp.ToolDescriptor{}

	for name, cfg := range a.Servers() {
		wg.Go(func() error {
			sess, err := a.dialer.Dial(ctx, name, cfg)
			if err != nil {
				return err
			}
			defer sess.Close() //nolint:errcheck

			tools, err := sess.ListTools(ctx)
			if err != nil {
				return err
			}
			mu.Lock()
			result[name] = append(result[name], tools...)
			mu.Unlock()
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
