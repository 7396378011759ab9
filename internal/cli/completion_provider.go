package cli

import (
	"context"
	"log/slog"
	"sort"

	"github.com/all-dot-files/tictoc/internal/config"
	"github.com/all-dot-files/tictoc/internal/storage"
)

// keyCompletionProvider lists recorded timer keys for completions with safe
// fallbacks.
type keyCompletionProvider struct {
	manager *config.Manager
	log     *slog.Logger
}

func newKeyCompletionProvider(manager *config.Manager, log *slog.Logger) *keyCompletionProvider {
	return &keyCompletionProvider{manager: manager, log: log}
}

// Keys returns the distinct keys in the history, sorted.
func (p *keyCompletionProvider) Keys(ctx context.Context) []string {
	if p.manager == nil {
		return nil
	}
	store, err := p.manager.OpenStore()
	if err != nil {
		p.warn(err)
		return nil
	}
	defer store.Close()

	runs, err := store.List(ctx, storage.Filter{})
	if err != nil {
		p.warn(err)
		return nil
	}

	seen := make(map[string]bool)
	var keys []string
	for _, r := range runs {
		if r.Key == "" || seen[r.Key] {
			continue
		}
		seen[r.Key] = true
		keys = append(keys, r.Key)
	}
	sort.Strings(keys)
	return keys
}

func (p *keyCompletionProvider) warn(err error) {
	if p.log != nil {
		p.log.Warn("completion key list unavailable", "err", err)
	}
}
