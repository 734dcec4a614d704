// Package footage finds and downloads stock clips for the render step.
// Everything here is best-effort: a provider or keyword failing is skipped,
// never fatal.
package footage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mpc601330-web/auren-auto-gold/config"
	"github.com/mpc601330-web/auren-auto-gold/logx"
)

// Asset is one downloadable stock clip.
type Asset struct {
	Keyword  string `json:"keyword"`
	Provider string `json:"provider"`
	URL      string `json:"url"`
	Path     string `json:"path,omitempty"`
}

// Provider searches one stock-footage service.
type Provider interface {
	Name() string
	Search(ctx context.Context, keyword string, limit int) ([]Asset, error)
}

type Fetcher struct {
	providers  []Provider
	maxAssets  int
	httpClient *http.Client
	log        *logx.Logger
}

// NewFetcher wires the configured providers. Providers without credentials
// are skipped with a warning so footage degrades instead of blocking a run.
func NewFetcher(cfg config.FootageConfig, log *logx.Logger) *Fetcher {
	httpClient := newHTTPClient(cfg.TimeoutSec)
	var providers []Provider
	for _, name := range cfg.Providers {
		switch name {
		case "pexels":
			if p, err := NewPexels(httpClient); err != nil {
				log.Warnw("footage provider unavailable", "provider", name, "err", err)
			} else {
				providers = append(providers, p)
			}
		case "pixabay":
			if p, err := NewPixabay(httpClient); err != nil {
				log.Warnw("footage provider unavailable", "provider", name, "err", err)
			} else {
				providers = append(providers, p)
			}
		default:
			log.Warnw("unknown footage provider", "provider", name)
		}
	}
	return &Fetcher{
		providers:  providers,
		maxAssets:  cfg.MaxAssets,
		httpClient: httpClient,
		log:        log,
	}
}

// Fetch searches every provider for every keyword in parallel, merges the
// results deterministically (keyword order, then provider name, then URL),
// caps them at the configured maximum and downloads each into dir.
// Only downloaded assets are returned.
func (f *Fetcher) Fetch(ctx context.Context, keywords []string, dir string) []Asset {
	if len(f.providers) == 0 || len(keywords) == 0 {
		return nil
	}

	perKeyword := 3
	var mu sync.Mutex
	var all []Asset

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, keyword := range keywords {
		for _, provider := range f.providers {
			keyword, provider := keyword, provider
			g.Go(func() error {
				found, err := provider.Search(gctx, keyword, perKeyword)
				if err != nil {
					f.log.Warnw("footage search failed", "provider", provider.Name(), "keyword", keyword, "err", err)
					return nil // per-keyword failures are non-fatal
				}
				mu.Lock()
				all = append(all, found...)
				mu.Unlock()
				return nil
			})
		}
	}
	_ = g.Wait()

	// Deterministic merge: keyword order as requested, then provider, then URL.
	keywordRank := make(map[string]int, len(keywords))
	for i, k := range keywords {
		keywordRank[k] = i
	}
	sort.SliceStable(all, func(i, j int) bool {
		if keywordRank[all[i].Keyword] != keywordRank[all[j].Keyword] {
			return keywordRank[all[i].Keyword] < keywordRank[all[j].Keyword]
		}
		if all[i].Provider != all[j].Provider {
			return all[i].Provider < all[j].Provider
		}
		return all[i].URL < all[j].URL
	})
	if len(all) > f.maxAssets {
		all = all[:f.maxAssets]
	}

	var downloaded []Asset
	for i, asset := range all {
		path, err := f.download(ctx, asset, dir, i)
		if err != nil {
			f.log.Warnw("footage download failed", "url", asset.URL, "err", err)
			continue
		}
		asset.Path = path
		downloaded = append(downloaded, asset)
	}
	return downloaded
}

func (f *Fetcher) download(ctx context.Context, asset Asset, dir string, index int) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.URL, nil)
	if err != nil {
		return "", err
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download status %s", resp.Status)
	}

	path := filepath.Join(dir, fmt.Sprintf("clip_%02d_%s.mp4", index, asset.Provider))
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
