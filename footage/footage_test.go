package footage

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpc601330-web/auren-auto-gold/logx"
)

type fakeProvider struct {
	name   string
	base   string
	broken bool
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Search(_ context.Context, keyword string, limit int) ([]Asset, error) {
	if p.broken {
		return nil, fmt.Errorf("upstream down")
	}
	out := make([]Asset, 0, limit)
	for i := 0; i < limit; i++ {
		out = append(out, Asset{
			Keyword:  keyword,
			Provider: p.name,
			URL:      fmt.Sprintf("%s/%s/%s/%d.mp4", p.base, p.name, keyword, i),
		})
	}
	return out, nil
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("video-bytes"))
	}))
	t.Cleanup(srv.Close)

	newFetcher := func(max int, providers ...Provider) *Fetcher {
		return &Fetcher{
			providers:  providers,
			maxAssets:  max,
			httpClient: srv.Client(),
			log:        logx.NewNop(),
		}
	}

	t.Run("merge order is keyword then provider then url", func(t *testing.T) {
		f := newFetcher(100,
			&fakeProvider{name: "zeta", base: srv.URL},
			&fakeProvider{name: "alfa", base: srv.URL},
		)
		assets := f.Fetch(context.Background(), []string{"bolsa", "ahorro"}, t.TempDir())
		require.Len(t, assets, 12)

		assert.Equal(t, "bolsa", assets[0].Keyword)
		assert.Equal(t, "alfa", assets[0].Provider)
		assert.Equal(t, "zeta", assets[3].Provider)
		assert.Equal(t, "ahorro", assets[6].Keyword)
		for _, a := range assets {
			assert.NotEmpty(t, a.Path)
		}
	})

	t.Run("caps at max assets", func(t *testing.T) {
		f := newFetcher(2, &fakeProvider{name: "alfa", base: srv.URL})
		assets := f.Fetch(context.Background(), []string{"bolsa"}, t.TempDir())
		assert.Len(t, assets, 2)
	})

	t.Run("broken provider degrades instead of failing", func(t *testing.T) {
		f := newFetcher(100,
			&fakeProvider{name: "roto", broken: true},
			&fakeProvider{name: "sano", base: srv.URL},
		)
		assets := f.Fetch(context.Background(), []string{"bolsa"}, t.TempDir())
		require.Len(t, assets, 3)
		for _, a := range assets {
			assert.Equal(t, "sano", a.Provider)
		}
	})

	t.Run("no providers means no assets", func(t *testing.T) {
		f := newFetcher(100)
		assert.Nil(t, f.Fetch(context.Background(), []string{"bolsa"}, t.TempDir()))
	})
}
