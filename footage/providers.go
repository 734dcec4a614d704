package footage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

func newHTTPClient(timeoutSec int) *http.Client {
	return &http.Client{Timeout: time.Duration(timeoutSec) * time.Second}
}

// Pexels searches the Pexels video API.
type Pexels struct {
	apiKey     string
	httpClient *http.Client
}

func NewPexels(httpClient *http.Client) (*Pexels, error) {
	key := os.Getenv("PEXELS_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("PEXELS_API_KEY not set")
	}
	return &Pexels{apiKey: key, httpClient: httpClient}, nil
}

func (p *Pexels) Name() string { return "pexels" }

type pexelsResponse struct {
	Videos []struct {
		VideoFiles []struct {
			Link   string `json:"link"`
			Width  int    `json:"width"`
			Height int    `json:"height"`
		} `json:"video_files"`
	} `json:"videos"`
}

func (p *Pexels) Search(ctx context.Context, keyword string, limit int) ([]Asset, error) {
	reqURL := fmt.Sprintf("https://api.pexels.com/videos/search?query=%s&per_page=%d&orientation=portrait",
		url.QueryEscape(keyword), limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pexels status %s", resp.Status)
	}

	var parsed pexelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("parse pexels response: %w", err)
	}

	var assets []Asset
	for _, v := range parsed.Videos {
		if len(v.VideoFiles) == 0 {
			continue
		}
		// Prefer the tallest vertical file.
		best := v.VideoFiles[0]
		for _, f := range v.VideoFiles[1:] {
			if f.Height > best.Height {
				best = f
			}
		}
		assets = append(assets, Asset{Keyword: keyword, Provider: p.Name(), URL: best.Link})
		if len(assets) >= limit {
			break
		}
	}
	return assets, nil
}

// Pixabay searches the Pixabay video API.
type Pixabay struct {
	apiKey     string
	httpClient *http.Client
}

func NewPixabay(httpClient *http.Client) (*Pixabay, error) {
	key := os.Getenv("PIXABAY_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("PIXABAY_API_KEY not set")
	}
	return &Pixabay{apiKey: key, httpClient: httpClient}, nil
}

func (p *Pixabay) Name() string { return "pixabay" }

type pixabayResponse struct {
	Hits []struct {
		Videos struct {
			Medium struct {
				URL string `json:"url"`
			} `json:"medium"`
		} `json:"videos"`
	} `json:"hits"`
}

func (p *Pixabay) Search(ctx context.Context, keyword string, limit int) ([]Asset, error) {
	reqURL := fmt.Sprintf("https://pixabay.com/api/videos/?key=%s&q=%s&per_page=%d",
		url.QueryEscape(p.apiKey), url.QueryEscape(keyword), limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pixabay status %s", resp.Status)
	}

	var parsed pixabayResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("parse pixabay response: %w", err)
	}

	var assets []Asset
	for _, hit := range parsed.Hits {
		if hit.Videos.Medium.URL == "" {
			continue
		}
		assets = append(assets, Asset{Keyword: keyword, Provider: p.Name(), URL: hit.Videos.Medium.URL})
		if len(assets) >= limit {
			break
		}
	}
	return assets, nil
}
