// Package memory holds the dedup ledger: the durable record of
// (channel, topic slug) pairs that already produced a video.
package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Ledger maps channel IDs to the topic slugs already used on that channel.
// The on-disk form is a JSON object: {"channel_id": ["slug", ...], ...}.
type Ledger struct {
	path string
	used map[string][]string
}

// Load reads the ledger from path. A missing file yields an empty ledger;
// a malformed file is an error so a corrupted store never silently resets.
func Load(path string) (*Ledger, error) {
	l := &Ledger{path: path, used: make(map[string][]string)}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	if err := json.Unmarshal(data, &l.used); err != nil {
		return nil, fmt.Errorf("parse ledger %s: %w", path, err)
	}
	return l, nil
}

// IsUsed reports whether the (channel, slug) pair was already produced.
func (l *Ledger) IsUsed(channelID, slug string) bool {
	for _, s := range l.used[channelID] {
		if s == slug {
			return true
		}
	}
	return false
}

// MarkUsed records the pair in memory. Idempotent: marking a pair twice
// leaves the set unchanged. Call Save to persist.
func (l *Ledger) MarkUsed(channelID, slug string) {
	if l.IsUsed(channelID, slug) {
		return
	}
	l.used[channelID] = append(l.used[channelID], slug)
}

// Save writes the whole ledger to a temp file and renames it into place, so
// a crash mid-write never leaves a corrupted store behind.
func (l *Ledger) Save() error {
	for _, slugs := range l.used {
		sort.Strings(slugs)
	}
	data, err := json.MarshalIndent(l.used, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".ledger-*.json")
	if err != nil {
		return fmt.Errorf("create ledger temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close ledger temp: %w", err)
	}
	if err := os.Rename(tmpName, l.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}

// Slugs returns a copy of the slugs recorded for a channel, sorted.
func (l *Ledger) Slugs(channelID string) []string {
	out := append([]string(nil), l.used[channelID]...)
	sort.Strings(out)
	return out
}
