// Package router matches topic seeds to channels and picks the next unused
// (channel, topic) pair for production.
package router

import (
	"fmt"

	"github.com/mpc601330-web/auren-auto-gold/memory"
	"github.com/mpc601330-web/auren-auto-gold/types"
)

// ChooseChannel returns the first channel whose niche and country exactly
// match the seed, falling back to the first channel in the directory.
func ChooseChannel(seed types.TopicCandidate, channels []types.ChannelProfile) types.ChannelProfile {
	for _, ch := range channels {
		if ch.Niche == seed.Niche && ch.Country == seed.Country {
			return ch
		}
	}
	return channels[0]
}

// SelectJob walks seeds in catalog order and returns the first pair the
// ledger has not seen. A nil job with nil error means every seed is used up:
// the normal "nothing new to produce" signal, not a failure. Empty seed or
// channel catalogs are configuration errors.
func SelectJob(seeds []types.TopicCandidate, channels []types.ChannelProfile, ledger *memory.Ledger) (*types.Job, error) {
	if len(seeds) == 0 {
		return nil, fmt.Errorf("router: seed catalog is empty")
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("router: channel directory is empty")
	}

	for _, seed := range seeds {
		channel := ChooseChannel(seed, channels)
		slug := Slugify(seed.Keyword)
		if ledger.IsUsed(channel.ID, slug) {
			continue
		}
		return &types.Job{
			Channel:   channel,
			Seed:      seed,
			TopicSlug: slug,
		}, nil
	}
	return nil, nil
}
