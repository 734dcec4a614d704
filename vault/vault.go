// Package vault resolves affiliate offers for a video using a
// priority-ordered cascade over a static offer catalog.
package vault

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Offer is one monetizable affiliate product in the catalog.
type Offer struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	BaseURL     string   `json:"base_url"`
	Countries   []string `json:"countries,omitempty"` // optional allow-list
	Niches      []string `json:"niches,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	DefaultSlot string   `json:"default_slot,omitempty"`
	CTA         string   `json:"default_cta,omitempty"`
}

// ChannelOverride pins a specific channel (and optionally a slot) to an offer.
type ChannelOverride struct {
	ChannelName   string `json:"channel_name"`
	AffiliateSlot string `json:"affiliate_slot,omitempty"`
	OfferID       string `json:"offer_id"`
	CustomURL     string `json:"custom_url,omitempty"`
}

// Vault is the loaded offer catalog plus per-channel overrides.
type Vault struct {
	Offers           []Offer           `json:"offers"`
	ChannelOverrides []ChannelOverride `json:"channel_overrides"`
}

// Resolved is the selected offer annotated with the URL to use and which
// cascade step matched ("channel_override", "slot_match", "topic_or_niche").
type Resolved struct {
	Offer
	FinalURL string `json:"final_url"`
	Source   string `json:"source"`
}

// Load reads the vault JSON. A missing file yields an empty vault — the
// pipeline runs fine without monetization — but malformed JSON is an error.
func Load(path string) (*Vault, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Vault{}, nil
		}
		return nil, fmt.Errorf("read vault: %w", err)
	}
	var v Vault
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse vault %s: %w", path, err)
	}
	return &v, nil
}

// MatchScore is the keyword heuristic for topic-based offer matching:
// +3 per offer keyword contained in the topic, +2 per declared niche
// contained in the topic, +1 per >4-char word shared between topic and
// offer name. Pure so the weights can be tuned independently.
func MatchScore(topic string, offer Offer) int {
	topicLower := strings.ToLower(topic)
	score := 0

	for _, kw := range offer.Keywords {
		if kw != "" && strings.Contains(topicLower, strings.ToLower(kw)) {
			score += 3
		}
	}
	for _, niche := range offer.Niches {
		if niche != "" && strings.Contains(topicLower, strings.ToLower(niche)) {
			score += 2
		}
	}

	nameLower := strings.ToLower(offer.Name)
	for _, word := range strings.Fields(topicLower) {
		if len(word) > 4 && strings.Contains(nameLower, word) {
			score++
		}
	}
	return score
}

// ResolveOffer picks the best offer for a video. Cascade, first match wins:
//
//  1. channel override (channel name, plus slot if one was requested)
//  2. offer whose default_slot equals the requested slot
//  3. highest MatchScore > 0 over topic/niche, catalog order on ties,
//     then rejected if the offer restricts countries and ours is absent
//
// A nil result means "no monetization for this topic" and is valid output.
func (v *Vault) ResolveOffer(topic, niche, countryCode, channelName, affiliateSlot string) *Resolved {
	if ov := v.findOverride(channelName, affiliateSlot); ov != nil {
		if offer := v.offerByID(ov.OfferID); offer != nil {
			url := ov.CustomURL
			if url == "" {
				url = offer.BaseURL
			}
			return &Resolved{Offer: *offer, FinalURL: url, Source: "channel_override"}
		}
	}

	if affiliateSlot != "" {
		for i := range v.Offers {
			if v.Offers[i].DefaultSlot == affiliateSlot {
				o := v.Offers[i]
				return &Resolved{Offer: o, FinalURL: o.BaseURL, Source: "slot_match"}
			}
		}
	}

	best := -1
	bestScore := 0
	for i := range v.Offers {
		if s := MatchScore(topic, v.Offers[i]); s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 {
		return nil
	}
	o := v.Offers[best]
	if len(o.Countries) > 0 && !contains(o.Countries, countryCode) {
		// A wrong-country CTA is worse than no CTA.
		return nil
	}
	return &Resolved{Offer: o, FinalURL: o.BaseURL, Source: "topic_or_niche"}
}

func (v *Vault) findOverride(channelName, affiliateSlot string) *ChannelOverride {
	if channelName == "" {
		return nil
	}
	for i := range v.ChannelOverrides {
		ov := &v.ChannelOverrides[i]
		if ov.ChannelName != channelName {
			continue
		}
		if affiliateSlot != "" {
			if ov.AffiliateSlot == affiliateSlot {
				return ov
			}
			continue
		}
		return ov
	}
	return nil
}

func (v *Vault) offerByID(id string) *Offer {
	for i := range v.Offers {
		if v.Offers[i].ID == id {
			return &v.Offers[i]
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
