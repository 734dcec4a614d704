// Package brain adapts an upstream planning document into a production job
// and carries the small production-style decisions (voice, scene prompt,
// thumbnail style) the render submission needs.
package brain

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const defaultPriority = 2

// Video is one planned video inside a brain plan.
type Video struct {
	VideoID        string `json:"video_id"`
	ChannelName    string `json:"channel_name"`
	Topic          string `json:"topic"`
	Emotion        string `json:"emotion,omitempty"`
	TargetPlatform string `json:"target_platform,omitempty"`
	Country        string `json:"country"`
	Language       string `json:"language"`
	AffiliateSlot  string `json:"affiliate_slot,omitempty"`
	Priority       *int   `json:"priority,omitempty"`
}

// Plan is the upstream planning document. When present it substitutes for
// the router's own seed/channel matching.
type Plan struct {
	ChannelName string  `json:"channel_name"`
	Country     string  `json:"country"`
	Language    string  `json:"language"`
	Niche       string  `json:"niche,omitempty"`
	Videos      []Video `json:"videos"`
}

// LoadPlan reads and parses a plan file. Missing file or malformed JSON is
// a configuration error.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("brain plan: %w", err)
	}
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("brain plan: invalid JSON in %s: %w", path, err)
	}
	return &p, nil
}

// PickVideo selects the video with the numerically lowest priority (absent
// priority counts as 2); ties break by lexicographic video_id. Returns nil
// when the plan holds no videos — nothing to produce today. Required fields
// are validated before anything else runs.
func PickVideo(p *Plan) (*Video, error) {
	if len(p.Videos) == 0 {
		return nil, nil
	}

	best := -1
	for i := range p.Videos {
		v := &p.Videos[i]
		if err := validateVideo(v); err != nil {
			return nil, err
		}
		if best < 0 {
			best = i
			continue
		}
		pi, pb := priorityOf(v), priorityOf(&p.Videos[best])
		if pi < pb || (pi == pb && v.VideoID < p.Videos[best].VideoID) {
			best = i
		}
	}

	picked := p.Videos[best]
	if picked.Emotion == "" {
		picked.Emotion = "motivador"
	}
	if picked.TargetPlatform == "" {
		picked.TargetPlatform = "shorts"
	}
	return &picked, nil
}

func priorityOf(v *Video) int {
	if v.Priority == nil {
		return defaultPriority
	}
	return *v.Priority
}

func validateVideo(v *Video) error {
	required := map[string]string{
		"video_id":     v.VideoID,
		"channel_name": v.ChannelName,
		"topic":        v.Topic,
		"country":      v.Country,
		"language":     v.Language,
	}
	for _, field := range []string{"video_id", "channel_name", "topic", "country", "language"} {
		if strings.TrimSpace(required[field]) == "" {
			return fmt.Errorf("brain plan: video is missing required field %q", field)
		}
	}
	return nil
}
