package brain

import "strings"

// PickScriptStyle chooses a script template family from the topic phrase.
func PickScriptStyle(topic string) string {
	t := strings.ToLower(topic)
	switch {
	case strings.Contains(t, "historia"):
		return "story_gold"
	case strings.Contains(t, "niños") || strings.Contains(t, "12 años") || strings.Contains(t, "joven"):
		return "didactico_joven_gold"
	case strings.Contains(t, "invertir") || strings.Contains(t, "dinero"):
		return "cinematic_gold"
	default:
		return "default_gold"
	}
}

// PickVoice selects the narration voice profile for a niche.
func PickVoice(niche string) string {
	n := strings.ToLower(niche)
	switch {
	case strings.Contains(n, "psicologia"):
		return "female_soft"
	case strings.Contains(n, "dinero"):
		return "female_elegant"
	default:
		return "neutral_voice"
	}
}

// PickThumbnailStyle maps the target emotion to a thumbnail treatment.
func PickThumbnailStyle(emotion string) string {
	switch strings.ToLower(emotion) {
	case "peligro_urgencia":
		return "red_black_alert"
	case "esperanza":
		return "blue_gold_hope"
	default:
		return "default_clean"
	}
}

// ScenePrompt builds the cinematic image prompt for the lead scene.
func ScenePrompt(topic string) string {
	t := strings.ToLower(topic)
	switch {
	case strings.Contains(t, "invertir"):
		return "young adult looking at charts on a laptop, soft golden light, " +
			"night city in the background, cinematic, hope + discipline, 4k"
	case strings.Contains(t, "niños"):
		return "kid counting coins on a wooden table, warm morning light, " +
			"parents blurred in the background smiling, cinematic, 4k"
	default:
		return "person walking alone at dawn, empty city streets, soft golden light, " +
			"cinematic, feeling of change and determination, 4k"
	}
}

// PlatformsFor lists the distribution platforms for a primary platform.
func PlatformsFor(platform string) []string {
	p := strings.ToLower(platform)
	switch {
	case strings.Contains(p, "youtube"):
		return []string{"youtube_shorts"}
	case strings.Contains(p, "tiktok"):
		return []string{"tiktok"}
	default:
		return []string{"youtube_shorts", "tiktok", "reels"}
	}
}
