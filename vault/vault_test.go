package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVault() *Vault {
	return &Vault{
		Offers: []Offer{
			{
				ID:      "broker-es",
				Name:    "Broker Inversión España",
				BaseURL: "https://go.example.com/broker",
				Niches:  []string{"inversión"},
				Keywords: []string{
					"invertir", "bolsa",
				},
				Countries: []string{"ES"},
			},
			{
				ID:          "curso-ia",
				Name:        "Curso IA para Negocios",
				BaseURL:     "https://go.example.com/curso-ia",
				Keywords:    []string{"inteligencia artificial", "negocios"},
				DefaultSlot: "curso_ia_principiantes",
			},
		},
		ChannelOverrides: []ChannelOverride{
			{ChannelName: "Auren Cripto", OfferID: "curso-ia", CustomURL: "https://go.example.com/cripto-especial"},
		},
	}
}

func TestResolveOffer_OverrideBeatsEverything(t *testing.T) {
	v := testVault()
	r := v.ResolveOffer("cómo invertir en bolsa", "inversión", "ES", "Auren Cripto", "")
	require.NotNil(t, r)
	assert.Equal(t, "channel_override", r.Source)
	assert.Equal(t, "curso-ia", r.ID)
	assert.Equal(t, "https://go.example.com/cripto-especial", r.FinalURL)
}

func TestResolveOffer_OverrideBeatsSlotMatch(t *testing.T) {
	v := testVault()
	v.ChannelOverrides = append(v.ChannelOverrides, ChannelOverride{
		ChannelName:   "Auren Principiantes",
		AffiliateSlot: "curso_ia_principiantes",
		OfferID:       "broker-es",
	})
	// both the override and the curso-ia default_slot match the requested
	// slot; the override wins
	r := v.ResolveOffer("tema cualquiera", "", "ES", "Auren Principiantes", "curso_ia_principiantes")
	require.NotNil(t, r)
	assert.Equal(t, "channel_override", r.Source)
	assert.Equal(t, "broker-es", r.ID)
}

func TestResolveOffer_SlotBeatsTopicMatch(t *testing.T) {
	v := testVault()
	r := v.ResolveOffer("cómo invertir en bolsa", "inversión", "ES", "Canal Sin Override", "curso_ia_principiantes")
	require.NotNil(t, r)
	assert.Equal(t, "slot_match", r.Source)
	assert.Equal(t, "curso-ia", r.ID)
}

func TestResolveOffer_TopicAndNicheScoring(t *testing.T) {
	v := testVault()
	r := v.ResolveOffer("cómo invertir en bolsa sin miedo", "inversión", "ES", "", "")
	require.NotNil(t, r)
	assert.Equal(t, "topic_or_niche", r.Source)
	assert.Equal(t, "broker-es", r.ID)
	assert.Equal(t, "https://go.example.com/broker", r.FinalURL)
}

func TestResolveOffer_CountryRestrictionRejects(t *testing.T) {
	v := testVault()
	// broker-es only allows ES; an MX audience gets nothing rather than a
	// wrong-country CTA.
	r := v.ResolveOffer("cómo invertir en bolsa sin miedo", "inversión", "MX", "", "")
	assert.Nil(t, r)
}

func TestResolveOffer_NoMatchIsNil(t *testing.T) {
	v := testVault()
	assert.Nil(t, v.ResolveOffer("recetas de cocina vegana", "cocina", "ES", "", ""))
}

func TestMatchScore(t *testing.T) {
	offer := Offer{
		Name:     "Curso Inversión Pro",
		Keywords: []string{"invertir"},
		Niches:   []string{"inversión"},
	}
	// +3 keyword, +2 niche, +1 name word ("inversión" > 4 chars)
	assert.Equal(t, 6, MatchScore("aprende a invertir con inversión inteligente", offer))
	assert.Equal(t, 0, MatchScore("jardinería urbana", offer))
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields empty vault", func(t *testing.T) {
		v, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		require.NoError(t, err)
		assert.Empty(t, v.Offers)
		assert.Nil(t, v.ResolveOffer("cualquier tema", "", "ES", "", ""))
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("[broken"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}
