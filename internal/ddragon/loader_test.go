package ddragon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	versionsJSON = `["15.1.1", "14.24.1"]`
	championJSON = `{"data": {
		"Ahri": {"id": "Ahri", "key": "103", "name": "Ahri", "title": "the Nine-Tailed Fox"},
		"MonkeyKing": {"id": "MonkeyKing", "key": "62", "name": "Wukong", "title": "the Monkey King"},
		"Broken": {"id": "Broken", "key": "x", "name": "Broken"}
	}}`
	itemJSON = `{"data": {
		"1055": {"name": "Doran's Blade", "description": "<stats>8 AD</stats>", "plaintext": "Good starting item",
			"gold": {"total": 450}, "stats": {"FlatPhysicalDamageMod": 8, "FlatHPPoolMod": 80}},
		"3031": {"name": "Infinity Edge", "description": "<stats>Crit</stats>", "gold": {"total": 3400},
			"stats": {"FlatPhysicalDamageMod": 65, "FlatCritChanceMod": 0.25}}
	}}`
	runesJSON = `[{"id": 8100, "key": "Domination", "name": "Domination", "icon": "perk-images/Styles/7200_Domination.png",
		"slots": [{"runes": [{"id": 8112, "key": "Electrocute", "name": "Electrocute", "icon": "perk-images/e.png", "shortDesc": "burst"}]}]}]`
	summonerJSON = `{"data": {"SummonerFlash": {"id": "SummonerFlash", "key": "4", "name": "Flash", "image": {"full": "SummonerFlash.png"}}}}`
	merakiJSON   = `{
		"3031": {"id": 3031, "name": "Infinity Edge (Meraki)", "simpleDescription": "crit",
			"shop": {"prices": {"total": 3450}},
			"stats": {"attackDamage": {"flat": 70}, "criticalStrikeChance": {"percent": 25}}},
		"6672": {"id": 6672, "name": "Kraken Slayer", "shop": {"prices": {"total": 3100}},
			"stats": {"attackSpeed": {"percent": 40}, "movespeed": {"percent": 4}}}
	}`
)

// cdnServer serves the reference documents; paths in down return 500
func cdnServer(t *testing.T, down ...string) *httptest.Server {
	t.Helper()
	docs := map[string]string{
		"/api/versions.json":                        versionsJSON,
		"/cdn/15.1.1/data/en_US/champion.json":      championJSON,
		"/cdn/15.1.1/data/en_US/item.json":          itemJSON,
		"/cdn/15.1.1/data/en_US/runesReforged.json": runesJSON,
		"/cdn/15.1.1/data/en_US/summoner.json":      summonerJSON,
		"/cdn/14.24.1/data/en_US/champion.json":     championJSON,
		"/meraki/items.json":                        merakiJSON,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, d := range down {
			if strings.HasSuffix(r.URL.Path, d) {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
		}
		body, ok := docs[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestLoader(srv *httptest.Server, version string) *Loader {
	return NewLoader(LoaderConfig{CDN: srv.URL, MerakiURL: srv.URL + "/meraki/items.json", Version: version})
}

func TestLoad_Full(t *testing.T) {
	srv := cdnServer(t)
	snap, err := newTestLoader(srv, "").Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "15.1.1", snap.Version)
	assert.Len(t, snap.Champions, 2, "champions with a non-numeric key are skipped")
	assert.Equal(t, 62, snap.Champions["MonkeyKing"].Key)
	assert.Equal(t, "Flash", snap.Spells[4].Name)
	assert.Equal(t, 8100, snap.Runes[8112].TreeID)
	assert.Equal(t, "Adaptive Force", snap.Runes[5008].Name)

	a := snap.Champion("Wukong")
	assert.False(t, a.Placeholder)
	assert.Equal(t, srv.URL+"/cdn/15.1.1/img/champion/MonkeyKing.png", a.IconURL)

	assert.Equal(t, srv.URL+"/cdn/img/perk-images/e.png", snap.Rune(8112).IconURL)
	assert.Equal(t, srv.URL+"/cdn/15.1.1/img/spell/SummonerFlash.png", snap.Spell(4).IconURL)
}

func TestLoad_ItemMergePrecedence(t *testing.T) {
	snap, err := newTestLoader(cdnServer(t), "").Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Items, 3)

	// in both: Meraki stats and price, Data Dragon name and description
	ie := snap.Items[3031]
	assert.Equal(t, "Infinity Edge", ie.Name)
	assert.Equal(t, "<stats>Crit</stats>", ie.Description)
	assert.Equal(t, 3450, ie.Gold)
	assert.Equal(t, 70.0, ie.Stats.AttackDamage)
	assert.Equal(t, 25.0, ie.Stats.CritChance)

	// Meraki only
	kraken := snap.Items[6672]
	assert.Equal(t, "Kraken Slayer", kraken.Name)
	assert.Equal(t, 40.0, kraken.Stats.AttackSpeed)
	assert.Equal(t, 4.0, kraken.Stats.MoveSpeedPercent)

	// Data Dragon only, stats converted from Flat*Mod keys
	db := snap.Items[1055]
	assert.Equal(t, 450, db.Gold)
	assert.Equal(t, 8.0, db.Stats.AttackDamage)
	assert.Equal(t, 80.0, db.Stats.Health)
	assert.Equal(t, "Good starting item", snap.Item(1055).Description)
}

func TestLoad_MerakiDown(t *testing.T) {
	snap, err := newTestLoader(cdnServer(t, "/meraki/items.json"), "").Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meraki")

	require.Len(t, snap.Items, 2)
	ie := snap.Items[3031]
	assert.Equal(t, 3400, ie.Gold)
	assert.Equal(t, 25.0, ie.Stats.CritChance, "fractions are converted to percentage points")
}

func TestLoad_PinnedVersion(t *testing.T) {
	snap, _ := newTestLoader(cdnServer(t), "14.24.1").Load(context.Background())
	assert.Equal(t, "14.24.1", snap.Version)
	assert.Len(t, snap.Champions, 2)
	// only champion.json exists for the pinned version
	assert.Empty(t, snap.Spells)
}

func TestLoad_EverythingDown(t *testing.T) {
	srv := cdnServer(t, ".json")
	snap, err := newTestLoader(srv, "").Load(context.Background())
	require.Error(t, err)

	assert.Equal(t, FallbackVersion, snap.Version)
	assert.True(t, snap.Empty())

	item := snap.Item(3031)
	assert.True(t, item.Placeholder)
	assert.Equal(t, "Item 3031", item.Name)
	champ := snap.Champion("Ahri")
	assert.True(t, champ.Placeholder)
	assert.Equal(t, "Ahri", champ.Name)
	assert.True(t, snap.Rune(8112).Placeholder)
	assert.True(t, snap.Spell(4).Placeholder)
}

func TestNilSnapshotYieldsPlaceholders(t *testing.T) {
	var snap *Snapshot
	assert.True(t, snap.Empty())
	assert.True(t, snap.Item(1).Placeholder)
	assert.True(t, snap.Champion("Zed").Placeholder)
	_, ok := snap.LookupChampion("Zed")
	assert.False(t, ok)
}
