package ddragon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"riftreplay/internal/logger"
)

// DefaultMerakiURL serves Meraki's item data with full stat objects
const DefaultMerakiURL = "https://cdn.merakianalytics.com/riot/lol/resources/latest/en-US/items.json"

// statShards are not part of runesReforged.json
var statShards = map[int]string{
	5008: "Adaptive Force",
	5005: "Attack Speed",
	5007: "Ability Haste",
	5002: "Armor",
	5003: "Magic Resist",
	5001: "Health Scaling",
	5011: "Health",
	5010: "Move Speed",
	5013: "Tenacity and Slow Resist",
}

// LoaderConfig configures a Loader. Empty fields take defaults.
type LoaderConfig struct {
	CDN       string // Data Dragon root
	MerakiURL string
	Language  string // e.g. en_US
	Version   string // pin a version instead of resolving the latest
	Timeout   time.Duration
}

// Loader fetches reference metadata into a Snapshot
type Loader struct {
	cfg        LoaderConfig
	httpClient *http.Client
	log        *slog.Logger
}

// NewLoader creates a loader
func NewLoader(cfg LoaderConfig) *Loader {
	if cfg.CDN == "" {
		cfg.CDN = DefaultCDN
	}
	cfg.CDN = strings.TrimRight(cfg.CDN, "/")
	if cfg.MerakiURL == "" {
		cfg.MerakiURL = DefaultMerakiURL
	}
	if cfg.Language == "" {
		cfg.Language = "en_US"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	return &Loader{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("ddragon"),
	}
}

func (l *Loader) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s returned status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", url, err)
	}
	return nil
}

// ResolveVersion returns the pinned version, else the latest published one,
// else FallbackVersion.
func (l *Loader) ResolveVersion(ctx context.Context) string {
	if l.cfg.Version != "" {
		return l.cfg.Version
	}
	var versions []string
	if err := l.getJSON(ctx, l.cfg.CDN+"/api/versions.json", &versions); err != nil || len(versions) == 0 {
		l.log.Warn("failed to resolve latest version, using fallback", "fallback", FallbackVersion, "error", err)
		return FallbackVersion
	}
	return versions[0]
}

func (l *Loader) dataURL(version, doc string) string {
	return fmt.Sprintf("%s/cdn/%s/data/%s/%s", l.cfg.CDN, version, l.cfg.Language, doc)
}

// Load resolves the version and loads it
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	return l.LoadVersion(ctx, l.ResolveVersion(ctx))
}

// LoadVersion fetches every source concurrently and merges them. Failing
// sources degrade the snapshot instead of failing the load: the snapshot is
// always returned, and the error (if any) lists what is missing.
func (l *Loader) LoadVersion(ctx context.Context, version string) (*Snapshot, error) {
	snap := NewSnapshot(version, l.cfg.Language, l.cfg.CDN)

	var (
		champs   championDoc
		items    itemDoc
		runes    []runeTreeDoc
		spells   summonerDoc
		meraki   map[string]merakiItem
		errChamp error
		errItem  error
		errRune  error
		errSpell error
		errMer   error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { errChamp = l.getJSON(gctx, l.dataURL(version, "champion.json"), &champs); return nil })
	g.Go(func() error { errItem = l.getJSON(gctx, l.dataURL(version, "item.json"), &items); return nil })
	g.Go(func() error { errRune = l.getJSON(gctx, l.dataURL(version, "runesReforged.json"), &runes); return nil })
	g.Go(func() error { errSpell = l.getJSON(gctx, l.dataURL(version, "summoner.json"), &spells); return nil })
	g.Go(func() error { errMer = l.getJSON(gctx, l.cfg.MerakiURL, &meraki); return nil })
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return snap.Index(), err
	}

	if errChamp == nil {
		addChampions(snap, champs)
	}
	if errRune == nil {
		addRunes(snap, runes)
	}
	if errSpell == nil {
		addSpells(snap, spells)
	}
	var dd *itemDoc
	if errItem == nil {
		dd = &items
	}
	if errMer != nil {
		meraki = nil
	}
	mergeItems(snap, meraki, dd)
	snap.Index()

	errs := errors.Join(
		wrapSource("champion.json", errChamp),
		wrapSource("item.json", errItem),
		wrapSource("runesReforged.json", errRune),
		wrapSource("summoner.json", errSpell),
		wrapSource("meraki items.json", errMer),
	)
	if errs != nil {
		l.log.Warn("reference snapshot degraded", "version", version, "error", errs)
	}
	l.log.Info("reference snapshot loaded",
		"version", version,
		"items", len(snap.Items),
		"champions", len(snap.Champions),
		"runes", len(snap.Runes),
		"spells", len(snap.Spells),
	)
	return snap, errs
}

func wrapSource(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}

func addChampions(s *Snapshot, doc championDoc) {
	for id, c := range doc.Data {
		key, err := strconv.Atoi(c.Key)
		if err != nil {
			continue
		}
		if c.ID != "" {
			id = c.ID
		}
		s.Champions[id] = Champion{ID: id, Key: key, Name: c.Name, Title: c.Title, Blurb: c.Blurb}
	}
}

func addRunes(s *Snapshot, trees []runeTreeDoc) {
	for _, tree := range trees {
		s.Runes[tree.ID] = Rune{ID: tree.ID, Key: tree.Key, Name: tree.Name, Icon: tree.Icon, Description: tree.Name}
		for _, slot := range tree.Slots {
			for _, r := range slot.Runes {
				desc := r.LongDesc
				if desc == "" {
					desc = r.ShortDesc
				}
				s.Runes[r.ID] = Rune{ID: r.ID, Key: r.Key, Name: r.Name, Icon: r.Icon, Description: desc, TreeID: tree.ID}
			}
		}
	}
	for id, name := range statShards {
		if _, ok := s.Runes[id]; !ok {
			s.Runes[id] = Rune{ID: id, Name: name}
		}
	}
}

func addSpells(s *Snapshot, doc summonerDoc) {
	for _, sp := range doc.Data {
		key, err := strconv.Atoi(sp.Key)
		if err != nil {
			continue
		}
		s.Spells[key] = SummonerSpell{ID: key, Name: sp.Name, Description: sp.Description, Image: sp.Image.Full}
	}
}

// mergeItems combines both item sources. Meraki is primary for stats and
// price; Data Dragon's name and description override Meraki's. Items only
// one source knows are kept from that source.
func mergeItems(s *Snapshot, meraki map[string]merakiItem, dd *itemDoc) {
	for key, m := range meraki {
		id := m.ID
		if id == 0 {
			var err error
			if id, err = strconv.Atoi(key); err != nil {
				continue
			}
		}
		s.Items[id] = Item{
			ID:          id,
			Name:        m.Name,
			Description: m.SimpleDescription,
			Plaintext:   m.SimpleDescription,
			Gold:        m.Shop.Prices.Total,
			Tags:        m.Shop.Tags,
			Stats:       statsFromMeraki(m.Stats),
		}
	}
	if dd == nil {
		return
	}

	for key, d := range dd.Data {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		it, ok := s.Items[id]
		if !ok {
			s.Items[id] = Item{
				ID:          id,
				Name:        d.Name,
				Description: d.Description,
				Plaintext:   d.Plaintext,
				Gold:        d.Gold.Total,
				Tags:        d.Tags,
				Stats:       statsFromDDragon(d.Stats),
			}
			continue
		}
		if d.Name != "" {
			it.Name = d.Name
		}
		if d.Description != "" {
			it.Description = d.Description
		}
		if d.Plaintext != "" {
			it.Plaintext = d.Plaintext
		}
		if it.Gold == 0 {
			it.Gold = d.Gold.Total
		}
		if len(it.Tags) == 0 {
			it.Tags = d.Tags
		}
		if it.Stats.IsZero() {
			it.Stats = statsFromDDragon(d.Stats)
		}
		s.Items[id] = it
	}
}
