package valapi

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Catalog indexa todo por uuid en minúsculas.
type Catalog struct {
	ClientVersion string

	agents  map[string]Agent
	maps    map[string]Map // por mapUrl
	weapons []Weapon
	skins   map[string]skinRef
	buddies map[string]Buddy
	sprays  map[string]Spray
	titles  map[string]PlayerTitle
	cards   map[string]PlayerCard
	tiers   map[string]ContentTier
}

type skinRef struct {
	skin   Skin
	weapon Weapon
}

func key(id string) string { return strings.ToLower(strings.TrimSpace(id)) }

// Load baja todo en paralelo. Si algo falla devuelve el primer error.
func (c *Client) Load(ctx context.Context) (*Catalog, error) {
	var (
		version Version
		agents  []Agent
		maps    []Map
		weapons []Weapon
		buddies []Buddy
		sprays  []Spray
		titles  []PlayerTitle
		cards   []PlayerCard
		tiers   []ContentTier
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { version, err = c.Version(ctx); return })
	g.Go(func() (err error) { agents, err = c.Agents(ctx); return })
	g.Go(func() (err error) { maps, err = c.Maps(ctx); return })
	g.Go(func() (err error) { weapons, err = c.Weapons(ctx); return })
	g.Go(func() (err error) { buddies, err = c.Buddies(ctx); return })
	g.Go(func() (err error) { sprays, err = c.Sprays(ctx); return })
	g.Go(func() (err error) { titles, err = c.PlayerTitles(ctx); return })
	g.Go(func() (err error) { cards, err = c.PlayerCards(ctx); return })
	g.Go(func() (err error) { tiers, err = c.ContentTiers(ctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return NewCatalog(version, agents, maps, weapons, buddies, sprays, titles, cards, tiers), nil
}

func NewCatalog(version Version, agents []Agent, maps []Map, weapons []Weapon, buddies []Buddy,
	sprays []Spray, titles []PlayerTitle, cards []PlayerCard, tiers []ContentTier) *Catalog {
	cat := &Catalog{
		ClientVersion: version.RiotClientVersion,
		agents:        make(map[string]Agent, len(agents)),
		maps:          make(map[string]Map, len(maps)),
		weapons:       weapons,
		skins:         map[string]skinRef{},
		buddies:       make(map[string]Buddy, len(buddies)),
		sprays:        make(map[string]Spray, len(sprays)),
		titles:        make(map[string]PlayerTitle, len(titles)),
		cards:         make(map[string]PlayerCard, len(cards)),
		tiers:         make(map[string]ContentTier, len(tiers)),
	}
	for _, a := range agents {
		cat.agents[key(a.UUID)] = a
	}
	for _, m := range maps {
		cat.maps[key(m.MapURL)] = m
	}
	for _, w := range weapons {
		for _, s := range w.Skins {
			cat.skins[key(s.UUID)] = skinRef{skin: s, weapon: w}
		}
	}
	for _, b := range buddies {
		cat.buddies[key(b.UUID)] = b
		// el socket trae a veces el uuid del nivel
		for _, l := range b.Levels {
			cat.buddies[key(l.UUID)] = b
		}
	}
	for _, s := range sprays {
		cat.sprays[key(s.UUID)] = s
	}
	for _, t := range titles {
		cat.titles[key(t.UUID)] = t
	}
	for _, c := range cards {
		cat.cards[key(c.UUID)] = c
	}
	for _, t := range tiers {
		cat.tiers[key(t.UUID)] = t
	}
	return cat
}

func (c *Catalog) Agent(id string) (Agent, bool) {
	a, ok := c.agents[key(id)]
	return a, ok
}

// AgentName devuelve "" si el id no está.
func (c *Catalog) AgentName(id string) string {
	return c.agents[key(id)].DisplayName
}

// MapByURL resuelve "/Game/Maps/Ascent/Ascent".
func (c *Catalog) MapByURL(url string) (Map, bool) {
	m, ok := c.maps[key(url)]
	return m, ok
}

func (c *Catalog) MapName(url string) string {
	if m, ok := c.MapByURL(url); ok {
		return m.DisplayName
	}
	return ""
}

func (c *Catalog) WeaponByName(name string) (Weapon, bool) {
	for _, w := range c.weapons {
		if strings.EqualFold(w.DisplayName, name) {
			return w, true
		}
	}
	return Weapon{}, false
}

func (c *Catalog) Weapon(id string) (Weapon, bool) {
	for _, w := range c.weapons {
		if key(w.UUID) == key(id) {
			return w, true
		}
	}
	return Weapon{}, false
}

func (c *Catalog) WeaponNames() []string {
	out := make([]string, 0, len(c.weapons))
	for _, w := range c.weapons {
		out = append(out, w.DisplayName)
	}
	return out
}

// Skin devuelve la skin y su arma.
func (c *Catalog) Skin(id string) (Skin, Weapon, bool) {
	r, ok := c.skins[key(id)]
	return r.skin, r.weapon, ok
}

func (c *Catalog) Buddy(id string) (Buddy, bool) {
	b, ok := c.buddies[key(id)]
	return b, ok
}

func (c *Catalog) Spray(id string) (Spray, bool) {
	s, ok := c.sprays[key(id)]
	return s, ok
}

func (c *Catalog) TitleText(id string) string {
	if t, ok := c.titles[key(id)]; ok && t.TitleText != nil {
		return *t.TitleText
	}
	return ""
}

func (c *Catalog) CardArt(id string) string {
	return c.cards[key(id)].LargeArt
}

func (c *Catalog) ContentTier(id string) (ContentTier, bool) {
	t, ok := c.tiers[key(id)]
	return t, ok
}
