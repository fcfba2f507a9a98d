package service

import (
	"strings"
	"time"

	"github.com/jose-valero/vry/internal/adapters/riot"
	"github.com/jose-valero/vry/internal/adapters/valapi"
	"github.com/jose-valero/vry/internal/domain"
)

// sockets del inventario
var sockets = map[string]string{
	"skin":             "bcef87d6-209b-46c6-8b19-fbe40bd95abc",
	"skin_level":       "e7c63390-eda7-46e0-bb7a-a6abdacd2433",
	"skin_chroma":      "3ad1b2b2-acdb-4524-852f-954a76ddae0a",
	"skin_buddy":       "77258665-71d1-4623-bc72-44db9bd5b3b3",
	"skin_buddy_level": "dd3bf334-87f3-40bd-b043-682a57a8dc3a",
}

const sprayTypeID = "d5f120f8-ff8c-4aac-92ea-f2b5acbe9475"

// tierColors por content tier: Select, Deluxe, Premium, Exclusive, Ultra.
var tierColors = map[string]string{
	"12683d76-48d7-84a3-4e09-6985794f0445": "#5A9FE2",
	"0cebb8be-46d7-c12a-d306-e9907bfc5a25": "#009587",
	"60bca009-4182-7998-dee7-b8a2558dc369": "#D1548D",
	"e046854e-406c-37f4-6607-19a9ba8426fc": "#F5955B",
	"411e4a55-4e59-7757-41f0-86a53f101bb5": "#FAD663",
}

type SkinCell struct {
	Name  string
	Color string
}

type LoadoutService struct {
	cat *valapi.Catalog
	now func() time.Time
}

func NewLoadoutService(cat *valapi.Catalog) *LoadoutService {
	return &LoadoutService{cat: cat, now: time.Now}
}

// Pair asocia cada jugador con su loadout: por Subject, o por posición si
// la respuesta no lo trae. En pregame del equipo rojo se cuenta desde el final.
func Pair(players []domain.Player, loadouts []riot.Loadout, redOffset bool) map[string]riot.Loadout {
	out := make(map[string]riot.Loadout, len(players))
	bySubject := map[string]riot.Loadout{}
	for _, l := range loadouts {
		if l.Subject != "" {
			bySubject[l.Subject] = l
		}
	}
	for i, p := range players {
		if l, ok := bySubject[p.Subject]; ok {
			out[p.Subject] = l
			continue
		}
		idx := i
		if redOffset {
			idx = i + len(players) - len(loadouts)
			if idx < 0 {
				idx += len(loadouts)
			}
		}
		if idx >= 0 && idx < len(loadouts) && loadouts[idx].Subject == "" {
			out[p.Subject] = loadouts[idx]
		}
	}
	return out
}

// Skins devuelve el nombre de skin del arma configurada por jugador.
func (s *LoadoutService) Skins(paired map[string]riot.Loadout, weaponName string) map[string]SkinCell {
	out := map[string]SkinCell{}
	weapon, ok := s.cat.WeaponByName(weaponName)
	if !ok {
		return out
	}
	for puuid, l := range paired {
		item, ok := findItem(l.Items, weapon.UUID)
		if !ok {
			continue
		}
		sock, ok := item.Sockets[sockets["skin"]]
		if !ok {
			continue
		}
		skin, _, ok := s.cat.Skin(sock.Item.ID)
		if !ok {
			continue
		}
		cell := SkinCell{Name: strings.TrimSpace(strings.Replace(skin.DisplayName, " "+weapon.DisplayName, "", 1))}
		if skin.ContentTierUUID != nil {
			cell.Color = s.tierColor(*skin.ContentTierUUID)
		}
		out[puuid] = cell
	}
	return out
}

// tierColor usa la tabla fija y si no el highlightColor (RRGGBBAA) del catálogo.
func (s *LoadoutService) tierColor(id string) string {
	if c, ok := tierColors[strings.ToLower(id)]; ok {
		return c
	}
	if t, ok := s.cat.ContentTier(id); ok && len(t.HighlightColor) >= 6 {
		return "#" + strings.ToUpper(t.HighlightColor[:6])
	}
	return ""
}

func findItem(items map[string]riot.LoadoutItem, id string) (riot.LoadoutItem, bool) {
	if it, ok := items[id]; ok {
		return it, true
	}
	for k, it := range items {
		if strings.EqualFold(k, id) {
			return it, true
		}
	}
	return riot.LoadoutItem{}, false
}

// MatchLoadout arma el JSON para los overlays.
func (s *LoadoutService) MatchLoadout(players []domain.Player, paired map[string]riot.Loadout, names map[string]string, mapName string, hideNames bool) domain.MatchLoadout {
	ml := domain.MatchLoadout{
		Players: map[string]*domain.LoadoutPlayer{},
		Time:    s.now().Unix(),
		Map:     mapName,
	}
	for _, p := range players {
		l, ok := paired[p.Subject]
		if !ok {
			continue
		}
		lp := &domain.LoadoutPlayer{
			Name:    names[p.Subject],
			Team:    p.TeamID,
			Level:   p.PlayerIdentity.AccountLevel,
			Sprays:  map[int]domain.LoadoutSpray{},
			Weapons: map[string]*domain.LoadoutWeapon{},
		}
		agent, hasAgent := s.cat.Agent(p.CharacterID)
		if hideNames && hasAgent {
			lp.Name = agent.DisplayName
		}
		lp.Title = s.cat.TitleText(p.PlayerIdentity.PlayerTitleID)
		lp.PlayerCard = s.cat.CardArt(p.PlayerIdentity.PlayerCardID)
		if hasAgent {
			lp.AgentArtworkName = agent.DisplayName + "Artwork"
			lp.Agent = agent.DisplayIcon
		}

		j := 0
		for _, sel := range l.Expressions.AESSelections {
			if !strings.EqualFold(sel.TypeID, sprayTypeID) {
				continue
			}
			var sp domain.LoadoutSpray
			if spray, ok := s.cat.Spray(sel.AssetID); ok {
				sp = domain.LoadoutSpray{DisplayName: spray.DisplayName, DisplayIcon: spray.DisplayIcon, FullTransparentIcon: spray.FullTransparentIcon}
			}
			lp.Sprays[j] = sp
			j++
		}

		for weaponID, item := range l.Items {
			lp.Weapons[weaponID] = s.weapon(weaponID, item)
		}
		ml.Players[p.Subject] = lp
	}
	return ml
}

func (s *LoadoutService) weapon(weaponID string, item riot.LoadoutItem) *domain.LoadoutWeapon {
	w := &domain.LoadoutWeapon{}
	get := func(name string) string { return item.Sockets[sockets[name]].Item.ID }
	w.Skin, w.SkinLevel, w.SkinChroma = get("skin"), get("skin_level"), get("skin_chroma")
	w.SkinBuddy, w.SkinBuddyLevel = get("skin_buddy"), get("skin_buddy_level")

	if w.SkinBuddy != "" {
		w.BuddyUUID = w.SkinBuddy
		if b, ok := s.cat.Buddy(w.SkinBuddy); ok {
			w.BuddyDisplayName, w.BuddyDisplayIcon = b.DisplayName, b.DisplayIcon
		}
	}

	weapon, ok := s.cat.Weapon(weaponID)
	if !ok {
		return w
	}
	w.Weapon = weapon.DisplayName
	skin, _, ok := s.cat.Skin(w.Skin)
	if !ok {
		return w
	}
	w.SkinDisplayName = skin.DisplayName
	w.SkinDisplayIcon = skinIcon(skin, w.SkinChroma)
	if strings.HasPrefix(skin.DisplayName, "Standard") || strings.HasPrefix(skin.DisplayName, "Melee") {
		w.SkinDisplayIcon = weapon.DisplayIcon
	}
	return w
}

// skinIcon: icono del chroma, render del chroma, icono de la skin, primer nivel.
func skinIcon(skin valapi.Skin, chromaID string) string {
	for _, c := range skin.Chromas {
		if !strings.EqualFold(c.UUID, chromaID) {
			continue
		}
		switch {
		case c.DisplayIcon != nil:
			return *c.DisplayIcon
		case c.FullRender != nil:
			return *c.FullRender
		case skin.DisplayIcon != nil:
			return *skin.DisplayIcon
		case len(skin.Levels) > 0 && skin.Levels[0].DisplayIcon != nil:
			return *skin.Levels[0].DisplayIcon
		}
	}
	return ""
}
