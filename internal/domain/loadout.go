package domain

// MatchLoadout es el JSON que consume el overlay web ("matchLoadout").
type MatchLoadout struct {
	Players map[string]*LoadoutPlayer `json:"Players"`
	Time    int64                     `json:"time"`
	Map     string                    `json:"map"`
}

type LoadoutPlayer struct {
	Name             string                    `json:"Name"`
	Team             string                    `json:"Team"`
	Level            int                       `json:"Level"`
	Title            string                    `json:"Title,omitempty"`
	PlayerCard       string                    `json:"PlayerCard,omitempty"`
	AgentArtworkName string                    `json:"AgentArtworkName,omitempty"`
	Agent            string                    `json:"Agent,omitempty"`
	Sprays           map[int]LoadoutSpray      `json:"Sprays"`
	Weapons          map[string]*LoadoutWeapon `json:"Weapons"`
}

type LoadoutSpray struct {
	DisplayName         string `json:"displayName"`
	DisplayIcon         string `json:"displayIcon"`
	FullTransparentIcon string `json:"fullTransparentIcon"`
}

type LoadoutWeapon struct {
	Skin             string `json:"skin,omitempty"`
	SkinLevel        string `json:"skin_level,omitempty"`
	SkinChroma       string `json:"skin_chroma,omitempty"`
	SkinBuddy        string `json:"skin_buddy,omitempty"`
	SkinBuddyLevel   string `json:"skin_buddy_level,omitempty"`
	BuddyUUID        string `json:"buddy_uuid,omitempty"`
	BuddyDisplayName string `json:"buddy_displayName,omitempty"`
	BuddyDisplayIcon string `json:"buddy_displayIcon,omitempty"`
	Weapon           string `json:"weapon,omitempty"`
	SkinDisplayName  string `json:"skinDisplayName,omitempty"`
	SkinDisplayIcon  string `json:"skinDisplayIcon,omitempty"`
}
