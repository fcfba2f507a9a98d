package valapi

type Version struct {
	Branch            string `json:"branch"`
	Version           string `json:"version"`
	RiotClientVersion string `json:"riotClientVersion"`
}

type Agent struct {
	UUID             string `json:"uuid"`
	DisplayName      string `json:"displayName"`
	DisplayIcon      string `json:"displayIcon"`
	KillfeedPortrait string `json:"killfeedPortrait"`
}

type Map struct {
	UUID         string `json:"uuid"`
	DisplayName  string `json:"displayName"`
	MapURL       string `json:"mapUrl"`
	Splash       string `json:"splash"`
	ListViewIcon string `json:"listViewIcon"`
}

type Chroma struct {
	UUID        string  `json:"uuid"`
	DisplayName string  `json:"displayName"`
	DisplayIcon *string `json:"displayIcon"`
	FullRender  *string `json:"fullRender"`
}

type SkinLevel struct {
	UUID        string  `json:"uuid"`
	DisplayIcon *string `json:"displayIcon"`
}

type Skin struct {
	UUID            string      `json:"uuid"`
	DisplayName     string      `json:"displayName"`
	DisplayIcon     *string     `json:"displayIcon"`
	ContentTierUUID *string     `json:"contentTierUuid"`
	Chromas         []Chroma    `json:"chromas"`
	Levels          []SkinLevel `json:"levels"`
}

type Weapon struct {
	UUID        string `json:"uuid"`
	DisplayName string `json:"displayName"`
	DisplayIcon string `json:"displayIcon"`
	Skins       []Skin `json:"skins"`
}

type Buddy struct {
	UUID        string `json:"uuid"`
	DisplayName string `json:"displayName"`
	DisplayIcon string `json:"displayIcon"`
	Levels      []struct {
		UUID        string `json:"uuid"`
		DisplayIcon string `json:"displayIcon"`
	} `json:"levels"`
}

type Spray struct {
	UUID                string `json:"uuid"`
	DisplayName         string `json:"displayName"`
	DisplayIcon         string `json:"displayIcon"`
	FullTransparentIcon string `json:"fullTransparentIcon"`
}

type PlayerTitle struct {
	UUID      string  `json:"uuid"`
	TitleText *string `json:"titleText"`
}

type PlayerCard struct {
	UUID     string `json:"uuid"`
	LargeArt string `json:"largeArt"`
	SmallArt string `json:"smallArt"`
	WideArt  string `json:"wideArt"`
}

type ContentTier struct {
	UUID           string `json:"uuid"`
	DevName        string `json:"devName"`
	HighlightColor string `json:"highlightColor"`
}
