package domain

import "strings"

var gamemodes = map[string]string{
	"newmap":      "New Map",
	"competitive": "Competitive",
	"unrated":     "Unrated",
	"swiftplay":   "Swiftplay",
	"spikerush":   "Spike Rush",
	"deathmatch":  "Deathmatch",
	"ggteam":      "Escalation",
	"onefa":       "Replication",
	"hurm":        "Team Deathmatch",
	"custom":      "Custom",
	"snowball":    "Snowball Fight",
	"premier":     "Premier",
	"":            "Custom",
}

// ModeName traduce el queueId de la presencia.
func ModeName(queueID, provisioningFlow, partyState string) string {
	if provisioningFlow == "CustomGame" || partyState == "CUSTOM_GAME_SETUP" {
		return "Custom Game"
	}
	if m, ok := gamemodes[strings.ToLower(queueID)]; ok {
		return m
	}
	return strings.ToUpper(queueID[:1]) + queueID[1:]
}

// ServerName saca la ciudad del GamePodID, p.ej.
// "aresriot.aws-rclusterprod-euc1-1.eu-gp-frankfurt-1" -> "Frankfurt".
func ServerName(pod string) string {
	i := strings.LastIndex(pod, "-gp-")
	if i < 0 {
		return ""
	}
	name := pod[i+len("-gp-"):]
	if j := strings.LastIndex(name, "-"); j > 0 {
		name = name[:j]
	}
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
