package catalog

const defaultIcon = "box"

// iconMap maps source materials to frontend icon names
var iconMap = map[string]string{
	"PAPER":               "scroll",
	"EMERALD":             "shield-check",
	"DIAMOND":             "gem",
	"LEATHER_HORSE_ARMOR": "package",
	"POISONOUS_POTATO":    "cookie",
	"TRIDENT":             "send",
	"TOTEM_OF_UNDYING":    "shield-plus",
	"SPAWNER":             "box-select",
	"NOTEBLOCK":           "box",
	"POTION":              "flask-conical",
	"COMPASS":             "monitor",
	"STICK":               "drumstick",
}

// IconFor returns the icon shown for a material
func IconFor(material string) string {
	if icon, ok := iconMap[material]; ok {
		return icon
	}
	return defaultIcon
}
