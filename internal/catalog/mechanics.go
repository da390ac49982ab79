package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/MrLemonHog/nylium-wiki-page/internal/models"
)

// Mechanic labels as shown on the wiki
const (
	MechanicNutrition     = "Питательность"
	MechanicSaturation    = "Насыщение"
	MechanicEffect        = "Эффект"
	MechanicBackpack      = "Рюкзак"
	MechanicCompatibility = "Совместимость"

	backpackNote    = "Нельзя положить шалкеры и мешки"
	applyEffectsKey = "APPLY_EFFECTS"
	slotsPerRow     = 9
)

// Mechanics extracts the gameplay attributes of an item definition
func Mechanics(item *yaml.Node) models.Mechanics {
	mechs := models.Mechanics{}

	if components := lookup(item, "Components"); components != nil {
		if food := lookup(components, "food"); food != nil {
			if has(food, "nutrition") {
				mechs = append(mechs, models.Attribute{
					Key:   MechanicNutrition,
					Value: displayValue(lookup(food, "nutrition")) + " ед.",
				})
			}
			if has(food, "saturation") {
				mechs = append(mechs, models.Attribute{
					Key:   MechanicSaturation,
					Value: displayValue(lookup(food, "saturation")) + " ед.",
				})
			}
		}

		if consumable := lookup(components, "consumable"); consumable != nil {
			if effects := effectList(lookup(consumable, "effects")); len(effects) > 0 {
				mechs = append(mechs, models.Attribute{
					Key:   MechanicEffect,
					Value: strings.Join(effects, ", "),
				})
			}
		}
	}

	if backpack := lookup(lookup(item, "Mechanics"), "backpack"); backpack != nil {
		rows := intNumber(1)
		if v, ok := numberValue(lookup(backpack, "rows")); ok {
			rows = v
		}
		mechs = append(mechs,
			models.Attribute{
				Key:   MechanicBackpack,
				Value: fmt.Sprintf("%s ряд(а) (%s слотов)", rows, rows.mul(slotsPerRow)),
			},
			models.Attribute{Key: MechanicCompatibility, Value: backpackNote},
		)
	}

	return mechs
}

// effectList formats consumable effects. Effects normally sit under
// APPLY_EFFECTS; a bare mapping of effects is accepted too, unless it has a
// duration key, in which case it describes a single unnamed effect.
func effectList(raw *yaml.Node) []string {
	if !isMapping(raw) {
		return nil
	}

	apply := lookup(raw, applyEffectsKey)
	if len(mappingPairs(apply)) == 0 && len(mappingPairs(raw)) > 0 && !has(raw, "duration") {
		apply = raw
	}

	var effects []string
	for _, p := range mappingPairs(apply) {
		name := keyString(p[0])
		if name == applyEffectsKey || !isMapping(p[1]) {
			continue
		}

		duration := "0"
		if d := lookup(p[1], "duration"); d != nil {
			duration = displayValue(d)
		}

		amplifier := intNumber(0)
		if a, ok := numberValue(lookup(p[1], "amplifier")); ok {
			amplifier = a
		}

		effects = append(effects, fmt.Sprintf("%s %s (%ss)", capitalize(name), amplifier.add(1), duration))
	}
	return effects
}

// capitalize upper-cases the first letter and lower-cases the rest
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	// a Caser keeps state, so it is not shared
	return strings.ToUpper(string(r)) + cases.Lower(language.Und).String(s[size:])
}
