package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrLemonHog/nylium-wiki-page/internal/models"
)

func TestMechanics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want models.Mechanics
	}{
		{
			name: "no components",
			src:  "material: DIAMOND",
			want: models.Mechanics{},
		},
		{
			name: "food",
			src: `
Components:
  food:
    nutrition: 4
    saturation: 2.0
`,
			want: models.Mechanics{
				{Key: MechanicNutrition, Value: "4 ед."},
				{Key: MechanicSaturation, Value: "2.0 ед."},
			},
		},
		{
			name: "apply effects",
			src: `
Components:
  consumable:
    effects:
      APPLY_EFFECTS:
        SPEED:
          duration: 30
          amplifier: 1
        night_vision:
          duration: 120
`,
			want: models.Mechanics{
				{Key: MechanicEffect, Value: "Speed 2 (30s), Night_vision 1 (120s)"},
			},
		},
		{
			name: "bare effect mapping",
			src: `
Components:
  consumable:
    effects:
      REGENERATION:
        amplifier: 2
`,
			want: models.Mechanics{
				{Key: MechanicEffect, Value: "Regeneration 3 (0s)"},
			},
		},
		{
			name: "single effect with duration is not a list",
			src: `
Components:
  consumable:
    effects:
      duration: 10
      type: SPEED
`,
			want: models.Mechanics{},
		},
		{
			name: "backpack",
			src: `
Mechanics:
  backpack:
    rows: 3
`,
			want: models.Mechanics{
				{Key: MechanicBackpack, Value: "3 ряд(а) (27 слотов)"},
				{Key: MechanicCompatibility, Value: "Нельзя положить шалкеры и мешки"},
			},
		},
		{
			name: "float amplifier keeps its kind",
			src: `
Components:
  consumable:
    effects:
      APPLY_EFFECTS:
        SLOWNESS:
          duration: 3
          amplifier: 1.0
        POISON:
          duration: 2.5
          amplifier: 0.5
`,
			want: models.Mechanics{
				{Key: MechanicEffect, Value: "Slowness 2.0 (3s), Poison 1.5 (2.5s)"},
			},
		},
		{
			name: "non-numeric amplifier falls back to zero",
			src: `
Components:
  consumable:
    effects:
      APPLY_EFFECTS:
        SPEED:
          duration: 5
          amplifier: fast
`,
			want: models.Mechanics{
				{Key: MechanicEffect, Value: "Speed 1 (5s)"},
			},
		},
		{
			name: "fractional backpack rows",
			src: `
Mechanics:
  backpack:
    rows: 2.5
`,
			want: models.Mechanics{
				{Key: MechanicBackpack, Value: "2.5 ряд(а) (22.5 слотов)"},
				{Key: MechanicCompatibility, Value: "Нельзя положить шалкеры и мешки"},
			},
		},
		{
			name: "whole float backpack rows",
			src: `
Mechanics:
  backpack:
    rows: 2.0
`,
			want: models.Mechanics{
				{Key: MechanicBackpack, Value: "2.0 ряд(а) (18.0 слотов)"},
				{Key: MechanicCompatibility, Value: "Нельзя положить шалкеры и мешки"},
			},
		},
		{
			name: "backpack default rows",
			src: `
Mechanics:
  backpack: {}
`,
			want: models.Mechanics{
				{Key: MechanicBackpack, Value: "1 ряд(а) (9 слотов)"},
				{Key: MechanicCompatibility, Value: "Нельзя положить шалкеры и мешки"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Mechanics(parseEntry(t, tt.src)))
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Speed", capitalize("SPEED"))
	assert.Equal(t, "Скорость", capitalize("сКОРОСТЬ"))
	assert.Equal(t, "", capitalize(""))
}
