package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fireFunction() Function {
	return Function{
		Name: "Fire",
		Params: []Property{
			{Name: "Target"},
			{Name: "Force"},
		},
	}
}

func TestApplyFunctionDescription(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantDesc   string
		wantTarget string
		wantForce  string
	}{
		{
			name:     "plain text",
			text:     "Fires the weapon.\nUses ammo.",
			wantDesc: "Fires the weapon.\nUses ammo.",
		},
		{
			name:       "params with continuation",
			text:       "Fires.\n@param Target the actor to hit\n  and damage\n@param Force how hard",
			wantDesc:   "Fires.",
			wantTarget: "the actor to hit\nand damage",
			wantForce:  "how hard",
		},
		{
			name:       "case-insensitive tag",
			text:       "@PARAM Target who",
			wantTarget: "who",
		},
		{
			name:       "other tag resets current param and is dropped",
			text:       "@param Target who\n@return nothing\ntrailing text",
			wantDesc:   "trailing text",
			wantTarget: "who",
		},
		{
			name:     "unknown param drops its text",
			text:     "Intro\n@param Missing text\nmore for missing",
			wantDesc: "Intro\nmore for missing",
		},
		{
			name:       "malformed param line keeps current param",
			text:       "@param Target who\n@param\nstill target",
			wantTarget: "who\nstill target",
		},
		{
			name:     "description is trimmed",
			text:     "\n\n  body  \n\n",
			wantDesc: "body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := fireFunction()
			ApplyFunctionDescription(&fn, tt.text)

			assert.Equal(t, tt.wantDesc, fn.Description)
			assert.Equal(t, tt.wantTarget, fn.Params[0].Description)
			assert.Equal(t, tt.wantForce, fn.Params[1].Description)
		})
	}
}

func TestBuildAppliesDescriptions(t *testing.T) {
	desc := Descriptions{
		"Weapon":        "A weapon.",
		"Weapon:Ammo":   "Rounds left.",
		"Weapon:Fire":   "Shoots.\n@param Target victim",
		"Grip":          "How it is held.",
		"EMode":         "Fire modes.",
		"EMode.Burst":   "Three rounds.",
		"Weapon:Absent": "never used",
	}

	reg, err := Build(BuildOptions{Descriptions: desc}, Source{
		Classes: []Type{{
			Name: "Weapon", FullName: "Game.Weapon",
			Properties: []Property{{Name: "Ammo"}},
			Functions:  []Function{fireFunction()},
		}},
		Structs: []Type{{Name: "Grip", FullName: "Game.Grip"}},
		Enums: []Enum{{
			Name: "EMode", FullName: "Game.EMode",
			Members: []Member{{Name: "Single"}, {Name: "Burst", Value: 1}},
		}},
	})
	require.NoError(t, err)

	w, _ := reg.Class("Game.Weapon")
	assert.Equal(t, "A weapon.", w.Description)
	assert.Equal(t, "Rounds left.", w.Properties[0].Description)
	assert.Equal(t, "Shoots.", w.Functions[0].Description)
	assert.Equal(t, "victim", w.Functions[0].Params[0].Description)

	g, _ := reg.Struct("Game.Grip")
	assert.Equal(t, "How it is held.", g.Description)

	e, _ := reg.Enum("Game.EMode")
	assert.Equal(t, "Fire modes.", e.Description)
	assert.Empty(t, e.Members[0].Description)
	assert.Equal(t, "Three rounds.", e.Members[1].Description)
}
