package usps

import (
	"testing"

	"github.com/jonathan/archinews-creator/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPresetsFor(t *testing.T) {
	for _, pt := range types.ProjectTypes {
		assert.Len(t, PresetsFor(pt), 3, "project type %s", pt)
	}
	assert.Contains(t, PresetsFor(types.ProjectTypeSchool), "STEM labs")
	assert.Nil(t, PresetsFor("Warehouse"))
}

func TestParseCustom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"blanks only", " , ,", nil},
		{"trims", " Smart home ,Rooftop garden", []string{"Smart home", "Rooftop garden"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCustom(tt.input))
		})
	}
}

func TestDedupe_CaseInsensitiveFirstWins(t *testing.T) {
	got := Dedupe([]string{"Green building", "green building", "Smart home", "GREEN BUILDING"})
	assert.Equal(t, []string{"Green building", "Smart home"}, got)
}

func TestFinal(t *testing.T) {
	got := Final([]string{"Green building"}, "green building, Smart home", nil)
	assert.Equal(t, []string{"Green building", "Smart home"}, got)

	withSaved := Final([]string{"STEM labs"}, "", []string{"Rooftop garden", "stem labs"})
	assert.Equal(t, []string{"STEM labs", "Rooftop garden"}, withSaved)

	assert.Empty(t, Final(nil, "", nil))
}
