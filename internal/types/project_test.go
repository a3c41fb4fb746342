//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_Validate(t *testing.T) {
	tests := []struct {
		name    string
		project Project
		wantErr bool
		field   string
	}{
		{
			name:    "valid project",
			project: Project{Name: "Oakview School", Type: ProjectTypeSchool},
		},
		{
			name:    "empty name",
			project: Project{Name: "", Type: ProjectTypeSchool},
			wantErr: true,
			field:   "name",
		},
		{
			name:    "whitespace name",
			project: Project{Name: "   ", Type: ProjectTypeOffice},
			wantErr: true,
			field:   "name",
		},
		{
			name:    "unknown type",
			project: Project{Name: "Harbour", Type: "Warehouse"},
			wantErr: true,
			field:   "type",
		},
		{
			name:    "mixed-use type",
			project: Project{Name: "Quarter", Type: ProjectTypeMixedUse},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.project.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestProject_Normalize(t *testing.T) {
	p := Project{Name: "  Oakview School ", Client: " City ", Phase: " LP 5 "}.Normalize()

	assert.Equal(t, "Oakview School", p.Name)
	assert.Equal(t, "City", p.Client)
	assert.Equal(t, "LP 5", p.Phase)
	assert.Equal(t, ProjectTypeSchool, p.Type)
	assert.NotNil(t, p.ArchitecturalFirm)
}

func TestProject_JSONKeys(t *testing.T) {
	p := Project{
		Name:              "Oakview School",
		Type:              ProjectTypeSchool,
		SizeScope:         "4,000 m²",
		ArchitecturalFirm: []string{"Scherzer Architekten"},
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "size_scope")
	assert.Contains(t, raw, "architectural_firm")
	assert.NotContains(t, raw, "custom_usps")
}

func TestProject_Firms(t *testing.T) {
	p := Project{ArchitecturalFirm: FirmOptions}
	assert.Equal(t, "Scherzer Architekten, Scherzer Architekten Partnerschaft", p.Firms())
	assert.Equal(t, "", Project{}.Firms())
}

func TestNewProjectDraft(t *testing.T) {
	draft := NewProjectDraft()
	assert.Empty(t, draft.Name)
	assert.Equal(t, ProjectTypeSchool, draft.Type)
}
