// Package types provides type definitions for structured data used throughout the archinews-creator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
)

// ProjectType classifies a project and selects its USP presets.
type ProjectType string

// Supported project types
const (
	ProjectTypeSchool      ProjectType = "School"
	ProjectTypeResidential ProjectType = "Residential"
	ProjectTypeOffice      ProjectType = "Office"
	ProjectTypeMixedUse    ProjectType = "Mixed-use"
	ProjectTypeCultural    ProjectType = "Cultural"
)

// ProjectTypes lists the project types in presentation order.
var ProjectTypes = []ProjectType{
	ProjectTypeSchool,
	ProjectTypeResidential,
	ProjectTypeOffice,
	ProjectTypeMixedUse,
	ProjectTypeCultural,
}

// FirmOptions are the architectural offices a project can be credited to.
var FirmOptions = []string{"Scherzer Architekten", "Scherzer Architekten Partnerschaft"}

// Project is a project card. Name is the unique key in the project store.
type Project struct {
	Name              string      `json:"name" validate:"required"`
	Client            string      `json:"client"`
	Location          string      `json:"location"`
	Type              ProjectType `json:"type" validate:"required,oneof=School Residential Office Mixed-use Cultural"`
	SizeScope         string      `json:"size_scope"`
	Volume            string      `json:"volume"`
	Timeline          string      `json:"timeline"`
	Phase             string      `json:"phase"`
	ArchitecturalFirm []string    `json:"architectural_firm"`
	CustomUSPs        []string    `json:"custom_usps,omitempty"`
}

// NewProjectDraft returns the blank card offered for a new project.
func NewProjectDraft() Project {
	return Project{
		Type:              ProjectTypeSchool,
		ArchitecturalFirm: []string{},
	}
}

// Normalize trims the free-text fields the same way the save action does.
func (p Project) Normalize() Project {
	p.Name = strings.TrimSpace(p.Name)
	p.Client = strings.TrimSpace(p.Client)
	p.Location = strings.TrimSpace(p.Location)
	p.SizeScope = strings.TrimSpace(p.SizeScope)
	p.Volume = strings.TrimSpace(p.Volume)
	p.Timeline = strings.TrimSpace(p.Timeline)
	p.Phase = strings.TrimSpace(p.Phase)
	if p.Type == "" {
		p.Type = ProjectTypeSchool
	}
	if p.ArchitecturalFirm == nil {
		p.ArchitecturalFirm = []string{}
	}
	return p
}

// Validate validates the project card using the validator.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Message: "project name is required"}
	}
	return validateStruct(p)
}

// Firms returns the credited offices joined for display.
func (p Project) Firms() string {
	return strings.Join(p.ArchitecturalFirm, ", ")
}
