// Package usps provides the preset unique selling points per project type and the
// merge rules that turn the operator's picks into the list sent to the model.
package usps

import (
	"strings"

	"github.com/jonathan/archinews-creator/internal/types"
)

// Presets are the built-in USPs offered for each project type.
var Presets = map[types.ProjectType][]string{
	types.ProjectTypeSchool:      {"Flexible classrooms", "Outdoor learning", "STEM labs"},
	types.ProjectTypeResidential: {"Energy efficient", "Smart home", "Community spaces"},
	types.ProjectTypeOffice:      {"Open plan", "Collaboration zones", "Green building"},
	types.ProjectTypeMixedUse:    {"Retail integration", "Transit access", "Public plaza"},
	types.ProjectTypeCultural:    {"Exhibition halls", "Performance spaces", "Historic preservation"},
}

// PresetsFor returns the presets for a project type, or nil for an unknown type.
func PresetsFor(projectType types.ProjectType) []string {
	return Presets[projectType]
}

// ParseCustom splits a comma-separated list, trimming entries and dropping empty ones.
func ParseCustom(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Dedupe removes case-insensitive duplicates, keeping the first spelling seen.
func Dedupe(seq []string) []string {
	seen := make(map[string]bool, len(seq))
	out := make([]string, 0, len(seq))
	for _, item := range seq {
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

// Final merges ticked presets, the free-text custom list and ticked previously saved
// custom USPs, in that order, and dedupes the result.
func Final(selected []string, customRaw string, savedTicked []string) []string {
	all := make([]string, 0, len(selected)+len(savedTicked)+4)
	all = append(all, selected...)
	all = append(all, ParseCustom(customRaw)...)
	all = append(all, savedTicked...)
	return Dedupe(all)
}
