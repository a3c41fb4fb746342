//nolint:revive // types is a standard Go package name pattern
package types

// Formality is the register of generated website copy.
type Formality string

// Formality values
const (
	FormalityFormal         Formality = "formal"
	FormalitySemiFormal     Formality = "semi-formal"
	FormalityConversational Formality = "conversational"
)

// Structure is the article arc requested from the model.
type Structure string

// Structure values
const (
	StructureOverviewDetails Structure = "overview→details"
	StructureProblemSolution Structure = "problem→solution"
	StructureMilestoneUpdate Structure = "milestone update"
)

const defaultVoice = "neutral"

// Formalities lists the formality options in presentation order.
var Formalities = []Formality{FormalityFormal, FormalitySemiFormal, FormalityConversational}

// Structures lists the structure options in presentation order.
var Structures = []Structure{StructureOverviewDetails, StructureProblemSolution, StructureMilestoneUpdate}

// DefaultVoices are the built-in text voices. Operators may add their own.
var DefaultVoices = []string{"neutral", "enthusiastic", "formal", "conversational"}

// StyleProfile is a named bundle of tone settings applied when building a generation prompt.
// It is unrelated to TypographyStyle, which controls rendered HTML.
type StyleProfile struct {
	Voice     string    `json:"voice" validate:"required"`
	Formality Formality `json:"formality" validate:"required,oneof=formal semi-formal conversational"`
	Structure Structure `json:"structure" validate:"required,oneof=overview→details problem→solution 'milestone update'"`
}

// NewStyleDraft returns the settings offered for a new style profile.
func NewStyleDraft() StyleProfile {
	return StyleProfile{
		Voice:     defaultVoice,
		Formality: FormalitySemiFormal,
		Structure: StructureMilestoneUpdate,
	}
}

// WithDefaults fills empty fields with the values the prompt falls back to.
func (s StyleProfile) WithDefaults() StyleProfile {
	if s.Voice == "" {
		s.Voice = defaultVoice
	}
	if s.Formality == "" {
		s.Formality = FormalitySemiFormal
	}
	if s.Structure == "" {
		s.Structure = StructureOverviewDetails
	}
	return s
}

// Validate validates the style profile using the validator.
func (s *StyleProfile) Validate() error {
	return validateStruct(s)
}

// VoiceOptions returns the voices offered to the operator: built-ins, then custom voices,
// with a stored voice that is in neither list placed first.
func VoiceOptions(custom []string, current string) []string {
	seen := make(map[string]bool)
	voices := make([]string, 0, len(DefaultVoices)+len(custom)+1)
	for _, v := range DefaultVoices {
		if !seen[v] {
			seen[v] = true
			voices = append(voices, v)
		}
	}
	for _, v := range custom {
		if v != "" && !seen[v] {
			seen[v] = true
			voices = append(voices, v)
		}
	}
	if current != "" && !seen[current] {
		voices = append([]string{current}, voices...)
	}
	return voices
}
