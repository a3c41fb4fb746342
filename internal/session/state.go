// Package session holds the state of one interactive session: the current
// project, generated copy, framed images and caption/hashtag choices.
package session

import (
	"errors"
	"image"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/archinews-creator/internal/framing"
	"github.com/jonathan/archinews-creator/internal/instagram"
	"github.com/jonathan/archinews-creator/internal/types"
)

// Slider limits for frame zoom.
const (
	MinFrameZoom = framing.MinZoom
	MaxFrameZoom = framing.MaxZoom
)

var (
	// ErrNoProject is returned when an action needs a current project and none is set.
	ErrNoProject = errors.New("no current project selected")
	// ErrNoImage is returned when an action needs an uploaded image.
	ErrNoImage = errors.New("no image uploaded")
	// ErrNoContent is returned when an action needs generated website copy.
	ErrNoContent = errors.New("no website content generated")
	// ErrNoCaption is returned when no caption has been generated yet.
	ErrNoCaption = errors.New("no caption generated")
)

// FrameState is the framing of one target and its encoded result.
type FrameState struct {
	Zoom    float64 `json:"zoom"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
	Data    []byte  `json:"-"`
}

// CaptionState is the caption and the choices it was generated with.
type CaptionState struct {
	Text     string   `json:"text"`
	Length   int      `json:"length"`
	Tone     string   `json:"tone"`
	Endings  []string `json:"endings"`
	Selected []string `json:"selected_endings"`
}

// HashtagState holds generated hashtags and the operator's custom ones.
type HashtagState struct {
	Auto   []string `json:"auto"`
	Custom []string `json:"custom"`
	Ticked []string `json:"ticked"`
}

// State is one interactive session. Callers serialise access through Manager.With.
type State struct {
	ID           string                 `json:"id"`
	CreatedAt    time.Time              `json:"created_at"`
	LastActivity time.Time              `json:"last_activity"`
	Project      *types.Project         `json:"project,omitempty"`
	USPs         []string               `json:"usps"`
	Style        types.StyleProfile     `json:"style"`
	CustomVoices []string               `json:"custom_voices"`
	Content      types.GeneratedContent `json:"content,omitempty"`
	Caption      CaptionState           `json:"caption"`
	Hashtags     HashtagState           `json:"hashtags"`

	frames      map[framing.Target]*FrameState
	imageData   []byte
	imageDigest string
	source      image.Image
	cache       *framing.Cache
	mu          sync.Mutex
}

// New starts a session with the default caption endings and custom hashtags.
// cache may be nil.
func New(cache *framing.Cache) *State {
	now := time.Now()
	return &State{
		ID:           uuid.NewString(),
		CreatedAt:    now,
		LastActivity: now,
		Style:        types.StyleProfile{}.WithDefaults(),
		Caption: CaptionState{
			Length:  instagram.DefaultCaptionLength,
			Tone:    instagram.CaptionTones[0],
			Endings: slices.Clone(instagram.DefaultEndings),
		},
		Hashtags: HashtagState{
			Custom: slices.Clone(instagram.DefaultCustomHashtags),
		},
		frames: make(map[framing.Target]*FrameState),
		cache:  cache,
	}
}

// SetProject makes p the current project with the USPs and style used for
// generation. Copy generated for a previous project is discarded.
func (s *State) SetProject(p types.Project, uspList []string, style types.StyleProfile) {
	p = p.Normalize()
	s.Project = &p
	s.USPs = slices.Clone(uspList)
	s.Style = style.WithDefaults()
	s.Content = nil
}

// CurrentProject returns the explicitly selected project.
func (s *State) CurrentProject() (types.Project, error) {
	if s.Project == nil {
		return types.Project{}, ErrNoProject
	}
	return *s.Project, nil
}

// SetContent stores generated copy. Incomplete copy is rejected.
func (s *State) SetContent(content types.GeneratedContent) error {
	if !content.Complete() {
		return ErrNoContent
	}
	s.Content = content
	return nil
}

// LongFormText is the long headline and body, the input for captions and hashtags.
func (s *State) LongFormText() string {
	return s.Content.LongFormText()
}

// Variant returns the generated copy for one length.
func (s *State) Variant(label types.LengthLabel) (types.Variant, error) {
	v, ok := s.Content[label]
	if !ok {
		return types.Variant{}, ErrNoContent
	}
	return v, nil
}

// AddVoice adds a custom text voice. Empty and known voices are ignored.
func (s *State) AddVoice(voice string) bool {
	voice = strings.TrimSpace(voice)
	if voice == "" || slices.Contains(types.DefaultVoices, voice) || slices.Contains(s.CustomVoices, voice) {
		return false
	}
	s.CustomVoices = append(s.CustomVoices, voice)
	return true
}

// VoiceOptions returns the voices to offer, keeping the current style's voice selectable.
func (s *State) VoiceOptions() []string {
	return types.VoiceOptions(s.CustomVoices, s.Style.Voice)
}

// touch records activity for idle expiry.
func (s *State) touch() {
	s.LastActivity = time.Now()
}

func clamp(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return math.Max(lo, math.Min(hi, v))
}
