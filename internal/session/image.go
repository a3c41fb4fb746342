package session

import (
	"image"

	"github.com/jonathan/archinews-creator/internal/framing"
	"github.com/jonathan/archinews-creator/internal/llm"
)

// SetImage decodes an uploaded PNG or JPEG image and frames it for every target with
// centred, unzoomed defaults.
func (s *State) SetImage(data []byte) error {
	if _, err := llm.NewImage(data); err != nil {
		return &framing.DecodeError{Message: "only PNG and JPEG uploads are supported", Cause: err}
	}
	src, err := framing.Decode(data)
	if err != nil {
		return err
	}

	digest := framing.Digest(data)
	frames := make(map[framing.Target]*FrameState, len(framing.Targets))
	for _, target := range framing.Targets {
		state, err := s.renderFrame(src, digest, target, 1, 0, 0)
		if err != nil {
			return err
		}
		frames[target] = state
	}

	s.imageData = data
	s.imageDigest = digest
	s.source = src
	s.frames = frames
	return nil
}

// ClearImage drops the image and its framed derivatives.
func (s *State) ClearImage() {
	s.imageData = nil
	s.imageDigest = ""
	s.source = nil
	s.frames = make(map[framing.Target]*FrameState)
}

// HasImage reports whether an image is uploaded.
func (s *State) HasImage() bool {
	return s.source != nil
}

// LLMImage returns the uploaded image as a model payload, or nil without an image.
func (s *State) LLMImage() (*llm.Image, error) {
	if !s.HasImage() {
		return nil, nil
	}
	return llm.NewImage(s.imageData)
}

// UpdateFrame re-frames one target. Zoom is held to the slider range and
// offsets to [-1, 1].
func (s *State) UpdateFrame(target framing.Target, zoom, offsetX, offsetY float64) (*FrameState, error) {
	if !s.HasImage() {
		return nil, ErrNoImage
	}

	state, err := s.renderFrame(s.source, s.imageDigest, target, zoom, offsetX, offsetY)
	if err != nil {
		return nil, err
	}
	s.frames[target] = state
	return state, nil
}

// renderFrame frames src for target without touching the session.
func (s *State) renderFrame(src image.Image, digest string, target framing.Target, zoom, offsetX, offsetY float64) (*FrameState, error) {
	state := &FrameState{
		Zoom:    clamp(zoom, MinFrameZoom, MaxFrameZoom, 1),
		OffsetX: clamp(offsetX, -1, 1, 0),
		OffsetY: clamp(offsetY, -1, 1, 0),
	}

	data, err := s.cache.Render(src, digest, target, target.Params(state.Zoom, state.OffsetX, state.OffsetY))
	if err != nil {
		return nil, err
	}
	state.Data = data
	return state, nil
}

// Frame returns the current framing of a target.
func (s *State) Frame(target framing.Target) (*FrameState, error) {
	state, ok := s.frames[target]
	if !ok {
		return nil, ErrNoImage
	}
	return state, nil
}
