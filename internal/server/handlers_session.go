package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/jonathan/archinews-creator/internal/framing"
	"github.com/jonathan/archinews-creator/internal/session"
	"github.com/jonathan/archinews-creator/internal/types"
	"github.com/jonathan/archinews-creator/internal/usps"
)

// SessionResponse is a session snapshot with derived fields.
type SessionResponse struct {
	*session.State
	HasImage      bool                                   `json:"has_image"`
	Frames        map[framing.Target]*session.FrameState `json:"frames,omitempty"`
	VoiceOptions  []string                               `json:"voice_options"`
	FinalHashtags []string                               `json:"final_hashtags"`
}

// SetProjectRequest selects the current project of a session along with the
// USPs and style used for generation.
type SetProjectRequest struct {
	Project      string              `json:"project"`
	SelectedUSPs []string            `json:"selected_usps,omitempty"` // ticked presets
	CustomUSPs   string              `json:"custom_usps,omitempty"`   // comma-separated
	SavedUSPs    []string            `json:"saved_usps,omitempty"`    // ticked previously saved custom USPs
	StyleName    string              `json:"style_name,omitempty"`
	Style        *types.StyleProfile `json:"style,omitempty"`
}

// VoiceRequest adds a custom text voice.
type VoiceRequest struct {
	Voice string `json:"voice"`
}

// FrameRequest updates the framing of one target. Omitted fields keep their value.
type FrameRequest struct {
	Zoom    *float64 `json:"zoom,omitempty"`
	OffsetX *float64 `json:"offset_x,omitempty"`
	OffsetY *float64 `json:"offset_y,omitempty"`
}

func newSessionResponse(st *session.State) SessionResponse {
	resp := SessionResponse{
		State:         st,
		HasImage:      st.HasImage(),
		VoiceOptions:  st.VoiceOptions(),
		FinalHashtags: st.FinalHashtags(),
	}
	if resp.HasImage {
		resp.Frames = make(map[framing.Target]*session.FrameState, len(framing.Targets))
		for _, target := range framing.Targets {
			if f, err := st.Frame(target); err == nil {
				resp.Frames[target] = f
			}
		}
	}
	return resp
}

// withSession runs fn on the session and answers with the resulting snapshot.
// The snapshot is encoded while the session is still locked.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, status int, fn func(st *session.State) error) {
	var body []byte
	err := s.sessions.With(r.PathValue("id"), func(st *session.State) error {
		if fn != nil {
			if err := fn(st); err != nil {
				return err
			}
		}
		var err error
		body, err = json.Marshal(newSessionResponse(st))
		return err
	})
	if err != nil {
		s.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	st := s.sessions.Create()
	r.SetPathValue("id", st.ID)
	s.withSession(w, r, http.StatusCreated, nil)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, http.StatusOK, nil)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.sessions.Delete(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetSessionProject(w http.ResponseWriter, r *http.Request) {
	var req SetProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	if strings.TrimSpace(req.Project) == "" {
		s.fail(w, &ErrValidation{Field: "project", Message: "Please select or save a project card first."})
		return
	}

	project, err := s.projects.Get(req.Project)
	if err != nil {
		s.fail(w, err)
		return
	}

	var style types.StyleProfile
	switch {
	case req.StyleName != "":
		if style, err = s.styles.Get(req.StyleName); err != nil {
			s.fail(w, err)
			return
		}
	case req.Style != nil:
		style = req.Style.WithDefaults()
		if err := style.Validate(); err != nil {
			s.fail(w, err)
			return
		}
	}

	final := usps.Final(req.SelectedUSPs, req.CustomUSPs, req.SavedUSPs)
	s.withSession(w, r, http.StatusOK, func(st *session.State) error {
		st.SetProject(project, final, style)
		st.AddVoice(st.Style.Voice)
		return nil
	})
}

func (s *Server) handleAddVoice(w http.ResponseWriter, r *http.Request) {
	var req VoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	if strings.TrimSpace(req.Voice) == "" {
		s.fail(w, &ErrValidation{Field: "voice", Message: "voice is required"})
		return
	}
	s.withSession(w, r, http.StatusOK, func(st *session.State) error {
		st.AddVoice(req.Voice)
		return nil
	})
}

// handleUploadImage accepts a multipart "image" field or a raw PNG/JPEG body.
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	data, err := readUpload(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.withSession(w, r, http.StatusOK, func(st *session.State) error {
		return st.SetImage(data)
	})
}

func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	var src io.Reader = r.Body
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		file, _, err := r.FormFile("image")
		if err != nil {
			return nil, &ErrValidation{Field: "image", Message: err.Error()}
		}
		defer file.Close()
		src = file
	}

	data, err := io.ReadAll(src)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &ErrValidation{Field: "image", Message: "upload exceeds 20 MB"}
		}
		return nil, &ErrValidation{Field: "image", Message: err.Error()}
	}
	if len(data) == 0 {
		return nil, &ErrValidation{Field: "image", Message: "image is required"}
	}
	return data, nil
}

func (s *Server) handleClearImage(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, http.StatusOK, func(st *session.State) error {
		st.ClearImage()
		return nil
	})
}

func (s *Server) handleUpdateFrame(w http.ResponseWriter, r *http.Request) {
	target, err := framing.ParseTarget(r.PathValue("target"))
	if err != nil {
		s.fail(w, &ErrValidation{Field: "target", Message: err.Error()})
		return
	}
	var req FrameRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	var frame session.FrameState
	err = s.sessions.With(r.PathValue("id"), func(st *session.State) error {
		current, err := st.Frame(target)
		if err != nil {
			return err
		}
		zoom, ox, oy := current.Zoom, current.OffsetX, current.OffsetY
		if req.Zoom != nil {
			zoom = *req.Zoom
		}
		if req.OffsetX != nil {
			ox = *req.OffsetX
		}
		if req.OffsetY != nil {
			oy = *req.OffsetY
		}

		updated, err := st.UpdateFrame(target, zoom, ox, oy)
		if err != nil {
			return err
		}
		frame = *updated
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, frame)
}

func (s *Server) handleDownloadFrame(w http.ResponseWriter, r *http.Request) {
	target, err := framing.ParseTarget(r.PathValue("target"))
	if err != nil {
		s.fail(w, &ErrValidation{Field: "target", Message: err.Error()})
		return
	}

	var data []byte
	err = s.sessions.With(r.PathValue("id"), func(st *session.State) error {
		frame, err := st.Frame(target)
		if err != nil {
			return err
		}
		data = frame.Data
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	sendFile(w, target.ContentType(), target.FileName(), data)
}
