package server

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/jonathan/archinews-creator/internal/instagram"
	"github.com/jonathan/archinews-creator/internal/rendering"
	"github.com/jonathan/archinews-creator/internal/session"
	"github.com/jonathan/archinews-creator/internal/types"
)

// WebsiteResponse carries the generated copy for all three lengths.
type WebsiteResponse struct {
	Content    types.GeneratedContent    `json:"content"`
	WordCounts map[types.LengthLabel]int `json:"word_counts"`
}

// ProgressEvent is streamed as each length finishes. Copy is only sent with
// the "complete" event, so a failed batch never reaches the client.
type ProgressEvent struct {
	Label types.LengthLabel `json:"label"`
	Done  int               `json:"done"`
	Total int               `json:"total"`
}

// CaptionRequest is the body for POST /sessions/{id}/caption. Zero values keep
// the session's previous choice; a nil Endings keeps the ticked endings.
type CaptionRequest struct {
	Tone      string   `json:"tone,omitempty"`
	Length    int      `json:"length,omitempty"`
	Endings   []string `json:"endings,omitempty"`
	AddEnding string   `json:"add_ending,omitempty"`
}

// CaptionResponse reports a caption or the marker that replaced it.
type CaptionResponse struct {
	Caption string   `json:"caption"`
	Failed  bool     `json:"failed"`
	Tone    string   `json:"tone"`
	Length  int      `json:"length"`
	Endings []string `json:"endings"`
}

// HashtagsRequest offers and ticks custom hashtags. A nil Ticked keeps the ticked set.
type HashtagsRequest struct {
	Custom []string `json:"custom,omitempty"`
	Ticked []string `json:"ticked,omitempty"`
}

// HashtagsResponse reports generated, custom and final hashtags.
type HashtagsResponse struct {
	session.HashtagState
	Final  []string `json:"final"`
	Notice string   `json:"notice,omitempty"`
}

func newWebsiteResponse(content types.GeneratedContent) WebsiteResponse {
	resp := WebsiteResponse{Content: content, WordCounts: make(map[types.LengthLabel]int, len(content))}
	for label, v := range content {
		resp.WordCounts[label] = len(strings.Fields(v.Body()))
	}
	return resp
}

// handleGenerateWebsite generates all three lengths for the current project,
// using the uploaded image when there is one.
func (s *Server) handleGenerateWebsite(w http.ResponseWriter, r *http.Request) {
	var generated types.GeneratedContent
	err := s.sessions.With(r.PathValue("id"), func(st *session.State) error {
		project, err := st.CurrentProject()
		if err != nil {
			return err
		}
		image, err := st.LLMImage()
		if err != nil {
			return err
		}

		content, err := s.generator.Generate(r.Context(), project, st.USPs, st.Style, image)
		if err != nil {
			return err
		}
		generated = content
		return st.SetContent(content)
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, newWebsiteResponse(generated))
}

// handleGenerateWebsiteStream is handleGenerateWebsite reporting each finished
// length as a "progress" event, then "complete" with the copy or "error".
func (s *Server) handleGenerateWebsiteStream(w http.ResponseWriter, r *http.Request) {
	var sse *SSEWriter
	err := s.sessions.With(r.PathValue("id"), func(st *session.State) error {
		project, err := st.CurrentProject()
		if err != nil {
			return err
		}
		image, err := st.LLMImage()
		if err != nil {
			return err
		}

		if sse, err = NewSSEWriter(w); err != nil {
			return err
		}

		var mu sync.Mutex
		done := 0
		content, err := s.generator.GenerateWithProgress(r.Context(), project, st.USPs, st.Style, image,
			func(label types.LengthLabel, _ types.Variant) {
				mu.Lock()
				done++
				event := ProgressEvent{Label: label, Done: done, Total: len(types.LengthLabels)}
				mu.Unlock()
				if err := sse.WriteEvent("progress", event); err != nil {
					s.logger.Warn("writing SSE event", "error", err)
				}
			})
		if err != nil {
			return err
		}
		if err := st.SetContent(content); err != nil {
			return err
		}
		sse.WriteComplete(newWebsiteResponse(content))
		return nil
	})
	if err == nil {
		return
	}
	if sse == nil {
		s.fail(w, err)
		return
	}
	s.logger.Error("streamed generation failed", "error", err)
	sse.WriteError(HTTPStatus(err), err.Error())
}

// handleWebsiteHTML renders one length as an HTML fragment, styled with the
// typography named by ?typography= or the default. ?download=1 sends it as a file.
func (s *Server) handleWebsiteHTML(w http.ResponseWriter, r *http.Request) {
	label, err := types.ParseLengthLabel(r.PathValue("length"))
	if err != nil {
		s.fail(w, err)
		return
	}

	style := types.DefaultTypography()
	if name := r.URL.Query().Get("typography"); name != "" {
		if style, err = s.typography.Get(name); err != nil {
			s.fail(w, err)
			return
		}
	}

	var html string
	err = s.sessions.With(r.PathValue("id"), func(st *session.State) error {
		project, err := st.CurrentProject()
		if err != nil {
			return err
		}
		variant, err := st.Variant(label)
		if err != nil {
			return err
		}
		html, err = rendering.RenderWebsiteHTML(variant, project, style)
		return err
	})
	if err != nil {
		s.fail(w, err)
		return
	}

	if download, _ := strconv.ParseBool(r.URL.Query().Get("download")); download {
		sendFile(w, "text/html; charset=utf-8", fmt.Sprintf("website_content_%s.html", label), []byte(html))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// handleGenerateCaption writes a caption from the long website copy. A failed
// caption is reported with its marker and does not replace the stored one.
func (s *Server) handleGenerateCaption(w http.ResponseWriter, r *http.Request) {
	var req CaptionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	if req.Tone != "" && !slices.Contains(instagram.CaptionTones, req.Tone) {
		s.fail(w, &ErrValidation{Field: "tone", Message: fmt.Sprintf("must be one of %v", instagram.CaptionTones)})
		return
	}
	if req.Length != 0 && !slices.Contains(instagram.CaptionLengths, req.Length) {
		s.fail(w, &ErrValidation{Field: "length", Message: fmt.Sprintf("must be one of %v", instagram.CaptionLengths)})
		return
	}

	var resp CaptionResponse
	err := s.sessions.With(r.PathValue("id"), func(st *session.State) error {
		tone, length := req.Tone, req.Length
		if tone == "" {
			tone = st.Caption.Tone
		}
		if length == 0 {
			length = st.Caption.Length
		}
		st.AddEnding(req.AddEnding)
		endings := st.Caption.Selected
		if req.Endings != nil {
			endings = st.SelectEndings(req.Endings)
		}

		caption := s.captions.Generate(r.Context(), st.LongFormText(), tone, length, endings)
		failed := instagram.IsFailedCaption(caption)
		if !failed {
			st.SetCaption(caption, tone, length)
		}
		resp = CaptionResponse{Caption: caption, Failed: failed, Tone: tone, Length: length, Endings: append([]string{}, endings...)}
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleDownloadCaption(w http.ResponseWriter, r *http.Request) {
	var text string
	err := s.sessions.With(r.PathValue("id"), func(st *session.State) error {
		var err error
		text, err = st.CaptionText()
		return err
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	sendFile(w, "text/plain; charset=utf-8", "caption.txt", []byte(text))
}

// handleGenerateHashtags applies custom hashtag changes and regenerates the
// automatic hashtags from the long website copy.
func (s *Server) handleGenerateHashtags(w http.ResponseWriter, r *http.Request) {
	s.updateHashtags(w, r, true)
}

// handleUpdateHashtags applies custom hashtag changes only.
func (s *Server) handleUpdateHashtags(w http.ResponseWriter, r *http.Request) {
	s.updateHashtags(w, r, false)
}

func (s *Server) updateHashtags(w http.ResponseWriter, r *http.Request, generate bool) {
	var req HashtagsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	var resp HashtagsResponse
	err := s.sessions.With(r.PathValue("id"), func(st *session.State) error {
		for _, tag := range req.Custom {
			st.AddCustomHashtag(tag)
		}
		if req.Ticked != nil {
			st.TickHashtags(req.Ticked)
		}
		if generate {
			st.SetAutoHashtags(s.hashtags.Generate(r.Context(), st.LongFormText()))
		}

		resp = HashtagsResponse{
			HashtagState: session.HashtagState{
				Auto:   slices.Clone(st.Hashtags.Auto),
				Custom: slices.Clone(st.Hashtags.Custom),
				Ticked: slices.Clone(st.Hashtags.Ticked),
			},
			Final: st.FinalHashtags(),
		}
		if generate && len(st.Hashtags.Auto) == 0 {
			resp.Notice = instagram.NoHashtagsNotice
		}
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleDownloadHashtags(w http.ResponseWriter, r *http.Request) {
	var text string
	err := s.sessions.With(r.PathValue("id"), func(st *session.State) error {
		text = st.HashtagText()
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	sendFile(w, "text/plain; charset=utf-8", "hashtags.txt", []byte(text))
}
