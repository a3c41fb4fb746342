package server

import (
	"net/http"
	"slices"

	"github.com/jonathan/archinews-creator/internal/types"
	"github.com/jonathan/archinews-creator/internal/usps"
)

// ProjectListResponse lists stored project cards in name order.
type ProjectListResponse struct {
	Projects []types.Project `json:"projects"`
}

// SaveUSPsRequest is the body for PUT /projects/{name}/usps.
type SaveUSPsRequest struct {
	USPs   []string `json:"usps"`
	Custom string   `json:"custom,omitempty"` // comma-separated
}

// USPsResponse carries a list of USPs.
type USPsResponse struct {
	Type types.ProjectType `json:"type,omitempty"`
	USPs []string          `json:"usps"`
}

// DraftResponse is the editable record feeding a save form.
type DraftResponse[T any] struct {
	New   bool `json:"new"`
	Draft T    `json:"draft"`
}

// NamedStyleRequest is the body for POST /styles.
type NamedStyleRequest struct {
	Name  string             `json:"name"`
	Style types.StyleProfile `json:"style"`
}

// NamedTypographyRequest is the body for POST /typography.
type NamedTypographyRequest struct {
	Name  string                `json:"name"`
	Style types.TypographyStyle `json:"style"`
}

func (s *Server) handleListProjects(w http.ResponseWriter, _ *http.Request) {
	all := s.projects.All()
	resp := ProjectListResponse{Projects: make([]types.Project, 0, len(all))}
	for _, name := range s.projects.Names() {
		resp.Projects = append(resp.Projects, all[name])
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleSaveProject(w http.ResponseWriter, r *http.Request) {
	var p types.Project
	if err := decodeJSON(r, &p); err != nil {
		s.fail(w, err)
		return
	}
	saved, err := s.projects.Save(p)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, saved)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.projects.Get(r.PathValue("name"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, p)
}

func (s *Server) handleSaveProjectUSPs(w http.ResponseWriter, r *http.Request) {
	var req SaveUSPsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}

	name := r.PathValue("name")
	list := append(slices.Clone(req.USPs), usps.ParseCustom(req.Custom)...)
	if err := s.projects.SaveUSPs(name, list); err != nil {
		s.fail(w, err)
		return
	}
	p, err := s.projects.Get(name)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, USPsResponse{Type: p.Type, USPs: p.CustomUSPs})
}

// handleUSPPresets returns the presets for ?type=, or all presets without it.
func (s *Server) handleUSPPresets(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("type")
	if raw == "" {
		s.jsonResponse(w, http.StatusOK, usps.Presets)
		return
	}

	projectType := types.ProjectType(raw)
	if !slices.Contains(types.ProjectTypes, projectType) {
		s.fail(w, &ErrValidation{Field: "type", Message: "unknown project type " + raw})
		return
	}
	s.jsonResponse(w, http.StatusOK, USPsResponse{Type: projectType, USPs: usps.PresetsFor(projectType)})
}

func (s *Server) handleSavedUSPs(w http.ResponseWriter, _ *http.Request) {
	saved := s.projects.SavedCustomUSPs()
	if saved == nil {
		saved = []string{}
	}
	s.jsonResponse(w, http.StatusOK, USPsResponse{USPs: saved})
}

func (s *Server) handleListStyles(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.styles.All())
}

func (s *Server) handleSaveStyle(w http.ResponseWriter, r *http.Request) {
	var req NamedStyleRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	if err := s.styles.Save(req.Name, req.Style); err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, req)
}

func (s *Server) handleListTypography(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.typography.All())
}

func (s *Server) handleSaveTypography(w http.ResponseWriter, r *http.Request) {
	var req NamedTypographyRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	if err := s.typography.Save(req.Name, req.Style); err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, req)
}

// handleProjectDraft returns the editable card for ?from=NAME, or a blank
// card when from is empty.
func (s *Server) handleProjectDraft(w http.ResponseWriter, r *http.Request) {
	sel := types.NewSelection[types.Project]()
	if name := r.URL.Query().Get("from"); name != "" {
		p, err := s.projects.Get(name)
		if err != nil {
			s.fail(w, err)
			return
		}
		sel = types.ExistingSelection(p)
	}
	s.jsonResponse(w, http.StatusOK, DraftResponse[types.Project]{New: sel.IsNew(), Draft: sel.Draft(types.NewProjectDraft)})
}

// handleStyleDraft is handleProjectDraft for style profiles.
func (s *Server) handleStyleDraft(w http.ResponseWriter, r *http.Request) {
	sel := types.NewSelection[types.StyleProfile]()
	if name := r.URL.Query().Get("from"); name != "" {
		style, err := s.styles.Get(name)
		if err != nil {
			s.fail(w, err)
			return
		}
		sel = types.ExistingSelection(style)
	}
	s.jsonResponse(w, http.StatusOK, DraftResponse[types.StyleProfile]{New: sel.IsNew(), Draft: sel.Draft(types.NewStyleDraft)})
}
