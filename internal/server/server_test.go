package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/archinews-creator/internal/content"
	"github.com/jonathan/archinews-creator/internal/llm"
	"github.com/jonathan/archinews-creator/internal/server/ratelimit"
	"github.com/jonathan/archinews-creator/internal/types"
)

// fakeClient answers website, caption and hashtag prompts with canned text.
type fakeClient struct {
	mu       sync.Mutex
	requests []llm.Request
	err      error
	// failTokens fails only requests with this output-token budget.
	failTokens int
}

func (f *fakeClient) Generate(_ context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	if f.failTokens != 0 && req.MaxOutputTokens == f.failTokens {
		return "", errors.New("long version timed out")
	}
	switch {
	case strings.Contains(req.Prompt, "Instagram caption"):
		return "Learning meets light in Oakview.", nil
	case strings.Contains(req.Prompt, "Only output hashtags"):
		return "#architecture #school #oakview", nil
	default:
		return "Headline: Oakview School opens\nThe new campus welcomes its first pupils.", nil
	}
}

func (f *fakeClient) GetModel(tier llm.ModelTier) string { return string(tier) }

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) calls() []llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llm.Request(nil), f.requests...)
}

func newTestServer(t *testing.T, client llm.Client) http.Handler {
	t.Helper()
	return newTestServerWithLimits(t, client, &ratelimit.Config{Enabled: false})
}

func newTestServerWithLimits(t *testing.T, client llm.Client, limits *ratelimit.Config) http.Handler {
	t.Helper()
	s, err := New(Config{DataDir: t.TempDir(), Client: client, RateLimit: limits})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s.Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func oakviewCard() map[string]any {
	return map[string]any{
		"name":               "Oakview School",
		"client":             "City of Oakview",
		"location":           "Oakview",
		"type":               "School",
		"size_scope":         "4,500 m²",
		"timeline":           "2023-2025",
		"phase":              "Construction",
		"architectural_firm": []string{"Scherzer Architekten"},
	}
}

// sessionWithProject saves the Oakview card and selects it in a new session.
func sessionWithProject(t *testing.T, h http.Handler) string {
	t.Helper()
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/projects", oakviewCard()).Code)

	created := do(t, h, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, created.Code)
	id := decode[map[string]any](t, created)["id"].(string)

	w := do(t, h, http.MethodPut, "/sessions/"+id+"/project", SetProjectRequest{
		Project:      "Oakview School",
		SelectedUSPs: []string{"Flexible classrooms"},
		CustomUSPs:   "Timber frame, flexible classrooms",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return id
}

func pngUpload(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 4), G: uint8(y * 5), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestServer(t, &fakeClient{})

	w := do(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]any](t, w)["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t, &fakeClient{})

	w := do(t, h, http.MethodOptions, "/projects", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestProjects(t *testing.T) {
	h := newTestServer(t, &fakeClient{})

	w := do(t, h, http.MethodPost, "/projects", oakviewCard())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	list := decode[ProjectListResponse](t, do(t, h, http.MethodGet, "/projects", nil))
	require.Len(t, list.Projects, 1)
	assert.Equal(t, "Oakview School", list.Projects[0].Name)

	w = do(t, h, http.MethodGet, "/projects/Oakview%20School", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/projects/Elsewhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	card := oakviewCard()
	card["name"] = "  "
	w = do(t, h, http.MethodPost, "/projects", card)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/projects", []byte("{not json"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectUSPs(t *testing.T) {
	h := newTestServer(t, &fakeClient{})

	w := do(t, h, http.MethodPut, "/projects/Oakview%20School/usps", SaveUSPsRequest{USPs: []string{"Timber frame"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please select or save a project card first.")

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/projects", oakviewCard()).Code)
	w = do(t, h, http.MethodPut, "/projects/Oakview%20School/usps", SaveUSPsRequest{
		USPs:   []string{"Timber frame"},
		Custom: "timber frame, Daylight",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Timber frame", "Daylight"}, decode[USPsResponse](t, w).USPs)

	saved := decode[USPsResponse](t, do(t, h, http.MethodGet, "/usps/saved", nil))
	assert.Equal(t, []string{"Daylight", "Timber frame"}, saved.USPs)
}

func TestUSPPresets(t *testing.T) {
	h := newTestServer(t, &fakeClient{})

	w := do(t, h, http.MethodGet, "/usps/presets?type=School", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Flexible classrooms", "Outdoor learning", "STEM labs"}, decode[USPsResponse](t, w).USPs)

	w = do(t, h, http.MethodGet, "/usps/presets?type=Stadium", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	all := decode[map[string][]string](t, do(t, h, http.MethodGet, "/usps/presets", nil))
	assert.Len(t, all, 5)
}

func TestStylesAndTypography(t *testing.T) {
	h := newTestServer(t, &fakeClient{})

	w := do(t, h, http.MethodPost, "/styles", map[string]any{
		"name":  "Press",
		"style": map[string]string{"voice": "formal", "formality": "formal", "structure": "problem→solution"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, h, http.MethodPost, "/styles", map[string]any{
		"name":  "",
		"style": map[string]string{"voice": "formal", "formality": "formal", "structure": "problem→solution"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	styles := decode[map[string]map[string]string](t, do(t, h, http.MethodGet, "/styles", nil))
	assert.Equal(t, "formal", styles["Press"]["voice"])

	w = do(t, h, http.MethodPost, "/typography", map[string]any{
		"name": "House",
		"style": map[string]any{
			"headline_font": "Georgia", "headline_size": 30, "headline_color": "#111111",
			"body_font": "Arial", "body_size": 16, "body_color": "#333333",
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	typography := decode[map[string]map[string]any](t, do(t, h, http.MethodGet, "/typography", nil))
	assert.Equal(t, "Georgia", typography["House"]["headline_font"])
	assert.NotContains(t, styles, "House")
}

func TestDrafts(t *testing.T) {
	h := newTestServer(t, &fakeClient{})

	blank := decode[DraftResponse[types.Project]](t, do(t, h, http.MethodGet, "/drafts/project", nil))
	assert.True(t, blank.New)
	assert.Equal(t, types.NewProjectDraft(), blank.Draft)

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/projects", oakviewCard()).Code)
	existing := decode[DraftResponse[types.Project]](t, do(t, h, http.MethodGet, "/drafts/project?from=Oakview%20School", nil))
	assert.False(t, existing.New)
	assert.Equal(t, "City of Oakview", existing.Draft.Client)

	w := do(t, h, http.MethodGet, "/drafts/project?from=Elsewhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	style := decode[DraftResponse[types.StyleProfile]](t, do(t, h, http.MethodGet, "/drafts/style", nil))
	assert.True(t, style.New)
	assert.Equal(t, types.NewStyleDraft(), style.Draft)
}

func TestUnknownSession(t *testing.T) {
	h := newTestServer(t, &fakeClient{})

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/sessions/nope", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/sessions/nope/website", nil).Code)
}

func TestSession_SetProject(t *testing.T) {
	h := newTestServer(t, &fakeClient{})
	id := sessionWithProject(t, h)

	got := decode[map[string]any](t, do(t, h, http.MethodGet, "/sessions/"+id, nil))
	project := got["project"].(map[string]any)
	assert.Equal(t, "Oakview School", project["name"])
	assert.Equal(t, []any{"Flexible classrooms", "Timber frame"}, got["usps"])
	assert.Equal(t, false, got["has_image"])

	w := do(t, h, http.MethodPut, "/sessions/"+id+"/project", SetProjectRequest{Project: "Unknown"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodPut, "/sessions/"+id+"/project", SetProjectRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPut, "/sessions/"+id+"/project", SetProjectRequest{Project: "Oakview School", StyleName: "Missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSession_CustomVoice(t *testing.T) {
	h := newTestServer(t, &fakeClient{})
	id := decode[map[string]any](t, do(t, h, http.MethodPost, "/sessions", nil))["id"].(string)

	w := do(t, h, http.MethodPost, "/sessions/"+id+"/voices", VoiceRequest{Voice: "playful"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode[map[string]any](t, w)["voice_options"], "playful")

	w = do(t, h, http.MethodPost, "/sessions/"+id+"/voices", VoiceRequest{Voice: " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateWebsite_RequiresProject(t *testing.T) {
	client := &fakeClient{}
	h := newTestServer(t, client)
	id := decode[map[string]any](t, do(t, h, http.MethodPost, "/sessions", nil))["id"].(string)

	w := do(t, h, http.MethodPost, "/sessions/"+id+"/website", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, client.calls())
}

func TestGenerateWebsite(t *testing.T) {
	client := &fakeClient{}
	h := newTestServer(t, client)
	id := sessionWithProject(t, h)

	w := do(t, h, http.MethodPost, "/sessions/"+id+"/website", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[WebsiteResponse](t, w)
	require.Len(t, resp.Content, 3)
	for label, v := range resp.Content {
		assert.Equal(t, "Oakview School opens", v.Title, label)
		assert.Equal(t, 7, resp.WordCounts[label])
	}
	for _, req := range client.calls() {
		assert.Equal(t, llm.TierText, req.Tier)
		assert.Nil(t, req.Image)
		assert.Contains(t, req.Prompt, "USPs: Flexible classrooms, Timber frame")
	}

	w = do(t, h, http.MethodGet, "/sessions/"+id+"/website/long", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), ">Oakview School opens</div>")
	assert.Contains(t, w.Body.String(), "City of Oakview")

	w = do(t, h, http.MethodGet, "/sessions/"+id+"/website/short?download=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="website_content_short.html"`)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/sessions/"+id+"/website/huge", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/sessions/"+id+"/website/long?typography=Missing", nil).Code)
}

func TestGenerateWebsite_ModelFailureKeepsNoContent(t *testing.T) {
	client := &fakeClient{err: errors.New("quota exceeded")}
	h := newTestServer(t, client)
	id := sessionWithProject(t, h)

	w := do(t, h, http.MethodPost, "/sessions/"+id+"/website", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "quota exceeded")

	got := decode[map[string]any](t, do(t, h, http.MethodGet, "/sessions/"+id, nil))
	assert.Nil(t, got["content"])
	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodGet, "/sessions/"+id+"/website/long", nil).Code)
}

func TestGenerateWebsite_NoClient(t *testing.T) {
	h := newTestServer(t, nil)
	id := sessionWithProject(t, h)

	assert.Equal(t, http.StatusBadGateway, do(t, h, http.MethodPost, "/sessions/"+id+"/website", nil).Code)
}

func TestGenerateWebsiteStream(t *testing.T) {
	h := newTestServer(t, &fakeClient{})
	id := sessionWithProject(t, h)

	w := do(t, h, http.MethodPost, "/sessions/"+id+"/website/stream", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Equal(t, 3, strings.Count(body, "event: progress\n"))
	assert.Contains(t, body, `"label":"short"`)
	assert.Contains(t, body, `"done":3,"total":3`)
	assert.Contains(t, body, "event: complete\n")
	assert.NotContains(t, body, "event: error")

	// copy only travels with the complete event
	complete := body[strings.Index(body, "event: complete\n"):]
	assert.Equal(t, strings.Count(body, "Oakview School opens"), strings.Count(complete, "Oakview School opens"))

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/sessions/"+id+"/website/medium", nil).Code)
}

func TestGenerateWebsiteStream_Failure(t *testing.T) {
	h := newTestServer(t, &fakeClient{err: errors.New("quota exceeded")})
	id := sessionWithProject(t, h)

	w := do(t, h, http.MethodPost, "/sessions/"+id+"/website/stream", nil)
	body := w.Body.String()
	assert.Contains(t, body, "event: error\n")
	assert.Contains(t, body, `"status":502`)
	assert.NotContains(t, body, "event: complete")
}

func TestGenerateWebsiteStream_LongFailureSendsNoCopy(t *testing.T) {
	client := &fakeClient{failTokens: content.TokenBudget(types.LengthLong, false)}
	h := newTestServer(t, client)
	id := sessionWithProject(t, h)

	w := do(t, h, http.MethodPost, "/sessions/"+id+"/website/stream", nil)
	body := w.Body.String()

	assert.Equal(t, 2, strings.Count(body, "event: progress\n"))
	assert.Contains(t, body, "event: error\n")
	assert.Contains(t, body, `"status":502`)
	assert.NotContains(t, body, "event: complete")
	assert.NotContains(t, body, "Oakview School opens")
	assert.NotContains(t, body, "first pupils")

	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodGet, "/sessions/"+id+"/website/short", nil).Code)
}

func TestImageUploadAndFrames(t *testing.T) {
	h := newTestServer(t, &fakeClient{})
	id := decode[map[string]any](t, do(t, h, http.MethodPost, "/sessions", nil))["id"].(string)

	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodGet, "/sessions/"+id+"/frames/hero", nil).Code)

	w := do(t, h, http.MethodPost, "/sessions/"+id+"/image", []byte("plain text, not an image"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/sessions/"+id+"/image", pngUpload(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[map[string]any](t, w)
	assert.Equal(t, true, got["has_image"])
	assert.Len(t, got["frames"], 2)

	w = do(t, h, http.MethodPut, "/sessions/"+id+"/frames/hero", map[string]float64{"zoom": 2, "offset_x": -0.5})
	require.Equal(t, http.StatusOK, w.Code)
	frame := decode[map[string]float64](t, w)
	assert.Equal(t, 2.0, frame["zoom"])
	assert.Equal(t, -0.5, frame["offset_x"])

	w = do(t, h, http.MethodPut, "/sessions/"+id+"/frames/hero", map[string]float64{"zoom": 10})
	frame = decode[map[string]float64](t, w)
	assert.Equal(t, 3.0, frame["zoom"])
	assert.Equal(t, -0.5, frame["offset_x"])

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/sessions/"+id+"/frames/banner", map[string]float64{}).Code)

	tests := []struct {
		target      string
		contentType string
		format      string
		fileName    string
		width       int
		height      int
	}{
		{"hero", "image/jpeg", "jpeg", "web_hero_1600x900.jpg", 1600, 900},
		{"square", "image/png", "png", "instagram_1080.png", 1080, 1080},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := do(t, h, http.MethodGet, "/sessions/"+id+"/frames/"+tt.target, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
			assert.Contains(t, w.Header().Get("Content-Disposition"), tt.fileName)

			cfg, format, err := image.DecodeConfig(bytes.NewReader(w.Body.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.width, cfg.Width)
			assert.Equal(t, tt.height, cfg.Height)
		})
	}

	w = do(t, h, http.MethodDelete, "/sessions/"+id+"/image", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode[map[string]any](t, w)["has_image"])
}

func TestGenerateWebsite_WithImageUsesVisionTier(t *testing.T) {
	client := &fakeClient{}
	h := newTestServer(t, client)
	id := sessionWithProject(t, h)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/sessions/"+id+"/image", pngUpload(t)).Code)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/sessions/"+id+"/website", nil).Code)

	calls := client.calls()
	require.Len(t, calls, 3)
	for _, req := range calls {
		assert.Equal(t, llm.TierVision, req.Tier)
		require.NotNil(t, req.Image)
		assert.Equal(t, "image/png", req.Image.MIMEType())
		assert.Contains(t, req.Prompt, "using the provided image for additional context")
	}
}

func TestCaption(t *testing.T) {
	h := newTestServer(t, &fakeClient{})
	id := sessionWithProject(t, h)

	w := do(t, h, http.MethodPost, "/sessions/"+id+"/caption", CaptionRequest{})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[CaptionResponse](t, w)
	assert.True(t, resp.Failed)
	assert.Equal(t, "[No website content available. Please generate website content first.]", resp.Caption)
	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodGet, "/sessions/"+id+"/caption.txt", nil).Code)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/sessions/"+id+"/website", nil).Code)

	w = do(t, h, http.MethodPost, "/sessions/"+id+"/caption", CaptionRequest{
		Tone:      "enthusiastic",
		Length:    80,
		AddEnding: "#OakviewOpens",
		Endings:   []string{"#OakviewOpens", "www.scherzer-architekten.de"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[CaptionResponse](t, w)
	assert.False(t, resp.Failed)
	assert.Equal(t, "Learning meets light in Oakview.\n#OakviewOpens\nwww.scherzer-architekten.de", resp.Caption)
	assert.Equal(t, 80, resp.Length)

	w = do(t, h, http.MethodGet, "/sessions/"+id+"/caption.txt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, resp.Caption, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="caption.txt"`)
}

func TestCaption_InvalidChoices(t *testing.T) {
	h := newTestServer(t, &fakeClient{})
	id := sessionWithProject(t, h)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/sessions/"+id+"/caption", CaptionRequest{Tone: "sarcastic"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/sessions/"+id+"/caption", CaptionRequest{Length: 150}).Code)
}

func TestHashtags(t *testing.T) {
	h := newTestServer(t, &fakeClient{})
	id := sessionWithProject(t, h)

	w := do(t, h, http.MethodPost, "/sessions/"+id+"/hashtags", HashtagsRequest{})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[HashtagsResponse](t, w)
	assert.Empty(t, resp.Auto)
	assert.Equal(t, "No hashtags generated. Please check your website content or select custom hashtags.", resp.Notice)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/sessions/"+id+"/website", nil).Code)

	w = do(t, h, http.MethodPost, "/sessions/"+id+"/hashtags", HashtagsRequest{
		Custom: []string{"timber"},
		Ticked: []string{"#design", "#timber"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[HashtagsResponse](t, w)
	assert.Equal(t, []string{"#architecture", "#school", "#oakview"}, resp.Auto)
	assert.Equal(t, []string{"#architecture", "#design", "#timber"}, resp.Custom)
	assert.Equal(t, []string{"#architecture", "#school", "#oakview", "#design", "#timber"}, resp.Final)
	assert.Empty(t, resp.Notice)

	w = do(t, h, http.MethodPut, "/sessions/"+id+"/hashtags", map[string]any{"ticked": []string{}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"#architecture", "#school", "#oakview"}, decode[HashtagsResponse](t, w).Final)

	w = do(t, h, http.MethodGet, "/sessions/"+id+"/hashtags.txt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "#architecture #school #oakview", w.Body.String())
}

func TestDeleteSession(t *testing.T) {
	h := newTestServer(t, &fakeClient{})
	id := decode[map[string]any](t, do(t, h, http.MethodPost, "/sessions", nil))["id"].(string)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/sessions/"+id, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/sessions/"+id, nil).Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	h := newTestServerWithLimits(t, &fakeClient{}, &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
	})

	w := do(t, h, http.MethodGet, "/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = do(t, h, http.MethodGet, "/projects", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, w)["error"])

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", nil).Code)
	}
}

func TestNew_RequiresDataDir(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}
