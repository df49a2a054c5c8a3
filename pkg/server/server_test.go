package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yoshimomax/sysmlmodeler/internal/manager"
	"github.com/yoshimomax/sysmlmodeler/pkg/codec"
	"github.com/yoshimomax/sysmlmodeler/pkg/kerml"
	"github.com/yoshimomax/sysmlmodeler/pkg/service"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mgr := manager.NewStoreManager(t.TempDir(), false)
	t.Cleanup(mgr.CloseAll)
	require.NoError(t, mgr.CreateProject("proj1"))

	return NewServer(service.NewModelService(mgr), zap.NewNop())
}

func doRequest(s *Server, method, target string, body []byte) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func encodeTestModel(t *testing.T, id, name string) []byte {
	t.Helper()
	m := kerml.NewModel(id, name)
	ty := kerml.NewType("t1", "Vehicle")
	ty.AddFeature(kerml.NewFeature("f1", "wheels"))
	m.AddElement(ty)

	data, err := codec.EncodeModel(m)
	require.NoError(t, err)
	return data
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListProjects(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(s, http.MethodGet, "/v1/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var projects []manager.ProjectMetadata
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
	require.Len(t, projects, 1)
	assert.Equal(t, "proj1", projects[0].ID)
}

func TestModelLifecycle(t *testing.T) {
	s := newTestServer(t)
	payload := encodeTestModel(t, "m1", "demo")

	// Store
	w := doRequest(s, http.MethodPost, "/v1/model?project=proj1", payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var put struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &put))
	assert.Equal(t, "m1", put.ID)

	// Read back verbatim
	w = doRequest(s, http.MethodGet, "/v1/model?project=proj1&id=m1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, string(payload), w.Body.String())

	// Listed
	w = doRequest(s, http.MethodGet, "/v1/models?project=proj1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Models []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"models"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Len(t, listing.Models, 1)
	assert.Equal(t, "demo", listing.Models[0].Name)

	// Delete
	w = doRequest(s, http.MethodDelete, "/v1/model?project=proj1&id=m1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(s, http.MethodGet, "/v1/model?project=proj1&id=m1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPutModelRejectsMalformedRecord(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(s, http.MethodPost, "/v1/model?project=proj1", []byte(`{"__type":"Gadget","id":"x"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMissingProjectIsNotFound(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(s, http.MethodGet, "/v1/model?project=ghost&id=m1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMissingProjectParamIsBadRequest(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(s, http.MethodGet, "/v1/models", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMissingModelIDIsBadRequest(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(s, http.MethodGet, "/v1/model?project=proj1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(s, http.MethodDelete, "/v1/model?project=proj1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateStoredModel(t *testing.T) {
	s := newTestServer(t)
	payload := encodeTestModel(t, "m1", "demo")
	require.Equal(t, http.StatusOK, doRequest(s, http.MethodPost, "/v1/model?project=proj1", payload).Code)

	w := doRequest(s, http.MethodPost, "/v1/validate?project=proj1&id=m1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Valid  bool              `json:"valid"`
		Issues []json.RawMessage `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Valid)
	assert.NotNil(t, result.Issues, "issues renders as [], not null")
	assert.Empty(t, result.Issues)
}

func TestValidatePostedRecord(t *testing.T) {
	s := newTestServer(t)

	// A model with a dangling feature type reference.
	m := kerml.NewModel("m1", "broken")
	ty := kerml.NewType("t1", "Vehicle")
	f := kerml.NewFeature("f1", "wheels")
	f.TypeID = "missing"
	ty.AddFeature(f)
	m.AddElement(ty)

	payload, err := codec.EncodeModel(m)
	require.NoError(t, err)

	w := doRequest(s, http.MethodPost, "/v1/validate", payload)
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Valid  bool `json:"valid"`
		Issues []struct {
			ElementID string `json:"elementId"`
			Code      string `json:"errorCode"`
		} `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Valid)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "f1", result.Issues[0].ElementID)
	assert.Equal(t, "UNKNOWN_TYPE_REFERENCE", result.Issues[0].Code)
}

func TestValidateWithoutIDOrBody(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(s, http.MethodPost, "/v1/validate?project=proj1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportGraph(t *testing.T) {
	s := newTestServer(t)
	payload := encodeTestModel(t, "m1", "demo")
	require.Equal(t, http.StatusOK, doRequest(s, http.MethodPost, "/v1/model?project=proj1", payload).Code)

	w := doRequest(s, http.MethodGet, "/v1/export?project=proj1&id=m1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var graph struct {
		Nodes []struct {
			ID string `json:"id"`
		} `json:"nodes"`
		Links []struct {
			Relation string `json:"relation"`
		} `json:"links"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &graph))
	require.Len(t, graph.Nodes, 2, "type and its owned feature")
	require.Len(t, graph.Links, 1)
	assert.Equal(t, "owns", graph.Links[0].Relation)
}
