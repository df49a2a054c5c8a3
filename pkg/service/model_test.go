package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoshimomax/sysmlmodeler/internal/manager"
	"github.com/yoshimomax/sysmlmodeler/pkg/codec"
	"github.com/yoshimomax/sysmlmodeler/pkg/common/errors"
	"github.com/yoshimomax/sysmlmodeler/pkg/kerml"
)

func newTestService(t *testing.T) *ModelService {
	t.Helper()
	mgr := manager.NewStoreManager(t.TempDir(), false)
	t.Cleanup(mgr.CloseAll)
	require.NoError(t, mgr.CreateProject("proj1"))
	return NewModelService(mgr)
}

func encodeModel(t *testing.T, m *kerml.Model) []byte {
	t.Helper()
	data, err := codec.EncodeModel(m)
	require.NoError(t, err)
	return data
}

func TestPutAndGetModelRecord(t *testing.T) {
	svc := newTestService(t)
	m := kerml.NewModel("m1", "demo")
	m.AddElement(kerml.NewType("t1", "Vehicle"))

	id, err := svc.PutModelRecord("proj1", encodeModel(t, m))
	require.NoError(t, err)
	assert.Equal(t, "m1", id)

	data, err := svc.GetModelRecord("proj1", "m1")
	require.NoError(t, err)
	got, err := codec.DecodeModel(data)
	require.NoError(t, err)
	assert.Equal(t, "demo", got.Name)
}

func TestPutModelRecordRejectsBadPayload(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.PutModelRecord("proj1", []byte(`{"__type":"Gadget","id":"x"}`))
	assert.ErrorIs(t, err, errors.ErrBadRecord)
}

func TestEmptyProjectIDIsInvalidInput(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.ListModels("")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestUnknownProjectIsNotFound(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.GetModelRecord("ghost", "m1")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestUnknownModelIsNotFound(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.GetModelRecord("proj1", "absent")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	err = svc.DeleteModel("proj1", "absent")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestValidateRecord(t *testing.T) {
	svc := newTestService(t)

	m := kerml.NewModel("m1", "broken")
	m.AddElement(kerml.NewUnion("u1", "empty"))

	issues, err := svc.ValidateRecord(encodeModel(t, m))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "EMPTY_OPERANDS", issues[0].Code)

	_, err = svc.ValidateRecord([]byte("{bad"))
	assert.ErrorIs(t, err, errors.ErrBadRecord)
}

func TestValidateStored(t *testing.T) {
	svc := newTestService(t)

	m := kerml.NewModel("m1", "clean")
	m.AddElement(kerml.NewType("t1", "Vehicle"))
	_, err := svc.PutModelRecord("proj1", encodeModel(t, m))
	require.NoError(t, err)

	issues, err := svc.ValidateStored("proj1", "m1")
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestExportGraph(t *testing.T) {
	svc := newTestService(t)

	m := kerml.NewModel("m1", "demo")
	ty := kerml.NewType("t1", "Vehicle")
	ty.AddFeature(kerml.NewFeature("f1", "wheels"))
	m.AddElement(ty)
	_, err := svc.PutModelRecord("proj1", encodeModel(t, m))
	require.NoError(t, err)

	graph, err := svc.ExportGraph("proj1", "m1")
	require.NoError(t, err)
	assert.Len(t, graph.Nodes, 2)
	assert.Len(t, graph.Links, 1)
}

func TestListProjects(t *testing.T) {
	svc := newTestService(t)
	projects, err := svc.ListProjects()
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "proj1", projects[0].ID)
}
