package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoshimomax/sysmlmodeler/pkg/kerml"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(&Config{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleModel(id, name string) *kerml.Model {
	m := kerml.NewModel(id, name)
	ty := kerml.NewType("t1", "Vehicle")
	ty.AddFeature(kerml.NewFeature("f1", "wheels"))
	m.AddElement(ty)
	return m
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, (&Config{}).Validate(), "DataDir required unless in-memory")
	assert.NoError(t, (&Config{InMemory: true}).Validate())
	assert.Error(t, (&Config{DataDir: "x", BlockCacheSize: -1}).Validate())
	assert.Error(t, (&Config{DataDir: "x", IndexCacheSize: -1}).Validate())

	cfg := DefaultConfig("/tmp/proj")
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "/tmp/proj", cfg.DataDir)
	assert.Positive(t, cfg.BlockCacheSize)
}

func TestSaveAndLoadModel(t *testing.T) {
	s := openTestStore(t)

	m := sampleModel("m1", "demo")
	require.NoError(t, s.SaveModel(m))

	got, err := s.LoadModel("m1")
	require.NoError(t, err)
	assert.Equal(t, "demo", got.Name)
	require.Len(t, got.Elements, 1)

	ty, ok := got.FindElement("t1").(*kerml.Type)
	require.True(t, ok)
	require.Len(t, ty.Features, 1)
	assert.Equal(t, "f1", ty.Features[0].ID)
}

func TestLoadModelNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.LoadModel("nope")
	assert.ErrorIs(t, err, ErrModelNotFound)

	_, err = s.LoadRecord("nope")
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestSaveRecordRejectsMalformedPayload(t *testing.T) {
	s := openTestStore(t)

	err := s.SaveRecord("m1", []byte(`{"__type":"Gadget","id":"m1"}`))
	assert.Error(t, err)

	err = s.SaveRecord("m1", []byte("{broken"))
	assert.Error(t, err)

	// Nothing reached disk.
	_, err = s.LoadRecord("m1")
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestSaveModelOverwrites(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveModel(sampleModel("m1", "first")))
	require.NoError(t, s.SaveModel(sampleModel("m1", "second")))

	got, err := s.LoadModel("m1")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Name)
}

func TestDeleteModel(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveModel(sampleModel("m1", "demo")))

	found, err := s.DeleteModel("m1")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = s.DeleteModel("m1")
	require.NoError(t, err)
	assert.False(t, found)

	_, err = s.LoadModel("m1")
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestListModels(t *testing.T) {
	s := openTestStore(t)

	infos, err := s.ListModels()
	require.NoError(t, err)
	assert.Empty(t, infos)

	require.NoError(t, s.SaveModel(sampleModel("alpha", "Alpha Model")))
	require.NoError(t, s.SaveModel(sampleModel("beta", "Beta Model")))

	infos, err = s.ListModels()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, ModelInfo{ID: "alpha", Name: "Alpha Model"}, infos[0])
	assert.Equal(t, ModelInfo{ID: "beta", Name: "Beta Model"}, infos[1])
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(DefaultConfig(dir))
	require.NoError(t, err)

	require.NoError(t, s.SaveModel(sampleModel("m1", "persisted")))
	require.NoError(t, s.Close())

	// Reopen and confirm the record survived.
	s, err = Open(DefaultConfig(dir))
	require.NoError(t, err)
	defer s.Close()

	got, err := s.LoadModel("m1")
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Name)
}
