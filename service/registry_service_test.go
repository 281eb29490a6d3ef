package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryAddAndList(t *testing.T) {
	reg := NewRegistryService()

	require.NoError(t, reg.Add("a.pdf", []byte("aaa")))
	require.NoError(t, reg.Add("b.pdf", []byte("bb")))
	require.NoError(t, reg.Add("c.pdf", []byte("c")))

	files := reg.List()
	require.Len(t, files, 3)
	// Insertion order is preserved
	assert.Equal(t, "a.pdf", files[0].Name)
	assert.Equal(t, "b.pdf", files[1].Name)
	assert.Equal(t, "c.pdf", files[2].Name)
}

func TestRegistryDuplicateName(t *testing.T) {
	reg := NewRegistryService()

	require.NoError(t, reg.Add("a.pdf", []byte("first")))
	err := reg.Add("a.pdf", []byte("second"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	files := reg.List()
	require.Len(t, files, 1)
	assert.Equal(t, []byte("first"), files[0].Data)
}

func TestRegistryRemove(t *testing.T) {
	reg := NewRegistryService()
	require.NoError(t, reg.Add("a.pdf", []byte("a")))
	require.NoError(t, reg.Add("b.pdf", []byte("b")))

	require.NoError(t, reg.Remove("a.pdf"))
	files := reg.List()
	require.Len(t, files, 1)
	assert.Equal(t, "b.pdf", files[0].Name)

	err := reg.Remove("a.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestRegistryListIsSnapshot(t *testing.T) {
	reg := NewRegistryService()
	require.NoError(t, reg.Add("a.pdf", []byte("a")))

	snapshot := reg.List()
	require.NoError(t, reg.Remove("a.pdf"))

	// A snapshot taken before the removal is unaffected
	require.Len(t, snapshot, 1)
	assert.Empty(t, reg.List())
}

func TestRegistryInfos(t *testing.T) {
	reg := NewRegistryService()
	require.NoError(t, reg.Add("a.pdf", []byte("12345")))

	infos := reg.Infos()
	require.Len(t, infos, 1)
	assert.Equal(t, "a.pdf", infos[0].Name)
	assert.Equal(t, int64(5), infos[0].Size)
}
