package adm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.amprs.dev/ari/adm"
)

func TestCatalog_Commit_Simple(t *testing.T) {
	t.Parallel()

	cat := adm.NewCatalog()
	err := cat.Commit([]*adm.File{
		{Name: "ion"},
		{Name: "net"},
	})
	require.NoError(t, err)

	f, ok := cat.ByName("ion")
	require.True(t, ok)
	assert.Equal(t, "ion", f.Name)

	_, ok = cat.ByName("missing")
	assert.False(t, ok)
}

func TestCatalog_Commit_AssignsSequentialEnums(t *testing.T) {
	t.Parallel()

	cat := adm.NewCatalog()
	require.NoError(t, cat.Commit([]*adm.File{{Name: "a"}}))
	require.NoError(t, cat.Commit([]*adm.File{{Name: "b"}}))

	a, _ := cat.ByName("a")
	b, _ := cat.ByName("b")
	assert.Equal(t, uint64(0), a.Enum)
	assert.Equal(t, uint64(1), b.Enum)

	byEnum, ok := cat.ByEnum(1)
	require.True(t, ok)
	assert.Equal(t, "b", byEnum.Name)
}

func TestCatalog_Commit_UsesOrdering(t *testing.T) {
	t.Parallel()

	cat := adm.NewCatalog()
	// b depends on a; committed together in an order where the dependent
	// file appears first in the slice, exercising the fixed-point resolver.
	err := cat.Commit([]*adm.File{
		{Name: "b", Uses: []string{"a"}},
		{Name: "a"},
	})
	require.NoError(t, err)

	_, ok := cat.ByName("a")
	assert.True(t, ok)
	_, ok = cat.ByName("b")
	assert.True(t, ok)
}

func TestCatalog_Commit_UnresolvedDependency(t *testing.T) {
	t.Parallel()

	cat := adm.NewCatalog()
	err := cat.Commit([]*adm.File{
		{Name: "b", Uses: []string{"nonexistent"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestCatalog_Commit_UsesAlreadyRegistered(t *testing.T) {
	t.Parallel()

	cat := adm.NewCatalog()
	require.NoError(t, cat.Commit([]*adm.File{{Name: "a"}}))
	require.NoError(t, cat.Commit([]*adm.File{{Name: "b", Uses: []string{"a"}}}))

	_, ok := cat.ByName("b")
	assert.True(t, ok)
}

func TestCatalog_Commit_DelDupe(t *testing.T) {
	t.Parallel()

	cat := adm.NewCatalog()
	require.NoError(t, cat.Commit([]*adm.File{{Name: "ion"}}))

	first, _ := cat.ByName("ion")
	enum := first.Enum

	require.NoError(t, cat.Commit([]*adm.File{{Name: "ion", Namespace: "updated"}}))

	second, ok := cat.ByName("ion")
	require.True(t, ok)
	assert.Equal(t, "updated", second.Namespace)

	byEnum, ok := cat.ByEnum(enum)
	require.True(t, ok)
	assert.Equal(t, "updated", byEnum.Namespace)
}

func TestCatalog_Files_SortedByName(t *testing.T) {
	t.Parallel()

	cat := adm.NewCatalog()
	require.NoError(t, cat.Commit([]*adm.File{
		{Name: "zeta"},
		{Name: "alpha"},
		{Name: "mid"},
	}))

	files := cat.Files()
	require.Len(t, files, 3)
	assert.Equal(t, "alpha", files[0].Name)
	assert.Equal(t, "mid", files[1].Name)
	assert.Equal(t, "zeta", files[2].Name)
}

func TestCatalog_GetChild(t *testing.T) {
	t.Parallel()

	cat := adm.NewCatalog()
	require.NoError(t, cat.Commit([]*adm.File{{
		Name: "ion",
		Ctrls: []adm.Ctrl{
			{Object: adm.Object{Name: "reset"}},
			{Object: adm.Object{Name: "ping"}},
		},
	}}))

	pos, err := cat.GetChild("ion", "ctrl", "ping")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), pos)

	pos, err = cat.GetChild("ion", "ctrl", "PING")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), pos)
}

func TestCatalog_GetChild_UnknownADM(t *testing.T) {
	t.Parallel()

	cat := adm.NewCatalog()
	_, err := cat.GetChild("nope", "ctrl", "reset")
	require.Error(t, err)
	assert.ErrorIs(t, err, adm.ErrNotFound)
}

func TestCatalog_GetChild_UnknownSection(t *testing.T) {
	t.Parallel()

	cat := adm.NewCatalog()
	require.NoError(t, cat.Commit([]*adm.File{{Name: "ion"}}))

	_, err := cat.GetChild("ion", "bogus", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, adm.ErrNotFound)
}

func TestCatalog_GetChild_UnknownObject(t *testing.T) {
	t.Parallel()

	cat := adm.NewCatalog()
	require.NoError(t, cat.Commit([]*adm.File{{
		Name:  "ion",
		Ctrls: []adm.Ctrl{{Object: adm.Object{Name: "reset"}}},
	}}))

	_, err := cat.GetChild("ion", "ctrl", "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, adm.ErrNotFound)
}
