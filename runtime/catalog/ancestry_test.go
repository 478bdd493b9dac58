package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nameIs(want string) func(string) bool {
	return func(name string) bool { return name == want }
}

func chainRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := Build(BuildOptions{}, Source{Classes: []Type{
		{Name: "A", FullName: "N.A", Parent: "N.B"},
		{Name: "B", FullName: "N.B", Parent: "N.C"},
		{Name: "C", FullName: "N.C"},
		{Name: "Orphan", FullName: "N.Orphan", Parent: "N.Missing"},
		{Name: "Loop1", FullName: "N.Loop1", Parent: "N.Loop2"},
		{Name: "Loop2", FullName: "N.Loop2", Parent: "N.Loop1"},
		{Name: "Self", FullName: "N.Self", Parent: "N.Self"},
	}})
	require.NoError(t, err)
	return reg
}

func TestExtendsTransitively(t *testing.T) {
	reg := chainRegistry(t)

	assert.True(t, reg.ExtendsTransitively("N.A", nameIs("C"), 0))
	assert.True(t, reg.ExtendsTransitively("N.A", nameIs("B"), 0))
	assert.True(t, reg.ExtendsTransitively("N.A", nameIs("A"), 0), "start is inclusive")
	assert.False(t, reg.ExtendsTransitively("N.A", nameIs("Z"), 0))
	assert.False(t, reg.ExtendsTransitively("N.Z", func(string) bool { return true }, 0))
	assert.False(t, reg.ExtendsTransitively("", func(string) bool { return true }, 0))
}

func TestExtendsTransitivelyDanglingParent(t *testing.T) {
	reg := chainRegistry(t)

	assert.True(t, reg.ExtendsTransitively("N.Orphan", nameIs("Orphan"), 0))
	assert.False(t, reg.ExtendsTransitively("N.Orphan", nameIs("Missing"), 0))
}

func TestExtendsTransitivelyTerminatesOnCycles(t *testing.T) {
	reg := chainRegistry(t)

	assert.False(t, reg.ExtendsTransitively("N.Loop1", nameIs("Nothing"), 0))
	assert.True(t, reg.ExtendsTransitively("N.Loop1", nameIs("Loop2"), 0))
	assert.False(t, reg.ExtendsTransitively("N.Self", nameIs("Nothing"), 0))
}

func TestExtendsTransitivelyMaxDepth(t *testing.T) {
	reg := chainRegistry(t)

	assert.False(t, reg.ExtendsTransitively("N.A", nameIs("C"), 2))
	assert.True(t, reg.ExtendsTransitively("N.A", nameIs("C"), 3))
}

func TestAncestors(t *testing.T) {
	reg := chainRegistry(t)

	var names []string
	for _, a := range reg.Ancestors("N.A") {
		names = append(names, a.FullName)
	}
	assert.Equal(t, []string{"N.B", "N.C"}, names)

	assert.Empty(t, reg.Ancestors("N.C"))
	assert.Empty(t, reg.Ancestors("N.Orphan"))
	assert.Empty(t, reg.Ancestors("N.Unknown"))
	assert.Len(t, reg.Ancestors("N.Loop1"), 1)
	assert.Empty(t, reg.Ancestors("N.Self"))
}

func TestDetectCycles(t *testing.T) {
	reg := chainRegistry(t)

	cycles := reg.DetectCycles()
	assert.Equal(t, [][]string{
		{"N.Loop1", "N.Loop2", "N.Loop1"},
		{"N.Self", "N.Self"},
	}, cycles)
}

func TestDetectCyclesAcyclic(t *testing.T) {
	reg, err := Build(BuildOptions{}, Source{Classes: []Type{
		{Name: "A", FullName: "N.A", Parent: "N.B"},
		{Name: "B", FullName: "N.B"},
	}})
	require.NoError(t, err)
	assert.Empty(t, reg.DetectCycles())
}

func TestDanglingParents(t *testing.T) {
	reg := chainRegistry(t)

	assert.Equal(t, []DanglingParent{{Child: "N.Orphan", Parent: "N.Missing"}}, reg.DanglingParents())
	assert.Equal(t, 1, reg.Stats().DanglingParents)
}
