package catalog

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easeltools/easel/pkg/models"
)

func TestBuildTreeScenario(t *testing.T) {
	items := []models.Item{
		{Id: "a", Path: "checkpoints/sd15/model_a.ckpt"},
		{Id: "b", Path: "checkpoints/model_b.ckpt"},
	}

	root := BuildTree(items)

	require.Len(t, root.Items, 1)
	assert.Equal(t, "b", root.Items[0].Id)

	require.Contains(t, root.Children, "sd15")
	sd15 := root.Children["sd15"]
	require.Len(t, sd15.Items, 1)
	assert.Equal(t, "a", sd15.Items[0].Id)
	assert.Empty(t, sd15.Children)

	assert.Equal(t, 2, root.CountItems())
}

func TestTreeCompleteness(t *testing.T) {
	items := []models.Item{
		{Id: "1", Path: "checkpoints/a.ckpt"},
		{Id: "2", Path: "checkpoints/sd15/b.ckpt"},
		{Id: "3", Path: "checkpoints/sd15/anime/c.ckpt"},
		{Id: "4", Path: "loras/d.safetensors"},
		{Id: "5", Path: "plain.bin"},
		{Id: "6", Path: "misc/stuff/e.bin"},
	}

	root := BuildTree(items)

	var collected []string
	root.Walk(func(_ string, node *FolderNode) {
		for _, it := range node.Items {
			collected = append(collected, it.Id)
		}
	})

	want := make([]string, 0, len(items))
	for _, it := range items {
		want = append(want, it.Id)
	}
	sort.Strings(collected)
	sort.Strings(want)
	assert.Equal(t, want, collected, "every input item appears exactly once in the tree")
}

func TestBuildTreeOrderIndependent(t *testing.T) {
	items := []models.Item{
		{Id: "1", Path: "checkpoints/a.ckpt"},
		{Id: "2", Path: "checkpoints/sd15/b.ckpt"},
		{Id: "3", Path: "loras/style/c.safetensors"},
		{Id: "4", Path: "other/d.bin"},
	}
	shuffled := make([]models.Item, len(items))
	copy(shuffled, items)
	rand.New(rand.NewSource(42)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	a, b := BuildTree(items), BuildTree(shuffled)

	assert.Equal(t, a.FolderPaths(), b.FolderPaths(), "node set must not depend on input order")
	assert.Equal(t, a.CountItems(), b.CountItems())
	for _, p := range a.FolderPaths() {
		na, nb := a.Find(p), b.Find(p)
		require.NotNil(t, nb, p)
		idsA := itemIds(na.Items)
		idsB := itemIds(nb.Items)
		sort.Strings(idsA)
		sort.Strings(idsB)
		assert.Equal(t, idsA, idsB, "membership at %s", p)
	}
}

func TestFolderPathsAndFind(t *testing.T) {
	items := []models.Item{
		{Id: "1", Path: "checkpoints/sd15/anime/a.ckpt"},
		{Id: "2", Path: "checkpoints/sdxl/b.ckpt"},
	}
	root := BuildTree(items)

	assert.Equal(t, []string{"sd15", "sd15/anime", "sdxl"}, root.FolderPaths())

	node := root.Find("sd15/anime")
	require.NotNil(t, node)
	assert.Equal(t, "anime", node.Name)
	assert.Nil(t, root.Find("sd15/missing"))
	assert.Same(t, root, root.Find(""))
}

func TestChildKeysSorted(t *testing.T) {
	root := NewFolderNode("")
	for _, name := range []string{"zeta", "Alpha", "beta"} {
		root.Children[name] = NewFolderNode(name)
	}
	// Case-sensitive ascending: uppercase sorts before lowercase.
	assert.Equal(t, []string{"Alpha", "beta", "zeta"}, root.ChildKeys())
}

func itemIds(items []models.Item) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.Id)
	}
	return ids
}
