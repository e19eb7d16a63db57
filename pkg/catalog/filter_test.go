package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easeltools/easel/pkg/models"
)

func named(id, name string) models.Item {
	return models.Item{
		Id:   id,
		Path: "checkpoints/" + name + ".ckpt",
		Info: map[string]interface{}{"name": name},
	}
}

func TestSearchSortScenario(t *testing.T) {
	items := []models.Item{
		named("1", "Alpha"),
		named("2", "Model"),
		named("3", "Modest"),
	}

	got := Apply(items, Filters{Search: "mod", Sort: "name-desc"})

	require.Len(t, got, 2)
	assert.Equal(t, "Modest", got[0].DisplayName())
	assert.Equal(t, "Model", got[1].DisplayName())
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	items := []models.Item{named("b", "Beta"), named("a", "Alpha")}
	_ = Apply(items, Filters{Sort: "name"})
	assert.Equal(t, "b", items[0].Id, "input order must be preserved")
}

func TestFilterMonotonicity(t *testing.T) {
	items := []models.Item{
		named("1", "Alpha"),
		named("2", "Model"),
		named("3", "Modest"),
		{Id: "4", Path: "loras/extra.safetensors"},
	}

	base := Filters{}
	narrowed := Filters{Search: "mod"}
	narrower := Filters{Search: "mod", Bucket: "checkpoints"}

	a := len(Apply(items, base))
	b := len(Apply(items, narrowed))
	c := len(Apply(items, narrower))

	assert.GreaterOrEqual(t, a, b, "adding a predicate must never grow the result")
	assert.GreaterOrEqual(t, b, c)
}

func TestSortDirectionSymmetry(t *testing.T) {
	// Tie-free input for every key.
	now := time.Now().Unix()
	items := []models.Item{
		{Id: "1", Path: "checkpoints/a.ckpt", Info: map[string]interface{}{
			"name": "Alpha", "size": int64(100), "type": "ckpt", "last_used": now - 100}},
		{Id: "2", Path: "checkpoints/b.ckpt", Info: map[string]interface{}{
			"name": "Beta", "size": int64(300), "type": "lora", "last_used": now - 50}},
		{Id: "3", Path: "checkpoints/c.ckpt", Info: map[string]interface{}{
			"name": "Gamma", "size": int64(200), "type": "vae", "last_used": now - 10}},
	}

	for _, key := range []string{"name", "lastused", "size", "type"} {
		asc := Apply(items, Filters{Sort: key})
		desc := Apply(items, Filters{Sort: key + "-desc"})

		require.Len(t, desc, len(asc))
		for i := range asc {
			assert.Equal(t, asc[i].Id, desc[len(desc)-1-i].Id,
				"sort by %s reversed must equal %s-desc", key, key)
		}
	}
}

func TestSortTieBreakById(t *testing.T) {
	items := []models.Item{named("z", "Same"), named("a", "Same"), named("m", "Same")}
	got := Apply(items, Filters{Sort: "name"})
	assert.Equal(t, []string{"a", "m", "z"}, itemIds(got))

	// Descending negates the comparator but keeps the id tie-break ascending.
	got = Apply(items, Filters{Sort: "name-desc"})
	assert.Equal(t, []string{"a", "m", "z"}, itemIds(got))
}

func TestRecencyBuckets(t *testing.T) {
	now := time.Now()
	items := []models.Item{
		{Id: "never", Path: "checkpoints/n.ckpt"},
		{Id: "today", Path: "checkpoints/t.ckpt", Info: map[string]interface{}{
			"last_used": now.Add(-2 * time.Hour).Unix()}},
		{Id: "week", Path: "checkpoints/w.ckpt", Info: map[string]interface{}{
			"last_used_at": now.Add(-3 * 24 * time.Hour).Unix()}},
		{Id: "month", Path: "checkpoints/m.ckpt", Info: map[string]interface{}{
			"used_at": now.Add(-20 * 24 * time.Hour).Unix()}},
		{Id: "old", Path: "checkpoints/o.ckpt", Info: map[string]interface{}{
			"last_used": now.Add(-90 * 24 * time.Hour).Unix()}},
	}

	assert.Equal(t, []string{"never"}, itemIds(Apply(items, Filters{Recency: RecencyNever, Sort: "name"})))
	assert.Equal(t, []string{"today"}, itemIds(Apply(items, Filters{Recency: RecencyToday, Sort: "name"})))

	week := itemIds(Apply(items, Filters{Recency: RecencyWeek, Sort: "lastused"}))
	assert.ElementsMatch(t, []string{"today", "week"}, week)

	month := itemIds(Apply(items, Filters{Recency: RecencyMonth, Sort: "lastused"}))
	assert.ElementsMatch(t, []string{"today", "week", "month"}, month)

	all := itemIds(Apply(items, Filters{Recency: RecencyAll}))
	assert.Len(t, all, 5)
}

func TestUpdateFilter(t *testing.T) {
	items := []models.Item{
		{Id: "u", Path: "checkpoints/u.ckpt", Info: map[string]interface{}{"has_update": true}},
		{Id: "n", Path: "checkpoints/n.ckpt"},
	}

	assert.Equal(t, []string{"u"}, itemIds(Apply(items, Filters{Update: UpdateAvailable})))
	assert.Equal(t, []string{"n"}, itemIds(Apply(items, Filters{Update: UpdateNone})))
	assert.Len(t, Apply(items, Filters{Update: UpdateAll}), 2)
}

func TestSearchCoversVersionAndPath(t *testing.T) {
	items := []models.Item{
		{Id: "1", Path: "loras/hidden.safetensors", Info: map[string]interface{}{
			"name": "Plain", "version_name": "TurboEdition"}},
		{Id: "2", Path: "checkpoints/subdir/thing.ckpt", Info: map[string]interface{}{
			"name": "Other"}},
	}

	assert.Equal(t, []string{"1"}, itemIds(Apply(items, Filters{Search: "turbo"})))
	assert.Equal(t, []string{"2"}, itemIds(Apply(items, Filters{Search: "SUBDIR"})))
}

func TestParseSort(t *testing.T) {
	key, desc := ParseSort("size-desc")
	assert.Equal(t, "size", key)
	assert.True(t, desc)

	key, desc = ParseSort("name")
	assert.Equal(t, "name", key)
	assert.False(t, desc)
}
