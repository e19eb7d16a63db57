package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInfoLegacyAliases(t *testing.T) {
	tests := []struct {
		name string
		info map[string]interface{}
		want int64
	}{
		{
			name: "canonical field",
			info: map[string]interface{}{"last_used": int64(1700000000)},
			want: 1700000000,
		},
		{
			name: "legacy last_used_at",
			info: map[string]interface{}{"last_used_at": int64(1700000001)},
			want: 1700000001,
		},
		{
			name: "legacy used_at",
			info: map[string]interface{}{"used_at": int64(1700000002)},
			want: 1700000002,
		},
		{
			name: "canonical wins over legacy",
			info: map[string]interface{}{
				"last_used": int64(1700000000),
				"used_at":   int64(1600000000),
			},
			want: 1700000000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := Item{Id: "a", Path: "checkpoints/a.ckpt", Info: tt.info}
			info, err := item.DecodeInfo()
			require.NoError(t, err)
			assert.Equal(t, time.Unix(tt.want, 0), info.LastUsed())
		})
	}
}

func TestLastUsedNever(t *testing.T) {
	item := Item{Id: "a", Path: "checkpoints/a.ckpt"}
	info, err := item.DecodeInfo()
	require.NoError(t, err)
	assert.True(t, info.LastUsed().IsZero())
}

func TestDisplayNamePrecedence(t *testing.T) {
	item := Item{Id: "a", Path: "checkpoints\\sd15\\model_a.ckpt"}
	assert.Equal(t, "model_a.ckpt", item.DisplayName(), "filename fallback uses forward-slash base")

	item.Info = map[string]interface{}{"name": "Plain"}
	assert.Equal(t, "Plain", item.DisplayName())

	item.Info["model_name"] = "Model A"
	assert.Equal(t, "Model A", item.DisplayName())

	item.Info["version_name"] = "Model A v2"
	assert.Equal(t, "Model A v2", item.DisplayName())
}
