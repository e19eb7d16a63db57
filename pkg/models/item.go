package models

import (
	"time"

	"github.com/mitchellh/mapstructure"
)

// Item is a single browsable entry: a model file, an output image, or any
// other asset the host application lists. Identity is Id; Path is used only
// for classification and grouping. Two items must never share an Id.
type Item struct {
	Id   string                 `json:"id" yaml:"id"`
	Path string                 `json:"path" yaml:"path"`
	Info map[string]interface{} `json:"info,omitempty" yaml:"info,omitempty"`
}

// ItemInfo is the typed view of the opaque Info map. The host emits several
// historical field spellings for the last-used timestamp; DecodeInfo maps
// them all and LastUsed resolves the precedence.
type ItemInfo struct {
	Name         string `mapstructure:"name"`
	ModelName    string `mapstructure:"model_name"`
	VersionName  string `mapstructure:"version_name"`
	Size         int64  `mapstructure:"size"`
	Type         string `mapstructure:"type"`
	HasUpdate    bool   `mapstructure:"has_update"`
	LastUsedUnix int64  `mapstructure:"last_used"`
	// Legacy aliases still emitted by older host versions.
	LastUsedAtUnix int64 `mapstructure:"last_used_at"`
	UsedAtUnix     int64 `mapstructure:"used_at"`
}

// DecodeInfo decodes the opaque Info map into an ItemInfo. A nil Info map
// yields the zero value.
func (it Item) DecodeInfo() (ItemInfo, error) {
	var info ItemInfo
	if it.Info == nil {
		return info, nil
	}
	err := mapstructure.Decode(it.Info, &info)
	return info, err
}

// LastUsed returns the last-used time, checking the canonical field and both
// legacy aliases. The zero time means the item was never used.
func (i ItemInfo) LastUsed() time.Time {
	for _, ts := range []int64{i.LastUsedUnix, i.LastUsedAtUnix, i.UsedAtUnix} {
		if ts > 0 {
			return time.Unix(ts, 0)
		}
	}
	return time.Time{}
}

// ChatMessage is a single turn in the chat sidebar transcript.
type ChatMessage struct {
	Role    string    `json:"role" yaml:"role"` // "user" or "assistant"
	Content string    `json:"content" yaml:"content"`
	SentAt  time.Time `json:"sent_at" yaml:"sent_at"`
}

// HostEvent is an event republished from the host application's websocket.
type HostEvent struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data,omitempty"`
}
