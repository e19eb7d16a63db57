package theme

import (
	"os"

	"github.com/easeltools/easel/config"
)

// Nerd Font Icons (Private Constants)
const (
	nerdIconFolder       = "" // fa-folder (U+F07B)
	nerdIconFolderOpen   = "" // fa-folder_open (U+F07C)
	nerdIconModel        = "󰚩" // md-robot (U+F06A9)
	nerdIconImage        = "󰋩" // md-image (U+F02E9)
	nerdIconFile         = "" // fa-file_o (U+F016)
	nerdIconJSON         = "" // seti-json (U+E60B)
	nerdIconSuccess      = "󰄬" // md-check (U+F012C)
	nerdIconError        = "" // cod-error (U+EA87)
	nerdIconWarning      = "" // fa-warning (U+F071)
	nerdIconInfo         = "󰋼" // md-information (U+F02FC)
	nerdIconRunning      = "" // fa-refresh (U+F021)
	nerdIconPending      = "󰦖" // md-progress_clock (U+F0996)
	nerdIconSelect       = "󰱒" // md-checkbox_outline (U+F0C52)
	nerdIconUnselected   = "󰄱" // md-checkbox_blank_outline (U+F0131)
	nerdIconArrow        = "󰁔" // md-arrow_right (U+F0054)
	nerdIconBullet       = "" // oct-dot_fill (U+F444)
	nerdIconChat         = "󰭹" // md-chat (U+F0B79)
	nerdIconFilter       = "󱣬" // md-filter_check (U+F18EC)
	nerdIconSave         = "󰉉" // md-floppy (U+F0249)
	nerdIconSelectAll    = "󰒆" // md-select_all (U+F0486)
	nerdIconUpdate       = "󰚰" // md-update (U+F06B0)
	nerdIconTrash        = "󰩹" // md-trash_can (U+F0A79)
	nerdIconConnected    = "󰌘" // md-link_variant (U+F0337)
	nerdIconDisconnected = "󰌙" // md-link_variant_off (U+F0338)
)

// ASCII Fallback Icons (Private Constants)
const (
	asciiIconFolder       = "+"
	asciiIconFolderOpen   = "-"
	asciiIconModel        = "◆"
	asciiIconImage        = "▣"
	asciiIconFile         = "▢"
	asciiIconJSON         = "{}"
	asciiIconSuccess      = "✓"
	asciiIconError        = "✗"
	asciiIconWarning      = "⚠"
	asciiIconInfo         = "ℹ"
	asciiIconRunning      = "◐"
	asciiIconPending      = "…"
	asciiIconSelect       = "[x]"
	asciiIconUnselected   = "[ ]"
	asciiIconArrow        = "→"
	asciiIconBullet       = "•"
	asciiIconChat         = "★"
	asciiIconFilter       = "⊲"
	asciiIconSave         = "[S]"
	asciiIconSelectAll    = "[*]"
	asciiIconUpdate       = "↑"
	asciiIconTrash        = "[D]"
	asciiIconConnected    = "●"
	asciiIconDisconnected = "○"
)

// Public Icon Variables
var (
	IconFolder       string
	IconFolderOpen   string
	IconModel        string
	IconImage        string
	IconFile         string
	IconJSON         string
	IconSuccess      string
	IconError        string
	IconWarning      string
	IconInfo         string
	IconRunning      string
	IconPending      string
	IconSelect       string
	IconUnselected   string
	IconArrow        string
	IconBullet       string
	IconChat         string
	IconFilter       string
	IconSave         string
	IconSelectAll    string
	IconUpdate       string
	IconTrash        string
	IconConnected    string
	IconDisconnected string
)

// init function determines which icon set to use
func init() {
	useASCII := false

	// 1. Check environment variable first
	if os.Getenv("EASEL_ICONS") == "ascii" {
		useASCII = true
	} else {
		// 2. Check config file
		cfg, err := config.LoadDefault()
		if err == nil && cfg.TUI != nil && cfg.TUI.Icons == "ascii" {
			useASCII = true
		}
	}

	if useASCII {
		IconFolder = asciiIconFolder
		IconFolderOpen = asciiIconFolderOpen
		IconModel = asciiIconModel
		IconImage = asciiIconImage
		IconFile = asciiIconFile
		IconJSON = asciiIconJSON
		IconSuccess = asciiIconSuccess
		IconError = asciiIconError
		IconWarning = asciiIconWarning
		IconInfo = asciiIconInfo
		IconRunning = asciiIconRunning
		IconPending = asciiIconPending
		IconSelect = asciiIconSelect
		IconUnselected = asciiIconUnselected
		IconArrow = asciiIconArrow
		IconBullet = asciiIconBullet
		IconChat = asciiIconChat
		IconFilter = asciiIconFilter
		IconSave = asciiIconSave
		IconSelectAll = asciiIconSelectAll
		IconUpdate = asciiIconUpdate
		IconTrash = asciiIconTrash
		IconConnected = asciiIconConnected
		IconDisconnected = asciiIconDisconnected
	} else {
		IconFolder = nerdIconFolder
		IconFolderOpen = nerdIconFolderOpen
		IconModel = nerdIconModel
		IconImage = nerdIconImage
		IconFile = nerdIconFile
		IconJSON = nerdIconJSON
		IconSuccess = nerdIconSuccess
		IconError = nerdIconError
		IconWarning = nerdIconWarning
		IconInfo = nerdIconInfo
		IconRunning = nerdIconRunning
		IconPending = nerdIconPending
		IconSelect = nerdIconSelect
		IconUnselected = nerdIconUnselected
		IconArrow = nerdIconArrow
		IconBullet = nerdIconBullet
		IconChat = nerdIconChat
		IconFilter = nerdIconFilter
		IconSave = nerdIconSave
		IconSelectAll = nerdIconSelectAll
		IconUpdate = nerdIconUpdate
		IconTrash = nerdIconTrash
		IconConnected = nerdIconConnected
		IconDisconnected = nerdIconDisconnected
	}
}
