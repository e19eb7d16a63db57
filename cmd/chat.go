package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/easeltools/easel/cli"
	"github.com/easeltools/easel/config"
	"github.com/easeltools/easel/pkg/host"
	"github.com/easeltools/easel/tui"
	"github.com/easeltools/easel/tui/panels/chat"
)

// NewChatCmd creates the `chat` command.
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat sidebar backed by the host's completion endpoint",
		Long: `Opens the chat panel. Conversation history persists between runs
and is trimmed to the configured length; ctrl+l clears it.

Examples:
  # Resume the persisted conversation
  easel chat

  # Use a specific model for this session
  easel chat --model llama3
`,
		RunE: runChatE,
	}

	cmd.Flags().String("model", "", "Model identifier sent with completion requests")

	return cmd
}

func runChatE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return handler.Handle(err)
	}

	if model, _ := cmd.Flags().GetString("model"); model != "" {
		if cfg.Chat == nil {
			cfg.Chat = &config.ChatConfig{}
		}
		cfg.Chat.Model = model
	}

	tui.InitializeTUI()
	panel := chat.New(chat.Options{
		Client: host.NewClient(cfg.Host.URL),
		Config: cfg,
	})

	if _, err := tea.NewProgram(panel, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run chat: %w", err)
	}
	return nil
}
