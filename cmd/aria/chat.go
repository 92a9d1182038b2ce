// ABOUTME: CLI command for talking with the Aria companion.
// ABOUTME: One-shot messages or an interactive loop over a local LLM runtime.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/harperreed/aria/internal/chat"
	"github.com/spf13/cobra"
)

var (
	chatNewSession bool
	chatRemember   []string
)

var chatCmd = &cobra.Command{
	Use:   "chat [message...]",
	Short: "Talk with Aria",
	Long: `Talk with the Aria companion. Replies are generated by an
OpenAI-compatible runtime (a local Ollama by default) and grounded in
your mood entries, due habits, and today's check-in.

Pass a message for a one-shot reply, or run without arguments for an
interactive session (Ctrl+C or 'exit' to leave).

CONFIGURATION (~/.config/aria/config.json):

  chat_base_url   endpoint, default http://localhost:11434/v1
  chat_model      model name, default llama3.2
  chat_api_key    optional, for hosted endpoints

EXAMPLES:

  aria chat "rough day today"
  aria chat --new-session
  aria chat --remember tone=gentle
  aria chat`,
	RunE: func(cmd *cobra.Command, args []string) error {
		o := chat.NewOrchestrator(cfg.GetChatBaseURL(), cfg.ChatAPIKey, cfg.GetChatModel(), repo)

		for _, pref := range chatRemember {
			key, value, ok := strings.Cut(pref, "=")
			if !ok || key == "" {
				return fmt.Errorf("invalid preference %q, want key=value", pref)
			}
			if err := o.Remember(key, value); err != nil {
				return fmt.Errorf("failed to save preference: %w", err)
			}
			color.Green("✓ Noted %s", key)
		}
		// A bare --remember updates preferences without starting a chat.
		if len(chatRemember) > 0 && len(args) == 0 && !chatNewSession {
			return nil
		}

		if chatNewSession {
			if err := o.NewSession(); err != nil {
				return fmt.Errorf("failed to start a new session: %w", err)
			}
			color.Green("✓ Started a fresh session")
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		if len(args) > 0 {
			return chatTurn(ctx, o, strings.Join(args, " "))
		}

		fmt.Println("Talking with Aria. Type 'exit' to leave.")
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				fmt.Println()
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "exit" || line == "quit" {
				return nil
			}
			if err := chatTurn(ctx, o, line); err != nil {
				return err
			}
			if ctx.Err() != nil {
				return nil
			}
		}
	},
}

func chatTurn(ctx context.Context, o *chat.Orchestrator, message string) error {
	reply, err := o.Send(ctx, message, func(tok string) {
		fmt.Print(tok)
	})
	if errors.Is(err, chat.ErrBusy) {
		color.Yellow("Aria is still thinking. Give it a moment.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println()
	if reply.Cancelled {
		color.New(color.Faint).Println("(cancelled)")
	}
	return nil
}

func init() {
	chatCmd.Flags().BoolVar(&chatNewSession, "new-session", false, "reset the conversation before chatting")
	chatCmd.Flags().StringArrayVar(&chatRemember, "remember", nil, "store a standing preference (key=value, repeatable)")
	rootCmd.AddCommand(chatCmd)
}
