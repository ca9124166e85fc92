package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"storefront/models"
	"storefront/services"

	"github.com/spf13/cobra"
)

func chatCmd(opts *rootOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with support; each line typed is sent as a message",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			chat := services.NewChatService(a.client, a.session, services.ChatOptions{
				Interval: a.cfg.ChatPollInterval,
				Timeout:  a.cfg.RequestTimeout,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Chatting as %s (guest %s). Ctrl-D to quit.\n", name, a.session.GuestID())
			return runChat(ctx, chat, name, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name shown to support")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// runChat prints the conversation as it arrives and sends every input line
// until input ends or ctx is cancelled.
func runChat(ctx context.Context, chat *services.ChatService, name string, in io.Reader, out io.Writer) error {
	printer := newChatPrinter(out)
	chat.OnUpdate(printer.print)

	if err := chat.Start(ctx); err != nil {
		return err
	}
	defer chat.Stop()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			if err := chat.Send(ctx, name, line); err != nil {
				printer.notice(models.UserMessage(err, "Failed to send message"))
			}
		}
	}
}

// chatPrinter writes each confirmed message once.
type chatPrinter struct {
	mu   sync.Mutex
	out  io.Writer
	seen map[string]bool
}

func newChatPrinter(out io.Writer) *chatPrinter {
	return &chatPrinter{out: out, seen: map[string]bool{}}
}

func (p *chatPrinter) print(messages []models.ChatMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, m := range messages {
		if m.Pending || p.seen[m.ID] {
			continue
		}
		p.seen[m.ID] = true
		fmt.Fprintf(p.out, "[%s] %s: %s\n", m.CreatedAt.Local().Format("15:04"), m.DisplayName(), m.Message)
	}
}

func (p *chatPrinter) notice(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "! %s\n", msg)
}
