// ABOUTME: Conversation orchestrator for the companion chat.
// ABOUTME: Streams replies from an OpenAI-compatible runtime with a wellness persona.
package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/aria/internal/habits"
	"github.com/harperreed/aria/internal/models"
	"github.com/harperreed/aria/internal/mood"
	"github.com/harperreed/aria/internal/storage"
	openai "github.com/sashabaranov/go-openai"
)

// ErrBusy is returned when a generation is already in flight.
var ErrBusy = errors.New("a reply is already being generated")

// FallbackMessage is shown when the chat runtime cannot be reached.
const FallbackMessage = "I'm having trouble connecting right now, but I'm still here. " +
	"Maybe take a slow breath while I get myself together?"

// Reply is the outcome of one chat turn.
type Reply struct {
	Text      string
	Cancelled bool
	Fallback  bool
}

// Orchestrator runs one chat turn at a time against an OpenAI-compatible
// endpoint, grounding the persona in stored wellness data.
type Orchestrator struct {
	client *openai.Client
	model  string
	repo   storage.Repository

	mu   sync.Mutex
	busy bool
}

// NewOrchestrator builds an orchestrator for the given endpoint. An empty
// apiKey is fine for local runtimes like Ollama.
func NewOrchestrator(baseURL, apiKey, model string, repo storage.Repository) *Orchestrator {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &Orchestrator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		repo:   repo,
	}
}

// Send runs one chat turn: updates the conversation context from the user's
// message, streams the reply through onToken, and persists the context.
// Only one turn may be in flight; concurrent calls get ErrBusy.
// Cancellation returns the partial text tagged as cancelled; transport
// failures degrade to a single fallback message after logging.
func (o *Orchestrator) Send(ctx context.Context, message string, onToken func(string)) (*Reply, error) {
	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return nil, ErrBusy
	}
	o.busy = true
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.busy = false
		o.mu.Unlock()
	}()

	convCtx, err := o.repo.LoadContext()
	if err != nil {
		return nil, fmt.Errorf("load conversation context: %w", err)
	}
	if result, ok := mood.Classify(message, nil); ok {
		convCtx.DetectedMood = result.DetectedMood
	}
	convCtx.RecordMessage(topicOf(message))
	defer func() {
		if err := o.repo.SaveContext(convCtx); err != nil {
			log.Warn("failed to save conversation context", "error", err)
		}
	}()

	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: o.systemPrompt(convCtx)},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	}

	stream, err := o.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		log.Warn("chat runtime unreachable", "error", err)
		if onToken != nil {
			onToken(FallbackMessage)
		}
		return &Reply{Text: FallbackMessage, Fallback: true}, nil
	}
	defer stream.Close()

	var b strings.Builder
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if ctx.Err() != nil {
				return &Reply{Text: b.String(), Cancelled: true}, nil
			}
			log.Warn("chat stream interrupted", "error", err)
			if b.Len() > 0 {
				return &Reply{Text: b.String()}, nil
			}
			if onToken != nil {
				onToken(FallbackMessage)
			}
			return &Reply{Text: FallbackMessage, Fallback: true}, nil
		}
		if len(resp.Choices) == 0 {
			continue
		}
		delta := resp.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		b.WriteString(delta)
		if onToken != nil {
			onToken(delta)
		}
	}

	return &Reply{Text: b.String()}, nil
}

// NewSession resets the conversation context for a fresh session,
// keeping user preferences and the last check-in date.
func (o *Orchestrator) NewSession() error {
	convCtx, err := o.repo.LoadContext()
	if err != nil {
		return fmt.Errorf("load conversation context: %w", err)
	}
	return o.repo.SaveContext(convCtx.Reset())
}

// Remember stores a standing user preference that survives session resets
// and is folded into the persona prompt.
func (o *Orchestrator) Remember(key, value string) error {
	convCtx, err := o.repo.LoadContext()
	if err != nil {
		return fmt.Errorf("load conversation context: %w", err)
	}
	if convCtx.UserPreferences == nil {
		convCtx.UserPreferences = make(map[string]string)
	}
	convCtx.UserPreferences[key] = value
	return o.repo.SaveContext(convCtx)
}

// systemPrompt assembles the companion persona from stored wellness state.
func (o *Orchestrator) systemPrompt(convCtx *models.ConversationContext) string {
	var b strings.Builder
	b.WriteString("You are Aria, a warm, encouraging wellness companion. ")
	b.WriteString("Keep replies short, conversational, and grounded in what you know about the user. ")
	b.WriteString("Never give medical advice; suggest professional help for serious concerns.\n")

	if convCtx.DetectedMood != "" {
		b.WriteString(fmt.Sprintf("\nThe user currently seems %s.\n", convCtx.DetectedMood.Display().Label))
	}
	if len(convCtx.PreviousTopics) > 0 {
		b.WriteString(fmt.Sprintf("Recent topics: %s.\n", strings.Join(convCtx.PreviousTopics, ", ")))
	}
	if len(convCtx.UserPreferences) > 0 {
		keys := make([]string, 0, len(convCtx.UserPreferences))
		for k := range convCtx.UserPreferences {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%s", k, convCtx.UserPreferences[k]))
		}
		b.WriteString(fmt.Sprintf("Standing preferences: %s.\n", strings.Join(pairs, ", ")))
	}

	today := time.Now()
	if all, err := o.repo.ListHabits(false); err == nil {
		completions, _ := o.repo.ListCompletions(nil)
		var due []string
		for _, h := range all {
			if habits.IsDueToday(h, completions, today) {
				due = append(due, h.Name)
			}
		}
		if len(due) > 0 {
			b.WriteString(fmt.Sprintf("Habits still due today: %s.\n", strings.Join(due, ", ")))
		}
	}

	if checkIn, err := o.repo.GetCheckIn(models.DayKey(today)); err == nil && checkIn != nil {
		b.WriteString(fmt.Sprintf("Today's check-in is %.0f%% complete.\n", checkIn.CompletionScore()*100))
	} else if convCtx.LastCheckInDate != "" {
		b.WriteString(fmt.Sprintf("Last check-in was on %s; a gentle nudge toward today's is welcome.\n",
			convCtx.LastCheckInDate))
	}

	return b.String()
}

// topicOf maps a user message to a coarse topic label for the context ring.
func topicOf(message string) string {
	lower := strings.ToLower(message)
	topics := []struct {
		label string
		words []string
	}{
		{"sleep", []string{"sleep", "tired", "insomnia", "nap", "rest"}},
		{"stress", []string{"stress", "overwhelm", "anxious", "anxiety", "pressure"}},
		{"habits", []string{"habit", "streak", "routine", "meditat", "exercise"}},
		{"gratitude", []string{"grateful", "gratitude", "thankful"}},
		{"mood", []string{"mood", "feel", "happy", "sad", "angry"}},
	}
	for _, t := range topics {
		for _, w := range t.words {
			if strings.Contains(lower, w) {
				return t.label
			}
		}
	}
	return "general"
}
