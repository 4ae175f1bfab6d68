package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mcoot/leelawheel/internal/api/response"
	"github.com/mcoot/leelawheel/internal/model"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#cba6f7")).
			Padding(1, 2).
			Width(60)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f9e2af"))
	quoteStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#cdd6f4"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	openStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#94e2d5"))
	lockStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f38ba8"))
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return &Output{format: format, w: os.Stdout}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == OutputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == OutputJSON {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == OutputJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.DrawResponse:
		fmt.Fprintln(o.w, renderCard(v.Player, v.Result, v.Lock))
		fmt.Fprintf(o.w, "Card: %s\n", v.CardFilename)
	case response.StatusResponse:
		o.printStatus(v)
	case response.HistoryResponse:
		o.printHistory(v)
	case response.ConfigResponse:
		o.printConfig(v)
	case response.HealthResponse:
		o.printHealth(v)
	case response.Lock:
		fmt.Fprintln(o.w, renderLock(v))
	case TokenHashResult:
		fmt.Fprintf(o.w, "Token: %s\n", v.Token)
		fmt.Fprintf(o.w, "ADMIN_TOKEN_HASH=%s\n", v.Hash)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// renderCard draws a result as a bordered card
func renderCard(p response.Player, r response.Result, l response.Lock) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", p.FirstName, p.LastName)))
	b.WriteString("\n\n")
	b.WriteString(quoteStyle.Render(r.Quote.Text))
	if r.Quote.Translated != "" {
		b.WriteString("\n")
		b.WriteString(quoteStyle.Render(r.Quote.Translated))
	}
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s  #%d", r.Quote.DateEN, r.Quote.Index)))
	b.WriteString("\n")
	if r.ImagePath != "" {
		b.WriteString(mutedStyle.Render("Image: " + r.ImagePath))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("Played: " + r.PlayedAtEN))
	if r.Bypass {
		b.WriteString(mutedStyle.Render(" (bypass)"))
	}
	b.WriteString("\n")
	b.WriteString(renderLock(l))
	return cardStyle.Render(b.String())
}

func renderLock(l response.Lock) string {
	if l.State == string(model.LockOpen) {
		return openStyle.Render("Open")
	}
	return lockStyle.Render(fmt.Sprintf("Locked for %s", l.Remaining))
}

func (o *Output) printStatus(s response.StatusResponse) {
	if s.Restored != nil {
		fmt.Fprintln(o.w, renderCard(s.Player, *s.Restored, s.Lock))
		return
	}
	fmt.Fprintf(o.w, "Player: %s %s (%s)\n", s.Player.FirstName, s.Player.LastName, s.Player.Key)
	if s.LastPlay != nil {
		fmt.Fprintf(o.w, "Last play: %s\n", s.LastPlay.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintln(o.w, renderLock(s.Lock))
}

func (o *Output) printHistory(h response.HistoryResponse) {
	fmt.Fprintf(o.w, "Player: %s %s (%s)\n", h.Player.FirstName, h.Player.LastName, h.Player.Key)
	if len(h.Entries) == 0 {
		fmt.Fprintln(o.w, "No recent quotes")
		return
	}
	fmt.Fprintf(o.w, "Recent quotes (%d):\n", len(h.Entries))
	for _, e := range h.Entries {
		fmt.Fprintf(o.w, "  - #%d at %s\n", e.QuoteIndex, e.ShownAt.Format("2006-01-02 15:04:05"))
	}
}

func (o *Output) printConfig(c response.ConfigResponse) {
	fmt.Fprintf(o.w, "Cooldown: %d minutes\n", c.CooldownMinutes)
	fmt.Fprintf(o.w, "Daily lock: %s\n", yesNo(c.DailyLock))
	fmt.Fprintf(o.w, "Testing mode: %s\n", yesNo(c.TestingMode))
	fmt.Fprintf(o.w, "Dev bypass: %s\n", yesNo(c.DevBypass))
	fmt.Fprintf(o.w, "API key set: %s\n", yesNo(c.APIKeySet))
}

func (o *Output) printHealth(h response.HealthResponse) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	fmt.Fprintf(o.w, "Catalog ready: %s (%d quotes, %d images)\n", yesNo(h.CatalogReady), h.Quotes, h.Images)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
