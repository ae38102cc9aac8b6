package ui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/Amr-9/btcvanity/internal/job"
	"github.com/Amr-9/btcvanity/pkg/generator"
	"github.com/Amr-9/btcvanity/pkg/generator/bitcoin"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
	ColorPurple = "\033[35m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"
	ColorOrange = "\033[38;5;208m"
)

// Console renders the interactive search to a terminal.
type Console struct {
	w io.Writer
}

// NewConsole creates a console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// ClearScreen clears the terminal
func (c *Console) ClearScreen() {
	fmt.Fprint(c.w, "\033[H\033[2J")
}

// PrintWelcomeBanner shows the welcome screen
func (c *Console) PrintWelcomeBanner(version string) {
	fmt.Fprintln(c.w)
	fmt.Fprintf(c.w, "%s%s", ColorOrange, ColorBold)
	fmt.Fprintln(c.w, "  ╔══════════════════════════════════════════════════════════╗")
	fmt.Fprintln(c.w, "  ║   ₿  B T C V A N I T Y                                   ║")
	fmt.Fprintln(c.w, "  ╠══════════════════════════════════════════════════════════╣")
	fmt.Fprintf(c.w, "  ║%s   Bitcoin Suffix Search %s• v%-8s%s                     ║\n", ColorYellow, ColorDim, version, ColorOrange+ColorBold)
	fmt.Fprintln(c.w, "  ╚══════════════════════════════════════════════════════════╝")
	fmt.Fprint(c.w, ColorReset)
	fmt.Fprintln(c.w)
}

// PrintSearchInfo displays the search target and its expected attempts
func (c *Console) PrintSearchInfo(cfg generator.SearchConfig, difficulty uint64) {
	prefix := bitcoin.AddressPrefix(cfg.Variant, cfg.Network)

	fmt.Fprintf(c.w, "\n    %s🚀 SEARCHING%s", ColorGreen+ColorBold, ColorReset)
	fmt.Fprintf(c.w, " %s%s%s%s...%s%s%s%s", ColorBold, ColorCyan, prefix, ColorDim, ColorCyan, ColorBold, cfg.Suffix, ColorReset)
	fmt.Fprintf(c.w, " %s%s · %s%s", ColorDim, cfg.Variant.Description(), cfg.Network, ColorReset)
	fmt.Fprintf(c.w, " %s(1/%s)%s\n\n", ColorDim, FormatNumber(difficulty), ColorReset)
}

// PrintProgress shows animated progress bar
func (c *Console) PrintProgress(snap job.Snapshot, difficulty uint64, frame int) {
	spinners := []string{"◐", "◓", "◑", "◒"}
	spinner := spinners[frame%len(spinners)]

	diff := float64(difficulty)
	if diff == 0 {
		diff = 1
	}

	// Chance of having found a match by now, not a completion ratio
	ratio := float64(snap.Attempts) / diff
	progress := 1.0 - math.Pow(0.5, 2.0*ratio)

	barWidth := 40
	filled := int(progress * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("▓", filled) + strings.Repeat("░", barWidth-filled)

	fmt.Fprintf(c.w, "\r    %s%s%s %s%s%s %s%s%s │ %s%s%s │ %s",
		ColorCyan, spinner, ColorReset,
		ColorDim, bar, ColorReset,
		ColorGreen+ColorBold, FormatHashRate(float64(snap.RatePerSecond)), ColorReset,
		ColorYellow, FormatNumber(snap.Attempts), ColorReset,
		FormatDuration(snap.Elapsed))
}

// PrintSuccess shows the found address and its keys
func (c *Console) PrintSuccess(m job.Match, attempts uint64, outputFile string) {
	fmt.Fprintf(c.w, "\n    %s%s╔══════════════════════════════════════════════════════════╗%s\n", ColorGreen, ColorBold, ColorReset)
	fmt.Fprintf(c.w, "    %s%s║               ✨ ADDRESS FOUND! ✨                       ║%s\n", ColorGreen, ColorBold, ColorReset)
	fmt.Fprintf(c.w, "    %s%s╚══════════════════════════════════════════════════════════╝%s\n\n", ColorGreen, ColorBold, ColorReset)

	fmt.Fprintf(c.w, "    %s₿ BITCOIN ADDRESS%s\n\n", ColorOrange+ColorBold, ColorReset)
	fmt.Fprintf(c.w, "       %s%s%s%s\n\n", ColorGreen, ColorBold, m.Address, ColorReset)

	fmt.Fprintf(c.w, "    %s🔑 PRIVATE KEY (WIF)%s\n", ColorPurple+ColorBold, ColorReset)
	fmt.Fprintf(c.w, "       %s%s%s\n", ColorYellow, m.PrivateKeyWIF, ColorReset)
	fmt.Fprintf(c.w, "    %s   hex%s %s\n", ColorDim, ColorReset, m.PrivateKeyHex)
	fmt.Fprintf(c.w, "    %s   pub%s %s\n\n", ColorDim, ColorReset, m.PublicKeyHex)

	fmt.Fprintf(c.w, "    %s⏱   %s%s   %s│   %s📊  %s%s   %s│   %s💾  %s%s%s\n\n",
		ColorCyan, ColorReset+ColorBold, FormatDuration(m.Duration),
		ColorDim,
		ColorPurple, ColorReset+ColorBold, FormatNumber(attempts),
		ColorDim,
		ColorYellow, ColorReset+ColorBold, outputFile,
		ColorReset)
	fmt.Fprintf(c.w, "    %s%s⚠  KEEP YOUR PRIVATE KEY SECRET!%s\n", ColorRed, ColorBold, ColorReset)
}

// PrintStopped reports a search ended by the user
func (c *Console) PrintStopped(snap job.Snapshot) {
	fmt.Fprint(c.w, "\n\n")
	fmt.Fprintf(c.w, "    %s⚠ Cancelled%s │ %s attempts │ %s\n",
		ColorYellow+ColorBold, ColorReset,
		FormatNumber(snap.Attempts),
		FormatDuration(snap.Elapsed))
}

// PrintError reports a failure
func (c *Console) PrintError(err error) {
	fmt.Fprintf(c.w, "\n    %s✗ Error: %v%s\n", ColorRed, err, ColorReset)
}

// ClearLine clears the current line
func (c *Console) ClearLine() {
	fmt.Fprint(c.w, "\r"+strings.Repeat(" ", 94)+"\r")
}

// FormatHashRate formats hash rate nicely
func FormatHashRate(rate float64) string {
	if rate >= 1000000 {
		return fmt.Sprintf("%.1fM/s", rate/1000000)
	}
	if rate >= 1000 {
		return fmt.Sprintf("%.1fK/s", rate/1000)
	}
	return fmt.Sprintf("%.0f/s", rate)
}

// FormatNumber adds commas to large numbers
func FormatNumber(n uint64) string {
	s := fmt.Sprintf("%d", n)
	if n < 1000 {
		return s
	}
	result := make([]byte, 0, len(s)+(len(s)-1)/3)
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

// FormatDuration formats duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}
