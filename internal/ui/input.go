package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Amr-9/btcvanity/internal/job"
	"github.com/Amr-9/btcvanity/pkg/generator"
	"github.com/Amr-9/btcvanity/pkg/generator/bitcoin"
)

// Prompter asks the user for a search target on an interactive terminal.
type Prompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewPrompter reads answers from r and writes prompts to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{r: bufio.NewReader(r), w: w}
}

// PromptRequest walks through address type, network and suffix. It only
// fails when input ends.
func (p *Prompter) PromptRequest() (job.Request, error) {
	variant, err := p.SelectAddressType()
	if err != nil {
		return job.Request{}, err
	}
	network, err := p.SelectNetwork()
	if err != nil {
		return job.Request{}, err
	}
	suffix, err := p.GetSuffix(variant)
	if err != nil {
		return job.Request{}, err
	}
	return job.Request{Suffix: suffix, AddressType: variant.String(), Network: network.String()}, nil
}

// SelectAddressType offers the three address variants; Taproot is the default.
func (p *Prompter) SelectAddressType() (generator.AddressVariant, error) {
	fmt.Fprintf(p.w, "    %s🏷  ADDRESS TYPE%s\n", ColorPurple+ColorBold, ColorReset)
	fmt.Fprintf(p.w, "    %s[1]%s Taproot (P2TR) %s- bc1p..., Bech32m%s\n", ColorCyan, ColorReset, ColorDim, ColorReset)
	fmt.Fprintf(p.w, "    %s[2]%s Native SegWit (P2WPKH) %s- bc1q..., Bech32%s\n", ColorCyan, ColorReset, ColorDim, ColorReset)
	fmt.Fprintf(p.w, "    %s[3]%s Legacy (P2PKH) %s- 1..., Base58%s\n", ColorCyan, ColorReset, ColorDim, ColorReset)

	choice, err := p.ask("")
	if err != nil {
		return generator.VariantUnknown, err
	}

	variant := generator.P2TR
	switch choice {
	case "2":
		variant = generator.P2WPKH
	case "3":
		variant = generator.P2PKH
	}
	fmt.Fprintf(p.w, "    %s✓ %s Selected%s\n\n", ColorGreen, variant.Description(), ColorReset)
	return variant, nil
}

// SelectNetwork offers mainnet and testnet; mainnet is the default.
func (p *Prompter) SelectNetwork() (generator.Network, error) {
	fmt.Fprintf(p.w, "    %s🌐 SELECT NETWORK%s\n", ColorPurple+ColorBold, ColorReset)
	fmt.Fprintf(p.w, "    %s[1]%s ₿ Bitcoin mainnet\n", ColorCyan, ColorReset)
	fmt.Fprintf(p.w, "    %s[2]%s ₿ Bitcoin testnet %s- tb1..., m/n...%s\n", ColorCyan, ColorReset, ColorDim, ColorReset)

	choice, err := p.ask("")
	if err != nil {
		return generator.NetworkUnknown, err
	}

	network := generator.Mainnet
	if choice == "2" {
		network = generator.Testnet
	}
	fmt.Fprintf(p.w, "    %s✓ %s Selected%s\n\n", ColorGreen, network, ColorReset)
	return network, nil
}

// GetSuffix prompts until the user enters a suffix the variant can produce.
func (p *Prompter) GetSuffix(variant generator.AddressVariant) (string, error) {
	fmt.Fprintf(p.w, "    %s🎯 TARGET PATTERN%s\n", ColorPurple+ColorBold, ColorReset)
	for {
		suffix, err := p.ask(fmt.Sprintf("    %sSuffix%s (...xxx): ", ColorCyan, ColorReset))
		if err != nil {
			return "", err
		}

		switch err := bitcoin.ValidateSuffix(suffix, variant); {
		case err == nil:
			return suffix, nil
		case suffix == "":
			fmt.Fprintf(p.w, "    %s✗ Must specify a suffix!%s\n", ColorRed, ColorReset)
		case bitcoin.IsBase58Variant(variant):
			fmt.Fprintf(p.w, "    %s⚠ Invalid Base58 character(s): %s%s\n", ColorRed, string(bitcoin.InvalidChars(suffix, variant)), ColorReset)
			fmt.Fprintf(p.w, "    %s  (Not allowed: 0, and any symbol)%s\n", ColorDim, ColorReset)
		default:
			fmt.Fprintf(p.w, "    %s⚠ Invalid bech32 character(s): %s%s\n", ColorRed, string(bitcoin.InvalidChars(suffix, variant)), ColorReset)
			fmt.Fprintf(p.w, "    %s  (Not allowed: 1, b, i, o)%s\n", ColorDim, ColorReset)
		}
	}
}

// AskToContinue prompts user to continue or exit
func (p *Prompter) AskToContinue() bool {
	fmt.Fprintf(p.w, "\n    %s[Enter]%s Continue searching  │  %s[Q]%s Exit\n", ColorGreen, ColorReset, ColorRed, ColorReset)
	input, err := p.ask("")
	if err != nil {
		return false
	}
	input = strings.ToLower(input)
	return input != "q" && input != "quit" && input != "exit"
}

// ask prints prompt (or the default arrow) and reads one trimmed line.
func (p *Prompter) ask(prompt string) (string, error) {
	if prompt == "" {
		prompt = fmt.Sprintf("\n    %s→%s ", ColorGreen, ColorReset)
	}
	fmt.Fprint(p.w, prompt)

	line, err := p.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
