package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Amr-9/btcvanity/internal/job"
	"github.com/Amr-9/btcvanity/internal/ui"
)

// saveResult appends the match to path, creating it owner-readable only.
// Earlier matches in the file are kept.
func saveResult(path string, snap job.Snapshot) error {
	m := snap.Match
	if m == nil {
		return fmt.Errorf("job %s has no match", snap.JobID)
	}

	var addressType, network string
	if snap.Config != nil {
		addressType, network = snap.Config.AddressType, snap.Config.Network
	}

	content := fmt.Sprintf(`Bitcoin Vanity Address
=======================

Address:         %s
Type:            %s (%s)
Private Key WIF: %s
Private Key Hex: %s
Public Key Hex:  %s

Statistics:
  Time:     %s
  Attempts: %s

Generated: %s

⚠️ WARNING: Keep this private key secret and secure!

`, m.Address, addressType, network, m.PrivateKeyWIF, m.PrivateKeyHex, m.PublicKeyHex,
		ui.FormatDuration(m.Duration), ui.FormatNumber(snap.Attempts), time.Now().Format("2006-01-02 15:04:05"))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("open wallet file: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("write wallet file: %w", err)
	}
	return f.Close()
}
