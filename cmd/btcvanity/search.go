package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Amr-9/btcvanity/internal/job"
	"github.com/Amr-9/btcvanity/internal/ui"
	"github.com/Amr-9/btcvanity/pkg/generator/bitcoin"
)

const updateRate = 100 * time.Millisecond

type searchFlags struct {
	suffix      string
	addressType string
	network     string
	output      string
}

func newSearchCmd(flags *rootFlags) *cobra.Command {
	sf := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search from the terminal",
		Long: `Search for a vanity address in the terminal. Without --suffix the
target is asked for interactively and the search can be repeated.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Keep job logs out of the progress line unless asked for
			if flags.logLevel == "" {
				flags.logLevel = "warn"
			}
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if sf.output == "" {
				sf.output = cfg.Output.WalletFile
			}

			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			controller := job.NewController(newSearcher(cfg), job.WithLogger(log.Named("job")))
			out := cmd.OutOrStdout()
			console := ui.NewConsole(out)
			prompter := ui.NewPrompter(cmd.InOrStdin(), out)

			interactive := sf.suffix == ""
			if interactive {
				console.ClearScreen()
				console.PrintWelcomeBanner(version)
			}

			for {
				req := job.Request{Suffix: sf.suffix, AddressType: sf.addressType, Network: sf.network}
				if interactive {
					req, err = prompter.PromptRequest()
					if errors.Is(err, io.EOF) {
						return nil
					}
					if err != nil {
						return err
					}
				}

				snap, err := runSearch(cmd.Context(), controller, console, req, sf.output)
				if err != nil {
					return err
				}
				if snap.Status == job.StatusFound && snap.Match != nil {
					if err := saveResult(sf.output, snap); err != nil {
						fmt.Fprintf(out, "    %s⚠ Save failed: %v%s\n", ui.ColorYellow, err, ui.ColorReset)
					}
				}

				if !interactive || !prompter.AskToContinue() {
					if snap.Status == job.StatusErrored {
						return errors.New(snap.Error)
					}
					return nil
				}
				fmt.Fprintln(out)
			}
		},
	}

	cmd.Flags().StringVarP(&sf.suffix, "suffix", "s", "", "Address suffix to match (case-insensitive)")
	cmd.Flags().StringVarP(&sf.addressType, "type", "t", "p2tr", "Address type: p2tr, p2wpkh or p2pkh")
	cmd.Flags().StringVarP(&sf.network, "network", "n", "bitcoin", "Network: bitcoin or testnet")
	cmd.Flags().StringVarP(&sf.output, "output", "o", "", "File the found keys are appended to (default from config, wallet.txt)")
	return cmd
}

// runSearch drives one job to a terminal state, rendering progress until it
// ends. SIGINT or SIGTERM stop the job; the final snapshot is returned.
func runSearch(ctx context.Context, controller *job.Controller, console *ui.Console, req job.Request, outputFile string) (job.Snapshot, error) {
	if _, err := controller.Start(req); err != nil {
		return job.Snapshot{}, err
	}

	snap := controller.Status()
	cfg, err := job.ParseRequest(*snap.Config)
	if err != nil {
		return job.Snapshot{}, err
	}
	difficulty := bitcoin.Difficulty(cfg.Suffix, cfg.Variant)
	console.PrintSearchInfo(cfg, difficulty)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ticker := time.NewTicker(updateRate)
	defer ticker.Stop()

	done := make(chan struct{})
	go func() {
		_ = controller.Wait(context.Background())
		close(done)
	}()

	cancelled := ctx.Done()
	frame := 0
	for {
		select {
		case <-ticker.C:
			console.PrintProgress(controller.Status(), difficulty, frame)
			frame++

		case <-sigChan:
			_ = controller.Stop()

		case <-cancelled:
			cancelled = nil
			_ = controller.Stop()

		case <-done:
			snap := controller.Status()
			console.ClearLine()
			switch snap.Status {
			case job.StatusFound:
				console.PrintSuccess(*snap.Match, snap.Attempts, outputFile)
			case job.StatusStopped:
				console.PrintStopped(snap)
			default:
				console.PrintError(errors.New(snap.Error))
			}
			return snap, nil
		}
	}
}
