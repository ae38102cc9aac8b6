// Package cpu implements the vanity search loop on a single goroutine.
package cpu

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/Amr-9/btcvanity/pkg/generator"
	"github.com/Amr-9/btcvanity/pkg/generator/bitcoin"
)

const (
	// DefaultBatchSize is the number of iterations between cancellation checks.
	DefaultBatchSize = 10_000
	// DefaultReportInterval is the number of attempts between progress messages.
	DefaultReportInterval = 5_000

	messageBuffer = 16
)

// MessageKind identifies a message sent from the search loop to its owner.
type MessageKind int

const (
	MessageProgress MessageKind = iota + 1 // Attempts so far
	MessageFound                           // Result holds the match
	MessageErrored                         // Err holds the failure
)

// String returns the message kind name.
func (k MessageKind) String() string {
	switch k {
	case MessageProgress:
		return "progress"
	case MessageFound:
		return "found"
	case MessageErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Message is a copy-on-send report from the search loop. Attempts is the
// loop's private counter at the time of sending.
type Message struct {
	Kind     MessageKind
	Attempts uint64
	Result   *generator.Result
	Err      error
}

// Searcher runs the generate-derive-match loop.
type Searcher struct {
	batchSize      int
	reportInterval uint64
	entropy        io.Reader
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithBatchSize sets the number of iterations between cancellation checks.
func WithBatchSize(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithReportInterval sets the number of attempts between progress messages.
func WithReportInterval(n uint64) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.reportInterval = n
		}
	}
}

// WithEntropy replaces crypto/rand as the private key source.
func WithEntropy(r io.Reader) Option {
	return func(s *Searcher) {
		s.entropy = r
	}
}

// NewSearcher creates a search loop with the default batch and report sizes.
func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{
		batchSize:      DefaultBatchSize,
		reportInterval: DefaultReportInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs the search loop on a new goroutine. The returned channel is
// closed when the loop exits.
func (s *Searcher) Start(ctx context.Context, cfg generator.SearchConfig) <-chan Message {
	out := make(chan Message, messageBuffer)

	go func() {
		defer close(out)
		s.Run(ctx, cfg, out)
	}()

	return out
}

// Run executes the search loop until a match, a failure, or cancellation of
// ctx. Cancellation is only checked between batches. Every exit path sends
// exactly one final message: Found, Errored, or a forced Progress on stop.
// A panic is reported as Errored carrying the attempts counted so far.
// Run does not close out.
func (s *Searcher) Run(ctx context.Context, cfg generator.SearchConfig, out chan<- Message) {
	startTime := time.Now()

	deriver, err := bitcoin.NewDeriver(cfg.Variant, cfg.Network)
	if err != nil {
		out <- Message{Kind: MessageErrored, Err: err}
		return
	}
	matcher := bitcoin.NewSuffixMatcher(cfg.Suffix)

	var attempts, reported uint64
	defer func() {
		if r := recover(); r != nil {
			out <- Message{Kind: MessageErrored, Attempts: attempts, Err: fmt.Errorf("search loop panicked: %v", r)}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			out <- Message{Kind: MessageProgress, Attempts: attempts}
			return
		default:
		}

		for i := 0; i < s.batchSize; i++ {
			privKey, pubKey, err := bitcoin.GenerateKeyPair(s.entropy)
			if err != nil {
				out <- Message{Kind: MessageErrored, Attempts: attempts, Err: err}
				return
			}

			address, err := deriver.Address(pubKey)
			if err != nil {
				out <- Message{Kind: MessageErrored, Attempts: attempts, Err: err}
				return
			}

			attempts++

			if matcher.Matches(address) {
				wif, err := bitcoin.PrivateKeyToWIF(privKey, cfg.Network)
				if err != nil {
					out <- Message{Kind: MessageErrored, Attempts: attempts, Err: err}
					return
				}

				out <- Message{
					Kind:     MessageFound,
					Attempts: attempts,
					Result: &generator.Result{
						Address:       address,
						PrivateKeyWIF: wif,
						PrivateKeyHex: hex.EncodeToString(privKey.Serialize()),
						PublicKeyHex:  hex.EncodeToString(pubKey.SerializeCompressed()),
						Duration:      time.Since(startTime),
						Attempts:      attempts,
					},
				}
				return
			}

			if attempts-reported >= s.reportInterval {
				out <- Message{Kind: MessageProgress, Attempts: attempts}
				reported = attempts
			}
		}
	}
}
