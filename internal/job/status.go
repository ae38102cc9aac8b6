package job

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Amr-9/btcvanity/pkg/generator"
	"github.com/Amr-9/btcvanity/pkg/generator/bitcoin"
)

// Status is the lifecycle state of the controller's job.
type Status int

const (
	StatusIdle     Status = iota // No job has been started
	StatusRunning                // Search loop active
	StatusStopping               // Stop requested, loop not yet exited
	StatusStopped                // Loop exited after a stop request
	StatusFound                  // Match recorded
	StatusErrored                // Loop failed
)

// String returns the wire name of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusStopping:
		return "stopping"
	case StatusStopped:
		return "stopped"
	case StatusFound:
		return "found"
	case StatusErrored:
		return "error"
	default:
		return "unknown"
	}
}

// Active reports whether a search loop may still be running.
func (s Status) Active() bool {
	return s == StatusRunning || s == StatusStopping
}

// Terminal reports whether the job has finished.
func (s Status) Terminal() bool {
	return s == StatusStopped || s == StatusFound || s == StatusErrored
}

var (
	// ErrConflict is the class of errors for requests that do not fit the
	// current state.
	ErrConflict = errors.New("conflict")
	// ErrAlreadyRunning is returned by Start while a job is active.
	ErrAlreadyRunning = fmt.Errorf("%w: a job is already running", ErrConflict)
	// ErrNotRunning is returned by Stop when no job is running.
	ErrNotRunning = fmt.Errorf("%w: no running job", ErrConflict)

	errUnexpectedExit = errors.New("search loop exited unexpectedly")
)

// ValidationError rejects a start request before any work begins.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Request is the raw start request as received from a caller.
type Request struct {
	Suffix      string `json:"suffix" yaml:"suffix"`
	AddressType string `json:"addressType" yaml:"address_type"`
	Network     string `json:"network" yaml:"network"`
}

const (
	defaultAddressType = "p2tr"
	defaultNetwork     = "bitcoin"
)

// Normalize trims the suffix, lowercases the enums and fills in the
// defaults (p2tr on bitcoin) for empty fields.
func (r Request) Normalize() Request {
	out := Request{
		Suffix:      strings.TrimSpace(r.Suffix),
		AddressType: strings.ToLower(strings.TrimSpace(r.AddressType)),
		Network:     strings.ToLower(strings.TrimSpace(r.Network)),
	}
	if out.AddressType == "" {
		out.AddressType = defaultAddressType
	}
	if out.Network == "" {
		out.Network = defaultNetwork
	}
	return out
}

// ParseRequest normalizes and validates a request into a search config.
// Any failure is a *ValidationError naming the offending field.
func ParseRequest(r Request) (generator.SearchConfig, error) {
	r = r.Normalize()

	variant, err := generator.ParseAddressVariant(r.AddressType)
	if err != nil {
		return generator.SearchConfig{}, &ValidationError{Field: "addressType", Err: err}
	}

	network, err := generator.ParseNetwork(r.Network)
	if err != nil {
		return generator.SearchConfig{}, &ValidationError{Field: "network", Err: err}
	}

	if err := bitcoin.ValidateSuffix(r.Suffix, variant); err != nil {
		return generator.SearchConfig{}, &ValidationError{Field: "suffix", Err: err}
	}

	return generator.SearchConfig{
		Suffix:  r.Suffix,
		Variant: variant,
		Network: network,
	}, nil
}
