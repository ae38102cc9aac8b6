package api

import (
	"github.com/Amr-9/btcvanity/internal/job"
)

type okResponse struct {
	OK    bool   `json:"ok"`
	JobID string `json:"jobId,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type matchResponse struct {
	Address       string `json:"address"`
	PrivateKeyWIF string `json:"privateKeyWif"`
	PrivateKeyHex string `json:"privateKeyHex"`
	PublicKeyHex  string `json:"publicKeyHex"`
	DurationMs    int64  `json:"durationMs"`
}

// statusResponse mirrors job.Snapshot on the wire. Absent values are null,
// not omitted, so pollers can clear stale fields.
type statusResponse struct {
	JobID         string         `json:"jobId"`
	Status        string         `json:"status"`
	Attempts      uint64         `json:"attempts"`
	RatePerSecond uint64         `json:"ratePerSecond"`
	ElapsedMs     int64          `json:"elapsedMs"`
	StartedAt     *int64         `json:"startedAt"` // unix milliseconds
	Config        *job.Request   `json:"config"`
	Match         *matchResponse `json:"match"`
	Error         *string        `json:"error"`
}

func newStatusResponse(s job.Snapshot) statusResponse {
	resp := statusResponse{
		JobID:         s.JobID,
		Status:        s.Status.String(),
		Attempts:      s.Attempts,
		RatePerSecond: s.RatePerSecond,
		ElapsedMs:     s.Elapsed.Milliseconds(),
		Config:        s.Config,
	}
	if !s.StartedAt.IsZero() {
		ms := s.StartedAt.UnixMilli()
		resp.StartedAt = &ms
	}
	if s.Match != nil {
		resp.Match = &matchResponse{
			Address:       s.Match.Address,
			PrivateKeyWIF: s.Match.PrivateKeyWIF,
			PrivateKeyHex: s.Match.PrivateKeyHex,
			PublicKeyHex:  s.Match.PublicKeyHex,
			DurationMs:    s.Match.Duration.Milliseconds(),
		}
	}
	if s.Error != "" {
		msg := s.Error
		resp.Error = &msg
	}
	return resp
}
