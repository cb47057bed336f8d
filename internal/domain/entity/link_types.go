package entity

import "time"

// LinkStatus holds the outcome of probing one integration URL.
type LinkStatus struct {
	URL        LinkURL       `json:"url"`
	Reachable  bool          `json:"reachable"`
	StatusCode int           `json:"statusCode,omitempty"`
	Latency    time.Duration `json:"latency"`
	Reason     string        `json:"reason,omitempty"`
}
