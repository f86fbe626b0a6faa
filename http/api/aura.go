package api

import (
	"fmt"

	"github.com/livingaura/aura/aura"
)

// NunchiAHI is the simulated load and its stability score.
type NunchiAHI struct {
	LoadPercent float64 `json:"load_percent" jsonschema:"required"`
	NunchiScore float64 `json:"nunchi_score" jsonschema:"required,minimum=0,maximum=100"`
}

// AuraMetrics is a snapshot of the simulated server metrics.
type AuraMetrics struct {
	Timestamp        int64     `json:"timestamp" jsonschema:"required" format:"int64"`
	NunchiAHI        NunchiAHI `json:"Nunchi_AHI" jsonschema:"required"`
	JeongActiveUsers int       `json:"Jeong_Active_Users" jsonschema:"required,minimum=0"`
	AuraStatus       string    `json:"Aura_Status" jsonschema:"required,enum=Resonant,enum=Seeking Harmony"`
}

// Unmarshal converts a sample and the number of active callers to AuraMetrics.
func (m *AuraMetrics) Unmarshal(s aura.Sample, activeCallers int) {
	m.Timestamp = s.Time.Unix()
	m.NunchiAHI.LoadPercent = s.Load
	m.NunchiAHI.NunchiScore = s.Score
	m.JeongActiveUsers = activeCallers
	m.AuraStatus = string(s.Status())
}

// AuraQuery are the query parameters for a list of snapshots.
type AuraQuery struct {
	Samples int `query:"samples" validate:"min=1,max=100"`
}

// AuraSnapshots is a list of snapshots together with the load average
// over the sliding window. The average is only valid if HasAverage is true.
type AuraSnapshots struct {
	Window     int64         `json:"window_sec" format:"int64"`
	HasAverage bool          `json:"has_average"`
	Average    float64       `json:"load_percent_average"`
	Snapshots  []AuraMetrics `json:"snapshots" jsonschema:"required"`
}

// ConnectResponse is the response for a connecting caller.
type ConnectResponse struct {
	Message string `json:"message" jsonschema:"required"`
}

// Unmarshal sets the message for the caller with the given ID.
func (r *ConnectResponse) Unmarshal(id string) {
	r.Message = fmt.Sprintf("User %s connected. Jeong score updated.", id)
}

// Caller is an active caller.
type Caller struct {
	ID        string `json:"id" jsonschema:"required"`
	FirstSeen int64  `json:"first_seen_at" jsonschema:"required" format:"int64"`
}

// Callers is the list of all active callers.
type Callers struct {
	Count   int      `json:"count" jsonschema:"required,minimum=0"`
	Callers []Caller `json:"callers" jsonschema:"required"`
}

// Unmarshal converts a list of aura.Caller to Callers.
func (c *Callers) Unmarshal(list []aura.Caller) {
	c.Count = len(list)
	c.Callers = make([]Caller, 0, len(list))

	for _, caller := range list {
		c.Callers = append(c.Callers, Caller{
			ID:        caller.ID,
			FirstSeen: caller.FirstSeen.Unix(),
		})
	}
}
