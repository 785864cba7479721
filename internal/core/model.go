package core

import (
	"time"
)

// IncomingMessage is the unread message pulled from the mailbox
type IncomingMessage struct {
	SenderAddress string
	Subject       string
	Body          string

	// Informational only, used for logging
	MessageID string
	UID       uint32
}

// ClassificationResult represents the structured response of the classification call
type ClassificationResult struct {
	IsTechnical            bool   `json:"is_technical"`
	SimpleReplyDraft       string `json:"simple_reply_draft"`
	NonTechnicalReplyDraft string `json:"non_technical_reply_draft"`
	RequestMeeting         bool   `json:"request_meeting"`
	MeetingSuggestionDraft string `json:"meeting_suggestion_draft"`

	ModelUsed    string    `json:"-"`
	ProcessingID string    `json:"-"`
	AnalyzedAt   time.Time `json:"-"`
}

// RunState is a step of a single workflow run
type RunState string

const (
	StateStart                RunState = "START"
	StateFetched              RunState = "FETCHED"
	StateClassified           RunState = "CLASSIFIED"
	StateClassificationFailed RunState = "CLASSIFICATION_FAILED"
	StateReplied              RunState = "REPLIED"
	StateDone                 RunState = "DONE"
)

// RunReport summarizes what a workflow run did
type RunReport struct {
	RunID  string
	States []RunState

	// Zero values when the run ended before a message was fetched
	Recipient            string
	Subject              string
	Reply                string
	ClassificationFailed bool
	Sent                 bool
	SendError            error
}

// Final returns the last state the run reached
func (r *RunReport) Final() RunState {
	if len(r.States) == 0 {
		return StateStart
	}
	return r.States[len(r.States)-1]
}

func (r *RunReport) enter(s RunState) {
	r.States = append(r.States, s)
}
