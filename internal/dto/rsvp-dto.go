package dto

// RSVPActionRequest is the action-dispatched body of POST /api/rsvp.
type RSVPActionRequest struct {
	Action        string   `json:"action"`
	EventID       uint     `json:"event_id"`
	ParticipantID uint     `json:"participant_id"`
	InvitedBy     string   `json:"invited_by"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	WillAttend    *bool    `json:"will_attend"`
	Message       string   `json:"message"`
	Token         string   `json:"token"`
	Emails        []string `json:"emails"`
	ExpiresInDays int      `json:"expires_in_days"`
}

type RSVPRequest struct {
	Name       string
	Email      string
	WillAttend bool
	Message    string
	Token      string
}

type AddParticipantRequest struct {
	Name    string
	Email   string
	Message string
}

// Actor is whoever is asking to see an event page.
type Actor struct {
	HostID string
	Email  string
}
