package dto

// EventActionRequest is the action-dispatched body of POST /api/events.
// Fields beyond Action are read per action.
type EventActionRequest struct {
	Action  string `json:"action"`
	EventID uint   `json:"event_id"`

	// host identity, email match for compatibility with older clients
	InvitedBy string `json:"invited_by"`

	// viewer email for the getEvent page gate
	Email string `json:"email"`

	Title            string `json:"title"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	Location         string `json:"location"`
	EventType        string `json:"event_type"`
	Details          string `json:"details"`
	DecisionMode     string `json:"decision_mode"`
	Punishment       string `json:"punishment"`
	CustomPunishment string `json:"custom_punishment"`
	Access           string `json:"access"`
	PageVisibility   string `json:"page_visibility"`
}

type CreateEventRequest struct {
	Title            string
	Date             string
	Time             string
	Location         string
	EventType        string
	Details          string
	DecisionMode     string
	Punishment       string
	CustomPunishment string
	Access           string
	PageVisibility   string
}

// UpdateEventRequest carries PATCH-style optional fields; nil means untouched.
type UpdateEventRequest struct {
	Title            *string `json:"title"`
	Date             *string `json:"date"`
	Time             *string `json:"time"`
	Location         *string `json:"location"`
	EventType        *string `json:"event_type"`
	Details          *string `json:"details"`
	DecisionMode     *string `json:"decision_mode"`
	Punishment       *string `json:"punishment"`
	CustomPunishment *string `json:"custom_punishment"`
	Access           *string `json:"access"`
	PageVisibility   *string `json:"page_visibility"`
}
