package dto

// Queue payloads published by the services and consumed by the mail worker.
// Keys on the wire: user.verify_email, user.reset_password, event.invitation,
// event.reminder, event.update, rsvp.confirmation.

type VerifyEmailEvent struct {
	UserID    uint   `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

type ResetPasswordEvent struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

type InvitationEvent struct {
	EventID    uint   `json:"event_id"`
	EventTitle string `json:"event_title"`
	HostEmail  string `json:"host_email"`
	Email      string `json:"email"`
	Token      string `json:"token"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Location   string `json:"location"`
}

type RSVPConfirmationEvent struct {
	EventID    uint   `json:"event_id"`
	EventTitle string `json:"event_title"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	WillAttend bool   `json:"will_attend"`
}

// SendMailRequest is the body of POST /api/mail/send.
type SendMailRequest struct {
	ToEmail    string `json:"to_email"`
	PlanTitle  string `json:"plan_title"`
	ActionType string `json:"action_type"`
	HostName   string `json:"host_name"`
	EventDate  string `json:"event_date"`
	EventTime  string `json:"event_time"`
	Location   string `json:"location"`
	Message    string `json:"message"`
}

// SendConfirmationRequest is the body of POST /api/mail/confirmation.
type SendConfirmationRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token"`
}
