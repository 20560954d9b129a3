package domain

import "strings"

// HostID identifies the owner of an event. Underneath it is still an email
// match, kept as a distinct type so ownership checks go through one place.
type HostID string

func NewHostID(email string) HostID {
	return HostID(strings.TrimSpace(strings.ToLower(email)))
}

func (h HostID) String() string {
	return string(h)
}

func (h HostID) Empty() bool {
	return h == ""
}
