package enums

import "fmt"

// ContactStatus tracks how far a contact submission has been handled.
type ContactStatus string

const (
	ContactStatusPending   ContactStatus = "pending"
	ContactStatusProcessed ContactStatus = "processed"
	ContactStatusReplied   ContactStatus = "replied"
)

var validContactStatuses = []ContactStatus{
	ContactStatusPending,
	ContactStatusProcessed,
	ContactStatusReplied,
}

// ContactStatuses returns every recognized status in display order.
func ContactStatuses() []ContactStatus {
	out := make([]ContactStatus, len(validContactStatuses))
	copy(out, validContactStatuses)
	return out
}

// String implements fmt.Stringer.
func (s ContactStatus) String() string {
	return string(s)
}

// IsValid checks whether the status matches the canonical enum.
func (s ContactStatus) IsValid() bool {
	for _, candidate := range validContactStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseContactStatus converts raw strings into ContactStatus.
func ParseContactStatus(value string) (ContactStatus, error) {
	for _, candidate := range validContactStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid contact status %q", value)
}
