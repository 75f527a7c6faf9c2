package devconnect

import "encoding/json"

// User is the backend's profile record. The feed and connection lists carry
// the public subset; /api/profile/view returns the full record for the
// session owner.
type User struct {
	ID        string   `json:"_id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName,omitempty"`
	EmailID   string   `json:"emailId,omitempty"`
	Age       int      `json:"age,omitempty"`
	Gender    string   `json:"gender,omitempty"`
	About     string   `json:"about,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	PhotoURL  string   `json:"photo,omitempty"`
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Request is a directed pending connection request. FromUser is populated
// by the backend with the sender's public profile.
type Request struct {
	ID       string `json:"_id"`
	FromUser User   `json:"fromUserId"`
	Status   string `json:"status"`
}

// InterestStatus is sent with /api/request/send
type InterestStatus string

const (
	StatusInterested InterestStatus = "interested"
	StatusIgnored    InterestStatus = "ignored"
)

// ReviewDecision is sent with /api/request/review
type ReviewDecision string

const (
	DecisionAccepted ReviewDecision = "accepted"
	DecisionRejected ReviewDecision = "rejected"
)

// dataEnvelope wraps list and update responses: {"data": ...}
type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}
