package models

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Domain types

type Vote struct {
	UserID  string    `json:"userId"`
	VotedAt time.Time `json:"votedAt"`
}

type Option struct {
	Text   string `json:"text"`
	Votes  int    `json:"votes"`
	Voters []Vote `json:"voters"`
}

type Poll struct {
	ID              string     `json:"id"`
	Question        string     `json:"question"`
	Options         []Option   `json:"options"`
	PortfolioUserID string     `json:"portfolioUserId"`
	CreatedBy       *string    `json:"createdBy"`
	EndDate         *time.Time `json:"endDate"`
	IsActive        bool       `json:"isActive"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// HasVoted reports whether userID appears among any option's voters
func (p *Poll) HasVoted(userID string) bool {
	for _, o := range p.Options {
		for _, v := range o.Voters {
			if v.UserID == userID {
				return true
			}
		}
	}
	return false
}

// Ended reports whether now is past the poll's end date
func (p *Poll) Ended(now time.Time) bool {
	return p.EndDate != nil && now.After(*p.EndDate)
}

// Request types

// OptionInput accepts either a bare string or {"text": "..."}
type OptionInput struct {
	Text string
}

func (o *OptionInput) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		o.Text = s
		return nil
	}
	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	o.Text = obj.Text
	return nil
}

type CreatePollRequest struct {
	Question        string        `json:"question"`
	Options         []OptionInput `json:"options"`
	PortfolioUserID string        `json:"portfolioUserId"`
	CreatedBy       string        `json:"createdBy"`
	EndDate         string        `json:"endDate"`
}

type VoteRequest struct {
	OptionIndex *int   `json:"optionIndex"`
	UserID      string `json:"userId"`
}

var endDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseEndDate accepts RFC 3339 timestamps, HTML datetime-local values and
// plain dates. An empty string means no end date.
func ParseEndDate(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	for _, layout := range endDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, true
		}
	}
	return nil, false
}

// Response types

// UserRef is the resolved form of a user reference in admin views
type UserRef struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	PortfolioSlug string `json:"portfolioSlug,omitempty"`
}

type AdminVote struct {
	UserID  string    `json:"userId"`
	User    *UserRef  `json:"user"`
	VotedAt time.Time `json:"votedAt"`
}

type AdminOption struct {
	Text   string      `json:"text"`
	Votes  int         `json:"votes"`
	Voters []AdminVote `json:"voters"`
}

// AdminPoll is a poll with every user reference resolved where possible
type AdminPoll struct {
	ID              string        `json:"id"`
	Question        string        `json:"question"`
	Options         []AdminOption `json:"options"`
	PortfolioUserID string        `json:"portfolioUserId"`
	PortfolioUser   *UserRef      `json:"portfolioUser"`
	CreatedBy       *UserRef      `json:"createdBy"`
	EndDate         *time.Time    `json:"endDate"`
	IsActive        bool          `json:"isActive"`
	CreatedAt       time.Time     `json:"createdAt"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Event payloads

type OptionTally struct {
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

type PollUpdatedEvent struct {
	PollID  string        `json:"pollId"`
	Options []OptionTally `json:"options"`
}

type PollCreatedEvent struct {
	PollID   string `json:"pollId"`
	Question string `json:"question"`
}

type PollToggledEvent struct {
	PollID   string `json:"pollId"`
	IsActive bool   `json:"isActive"`
}

type PollDeletedEvent struct {
	PollID string `json:"pollId"`
}

// Tallies returns the per-option counts broadcast after a vote
func (p *Poll) Tallies() []OptionTally {
	out := make([]OptionTally, len(p.Options))
	for i, o := range p.Options {
		out[i] = OptionTally{Text: o.Text, Votes: o.Votes}
	}
	return out
}
