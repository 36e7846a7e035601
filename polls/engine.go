// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/apperr"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/events"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/idgen"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/metrics"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/models"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/store"
)

// Error messages returned to clients
const (
	MsgQuestionRequired    = "Question is required"
	MsgTooFewOptions       = "At least 2 options are required"
	MsgEmptyOption         = "Option text cannot be empty"
	MsgPortfolioRequired   = "Portfolio user ID is required"
	MsgOptionIndexRequired = "Option index is required"
	MsgUserIDRequired      = "User ID is required"
	MsgNotActive           = "Poll is not active"
	MsgEnded               = "Poll has ended"
	MsgInvalidOption       = "Invalid option index"
	MsgAlreadyVoted        = "You have already voted on this poll"
)

// Store is the persistence the engine needs
type Store interface {
	CreatePoll(ctx context.Context, p *models.Poll) error
	GetPoll(ctx context.Context, id string) (*models.Poll, error)
	ListPolls(ctx context.Context, f store.PollFilter) ([]models.Poll, error)
	AppendVote(ctx context.Context, pollID, userID string, at time.Time, admit store.AdmitFunc) (*models.Poll, error)
	TogglePoll(ctx context.Context, id string) (*models.Poll, error)
	DeletePoll(ctx context.Context, id string) error
	UserRefs(ctx context.Context, ids []string) (map[string]models.UserRef, error)
}

// Engine owns the poll state machine: creation rules, vote admission and
// the events emitted after each change
type Engine struct {
	store Store
	pub   events.Publisher
	now   func() time.Time
	locks *keyedMutex
}

// Option configures an Engine
type Option func(*Engine)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an engine over s that announces changes on pub
func NewEngine(s Store, pub events.Publisher, opts ...Option) *Engine {
	if pub == nil {
		pub = events.Nop{}
	}
	e := &Engine{
		store: s,
		pub:   pub,
		now:   time.Now,
		locks: newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateInput is a normalized poll creation request
type CreateInput struct {
	Question        string
	Options         []string
	PortfolioUserID string
	EndDate         *time.Time
	CreatedBy       *string
}

// Create validates and stores a new poll with every option at zero votes
func (e *Engine) Create(ctx context.Context, in CreateInput) (*models.Poll, error) {
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return nil, apperr.Validation(MsgQuestionRequired)
	}
	if len(in.Options) < 2 {
		return nil, apperr.Validation(MsgTooFewOptions)
	}
	if strings.TrimSpace(in.PortfolioUserID) == "" {
		return nil, apperr.Validation(MsgPortfolioRequired)
	}

	options := make([]models.Option, len(in.Options))
	for i, text := range in.Options {
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, apperr.Validation(MsgEmptyOption)
		}
		options[i] = models.Option{Text: text, Votes: 0, Voters: []models.Vote{}}
	}

	p := &models.Poll{
		ID:              idgen.NewID(),
		Question:        question,
		Options:         options,
		PortfolioUserID: strings.TrimSpace(in.PortfolioUserID),
		CreatedBy:       in.CreatedBy,
		EndDate:         in.EndDate,
		IsActive:        true,
		CreatedAt:       e.now().UTC(),
	}
	if err := e.store.CreatePoll(ctx, p); err != nil {
		return nil, err
	}

	metrics.PollsCreated.Inc()
	slog.Info("poll created", "poll_id", p.ID, "portfolio_user_id", p.PortfolioUserID, "options", len(p.Options))
	e.pub.Publish(events.PollCreated, models.PollCreatedEvent{PollID: p.ID, Question: p.Question})
	return p, nil
}

// Vote admits one vote. Checks run in a fixed order and the first failure
// wins: option index present, user id present, poll exists, poll active,
// poll not ended, option index in range, user has not voted on any option.
func (e *Engine) Vote(ctx context.Context, pollID string, optionIndex *int, userID string) (*models.Poll, error) {
	p, err := e.vote(ctx, pollID, optionIndex, strings.TrimSpace(userID))
	metrics.VotesTotal.WithLabelValues(voteOutcome(err)).Inc()
	if err != nil {
		return nil, err
	}

	slog.Info("vote recorded", "poll_id", p.ID, "option", *optionIndex)
	e.pub.Publish(events.PollUpdated, models.PollUpdatedEvent{PollID: p.ID, Options: p.Tallies()})
	return p, nil
}

func (e *Engine) vote(ctx context.Context, pollID string, optionIndex *int, userID string) (*models.Poll, error) {
	if optionIndex == nil {
		return nil, apperr.Validation(MsgOptionIndexRequired)
	}
	if userID == "" {
		return nil, apperr.Validation(MsgUserIDRequired)
	}

	unlock := e.locks.Lock(pollID)
	defer unlock()

	now := e.now().UTC()
	return e.store.AppendVote(ctx, pollID, userID, now, func(p *models.Poll) (int, error) {
		return admit(p, *optionIndex, userID, now)
	})
}

// admit applies the state checks that need the stored poll
func admit(p *models.Poll, optionIndex int, userID string, now time.Time) (int, error) {
	if !p.IsActive {
		return 0, apperr.InvalidState(MsgNotActive)
	}
	if p.Ended(now) {
		return 0, apperr.InvalidState(MsgEnded)
	}
	if optionIndex < 0 || optionIndex >= len(p.Options) {
		return 0, apperr.Validation(MsgInvalidOption)
	}
	if p.HasVoted(userID) {
		return 0, apperr.Conflict(MsgAlreadyVoted)
	}
	return optionIndex, nil
}

func voteOutcome(err error) string {
	if err == nil {
		return "accepted"
	}
	return apperr.KindOf(err).String()
}

// Get returns a single poll
func (e *Engine) Get(ctx context.Context, id string) (*models.Poll, error) {
	return e.store.GetPoll(ctx, id)
}

// Toggle flips a poll's active flag
func (e *Engine) Toggle(ctx context.Context, id string) (*models.Poll, error) {
	unlock := e.locks.Lock(id)
	defer unlock()

	p, err := e.store.TogglePoll(ctx, id)
	if err != nil {
		return nil, err
	}

	slog.Info("poll toggled", "poll_id", id, "is_active", p.IsActive)
	e.pub.Publish(events.PollToggled, models.PollToggledEvent{PollID: id, IsActive: p.IsActive})
	return p, nil
}

// Delete hard-deletes a poll and its vote history
func (e *Engine) Delete(ctx context.Context, id string) error {
	unlock := e.locks.Lock(id)
	defer unlock()

	if err := e.store.DeletePoll(ctx, id); err != nil {
		return err
	}

	slog.Info("poll deleted", "poll_id", id)
	e.pub.Publish(events.PollDeleted, models.PollDeletedEvent{PollID: id})
	return nil
}

// ListForPortfolio returns a portfolio's active polls, newest first
func (e *Engine) ListForPortfolio(ctx context.Context, portfolioUserID string) ([]models.Poll, error) {
	return e.store.ListPolls(ctx, store.PollFilter{PortfolioUserID: portfolioUserID, ActiveOnly: true})
}

// ListAll returns every poll, newest first, with user references resolved
// for display. References to users that no longer exist stay unresolved.
func (e *Engine) ListAll(ctx context.Context) ([]models.AdminPoll, error) {
	polls, err := e.store.ListPolls(ctx, store.PollFilter{})
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var ids []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, p := range polls {
		add(p.PortfolioUserID)
		if p.CreatedBy != nil {
			add(*p.CreatedBy)
		}
		for _, o := range p.Options {
			for _, v := range o.Voters {
				add(v.UserID)
			}
		}
	}

	refs, err := e.store.UserRefs(ctx, ids)
	if err != nil {
		return nil, err
	}
	lookup := func(id string) *models.UserRef {
		if r, ok := refs[id]; ok {
			return &r
		}
		return nil
	}

	out := make([]models.AdminPoll, len(polls))
	for i, p := range polls {
		ap := models.AdminPoll{
			ID:              p.ID,
			Question:        p.Question,
			Options:         make([]models.AdminOption, len(p.Options)),
			PortfolioUserID: p.PortfolioUserID,
			PortfolioUser:   lookup(p.PortfolioUserID),
			EndDate:         p.EndDate,
			IsActive:        p.IsActive,
			CreatedAt:       p.CreatedAt,
		}
		if p.CreatedBy != nil {
			ap.CreatedBy = lookup(*p.CreatedBy)
		}
		for j, o := range p.Options {
			voters := make([]models.AdminVote, len(o.Voters))
			for k, v := range o.Voters {
				voters[k] = models.AdminVote{UserID: v.UserID, User: lookup(v.UserID), VotedAt: v.VotedAt}
			}
			ap.Options[j] = models.AdminOption{Text: o.Text, Votes: o.Votes, Voters: voters}
		}
		out[i] = ap
	}
	return out, nil
}
