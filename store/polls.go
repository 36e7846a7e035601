// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/apperr"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/models"
)

const pollColumns = `id, question, portfolio_user_id, created_by, end_date, is_active, created_at`

// PollFilter narrows ListPolls
type PollFilter struct {
	PortfolioUserID string
	ActiveOnly      bool
}

// AdmitFunc inspects the current poll inside the vote transaction and returns
// the option position to record, or an error to abort with
type AdmitFunc func(p *models.Poll) (int, error)

// CreatePoll inserts a poll and its options in one transaction
func (s *Store) CreatePoll(ctx context.Context, p *models.Poll) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO poll (id, question, portfolio_user_id, created_by, end_date, is_active, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, p.ID, p.Question, p.PortfolioUserID, nullString(p.CreatedBy), p.EndDate, p.IsActive, p.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert poll: %w", err)
		}

		for i, o := range p.Options {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO poll_option (poll_id, position, label, votes)
				VALUES ($1, $2, $3, $4)
			`, p.ID, i, o.Text, o.Votes)
			if err != nil {
				return fmt.Errorf("insert option %d: %w", i, err)
			}
		}
		return nil
	})
}

// GetPoll loads a poll with its options and voters
func (s *Store) GetPoll(ctx context.Context, id string) (*models.Poll, error) {
	return getPoll(ctx, s.db, id)
}

func getPoll(ctx context.Context, q queryer, id string) (*models.Poll, error) {
	row := q.QueryRowContext(ctx, `SELECT `+pollColumns+` FROM poll WHERE id = $1`, id)
	p, err := scanPoll(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Poll not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get poll: %w", err)
	}
	if err := loadOptions(ctx, q, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPolls returns polls newest first
func (s *Store) ListPolls(ctx context.Context, f PollFilter) ([]models.Poll, error) {
	query := `SELECT ` + pollColumns + ` FROM poll`
	var args []any
	var where []string
	if f.PortfolioUserID != "" {
		args = append(args, f.PortfolioUserID)
		where = append(where, fmt.Sprintf("portfolio_user_id = $%d", len(args)))
	}
	if f.ActiveOnly {
		args = append(args, true)
		where = append(where, fmt.Sprintf("is_active = $%d", len(args)))
	}
	for i, w := range where {
		if i == 0 {
			query += " WHERE " + w
		} else {
			query += " AND " + w
		}
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list polls: %w", err)
	}
	polls := []models.Poll{}
	for rows.Next() {
		p, err := scanPoll(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan poll: %w", err)
		}
		polls = append(polls, *p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("list polls: %w", err)
	}
	rows.Close()

	// Options are loaded after the cursor is closed; SQLite has one connection
	for i := range polls {
		if err := loadOptions(ctx, s.db, &polls[i]); err != nil {
			return nil, err
		}
	}
	return polls, nil
}

// AppendVote records userID's vote as one atomic unit. The poll row is
// locked first so concurrent voters, in this process or another, queue
// behind each other; admit then runs against the poll as currently
// committed. The (poll_id, user_id) unique key still rejects a duplicate
// that slipped past admit. The returned poll is re-read before commit.
func (s *Store) AppendVote(ctx context.Context, pollID, userID string, at time.Time, admit AdmitFunc) (*models.Poll, error) {
	var p *models.Poll

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := lockPoll(ctx, tx, pollID); err != nil {
			return err
		}

		current, err := getPoll(ctx, tx, pollID)
		if err != nil {
			return err
		}

		pos, err := admit(current)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO poll_vote (poll_id, user_id, position, voted_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (poll_id, user_id) DO NOTHING
		`, pollID, userID, pos, at)
		if err != nil {
			return fmt.Errorf("insert vote: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("insert vote: %w", err)
		} else if n == 0 {
			return apperr.Conflict("You have already voted on this poll")
		}

		res, err = tx.ExecContext(ctx, `
			UPDATE poll_option SET votes = votes + 1
			WHERE poll_id = $1 AND position = $2
		`, pollID, pos)
		if err != nil {
			return fmt.Errorf("increment votes: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("increment votes: %w", err)
		} else if n != 1 {
			return apperr.Validation("Invalid option index")
		}

		p, err = getPoll(ctx, tx, pollID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// lockPoll takes the poll's row lock for the rest of the transaction. A
// no-op UPDATE works on both PostgreSQL (row lock) and SQLite (write lock).
func lockPoll(ctx context.Context, tx *sql.Tx, id string) error {
	res, err := tx.ExecContext(ctx, `UPDATE poll SET is_active = is_active WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("lock poll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("lock poll: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("Poll not found")
	}
	return nil
}

// TogglePoll flips is_active and returns the updated poll
func (s *Store) TogglePoll(ctx context.Context, id string) (*models.Poll, error) {
	var p *models.Poll
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var active bool
		err := tx.QueryRowContext(ctx, `SELECT is_active FROM poll WHERE id = $1`, id).Scan(&active)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("Poll not found")
		}
		if err != nil {
			return fmt.Errorf("read poll state: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `UPDATE poll SET is_active = $1 WHERE id = $2`, !active, id); err != nil {
			return fmt.Errorf("toggle poll: %w", err)
		}

		p, err = getPoll(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePoll hard-deletes a poll with its options and votes
func (s *Store) DeletePoll(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM poll_vote WHERE poll_id = $1`, id); err != nil {
			return fmt.Errorf("delete votes: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM poll_option WHERE poll_id = $1`, id); err != nil {
			return fmt.Errorf("delete options: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM poll WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete poll: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete poll: %w", err)
		}
		if n == 0 {
			return apperr.NotFound("Poll not found")
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPoll(row rowScanner) (*models.Poll, error) {
	var p models.Poll
	var createdBy sql.NullString
	var endDate sql.NullTime
	if err := row.Scan(&p.ID, &p.Question, &p.PortfolioUserID, &createdBy, &endDate, &p.IsActive, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.CreatedBy = stringPtr(createdBy)
	if endDate.Valid {
		t := endDate.Time.UTC()
		p.EndDate = &t
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

// loadOptions fills p.Options. The poll_option.votes column is maintained
// for SQL-side reporting; the returned counts are derived from poll_vote.
func loadOptions(ctx context.Context, q queryer, p *models.Poll) error {
	rows, err := q.QueryContext(ctx, `
		SELECT position, label FROM poll_option
		WHERE poll_id = $1
		ORDER BY position
	`, p.ID)
	if err != nil {
		return fmt.Errorf("load options: %w", err)
	}
	p.Options = []models.Option{}
	for rows.Next() {
		var pos int
		o := models.Option{Voters: []models.Vote{}}
		if err := rows.Scan(&pos, &o.Text); err != nil {
			rows.Close()
			return fmt.Errorf("scan option: %w", err)
		}
		p.Options = append(p.Options, o)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("load options: %w", err)
	}
	rows.Close()

	rows, err = q.QueryContext(ctx, `
		SELECT position, user_id, voted_at FROM poll_vote
		WHERE poll_id = $1
		ORDER BY voted_at
	`, p.ID)
	if err != nil {
		return fmt.Errorf("load votes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pos int
		var v models.Vote
		if err := rows.Scan(&pos, &v.UserID, &v.VotedAt); err != nil {
			return fmt.Errorf("scan vote: %w", err)
		}
		if pos < 0 || pos >= len(p.Options) {
			continue
		}
		v.VotedAt = v.VotedAt.UTC()
		p.Options[pos].Voters = append(p.Options[pos].Voters, v)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load votes: %w", err)
	}

	// Counts come from the voter rows just read, so votes == len(voters)
	// holds even when a vote commits between the two queries
	for i := range p.Options {
		p.Options[i].Votes = len(p.Options[i].Voters)
	}
	return nil
}
