// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the persistence layer. It speaks plain database/sql with
$n placeholders, so one set of queries serves both PostgreSQL (lib/pq) and
SQLite (modernc.org/sqlite).

# Errors

Methods return apperr errors for conditions a caller can act on:

  - NotFound for missing polls, users and media records
  - Conflict for a duplicate email/slug or a repeated vote
  - Validation for an unknown media category

Anything else is wrapped with context and surfaces as a 500.

# Votes

AppendVote is the only way a vote is recorded. Inside a single
transaction it:

 1. locks the poll row, so voters on other instances queue here too
 2. reads the poll with all options and voters
 3. calls the supplied AdmitFunc, which applies the voting rules
 4. inserts into poll_vote with ON CONFLICT (poll_id, user_id) DO NOTHING
 5. increments the chosen poll_option.votes
 6. re-reads the poll for the caller

A zero-row insert in step 4 means another request recorded this user's
vote first; the whole transaction rolls back with a Conflict. Counter and
voter row commit together.

Reads outside a transaction may straddle a concurrent commit, so the
Votes returned for an option are always len(Voters) from the same query,
never the stored counter.

# Admin Messages

CreateAdminMessage deactivates all existing messages and inserts the new
one in the same transaction, so at most one message is active.
*/
package store
