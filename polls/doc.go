// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package polls implements the poll lifecycle and the vote admission rules.

An Engine validates poll creation, serializes votes per poll and hands the
actual write to the store inside a single transaction. Votes are checked in a
fixed order so the first failing rule decides the error a client sees:

 1. an option index was supplied
 2. a user id was supplied
 3. the poll exists
 4. the poll is active
 5. the poll has not ended
 6. the option index is in range
 7. the user has not voted on any option of this poll

Every successful change is announced through an events.Publisher so
connected clients can refresh their tallies.
*/
package polls
