// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Polls

A Poll owns an ordered list of Options; each Option carries its vote count
and the voters that produced it:

	Poll{Question, Options []Option, PortfolioUserID, CreatedBy, EndDate, IsActive}
	Option{Text, Votes, Voters []Vote}
	Vote{UserID, VotedAt}

Votes always equals len(Voters). HasVoted scans every option, so a user can
appear in at most one voter list per poll.

CreatePollRequest.Options accepts both forms:

	{"options": ["Red", "Blue"]}
	{"options": [{"text": "Red"}, {"text": "Blue"}]}

AdminPoll is the administrative view, with user references resolved to
UserRef{ID, Name, Email, PortfolioSlug}.

# Content

MediaItem is the stored form of photos, news and videos. Category constants
double as the upload "type" field and the storage folder name.

# Settings

PortfolioSettings has six groups (colors, fonts, layout, effects, buttons,
profileImage). DefaultSettings returns the document served before a user
saves anything, and Merge applies a shallow per-group merge.

# JSON Field Naming

All JSON fields use camelCase (question, portfolioUserId, isActive).
*/
package models
