// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the portfolio API.

# Handler Types

Each handler is a struct built from its dependencies:

  - PollHandler: poll lifecycle and voting, backed by polls.Engine
  - MediaHandler: photo, news and video uploads, YouTube links, deletion
  - UserHandler: portfolio owner profiles
  - FeedbackHandler: visitor suggestions and admin broadcast messages
  - SettingsHandler: per-user appearance settings
  - AnalyticsHandler: page views and event counts
  - WebSocketHandler: live event stream

Path parameters are read with r.PathValue, which the router fills in.

# Polls

	GET    /api/polls               → ListAll (user references resolved)
	GET    /api/polls/user/{userId} → ListForPortfolio (active only)
	GET    /api/polls/{id}          → GetPoll
	POST   /api/polls               → CreatePoll
	POST   /api/polls/{id}/vote     → Vote
	PUT    /api/polls/{id}/toggle   → TogglePoll
	DELETE /api/polls/{id}          → DeletePoll

Rejected votes answer 400 for missing fields, an out of range index, an
inactive or ended poll and a repeated vote, and 404 for an unknown poll.

# Media

Uploads are multipart with a "file" part and a "type" field (photos, videos
or news). Images must be jpeg, jpg, png, gif or webp; videos must be mp4,
mov, avi, wmv, flv or webm. When the metadata write fails after the binary
was stored, the binary is removed again.

# Errors

Every failure is written as {"error": "..."} through middleware.WriteError
or middleware.ErrorResponse. Analytics writes are best effort and never fail
a request.
*/
package handlers
