// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apperr defines the error taxonomy shared by the store, the poll
engine, and the HTTP layer.

Errors are created with a constructor per kind:

	return apperr.NotFound("Poll not found")
	return apperr.InvalidState("Poll has ended")
	return apperr.Storage("failed to upload file", err)

Handlers map them to a status code and body with middleware.WriteError,
which uses HTTPStatus and Message. Wrapped errors keep their kind, so
fmt.Errorf("...: %w", err) is safe anywhere in the chain.

Status mapping:

	Validation, InvalidState, Conflict  400
	NotFound                            404
	Storage, unclassified               500
	Unavailable                         503
*/
package apperr
