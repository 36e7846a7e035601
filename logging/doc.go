// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package logging configures the process-wide zerolog logger and exposes it
to code that logs through log/slog.

At startup:

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(logging.NewSlogLogger())

After that, every slog.Info / slog.Error call in handlers and services is
written by zerolog, and sutureslog can be handed the same *slog.Logger.
*/
package logging
