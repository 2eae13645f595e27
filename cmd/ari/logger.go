package main

import "log/slog"

func setDefaultLogger(h slog.Handler) {
	slog.SetDefault(slog.New(h))
}
