package commands

import (
	"context"
	"fmt"
	"log/slog"

	credentialUseCase "github.com/allisson/credstash/internal/credential/usecase"
)

// listEntry is the JSON shape of one stored version.
type listEntry struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// RunList prints every stored name and version.
func RunList(
	ctx context.Context,
	useCase credentialUseCase.CredentialUseCase,
	logger *slog.Logger,
	io IOTuple,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	credentials, err := useCase.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list credentials: %w", err)
	}

	logger.Debug("listed credentials", slog.Int("count", len(credentials)))

	if format == FormatJSON {
		entries := make([]listEntry, 0, len(credentials))
		for _, c := range credentials {
			entries = append(entries, listEntry{Name: c.Name, Version: c.Version})
		}
		return outputJSON(entries, io.Writer)
	}

	for _, c := range credentials {
		if _, err := fmt.Fprintf(io.Writer, "%s -- version %s\n", c.Name, c.Version); err != nil {
			return err
		}
	}
	return nil
}
