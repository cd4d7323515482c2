package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	credentialUseCase "github.com/allisson/credstash/internal/credential/usecase"
)

// RunGetAll prints the latest value of every name. Nothing is printed unless every
// lookup succeeds.
func RunGetAll(
	ctx context.Context,
	useCase credentialUseCase.CredentialUseCase,
	logger *slog.Logger,
	io IOTuple,
	names []string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("at least one credential name is required")
	}

	logger.Debug("getting credentials", slog.Int("count", len(names)))

	values, err := useCase.GetAll(ctx, names)
	if err != nil {
		return fmt.Errorf("failed to get credentials: %w", err)
	}

	if format == FormatJSON {
		return outputJSON(values, io.Writer)
	}

	keys := make([]string, 0, len(values))
	for name := range values {
		keys = append(keys, name)
	}
	sort.Strings(keys)

	for _, name := range keys {
		if _, err := fmt.Fprintf(io.Writer, "%s=%s\n", name, values[name]); err != nil {
			return err
		}
	}
	return nil
}
