package commands

import (
	"context"
	"fmt"
	"log/slog"

	credentialUseCase "github.com/allisson/credstash/internal/credential/usecase"
)

// getOutput is the JSON shape of a single credential.
type getOutput struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Value   string `json:"value"`
}

// RunGet prints the value of a credential: the latest version, or the given one.
func RunGet(
	ctx context.Context,
	useCase credentialUseCase.CredentialUseCase,
	logger *slog.Logger,
	io IOTuple,
	name, version, format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Debug("getting credential", slog.String("name", name), slog.String("version", version))

	var (
		value string
		err   error
	)
	if version == "" {
		value, err = useCase.Get(ctx, name)
	} else {
		value, err = useCase.GetVersion(ctx, name, version)
	}
	if err != nil {
		return fmt.Errorf("failed to get credential %q: %w", name, err)
	}

	if format == FormatJSON {
		return outputJSON(getOutput{Name: name, Version: version, Value: value}, io.Writer)
	}

	_, err = fmt.Fprintln(io.Writer, value)
	return err
}
