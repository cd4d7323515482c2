package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	credentialUseCase "github.com/allisson/credstash/internal/credential/usecase"
)

// stdinValue is the value argument that reads the credential from standard input.
const stdinValue = "-"

// putOutput is the JSON shape of a stored credential.
type putOutput struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// RunPut stores value as the next version of name. A value of "-" is read from the
// reader with a single trailing newline ("\n" or "\r\n") removed.
func RunPut(
	ctx context.Context,
	useCase credentialUseCase.CredentialUseCase,
	logger *slog.Logger,
	ioTuple IOTuple,
	name, value, format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if value == stdinValue {
		data, err := io.ReadAll(ioTuple.Reader)
		if err != nil {
			return fmt.Errorf("failed to read value from stdin: %w", err)
		}
		value = trimLineEnding(string(data))
	}

	version, err := useCase.Put(ctx, name, []byte(value))
	if err != nil {
		return fmt.Errorf("failed to put credential %q: %w", name, err)
	}

	logger.Info("credential stored", slog.String("name", name), slog.String("version", version))

	if format == FormatJSON {
		return outputJSON(putOutput{Name: name, Version: version}, ioTuple.Writer)
	}

	_, err = fmt.Fprintf(ioTuple.Writer, "%s has been stored (version %s)\n", name, version)
	return err
}

// trimLineEnding removes one trailing "\r\n" or "\n". A lone trailing "\r" is kept.
func trimLineEnding(s string) string {
	if trimmed, ok := strings.CutSuffix(s, "\r\n"); ok {
		return trimmed
	}
	return strings.TrimSuffix(s, "\n")
}
