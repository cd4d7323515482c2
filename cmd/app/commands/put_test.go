package commands

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	credentialDomain "github.com/allisson/credstash/internal/credential/domain"
	"github.com/allisson/credstash/internal/credential/usecase/mocks"
	apperrors "github.com/allisson/credstash/internal/errors"
)

func TestRunPut(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("argument-value", func(t *testing.T) {
		useCase := &mocks.MockCredentialUseCase{}
		useCase.On("Put", ctx, "api.token", []byte("s3cr3t")).Return("0000000000000000001", nil).Once()

		var out bytes.Buffer
		err := RunPut(ctx, useCase, logger, IOTuple{Writer: &out}, "api.token", "s3cr3t", FormatText)

		require.NoError(t, err)
		require.Equal(t, "api.token has been stored (version 0000000000000000001)\n", out.String())
		useCase.AssertExpectations(t)
	})

	t.Run("stdin-value", func(t *testing.T) {
		useCase := &mocks.MockCredentialUseCase{}
		useCase.On("Put", ctx, "api.token", []byte("line one\nline two")).
			Return("0000000000000000002", nil).
			Once()

		var out bytes.Buffer
		io := IOTuple{Reader: strings.NewReader("line one\nline two\n"), Writer: &out}
		err := RunPut(ctx, useCase, logger, io, "api.token", "-", FormatJSON)

		require.NoError(t, err)
		require.JSONEq(t, `{"name":"api.token","version":"0000000000000000002"}`, out.String())
		useCase.AssertExpectations(t)
	})

	t.Run("stdin-value-keeps-trailing-carriage-return", func(t *testing.T) {
		useCase := &mocks.MockCredentialUseCase{}
		useCase.On("Put", ctx, "api.token", []byte("ends-with-cr\r")).
			Return("0000000000000000003", nil).
			Once()

		io := IOTuple{Reader: strings.NewReader("ends-with-cr\r"), Writer: &bytes.Buffer{}}
		err := RunPut(ctx, useCase, logger, io, "api.token", "-", FormatText)

		require.NoError(t, err)
		useCase.AssertExpectations(t)
	})

	t.Run("conflict", func(t *testing.T) {
		useCase := &mocks.MockCredentialUseCase{}
		useCase.On("Put", ctx, "api.token", []byte("v")).Return("", credentialDomain.ErrVersionConflict).Once()

		var out bytes.Buffer
		err := RunPut(ctx, useCase, logger, IOTuple{Writer: &out}, "api.token", "v", FormatText)

		require.ErrorIs(t, err, apperrors.ErrConflict)
		require.Empty(t, out.String())
	})
}

func TestTrimLineEnding(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"value\n", "value"},
		{"value\r\n", "value"},
		{"value\r", "value\r"},
		{"value\n\n", "value\n"},
		{"value", "value"},
		{"", ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, trimLineEnding(tt.in), "input %q", tt.in)
	}
}
