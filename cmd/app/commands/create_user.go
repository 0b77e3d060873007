package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	userDomain "github.com/briefnote/briefnote/internal/user/domain"
	userUseCase "github.com/briefnote/briefnote/internal/user/usecase"
)

// RunCreateUser registers a new user and prints their API token. The plain
// token is shown exactly once and never stored. Outputs in either text or
// JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	userUC userUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	input userUseCase.CreateUserInput,
	format string,
) error {
	logger.Info("creating new user",
		slog.String("email", input.Email),
		slog.Bool("is_admin", input.IsAdmin),
	)

	user, plainToken, err := userUC.CreateUser(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		outputUserJSON(writer, user, plainToken)
	} else {
		outputUserText(writer, user, plainToken)
	}

	logger.Info("user created successfully",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return nil
}

// outputUserText outputs the result in human-readable text format.
func outputUserText(writer io.Writer, user *userDomain.User, plainToken string) {
	_, _ = fmt.Fprintln(writer, "\nUser created successfully!")
	_, _ = fmt.Fprintf(writer, "User ID: %d\n", user.ID)
	_, _ = fmt.Fprintf(writer, "Name: %s\n", user.Name)
	_, _ = fmt.Fprintf(writer, "Email: %s\n", user.Email)
	_, _ = fmt.Fprintf(writer, "API Token: %s\n", plainToken)
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The token is shown only once. Store it securely.")
}

// outputUserJSON outputs the result in JSON format for machine consumption.
func outputUserJSON(writer io.Writer, user *userDomain.User, plainToken string) {
	result := map[string]interface{}{
		"user_id":   user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"api_token": plainToken,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
