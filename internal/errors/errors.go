package errors

import (
	"errors"
	"fmt"
	"strings"
)

// UserError represents an error that should be shown to the user with helpful context
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError represents a manifest error with helpful context
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// SourceError wraps a failure to load key material from a source, adding a
// suggestion for the common cases. name is the key name from the manifest.
func SourceError(kind, name string, err error) error {
	return UserError{
		Message:    fmt.Sprintf("loading key %q from %s source", name, kind),
		Details:    errDetails(err),
		Suggestion: getSourceSuggestion(kind, err),
		Err:        err,
	}
}

func errDetails(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// getSourceSuggestion returns helpful suggestions based on source kind and error
func getSourceSuggestion(kind string, err error) string {
	if err == nil {
		return ""
	}
	errStr := err.Error()

	if strings.Contains(errStr, "length mismatch") {
		return "Check the key's 'size' and 'encoding' in the manifest match the stored value"
	}

	switch kind {
	case "env":
		if strings.Contains(errStr, "not set") || strings.Contains(errStr, "empty") {
			return "Export the environment variable before running, or point the key at a file"
		}
		if strings.Contains(errStr, "encoding/hex") || strings.Contains(errStr, "illegal base64") {
			return "The variable's value does not match the configured encoding"
		}

	case "file":
		if strings.Contains(errStr, "no such file or directory") {
			return "Verify the path exists. Mounted secrets usually live under /run/secrets"
		}
		if strings.Contains(errStr, "permission denied") {
			return "Make the file readable by this user (mode 0400 or 0600 is typical)"
		}

	case "keyring":
		if strings.Contains(errStr, "not found") {
			return "Store the key first, e.g. 'secret-tool store --label=<label> service <service> username <account>'"
		}
		if strings.Contains(errStr, "locked") || strings.Contains(errStr, "dbus") {
			return "Unlock the login keyring or make sure a Secret Service daemon is running"
		}

	case "aws":
		if strings.Contains(errStr, "credentials") || strings.Contains(errStr, "authorization") {
			return "Configure AWS credentials: 'aws configure' or set AWS_PROFILE"
		}
		if strings.Contains(errStr, "AccessDenied") {
			return "Check IAM permissions for secretsmanager:GetSecretValue"
		}
		if strings.Contains(errStr, "ResourceNotFoundException") {
			return "Verify the secret id and region. List secrets with: 'aws secretsmanager list-secrets'"
		}
	}

	if strings.Contains(errStr, "deadline exceeded") || strings.Contains(errStr, "timeout") {
		return "The source timed out. Raise timeout_ms or check your network connection"
	}

	return ""
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"timeout",
		"deadline exceeded",
		"temporary failure",
		"connection reset",
		"throttling",
		"too many requests",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// SimplifyError simplifies complex error messages for users
func SimplifyError(err error) error {
	if err == nil {
		return nil
	}

	// Already a user-friendly error
	var userErr UserError
	if errors.As(err, &userErr) {
		return err
	}
	var configErr ConfigError
	if errors.As(err, &configErr) {
		return err
	}

	rootErr := err
	for {
		unwrapped := errors.Unwrap(rootErr)
		if unwrapped == nil {
			break
		}
		rootErr = unwrapped
	}

	errStr := rootErr.Error()

	if strings.Contains(errStr, "yaml:") {
		return ConfigError{
			Message:    "Invalid YAML format",
			Suggestion: "Check for indentation errors and missing quotes",
		}
	}

	if strings.Contains(errStr, "permission denied") {
		return UserError{
			Message:    "Permission denied",
			Suggestion: "Check file permissions or run with appropriate privileges",
			Err:        err,
		}
	}

	if strings.Contains(errStr, "no such file or directory") {
		return UserError{
			Message:    "File or directory not found",
			Suggestion: "Verify the path exists and is spelled correctly",
			Err:        err,
		}
	}

	return err
}
