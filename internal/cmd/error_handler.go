package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/octoglue/octoglue/api"
	"github.com/octoglue/octoglue/internal/apierr"
	"github.com/octoglue/octoglue/internal/ratelimit"
)

// HandleError processes an error and returns a user-friendly message with suggestions
func HandleError(err error) string {
	if err == nil {
		return ""
	}

	var msg strings.Builder

	var apiErr *apierr.APIError
	var rateLimitErr *apierr.RateLimitError
	var tooLongErr *ratelimit.TooLongError
	var authErr *apierr.AuthError
	var cfgErr *configError

	switch {
	case errors.As(err, &tooLongErr):
		fmt.Fprintf(&msg, "Rate limited for %s, longer than --max-wait %s.\n\n", tooLongErr.Delay.Round(time.Second), tooLongErr.MaxWait)
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Raise --max-wait, or pass --max-wait 0 to wait as long as needed\n")
		msg.WriteString("  - Authenticate to get a higher limit: octoglue auth login\n")

	case errors.As(err, &rateLimitErr):
		fmt.Fprintf(&msg, "%s.\n\n", capitalize(rateLimitErr.Error()))
		msg.WriteString("Suggestions:\n")
		if rateLimitErr.Secondary {
			msg.WriteString("  - Slow down: lower --concurrency or add pauses between mutations\n")
		} else {
			msg.WriteString("  - Wait for the reset, or authenticate for a higher limit\n")
		}
		msg.WriteString("  - Check your remaining quota: octoglue auth status\n")

	case errors.As(err, &authErr):
		fmt.Fprintf(&msg, "Authentication failed: %s\n\n", authErr.Reason)
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Run: octoglue auth login\n")
		msg.WriteString("  - Verify GITHUB_TOKEN is valid and not expired\n")
		msg.WriteString("  - Check the token has the scopes this operation needs\n")

	case errors.As(err, &apiErr):
		fmt.Fprintf(&msg, "API error (HTTP %d): %s\n\n", apiErr.StatusCode, apiErr.Message)
		for _, fe := range apiErr.Errors {
			fmt.Fprintf(&msg, "  - %s\n", fe.String())
		}
		if len(apiErr.Errors) > 0 {
			msg.WriteString("\n")
		}
		msg.WriteString(suggestionsForStatusCode(apiErr.StatusCode))
		if apiErr.DocumentationURL != "" {
			fmt.Fprintf(&msg, "\nDocumentation: %s\n", apiErr.DocumentationURL)
		}
		if apiErr.RequestID != "" {
			fmt.Fprintf(&msg, "Request ID: %s\n", apiErr.RequestID)
		}

	case errors.As(err, &cfgErr):
		fmt.Fprintf(&msg, "Configuration error: %s\n\n", cfgErr.err)
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Check GITHUB_TOKEN, GITHUB_API_URL and OCTOGLUE_* variables\n")
		msg.WriteString("  - Run: octoglue auth status\n")

	case api.IsTransportError(err) && strings.Contains(err.Error(), "connection refused"):
		msg.WriteString("Connection refused.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Check the API URL: octoglue auth status\n")
		msg.WriteString("  - Check your network connection\n")

	case strings.Contains(err.Error(), "no such host"):
		msg.WriteString("DNS resolution failed.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Check the --base-url / GITHUB_API_URL spelling\n")
		msg.WriteString("  - Verify your DNS settings\n")

	case strings.Contains(err.Error(), "certificate"):
		msg.WriteString("TLS certificate error.\n\n")
		msg.WriteString("Suggestions:\n")
		msg.WriteString("  - Verify the server's certificate is trusted by this machine\n")
		msg.WriteString("  - GitHub Enterprise Server may use a private CA\n")

	default:
		fmt.Fprintf(&msg, "Error: %s\n", err.Error())
	}

	return msg.String()
}

func suggestionsForStatusCode(code int) string {
	var suggestions strings.Builder
	suggestions.WriteString("Suggestions:\n")

	switch code {
	case 400:
		suggestions.WriteString("  - Check your request parameters\n")
		suggestions.WriteString("  - Use --dry-run to see the request\n")

	case 404:
		suggestions.WriteString("  - The resource doesn't exist, or your token can't see it\n")
		suggestions.WriteString("  - Private repositories return 404 without access\n")

	case 409:
		suggestions.WriteString("  - The resource changed; fetch it again and retry\n")

	case 410:
		suggestions.WriteString("  - The resource is gone or the feature is disabled\n")

	case 422:
		suggestions.WriteString("  - Validation failed; check the fields listed above\n")

	case 500, 502, 503, 504:
		suggestions.WriteString("  - Server error - not your fault\n")
		suggestions.WriteString("  - Retry, or use --backend retryable\n")

	default:
		suggestions.WriteString("  - Use --debug for more details\n")
	}

	return suggestions.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
