package services

import (
	"context"
	"log"
	"regexp"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// retry runs f up to attempts times with exponential backoff. It stops early
// once ctx is done or f fails with an error that retrying cannot fix.
func retry(ctx context.Context, attempts int, sleep time.Duration, f func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if ctx.Err() != nil || !transient(err) {
			return err
		}
		if i == attempts-1 {
			break
		}

		log.Printf("⚠️ LLM error: %v. Retrying in %v...", err, sleep)
		select {
		case <-ctx.Done():
			return err
		case <-time.After(sleep):
		}
		sleep *= 2
	}
	return errors.Wrapf(err, "failed after %d attempts", attempts)
}

var (
	// "API returned unexpected status code: 401" (openai),
	// "googleapi: Error 400: ..." (googleai REST).
	httpStatus = regexp.MustCompile(`(?i)(?:status code:?|googleapi: error) (\d{3})`)
	// "rpc error: code = InvalidArgument desc = ..." (googleai gRPC).
	grpcCode = regexp.MustCompile(`rpc error: code = (\w+)`)
)

// transient reports whether err is worth another attempt: rate limits, server
// errors, and anything the provider did not classify (network failures,
// timeouts). Client errors such as a bad key or a rejected request are not.
func transient(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	msg := err.Error()
	if m := httpStatus.FindStringSubmatch(msg); m != nil {
		code, _ := strconv.Atoi(m[1])
		return code == 429 || code == 408 || code >= 500
	}
	if m := grpcCode.FindStringSubmatch(msg); m != nil {
		switch m[1] {
		case "Unavailable", "ResourceExhausted", "DeadlineExceeded", "Internal", "Aborted", "Unknown":
			return true
		}
		return false
	}
	return true
}
