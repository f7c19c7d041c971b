package service

import (
	"context"
	"time"
)

type throttledKeyService struct {
	next     KeyService
	minDelay time.Duration
}

// NewThrottledKeyService pads every validation answer, valid or not, to at
// least minDelay so response timing does not help guessing keys. Issuing
// keys is not delayed.
func NewThrottledKeyService(next KeyService, minDelay time.Duration) KeyService {
	if minDelay <= 0 {
		return next
	}
	return &throttledKeyService{next: next, minDelay: minDelay}
}

func (s *throttledKeyService) IssueAPIKey(ctx context.Context) (string, error) {
	return s.next.IssueAPIKey(ctx)
}

func (s *throttledKeyService) ValidateAPIKey(ctx context.Context, apiKey string) (bool, error) {
	start := time.Now()
	valid, err := s.next.ValidateAPIKey(ctx, apiKey)
	if waitErr := s.wait(ctx, start); waitErr != nil && err == nil {
		return false, waitErr
	}
	return valid, err
}

func (s *throttledKeyService) Authorize(ctx context.Context, apiKey string) (string, error) {
	start := time.Now()
	owner, err := s.next.Authorize(ctx, apiKey)
	if waitErr := s.wait(ctx, start); waitErr != nil && err == nil {
		return "", waitErr
	}
	return owner, err
}

func (s *throttledKeyService) wait(ctx context.Context, start time.Time) error {
	remaining := s.minDelay - time.Since(start)
	if remaining <= 0 {
		return nil
	}

	timer := time.NewTimer(remaining)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
