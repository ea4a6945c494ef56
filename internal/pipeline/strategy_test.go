package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestAttemptInOrder_firstWins(t *testing.T) {
	calls := 0
	got, err := AttemptInOrder(context.Background(), zap.NewNop(),
		Strategy[int]{Name: "a", Run: func(context.Context) (int, error) { calls++; return 1, nil }},
		Strategy[int]{Name: "b", Run: func(context.Context) (int, error) { calls++; return 2, nil }},
	)
	if err != nil || got != 1 {
		t.Fatalf("got %d, %v", got, err)
	}
	if calls != 1 {
		t.Errorf("later strategies must not run after a success, calls = %d", calls)
	}
}

func TestAttemptInOrder_fallsThrough(t *testing.T) {
	got, err := AttemptInOrder(context.Background(), zap.NewNop(),
		Strategy[string]{Name: "a", Run: func(context.Context) (string, error) { return "", errors.New("a broke") }},
		Strategy[string]{Name: "b", Run: func(context.Context) (string, error) { return "ok", nil }},
	)
	if err != nil || got != "ok" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestAttemptInOrder_allFail(t *testing.T) {
	_, err := AttemptInOrder(context.Background(), zap.NewNop(),
		Strategy[int]{Name: "a", Run: func(context.Context) (int, error) { return 0, errors.New("a broke") }},
		Strategy[int]{Name: "b", Run: func(context.Context) (int, error) { return 0, errors.New("b broke") }},
	)
	if err == nil {
		t.Fatal("expected an error when every strategy fails")
	}
	for _, want := range []string{"a broke", "b broke"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("joined error missing %q: %v", want, err)
		}
	}
}

func TestAttemptInOrder_cancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := AttemptInOrder(ctx, zap.NewNop(),
		Strategy[int]{Name: "a", Run: func(context.Context) (int, error) {
			t.Error("strategy must not run on a cancelled context")
			return 0, nil
		}},
	)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
