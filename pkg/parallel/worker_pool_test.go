package parallel

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWorkerPool_Execute(t *testing.T) {
	pool := NewWorkerPool[int, int](DefaultPoolConfig())

	inputs := []int{1, 2, 3, 4, 5}
	results := pool.Execute(context.Background(), inputs, func(ctx context.Context, input int) (int, error) {
		return input * 2, nil
	})

	if len(results) != len(inputs) {
		t.Fatalf("Expected %d results, got %d", len(inputs), len(results))
	}
	for i, r := range results {
		if r.Error != nil {
			t.Errorf("Unexpected error for input %d: %v", inputs[i], r.Error)
		}
		if r.Result != inputs[i]*2 {
			t.Errorf("Expected %d, got %d", inputs[i]*2, r.Result)
		}
		if r.Input != inputs[i] {
			t.Errorf("Result order broken: expected input %d, got %d", inputs[i], r.Input)
		}
	}
}

func TestWorkerPool_EmptyInput(t *testing.T) {
	pool := NewWorkerPool[int, int](DefaultPoolConfig())
	results := pool.Execute(context.Background(), nil, func(ctx context.Context, input int) (int, error) {
		return input, nil
	})
	if results != nil {
		t.Errorf("Expected nil results for empty input, got %v", results)
	}
}

func TestWorkerPool_ErrorsAreIsolated(t *testing.T) {
	pool := NewWorkerPool[int, int](DefaultPoolConfig().WithWorkers(2))

	wantErr := errors.New("odd input")
	inputs := []int{1, 2, 3, 4}
	results := pool.Execute(context.Background(), inputs, func(ctx context.Context, input int) (int, error) {
		if input%2 == 1 {
			return 0, wantErr
		}
		return input, nil
	})

	for i, r := range results {
		if inputs[i]%2 == 1 && !errors.Is(r.Error, wantErr) {
			t.Errorf("Expected error for input %d", inputs[i])
		}
		if inputs[i]%2 == 0 && r.Error != nil {
			t.Errorf("Unexpected error for input %d: %v", inputs[i], r.Error)
		}
	}
}

func TestWorkerPool_Timeout(t *testing.T) {
	config := DefaultPoolConfig().WithWorkers(2).WithTimeout(50 * time.Millisecond)
	pool := NewWorkerPool[int, int](config)

	inputs := make([]int, 10)
	results := pool.Execute(context.Background(), inputs, func(ctx context.Context, input int) (int, error) {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(100 * time.Millisecond):
			return input, nil
		}
	})

	cancelled := 0
	for _, r := range results {
		if r.Error != nil {
			cancelled++
		}
	}
	if cancelled == 0 {
		t.Log("Warning: no tasks were cancelled by timeout")
	}
}
