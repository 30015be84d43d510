package async

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_ResolveOnce(t *testing.T) {
	r, resolve := New[string]()

	resolve("first", nil)
	resolve("second", errors.New("ignored"))

	val, err := r.Await(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "first", val)
}

func TestResult_Await_ContextDone(t *testing.T) {
	r, _ := New[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	val, err := r.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, val)
}

func TestGo(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(ctx context.Context) (int, error)
		want    int
		wantErr bool
	}{
		{
			name: "value",
			fn:   func(ctx context.Context) (int, error) { return 42, nil },
			want: 42,
		},
		{
			name:    "error",
			fn:      func(ctx context.Context) (int, error) { return 0, errors.New("boom") },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, err := Go(context.Background(), tt.fn).Await(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, val)
		})
	}
}

func TestResult_Subscribe(t *testing.T) {
	t.Run("success callback", func(t *testing.T) {
		r, resolve := New[string]()
		got := make(chan string, 1)

		r.Subscribe(func(v string) { got <- v }, func(err error) { t.Errorf("unexpected error: %v", err) })
		resolve("abc", nil)

		select {
		case v := <-got:
			assert.Equal(t, "abc", v)
		case <-time.After(time.Second):
			require.Fail(t, "success callback not invoked")
		}
	})

	t.Run("error callback", func(t *testing.T) {
		r, resolve := New[string]()
		got := make(chan error, 1)

		r.Subscribe(func(v string) { t.Errorf("unexpected value: %q", v) }, func(err error) { got <- err })
		resolve("", errors.New("denied"))

		select {
		case err := <-got:
			assert.EqualError(t, err, "denied")
		case <-time.After(time.Second):
			require.Fail(t, "error callback not invoked")
		}
	})

	t.Run("subscribe after resolve", func(t *testing.T) {
		r, resolve := New[int]()
		resolve(7, nil)

		got := make(chan int, 1)
		r.Subscribe(func(v int) { got <- v }, nil)

		select {
		case v := <-got:
			assert.Equal(t, 7, v)
		case <-time.After(time.Second):
			require.Fail(t, "success callback not invoked")
		}
	})

	t.Run("nil callbacks", func(t *testing.T) {
		r, resolve := New[int]()
		r.Subscribe(nil, nil)
		assert.NotPanics(t, func() { resolve(0, errors.New("x")) })
		<-r.Done()
	})
}

func TestResult_Subscribe_RunsBeforeResolveReturns(t *testing.T) {
	r, resolve := New[int]()

	var order []string
	r.Subscribe(func(v int) { order = append(order, "first") }, nil)
	r.Subscribe(func(v int) { order = append(order, "second") }, nil)

	resolve(1, nil)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestResult_Subscribe_FollowsResolutionOrder(t *testing.T) {
	for i := 0; i < 500; i++ {
		first, resolveFirst := New[string]()
		second, resolveSecond := New[string]()

		var last string
		second.Subscribe(func(v string) { last = v }, nil)
		first.Subscribe(func(v string) { last = v }, nil)

		resolveFirst("first", nil)
		resolveSecond("second", nil)

		require.Equal(t, "second", last, "iteration %d", i)
	}
}
