package cmdutil

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"
)

func TestWarnf(t *testing.T) {
	var buf bytes.Buffer
	Warnf(&buf, false, "dup %q", "chr1")
	if buf.String() != "WARN: dup \"chr1\"\n" {
		t.Fatalf("got %q", buf.String())
	}
	buf.Reset()
	Warnf(&buf, true, "hidden")
	if buf.Len() != 0 {
		t.Fatalf("quiet warning printed: %q", buf.String())
	}
	Errorf(&buf, "bad %d", 7)
	if buf.String() != "error: bad 7\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestRunOrderedKeepsOrder(t *testing.T) {
	jobs := make([]int, 200)
	for i := range jobs {
		jobs[i] = i
	}
	rng := rand.New(rand.NewSource(1))
	delays := make([]time.Duration, len(jobs))
	for i := range delays {
		delays[i] = time.Duration(rng.Intn(200)) * time.Microsecond
	}
	var got []int
	n, err := RunOrdered(context.Background(), 8, jobs, func(_ context.Context, j int) (int, error) {
		time.Sleep(delays[j])
		return j * 2, nil
	}, func(v int) error {
		got = append(got, v)
		return nil
	})
	if err != nil || n != len(jobs) {
		t.Fatalf("n=%d err=%v", n, err)
	}
	for i, v := range got {
		if v != i*2 {
			t.Fatalf("out of order at %d: %d", i, v)
		}
	}
}

func TestRunOrderedBoundsConcurrency(t *testing.T) {
	var cur, peak atomic.Int32
	jobs := make([]int, 50)
	_, err := RunOrdered(context.Background(), 3, jobs, func(context.Context, int) (int, error) {
		c := cur.Add(1)
		for {
			p := peak.Load()
			if c <= p || peak.CompareAndSwap(p, c) {
				break
			}
		}
		time.Sleep(100 * time.Microsecond)
		cur.Add(-1)
		return 0, nil
	}, func(int) error { return nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p := peak.Load(); p > 3 {
		t.Fatalf("peak concurrency %d > 3", p)
	}
}

func TestRunOrderedWorkError(t *testing.T) {
	boom := errors.New("boom")
	jobs := []int{0, 1, 2, 3, 4, 5}
	var sent []int
	_, err := RunOrdered(context.Background(), 2, jobs, func(_ context.Context, j int) (int, error) {
		if j == 3 {
			return 0, boom
		}
		return j, nil
	}, func(v int) error {
		sent = append(sent, v)
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	for i, v := range sent {
		if v != i || v >= 3 {
			t.Fatalf("unexpected sends: %v", sent)
		}
	}
}

func TestRunOrderedSendError(t *testing.T) {
	stop := errors.New("stop")
	n, err := RunOrdered(context.Background(), 4, make([]int, 100), func(context.Context, int) (int, error) {
		return 1, nil
	}, func(int) error { return stop })
	if !errors.Is(err, stop) || n != 0 {
		t.Fatalf("n=%d err=%v", n, err)
	}
}

func TestRunOrderedCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunOrdered(ctx, 2, []int{1, 2, 3}, func(ctx context.Context, j int) (int, error) {
		return j, ctx.Err()
	}, func(int) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestRunOrderedNoJobs(t *testing.T) {
	n, err := RunOrdered(context.Background(), 4, nil, func(context.Context, int) (int, error) {
		t.Fatal("work called")
		return 0, nil
	}, func(int) error { return nil })
	if n != 0 || err != nil {
		t.Fatalf("n=%d err=%v", n, err)
	}
}
