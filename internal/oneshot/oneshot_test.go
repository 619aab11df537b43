package oneshot

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestOneshot_SendRecv(t *testing.T) {
	t.Run("value delivered", func(t *testing.T) {
		tx, rx := New[string]()

		go func() {
			time.Sleep(50 * time.Millisecond)
			tx.Send("success")
		}()

		value, err := rx.Recv(context.Background())

		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if value != "success" {
			t.Errorf("expected value 'success', got %v", value)
		}
	})

	t.Run("first send wins", func(t *testing.T) {
		tx, rx := New[int]()

		if !tx.Send(1) {
			t.Error("expected first Send to resolve the channel")
		}
		if tx.Send(2) {
			t.Error("expected second Send to be a no-op")
		}

		value, err := rx.Recv(context.Background())
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if value != 1 {
			t.Errorf("expected value 1, got %v", value)
		}
	})

	t.Run("repeated Recv returns same result", func(t *testing.T) {
		tx, rx := New[int]()

		go func() {
			tx.Send(123)
		}()

		value1, err1 := rx.Recv(context.Background())
		value2, err2 := rx.Recv(context.Background())

		if value1 != value2 || err1 != err2 {
			t.Errorf("Recv calls returned different results")
		}
		if value1 != 123 {
			t.Errorf("expected value 123, got %v", value1)
		}
	})

	t.Run("send after close is a no-op", func(t *testing.T) {
		tx, rx := New[int]()

		tx.Close()
		if tx.Send(7) {
			t.Error("expected Send after Close to be a no-op")
		}

		_, err := rx.Recv(context.Background())
		if err != ErrDisconnected {
			t.Errorf("expected ErrDisconnected, got %v", err)
		}
	})
}

func TestOneshot_Close(t *testing.T) {
	t.Run("close without value", func(t *testing.T) {
		tx, rx := New[string]()

		go func() {
			time.Sleep(20 * time.Millisecond)
			tx.Close()
		}()

		value, err := rx.Recv(context.Background())

		if err != ErrDisconnected {
			t.Errorf("expected ErrDisconnected, got %v", err)
		}
		if value != "" {
			t.Errorf("expected zero value, got %v", value)
		}
	})

	t.Run("close with cause", func(t *testing.T) {
		tx, rx := New[string]()
		cause := errors.New("task blew up")

		tx.CloseWithError(cause)

		_, err := rx.Recv(context.Background())
		if err != cause {
			t.Errorf("expected recorded cause, got %v", err)
		}
	})

	t.Run("close with nil cause behaves like Close", func(t *testing.T) {
		tx, rx := New[int]()

		tx.CloseWithError(nil)

		_, err := rx.Recv(context.Background())
		if err != ErrDisconnected {
			t.Errorf("expected ErrDisconnected, got %v", err)
		}
	})

	t.Run("close after send is a no-op", func(t *testing.T) {
		tx, rx := New[int]()

		tx.Send(42)
		tx.Close()

		value, err := rx.Recv(context.Background())
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if value != 42 {
			t.Errorf("expected value 42, got %v", value)
		}
	})

	t.Run("closed state is stable", func(t *testing.T) {
		tx, rx := New[int]()
		cause := errors.New("gone")

		tx.CloseWithError(cause)

		for i := 0; i < 3; i++ {
			_, err := rx.Recv(context.Background())
			if err != cause {
				t.Errorf("expected stable cause, got %v", err)
			}
		}
	})
}

func TestOneshot_RecvContext(t *testing.T) {
	t.Run("context timeout before resolution", func(t *testing.T) {
		tx, rx := New[string]()
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		go func() {
			time.Sleep(200 * time.Millisecond)
			tx.Send("too late")
		}()

		value, err := rx.Recv(ctx)

		if err != context.DeadlineExceeded {
			t.Errorf("expected context.DeadlineExceeded, got %v", err)
		}
		if value != "" {
			t.Errorf("expected zero value, got %v", value)
		}
	})

	t.Run("context error is not terminal", func(t *testing.T) {
		tx, rx := New[int]()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := rx.Recv(ctx); err != context.Canceled {
			t.Fatalf("expected context.Canceled, got %v", err)
		}

		tx.Send(5)

		value, err := rx.Recv(context.Background())
		if err != nil {
			t.Errorf("expected no error after resend, got %v", err)
		}
		if value != 5 {
			t.Errorf("expected value 5, got %v", value)
		}
	})
}

func TestOneshot_TryRecv(t *testing.T) {
	t.Run("not ready", func(t *testing.T) {
		_, rx := New[string]()

		value, ready, err := rx.TryRecv()

		if ready {
			t.Error("expected ready to be false")
		}
		if value != "" {
			t.Errorf("expected zero value, got %v", value)
		}
		if err != nil {
			t.Errorf("expected nil error, got %v", err)
		}
	})

	t.Run("ready after send", func(t *testing.T) {
		tx, rx := New[string]()

		tx.Send("ready")

		value, ready, err := rx.TryRecv()

		if !ready {
			t.Error("expected ready to be true")
		}
		if value != "ready" {
			t.Errorf("expected value 'ready', got %v", value)
		}
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("repeated TryRecv after resolution", func(t *testing.T) {
		tx, rx := New[int]()

		tx.Send(789)

		value1, ready1, err1 := rx.TryRecv()
		value2, ready2, err2 := rx.TryRecv()

		if !ready1 || !ready2 {
			t.Error("expected both calls to be ready")
		}
		if value1 != value2 || err1 != err2 {
			t.Errorf("TryRecv calls returned different results")
		}
	})
}

func TestOneshot_Done(t *testing.T) {
	t.Run("closed on resolution", func(t *testing.T) {
		tx, rx := New[string]()

		select {
		case <-rx.Done():
			t.Error("Done channel should not be closed yet")
		case <-time.After(50 * time.Millisecond):
		}

		tx.Send("done")

		select {
		case <-rx.Done():
		case <-time.After(200 * time.Millisecond):
			t.Error("Done channel should be closed after resolution")
		}
	})

	t.Run("use Done in select", func(t *testing.T) {
		tx, rx := New[string]()

		go func() {
			time.Sleep(50 * time.Millisecond)
			tx.Send("selected")
		}()

		select {
		case <-rx.Done():
			value, ready, err := rx.TryRecv()
			if !ready || err != nil || value != "selected" {
				t.Errorf("unexpected outcome: value=%v, ready=%v, err=%v", value, ready, err)
			}
		case <-time.After(200 * time.Millisecond):
			t.Error("timeout waiting for Done")
		}
	})
}

func TestOneshot_IsReady(t *testing.T) {
	tx, rx := New[string]()

	if rx.IsReady() {
		t.Error("expected IsReady to be false before resolution")
	}

	tx.Send("ready")

	if !rx.IsReady() {
		t.Error("expected IsReady to be true after resolution")
	}
}

func TestOneshot_ConcurrentObservers(t *testing.T) {
	tx, rx := New[int]()

	go func() {
		time.Sleep(50 * time.Millisecond)
		tx.Send(999)
	}()

	done := make(chan bool, 10)

	for i := 0; i < 10; i++ {
		go func() {
			value, err := rx.Recv(context.Background())
			if err != nil || value != 999 {
				t.Errorf("unexpected result: value=%v, err=%v", value, err)
			}
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		select {
		case <-done:
		case <-time.After(500 * time.Millisecond):
			t.Fatal("timeout waiting for concurrent Recv calls")
		}
	}
}
