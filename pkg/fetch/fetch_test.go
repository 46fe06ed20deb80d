package fetch

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/tempo-ui/tempo/pkg/loop"
	"github.com/tempo-ui/tempo/pkg/sched"
)

// fetch resolves tasks from a real goroutine, so these tests run on the
// system clock and synchronize with WaitFor instead of a virtual advance.

func waitSettled(t *testing.T, s *sched.Scheduler, task *loop.Task) {
	t.Helper()
	err := s.WaitFor(func() error {
		if !task.Settled() {
			return errors.New("task not settled")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("waiting for fetch: %v", err)
	}
}

func TestGetResolvesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "hello body")
	}))
	defer srv.Close()

	l := loop.New(nil)
	s := sched.New(sched.WithLoop(l))
	t.Cleanup(s.Close)

	task := Get(l, nil, srv.URL)
	waitSettled(t, s, task)

	var got []byte
	task.Then(func(v any, err error) {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		got = v.([]byte)
	})
	l.DrainMicrotasks()

	if string(got) != "hello body" {
		t.Errorf("expected body, got %q", got)
	}
}

func TestGetRejectsOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	l := loop.New(nil)
	s := sched.New(sched.WithLoop(l))
	t.Cleanup(s.Close)

	task := Get(l, nil, srv.URL)
	waitSettled(t, s, task)

	if _, err := task.Result(); err == nil {
		t.Error("expected rejection for 500 response")
	}
}

func TestGetJSONDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `["jill","bob"]`)
	}))
	defer srv.Close()

	l := loop.New(nil)
	s := sched.New(sched.WithLoop(l))
	t.Cleanup(s.Close)

	task := GetJSON(l, nil, srv.URL)
	waitSettled(t, s, task)

	v, err := task.Result()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []any{"jill", "bob"}; !reflect.DeepEqual(v, want) {
		t.Errorf("expected %v, got %v", want, v)
	}
}

func TestGetJSONRejectsBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{not json`)
	}))
	defer srv.Close()

	l := loop.New(nil)
	s := sched.New(sched.WithLoop(l))
	t.Cleanup(s.Close)

	task := GetJSON(l, nil, srv.URL)
	waitSettled(t, s, task)

	if _, err := task.Result(); err == nil {
		t.Error("expected rejection for malformed JSON")
	}
}

func TestGetRejectsBadURL(t *testing.T) {
	l := loop.New(nil)

	task := Get(l, nil, "http://\x00invalid")
	if !task.Settled() {
		t.Fatal("expected immediate rejection for unparsable URL")
	}
	if _, err := task.Result(); err == nil {
		t.Error("expected error result")
	}
}
