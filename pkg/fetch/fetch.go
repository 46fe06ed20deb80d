// Package fetch is a two-function network-fetch wrapper for components.
//
// Both functions return a loop.Task that settles through the loop's
// microtask queue, so component state written from a completion callback is
// observed by FlushAsync and WaitFor like any other promise-chained update.
// Tests normally substitute the Client with a stub and resolve tasks
// deterministically instead of touching the network.
package fetch

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tempo-ui/tempo/pkg/loop"
)

// Client is the subset of *http.Client the wrapper needs.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

// Get fetches url and resolves the returned task with the response body as
// []byte. Non-2xx statuses reject the task. A nil client uses
// http.DefaultClient.
func Get(l *loop.Loop, client Client, url string) *loop.Task {
	task := loop.NewTask(l)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		task.Reject(err)
		return task
	}

	if client == nil {
		client = http.DefaultClient
	}

	go func() {
		resp, err := client.Do(req)
		if err != nil {
			task.Reject(err)
			return
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			task.Reject(err)
			return
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			task.Reject(fmt.Errorf("fetch: %s returned %s", url, resp.Status))
			return
		}

		task.Resolve(body)
	}()

	return task
}

// GetJSON fetches url and resolves the returned task with the decoded JSON
// body (the usual any-typed map/slice shapes from encoding/json).
func GetJSON(l *loop.Loop, client Client, url string) *loop.Task {
	task := loop.NewTask(l)

	Get(l, client, url).Then(func(v any, err error) {
		if err != nil {
			task.Reject(err)
			return
		}

		var decoded any
		if err := json.Unmarshal(v.([]byte), &decoded); err != nil {
			task.Reject(fmt.Errorf("fetch: decoding %s: %w", url, err))
			return
		}
		task.Resolve(decoded)
	})

	return task
}
