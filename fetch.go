package simplequi

import (
	"fmt"
	"io"
	"net/http"
	"os"
)

// fetchFunc loads the raw bytes behind a URL. The default implementation
// understands local paths and http(s); tests substitute scripted stubs.
type fetchFunc func(url string) ([]byte, error)

// fetchBytes is the default fetchFunc. A path naming an existing local file
// wins over the network, so scripts can refer to bundled assets directly.
func fetchBytes(url string) ([]byte, error) {
	if _, err := os.Stat(url); err == nil {
		return os.ReadFile(url)
	}
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("simplequi: fetching %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("simplequi: fetching %s: %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("simplequi: reading %s: %w", url, err)
	}
	return data, nil
}

// fetchAsync runs the runtime's fetcher on its own goroutine and posts done
// back onto the application loop with the result. done therefore runs on the
// loop goroutine and may touch loop state freely.
func (rt *Runtime) fetchAsync(url string, done func(data []byte, err error)) {
	go func() {
		data, err := rt.fetch(url)
		rt.post(func() { done(data, err) })
	}()
}
