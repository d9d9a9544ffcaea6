package clients

import (
	"context"
	"net/http"
	"sync"
	"time"
)

type HealthProbe struct {
	Name   string
	Client *Client
	Path   string
}

type HealthResult struct {
	Name       string `json:"name"`
	OK         bool   `json:"ok"`
	StatusCode int    `json:"statusCode,omitempty"`
	Error      string `json:"error,omitempty"`
}

func CheckHealth(ctx context.Context, probe HealthProbe) HealthResult {
	// Short probe timeout
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	resp, err := probe.Client.Do(ctx, http.MethodGet, probe.Path, "", nil, http.Header{})
	if err != nil {
		return HealthResult{Name: probe.Name, OK: false, Error: err.Error()}
	}
	defer resp.Body.Close()

	// ASMX service roots answer 200 on GET; anything below 500 means the host is up.
	ok := resp.StatusCode < 500
	return HealthResult{Name: probe.Name, OK: ok, StatusCode: resp.StatusCode}
}

// CheckAll runs every probe concurrently and returns results in probe order.
func CheckAll(ctx context.Context, probes []HealthProbe) []HealthResult {
	results := make([]HealthResult, len(probes))
	var wg sync.WaitGroup
	for i, p := range probes {
		wg.Add(1)
		go func(i int, p HealthProbe) {
			defer wg.Done()
			results[i] = CheckHealth(ctx, p)
		}(i, p)
	}
	wg.Wait()
	return results
}
