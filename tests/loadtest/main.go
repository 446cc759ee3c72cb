package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/pflag"
)

const numIDs = 500

var (
	baseURL      = pflag.String("url", "http://127.0.0.1:8080", "recstore base url")
	numWorkers   = pflag.Int("workers", 50, "concurrent workers")
	testDuration = pflag.Duration("duration", 10*time.Second, "duration of each phase")
)

var kinds = []string{"video", "user", "group"}

var uniqueKeys = map[string]string{
	"video": "file_id",
	"user":  "user_id",
	"group": "group_id",
}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	pflag.Parse()

	fmt.Println("=== recstore Load Test ===")
	fmt.Printf("Target: %s | Workers: %d | Duration: %s | IDs: %d\n\n", *baseURL, *numWorkers, *testDuration, numIDs)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(*baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			os.Exit(1)
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Saves without a lock race on the same file, so the write phase
	// reports throughput, not record counts.
	fmt.Println("\n--- Phase 1: Upserts (POST /) ---")
	runPhase(*testDuration, *numWorkers, func(rng *rand.Rand) result {
		return doSave(rng)
	})

	fmt.Println("\n--- Phase 2: Mixed load (50% POST, 50% GET) ---")
	runPhase(*testDuration, *numWorkers, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.45:
			return doSave(rng)
		case r < 0.50:
			return doSaveConfig(rng)
		case r < 0.95:
			return doLoad(kinds[rng.Intn(len(kinds))])
		default:
			return doLoad("config")
		}
	})

	fmt.Println("\n--- Phase 3: Read-heavy load (5% POST, 95% GET) ---")
	runPhase(*testDuration, *numWorkers, func(rng *rand.Rand) result {
		if rng.Float64() < 0.05 {
			return doSave(rng)
		}
		return doLoad(kinds[rng.Intn(len(kinds))])
	})
}

func runPhase(duration time.Duration, workers int, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func post(endpoint string, body map[string]interface{}) result {
	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(*baseURL+"/", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func doSave(rng *rand.Rand) result {
	kind := kinds[rng.Intn(len(kinds))]
	return post("POST / "+kind, map[string]interface{}{
		"type": kind,
		"data": map[string]interface{}{
			uniqueKeys[kind]: fmt.Sprintf("%s-%d", kind, rng.Intn(numIDs)+1),
			"updated_at":     time.Now().UnixMilli(),
		},
	})
}

func doSaveConfig(rng *rand.Rand) result {
	return post("POST / config", map[string]interface{}{
		"type": "config",
		"data": map[string]interface{}{"revision": rng.Intn(1000)},
	})
}

func doLoad(kind string) result {
	endpoint := "GET / " + kind
	start := time.Now()
	resp, err := httpClient.Get(*baseURL + "/?type=" + kind)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
