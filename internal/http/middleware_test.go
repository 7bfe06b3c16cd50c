package http

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/draft-league/internal/http/handlers"
	"github.com/stretchr/testify/assert"
)

func TestParamsMiddleware_VerboseIsRequestScoped(t *testing.T) {
	originalLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	t.Cleanup(func() { log.SetLevel(originalLevel) })

	var mu sync.Mutex
	levels := map[string]log.Level{}
	handler := paramsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		levels[r.URL.Query().Get("id")] = log.FromContext(r.Context()).GetLevel()
		assert.Equal(t, log.InfoLevel, log.GetLevel())
	}))

	var wg sync.WaitGroup
	for _, target := range []string{"/health?id=quiet", "/health?id=loud&verbose=true"} {
		wg.Add(1)
		go func(target string) {
			defer wg.Done()
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", target, nil))
		}(target)
	}
	wg.Wait()

	assert.Equal(t, log.InfoLevel, levels["quiet"])
	assert.Equal(t, log.DebugLevel, levels["loud"])
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}

func TestParamsMiddleware_DryRun(t *testing.T) {
	var dryRun bool
	handler := paramsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dryRun = handlers.IsDryRunFromContext(r)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/sets?dry_run=true", nil))
	assert.True(t, dryRun)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/sets", nil))
	assert.False(t, dryRun)
}
