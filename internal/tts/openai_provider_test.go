package tts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dooshek/scriptvoice/internal/narration"
	"github.com/dooshek/scriptvoice/internal/types"
	"github.com/dooshek/scriptvoice/pkg/wav"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIProviderRequestsPCMPerSegment(t *testing.T) {
	var mu sync.Mutex
	var requests []map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/audio/speech") {
			http.NotFound(w, r)
			return
		}
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		requests = append(requests, body)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(make([]byte, 100))
	}))
	defer srv.Close()

	cfg := openai.DefaultConfig("sk-test")
	cfg.BaseURL = srv.URL + "/v1"
	p := newOpenAITTSProvider(openai.NewClientWithConfig(cfg), OpenAIConfig{},
		types.NarrationConfig{Pause: 100 * time.Millisecond})

	plan, err := narration.Build(strings.NewReader("#alice\nhello\n#bob\nhello"), "alice")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.wav")
	require.NoError(t, p.Synthesize(context.Background(), plan, "onyx", path))

	// "hello" is requested once thanks to the cache
	require.Len(t, requests, 3)
	assert.Equal(t, "alice", requests[0]["input"])
	assert.Equal(t, "pcm", requests[0]["response_format"])
	assert.Equal(t, "onyx", requests[0]["voice"])
	assert.Equal(t, "tts-1-hd", requests[0]["model"])

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	h, err := wav.ReadHeader(f)
	require.NoError(t, err)

	pause := len(silence(100 * time.Millisecond))
	assert.Equal(t, 6*pause+4*100, h.DataSize)
}

func TestOpenAIProviderVoices(t *testing.T) {
	p := NewOpenAITTSProvider("sk-test", OpenAIConfig{}, types.NarrationConfig{})
	voices, err := p.GetAvailableVoices(context.Background())
	require.NoError(t, err)
	assert.Contains(t, voices, "onyx")

	rt := NewRealtimeTTSProvider("sk-test", RealtimeConfig{}, types.NarrationConfig{})
	voices, err = rt.GetAvailableVoices(context.Background())
	require.NoError(t, err)
	assert.Contains(t, voices, "verse")
	assert.Equal(t, "gpt-4o-realtime-preview", rt.config.Model)
}
