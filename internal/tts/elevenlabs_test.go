package tts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockmate/interview-api/internal/config"
	"github.com/mockmate/interview-api/internal/domain"
	"github.com/mockmate/interview-api/internal/keyring"
)

func testConfig() config.TTSConfig {
	return config.TTSConfig{
		ModelID:       "eleven_turbo_v2",
		MaleVoiceID:   "voice-male",
		FemaleVoiceID: "voice-female",
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc, apiKeys ...string) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	ring := keyring.New()
	ring.Register(keyring.ServiceElevenLabs, apiKeys...)

	client := NewClient(ring, testConfig())
	client.baseURL = server.URL
	return client
}

func TestSynthesize(t *testing.T) {
	var gotPath, gotKey string
	var gotReq synthesisRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte("mpeg-bytes"))
	}, "key-1")

	audio, err := client.Synthesize(context.Background(), "Welcome to the interview.", "male")
	require.NoError(t, err)

	assert.Equal(t, []byte("mpeg-bytes"), audio)
	assert.Equal(t, "/v1/text-to-speech/voice-male", gotPath)
	assert.Equal(t, "key-1", gotKey)
	assert.Equal(t, "Welcome to the interview.", gotReq.Text)
	assert.Equal(t, "eleven_turbo_v2", gotReq.ModelID)
	assert.InDelta(t, 0.35, gotReq.VoiceSettings.Stability, 1e-9)
	assert.InDelta(t, 0.7, gotReq.VoiceSettings.SimilarityBoost, 1e-9)
}

func TestSynthesizeDefaultsToFemaleVoice(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("ok"))
	}, "key-1")

	_, err := client.Synthesize(context.Background(), "hello", "")
	require.NoError(t, err)
	assert.Equal(t, "/v1/text-to-speech/voice-female", gotPath)
}

func TestSynthesizeRotatesKeys(t *testing.T) {
	var keys []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("xi-api-key"))
		w.Write([]byte("ok"))
	}, "key-1", "key-2")

	for i := 0; i < 3; i++ {
		_, err := client.Synthesize(context.Background(), "hello", "male")
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"key-1", "key-2", "key-1"}, keys)
}

func TestSynthesizeNoCredentials(t *testing.T) {
	client := NewClient(keyring.New(), testConfig())

	_, err := client.Synthesize(context.Background(), "hello", "male")
	assert.ErrorIs(t, err, domain.ErrNoCredentials)
}

func TestSynthesizeUpstreamFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, "key-1")

	_, err := client.Synthesize(context.Background(), "hello", "male")

	var uerr *domain.UpstreamError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, http.StatusTooManyRequests, uerr.Status)
}
