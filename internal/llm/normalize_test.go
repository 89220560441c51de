package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_TaggedFence(t *testing.T) {
	raw := "Here you go:\n```json\n{\"text_response\":\"hi\"}\n```\nanything else?"

	reply := Normalize(raw)

	assert.Equal(t, "hi", reply.TextResponse)
	assert.Equal(t, "hi", reply.VoiceResponse)
	assert.False(t, reply.End)
}

func TestNormalize_UntaggedFence(t *testing.T) {
	raw := "```\n{\"text_response\":\"great answer\",\"end\":true}\n```"

	reply := Normalize(raw)

	assert.Equal(t, "great answer", reply.TextResponse)
	assert.True(t, reply.End)
}

func TestNormalize_BareJSON(t *testing.T) {
	reply := Normalize(`{"text_response":"ok","voice_response":"okay!"}`)

	assert.Equal(t, "ok", reply.TextResponse)
	assert.Equal(t, "okay!", reply.VoiceResponse)
}

func TestNormalize_EmbeddedObject(t *testing.T) {
	reply := Normalize("blah {\"text_response\":\"ok\"} blah")

	assert.Equal(t, "ok", reply.TextResponse)
	assert.Equal(t, "ok", reply.VoiceResponse)
	assert.False(t, reply.End)
}

func TestNormalize_ProseFallback(t *testing.T) {
	raw := "Sorry, I cannot format that as requested."

	reply := Normalize(raw)

	assert.Equal(t, raw, reply.TextResponse)
	assert.Equal(t, raw, reply.VoiceResponse)
	assert.False(t, reply.End)
}

func TestNormalize_MalformedFenceFallsThrough(t *testing.T) {
	// fence interior is broken, but the raw text still carries a valid object
	raw := "```json\nnot json at all\n``` trailing {\"text_response\":\"saved\"}"

	reply := Normalize(raw)

	assert.Equal(t, "saved", reply.TextResponse)
}

func TestNormalize_NeverEmptyHanded(t *testing.T) {
	reply := Normalize("")

	assert.NotNil(t, reply)
	assert.Equal(t, "", reply.TextResponse)
	assert.False(t, reply.End)
}
