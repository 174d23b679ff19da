package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider(t *testing.T) {
	p := &StaticProvider{}

	md, err := p.GenerateResponse(context.Background(), "prompt", "system", nil)
	require.NoError(t, err)
	assert.Contains(t, md, "Financial diagnosis")

	prompt, system := p.LastCall()
	assert.Equal(t, "prompt", prompt)
	assert.Equal(t, "system", system)

	js, err := p.GenerateResponse(context.Background(), "prompt", "", map[string]interface{}{"response_format": "json"})
	require.NoError(t, err)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(js), &payload))
	assert.Len(t, payload["actions"], 3)
}

func TestStaticProvider_OverridesAndErrors(t *testing.T) {
	out, err := (&StaticProvider{Text: "fixed"}).GenerateResponse(context.Background(), "p", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "fixed", out)

	boom := errors.New("boom")
	_, err = (&StaticProvider{Err: boom}).GenerateResponse(context.Background(), "p", "", nil)
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = (&StaticProvider{}).GenerateResponse(ctx, "p", "", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
