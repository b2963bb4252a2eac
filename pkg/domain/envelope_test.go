package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/atriumhq/atrium/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeConstructors(t *testing.T) {
	ok := domain.OK(42)
	assert.True(t, ok.Success)
	assert.Equal(t, 42, ok.Data)
	assert.Empty(t, ok.Message)

	fail := domain.Fail[int]("quota exceeded")
	assert.False(t, fail.Success)
	assert.Equal(t, "quota exceeded", fail.Message)
	assert.Zero(t, fail.Data)
}

func TestEnvelopeReasonFallback(t *testing.T) {
	assert.Equal(t, "nope", domain.Fail[string]("nope").Reason())
	assert.Equal(t, domain.FallbackMessage, domain.Fail[string]("").Reason())
}

func TestEnvelopeJSONShape(t *testing.T) {
	raw, err := json.Marshal(domain.OK([]string{"a"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":["a"]}`, string(raw))

	var env domain.Envelope[[]string]
	require.NoError(t, json.Unmarshal([]byte(`{"success":false,"data":null,"message":"closed"}`), &env))
	assert.False(t, env.Success)
	assert.Nil(t, env.Data)
	assert.Equal(t, "closed", env.Message)
}

func TestJobPostingMatches(t *testing.T) {
	job := domain.JobPosting{Title: "Backend Engineer", Company: "Maple Systems", Location: "Remote"}
	assert.True(t, job.Matches("backend"))
	assert.True(t, job.Matches("  MAPLE "))
	assert.False(t, job.Matches("designer"))
	assert.False(t, job.Matches("   "))
}
