package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fake secrets are assembled at runtime to avoid secret-scanner false positives.
func fakeGitHubPAT() string     { return "ghp_" + "xxxxxxxxxxTESTONLYxxxxxxxxxx" }
func fakeGitHubApp() string     { return "ghs_" + "xxxxxxxxxxTESTONLYxxxxxxxxxx" }
func fakeFineGrained() string   { return "github_pat_" + "11TESTONLYxxxxxxxxxxxxxxxx" }
func fakeRegistryToken() string { return "testonly" + "registrytoken" }

func TestContainsSensitiveData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"github pat", "using " + fakeGitHubPAT(), true},
		{"github app token", "GH_TOKEN=" + fakeGitHubApp(), true},
		{"fine grained pat", fakeFineGrained(), true},
		{"token option", "chored run docker.login user=bot token=" + fakeRegistryToken(), true},
		{"githubToken option", "githubToken=" + fakeRegistryToken(), true},
		{"credentials in url", "https://x-access-token:" + fakeRegistryToken() + "@github.com/o/r", true},
		{"bearer", "Authorization: Bearer " + fakeGitHubPAT(), true},
		{"plain message", "building image stage builder", false},
		{"short token value", "token=abc", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, ContainsSensitiveData(tc.input))
		})
	}
}

func TestFilterSensitiveValue(t *testing.T) {
	t.Parallel()

	out := FilterSensitiveValue("push failed for " + fakeGitHubPAT() + " on main")

	assert.NotContains(t, out, fakeGitHubPAT())
	assert.Contains(t, out, RedactedValue)
	assert.Contains(t, out, "on main")
}

func TestSafeValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, RedactedValue, SafeValue("githubToken", "anything"))
	assert.Equal(t, RedactedValue, SafeValue("token", "anything"))
	assert.Equal(t, "pr", SafeValue("mode", "pr"))
	assert.Equal(t, RedactedValue, SafeValue("args", fakeGitHubPAT()))
}

func TestSafeOptions(t *testing.T) {
	t.Parallel()

	assert.Nil(t, SafeOptions(nil))
	assert.Equal(t,
		map[string]string{"user": "bot", "token": RedactedValue},
		SafeOptions(map[string]string{"user": "bot", "token": fakeRegistryToken()}),
	)
}

func TestFilteringWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewFilteringWriter(&buf)
	input := []byte(`{"level":"error","error":"gh failed: ` + fakeGitHubPAT() + `"}`)

	n, err := w.Write(input)

	require.NoError(t, err)
	assert.Equal(t, len(input), n)
	assert.NotContains(t, buf.String(), fakeGitHubPAT())
	assert.Contains(t, buf.String(), RedactedValue)
}

func TestSensitiveDataHook(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(NewSensitiveDataHook())

	logger.Info().Msg("token=" + fakeRegistryToken())
	assert.Contains(t, buf.String(), `"contains_filtered_data":true`)

	buf.Reset()
	logger.Info().Msg("nothing to see")
	assert.NotContains(t, buf.String(), "contains_filtered_data")
}
