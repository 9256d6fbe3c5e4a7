package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckrev/deckrev/internal/api"
	"github.com/deckrev/deckrev/internal/core/config"
	"github.com/deckrev/deckrev/internal/data/stores"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Server.BaseURL = "https://deck.example.com"
	cfg.Server.Token = "tok-123"
	return &cfg
}

func TestConfigCheck(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		check := &ConfigCheck{Config: testConfig(t)}
		result := check.Run(context.Background())

		require.Len(t, result.Items, 1)
		assert.Equal(t, StatusPass, result.Items[0].Status)
	})

	t.Run("field errors become fail items", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Server.BaseURL = ""
		cfg.Review.HiddenTagGlobs = []string{"[broken"}

		check := &ConfigCheck{Config: cfg}
		result := check.Run(context.Background())

		var fields []string
		for _, item := range result.Items {
			if item.Status == StatusFail {
				fields = append(fields, item.Label)
			}
		}
		assert.Contains(t, fields, "server.base_url")
		assert.Contains(t, fields, "review.hidden_tag_globs[0]")
	})

	t.Run("warnings surface as warn items", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Server.Token = ""

		check := &ConfigCheck{Config: cfg}
		result := check.Run(context.Background())

		warned := 0
		for _, item := range result.Items {
			if item.Status == StatusWarn {
				warned++
			}
		}
		assert.Equal(t, 1, warned)
	})
}

func TestStorageCheck(t *testing.T) {
	check := &StorageCheck{DataDir: t.TempDir(), KV: stores.NewMemoryKV()}
	result := check.Run(context.Background())

	require.Len(t, result.Items, 2)
	for _, item := range result.Items {
		assert.Equal(t, StatusPass, item.Status, item.Label)
	}
}

func TestStorageCheckMissingDir(t *testing.T) {
	check := &StorageCheck{DataDir: "/nonexistent/deckrev", KV: stores.NewMemoryKV()}
	result := check.Run(context.Background())

	assert.Equal(t, StatusFail, result.Items[0].Status)
	assert.Equal(t, StatusPass, result.Items[1].Status)
}

type fakeLister struct {
	commits []api.CommitSummary
	err     error
}

func (f *fakeLister) ListCommits(_ context.Context) ([]api.CommitSummary, error) {
	return f.commits, f.err
}

func TestServerCheck(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		check := &ServerCheck{Client: &fakeLister{commits: make([]api.CommitSummary, 3)}}
		result := check.Run(context.Background())

		require.Len(t, result.Items, 1)
		assert.Equal(t, StatusPass, result.Items[0].Status)
		assert.Contains(t, result.Items[0].Detail, "3 open commits")
	})

	t.Run("transport failure", func(t *testing.T) {
		check := &ServerCheck{Client: &fakeLister{err: errors.New("connection refused")}}
		result := check.Run(context.Background())

		require.Len(t, result.Items, 1)
		assert.Equal(t, StatusFail, result.Items[0].Status)
	})

	t.Run("login redirect hints at token", func(t *testing.T) {
		check := &ServerCheck{Client: &fakeLister{err: api.ErrAnomalousRedirect}}
		result := check.Run(context.Background())

		assert.Contains(t, result.Items[0].Detail, "token")
	})
}

func TestSummary(t *testing.T) {
	results := []Result{
		{Items: []CheckItem{{Status: StatusPass}, {Status: StatusWarn}}},
		{Items: []CheckItem{{Status: StatusFail}, {Status: StatusPass}}},
	}

	passed, warned, failed := Summary(results)
	assert.Equal(t, 2, passed)
	assert.Equal(t, 1, warned)
	assert.Equal(t, 1, failed)
}
