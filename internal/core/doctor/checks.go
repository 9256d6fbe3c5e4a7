package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/deckrev/deckrev/internal/api"
	"github.com/deckrev/deckrev/internal/core/config"
	"github.com/deckrev/deckrev/internal/core/kv"
)

// ConfigCheck validates the loaded configuration, reporting one item per
// failing field plus any non-fatal warnings.
type ConfigCheck struct {
	Config     *config.Config
	ConfigPath string
}

func (c *ConfigCheck) Name() string { return "Configuration" }

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	err := c.Config.ValidateDeep(c.ConfigPath)
	switch {
	case err == nil:
		result.Items = append(result.Items, CheckItem{Label: "config valid", Status: StatusPass})
	default:
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				result.Items = append(result.Items, CheckItem{
					Label:  fe.Field,
					Status: StatusFail,
					Detail: fe.Err.Error(),
				})
			}
		} else {
			result.Items = append(result.Items, CheckItem{
				Label:  "config",
				Status: StatusFail,
				Detail: err.Error(),
			})
		}
	}

	for _, w := range c.Config.Warnings() {
		result.Items = append(result.Items, CheckItem{
			Label:  w.Category + " " + w.Item,
			Status: StatusWarn,
			Detail: w.Message,
		})
	}

	return result
}

// StorageCheck verifies the data directory is writable and the key-value
// store round-trips a value.
type StorageCheck struct {
	DataDir string
	KV      kv.KV
}

func (c *StorageCheck) Name() string { return "Local storage" }

func (c *StorageCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	probe := filepath.Join(c.DataDir, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o600); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "data directory writable",
			Status: StatusFail,
			Detail: err.Error(),
		})
	} else {
		_ = os.Remove(probe)
		result.Items = append(result.Items, CheckItem{Label: "data directory writable", Status: StatusPass})
	}

	key := fmt.Sprintf("doctor/probe-%d", time.Now().UnixNano())
	var got string
	err := c.KV.Set(ctx, key, "ok")
	if err == nil {
		err = c.KV.Get(ctx, key, &got)
	}
	if err == nil {
		err = c.KV.Delete(ctx, key)
	}
	if err != nil || got != "ok" {
		detail := "value did not round-trip"
		if err != nil {
			detail = err.Error()
		}
		result.Items = append(result.Items, CheckItem{
			Label:  "state store round-trip",
			Status: StatusFail,
			Detail: detail,
		})
	} else {
		result.Items = append(result.Items, CheckItem{Label: "state store round-trip", Status: StatusPass})
	}

	return result
}

// CommitLister is the slice of the API client the server check needs.
type CommitLister interface {
	ListCommits(ctx context.Context) ([]api.CommitSummary, error)
}

// ServerCheck verifies the deck platform answers an authenticated request.
type ServerCheck struct {
	Client  CommitLister
	Timeout time.Duration
}

func (c *ServerCheck) Name() string { return "Server" }

func (c *ServerCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	commits, err := c.Client.ListCommits(ctx)
	if err != nil {
		status := StatusFail
		detail := err.Error()
		if errors.Is(err, api.ErrAnomalousRedirect) {
			detail = "redirected to login, token is missing or expired"
		}
		result.Items = append(result.Items, CheckItem{
			Label:  "commit overview reachable",
			Status: status,
			Detail: detail,
		})
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:  "commit overview reachable",
		Status: StatusPass,
		Detail: fmt.Sprintf("%d open commits", len(commits)),
	})
	return result
}
