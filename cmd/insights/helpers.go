package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"

	"github.com/finance-tracker/insights/internal/application/usecase/dashboard"
	"github.com/finance-tracker/insights/internal/domain/entity"
	"github.com/finance-tracker/insights/internal/integration/store"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// loadViews fetches one snapshot from the store and derives every view from it.
func loadViews(ctx context.Context) (*entity.Views, error) {
	client, err := store.NewClient(store.Config{
		BaseURL: viper.GetString("store.url"),
		Timeout: viper.GetDuration("store.timeout"),
	})
	if err != nil {
		return nil, err
	}

	refresh := dashboard.NewRefreshDashboardUseCase(client, dashboard.NewViewState(), nil)
	views, err := refresh.Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}
	return views, nil
}

func jsonOutput() bool {
	return viper.GetString("output") == outputJSON
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
