//go:build integration

// Package integration provides BDD integration tests using Godog/Cucumber.
// The API runs against an HTTP double of the Transaction Store and miniredis.
package integration

import (
	"os"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/finance-tracker/insights/test/integration/steps"
)

// TestFeatures runs every scenario under features/.
// GODOG_TAGS filters scenarios and GODOG_FORMAT overrides the pretty printer.
func TestFeatures(t *testing.T) {
	opts := godog.Options{
		Format:      "pretty",
		Paths:       []string{"features"},
		Output:      colors.Colored(os.Stdout),
		Concurrency: 1, // scenarios share the store double
		Strict:      true,
		TestingT:    t,
	}

	if tags := os.Getenv("GODOG_TAGS"); tags != "" {
		opts.Tags = tags
	}
	if format := os.Getenv("GODOG_FORMAT"); format != "" {
		opts.Format = format
	}

	suite := godog.TestSuite{
		Name:                 "finance-tracker-insights",
		ScenarioInitializer:  steps.InitializeScenario,
		TestSuiteInitializer: steps.InitializeTestSuite,
		Options:              &opts,
	}

	if suite.Run() != 0 {
		t.Fatal("feature scenarios failed")
	}
}
