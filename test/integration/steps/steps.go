package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

const notificationOrderKey = "insights:notifications:order"

// registerStoreSteps registers steps that arrange the Transaction Store double.
func registerStoreSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the transaction store has the categories:$`, theStoreHasTheCategories)
	ctx.Step(`^the transaction store has the transactions:$`, theStoreHasTheTransactions)
	ctx.Step(`^the transaction store is unavailable$`, theStoreIsUnavailable)
	ctx.Step(`^the transaction store recovers$`, theStoreRecovers)
	ctx.Step(`^the store should contain (\d+) rows in the "([^"]*)" table$`, theStoreShouldContainRows)
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
	ctx.Step(`^I dismiss the first notification$`, iDismissTheFirstNotification)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, theResponseFieldShouldHaveItems)
	ctx.Step(`^the response header "([^"]*)" should be "([^"]*)"$`, theResponseHeaderShouldBe)
	ctx.Step(`^redis should hold (\d+) notifications?$`, redisShouldHoldNotifications)
}

// Store steps

func theStoreHasTheCategories(table *godog.Table) error {
	for _, row := range rowsOf(table) {
		if err := testStore.SeedCategory(row["name"], row["type"]); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", row["name"], err)
		}
	}
	return nil
}

func theStoreHasTheTransactions(table *godog.Table) error {
	for _, row := range rowsOf(table) {
		amount, err := decimal.NewFromString(row["amount"])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", row["amount"], err)
		}
		date, err := time.Parse("2006-01-02", row["date"])
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", row["date"], err)
		}
		if err := testStore.SeedTransaction(amount, row["type"], row["category"], row["description"], date); err != nil {
			return fmt.Errorf("failed to seed transaction: %w", err)
		}
	}
	return nil
}

func theStoreIsUnavailable() error {
	testStore.SetDown(true)
	return nil
}

func theStoreRecovers() error {
	testStore.SetDown(false)
	return nil
}

func theStoreShouldContainRows(quantity int, table string) error {
	count, err := testDB.Count(table)
	if err != nil {
		return err
	}
	if count != int64(quantity) {
		return fmt.Errorf("expected %d rows in '%s', got %d", quantity, table, count)
	}
	return nil
}

// rowsOf maps every data row of a table to its header cells.
func rowsOf(table *godog.Table) []map[string]string {
	if len(table.Rows) == 0 {
		return nil
	}
	header := table.Rows[0].Cells
	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			values[header[i].Value] = cell.Value
		}
		rows = append(rows, values)
	}
	return rows
}

// API steps

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) (context.Context, error) {
	return executeRequest(ctx, method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) (context.Context, error) {
	return executeRequest(ctx, method, endpoint, []byte(body.Content))
}

func iSetHeaderTo(ctx context.Context, header, value string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.requestHeaders[header] = value
	return SetTestContext(ctx, tc), nil
}

func iDismissTheFirstNotification(ctx context.Context) (context.Context, error) {
	ctx, err := executeRequest(ctx, http.MethodGet, "/api/v1/notifications", nil)
	if err != nil {
		return ctx, err
	}
	id, ok := fieldValue(GetTestContext(ctx).responseBody, "notifications.0.id").(string)
	if !ok {
		return ctx, errors.New("no notification to dismiss")
	}
	return executeRequest(ctx, http.MethodDelete, "/api/v1/notifications/"+id, nil)
}

func executeRequest(ctx context.Context, method, endpoint string, payload []byte) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, tc.server.URL+endpoint, body)
	if err != nil {
		return ctx, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return ctx, fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return ctx, fmt.Errorf("failed to read response body: %w", err)
	}

	return SetTestContext(ctx, tc), nil
}

// Response steps

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.response == nil {
		return errors.New("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.response == nil {
		return errors.New("no response received")
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.response == nil {
		return errors.New("no response received")
	}
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.response == nil {
		return errors.New("no response received")
	}

	value := fieldValue(tc.responseBody, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %s", field, string(tc.responseBody))
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.response == nil {
		return errors.New("no response received")
	}
	if fieldValue(tc.responseBody, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %s", field, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldHaveItems(ctx context.Context, field string, quantity int) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.response == nil {
		return errors.New("no response received")
	}

	items, ok := fieldValue(tc.responseBody, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %s", field, string(tc.responseBody))
	}
	if len(items) != quantity {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, quantity, len(items))
	}
	return nil
}

func theResponseHeaderShouldBe(ctx context.Context, header, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.response == nil {
		return errors.New("no response received")
	}
	if actual := tc.response.Header.Get(header); actual != expected {
		return fmt.Errorf("header '%s' expected '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func redisShouldHoldNotifications(quantity int) error {
	count, err := testRedis.Client.ZCard(context.Background(), notificationOrderKey).Result()
	if err != nil {
		return err
	}
	if count != int64(quantity) {
		return fmt.Errorf("expected %d notifications in redis, got %d", quantity, count)
	}
	return nil
}

// fieldValue walks a dot separated path through a JSON document. Numeric
// segments index into arrays.
func fieldValue(document []byte, dotSeparatedField string) any {
	var field any
	if err := json.Unmarshal(document, &field); err != nil {
		return nil
	}

	for _, current := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(current); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[current]
	}

	return field
}
