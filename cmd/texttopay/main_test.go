package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/customers":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "cus_1", "name": body["name"], "contact": map[string]string{"phone": body["phone"]}})
		case "/api/payments":
			_, _ = w.Write([]byte(`{"id":"pay_1"}`))
		case "/api/pusher-config":
			_, _ = w.Write([]byte(`{"key":"pk_live","cluster":"eu"}`))
		case "/api/health":
			_, _ = w.Write([]byte(`{"status":"OK","environment":{"hasWorldpayKey":true,"hasWorldpayMid":true,"hasPusherConfig":false}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConsole_SendListStatsClear(t *testing.T) {
	t.Setenv("APP_CONFIG_FILE", t.TempDir()+"/none.yaml")
	srv := fakeBackend(t)
	global := []string{"--server", srv.URL, "--data-file", t.TempDir() + "/console.db"}

	out, err := run(t, "", append([]string{"send", "--title", "Consulting", "--amount", "25", "--name", "Jane Doe", "--phone", "(212) 555-1234"}, global...)...)
	require.NoError(t, err)
	require.Contains(t, out, "[success] Text-to-Pay invoice sent successfully!")
	require.Contains(t, out, "Payment ID:  pay_1")
	require.Contains(t, out, "Customer:    Jane Doe (+12125551234)")
	require.Contains(t, out, "Amount:      $25.00")

	out, err = run(t, "", append([]string{"payments"}, global...)...)
	require.NoError(t, err)
	require.Contains(t, out, "pay_1")
	require.Contains(t, out, "Pending")

	out, err = run(t, "", append([]string{"stats"}, global...)...)
	require.NoError(t, err)
	require.Contains(t, out, "Total payments:  1")
	require.Contains(t, out, "Total amount:    $25.00")

	out, err = run(t, "", append([]string{"show", "pay_1"}, global...)...)
	require.NoError(t, err)
	require.Contains(t, out, "Invoice:     Consulting")
	_, err = run(t, "", append([]string{"show", "nope"}, global...)...)
	require.EqualError(t, err, "payment nope not found")

	out, err = run(t, "", append([]string{"activity"}, global...)...)
	require.NoError(t, err)
	require.Contains(t, out, "Text-to-Pay sent to Jane Doe (+12125551234) - Consulting $25.00")

	out, err = run(t, "", append([]string{"export"}, global...)...)
	require.NoError(t, err)
	var exp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &exp))
	require.Contains(t, string(exp["payments"]), `"invoiceTitle": "Consulting"`)

	out, err = run(t, "n\n", append([]string{"clear"}, global...)...)
	require.NoError(t, err)
	require.Contains(t, out, "Aborted")

	out, err = run(t, "", append([]string{"clear", "--yes"}, global...)...)
	require.NoError(t, err)
	require.Contains(t, out, "[success] All data cleared successfully")

	out, err = run(t, "", append([]string{"payments"}, global...)...)
	require.NoError(t, err)
	require.Contains(t, out, "No payments yet")
}

func TestConsole_SendValidationError(t *testing.T) {
	t.Setenv("APP_CONFIG_FILE", t.TempDir()+"/none.yaml")
	srv := fakeBackend(t)

	out, err := run(t, "", "send", "--title", "x", "--amount", "0", "--name", "a", "--phone", "2125551234", "--server", srv.URL, "--data-file", t.TempDir()+"/c.db")
	require.EqualError(t, err, "Please enter a valid title and amount greater than $0.00")
	require.Contains(t, out, "[error] Please enter a valid title and amount greater than $0.00")
}

func TestConsole_Health(t *testing.T) {
	t.Setenv("APP_CONFIG_FILE", t.TempDir()+"/none.yaml")
	srv := fakeBackend(t)

	out, err := run(t, "", "health", "--server", srv.URL, "--data-file", t.TempDir()+"/c.db")
	require.NoError(t, err)
	require.Contains(t, out, "Worldpay key:  configured")
	require.Contains(t, out, "Pusher:        missing")
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	require.Equal(t, "Just now", timeAgo(now, now.Add(-30*time.Second)))
	require.Equal(t, "5m ago", timeAgo(now, now.Add(-5*time.Minute)))
	require.Equal(t, "3h ago", timeAgo(now, now.Add(-3*time.Hour-10*time.Minute)))
	require.Equal(t, "2d ago", timeAgo(now, now.Add(-49*time.Hour)))
}

func TestDollars(t *testing.T) {
	require.Equal(t, "$25.00", dollars(2500))
	require.Equal(t, "$0.99", dollars(99))
	require.Equal(t, "$1234.50", dollars(123450))
}

func TestConsole_WatchOnPusherNamesBackendApp(t *testing.T) {
	t.Setenv("APP_CONFIG_FILE", t.TempDir()+"/none.yaml")
	srv := fakeBackend(t)

	_, err := run(t, "", "watch", "--server", srv.URL, "--data-file", t.TempDir()+"/console.db")
	require.Error(t, err)
	require.Contains(t, err.Error(), "pusher app key pk_live (cluster eu)")
	require.Contains(t, err.Error(), "broadcast.driver=redis")
}
