package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/Veraticus/shopimpact/internal/common"
	"github.com/Veraticus/shopimpact/internal/config"
	"github.com/Veraticus/shopimpact/internal/impact"
	"github.com/Veraticus/shopimpact/internal/service"
	"github.com/Veraticus/shopimpact/internal/sheets"
	"github.com/Veraticus/shopimpact/internal/tracker"
)

type testEnv struct {
	t    *testing.T
	data string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	keyring.MockInit()
	return &testEnv{t: t, data: filepath.Join(home, "state.json")}
}

// run executes the root command with the env's data file and returns what it
// printed.
func (e *testEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()
	viper.Reset()
	e.t.Cleanup(viper.Reset)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--data", e.data, "--log-level", "error"))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run("", args...)
	require.NoError(e.t, err, out)
	return out
}

func TestVersionCommand(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun("version")
	assert.Equal(t, "shopimpact dev\n", out)
}

func TestLogCommand(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("log", "--category", "Books (Used)", "--brand", "Goodwill", "--price", "100")
	assert.Contains(t, out, "Logged Books (Used) from Goodwill")
	assert.Contains(t, out, "Badge unlocked!")
	assert.Contains(t, out, "Low Carbon")

	out = env.mustRun("log", "--category", "Electronics", "--price", "500")
	assert.Contains(t, out, "Logged Electronics for 500.00")
	assert.Contains(t, out, "Greener option:")

	history := env.mustRun("history")
	assert.Contains(t, history, "Goodwill")
	assert.Contains(t, history, "Electronics")
	assert.Less(t, strings.Index(history, "Electronics"), strings.Index(history, "Goodwill"), "newest first")
}

func TestLogCommandRejectsBadPrice(t *testing.T) {
	tests := []struct {
		name  string
		price string
	}{
		{name: "zero", price: "0"},
		{name: "negative", price: "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			_, err := env.run("", "log", "--category", "Books", "--price", tt.price)
			require.Error(t, err)
			assert.ErrorIs(t, err, impact.ErrInvalidPrice)

			out := env.mustRun("history")
			assert.Contains(t, out, "No purchases yet")
		})
	}
}

func TestHistoryLimit(t *testing.T) {
	env := newTestEnv(t)
	for _, category := range []string{"Books", "Coffee", "Games"} {
		env.mustRun("log", "--category", category, "--price", "10")
	}

	out := env.mustRun("history", "--limit", "2")
	assert.Contains(t, out, "Games")
	assert.Contains(t, out, "Coffee")
	assert.NotContains(t, out, "Books")
}

func TestBadgesCommand(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("log", "--category", "Books (Used)", "--price", "100")

	out := env.mustRun("badges")
	assert.Contains(t, out, "Badges 1/17")
	assert.Contains(t, out, "Low Carbon")
	assert.Contains(t, out, "First Step")

	out = env.mustRun("badges", "--unlocked")
	assert.Contains(t, out, "Low Carbon")
	assert.NotContains(t, out, "First Step")
}

func TestResetCommand(t *testing.T) {
	t.Run("force", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustRun("log", "--category", "Books (Used)", "--price", "100")

		out := env.mustRun("reset", "--force")
		assert.Contains(t, out, "All data has been reset")

		assert.Contains(t, env.mustRun("history"), "No purchases yet")
		assert.Contains(t, env.mustRun("badges"), "Badges 0/17")
	})

	t.Run("declined", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustRun("log", "--category", "Books (Used)", "--price", "100")

		out, err := env.run("n\n", "reset")
		require.NoError(t, err)
		assert.Contains(t, out, "This will delete 1 purchases and 1 badges.")
		assert.Contains(t, out, "Reset cancelled")
		assert.Contains(t, env.mustRun("history"), "Books (Used)")
	})

	t.Run("confirmed", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustRun("log", "--category", "Books (Used)", "--price", "100")

		out, err := env.run("yes\n", "reset")
		require.NoError(t, err)
		assert.Contains(t, out, "All data has been reset")
	})
}

func TestSuggestCommand(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("suggest", "Electronics", "--price", "100")
	assert.Contains(t, out, "Multiplier: 1.80")
	assert.Contains(t, out, "Estimate for 100.00: 1.80 kg CO2")
	assert.Contains(t, out, "Greener option:")

	out = env.mustRun("suggest", "Books (Used)")
	assert.Contains(t, out, "Eco-friendly category")

	_, err := env.run("", "suggest", "Books", "--price", "-1")
	assert.ErrorIs(t, err, impact.ErrInvalidPrice)
}

func TestProfileCommands(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("profile", "show")
	assert.Contains(t, out, "Friend")
	assert.Contains(t, out, "15000.00")

	out = env.mustRun("profile", "edit", "--name", "Sam", "--goal", "40")
	assert.Contains(t, out, "Sam")

	out = env.mustRun("profile", "show")
	assert.Contains(t, out, "Sam")
	assert.Contains(t, out, "15000.00", "unchanged budget is kept")
	assert.Contains(t, out, "40.00 kg")

	_, err := env.run("", "profile", "edit", "--budget", "-1")
	assert.ErrorIs(t, err, tracker.ErrInvalidProfile)
}

func TestSummaryCommand(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("log", "--category", "Books (Used)", "--price", "100")
	env.mustRun("log", "--category", "Electronics", "--price", "1000")

	out := env.mustRun("summary")
	assert.Contains(t, out, "Hello, Friend")
	assert.Contains(t, out, "Purchases:  2 (1 eco, 50%)")
	assert.Contains(t, out, "By category")
	assert.Less(t, strings.Index(out, "Electronics"), strings.Index(out, "Books (Used)"), "sorted by CO2")
}

func TestImportCommand(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("import", filepath.Join("testdata", "purchases.csv"))
	assert.Contains(t, out, "Logged 3 purchases")
	assert.Contains(t, out, "Skipped 1 invalid rows")
	assert.Contains(t, out, "Badge unlocked!")

	history := env.mustRun("history")
	assert.Contains(t, history, "Acme")
	assert.NotContains(t, history, "Corner Shop")

	_, err := env.run("", "import", filepath.Join("testdata", "missing.csv"))
	assert.Error(t, err)
}

func TestImportOFXCommand(t *testing.T) {
	statement := filepath.Join("testdata", "checking.qfx")

	t.Run("dry run", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.mustRun("import-ofx", statement, statement, "--dry-run")
		assert.Contains(t, out, "Would log 3 purchases")
		assert.Contains(t, out, "THRIFT TOWN")
		assert.Contains(t, env.mustRun("history"), "No purchases yet")
	})

	t.Run("category override", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.mustRun("import-ofx", statement, "--category", "Groceries")
		assert.Contains(t, out, "Logged 3 purchases")

		history := env.mustRun("history")
		assert.Contains(t, history, "Groceries")
		assert.Contains(t, history, "Green Grocer Co-op")
	})

	t.Run("no files", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.run("", "import-ofx", filepath.Join("testdata", "*.ofx"))
		assert.ErrorIs(t, err, errNoFiles)
	})
}

func TestExportCommand(t *testing.T) {
	mock := sheets.NewMockWriter()
	original := newReportWriter
	newReportWriter = func(context.Context) (service.ReportWriter, error) { return mock, nil }
	t.Cleanup(func() { newReportWriter = original })

	env := newTestEnv(t)
	env.mustRun("log", "--category", "Books (Used)", "--price", "100")

	out := env.mustRun("export")
	assert.Contains(t, out, "Exported 1 purchases to Google Sheets")

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Len(t, calls[0].Purchases, 1)
	assert.Equal(t, 1, calls[0].Summary.Purchases)

	mock.FailWith(errors.New("quota exceeded"))
	_, err := env.run("", "export")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestExportNotConfigured(t *testing.T) {
	for _, key := range []string{"SERVICE_ACCOUNT_PATH", "CLIENT_ID", "CLIENT_SECRET", "REFRESH_TOKEN"} {
		t.Setenv("GOOGLE_SHEETS_"+key, "")
	}
	env := newTestEnv(t)

	_, err := env.run("", "export")
	require.Error(t, err)
	var userErr *common.UserError
	assert.ErrorAs(t, err, &userErr)
}

func TestInvalidLogLevel(t *testing.T) {
	env := newTestEnv(t)

	var out bytes.Buffer
	viper.Reset()
	t.Cleanup(viper.Reset)
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"history", "--data", env.data, "--log-level", "loud"})

	err := cmd.ExecuteContext(context.Background())
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestSecretCommands(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("token-123\n", "secret", "set", config.SecretRefreshToken)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Stored refresh_token in the keyring")

	stored, err := config.GetSecret(config.SecretRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "token-123", stored)

	out = env.mustRun("secret", "delete", config.SecretRefreshToken)
	assert.Contains(t, out, "Removed refresh_token from the keyring")

	out = env.mustRun("secret", "delete", config.SecretRefreshToken)
	assert.Contains(t, out, "refresh_token was not stored")

	_, err = env.run("x\n", "secret", "set", "password")
	assert.ErrorIs(t, err, config.ErrUnknownSecret)
}
