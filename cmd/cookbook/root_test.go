package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/cookbook/internal/config"
	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

const pancakeCatalog = `
items:
  - {type: ingredient, name: Flour, cookTime: 5}
  - {type: ingredient, name: shell, cookTime: 3}
  - type: recipe
    name: Pancakesss
    requiredItems:
      - {name: Flour, quantity: 1}
      - {name: shell, quantity: 1}
  - type: recipe
    name: Pancakes
    requiredItems:
      - {name: Pancakesss, quantity: 2}
`

// isolate keeps config lookup away from the developer's files.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func startService(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	svc, err := newService(context.Background(), cfg, logger.New(logger.LevelOff, nil))
	require.NoError(t, err)
	srv := httptest.NewServer(svc.handler.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out).execute(context.Background(), "test", append([]string{"--quiet"}, args...))
	return ansi.Strip(out.String()), err
}

func TestSeededServiceSummary(t *testing.T) {
	dir := isolate(t)
	cfg := config.Defaults()
	cfg.Seed = writeFile(t, dir, "catalog.yaml", pancakeCatalog)
	srv := startService(t, cfg)

	out, err := run(t, "--server", srv.URL, "summary", "Pancakes", "--json")
	require.NoError(t, err)

	var got domain.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, domain.Summary{
		Name:     "Pancakes",
		CookTime: 16,
		Ingredients: []domain.IngredientTotal{
			{Name: "Flour", Quantity: 2},
			{Name: "shell", Quantity: 2},
		},
	}, got)

	out, err = run(t, "--server", srv.URL, "summary", "Pancakes")
	require.NoError(t, err)
	assert.Contains(t, out, "Pancakes  cook time 16")
}

func TestSeedFailureStopsStartup(t *testing.T) {
	dir := isolate(t)
	cfg := config.Defaults()
	cfg.Seed = writeFile(t, dir, "bad.yaml", "items:\n  - {type: ingredient, name: Salt}\n")

	_, err := newService(context.Background(), cfg, logger.New(logger.LevelOff, nil))
	require.ErrorIs(t, err, domain.ErrInvalidCookTime)
}

func TestAddThenListAndShow(t *testing.T) {
	dir := isolate(t)
	srv := startService(t, config.Defaults())
	catalog := writeFile(t, dir, "catalog.yaml", pancakeCatalog)

	out, err := run(t, "--server", srv.URL, "add", catalog)
	require.NoError(t, err)
	assert.Contains(t, out, "added 4 entries")

	out, err = run(t, "--server", srv.URL, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Pancakesss  recipe (2 items)")
	assert.Contains(t, out, "Flour       ingredient 5")

	out, err = run(t, "--server", srv.URL, "show", "Flour")
	require.NoError(t, err)
	assert.Contains(t, out, "Flour  ingredient, cook time 5")
}

func TestAddStopsAtFirstRejection(t *testing.T) {
	dir := isolate(t)
	srv := startService(t, config.Defaults())
	catalog := writeFile(t, dir, "catalog.yaml", `
items:
  - {type: ingredient, name: Egg, cookTime: 2}
  - {type: ingredient, name: Egg, cookTime: 2}
  - {type: ingredient, name: Milk, cookTime: 1}
`)

	out, err := run(t, "--server", srv.URL, "add", catalog)
	require.ErrorIs(t, err, domain.ErrDuplicateName)
	assert.Contains(t, out, "added 1 of 3 entries")

	out, err = run(t, "--server", srv.URL, "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Milk")
}

func TestParseCommand(t *testing.T) {
	isolate(t)

	out, err := run(t, "parse", "hELLO-wORLD", "_foo")
	require.NoError(t, err)
	assert.Equal(t, "Hello World Foo\n", out)

	_, err = run(t, "parse", "1234")
	require.ErrorIs(t, err, domain.ErrNoName)

	srv := startService(t, config.Defaults())
	out, err = run(t, "--server", srv.URL, "parse", "--remote", "spicy_tomato")
	require.NoError(t, err)
	assert.Equal(t, "Spicy Tomato\n", out)

	_, err = run(t, "--server", srv.URL, "parse", "--remote", "!!")
	require.ErrorIs(t, err, domain.ErrNoName)
}

func TestServerFromConfigFile(t *testing.T) {
	dir := isolate(t)
	srv := startService(t, config.Defaults())
	writeFile(t, dir, "cookbook.yaml", "client:\n  url: "+srv.URL+"\n")

	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no entries")
}

func TestLogFileFlag(t *testing.T) {
	dir := isolate(t)
	srv := startService(t, config.Defaults())
	logPath := filepath.Join(dir, "logs", "cookbook.log")

	var out bytes.Buffer
	a := newApp(&out)
	require.NoError(t, a.execute(context.Background(), "test",
		[]string{"--verbose", "--log-file", logPath, "--server", srv.URL, "list"}))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "client: GET "+srv.URL+"/entries")
}

func TestLogFileClosedWhenCommandFails(t *testing.T) {
	dir := isolate(t)
	srv := startService(t, config.Defaults())
	logPath := filepath.Join(dir, "cookbook.log")

	var out bytes.Buffer
	a := newApp(&out)
	err := a.execute(context.Background(), "test",
		[]string{"--log-file", logPath, "--server", srv.URL, "show", "Nothing"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NotNil(t, a.logFile)
	_, err = a.logFile.WriteString("late line\n")
	require.ErrorIs(t, err, os.ErrClosed)
}
