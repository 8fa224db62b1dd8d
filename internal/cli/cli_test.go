package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"water-dashboard/internal/cli"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := cli.NewRootCmdForTest()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ledgerctl")
}

func TestCatalogCmd(t *testing.T) {
	out, err := run(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "Daniela")
	assert.Contains(t, out, "Botellón de 20 Lts")
	assert.Contains(t, out, "15 Bs")
}

func TestOrdersPlaceThenList(t *testing.T) {
	dir := t.TempDir()
	flags := []string{"--backend", "file", "--data-dir", dir}

	out, err := run(t, append([]string{"orders", "place",
		"--client", "Rubén González", "--product", "Botellón de 10 Lts", "--quantity", "3"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Rubén González")
	assert.Contains(t, out, "30 Bs")

	_, err = run(t, append([]string{"orders", "place",
		"--client", "Daniela Ayala", "--product", "Botellón de 20 Lts"}, flags...)...)
	require.NoError(t, err)

	out, err = run(t, append([]string{"orders", "list", "--json"}, flags...)...)
	require.NoError(t, err)

	var stored []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &stored))
	require.Len(t, stored, 2)
	assert.Equal(t, "Daniela Ayala", stored[0]["clientName"])
	assert.Equal(t, float64(15), stored[0]["totalPrice"])
	assert.Equal(t, "Rubén González", stored[1]["clientName"])
	assert.Equal(t, float64(3), stored[1]["quantity"])

	out, err = run(t, append([]string{"orders", "list"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "2 en total")
}

func TestOrdersListEmpty(t *testing.T) {
	out, err := run(t, "orders", "list", "--backend", "file", "--data-dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "Sin pedidos")
}

func TestOrdersPlaceIncompleteDraft(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "orders", "place", "--product", "Botellón de 20 Lts", "--backend", "file", "--data-dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "placing order")

	_, err = os.Stat(filepath.Join(dir, "orders.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestOrdersPlaceRejectsQuantityOutOfRange(t *testing.T) {
	for _, quantity := range []string{"0", "1001", "2000000000"} {
		_, err := run(t, "orders", "place", "--client", "Daniela Ayala", "--product", "Botellón de 20 Lts",
			"--quantity", quantity, "--backend", "memory")
		require.Error(t, err, quantity)
		assert.Contains(t, err.Error(), "between 1 and 1000", quantity)
	}

	out, err := run(t, "orders", "place", "--client", "Daniela Ayala", "--product", "Botellón de 20 Lts",
		"--quantity", "1000", "--backend", "memory")
	require.NoError(t, err)
	assert.Contains(t, out, "15000 Bs")
}

func TestOrdersExport(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "pedidos.xlsx")

	_, err := run(t, "orders", "place", "--client", "Mariana Reyes", "--product", "Botellón de 20 Lts",
		"--backend", "file", "--data-dir", dir)
	require.NoError(t, err)

	msg, err := run(t, "orders", "export", "--out", out, "--backend", "file", "--data-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, msg, "Exported 1 orders")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "PK", string(data[:2]))
}

func TestUnknownBackend(t *testing.T) {
	_, err := run(t, "orders", "list", "--backend", "tape")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage backend")
}
