package integration

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ABHINAV2087/REST-API-Learning/pkg/cli"
	"github.com/ABHINAV2087/REST-API-Learning/pkg/userstore"
)

// setupClient starts a seeded server and returns a typed client for it.
func setupClient(t *testing.T, seeds []userstore.Seed) cli.Client {
	t.Helper()
	bundle := setupServer(t, seeds)
	return cli.NewClient(bundle.BaseURL, cli.WithTimeout(5*time.Second))
}

func TestClientCRUDRoundTrip(t *testing.T) {
	client := setupClient(t, defaultSeeds())

	users, err := client.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].Name)

	created, err := client.CreateUser("Carol", "carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, 3, created.ID)
	assert.Equal(t, "Carol", created.Name)

	fetched, err := client.GetUser(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)

	updated, err := client.UpdateUser(created.ID, "Carol Jones", "carol@corp.example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Carol Jones", updated.Name)
	assert.Equal(t, "carol@corp.example.com", updated.Email)

	require.NoError(t, client.DeleteUser(created.ID))

	_, err = client.GetUser(created.ID)
	require.Error(t, err)
	assert.True(t, cli.IsNotFound(err))
}

func TestClientNotFoundErrors(t *testing.T) {
	client := setupClient(t, nil)

	_, err := client.GetUser(9999)
	require.Error(t, err)
	assert.True(t, cli.IsNotFound(err))

	_, err = client.UpdateUser(9999, "X", "x@example.com")
	require.Error(t, err)
	assert.True(t, cli.IsNotFound(err))

	err = client.DeleteUser(9999)
	require.Error(t, err)
	assert.True(t, cli.IsNotFound(err))
}

func TestClientHealthAndStatus(t *testing.T) {
	client := setupClient(t, defaultSeeds())

	require.NoError(t, client.Health())

	status, err := client.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "running", status.Status)
	assert.Equal(t, 2, status.UserCount)
	assert.Equal(t, "integration-test", status.Version)
}

func TestClientConnectionRefused(t *testing.T) {
	// A port from the shared counter that nothing is listening on.
	url := fmt.Sprintf("http://localhost:%d", GetFreePortSafe())
	client := cli.NewClient(url, cli.WithTimeout(1*time.Second))

	_, err := client.ListUsers()
	require.Error(t, err)

	apiErr, ok := err.(*cli.APIError)
	require.True(t, ok)
	assert.Equal(t, "connection_error", apiErr.ErrorCode)
	assert.False(t, cli.IsNotFound(err))
}
