package managers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connectorhq/fivetran-universal-connector/internal/domain"
	"github.com/connectorhq/fivetran-universal-connector/pkg/clients/fivetran"
)

const connectorBody = `{"code":"Success","data":{"id":"c1","group_id":"grp_dest","service":"mysql","service_version":1,"schema":"prod_db","created_at":"2024-06-01T10:00:00Z","succeeded_at":null,"failed_at":null,"paused":true,"pause_after_trial":false,"sync_frequency":60,"status":{"setup_state":"incomplete","sync_state":"paused","update_state":"on_schedule","is_historical_sync":true}}}`

func newConnectorManager(serverURL string) domain.ConnectorManager {
	return NewConnectorManager(ConnectorManagerDependencies{
		Clients: newTestFactory(serverURL),
		GroupID: "grp_dest",
	})
}

func TestCreateConnectorAppliesPolicy(t *testing.T) {
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/connectors", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(connectorBody))
	}))
	defer server.Close()

	manager := newConnectorManager(server.URL)

	connector, err := manager.CreateConnector(context.Background(), domain.CreateConnectorParams{
		Service:          "mysql",
		Schema:           "prod_db",
		SyncFrequency:    60,
		NetworkingMethod: "Directly",
		Config: map[string]any{
			"host": "db.internal",
			"port": 3306,
			// Caller attempts to override the forced keys.
			"schema_prefix": "evil",
			"update_method": "TELEPORT",
			"custom_config": map[string]any{
				"replica_id": 12345,
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "c1", connector.ID)

	assert.Equal(t, "mysql", gotBody["service"])
	assert.Equal(t, "grp_dest", gotBody["group_id"])
	assert.Equal(t, true, gotBody["paused"])
	assert.Equal(t, true, gotBody["run_setup_tests"])
	assert.Equal(t, true, gotBody["trust_certificates"])

	config, ok := gotBody["config"].(map[string]any)
	require.True(t, ok)

	assert.Equal(t, "prod_db", config["schema_prefix"])
	assert.Equal(t, "BINLOG", config["update_method"])
	assert.Equal(t, "db.internal", config["host"])
	assert.Equal(t, "Directly", config["networking_method"])

	// custom_config was flattened into the top level.
	assert.Equal(t, float64(12345), config["replica_id"])
	_, hasCustom := config["custom_config"]
	assert.False(t, hasCustom)
}

func TestCreateConnectorValidation(t *testing.T) {
	calls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	manager := newConnectorManager(server.URL)

	tests := []struct {
		name   string
		params domain.CreateConnectorParams
	}{
		{name: "missing service", params: domain.CreateConnectorParams{Schema: "s"}},
		{name: "missing schema", params: domain.CreateConnectorParams{Service: "mysql"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.CreateConnector(context.Background(), tt.params)
			require.Error(t, err)
			assert.Equal(t, domain.ErrorKindValidation, domain.KindOf(err))
		})
	}

	assert.Equal(t, 0, calls)
}

func TestCreateConnectorWithoutDestinationGroup(t *testing.T) {
	manager := NewConnectorManager(ConnectorManagerDependencies{
		Clients: newTestFactory("http://127.0.0.1:0"),
	})

	_, err := manager.CreateConnector(context.Background(), domain.CreateConnectorParams{
		Service: "mysql",
		Schema:  "prod_db",
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrorKindConfig, domain.KindOf(err))
}

func TestListConnectorsDefaultsToConfiguredGroup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/groups/grp_dest/connectors", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":"Success","data":{"items":[],"next_cursor":""}}`))
	}))
	defer server.Close()

	manager := newConnectorManager(server.URL)

	list, err := manager.ListConnectors(context.Background(), domain.ListConnectorsParams{Limit: 50})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestSetConnectorPaused(t *testing.T) {
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PATCH", r.Method)
		assert.Equal(t, "/connectors/c1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(connectorBody))
	}))
	defer server.Close()

	manager := newConnectorManager(server.URL)

	_, err := manager.SetConnectorPaused(context.Background(), "c1", false)
	require.NoError(t, err)

	assert.Equal(t, false, gotBody["paused"])
	assert.Len(t, gotBody, 1)
}

func TestRunSetupTestsEnablesTrust(t *testing.T) {
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/connectors/c1/test", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(connectorBody))
	}))
	defer server.Close()

	manager := newConnectorManager(server.URL)

	_, err := manager.RunSetupTests(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, true, gotBody["trust_certificates"])
	assert.Equal(t, true, gotBody["trust_fingerprints"])
}

func TestForceSyncAndResync(t *testing.T) {
	var paths []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":"Success","message":"Sync has been started"}`))
	}))
	defer server.Close()

	manager := newConnectorManager(server.URL)

	message, err := manager.ForceSync(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Sync has been started", message)

	_, err = manager.Resync(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, []string{"/connectors/c1/sync", "/connectors/c1/resync"}, paths)
}

func TestGetConnectorState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/connectors/c1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(connectorBody))
	}))
	defer server.Close()

	manager := newConnectorManager(server.URL)

	state, err := manager.GetConnectorState(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, "c1", state.ID)
	assert.True(t, state.Paused)
	require.NotNil(t, state.Status)
	assert.Equal(t, "paused", state.Status.SyncState)
	assert.Nil(t, state.SucceededAt)
}

func TestDeleteConnectorNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"NotFound_Connector","message":"Connector with id 'nope' not found"}`))
	}))
	defer server.Close()

	manager := newConnectorManager(server.URL)

	_, err := manager.DeleteConnector(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorKindNotFound, domain.KindOf(err))
}

func TestUpdateSchemasValidation(t *testing.T) {
	manager := newConnectorManager("http://127.0.0.1:0")

	_, err := manager.UpdateSchemas(context.Background(), "c1", nil)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorKindValidation, domain.KindOf(err))

	_, err = manager.UpdateSchemas(context.Background(), "c1", &fivetran.SchemaConfig{})
	require.Error(t, err)
	assert.Equal(t, domain.ErrorKindValidation, domain.KindOf(err))
}

func TestUpdateSchemasPassesThrough(t *testing.T) {
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PATCH", r.Method)
		assert.Equal(t, "/connectors/c1/schemas", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":"Success","data":{"schema_change_handling":"BLOCK_ALL","schemas":{}}}`))
	}))
	defer server.Close()

	manager := newConnectorManager(server.URL)

	enabled := true
	result, err := manager.UpdateSchemas(context.Background(), "c1", &fivetran.SchemaConfig{
		SchemaChangeHandling: "BLOCK_ALL",
		Schemas: map[string]*fivetran.SchemaEntry{
			"prod_db": {Enabled: &enabled},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "BLOCK_ALL", result.SchemaChangeHandling)

	assert.Equal(t, "BLOCK_ALL", gotBody["schema_change_handling"])
	schemas, ok := gotBody["schemas"].(map[string]any)
	require.True(t, ok)
	_, hasProdDB := schemas["prod_db"]
	assert.True(t, hasProdDB)
}
