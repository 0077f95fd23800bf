package fivetran

import (
	"encoding/json"
	"time"
)

// apiResponse is the envelope wrapping every Management API response
type apiResponse struct {
	Code    string          `json:"code"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ListParams controls cursor pagination for list operations
type ListParams struct {
	Limit  int
	Cursor string
}

// Group represents a group of connectors in the Fivetran account
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// GroupList is one page of groups
type GroupList struct {
	Items      []Group `json:"items"`
	NextCursor string  `json:"next_cursor,omitempty"`
}

// CreateGroupRequest is the payload for creating a group
type CreateGroupRequest struct {
	Name string `json:"name"`
}

// Connector represents a managed data-source integration instance
type Connector struct {
	ID              string           `json:"id"`
	GroupID         string           `json:"group_id"`
	Service         string           `json:"service"`
	ServiceVersion  int              `json:"service_version"`
	Schema          string           `json:"schema"`
	ConnectedBy     string           `json:"connected_by,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	SucceededAt     *time.Time       `json:"succeeded_at"`
	FailedAt        *time.Time       `json:"failed_at"`
	Paused          bool             `json:"paused"`
	PauseAfterTrial bool             `json:"pause_after_trial"`
	SyncFrequency   int              `json:"sync_frequency"`
	DailySyncTime   string           `json:"daily_sync_time,omitempty"`
	ScheduleType    string           `json:"schedule_type,omitempty"`
	Status          *ConnectorStatus `json:"status,omitempty"`
	Config          map[string]any   `json:"config,omitempty"`
	SetupTests      []SetupTest      `json:"setup_tests,omitempty"`
}

// ConnectorStatus describes the upstream sync state of a connector
type ConnectorStatus struct {
	SetupState       string       `json:"setup_state"`
	SyncState        string       `json:"sync_state"`
	UpdateState      string       `json:"update_state"`
	IsHistoricalSync bool         `json:"is_historical_sync"`
	Tasks            []StatusItem `json:"tasks,omitempty"`
	Warnings         []StatusItem `json:"warnings,omitempty"`
}

// StatusItem is a coded task or warning attached to a connector status
type StatusItem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SetupTest is the outcome of one upstream connection test
type SetupTest struct {
	Title   string `json:"title"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ConnectorList is one page of connectors within a group
type ConnectorList struct {
	Items      []Connector `json:"items"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

// CreateConnectorRequest is the payload for creating a connector
type CreateConnectorRequest struct {
	Service           string         `json:"service"`
	GroupID           string         `json:"group_id"`
	TrustCertificates bool           `json:"trust_certificates"`
	TrustFingerprints bool           `json:"trust_fingerprints"`
	RunSetupTests     bool           `json:"run_setup_tests"`
	Paused            bool           `json:"paused"`
	PauseAfterTrial   *bool          `json:"pause_after_trial,omitempty"`
	SyncFrequency     int            `json:"sync_frequency,omitempty"`
	DailySyncTime     string         `json:"daily_sync_time,omitempty"`
	Config            map[string]any `json:"config"`
}

// UpdateConnectorRequest is the payload for patching a connector.
// Nil pointer fields are omitted so the upstream keeps its current values.
type UpdateConnectorRequest struct {
	Paused            *bool          `json:"paused,omitempty"`
	PauseAfterTrial   *bool          `json:"pause_after_trial,omitempty"`
	SyncFrequency     *int           `json:"sync_frequency,omitempty"`
	DailySyncTime     string         `json:"daily_sync_time,omitempty"`
	ScheduleType      string         `json:"schedule_type,omitempty"`
	RunSetupTests     *bool          `json:"run_setup_tests,omitempty"`
	TrustCertificates *bool          `json:"trust_certificates,omitempty"`
	TrustFingerprints *bool          `json:"trust_fingerprints,omitempty"`
	Config            map[string]any `json:"config,omitempty"`
}

// RunSetupTestsRequest is the payload for re-running connection tests
type RunSetupTestsRequest struct {
	TrustCertificates bool `json:"trust_certificates"`
	TrustFingerprints bool `json:"trust_fingerprints"`
}

// SyncConnectorRequest triggers a sync, optionally overriding a running one
type SyncConnectorRequest struct {
	Force bool `json:"force"`
}

// SchemaConfig is the table-selection schema configuration of a connector
type SchemaConfig struct {
	SchemaChangeHandling string                  `json:"schema_change_handling,omitempty"`
	Schemas              map[string]*SchemaEntry `json:"schemas,omitempty"`
}

// SchemaEntry is the sync configuration of one source schema
type SchemaEntry struct {
	NameInDestination string                 `json:"name_in_destination,omitempty"`
	Enabled           *bool                  `json:"enabled,omitempty"`
	Tables            map[string]*TableEntry `json:"tables,omitempty"`
}

// TableEntry is the sync configuration of one source table
type TableEntry struct {
	NameInDestination string                  `json:"name_in_destination,omitempty"`
	Enabled           *bool                   `json:"enabled,omitempty"`
	SyncMode          string                  `json:"sync_mode,omitempty"`
	Columns           map[string]*ColumnEntry `json:"columns,omitempty"`
}

// ColumnEntry is the sync configuration of one source column
type ColumnEntry struct {
	NameInDestination string `json:"name_in_destination,omitempty"`
	Enabled           *bool  `json:"enabled,omitempty"`
	Hashed            *bool  `json:"hashed,omitempty"`
}
