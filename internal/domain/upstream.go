package domain

import (
	"github.com/connectorhq/fivetran-universal-connector/pkg/clients/fivetran"
)

// UpstreamClientFactory constructs Fivetran clients bound to the service's
// configured API credentials. A fresh client is built per request; there is
// no caching or pooling across requests.
type UpstreamClientFactory interface {
	NewClient() (*fivetran.Client, error)
}
