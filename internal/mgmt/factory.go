package mgmt

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/sql/armsql"
	"github.com/google/uuid"

	"github.com/vvka-141/azsm/pkg/azsm"
)

// correlationHeader is the ARM header used to correlate all requests issued
// by one adapter operation.
const correlationHeader = "x-ms-correlation-request-id"

// ServersAPI is the slice of the servers client the adapter needs.
// Narrowed for testability; the real implementation wraps armsql.
type ServersAPI interface {
	// Get fetches a single server. Idempotent.
	Get(ctx context.Context, resourceGroup, name string) (armsql.Server, error)

	// ListByResourceGroup drains the server pager for one resource group.
	// Idempotent.
	ListByResourceGroup(ctx context.Context, resourceGroup string) ([]*armsql.Server, error)

	// CreateOrUpdate starts the upsert and polls it to completion,
	// returning the resulting wire server.
	CreateOrUpdate(ctx context.Context, resourceGroup, name string, parameters armsql.Server) (armsql.Server, error)

	// Delete starts the remote deletion without awaiting it.
	Delete(ctx context.Context, resourceGroup, name string) error
}

// ClientFactory produces a request-scoped ServersAPI tagged with the given
// correlation ID.
type ClientFactory interface {
	NewServersClient(correlationID uuid.UUID) (ServersAPI, error)
}

// ARMClientFactory builds armsql servers clients for one subscription.
type ARMClientFactory struct {
	subscriptionID string
	credential     azcore.TokenCredential
	options        *arm.ClientOptions
}

// NewARMClientFactory creates a factory for the given subscription using
// the given credential. options may be nil; when set it provides cloud and
// transport configuration and is copied per client.
func NewARMClientFactory(subscriptionID string, credential azcore.TokenCredential, options *arm.ClientOptions) (*ARMClientFactory, error) {
	if subscriptionID == "" {
		return nil, fmt.Errorf("subscription ID is required: %w", azsm.ErrInvalidConfig)
	}
	if credential == nil {
		return nil, fmt.Errorf("credential is required: %w", azsm.ErrInvalidConfig)
	}
	return &ARMClientFactory{
		subscriptionID: subscriptionID,
		credential:     credential,
		options:        options,
	}, nil
}

// NewServersClient builds a servers client whose every request carries the
// correlation ID.
func (f *ARMClientFactory) NewServersClient(correlationID uuid.UUID) (ServersAPI, error) {
	opts := arm.ClientOptions{}
	if f.options != nil {
		opts = *f.options
	}
	opts.PerCallPolicies = append(opts.PerCallPolicies, correlationPolicy{id: correlationID.String()})

	client, err := armsql.NewServersClient(f.subscriptionID, f.credential, &opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create servers client: %w", err)
	}
	return &serversClient{client: client}, nil
}

// correlationPolicy stamps the ARM correlation header on every request.
type correlationPolicy struct {
	id string
}

func (p correlationPolicy) Do(req *policy.Request) (*http.Response, error) {
	req.Raw().Header.Set(correlationHeader, p.id)
	return req.Next()
}

// serversClient adapts *armsql.ServersClient to the ServersAPI surface.
type serversClient struct {
	client *armsql.ServersClient
}

func (c *serversClient) Get(ctx context.Context, resourceGroup, name string) (armsql.Server, error) {
	resp, err := c.client.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return armsql.Server{}, err
	}
	return resp.Server, nil
}

func (c *serversClient) ListByResourceGroup(ctx context.Context, resourceGroup string) ([]*armsql.Server, error) {
	var servers []*armsql.Server
	pager := c.client.NewListByResourceGroupPager(resourceGroup, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		servers = append(servers, page.Value...)
	}
	return servers, nil
}

func (c *serversClient) CreateOrUpdate(ctx context.Context, resourceGroup, name string, parameters armsql.Server) (armsql.Server, error) {
	poller, err := c.client.BeginCreateOrUpdate(ctx, resourceGroup, name, parameters, nil)
	if err != nil {
		return armsql.Server{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armsql.Server{}, err
	}
	return resp.Server, nil
}

func (c *serversClient) Delete(ctx context.Context, resourceGroup, name string) error {
	// Fire-and-forget: start the LRO and drop the poller.
	_, err := c.client.BeginDelete(ctx, resourceGroup, name, nil)
	return err
}

var _ ServersAPI = (*serversClient)(nil)
var _ ClientFactory = (*ARMClientFactory)(nil)
