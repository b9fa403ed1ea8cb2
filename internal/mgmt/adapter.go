package mgmt

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vvka-141/azsm/internal/logging"
	"github.com/vvka-141/azsm/pkg/azsm"
)

// Adapter maps the local server model onto the remote management endpoint.
// It is stateless; each operation gets its own client and correlation ID.
type Adapter struct {
	factory ClientFactory
	logger  azsm.Logger
}

// NewAdapter creates an adapter using the given client factory.
// logger may be nil, in which case output is discarded.
func NewAdapter(factory ClientFactory, logger azsm.Logger) *Adapter {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Adapter{factory: factory, logger: logger}
}

// Get fetches one server by (resourceGroup, name).
func (a *Adapter) Get(ctx context.Context, resourceGroup, name string) (*azsm.Server, error) {
	client, correlationID, err := a.newClient()
	if err != nil {
		return nil, err
	}
	a.logger.Verbose("get server %s/%s (correlation %s)", resourceGroup, name, correlationID)

	src, err := client.Get(ctx, resourceGroup, name)
	if err != nil {
		return nil, wrapRemote(fmt.Sprintf("get server %s/%s", resourceGroup, name), err)
	}
	return serverFromARM(resourceGroup, src), nil
}

// List returns all servers in the resource group.
func (a *Adapter) List(ctx context.Context, resourceGroup string) ([]*azsm.Server, error) {
	client, correlationID, err := a.newClient()
	if err != nil {
		return nil, err
	}
	a.logger.Verbose("list servers in %s (correlation %s)", resourceGroup, correlationID)

	wire, err := client.ListByResourceGroup(ctx, resourceGroup)
	if err != nil {
		return nil, wrapRemote(fmt.Sprintf("list servers in %s", resourceGroup), err)
	}

	servers := make([]*azsm.Server, 0, len(wire))
	for _, src := range wire {
		if src == nil {
			continue
		}
		servers = append(servers, serverFromARM(resourceGroup, *src))
	}
	return servers, nil
}

// Upsert creates or updates the server keyed by (ResourceGroup, Name).
// The admin password, when present, is exposed in plain form only for the
// duration of the remote call.
func (a *Adapter) Upsert(ctx context.Context, server *azsm.Server) (*azsm.Server, error) {
	if server == nil {
		return nil, fmt.Errorf("server is required: %w", azsm.ErrInvalidConfig)
	}
	if err := server.Validate(); err != nil {
		return nil, err
	}

	client, correlationID, err := a.newClient()
	if err != nil {
		return nil, err
	}
	a.logger.Verbose("upsert server %s/%s (correlation %s)", server.ResourceGroup, server.Name, correlationID)

	var result *azsm.Server
	call := func(plainPassword string) error {
		src, callErr := client.CreateOrUpdate(ctx, server.ResourceGroup, server.Name,
			serverToARM(server, plainPassword))
		if callErr != nil {
			return wrapRemote(fmt.Sprintf("upsert server %s/%s", server.ResourceGroup, server.Name), callErr)
		}
		result = serverFromARM(server.ResourceGroup, src)
		return nil
	}

	if server.AdminPassword != nil {
		err = server.AdminPassword.Expose(call)
	} else {
		err = call("")
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete starts the remote deletion of the server. It does not await the
// remote operation; a nil return means the deletion was accepted.
func (a *Adapter) Delete(ctx context.Context, resourceGroup, name string) error {
	client, correlationID, err := a.newClient()
	if err != nil {
		return err
	}
	a.logger.Verbose("delete server %s/%s (correlation %s)", resourceGroup, name, correlationID)

	if err := client.Delete(ctx, resourceGroup, name); err != nil {
		return wrapRemote(fmt.Sprintf("delete server %s/%s", resourceGroup, name), err)
	}
	return nil
}

func (a *Adapter) newClient() (ServersAPI, uuid.UUID, error) {
	correlationID := uuid.New()
	client, err := a.factory.NewServersClient(correlationID)
	if err != nil {
		return nil, correlationID, fmt.Errorf("failed to create management client: %w", err)
	}
	return client, correlationID, nil
}

// wrapRemote tags a management-plane failure while keeping the service
// diagnostic reachable through errors.As/Is.
func wrapRemote(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(azsm.ErrRemoteOperationFailed, err))
}
