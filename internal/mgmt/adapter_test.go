package mgmt

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/sql/armsql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/azsm/pkg/azsm"
)

// fakeServersAPI records calls and serves canned responses.
type fakeServersAPI struct {
	getResp    armsql.Server
	listResp   []*armsql.Server
	upsertResp armsql.Server
	err        error

	getCalls    int
	listCalls   int
	upsertCalls int
	deleteCalls int

	lastResourceGroup string
	lastName          string
	lastParameters    armsql.Server
}

func (f *fakeServersAPI) Get(ctx context.Context, resourceGroup, name string) (armsql.Server, error) {
	f.getCalls++
	f.lastResourceGroup, f.lastName = resourceGroup, name
	return f.getResp, f.err
}

func (f *fakeServersAPI) ListByResourceGroup(ctx context.Context, resourceGroup string) ([]*armsql.Server, error) {
	f.listCalls++
	f.lastResourceGroup = resourceGroup
	return f.listResp, f.err
}

func (f *fakeServersAPI) CreateOrUpdate(ctx context.Context, resourceGroup, name string, parameters armsql.Server) (armsql.Server, error) {
	f.upsertCalls++
	f.lastResourceGroup, f.lastName = resourceGroup, name
	f.lastParameters = parameters
	return f.upsertResp, f.err
}

func (f *fakeServersAPI) Delete(ctx context.Context, resourceGroup, name string) error {
	f.deleteCalls++
	f.lastResourceGroup, f.lastName = resourceGroup, name
	return f.err
}

// fakeFactory hands out one fake client and records correlation IDs.
type fakeFactory struct {
	api            *fakeServersAPI
	err            error
	correlationIDs []uuid.UUID
}

func (f *fakeFactory) NewServersClient(correlationID uuid.UUID) (ServersAPI, error) {
	f.correlationIDs = append(f.correlationIDs, correlationID)
	if f.err != nil {
		return nil, f.err
	}
	return f.api, nil
}

func wireServer(name, location string) armsql.Server {
	return armsql.Server{Name: &name, Location: &location}
}

func TestAdapter_Get(t *testing.T) {
	api := &fakeServersAPI{getResp: wireServer("sql-01", "westeurope")}
	factory := &fakeFactory{api: api}
	adapter := NewAdapter(factory, nil)

	server, err := adapter.Get(context.Background(), "rg", "sql-01")
	require.NoError(t, err)

	assert.Equal(t, "sql-01", server.Name)
	assert.Equal(t, "rg", server.ResourceGroup)
	assert.Equal(t, 1, api.getCalls)
	assert.Equal(t, "rg", api.lastResourceGroup)
	assert.Equal(t, "sql-01", api.lastName)
}

func TestAdapter_GetRemoteFailure(t *testing.T) {
	api := &fakeServersAPI{err: &azcore.ResponseError{
		StatusCode: http.StatusNotFound,
		ErrorCode:  "ResourceNotFound",
	}}
	adapter := NewAdapter(&fakeFactory{api: api}, nil)

	_, err := adapter.Get(context.Background(), "rg", "missing")
	assert.ErrorIs(t, err, azsm.ErrRemoteOperationFailed)

	// The service diagnostic stays reachable.
	var respErr *azcore.ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, "ResourceNotFound", respErr.ErrorCode)
}

func TestAdapter_List(t *testing.T) {
	s1 := wireServer("sql-01", "westeurope")
	s2 := wireServer("sql-02", "northeurope")
	api := &fakeServersAPI{listResp: []*armsql.Server{&s1, nil, &s2}}
	adapter := NewAdapter(&fakeFactory{api: api}, nil)

	servers, err := adapter.List(context.Background(), "rg")
	require.NoError(t, err)

	require.Len(t, servers, 2, "nil wire entries are skipped")
	assert.Equal(t, "sql-01", servers[0].Name)
	assert.Equal(t, "sql-02", servers[1].Name)
	assert.Equal(t, "rg", servers[0].ResourceGroup)
}

func TestAdapter_UpsertSendsPasswordAtBoundaryOnly(t *testing.T) {
	api := &fakeServersAPI{upsertResp: wireServer("sql-01", "westeurope")}
	adapter := NewAdapter(&fakeFactory{api: api}, nil)

	password := azsm.NewSecret("p@ss")
	server := &azsm.Server{
		ResourceGroup: "rg",
		Name:          "sql-01",
		AdminUser:     "sqladmin",
		AdminPassword: password,
		Location:      "westeurope",
	}

	result, err := adapter.Upsert(context.Background(), server)
	require.NoError(t, err)

	assert.Equal(t, 1, api.upsertCalls)
	require.NotNil(t, api.lastParameters.Properties)
	require.NotNil(t, api.lastParameters.Properties.AdministratorLoginPassword)
	assert.Equal(t, "p@ss", *api.lastParameters.Properties.AdministratorLoginPassword)

	// The result read back from the wire carries no password.
	assert.Nil(t, result.AdminPassword)
	// The protected secret stays usable for the caller to destroy.
	assert.False(t, password.Destroyed())
}

func TestAdapter_UpsertWithoutPassword(t *testing.T) {
	api := &fakeServersAPI{upsertResp: wireServer("sql-01", "westeurope")}
	adapter := NewAdapter(&fakeFactory{api: api}, nil)

	_, err := adapter.Upsert(context.Background(), &azsm.Server{
		ResourceGroup: "rg",
		Name:          "sql-01",
		Location:      "westeurope",
	})
	require.NoError(t, err)
	require.NotNil(t, api.lastParameters.Properties)
	assert.Nil(t, api.lastParameters.Properties.AdministratorLoginPassword)
}

func TestAdapter_UpsertValidates(t *testing.T) {
	api := &fakeServersAPI{}
	adapter := NewAdapter(&fakeFactory{api: api}, nil)

	_, err := adapter.Upsert(context.Background(), &azsm.Server{Name: "sql-01"})
	assert.ErrorIs(t, err, azsm.ErrInvalidConfig)
	assert.Zero(t, api.upsertCalls)

	_, err = adapter.Upsert(context.Background(), nil)
	assert.ErrorIs(t, err, azsm.ErrInvalidConfig)
}

func TestAdapter_UpsertRemoteFailure(t *testing.T) {
	api := &fakeServersAPI{err: errors.New("provisioning conflict")}
	adapter := NewAdapter(&fakeFactory{api: api}, nil)

	_, err := adapter.Upsert(context.Background(), &azsm.Server{
		ResourceGroup: "rg",
		Name:          "sql-01",
		Location:      "westeurope",
	})
	assert.ErrorIs(t, err, azsm.ErrRemoteOperationFailed)
	assert.Contains(t, err.Error(), "provisioning conflict")
}

func TestAdapter_Delete(t *testing.T) {
	api := &fakeServersAPI{}
	adapter := NewAdapter(&fakeFactory{api: api}, nil)

	err := adapter.Delete(context.Background(), "rg", "sql-01")
	require.NoError(t, err)
	assert.Equal(t, 1, api.deleteCalls)
}

func TestAdapter_DeleteRemoteFailure(t *testing.T) {
	api := &fakeServersAPI{err: errors.New("delete rejected")}
	adapter := NewAdapter(&fakeFactory{api: api}, nil)

	err := adapter.Delete(context.Background(), "rg", "sql-01")
	assert.ErrorIs(t, err, azsm.ErrRemoteOperationFailed)
}

func TestAdapter_FreshClientAndCorrelationPerOperation(t *testing.T) {
	api := &fakeServersAPI{getResp: wireServer("sql-01", "westeurope")}
	factory := &fakeFactory{api: api}
	adapter := NewAdapter(factory, nil)

	_, err := adapter.Get(context.Background(), "rg", "sql-01")
	require.NoError(t, err)
	require.NoError(t, adapter.Delete(context.Background(), "rg", "sql-01"))

	require.Len(t, factory.correlationIDs, 2)
	assert.NotEqual(t, factory.correlationIDs[0], factory.correlationIDs[1])
}

func TestAdapter_FactoryFailure(t *testing.T) {
	adapter := NewAdapter(&fakeFactory{err: errors.New("bad credential")}, nil)

	_, err := adapter.Get(context.Background(), "rg", "sql-01")
	require.Error(t, err)
	assert.NotErrorIs(t, err, azsm.ErrRemoteOperationFailed,
		"client construction failures are local, not remote")
}
