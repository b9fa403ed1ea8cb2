package mgmt

import (
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/sql/armsql"

	"github.com/vvka-141/azsm/pkg/azsm"
)

// serverFromARM converts a wire server into the local model. The resource
// group is not part of the ARM payload body, so it is taken from the
// resource ID when present and from the request key otherwise. Passwords
// are never returned by the management plane, so AdminPassword stays nil.
func serverFromARM(resourceGroup string, src armsql.Server) *azsm.Server {
	server := &azsm.Server{ResourceGroup: resourceGroup}

	if src.Name != nil {
		server.Name = *src.Name
	}
	if src.Location != nil {
		server.Location = *src.Location
	}
	if src.ID != nil {
		if rg := resourceGroupFromID(*src.ID); rg != "" {
			server.ResourceGroup = rg
		}
	}
	if props := src.Properties; props != nil {
		if props.Version != nil {
			server.Version = *props.Version
		}
		if props.AdministratorLogin != nil {
			server.AdminUser = *props.AdministratorLogin
		}
		if props.State != nil {
			server.State = *props.State
		}
		if props.FullyQualifiedDomainName != nil {
			server.FullyQualifiedDomainName = *props.FullyQualifiedDomainName
		}
	}
	return server
}

// serverToARM converts the local model into the wire representation used by
// create-or-update. Name and resource group travel as call keys, not in the
// body, but Name is still set so a round trip through serverFromARM is
// lossless. plainPassword is included only when non-empty; callers obtain
// it through Secret.Expose at the call boundary.
func serverToARM(src *azsm.Server, plainPassword string) armsql.Server {
	name := src.Name
	location := src.Location
	props := &armsql.ServerProperties{}

	if src.Version != "" {
		version := src.Version
		props.Version = &version
	}
	if src.AdminUser != "" {
		login := src.AdminUser
		props.AdministratorLogin = &login
	}
	if plainPassword != "" {
		props.AdministratorLoginPassword = &plainPassword
	}

	return armsql.Server{
		Name:       &name,
		Location:   &location,
		Properties: props,
	}
}

// resourceGroupFromID extracts the resource group segment from an ARM
// resource ID such as
// /subscriptions/<sub>/resourceGroups/<rg>/providers/Microsoft.Sql/servers/<name>.
// Returns "" when the ID does not carry one.
func resourceGroupFromID(id string) string {
	segments := strings.Split(strings.Trim(id, "/"), "/")
	for i := 0; i+1 < len(segments); i++ {
		if strings.EqualFold(segments[i], "resourceGroups") {
			return segments[i+1]
		}
	}
	return ""
}
