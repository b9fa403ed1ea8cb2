// Package keystore provides implementations of the azsm.SecretStore interface.
//
// Available implementations:
//   - Memory: in-process map, used by tests and by callers that already
//     hold the secret
//   - EnvFile: secrets file in .env format, read and written via godotenv
//   - KeyVault: Azure Key Vault, read via the azsecrets SDK client
//
// All stores key secrets by the (clientID, tenantID) pair and report a miss
// by wrapping azsm.ErrCredentialNotFound.
package keystore
