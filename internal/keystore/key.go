package keystore

import "strings"

// EnvKeyPrefix is the prefix for secret entries in an env-format secrets file.
const EnvKeyPrefix = "AZSM_SECRET_"

// EnvKey derives the env-file key for a (clientID, tenantID) pair.
// Identifiers are upper-cased and characters outside [A-Z0-9] become
// underscores, so the result is always a valid shell identifier:
//
//	EnvKey("app-1", "t-1") == "AZSM_SECRET_APP_1_T_1"
func EnvKey(clientID, tenantID string) string {
	return EnvKeyPrefix + sanitize(clientID, '_') + "_" + sanitize(tenantID, '_')
}

// VaultSecretName derives the Key Vault secret name for a (clientID,
// tenantID) pair. Vault names allow only alphanumerics and dashes and are
// limited to 127 characters.
func VaultSecretName(clientID, tenantID string) string {
	name := sanitize(clientID, '-') + "-" + sanitize(tenantID, '-')
	if len(name) > 127 {
		name = name[:127]
	}
	return strings.Trim(name, "-")
}

func sanitize(id string, repl rune) string {
	upper := repl == '_'
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range id {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z':
			if upper {
				r -= 'a' - 'A'
			}
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			if !upper {
				r += 'a' - 'A'
			}
			b.WriteRune(r)
		default:
			b.WriteRune(repl)
		}
	}
	return b.String()
}
