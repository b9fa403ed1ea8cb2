package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vvka-141/azsm/internal/logging"
	"github.com/vvka-141/azsm/pkg/azsm"
)

// Provider produces access tokens for client/audience pairs without the
// caller ever handling the raw secret. The tenant ID and collaborators are
// immutable after construction; Authenticate is safe for concurrent use.
type Provider struct {
	tenantID string
	store    azsm.SecretStore
	acquirer azsm.TokenAcquirer
	logger   azsm.Logger
}

// Option configures a Provider during construction.
type Option func(*Provider)

// WithStore sets the key store the provider retrieves secrets from.
// A provider without a store fails every Authenticate call with
// azsm.ErrInvalidConfig.
func WithStore(store azsm.SecretStore) Option {
	return func(p *Provider) {
		p.store = store
	}
}

// WithAcquirer replaces the default Entra ID token acquirer.
func WithAcquirer(acquirer azsm.TokenAcquirer) Option {
	return func(p *Provider) {
		p.acquirer = acquirer
	}
}

// WithLogger sets the logger. Defaults to a NullLogger.
func WithLogger(logger azsm.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// NewProvider creates a Provider scoped to the given tenant.
func NewProvider(tenantID string, opts ...Option) (*Provider, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant ID is required: %w", azsm.ErrInvalidConfig)
	}

	p := &Provider{
		tenantID: tenantID,
		acquirer: NewEntraAcquirer(),
		logger:   logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// retrieval carries the outcome of the asynchronous key-store lookup.
type retrieval struct {
	secret *azsm.Secret
	err    error
}

// Authenticate retrieves the protected secret for (clientID, tenant) from
// the key store and exchanges it for an access token for the given audience.
//
// Secret retrieval runs on its own goroutine and is awaited, so an I/O-bound
// store (remote vault, hardware-backed) never blocks the caller beyond the
// context deadline. The plain secret exists only inside the exchange closure
// and is destroyed on every exit path.
//
// The audience and scopes pass to the acquirer unchanged; when no scopes
// are given, the acquirer derives the effective scope from the audience
// (see DeriveScope). A key-store miss returns an error wrapping
// azsm.ErrCredentialNotFound without contacting the identity provider; a
// provider rejection wraps azsm.ErrAuthenticationRejected and preserves the
// provider diagnostic. Neither error carries the secret value.
func (p *Provider) Authenticate(ctx context.Context, clientID, audience string, scopes ...string) (azsm.AccessToken, error) {
	if clientID == "" {
		return azsm.AccessToken{}, fmt.Errorf("client ID is required: %w", azsm.ErrInvalidConfig)
	}
	if audience == "" {
		return azsm.AccessToken{}, fmt.Errorf("audience is required: %w", azsm.ErrInvalidConfig)
	}
	if p.store == nil {
		return azsm.AccessToken{}, fmt.Errorf("no key store configured: %w", azsm.ErrInvalidConfig)
	}

	p.logger.Verbose("retrieving secret for client %s in tenant %s", clientID, p.tenantID)

	ch := make(chan retrieval, 1)
	go func() {
		secret, err := p.store.Retrieve(ctx, clientID, p.tenantID)
		ch <- retrieval{secret: secret, err: err}
	}()

	var secret *azsm.Secret
	select {
	case <-ctx.Done():
		// The lookup may still complete; make sure its result cannot
		// outlive this call in plain-recoverable form.
		go func() {
			if r := <-ch; r.secret != nil {
				r.secret.Destroy()
			}
		}()
		return azsm.AccessToken{}, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			// A store returning both a secret and an error still must not
			// leak the secret.
			if r.secret != nil {
				r.secret.Destroy()
			}
			if errors.Is(r.err, azsm.ErrCredentialNotFound) {
				return azsm.AccessToken{}, fmt.Errorf("authenticate %s: %w", clientID, r.err)
			}
			return azsm.AccessToken{}, fmt.Errorf("key store lookup for client %s failed: %w", clientID, r.err)
		}
		secret = r.secret
	}
	defer secret.Destroy()

	p.logger.Verbose("exchanging secret for token (client %s, audience %s)", clientID, audience)

	var token azsm.AccessToken
	err := secret.Expose(func(plain string) error {
		acquired, acqErr := p.acquirer.AcquireToken(ctx, p.tenantID, clientID, plain, audience, scopes)
		if acqErr != nil {
			return fmt.Errorf("identity provider rejected client %s: %w",
				clientID, errors.Join(azsm.ErrAuthenticationRejected, acqErr))
		}
		token = acquired
		return nil
	})
	if err != nil {
		return azsm.AccessToken{}, err
	}

	return token, nil
}

// DeriveScope maps an audience to the effective OAuth scope used when the
// caller supplies no explicit scopes. Entra ID expects resource audiences as
// "<audience>/.default"; an audience already carrying the suffix passes
// through unchanged.
func DeriveScope(audience string) string {
	if strings.HasSuffix(audience, azsm.DefaultScopeSuffix) {
		return audience
	}
	return strings.TrimSuffix(audience, "/") + azsm.DefaultScopeSuffix
}
