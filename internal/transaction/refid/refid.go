// Package refid derives the identifiers stored on resident transactions:
// event ids and the hashed reference id.
package refid

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
	"golang.org/x/sync/errgroup"

	identitymodels "resident/internal/identity/models"
	"resident/internal/transaction/models"
	dErrors "resident/pkg/domain-errors"
)

// Supported digest algorithms for reference ids.
const (
	AlgorithmSHA256     = "SHA-256"
	AlgorithmSHA3256    = "SHA3-256"
	AlgorithmBLAKE2b256 = "BLAKE2B-256"
)

// ErrAlgorithmUnavailable is returned when the configured digest is unknown.
var ErrAlgorithmUnavailable = errors.New("hash algorithm unavailable")

// IdentityLookup supplies the contact details and token a channel-scoped
// reference id is derived from.
type IdentityLookup interface {
	GetIdentity(ctx context.Context, individualID string) (*identitymodels.Identity, error)
	GetIDATokenForIndividualID(ctx context.Context, individualID string) (string, error)
}

type Deriver struct {
	identity  IdentityLookup
	algorithm string
	entropy   io.Reader
	now       func() time.Time
}

type Option func(*Deriver)

// WithClock overrides the time source for event ids.
func WithClock(now func() time.Time) Option {
	return func(d *Deriver) {
		d.now = now
	}
}

func New(identity IdentityLookup, algorithm string, opts ...Option) *Deriver {
	d := &Deriver{
		identity:  identity,
		algorithm: algorithm,
		entropy:   ulid.DefaultEntropy(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// CreateEventID returns a new, time-ordered event id.
func (d *Deriver) CreateEventID() string {
	return ulid.MustNew(ulid.Timestamp(d.now()), d.entropy).String()
}

// GetRefIDHash digests the individual id with the configured algorithm and
// returns upper-case hex.
func (d *Deriver) GetRefIDHash(individualID string) (string, error) {
	return d.digest(individualID)
}

// GetIDForResidentTransaction derives a reference id scoped to the OTP
// channels: the resident's email, phone, or both, concatenated with their
// IDA token and digested. The identity and the token are fetched
// concurrently. Channels with no matching contact on record yield
// otp_channel_not_supported.
func (d *Deriver) GetIDForResidentTransaction(ctx context.Context, individualID string, channels []string) (string, error) {
	var (
		identity *identitymodels.Identity
		token    string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		identity, err = d.identity.GetIdentity(gctx, individualID)
		return err
	})
	g.Go(func() error {
		var err error
		token, err = d.identity.GetIDATokenForIndividualID(gctx, individualID)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	hasEmail := slices.Contains(channels, models.ChannelEmail)
	hasPhone := slices.Contains(channels, models.ChannelPhone)

	var contact string
	switch {
	case hasEmail && hasPhone && identity.Email != "" && identity.Phone != "":
		contact = identity.Email + identity.Phone
	case hasEmail && !hasPhone && identity.Email != "":
		contact = identity.Email
	case hasPhone && !hasEmail && identity.Phone != "":
		contact = identity.Phone
	default:
		return "", dErrors.New(dErrors.CodeOTPChannelNotSupported,
			fmt.Sprintf("no contact on record for channels %s", strings.Join(channels, ",")))
	}
	return d.digest(contact + token)
}

func (d *Deriver) digest(value string) (string, error) {
	h, err := newHash(d.algorithm)
	if err != nil {
		return "", err
	}
	h.Write([]byte(value))
	return strings.ToUpper(hex.EncodeToString(h.Sum(nil))), nil
}

func newHash(algorithm string) (hash.Hash, error) {
	switch strings.ToUpper(algorithm) {
	case AlgorithmSHA256:
		return sha256.New(), nil
	case AlgorithmSHA3256:
		return sha3.New256(), nil
	case AlgorithmBLAKE2b256:
		return blake2b.New256(nil)
	default:
		return nil, fmt.Errorf("%w: %q", ErrAlgorithmUnavailable, algorithm)
	}
}
