package repositories

import (
	"context"

	"github.com/mobilev/server/domain/entities"
)

// AnalysisRepository persists completion records.
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *entities.Analysis) error
	// GetByUserAndDate returns nil without error when no record exists,
	// which the poll protocol reports as "incomplete".
	GetByUserAndDate(ctx context.Context, userID, dateRecorded string) (*entities.Analysis, error)
}

// ShareRepository persists share records.
type ShareRepository interface {
	Create(ctx context.Context, share *entities.Share) error
	// UpdateScores rewrites the three score values on every share matching
	// (userID, dateRecorded) and returns the number of shares touched.
	UpdateScores(ctx context.Context, userID, dateRecorded string, values [3]*string) (int64, error)
}

// CredentialRepository reads the shared speech-to-text credential row.
type CredentialRepository interface {
	Get(ctx context.Context) (*entities.Credential, error)
}

// UserRepository reads user and SRO profiles.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetSRO(ctx context.Context, id string) (*entities.SRO, error)
}

// Transactor runs fn within a single atomic transaction so that a
// completion record and its shares either all persist or none do.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
