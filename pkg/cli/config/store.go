package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relboard/pkg/domain/interfaces"
	"github.com/m-mizutani/relboard/pkg/infra/firestore"
	"github.com/m-mizutani/relboard/pkg/infra/memory"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"
)

// Store holds repository backend configuration
type Store struct {
	FirestoreProjectID  string
	FirestoreDatabaseID string
	CredentialsFile     string
}

// Flags returns CLI flags for store configuration
func (c *Store) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Google Cloud Project ID of Firestore; in-memory store when empty",
			Destination: &c.FirestoreProjectID,
			Sources:     cli.EnvVars("RELBOARD_FIRESTORE_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID",
			Value:       "(default)",
			Destination: &c.FirestoreDatabaseID,
			Sources:     cli.EnvVars("RELBOARD_FIRESTORE_DATABASE_ID"),
		},
		&cli.StringFlag{
			Name:        "google-credentials",
			Usage:       "Path to a Google Cloud credentials JSON file",
			Destination: &c.CredentialsFile,
			Sources:     cli.EnvVars("RELBOARD_GOOGLE_CREDENTIALS"),
		},
	}
}

// ClientOptions returns Google Cloud client options shared by Firestore and
// Cloud Storage clients
func (c *Store) ClientOptions() []option.ClientOption {
	var opts []option.ClientOption
	if c.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(c.CredentialsFile))
	}
	return opts
}

// Configure creates the repository. The returned function releases its
// resources.
func (c *Store) Configure(ctx context.Context) (interfaces.Repository, func(), error) {
	if c.FirestoreProjectID == "" {
		return memory.New(), func() {}, nil
	}

	repo, err := firestore.New(ctx, c.FirestoreProjectID, c.FirestoreDatabaseID, c.ClientOptions())
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create firestore repository",
			goerr.V("project_id", c.FirestoreProjectID),
			goerr.V("database_id", c.FirestoreDatabaseID))
	}
	return repo, func() { _ = repo.Close() }, nil
}
