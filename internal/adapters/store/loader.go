// Package store loads and freezes the carbon context dataset. The embedded
// fixture is decoded and integrity-checked exactly once at startup; after
// Load returns, the dataset is shared read-only across every request without
// synchronization.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/phoenixborealis/bimagent/internal/domain/model"
	"github.com/phoenixborealis/bimagent/pkg/logger"

	_ "embed"
)

//go:embed context.json
var embeddedContext []byte

// Load builds the frozen context store. With an empty path the embedded
// fixture is used; otherwise the file at path is read instead, which lets
// deployments swap the dataset without rebuilding.
func Load(ctx context.Context, path string) (*model.ContextStore, error) {
	data := embeddedContext
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrLoad, path, err)
		}
		data = b
	}

	var cs model.ContextStore
	if err := json.Unmarshal(data, &cs); err != nil {
		return nil, fmt.Errorf("%w: decoding context: %v", ErrLoad, err)
	}

	if err := cs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIntegrity, err)
	}

	logger.Named("store").Info(ctx, "carbon context loaded",
		logger.String("project", cs.ProjectSummary.ID),
		logger.Int("scenarios", len(cs.Scenarios.Scenarios)),
		logger.Int("categories", len(cs.CarbonBaseline.ByCategory)),
		logger.Int("materials", len(cs.MaterialFactors.Materials)),
	)

	return &cs, nil
}
