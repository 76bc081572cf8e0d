package driven

import (
	"context"

	"github.com/datamoor/csvrelay/internal/core/domain"
)

// TemplateSource builds the header template map consumed by the router.
// The map is constructed once at startup; a load failure is fatal.
type TemplateSource interface {
	// Load reads all templates and returns the finished map.
	Load(ctx context.Context) (domain.TemplateMap, error)
}
