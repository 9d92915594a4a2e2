package commands

import (
	"go.uber.org/zap"

	"github.com/temirov/pathtree/internal/output"
)

// TreeBuilder turns an entry collection into a rendered tree using configured options.
type TreeBuilder struct {
	Theme       output.Theme
	Logger      *zap.Logger
	maxDepth    int
	hasMaxDepth bool
}

// NewTreeBuilder returns a TreeBuilder rendering with theme. A nil logger disables logging.
func NewTreeBuilder(theme output.Theme, logger *zap.Logger) *TreeBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TreeBuilder{Theme: theme, Logger: logger}
}

// SetMaxDepth limits the rendered tree to depth levels below the root.
func (treeBuilder *TreeBuilder) SetMaxDepth(depth int) {
	treeBuilder.maxDepth = depth
	treeBuilder.hasMaxDepth = true
}
