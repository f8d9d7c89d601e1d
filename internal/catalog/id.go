package catalog

import (
	"fmt"

	"shopease/internal/model"

	"github.com/bwmarrin/snowflake"
)

// IDGenerator assigns identifiers to locally authored products.
type IDGenerator interface {
	NextID() model.ProductID
}

// snowflakeGenerator issues time-ordered IDs: the high bits carry the
// millisecond timestamp and a per-millisecond sequence keeps calls made
// within the same instant distinct.
type snowflakeGenerator struct {
	node *snowflake.Node
}

// NewSnowflakeGenerator creates an IDGenerator for the given node number (0-1023).
func NewSnowflakeGenerator(node int64) (IDGenerator, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("failed to create id generator: %w", err)
	}
	return &snowflakeGenerator{node: n}, nil
}

func (g *snowflakeGenerator) NextID() model.ProductID {
	return model.ProductID(g.node.Generate().String())
}
