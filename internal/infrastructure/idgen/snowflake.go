// Package idgen identifica las corridas de carga masiva.
package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"

	"github.com/jhoicas/erp-expedientes/internal/application/carga"
)

var _ carga.IDGenerator = (*Snowflake)(nil)

// Snowflake genera ids ordenados en el tiempo a partir de un nodo fijo.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake crea el generador para el nodo dado (0-1023).
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("snowflake nodo %d: %w", nodeID, err)
	}
	return &Snowflake{node: n}, nil
}

// NextID devuelve el siguiente id.
func (s *Snowflake) NextID() int64 { return s.node.Generate().Int64() }
