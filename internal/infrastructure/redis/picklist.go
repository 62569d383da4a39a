// Package redis guarda las listas de tomos a extraer de cada usuario.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/erp-expedientes/internal/application/expedientes"
	"github.com/jhoicas/erp-expedientes/pkg/config"
)

var _ expedientes.PickList = (*PickList)(nil)

const prefijo = "expedientes:extraccion:"

// NewClient abre el cliente y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	c := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return c, nil
}

// PickList un SET por usuario; cada modificación renueva la vigencia.
type PickList struct {
	client goredis.Cmdable
	ttl    time.Duration
}

// NewPickList construye la lista; ttl cero significa sin vencimiento.
func NewPickList(client goredis.Cmdable, ttl time.Duration) *PickList {
	return &PickList{client: client, ttl: ttl}
}

func key(userID string) string { return prefijo + userID }

// Add agrega el tomo; devuelve false si ya estaba.
func (p *PickList) Add(ctx context.Context, userID, tomoID string) (bool, error) {
	var added *goredis.IntCmd
	_, err := p.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		added = pipe.SAdd(ctx, key(userID), tomoID)
		if p.ttl > 0 {
			pipe.Expire(ctx, key(userID), p.ttl)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("picklist add: %w", err)
	}
	return added.Val() == 1, nil
}

// Remove quita los tomos indicados con un solo SREM; no falla si no estaban.
func (p *PickList) Remove(ctx context.Context, userID string, tomoIDs ...string) error {
	if len(tomoIDs) == 0 {
		return nil
	}
	members := make([]any, len(tomoIDs))
	for i, id := range tomoIDs {
		members[i] = id
	}
	if err := p.client.SRem(ctx, key(userID), members...).Err(); err != nil {
		return fmt.Errorf("picklist remove: %w", err)
	}
	return nil
}

// Members devuelve los ids de tomo de la lista del usuario.
func (p *PickList) Members(ctx context.Context, userID string) ([]string, error) {
	ids, err := p.client.SMembers(ctx, key(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("picklist members: %w", err)
	}
	return ids, nil
}
