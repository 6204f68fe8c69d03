package redis

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/qrclock-gateway/internal/model"
	"github.com/mcoot/qrclock-gateway/internal/storage"
)

// Storage is a Redis-backed implementation of the credential store.
// Each admin is a hash; a SET per username indexes admin IDs.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.CredentialStore = (*Storage)(nil)

func (s *Storage) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.cfg.Timeout)
}

func (s *Storage) FindByCredentials(ctx context.Context, username, password string) ([]model.Admin, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ids, err := s.client.SMembers(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		return nil, storage.Wrap("find by credentials", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, 0, len(ids))
	for _, idStr := range ids {
		id, err := model.ParseAdminID(idStr)
		if err != nil {
			continue
		}
		cmds = append(cmds, pipe.HGetAll(ctx, adminKey(id)))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, storage.Wrap("find by credentials", err)
	}

	var out []model.Admin
	for _, cmd := range cmds {
		admin, ok, err := adminFromHash(cmd.Val())
		if err != nil {
			return nil, storage.Wrap("find by credentials", err)
		}
		// The index may lag a rename; re-check the fields themselves
		if ok && admin.Username == username && admin.Password == password {
			out = append(out, admin)
		}
	}
	slices.SortFunc(out, func(a, b model.Admin) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (s *Storage) FindByPIN(ctx context.Context, id model.AdminID, pin string) ([]model.Admin, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	fields, err := s.client.HGetAll(ctx, adminKey(id)).Result()
	if err != nil {
		return nil, storage.Wrap("find by pin", err)
	}
	admin, ok, err := adminFromHash(fields)
	if err != nil {
		return nil, storage.Wrap("find by pin", err)
	}
	if !ok || admin.PIN != pin {
		return nil, nil
	}
	return []model.Admin{admin}, nil
}

func (s *Storage) Probe(ctx context.Context) ([]model.ProbeRow, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.client.Ping(ctx).Err(); err != nil {
		return nil, storage.Wrap("probe", err)
	}
	return []model.ProbeRow{{Test: 1}}, nil
}

func (s *Storage) SaveAdmin(ctx context.Context, admin *model.Admin) error {
	if err := storage.ValidateAdmin(admin); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	key := adminKey(admin.ID)
	oldUsername, err := s.client.HGet(ctx, key, fieldUsername).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return storage.Wrap("save admin", err)
	}

	// Use transaction for atomic save + index update
	pipe := s.client.TxPipeline()
	if oldUsername != "" && oldUsername != admin.Username {
		pipe.SRem(ctx, usernameIndexKey(oldUsername), admin.ID.String())
	}
	pipe.HSet(ctx, key, map[string]any{
		fieldID:       admin.ID.String(),
		fieldName:     admin.Name,
		fieldUsername: admin.Username,
		fieldPassword: admin.Password,
		fieldPIN:      admin.PIN,
	})
	pipe.SAdd(ctx, usernameIndexKey(admin.Username), admin.ID.String())
	_, err = pipe.Exec(ctx)
	return storage.Wrap("save admin", err)
}

// adminFromHash decodes an admin hash. ok is false for a missing key.
func adminFromHash(fields map[string]string) (model.Admin, bool, error) {
	if len(fields) == 0 {
		return model.Admin{}, false, nil
	}
	id, err := model.ParseAdminID(fields[fieldID])
	if err != nil {
		return model.Admin{}, false, err
	}
	return model.Admin{
		ID:       id,
		Name:     fields[fieldName],
		Username: fields[fieldUsername],
		Password: fields[fieldPassword],
		PIN:      fields[fieldPIN],
	}, true, nil
}
