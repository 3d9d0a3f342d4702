package battlereport

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-balance/internal/entities"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-balance/internal/redis"
)

const (
	reportKeyPrefix  = "report:"
	sessionKeyPrefix = "report:session:"
)

// RedisConfig contains configuration for the Redis battle report repository
type RedisConfig struct {
	Client redisclient.Client
	// TTL expires reports and the session index; zero keeps them forever
	TTL time.Duration
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Client == nil {
		vb.RequiredField("Client")
	}
	if cfg.TTL < 0 {
		vb.Field("TTL", "cannot be negative")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// NewRedis creates a new Redis-backed battle report repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    cfg.TTL,
	}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateReport(input.Report); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Report)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal report")
	}

	reportKey := reportKeyPrefix + input.Report.ID
	created, err := r.client.SetNX(ctx, reportKey, data, r.ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create report")
	}
	if !created {
		return nil, errors.AlreadyExistsf("report %s already exists", input.Report.ID)
	}

	sessionKey := sessionKeyPrefix + input.Report.SessionID
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, sessionKey, input.Report.ID)
	if r.ttl > 0 {
		pipe.Expire(ctx, sessionKey, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		r.client.Del(ctx, reportKey)
		return nil, errors.Wrapf(err, "failed to index report")
	}

	return &CreateOutput{}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errReportIDEmpty)
	}

	result, err := r.client.Get(ctx, reportKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("report with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get report")
	}

	report, err := decodeReport([]byte(result))
	if err != nil {
		return nil, err
	}

	return &GetOutput{Report: report}, nil
}

func (r *redisRepository) ListBySession(ctx context.Context, input ListBySessionInput) (*ListBySessionOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	sessionKey := sessionKeyPrefix + input.SessionID
	ids, err := r.client.LRange(ctx, sessionKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list session reports")
	}

	output := &ListBySessionOutput{Reports: []*entities.BattleReport{}}
	if len(ids) == 0 {
		return output, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = reportKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load session reports")
	}

	var live []*entities.BattleReport
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// Expired ahead of the index; drop the dangling entry
			if err := r.client.LRem(ctx, sessionKey, 1, ids[i]).Err(); err != nil {
				slog.Warn("Failed to prune expired report from session index",
					"session_id", input.SessionID,
					"report_id", ids[i],
					"error", err,
				)
			}
			continue
		}

		report, err := decodeReport([]byte(raw))
		if err != nil {
			return nil, err
		}
		live = append(live, report)
	}

	output.Reports = append(output.Reports, tail(live, input.Limit)...)
	return output, nil
}
