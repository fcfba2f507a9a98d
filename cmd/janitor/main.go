package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/vry/internal/infra/logging"
)

const maxAge = 30 * 24 * time.Hour

// seen_at se guarda en segundos unix.
const pruneSQL = `DELETE FROM encounters WHERE seen_at < $1`

func dsn() string {
	if v := os.Getenv("VRY_DATABASE_URL"); v != "" {
		return v
	}
	return os.Getenv("DATABASE_URL")
}

func handler(ctx context.Context) (string, error) {
	url := dsn()
	if url == "" {
		return "no DATABASE_URL", nil
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return fmt.Sprintf("parse: %v", err), nil
	}
	cfg.MaxConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Sprintf("pool: %v", err), nil
	}
	defer pool.Close()

	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tag, err := pool.Exec(cctx, pruneSQL, time.Now().Add(-maxAge).Unix())
	if err != nil {
		log.Error().Err(err).Msg("prune encounters")
		return "", err
	}
	log.Info().Int64("rows", tag.RowsAffected()).Msg("encounters pruned")
	return fmt.Sprintf("ok: %d pruned", tag.RowsAffected()), nil
}

func main() {
	logging.SetupStderr(2)
	lambda.Start(handler)
}
