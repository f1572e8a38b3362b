package main

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/rs/zerolog/log"
	adminagent "github.com/tanpawarit/agentic-oms/agent/agents/admin"
	inquiryagent "github.com/tanpawarit/agentic-oms/agent/agents/inquiry"
	inventoryagent "github.com/tanpawarit/agentic-oms/agent/agents/inventory"
	orderagent "github.com/tanpawarit/agentic-oms/agent/agents/order"
	statusagent "github.com/tanpawarit/agentic-oms/agent/agents/status"
	contractx "github.com/tanpawarit/agentic-oms/agent/contract"
	"github.com/tanpawarit/agentic-oms/agent/gateway"
	llmx "github.com/tanpawarit/agentic-oms/agent/llm"
	storex "github.com/tanpawarit/agentic-oms/agent/store"
	configx "github.com/tanpawarit/agentic-oms/pkg/config"
	_ "github.com/tanpawarit/agentic-oms/pkg/logger/autoload"
	openrouterx "github.com/tanpawarit/agentic-oms/pkg/openrouter"
)

type AppConfig struct {
	DataDir         string `envconfig:"DATA_DIR" split_words:"true" default:"data"`
	SnapshotBackend string `envconfig:"SNAPSHOT_BACKEND" split_words:"true" default:"file"`
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[AppConfig]("")
	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")

	openRouterClient := openrouterx.NewClient(openrouterx.Config{
		BaseURL: llmCfg.BaseURL,
		APIKey:  llmCfg.APIKey,
		Model:   llmCfg.Model,
	})
	if openRouterClient == nil {
		panic("failed to initialize openrouter client")
	}

	gen, err := gateway.NewRegistry(ctx, *llmCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build generation gateway")
	}

	catalog, ledger, users, saveAll := loadStores(ctx, appCfg)
	defer saveAll()

	orderAg, err := orderagent.New(catalog, ledger, gen)
	if err != nil {
		log.Fatal().Err(err).Msg("build order agent")
	}
	inventoryAg, err := inventoryagent.New(catalog)
	if err != nil {
		log.Fatal().Err(err).Msg("build inventory agent")
	}
	statusAg, err := statusagent.New(ledger, gen)
	if err != nil {
		log.Fatal().Err(err).Msg("build status agent")
	}
	adminAg, err := adminagent.New(catalog, ledger, users, gen)
	if err != nil {
		log.Fatal().Err(err).Msg("build admin agent")
	}
	inquiryAg, err := inquiryagent.New(catalog, gen)
	if err != nil {
		log.Fatal().Err(err).Msg("build inquiry agent")
	}
	_, _, _, _, _ = orderAg, inventoryAg, statusAg, adminAg, inquiryAg

	log.Info().
		Int("products", catalog.Len()).
		Int("orders", ledger.Len()).
		Msg("agents ready")
}

// loadStores builds the in-memory stores from the configured snapshot
// backend and returns a saver the caller runs after mutations (and on
// shutdown). The stores themselves never persist.
func loadStores(ctx context.Context, cfg *AppConfig) (*storex.Catalog, *storex.Ledger, *storex.Users, func()) {
	if cfg.SnapshotBackend == "redis" {
		snapCfg := configx.MustNew[storex.SnapshotConfig]("REDIS")
		snap, err := storex.NewRedisSnapshotStore(*snapCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("build redis snapshot store")
		}

		products := loadSnapshot[contractx.Product](ctx, snap, "products")
		orders := loadSnapshot[contractx.Order](ctx, snap, "orders")
		userRecords := loadSnapshot[contractx.User](ctx, snap, "users")

		catalog := storex.NewCatalog(products)
		ledger := storex.NewLedger(orders)
		return catalog, ledger, storex.NewUsers(userRecords), func() {
			if err := snap.Save(ctx, "products", catalog.List()); err != nil {
				log.Error().Err(err).Msg("save products snapshot")
			}
			if err := snap.Save(ctx, "orders", ledger.List()); err != nil {
				log.Error().Err(err).Msg("save orders snapshot")
			}
		}
	}

	productsPath := filepath.Join(cfg.DataDir, "products.json")
	ordersPath := filepath.Join(cfg.DataDir, "orders.json")
	usersPath := filepath.Join(cfg.DataDir, "users.json")

	catalog := storex.NewCatalog(storex.LoadFile[contractx.Product](productsPath))
	ledger := storex.NewLedger(storex.LoadFile[contractx.Order](ordersPath))
	users := storex.NewUsers(storex.LoadFile[contractx.User](usersPath))

	return catalog, ledger, users, func() {
		if err := storex.SaveFile(productsPath, catalog.List()); err != nil {
			log.Error().Err(err).Msg("save products")
		}
		if err := storex.SaveFile(ordersPath, ledger.List()); err != nil {
			log.Error().Err(err).Msg("save orders")
		}
	}
}

func loadSnapshot[T any](ctx context.Context, snap *storex.RedisSnapshotStore, name string) []T {
	var records []T
	if err := snap.Load(ctx, name, &records); err != nil {
		if !errors.Is(err, storex.ErrSnapshotNotFound) {
			log.Warn().Err(err).Str("snapshot", name).Msg("load snapshot failed, starting empty")
		}
		return []T{}
	}
	return records
}
