//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/Boring-Software-Nation/figaro-contract/internal/gateway/grpc/ledger"
	"github.com/Boring-Software-Nation/figaro-contract/internal/gateway/kafka/transfer_request"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/tasks/transfer_dispatch"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/address"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/clock"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/config"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/factory/expiration_window"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/factory/transfer_handle"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/signature"
	contractRepo "github.com/Boring-Software-Nation/figaro-contract/internal/repository/contract"
	"github.com/Boring-Software-Nation/figaro-contract/internal/repository/dedup"
	transferRepo "github.com/Boring-Software-Nation/figaro-contract/internal/repository/transfer"
	"github.com/Boring-Software-Nation/figaro-contract/internal/service/escrow"
	"github.com/Boring-Software-Nation/figaro-contract/internal/service/settlement"
	transferService "github.com/Boring-Software-Nation/figaro-contract/internal/service/transfer"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/background"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/logger"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/querier"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/tx"
	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"google.golang.org/grpc"
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	conn *grpc.ClientConn,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		escrowSet,

		provideDispatchInterval,
		provideTransferDispatchTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceEscrow), new(*escrow.Service)),
		wire.Bind(new(transfer_dispatch.Service), new(*transferService.Service)),
	)
	return &Application{}, nil
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-transfer-completed)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	conn *grpc.ClientConn,
	producer sarama.SyncProducer,
	redisClient *goredis.Client,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		escrowSet,

		transfer_handle.NewTagHandlerFactory,
		provideSettlementService,
		provideDedupRepository,

		wire.Struct(new(KafkaWorkerApp), "*"),

		wire.Bind(new(settlement.EscrowService), new(*escrow.Service)),
		wire.Bind(new(settlement.HandlerFactory), new(*transfer_handle.TagHandlerFactory)),
		wire.Bind(new(settlement.TransferRepository), new(*transferRepo.Repository)),
		wire.Bind(new(settlement.TxManager), new(*tx.Manager)),
		wire.Bind(new(settlement.Dispatcher), new(*transferService.Service)),
		wire.Bind(new(dedup.Client), new(*goredis.Client)),
	)
	return nil, nil
}

var escrowSet = wire.NewSet(
	provideTxManager,
	provideQuerier,

	provideContractRepository,
	provideTransferRepository,

	provideLedgerGateway,
	provideTransferPublisher,
	provideTransferService,
	provideAddressDeriver,
	signature.New,
	expiration_window.New,
	clock.New,
	escrow.New,

	wire.Bind(new(escrow.Repository), new(*contractRepo.Repository)),
	wire.Bind(new(escrow.TransferRepository), new(*transferRepo.Repository)),
	wire.Bind(new(escrow.Ledger), new(*ledger.LedgerGateway)),
	wire.Bind(new(escrow.TransferDispatcher), new(*transferService.Service)),
	wire.Bind(new(escrow.SignatureVerifier), new(*signature.Verifier)),
	wire.Bind(new(escrow.AddressDeriver), new(*address.Deriver)),
	wire.Bind(new(escrow.WindowFactory), new(*expiration_window.WindowFactory)),
	wire.Bind(new(escrow.Clock), new(*clock.Clock)),
	wire.Bind(new(escrow.TxManager), new(*tx.Manager)),

	wire.Bind(new(transferService.Repository), new(*transferRepo.Repository)),
	wire.Bind(new(transferService.Publisher), new(*transfer_request.Publisher)),
	wire.Bind(new(transferService.Clock), new(*clock.Clock)),
)
