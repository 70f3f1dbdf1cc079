package app

import (
	"context"
	"time"

	"github.com/Boring-Software-Nation/figaro-contract/internal/gateway/grpc/ledger"
	"github.com/Boring-Software-Nation/figaro-contract/internal/gateway/kafka/transfer_request"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/tasks/transfer_dispatch"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/address"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/config"
	contractRepo "github.com/Boring-Software-Nation/figaro-contract/internal/repository/contract"
	"github.com/Boring-Software-Nation/figaro-contract/internal/repository/dedup"
	transferRepo "github.com/Boring-Software-Nation/figaro-contract/internal/repository/transfer"
	"github.com/Boring-Software-Nation/figaro-contract/internal/service/settlement"
	transferService "github.com/Boring-Software-Nation/figaro-contract/internal/service/transfer"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/background"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/logger"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/querier"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/tx"
	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"
)

type DispatchInterval time.Duration

func provideDispatchInterval(cfg *config.Config) DispatchInterval {
	return DispatchInterval(cfg.Tasks.TransferDispatchInterval)
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideContractRepository(querier *querier.Querier) *contractRepo.Repository {
	return contractRepo.New(querier)
}

func provideTransferRepository(querier *querier.Querier) *transferRepo.Repository {
	return transferRepo.New(querier)
}

func provideDedupRepository(client dedup.Client, cfg *config.Config) *dedup.Repository {
	return dedup.New(client, cfg.Redis.DedupTTL)
}

func provideLedgerGateway(conn *grpc.ClientConn) *ledger.LedgerGateway {
	return ledger.New(conn)
}

func provideTransferPublisher(producer sarama.SyncProducer, cfg *config.Config) *transfer_request.Publisher {
	return transfer_request.New(producer, cfg.Kafka.Topics.TransferRequested)
}

func provideAddressDeriver(cfg *config.Config) (*address.Deriver, error) {
	return address.NewDeriver(cfg.Escrow.XPub, cfg.Escrow.Bech32Prefix)
}

func provideTransferService(
	log logger.Logger,
	repository transferService.Repository,
	publisher transferService.Publisher,
	clock transferService.Clock,
	cfg *config.Config,
) *transferService.Service {
	return transferService.New(
		log.With(logger.NewField("service", "transfer")),
		repository,
		publisher,
		clock,
		transferService.Config{Grace: cfg.Tasks.TransferDispatchGrace},
	)
}

func provideSettlementService(
	transfers settlement.TransferRepository,
	handlerFactory settlement.HandlerFactory,
	txManager settlement.TxManager,
	dispatcher settlement.Dispatcher,
) *settlement.Service {
	return settlement.New(transfers, handlerFactory, txManager, dispatcher)
}

func provideTransferDispatchTask(
	log logger.Logger,
	service transfer_dispatch.Service,
	interval DispatchInterval,
) *transfer_dispatch.TransferDispatch {
	return transfer_dispatch.NewTransferDispatch(log, service, time.Duration(interval))
}

func provideTaskList(
	transferDispatchTask *transfer_dispatch.TransferDispatch,
) []background.Task {
	return []background.Task{
		transferDispatchTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}

