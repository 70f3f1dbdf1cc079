package ledger

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	retrierconfig "github.com/Boring-Software-Nation/figaro-contract/pkg/retrier"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/retrier/backoff_adapter"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	methodGetBalance   = "/ledger.v1.LedgerService/GetBalance"
	methodGetTokenInfo = "/ledger.v1.LedgerService/GetTokenInfo"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 3 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

type LedgerGateway struct {
	client  client
	retrier retrier
}

func New(client client) *LedgerGateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryableCode,
	}

	return &LedgerGateway{
		client:  client,
		retrier: backoff_adapter.New(retryConfig),
	}
}

// Balance returns how much of token the address holds.
func (l *LedgerGateway) Balance(ctx context.Context, token, address string) (*big.Int, error) {
	resp := &structpb.Struct{}
	err := l.invoke(ctx, methodGetBalance, balanceRequest(token, address), resp)
	if err != nil {
		return nil, fmt.Errorf("gateway ledger, get balance of %s: %w", address, err)
	}

	return toBalance(resp)
}

func (l *LedgerGateway) TokenInfo(ctx context.Context, token string) (*entities.TokenInfo, error) {
	resp := &structpb.Struct{}
	err := l.invoke(ctx, methodGetTokenInfo, tokenInfoRequest(token), resp)
	if err != nil {
		return nil, fmt.Errorf("gateway ledger, get token info %s: %w", token, err)
	}

	return toTokenInfo(resp)
}

func (l *LedgerGateway) invoke(ctx context.Context, method string, req, resp *structpb.Struct) error {
	var attempt uint64
	start := time.Now()

	err := l.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		resp.Reset()
		return l.client.Invoke(ctx, method, req, resp)
	})

	grpcCode := getGRPCCode(err)
	GatewayRequestDuration.WithLabelValues(method, grpcCode).Observe(time.Since(start).Seconds())
	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(method, grpcCode).Inc()
	}

	return err
}

func isRetryableCode(err error) bool {
	st, ok := status.FromError(err)
	if !ok || err == nil {
		return false
	}

	switch st.Code() {
	case codes.ResourceExhausted,
		codes.Unavailable,
		codes.DeadlineExceeded:
		return true
	default:
		return false
	}
}

func getGRPCCode(err error) string {
	if err == nil {
		return "OK"
	}
	if st, ok := status.FromError(err); ok {
		return st.Code().String()
	}
	return "UNKNOWN"
}
