package app

import (
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/action_post"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/contract_post"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/courier_get"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/delivery_cancel_post"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/delivery_confirm_post"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/details_post"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/funds_get"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/locations_get"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/status_get"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/token_get"
	"github.com/Boring-Software-Nation/figaro-contract/internal/repository/dedup"
	"github.com/Boring-Software-Nation/figaro-contract/internal/service/settlement"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/background"
)

type Application struct {
	ServiceEscrow     ServiceEscrow
	BackgroundWorkers *background.Worker
}

// ServiceEscrow объединяет всё, что REST хендлеры требуют от эскроу.
type ServiceEscrow interface {
	contract_post.Service
	action_post.Service
	details_post.Service
	delivery_confirm_post.Service
	delivery_cancel_post.Service
	status_get.Service
	courier_get.Service
	funds_get.Service
	locations_get.Service
	token_get.Service
}

type KafkaWorkerApp struct {
	SettlementService *settlement.Service
	Dedup             *dedup.Repository
}
