package cmd

import (
	"production/internal/adapters/out/orderfeed"
	"production/internal/adapters/out/postgres"
	"production/internal/adapters/out/postgres/costconfigrepo"
	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/ports"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	orderFeed  ports.OrderFeed
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	feed, err := orderfeed.NewClient(config.OrderFeedBaseURL, config.OrderFeedToken)
	if err != nil {
		log.Fatalf("Failed to create order feed client: %v", err)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		orderFeed:  feed,
	}
}

func (c *CompositionRoot) CreateSubmitActionCommandHandler() commands.SubmitActionCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitActionCommandHandler(f)
}

func (c *CompositionRoot) CreateAmendActionCommandHandler() commands.AmendActionCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAmendActionCommandHandler(f)
}

func (c *CompositionRoot) CreateDeleteActionCommandHandler() commands.DeleteActionCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteActionCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateAddLineCommandHandler() commands.AddLineCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddLineCommandHandler(f)
}

func (c *CompositionRoot) CreateChangeLineQuantityCommandHandler() commands.ChangeLineQuantityCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeLineQuantityCommandHandler(f)
}

func (c *CompositionRoot) CreateRemoveLineCommandHandler() commands.RemoveLineCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemoveLineCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateCostConfigCommandHandler() commands.UpdateCostConfigCommandHandler {
	var f commands.CostConfigUoWFactory = FuncCostConfigUoWFactory(func() commands.CostConfigUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateCostConfigCommandHandler(f)
}

func (c *CompositionRoot) CreateSyncOrdersCommandHandler() commands.SyncOrdersCommandHandler {
	var f commands.SyncUoWFactory = FuncSyncUoWFactory(func() commands.SyncUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSyncOrdersCommandHandler(c.orderFeed, f)
}

func (c *CompositionRoot) CreateGetLineWithActionsQueryHandler() queries.GetLineWithActionsQueryHandler {
	return queries.NewGetLineWithActionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersBoardQueryHandler() queries.GetOrdersBoardQueryHandler {
	return queries.NewGetOrdersBoardQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWorkerActionsQueryHandler() queries.GetWorkerActionsQueryHandler {
	return queries.NewGetWorkerActionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWorkerByCodeQueryHandler() queries.GetWorkerByCodeQueryHandler {
	return queries.NewGetWorkerByCodeQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListWorkersQueryHandler() queries.ListWorkersQueryHandler {
	return queries.NewListWorkersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCostConfigQueryHandler() queries.GetCostConfigQueryHandler {
	return queries.NewGetCostConfigQueryHandler(costconfigrepo.NewGormCostConfigRepository(c.gormDB))
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncSyncUoWFactory func() commands.SyncUoW

func (f FuncSyncUoWFactory) Create() commands.SyncUoW {
	return f()
}

type FuncCostConfigUoWFactory func() commands.CostConfigUoW

func (f FuncCostConfigUoWFactory) Create() commands.CostConfigUoW {
	return f()
}
