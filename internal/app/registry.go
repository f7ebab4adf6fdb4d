package app

import (
	"database/sql"
	"time"

	"github.com/kiwidressing/Maruschedule/internal/archive"
	"github.com/kiwidressing/Maruschedule/internal/auth"
	"github.com/kiwidressing/Maruschedule/internal/company"
	"github.com/kiwidressing/Maruschedule/internal/export"
	"github.com/kiwidressing/Maruschedule/internal/joinrequest"
	"github.com/kiwidressing/Maruschedule/internal/member"
	"github.com/kiwidressing/Maruschedule/internal/messaging/kafka"
	"github.com/kiwidressing/Maruschedule/internal/middleware"
	"github.com/kiwidressing/Maruschedule/internal/policy"
	"github.com/kiwidressing/Maruschedule/internal/rollup"
	"github.com/kiwidressing/Maruschedule/internal/shared/counter"
	"github.com/kiwidressing/Maruschedule/internal/shift"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const idempotencyTTL = 24 * time.Hour

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	joinRequestRepo := joinrequest.NewRepository(gormDB)
	memberRepo := member.NewRepository(gormDB)
	shiftRepo := shift.NewRepository(gormDB)
	archiveRepo := archive.NewRepository(gormDB)
	rollupRepo := rollup.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Policy core ---
	policyService, err := policy.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	companyService := company.NewService(db, companyRepo)
	authService := auth.NewService(db, authRepo, companyService, joinRequestRepo, counterRepo)
	joinRequestService := joinrequest.NewService(db, joinRequestRepo, counterRepo, outboxRepo)
	memberService := member.NewService(db, memberRepo)
	shiftService := shift.NewService(db, shiftRepo)
	archiveService := archive.NewService(db, archiveRepo, shiftRepo, outboxRepo)
	rollupService := rollup.NewService(db, rollupRepo)
	exportService := export.NewService(shiftService, archiveService, authService)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyService)
	joinRequestHandler := joinrequest.NewHandler(joinRequestService)
	memberHandler := member.NewHandler(memberService)
	shiftHandler := shift.NewHandler(shiftService)
	archiveHandler := archive.NewHandler(archiveService)
	rollupHandler := rollup.NewHandler(rollupService)
	exportHandler := export.NewHandler(exportService)

	idempotency := middleware.Idempotency(rdb, idempotencyTTL)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		company.RegisterRoutes(api, companyHandler, policyService)
		joinrequest.RegisterRoutes(api, joinRequestHandler, policyService)
		member.RegisterRoutes(api, memberHandler, policyService)
		shift.RegisterRoutes(api, shiftHandler, policyService)
		archive.RegisterRoutes(api, archiveHandler, policyService, idempotency)
		rollup.RegisterRoutes(api, rollupHandler, policyService)
		export.RegisterRoutes(api, exportHandler, policyService)
	}

	return nil
}
