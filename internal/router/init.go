package router

import (
	"jobportal-api/internal/application"
	"jobportal-api/internal/container"
	"jobportal-api/internal/infrastructure/email"
	pginfra "jobportal-api/internal/infrastructure/postgres"
	handlers "jobportal-api/internal/interface/http"
	"jobportal-api/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers them with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	notifier := email.NewNotifier(
		container.GetMailgun(),
		container.GetRabbitPub(),
		logger,
		cfg.CompanyName,
		cfg.SupportURL,
		int(cfg.OTPTTL.Minutes()),
		cfg.MailSendEnabled,
	)

	userRepo := pginfra.NewUserRepository(pool)
	recruiterRepo := pginfra.NewRecruiterRepository(pool)
	adminRepo := pginfra.NewAdminRepository(pool)
	jobRepo := pginfra.NewJobRepository(pool)

	userRecovery := application.NewRecoveryMachine(userRepo, notifier, logger, cfg.OTPTTL)
	recruiterRecovery := application.NewRecoveryMachine(recruiterRepo, notifier, logger, cfg.OTPTTL)

	userSvc := application.NewUserService(userRepo, userRecovery, jwt, logger)
	recruiterSvc := application.NewRecruiterService(recruiterRepo, recruiterRecovery, jwt, logger)
	adminSvc := application.NewAdminService(adminRepo, jwt)
	jobSvc := application.NewJobService(jobRepo)

	userHandler := handlers.NewUserHandler(userSvc, logger)
	recruiterHandler := handlers.NewRecruiterHandler(recruiterSvc, logger)
	adminHandler := handlers.NewAdminHandler(adminSvc, jobSvc, logger)
	jobHandler := handlers.NewJobHandler(jobSvc, logger)

	r.Add(modules.NewUserModule(userHandler, jwt))
	r.Add(modules.NewRecruiterModule(recruiterHandler, jobHandler, jwt))
	r.Add(modules.NewAdminModule(adminHandler, jwt))
	r.Add(modules.NewJobsModule(jobHandler))
}
