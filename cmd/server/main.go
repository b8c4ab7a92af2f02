package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wipxap/TITANIUM-sub000/internal/config"
	"github.com/wipxap/TITANIUM-sub000/internal/handler"
	"github.com/wipxap/TITANIUM-sub000/internal/infra"
	"github.com/wipxap/TITANIUM-sub000/internal/repository"
	"github.com/wipxap/TITANIUM-sub000/internal/router"
	"github.com/wipxap/TITANIUM-sub000/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Receipt numbering and history are day-scoped in this zone.
	service.ConfigurarZona(cfg.Timezone)

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		// Redis only backs the price cache; the POS must keep selling without it.
		log.Warn().Err(err).Msg("redis no disponible, cache de precios deshabilitado")
		rdb = nil
	}

	// Repositories
	usuarios := repository.NewUsuarioRepository(db)
	perfiles := repository.NewPerfilRepository(db)
	planes := repository.NewPlanRepository(db)
	productos := repository.NewProductoRepository(db)
	maquinas := repository.NewMaquinaRepository(db)
	cajas := repository.NewCajaRepository(db)
	ventas := repository.NewVentaRepository(db)
	anulaciones := repository.NewAnulacionRepository(db)
	suscripciones := repository.NewSuscripcionRepository(db)
	descuentos := repository.NewDescuentoRepository(db)
	asistencias := repository.NewAsistenciaRepository(db)

	// Infra clients
	mailer := infra.NewMailer(cfg)
	rutinasClient := infra.NewRutinasClient(cfg.RutinasSidecarURL)
	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	// Services
	authSvc := service.NewAuthService(usuarios, perfiles, cfg)
	cajaSvc := service.NewCajaService(cajas)
	descuentoSvc := service.NewDescuentoService(descuentos, suscripciones)
	ventaSvc := service.NewVentaService(ventas, cajaSvc, perfiles, planes, productos, suscripciones, descuentoSvc, mailer, cfg)
	anulacionSvc := service.NewAnulacionService(anulaciones, ventas, suscripciones)
	catalogoSvc := service.NewCatalogoService(planes, productos, maquinas, rdb)
	rutinaSvc := service.NewRutinaService(perfiles, rutinasClient, cb)
	asistenciaSvc := service.NewAsistenciaService(asistencias, perfiles, suscripciones)

	engine := router.New(cfg, router.Handlers{
		Auth:      handler.NewAuthHandler(authSvc),
		Caja:      handler.NewCajaHandler(cajaSvc),
		Ventas:    handler.NewVentaHandler(ventaSvc, anulacionSvc),
		Anulacion: handler.NewAnulacionHandler(anulacionSvc),
		Catalogo:  handler.NewCatalogoHandler(catalogoSvc, descuentoSvc),
		Precios:   handler.NewPreciosHandler(catalogoSvc, descuentoSvc),
		Socio:     handler.NewSocioHandler(asistenciaSvc, rutinaSvc),
		Health:    handler.NewHealthHandler(db, rdb),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("servidor iniciado")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("apagando servidor")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown forzado")
	}
	log.Info().Msg("servidor detenido")
}
