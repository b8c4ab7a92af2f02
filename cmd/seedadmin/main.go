// Command seedadmin creates the initial administrator account. Run once after
// provisioning:
//
//	seedadmin -rut 11111111-1 -nombre "Admin" -password <secreto>
package main

import (
	"context"
	"flag"

	"github.com/wipxap/TITANIUM-sub000/internal/config"
	"github.com/wipxap/TITANIUM-sub000/internal/infra"
	"github.com/wipxap/TITANIUM-sub000/internal/model"
	"github.com/wipxap/TITANIUM-sub000/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	rut := flag.String("rut", "", "RUT del administrador")
	nombre := flag.String("nombre", "Administrador", "nombre completo")
	password := flag.String("password", "", "contraseña inicial")
	flag.Parse()

	if *rut == "" || *password == "" {
		log.Fatal().Msg("uso: seedadmin -rut <rut> -password <password> [-nombre <nombre>]")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}

	usuarios := repository.NewUsuarioRepository(db)
	ctx := context.Background()

	if existente, err := usuarios.FindByRUT(ctx, *rut); err == nil {
		log.Info().Str("id", existente.ID.String()).Msg("el administrador ya existe, nada que hacer")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt")
	}

	admin := &model.Usuario{
		RUT:          *rut,
		Nombre:       *nombre,
		PasswordHash: string(hash),
		Rol:          model.RolAdministrador,
		Activo:       true,
	}
	if err := usuarios.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("crear administrador")
	}
	log.Info().Str("id", admin.ID.String()).Str("rut", admin.RUT).Msg("administrador creado")
}
