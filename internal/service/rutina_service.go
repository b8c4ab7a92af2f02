package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wipxap/TITANIUM-sub000/internal/apierror"
	"github.com/wipxap/TITANIUM-sub000/internal/dto"
	"github.com/wipxap/TITANIUM-sub000/internal/infra"
	"github.com/wipxap/TITANIUM-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RutinaService generates training routines for members. The AI sidecar is
// preferred; when it fails or the circuit breaker is open, a deterministic
// template keyed on objetivo/nivel answers instead, so the member always gets
// a routine.
type RutinaService interface {
	Generar(ctx context.Context, usuarioID uuid.UUID, req dto.GenerarRutinaRequest) (*dto.RutinaGeneradaResponse, error)
}

type rutinaService struct {
	perfiles repository.PerfilRepository
	client   *infra.RutinasClient
	cb       *infra.CircuitBreaker
}

func NewRutinaService(perfiles repository.PerfilRepository, client *infra.RutinasClient, cb *infra.CircuitBreaker) RutinaService {
	if cb == nil {
		cb = infra.NewCircuitBreaker(infra.DefaultCBConfig())
	}
	return &rutinaService{perfiles: perfiles, client: client, cb: cb}
}

func (s *rutinaService) Generar(ctx context.Context, usuarioID uuid.UUID, req dto.GenerarRutinaRequest) (*dto.RutinaGeneradaResponse, error) {
	perfil, err := s.perfiles.FindByUsuarioID(ctx, usuarioID)
	if err != nil {
		return nil, apierror.NoEncontrado("perfil no encontrado")
	}

	if s.client != nil {
		payload := infra.RutinaPayload{
			Objetivo:   perfil.Objetivo,
			Nivel:      perfil.Nivel,
			DiasSemana: req.DiasSemana,
		}
		if perfil.FechaNacimiento != nil {
			edad := edadEnAnios(*perfil.FechaNacimiento, time.Now())
			payload.Edad = &edad
		}

		var resultado *infra.RutinaResponse
		err := s.cb.Execute(func() error {
			var err error
			resultado, err = s.client.Generar(ctx, payload)
			return err
		})
		if err == nil {
			return &dto.RutinaGeneradaResponse{Texto: resultado.Texto, Source: "ai"}, nil
		}
		log.Warn().Err(err).Str("estado_cb", s.cb.State().String()).Msg("sidecar de rutinas no disponible, usando plantilla")
	}

	return &dto.RutinaGeneradaResponse{
		Texto:  plantillaRutina(perfil.Objetivo, perfil.Nivel, req.DiasSemana),
		Source: "template",
	}, nil
}

func edadEnAnios(nacimiento, ahora time.Time) int {
	edad := ahora.Year() - nacimiento.Year()
	if ahora.YearDay() < nacimiento.YearDay() {
		edad--
	}
	return edad
}

// Per-goal exercise blocks for the offline template. Same input, same routine.
var bloquesPorObjetivo = map[string][]string{
	"perdida_peso": {
		"Cardio continuo 30 min (trotadora o elíptica)",
		"Circuito cuerpo completo: sentadillas, flexiones, remo con mancuerna — 3×15",
		"HIIT 20 min: 40s trabajo / 20s pausa",
		"Core: plancha 3×45s, elevaciones de piernas 3×12",
	},
	"hipertrofia": {
		"Pecho y tríceps: press banca 4×8, press inclinado 3×10, fondos 3×10",
		"Espalda y bíceps: dominadas 4×8, remo con barra 4×10, curl 3×12",
		"Piernas: sentadilla 4×8, prensa 4×10, peso muerto rumano 3×10",
		"Hombros y core: press militar 4×8, elevaciones laterales 3×12, plancha 3×60s",
	},
	"resistencia": {
		"Carrera progresiva 40 min, última fracción a ritmo alto",
		"Circuito metabólico: burpees, kettlebell swings, box jumps — 4 rondas",
		"Bicicleta intervalos: 5×(3 min fuerte / 2 min suave)",
		"Natación o remo continuo 30 min",
	},
	"salud_general": {
		"Caminata rápida o trote suave 30 min",
		"Fuerza básica: sentadilla con peso corporal 3×12, flexiones 3×10",
		"Movilidad y estiramientos 20 min",
		"Bicicleta suave 25 min + core ligero",
	},
}

var ajustePorNivel = map[string]string{
	"principiante": "Trabaje con cargas livianas y priorice la técnica. Descanse 90s entre series.",
	"intermedio":   "Cargas moderadas, 60-90s de descanso. Suba el peso cuando complete todas las series.",
	"avanzado":     "Cargas exigentes, 45-60s de descanso. Incluya series al fallo en el último ejercicio.",
}

// plantillaRutina builds the fallback routine. Deterministic on purpose:
// two members with the same profile and days get the same text.
func plantillaRutina(objetivo, nivel string, diasSemana int) string {
	bloques, ok := bloquesPorObjetivo[objetivo]
	if !ok {
		bloques = bloquesPorObjetivo["salud_general"]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Rutina %s (%s) — %d días por semana\n\n", objetivo, nivel, diasSemana)
	for dia := 1; dia <= diasSemana; dia++ {
		fmt.Fprintf(&b, "Día %d: %s\n", dia, bloques[(dia-1)%len(bloques)])
	}
	if ajuste, ok := ajustePorNivel[nivel]; ok {
		fmt.Fprintf(&b, "\n%s\n", ajuste)
	}
	return b.String()
}
