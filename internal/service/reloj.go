package service

import (
	"fmt"
	"math"
	"time"
)

// Receipt dates are day-scoped in Chile local time: a sale at 23:59 and one at
// 00:01 belong to different sequences even if the server clock runs in UTC.
var zonaChile = cargarZona("America/Santiago")

func cargarZona(nombre string) *time.Location {
	loc, err := time.LoadLocation(nombre)
	if err != nil {
		// Container images without tzdata: continental Chile standard offset
		return time.FixedZone("CLT", -4*60*60)
	}
	return loc
}

// ConfigurarZona sets the day-scoping zone from the TIMEZONE config value.
// Called once at startup, before the server begins serving.
func ConfigurarZona(nombre string) {
	if nombre == "" {
		return
	}
	zonaChile = cargarZona(nombre)
}

// fechaBoleta returns the YYYYMMDD receipt date for t in Chile local time.
func fechaBoleta(t time.Time) string {
	return t.In(zonaChile).Format("20060102")
}

// numeroBoleta formats "TI-YYYYMMDD-0001".
func numeroBoleta(prefijo, fecha string, secuencia int) string {
	return fmt.Sprintf("%s-%s-%04d", prefijo, fecha, secuencia)
}

// diasHastaVencimiento is ceil((fechaFin - ahora) / 1 día): positive while the
// subscription still runs, zero or negative once expired.
func diasHastaVencimiento(fechaFin, ahora time.Time) int {
	return int(math.Ceil(fechaFin.Sub(ahora).Hours() / 24))
}
