package service

import (
	"context"
	"errors"
	"time"

	"github.com/wipxap/TITANIUM-sub000/internal/apierror"
	"github.com/wipxap/TITANIUM-sub000/internal/config"
	"github.com/wipxap/TITANIUM-sub000/internal/dto"
	"github.com/wipxap/TITANIUM-sub000/internal/infra"
	"github.com/wipxap/TITANIUM-sub000/internal/model"
	"github.com/wipxap/TITANIUM-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// maxIntentosBoleta bounds the retry loop when two concurrent sales race for
// the same day sequence and the composite unique index rejects one.
const maxIntentosBoleta = 3

type VentaService interface {
	Crear(ctx context.Context, vendedorID uuid.UUID, req dto.CrearVentaRequest) (*dto.VentaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Historial(ctx context.Context, filter dto.HistorialVentasFilter) (*dto.VentaListResponse, error)
	// BoletaPDF renders the receipt for a sale and returns the file path.
	BoletaPDF(ctx context.Context, id uuid.UUID) (string, error)
}

type ventaService struct {
	ventas        repository.VentaRepository
	cajas         CajaService
	perfiles      repository.PerfilRepository
	planes        repository.PlanRepository
	productos     repository.ProductoRepository
	suscripciones repository.SuscripcionRepository
	descuentos    DescuentoService
	mailer        *infra.Mailer
	cfg           *config.Config
}

func NewVentaService(
	ventas repository.VentaRepository,
	cajas CajaService,
	perfiles repository.PerfilRepository,
	planes repository.PlanRepository,
	productos repository.ProductoRepository,
	suscripciones repository.SuscripcionRepository,
	descuentos DescuentoService,
	mailer *infra.Mailer,
	cfg *config.Config,
) VentaService {
	return &ventaService{
		ventas:        ventas,
		cajas:         cajas,
		perfiles:      perfiles,
		planes:        planes,
		productos:     productos,
		suscripciones: suscripciones,
		descuentos:    descuentos,
		mailer:        mailer,
		cfg:           cfg,
	}
}

// runTx wraps fn in a DB transaction. A nil db runs fn directly against a nil
// tx, which the in-memory repository fakes accept — unit tests exercise the
// full service flow without a database.
func runTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.Transaction(fn)
}

// lineaResuelta is a sale line after server-side price resolution.
type lineaResuelta struct {
	tipo        string
	itemID      uuid.UUID
	descripcion string
	cantidad    int
	precio      int64
	plan        *model.Plan
}

func (s *ventaService) Crear(ctx context.Context, vendedorID uuid.UUID, req dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	caja, err := s.cajas.CajaAbierta(ctx)
	if err != nil {
		return nil, err
	}

	var perfil *model.Perfil
	if req.UserID != nil {
		usuarioID, err := uuid.Parse(*req.UserID)
		if err != nil {
			return nil, apierror.Validacion("userId inválido")
		}
		perfil, err = s.perfiles.FindByUsuarioID(ctx, usuarioID)
		if err != nil {
			return nil, apierror.NoEncontrado("perfil de socio no encontrado")
		}
	}

	lineas, err := s.resolverLineas(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	var lineaPlan *lineaResuelta
	for i := range lineas {
		if lineas[i].tipo == model.ItemPlan {
			lineaPlan = &lineas[i]
		}
	}
	if lineaPlan != nil && perfil == nil {
		return nil, apierror.Validacion("la venta de un plan requiere userId del socio")
	}

	// Renewal discount: resolved against the member's latest subscription and
	// applied to the plan line BEFORE freezing prices. Only the plan line is
	// discounted; products sell at list price.
	var descuento *dto.DescuentoAplicadoResponse
	if lineaPlan != nil {
		descuento, err = s.descuentos.Resolver(ctx, perfil.ID)
		if err != nil {
			return nil, err
		}
		if descuento.DiscountPercent.IsPositive() {
			lineaPlan.precio = AplicarPorcentaje(lineaPlan.precio, descuento.DiscountPercent)
		} else {
			descuento = nil
		}
	}

	var total int64
	for _, l := range lineas {
		total += l.precio * int64(l.cantidad)
	}

	var (
		venta       *model.Venta
		suscripcion *model.Suscripcion
		renovada    bool
		txErr       error
	)
	for intento := 0; intento < maxIntentosBoleta; intento++ {
		venta = s.construirVenta(caja.ID, vendedorID, perfil, req, lineas, total, descuento)
		suscripcion, renovada = nil, false

		txErr = runTx(s.ventas.DB(), func(tx *gorm.DB) error {
			ahora := time.Now()
			fecha := fechaBoleta(ahora)
			seq, err := s.ventas.MaxSecuenciaDia(ctx, tx, fecha)
			if err != nil {
				return err
			}
			venta.FechaBoleta = fecha
			venta.SecuenciaBoleta = seq + 1
			venta.NumeroBoleta = numeroBoleta(s.cfg.BoletaPrefijo, fecha, seq+1)

			if err := s.ventas.Create(ctx, tx, venta); err != nil {
				return err
			}

			if lineaPlan == nil {
				return nil
			}
			suscripcion, renovada, err = s.aplicarSuscripcion(ctx, tx, venta, perfil.ID, lineaPlan.plan, ahora)
			return err
		})
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			continue
		}
		break
	}
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflicto("no se pudo asignar número de boleta; reintente")
		}
		return nil, txErr
	}

	s.enviarBoletaEmail(venta, perfil)

	resp := toVentaResponse(venta)
	resp.Discount = descuento
	if suscripcion != nil {
		resp.Subscription = toSuscripcionResponse(suscripcion, lineaPlan.plan.Nombre, renovada)
	}
	return resp, nil
}

func (s *ventaService) resolverLineas(ctx context.Context, items []dto.ItemVentaRequest) ([]lineaResuelta, error) {
	lineas := make([]lineaResuelta, 0, len(items))
	planesVistos := 0
	for _, item := range items {
		itemID, err := uuid.Parse(item.ID)
		if err != nil {
			return nil, apierror.Validacion("id de ítem inválido")
		}
		switch item.Type {
		case model.ItemPlan:
			planesVistos++
			if planesVistos > 1 {
				return nil, apierror.Validacion("una venta puede incluir a lo más un plan")
			}
			if item.Quantity != 1 {
				return nil, apierror.Validacion("la cantidad de un plan debe ser 1")
			}
			plan, err := s.planes.FindByID(ctx, itemID)
			if err != nil {
				return nil, apierror.NoEncontrado("plan no encontrado")
			}
			if !plan.Activo {
				return nil, apierror.Validacion("el plan no está disponible para la venta")
			}
			lineas = append(lineas, lineaResuelta{
				tipo:        model.ItemPlan,
				itemID:      plan.ID,
				descripcion: plan.Nombre,
				cantidad:    1,
				precio:      plan.Precio,
				plan:        plan,
			})
		case model.ItemProducto:
			producto, err := s.productos.FindByID(ctx, itemID)
			if err != nil {
				return nil, apierror.NoEncontrado("producto no encontrado")
			}
			if !producto.Activo {
				return nil, apierror.Validacion("el producto no está disponible para la venta")
			}
			lineas = append(lineas, lineaResuelta{
				tipo:        model.ItemProducto,
				itemID:      producto.ID,
				descripcion: producto.Nombre,
				cantidad:    item.Quantity,
				precio:      producto.Precio,
			})
		default:
			return nil, apierror.Validacion("tipo de ítem desconocido")
		}
	}
	return lineas, nil
}

func (s *ventaService) construirVenta(
	cajaID, vendedorID uuid.UUID,
	perfil *model.Perfil,
	req dto.CrearVentaRequest,
	lineas []lineaResuelta,
	total int64,
	descuento *dto.DescuentoAplicadoResponse,
) *model.Venta {
	venta := &model.Venta{
		CajaID:        cajaID,
		VendedorID:    vendedorID,
		MetodoPago:    req.PaymentMethod,
		Estado:        model.VentaCompleted,
		Total:         total,
		Observaciones: req.Notes,
	}
	if perfil != nil {
		id := perfil.ID
		venta.PerfilID = &id
	}
	if descuento != nil {
		descID, err := uuid.Parse(*descuento.DiscountID)
		if err == nil {
			venta.DescuentoID = &descID
		}
		venta.DescuentoNombre = descuento.DiscountName
		pct := descuento.DiscountPercent
		venta.DescuentoPct = &pct
	}
	for _, l := range lineas {
		venta.Items = append(venta.Items, model.VentaItem{
			TipoItem:       l.tipo,
			ItemID:         l.itemID,
			Descripcion:    l.descripcion,
			Cantidad:       l.cantidad,
			PrecioUnitario: l.precio,
			Subtotal:       l.precio * int64(l.cantidad),
		})
	}
	return venta
}

// aplicarSuscripcion runs inside the sale transaction: an active subscription
// is extended from max(now, fechaFin); otherwise a new one starts now. Either
// way VentaID is repointed at this sale so a later approved void cancels
// exactly the period it paid for.
func (s *ventaService) aplicarSuscripcion(ctx context.Context, tx *gorm.DB, venta *model.Venta, perfilID uuid.UUID, plan *model.Plan, ahora time.Time) (*model.Suscripcion, bool, error) {
	activa, err := s.suscripciones.FindActivaPorPerfil(ctx, perfilID)
	if err == nil {
		base := ahora
		if activa.FechaFin.After(base) {
			base = activa.FechaFin
		}
		activa.FechaFin = base.AddDate(0, 0, plan.DuracionDias)
		activa.PlanID = plan.ID
		activa.VentaID = &venta.ID
		if err := s.suscripciones.UpdateTx(tx, activa); err != nil {
			return nil, false, err
		}
		return activa, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	nueva := &model.Suscripcion{
		PerfilID:    perfilID,
		PlanID:      plan.ID,
		VentaID:     &venta.ID,
		Estado:      model.SuscripcionActive,
		FechaInicio: ahora,
		FechaFin:    ahora.AddDate(0, 0, plan.DuracionDias),
	}
	if err := s.suscripciones.CreateTx(tx, nueva); err != nil {
		return nil, false, err
	}
	return nueva, false, nil
}

// enviarBoletaEmail fires the receipt email without blocking the sale
// response. Failures are logged, never surfaced: the sale already committed.
func (s *ventaService) enviarBoletaEmail(venta *model.Venta, perfil *model.Perfil) {
	if s.mailer == nil || perfil == nil || perfil.Email == nil || *perfil.Email == "" {
		return
	}
	destino := *perfil.Email
	go func() {
		path, err := infra.GenerateBoletaPDF(venta, s.cfg.PDFStoragePath)
		if err != nil {
			log.Error().Err(err).Str("boleta", venta.NumeroBoleta).Msg("no se pudo generar PDF de boleta")
			return
		}
		asunto := "Boleta " + venta.NumeroBoleta + " — Gimnasio Titanium"
		cuerpo := "Adjuntamos la boleta de su compra. ¡Gracias por preferirnos!"
		if err := s.mailer.SendBoleta(destino, asunto, cuerpo, path); err != nil {
			log.Error().Err(err).Str("boleta", venta.NumeroBoleta).Msg("no se pudo enviar boleta por email")
		}
	}()
}

func (s *ventaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.ventas.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("venta no encontrada")
	}
	return toVentaResponse(venta), nil
}

func (s *ventaService) Historial(ctx context.Context, filter dto.HistorialVentasFilter) (*dto.VentaListResponse, error) {
	// History is cut on the receipt day, same zone as the numbering itself.
	if filter.Fecha == "" {
		filter.FechaBoleta = fechaBoleta(time.Now())
	} else {
		dia, err := time.ParseInLocation("2006-01-02", filter.Fecha, zonaChile)
		if err != nil {
			return nil, apierror.Validacion("date debe tener formato YYYY-MM-DD")
		}
		filter.FechaBoleta = fechaBoleta(dia)
	}
	ventas, total, err := s.ventas.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		data = append(data, *toVentaResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *ventaService) BoletaPDF(ctx context.Context, id uuid.UUID) (string, error) {
	venta, err := s.ventas.FindByID(ctx, id)
	if err != nil {
		return "", apierror.NoEncontrado("venta no encontrada")
	}
	return infra.GenerateBoletaPDF(venta, s.cfg.PDFStoragePath)
}

func toVentaResponse(v *model.Venta) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:            v.ID.String(),
		ReceiptNumber: v.NumeroBoleta,
		Status:        v.Estado,
		PaymentMethod: v.MetodoPago,
		Total:         v.Total,
		Notes:         v.Observaciones,
		CreatedAt:     v.CreatedAt.In(zonaChile).Format(time.RFC3339),
	}
	if v.PerfilID != nil {
		id := v.PerfilID.String()
		resp.UserID = &id
	}
	if v.DescuentoPct != nil {
		resp.Discount = &dto.DescuentoAplicadoResponse{
			DiscountPercent: *v.DescuentoPct,
			DiscountName:    v.DescuentoNombre,
		}
		if v.DescuentoID != nil {
			id := v.DescuentoID.String()
			resp.Discount.DiscountID = &id
		}
	}
	for _, item := range v.Items {
		resp.Items = append(resp.Items, dto.VentaItemResponse{
			Type:        item.TipoItem,
			ItemID:      item.ItemID.String(),
			Description: item.Descripcion,
			Quantity:    item.Cantidad,
			UnitPrice:   item.PrecioUnitario,
			Subtotal:    item.Subtotal,
		})
	}
	return resp
}

func toSuscripcionResponse(s *model.Suscripcion, planNombre string, renovada bool) *dto.SuscripcionResponse {
	return &dto.SuscripcionResponse{
		ID:        s.ID.String(),
		PlanID:    s.PlanID.String(),
		PlanName:  planNombre,
		Status:    s.Estado,
		StartDate: s.FechaInicio.In(zonaChile).Format("2006-01-02"),
		EndDate:   s.FechaFin.In(zonaChile).Format("2006-01-02"),
		Renewed:   renovada,
	}
}
