package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RowdyKGZ/python12-shop/internal/api/dto"
	"github.com/RowdyKGZ/python12-shop/internal/domain/model"
	"github.com/RowdyKGZ/python12-shop/internal/service"
	"github.com/RowdyKGZ/python12-shop/internal/util"
	"github.com/RowdyKGZ/python12-shop/pkg/api"
	"github.com/RowdyKGZ/python12-shop/pkg/apperr"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{
		orderService: orderService,
	}
}

// convertOrderToDTO 需要OrderItems連同Product一起預載
func convertOrderToDTO(order *model.Order, total decimal.Decimal) dto.OrderDTO {
	items := make([]dto.OrderItemDTO, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, dto.OrderItemDTO{
			OrderItemID: item.OrderItemID,
			ProductID:   item.ProductID,
			Title:       item.Product.Title,
			Price:       item.Product.Price,
			Quantity:    item.Quantity,
		})
	}
	return dto.OrderDTO{
		OrderID:   order.OrderID,
		UserID:    order.UserID,
		Status:    string(order.Status),
		TotalSum:  order.TotalSum,
		Total:     total,
		CreatedAt: order.CreatedAt,
		Items:     items,
	}
}

// @Summary create order
// @use create an empty open order for the caller
// @Tags order
// @Accept json
// @Produce json
// @Success 200 {object} api.Response{data=dto.OrderDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := util.GetActorFromContext(ctx)

	order, err := h.orderService.CreateOrder(ctx, actor)
	if err != nil {
		if appErr, ok := err.(*apperr.AppError); ok {
			api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		} else {
			api.ErrorJSON(w, int(apperr.InternalErrorCode), err, apperr.ErrStrMap[apperr.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertOrderToDTO(order, decimal.NewFromInt(0)), nil)
}

// @Summary list orders
// @use list caller's orders newest first, admin sees all
// @Tags order
// @Accept json
// @Produce json
// @Success 200 {object} api.Response{data=[]dto.OrderDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /orders [get]
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := util.GetActorFromContext(ctx)

	orders, err := h.orderService.ListOrders(ctx, actor)
	if err != nil {
		if appErr, ok := err.(*apperr.AppError); ok {
			api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		} else {
			api.ErrorJSON(w, int(apperr.InternalErrorCode), err, apperr.ErrStrMap[apperr.InternalErrorCode])
		}
		return
	}

	orderDTOs := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		// 列表用預載品項即時計算, 避免逐筆查詢
		orderDTOs = append(orderDTOs, convertOrderToDTO(&orders[i], orders[i].Total()))
	}

	api.SuccessJSON(w, orderDTOs, nil)
}

// @Summary get order
// @use get one order, owner or admin only, total is computed at read time
// @Tags order
// @Accept json
// @Produce json
// @Param id path int true "order id"
// @Success 200 {object} api.Response{data=dto.OrderDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseIDParam(r, "id")
	if err != nil {
		appErr := err.(*apperr.AppError)
		api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		return
	}

	ctx := r.Context()
	actor := util.GetActorFromContext(ctx)

	order, total, err := h.orderService.GetOrder(ctx, actor, orderID)
	if err != nil {
		if appErr, ok := err.(*apperr.AppError); ok {
			api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		} else {
			api.ErrorJSON(w, int(apperr.InternalErrorCode), err, apperr.ErrStrMap[apperr.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertOrderToDTO(order, total), nil)
}

// @Summary delete order
// @use delete an order, rejected while it still has items
// @Tags order
// @Accept json
// @Produce json
// @Param id path int true "order id"
// @Success 200 {object} api.Response{data=string} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 409 {object} api.ResponseError{data=string} "ConflictCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseIDParam(r, "id")
	if err != nil {
		appErr := err.(*apperr.AppError)
		api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		return
	}

	ctx := r.Context()
	actor := util.GetActorFromContext(ctx)

	if err := h.orderService.DeleteOrder(ctx, actor, orderID); err != nil {
		if appErr, ok := err.(*apperr.AppError); ok {
			api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		} else {
			api.ErrorJSON(w, int(apperr.InternalErrorCode), err, apperr.ErrStrMap[apperr.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, nil, nil)
}

// @Summary add order item
// @use add one line item to an open order, quantity defaults to 1
// @Tags order
// @Accept json
// @Produce json
// @Param id path int true "order id"
// @Param item body dto.AddOrderItemDTO true "product and quantity"
// @Success 200 {object} api.Response{data=dto.OrderItemDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /orders/{id}/items [post]
func (h *OrderHandler) AddOrderItem(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseIDParam(r, "id")
	if err != nil {
		appErr := err.(*apperr.AppError)
		api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		return
	}

	var addDTO dto.AddOrderItemDTO
	if err := json.NewDecoder(r.Body).Decode(&addDTO); err != nil {
		api.ErrorJSON(w, int(apperr.BadRequestCode), err, apperr.ErrStrMap[apperr.BadRequestCode])
		return
	}

	quantity := 1
	if addDTO.Quantity != nil {
		quantity = *addDTO.Quantity
	}

	ctx := r.Context()
	actor := util.GetActorFromContext(ctx)

	item, err := h.orderService.AddOrderItem(ctx, actor, orderID, addDTO.ProductID, quantity)
	if err != nil {
		if appErr, ok := err.(*apperr.AppError); ok {
			api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		} else {
			api.ErrorJSON(w, int(apperr.InternalErrorCode), err, apperr.ErrStrMap[apperr.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, dto.OrderItemDTO{
		OrderItemID: item.OrderItemID,
		ProductID:   item.ProductID,
		Quantity:    item.Quantity,
	}, nil)
}

// @Summary remove order item
// @use remove one line item from an open order
// @Tags order
// @Accept json
// @Produce json
// @Param id path int true "order id"
// @Param item_id path int true "order item id"
// @Success 200 {object} api.Response{data=string} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /orders/{id}/items/{item_id} [delete]
func (h *OrderHandler) RemoveOrderItem(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseIDParam(r, "id")
	if err != nil {
		appErr := err.(*apperr.AppError)
		api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		return
	}
	orderItemID, err := parseIDParam(r, "item_id")
	if err != nil {
		appErr := err.(*apperr.AppError)
		api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		return
	}

	ctx := r.Context()
	actor := util.GetActorFromContext(ctx)

	if err := h.orderService.RemoveOrderItem(ctx, actor, orderID, orderItemID); err != nil {
		if appErr, ok := err.(*apperr.AppError); ok {
			api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		} else {
			api.ErrorJSON(w, int(apperr.InternalErrorCode), err, apperr.ErrStrMap[apperr.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, nil, nil)
}

// @Summary update order status
// @use transition the order status along the state machine
// @Tags order
// @Accept json
// @Produce json
// @Param id path int true "order id"
// @Param status body dto.UpdateOrderStatusDTO true "target status"
// @Success 200 {object} api.Response{data=dto.OrderDTO} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 404 {object} api.ResponseError{data=string} "NotFoundCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /orders/{id}/status [patch]
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseIDParam(r, "id")
	if err != nil {
		appErr := err.(*apperr.AppError)
		api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		return
	}

	var statusDTO dto.UpdateOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&statusDTO); err != nil {
		api.ErrorJSON(w, int(apperr.BadRequestCode), err, apperr.ErrStrMap[apperr.BadRequestCode])
		return
	}

	ctx := r.Context()
	actor := util.GetActorFromContext(ctx)

	order, err := h.orderService.SetOrderStatus(ctx, actor, orderID, model.OrderStatus(statusDTO.Status))
	if err != nil {
		if appErr, ok := err.(*apperr.AppError); ok {
			api.ErrorJSON(w, int(appErr.Code), appErr, apperr.ErrStrMap[appErr.Code])
		} else {
			api.ErrorJSON(w, int(apperr.InternalErrorCode), err, apperr.ErrStrMap[apperr.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertOrderToDTO(order, order.Total()), nil)
}
