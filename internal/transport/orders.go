package transport

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"kebab-sayank-be/internal/auth"
	"kebab-sayank-be/internal/logger"
	"kebab-sayank-be/internal/messaging"
	"kebab-sayank-be/internal/order"
	"kebab-sayank-be/internal/receipt"
	"kebab-sayank-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderHandler serves the order endpoints that are plain downloads or links
// rather than GraphQL.
type OrderHandler struct {
	Orders         order.Service
	Store          receipt.Store
	WhatsAppNumber string
}

// Receipt stamps the order as printed and returns the HTML receipt as an
// attachment.
func (h *OrderHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.For(ctx, "transport", "Receipt")

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "ID tidak valid", http.StatusBadRequest)
		return
	}

	o, err := h.Orders.MarkPrinted(ctx, auth.SessionFrom(ctx), id)
	if err != nil {
		h.fail(w, log, err)
		return
	}

	page, err := receipt.RenderHTML(o, h.Store)
	if err != nil {
		h.fail(w, log, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, receipt.Filename(o)))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, page)

	log.Info("receipt downloaded", zap.Int64("order_number", o.OrderNumber))
}

type whatsAppResponse struct {
	Link    string `json:"link"`
	Message string `json:"message"`
}

// WhatsApp returns the wa.me link that shares the receipt with the store.
func (h *OrderHandler) WhatsApp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.For(ctx, "transport", "WhatsApp")

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "ID tidak valid", http.StatusBadRequest)
		return
	}

	o, err := h.Orders.Get(ctx, auth.SessionFrom(ctx), id)
	if err != nil {
		h.fail(w, log, err)
		return
	}

	msg := messaging.ReceiptMessage(o)
	link, err := messaging.WhatsAppLink(h.WhatsAppNumber, msg)
	if err != nil {
		h.fail(w, log, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, whatsAppResponse{Link: link, Message: msg})
}

func (h *OrderHandler) fail(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, auth.ErrForbidden):
		utils.WriteJSONError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, order.ErrOrderNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, receipt.ErrCancelledOrder),
		errors.Is(err, receipt.ErrIncompleteOrder):
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)
	default:
		log.Error("order request failed", zap.Error(err))
		utils.WriteJSONError(w, order.ErrRemoteStoreUnavailable.Error(), http.StatusInternalServerError)
	}
}
