package checkout

import (
	"net/http"

	"github.com/prasetyoadi/umkm-storefront/api/middleware"
	"github.com/prasetyoadi/umkm-storefront/api/responses"
	"github.com/prasetyoadi/umkm-storefront/internal/cart"
	checkoutsvc "github.com/prasetyoadi/umkm-storefront/internal/checkout"
	"github.com/prasetyoadi/umkm-storefront/pkg/logger"
)

func Capabilities(svc *checkoutsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{
			"capabilities": svc.Capabilities(),
			"state":        svc.StateOf(middleware.SessionID(r.Context())),
		})
	}
}

// BuildLink assembles the order and returns the WhatsApp deep link. Refused
// until a positive shipping quote has been taken for this session.
func BuildLink(svc *checkoutsvc.Service, carts *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionID(ctx)
		store := carts.Get(ctx, sessionID)

		link, data, err := svc.BuildLink(ctx, sessionID, store)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"whatsapp_url": link,
			"order":        data,
		})
	}
}

// GenerateInvoice renders the invoice image for the session's order and holds
// it server-side for dispatch.
func GenerateInvoice(svc *checkoutsvc.Service, carts *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := middleware.SessionID(ctx)
		store := carts.Get(ctx, sessionID)

		data, err := svc.GenerateInvoice(ctx, sessionID, store)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"order": data,
			"state": svc.StateOf(sessionID),
		})
	}
}

// Download streams the held invoice PNG as an attachment.
func Download(svc *checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		result, err := svc.Dispatch(ctx, middleware.SessionID(ctx), checkoutsvc.ActionDownload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		w.Header().Set("Content-Type", result.MimeType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
		w.WriteHeader(http.StatusOK)
		w.Write(result.PNG)
	}
}

// Copy hands back the invoice as a base64 payload plus the follow-up message
// the customer pastes into WhatsApp.
func Copy(svc *checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return dispatchJSON(svc, logg, checkoutsvc.ActionCopy)
}

// Share hands back the invoice payload for a direct share to WhatsApp.
func Share(svc *checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return dispatchJSON(svc, logg, checkoutsvc.ActionShare)
}

func dispatchJSON(svc *checkoutsvc.Service, logg *logger.Logger, action checkoutsvc.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		result, err := svc.Dispatch(ctx, middleware.SessionID(ctx), action)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"action":   result.Action,
			"state":    result.State,
			"filename": result.Filename,
			"mime":     result.MimeType,
			"payload":  result.Payload,
			"message":  result.Message,
		})
	}
}

// Dismiss drops the held invoice and returns the session to idle. The
// shipping quote survives so the invoice can be regenerated.
func Dismiss(svc *checkoutsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionID(r.Context())
		svc.Dismiss(sessionID)
		responses.WriteSuccess(w, map[string]any{"state": svc.StateOf(sessionID)})
	}
}

// Reset clears the session's quote and invoice state. Called when the cart
// is reopened so a stale quote cannot price a changed cart.
func Reset(svc *checkoutsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionID(r.Context())
		svc.Reset(sessionID)
		responses.WriteSuccess(w, map[string]any{"state": svc.StateOf(sessionID)})
	}
}
