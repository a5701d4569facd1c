package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/srmendes/dashboard/internal/entity"
)

// GenericSaveError is shown when the backend failed without a usable
// message of its own.
const GenericSaveError = "Erro ao salvar. Tente novamente."

type ErrorResponse struct {
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
}

func SendJSONErr(ctx context.Context, w http.ResponseWriter, code int, originErr error, msgToSend string) {
	description := ""
	if originErr != nil {
		description = originErr.Error()
		slog.ErrorContext(ctx, "api error", "error", description)
	}

	SendJSON(ctx, w, code, ErrorResponse{Message: msgToSend, Description: description})
}

func SendJSON(ctx context.Context, w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		code = http.StatusInternalServerError
		http.Error(w, http.StatusText(code), code)

		slog.ErrorContext(ctx, "encode response", "error", err)
	}
}

// errStatus maps data-layer errors onto the status and user-facing message
// the SPA renders. Backend statuses pass through; everything unexpected is
// a bad gateway with the generic message.
func errStatus(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrUnsupported):
		return http.StatusNotImplemented, "Edição de agendamento ainda não disponível"
	case errors.Is(err, entity.ErrInvalidArgument):
		return http.StatusBadRequest, "Dados inválidos"
	case errors.Is(err, entity.ErrTimeout):
		return http.StatusGatewayTimeout, "O servidor demorou para responder"
	}

	var httpErr *entity.HTTPError
	if errors.As(err, &httpErr) {
		msg := httpErr.Message
		if msg == "" {
			msg = GenericSaveError
		}

		return httpErr.Status, msg
	}

	if errors.Is(err, entity.ErrNotFound) {
		return http.StatusNotFound, "Registro não encontrado"
	}

	return http.StatusBadGateway, GenericSaveError
}
