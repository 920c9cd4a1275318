package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/ledgersync/internal/pkg/logger"
	"github.com/piresc/ledgersync/internal/pkg/models"
	nrpkg "github.com/piresc/ledgersync/internal/pkg/newrelic"
	"github.com/piresc/ledgersync/internal/utils"
	"github.com/piresc/ledgersync/services/ledger"
)

// TransferHandler handles HTTP requests for transfers
type TransferHandler struct {
	transferUC ledger.TransferUC
}

// NewTransferHandler creates a new transfer HTTP handler
func NewTransferHandler(transferUC ledger.TransferUC) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

func userID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}

// errorResponse maps use case errors to HTTP statuses
func errorResponse(c echo.Context, action string, err error) error {
	nrpkg.NoticeTransactionError(nrpkg.FromEchoContext(c), err)

	switch {
	case errors.Is(err, ledger.ErrInvalidTransfer):
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, ledger.ErrConflict):
		return utils.ConflictResponse(c, err.Error())
	case errors.Is(err, ledger.ErrForbidden):
		return utils.ForbiddenResponse(c, "Transaction belongs to other users")
	case errors.Is(err, ledger.ErrNotFound):
		return utils.NotFoundResponse(c, "Transaction not found")
	}

	logger.ErrorCtx(c.Request().Context(), "Failed to "+action,
		logger.String("user_id", userID(c)),
		logger.Err(err))
	return utils.InternalServerErrorResponse(c, "Failed to "+action)
}

// CreateTransfer accepts an off-chain transfer from the authenticated user
func (h *TransferHandler) CreateTransfer(c echo.Context) error {
	var req models.TransferRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	req.SenderID = userID(c)
	if req.SenderID == "" {
		return utils.UnauthorizedResponse(c, "")
	}

	tx, err := h.transferUC.CreateTransfer(c.Request().Context(), req)
	if err != nil {
		return errorResponse(c, "create transfer", err)
	}
	return utils.SuccessResponse(c, http.StatusAccepted, "Transfer accepted", tx)
}

// SubmitChainTransfer records a transaction hash the user broadcast to the curation contract
func (h *TransferHandler) SubmitChainTransfer(c echo.Context) error {
	var req models.ChainTransferRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	req.SenderID = userID(c)
	if req.SenderID == "" {
		return utils.UnauthorizedResponse(c, "")
	}
	nrpkg.AddTransactionAttribute(nrpkg.FromEchoContext(c), "tx.hash", req.TxHash)

	tx, err := h.transferUC.SubmitChainTransfer(c.Request().Context(), req)
	if err != nil {
		return errorResponse(c, "submit chain transfer", err)
	}
	return utils.SuccessResponse(c, http.StatusAccepted, "Chain transfer submitted", tx)
}

// GetTransaction returns one of the caller's transactions
func (h *TransferHandler) GetTransaction(c echo.Context) error {
	txID := c.Param("id")
	if txID == "" {
		return utils.BadRequestResponse(c, "Transaction ID is required")
	}

	tx, err := h.transferUC.GetTransaction(c.Request().Context(), userID(c), txID)
	if err != nil {
		return errorResponse(c, "get transaction", err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "", tx)
}
