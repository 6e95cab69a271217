package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/request"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/model"
)

// ValidMovementType contains the allowed movement type values.
var ValidMovementType = map[string]bool{
	model.MovementBuy: true, model.MovementSell: true,
}

const maxNoteLen = 500

func positiveQuantity(f fieldErrors, q float64) {
	if math.IsNaN(q) || math.IsInf(q, 0) || q <= 0 {
		f["quantity"] = "quantity must be positive"
	}
}

func securityRef(f fieldErrors, id, name string) {
	switch {
	case id != "":
		f.uuid("securityId", id)
	case strings.TrimSpace(name) == "":
		f["securityId"] = "securityId or securityName is required"
	case len(name) > 150:
		f["securityName"] = "securityName must be 150 characters or less"
	}
}

// ValidateCreateMovement validates a movement creation request.
//
// Required fields:
//   - clientId, portfolioId: valid UUIDs
//   - securityId (UUID) or securityName
//   - type: buy or sell
//   - date: YYYY-MM-DD or RFC3339
//   - quantity: strictly positive
//
// unitPrice, when given, must not be negative.
func ValidateCreateMovement(req request.CreateMovementRequest) error {
	errs := fieldErrors{}

	errs.uuid("clientId", req.ClientID)
	errs.uuid("portfolioId", req.PortfolioID)
	securityRef(errs, req.SecurityID, req.SecurityName)

	if strings.TrimSpace(req.Type) == "" {
		errs["type"] = "type is required"
	} else if !ValidMovementType[req.Type] {
		errs["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	errs.date("date", req.Date, true)
	positiveQuantity(errs, req.Quantity)

	if req.UnitPrice != nil && *req.UnitPrice < 0 {
		errs["unitPrice"] = "unitPrice must not be negative"
	}
	errs.text("note", req.Note, false, maxNoteLen)

	return errs.err()
}

// ValidateUpdateMovement validates a movement update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateMovement(req request.UpdateMovementRequest) error {
	errs := fieldErrors{}

	if req.Type != nil && !ValidMovementType[*req.Type] {
		errs["type"] = fmt.Sprintf("invalid type: %s", *req.Type)
	}
	if req.Date != nil {
		errs.date("date", *req.Date, true)
	}
	if req.Quantity != nil {
		positiveQuantity(errs, *req.Quantity)
	}
	if req.UnitPrice != nil && *req.UnitPrice < 0 {
		errs["unitPrice"] = "unitPrice must not be negative"
	}
	if req.Note != nil {
		errs.text("note", *req.Note, false, maxNoteLen)
	}

	return errs.err()
}

// ValidateSellCheck validates a sell validation request. Date is optional.
func ValidateSellCheck(req request.ValidateSellRequest) error {
	errs := fieldErrors{}

	errs.uuid("clientId", req.ClientID)
	errs.uuid("portfolioId", req.PortfolioID)
	securityRef(errs, req.SecurityID, req.SecurityName)
	positiveQuantity(errs, req.Quantity)
	errs.date("date", req.Date, false)

	return errs.err()
}
