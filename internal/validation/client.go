package validation

import (
	"net/mail"
	"strings"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/request"
)

func feePercent(errs fieldErrors, fee float64) {
	if fee < 0 || fee > 100 {
		errs["feePercent"] = "feePercent must be between 0 and 100"
	}
}

func email(errs fieldErrors, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		errs["email"] = "email is not a valid address"
	}
}

func ValidateCreateClient(req request.CreateClientRequest) error {
	errs := fieldErrors{}

	errs.text("name", req.Name, true, 150)
	errs.text("serviceType", req.ServiceType, false, 50)
	errs.text("riskProfile", req.RiskProfile, false, 30)
	errs.text("phone", req.Phone, false, 50)
	errs.text("comments", req.Comments, false, 2000)
	email(errs, req.Email)
	feePercent(errs, req.FeePercent)

	return errs.err()
}

func ValidateUpdateClient(req request.UpdateClientRequest) error {
	errs := fieldErrors{}

	if req.Name != nil {
		errs.text("name", *req.Name, true, 150)
	}
	if req.ServiceType != nil {
		errs.text("serviceType", *req.ServiceType, false, 50)
	}
	if req.RiskProfile != nil {
		errs.text("riskProfile", *req.RiskProfile, false, 30)
	}
	if req.Phone != nil {
		errs.text("phone", *req.Phone, false, 50)
	}
	if req.Comments != nil {
		errs.text("comments", *req.Comments, false, 2000)
	}
	if req.Email != nil {
		email(errs, *req.Email)
	}
	if req.FeePercent != nil {
		feePercent(errs, *req.FeePercent)
	}

	return errs.err()
}
