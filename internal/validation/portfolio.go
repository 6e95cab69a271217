package validation

import (
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api/request"
)

func ValidateCreatePortfolio(req request.CreatePortfolioRequest) error {
	errs := fieldErrors{}

	errs.uuid("clientId", req.ClientID)
	errs.text("name", req.Name, true, 100)
	errs.text("targetPeriod", req.TargetPeriod, false, 50)

	return errs.err()
}

func ValidateUpdatePortfolio(req request.UpdatePortfolioRequest) error {
	errs := fieldErrors{}

	// Only validate provided fields
	if req.Name != nil {
		errs.text("name", *req.Name, true, 100)
	}
	if req.TargetPeriod != nil {
		errs.text("targetPeriod", *req.TargetPeriod, false, 50)
	}

	return errs.err()
}

func ValidateResolveSecurity(req request.ResolveSecurityRequest) error {
	errs := fieldErrors{}
	errs.text("name", req.Name, true, 150)
	return errs.err()
}
