package dto

import "tenaypos/internal/model"

type UpdateStoreConfigRequest struct {
	StoreName    *string `json:"store_name"    validate:"omitempty,min=2"`
	Address      *string `json:"address"`
	Phone        *string `json:"phone"`
	TaxID        *string `json:"tax_id"`
	TicketFooter *string `json:"ticket_footer"`
}

type StoreConfigResponse struct {
	StoreName    string  `json:"store_name"`
	Address      *string `json:"address,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	TaxID        *string `json:"tax_id,omitempty"`
	TicketFooter string  `json:"ticket_footer"`
}

func StoreConfigFromModel(c *model.StoreConfig) StoreConfigResponse {
	return StoreConfigResponse{
		StoreName:    c.StoreName,
		Address:      c.Address,
		Phone:        c.Phone,
		TaxID:        c.TaxID,
		TicketFooter: c.TicketFooter,
	}
}
