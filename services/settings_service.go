package services

import (
	"errors"

	"github.com/amrkal/moringa-backend/entity"
	"github.com/amrkal/moringa-backend/repository"
)

var ErrBadTaxRate = errors.New("tax rate must be between 0 and 1")

type SettingsService struct {
	Repo *repository.SettingsRepository
}

func NewSettingsService(repo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{Repo: repo}
}

func (s *SettingsService) Get() (*entity.Settings, error) {
	return s.Repo.Get()
}

type UpdateSettingsIn struct {
	DeliveryFee int64   `json:"deliveryFee"`
	TaxRate     float64 `json:"taxRate"`
	Currency    string  `json:"currency"`

	AcceptDelivery bool `json:"acceptDelivery"`
	AcceptDineIn   bool `json:"acceptDineIn"`
	AcceptTakeaway bool `json:"acceptTakeaway"`

	AcceptCash        bool `json:"acceptCash"`
	AcceptCard        bool `json:"acceptCard"`
	AcceptMobileMoney bool `json:"acceptMobileMoney"`
}

func (s *SettingsService) Update(in *UpdateSettingsIn) (*entity.Settings, error) {
	if in.TaxRate < 0 || in.TaxRate >= 1 {
		return nil, ErrBadTaxRate
	}

	cur, err := s.Repo.Get()
	if err != nil {
		return nil, err
	}

	cur.DeliveryFee = in.DeliveryFee
	cur.TaxRate = in.TaxRate
	if in.Currency != "" {
		cur.Currency = in.Currency
	}
	cur.AcceptDelivery = in.AcceptDelivery
	cur.AcceptDineIn = in.AcceptDineIn
	cur.AcceptTakeaway = in.AcceptTakeaway
	cur.AcceptCash = in.AcceptCash
	cur.AcceptCard = in.AcceptCard
	cur.AcceptMobileMoney = in.AcceptMobileMoney

	if err := s.Repo.Update(cur); err != nil {
		return nil, err
	}
	return cur, nil
}
