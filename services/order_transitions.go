package services

import (
	"gorm.io/gorm"
)

// ----- Seller actions -----

func (s *OrderService) SellerMarkPaid(userID, orderID uint) error {
	return s.sellerMove(userID, orderID, s.Status.Pending, s.Status.Paid)
}

func (s *OrderService) SellerDeliver(userID, orderID uint) error {
	return s.sellerMove(userID, orderID, s.Status.Paid, s.Status.Delivered)
}

func (s *OrderService) SellerCancel(userID, orderID uint) error {
	return s.sellerMove(userID, orderID, s.Status.Pending, s.Status.Cancelled)
}

func (s *OrderService) sellerMove(userID, orderID, from, to uint) error {
	o, err := s.DetailForSeller(userID, orderID)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, from, to)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInvalidTransition
		}
		if to == s.Status.Paid {
			return s.Repo.MarkPaid(tx, o.ID, "", s.Now())
		}
		return nil
	})
}
