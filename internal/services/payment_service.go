package services

import (
	"fmt"
	"log"
	"time"

	"food_delivery/internal/models"
	"food_delivery/internal/repository"
)

// PaymentService is a mock payment processor: every payment "succeeds".
// It keeps the wire shape of a real provider so the client flow does not
// change when one is plugged in.
type PaymentService interface {
	CreatePayment(orderID, userID uint) (*models.Payment, error)
	CheckStatus(paymentID string) (*models.Payment, error)
	CancelPayment(paymentID string) (*models.Payment, error)
}

type paymentService struct {
	paymentRepo   repository.PaymentRepository
	orderRepo     repository.OrderRepository
	clientBaseURL string
}

func NewPaymentService(paymentRepo repository.PaymentRepository, orderRepo repository.OrderRepository, clientBaseURL string) PaymentService {
	return &paymentService{paymentRepo: paymentRepo, orderRepo: orderRepo, clientBaseURL: clientBaseURL}
}

func (s *paymentService) CreatePayment(orderID, userID uint) (*models.Payment, error) {
	order, err := s.orderRepo.GetByIDForUser(orderID, userID)
	if err != nil {
		return nil, err
	}

	paymentID := fmt.Sprintf("mock_%d_%d", order.ID, time.Now().Unix())
	payment := &models.Payment{
		OrderID:         order.ID,
		PaymentID:       paymentID,
		Amount:          order.TotalAmount,
		Currency:        "RUB",
		Status:          string(models.PaymentPending),
		Description:     fmt.Sprintf("Оплата заказа #%d", order.ID),
		ConfirmationURL: fmt.Sprintf("%s/orders?payment_id=%s&status=success", s.clientBaseURL, paymentID),
		IsTest:          true,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	log.Printf("Mock payment created: %s for order %d, amount %g", paymentID, order.ID, payment.Amount)
	return payment, nil
}

// CheckStatus always reports success and moves the paid order to confirmed.
func (s *paymentService) CheckStatus(paymentID string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByPaymentID(paymentID)
	if err != nil {
		return nil, err
	}

	if payment.Status == string(models.PaymentPending) {
		payment.Status = string(models.PaymentSucceeded)
		if err := s.paymentRepo.Update(payment); err != nil {
			return nil, err
		}

		order, err := s.orderRepo.GetByID(payment.OrderID)
		if err == nil && order.Status == string(models.OrderPending) {
			order.Status = string(models.OrderConfirmed)
			if err := s.orderRepo.Update(order); err != nil {
				log.Printf("Warning: failed to confirm paid order %d: %v", order.ID, err)
			}
		}
	}
	return payment, nil
}

func (s *paymentService) CancelPayment(paymentID string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByPaymentID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status == string(models.PaymentPending) {
		payment.Status = string(models.PaymentCanceled)
		if err := s.paymentRepo.Update(payment); err != nil {
			return nil, err
		}
	}
	return payment, nil
}
