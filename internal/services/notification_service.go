package services

import (
	"fmt"
	"log"

	"food_delivery/internal/models"
	"food_delivery/internal/repository"
	"food_delivery/pkg/mailer"
	"food_delivery/pkg/telegram"
)

// NotificationService fans order events out to Telegram and email.
// Every method is best-effort: failures are logged and swallowed so a
// slow or broken provider can never fail a committed order operation.
type NotificationService interface {
	NotifyOrderCreated(order *models.Order)
	NotifyStatusChange(order *models.Order)
}

type notificationService struct {
	userRepo repository.UserRepository
	tg       *telegram.Client
	mail     *mailer.Mailer
}

func NewNotificationService(userRepo repository.UserRepository, tg *telegram.Client, mail *mailer.Mailer) NotificationService {
	return &notificationService{userRepo: userRepo, tg: tg, mail: mail}
}

func (s *notificationService) NotifyOrderCreated(order *models.Order) {
	text := fmt.Sprintf(
		"Новый заказ #%d\nСумма: %g₽\nАдрес: %s\nТелефон: %s",
		order.ID, order.TotalAmount, order.DeliveryAddress, order.DeliveryPhone,
	)

	admins, err := s.userRepo.GetOnlineAdmins()
	if err != nil {
		log.Printf("Warning: failed to load online admins: %v", err)
	}
	for _, admin := range admins {
		if err := s.tg.NotifyAdmin(admin.TelegramUserID, text); err != nil {
			log.Printf("Warning: admin notify error (user %d): %v", admin.ID, err)
		}
	}

	couriers, err := s.userRepo.GetOnlineCouriers()
	if err != nil {
		log.Printf("Warning: failed to load online couriers: %v", err)
	}
	for _, courier := range couriers {
		if err := s.tg.NotifyCourier(courier.TelegramUserID, text); err != nil {
			log.Printf("Warning: courier notify error (user %d): %v", courier.ID, err)
		}
	}
}

func (s *notificationService) NotifyStatusChange(order *models.Order) {
	user, err := s.userRepo.GetByID(order.UserID)
	if err != nil {
		log.Printf("Warning: failed to load order owner %d: %v", order.UserID, err)
		return
	}

	text := fmt.Sprintf(
		"Статус вашего заказа #%d: %s\nСумма: %g₽",
		order.ID, order.StatusLabel(), order.TotalAmount,
	)

	if user.TelegramUserID != "" {
		if err := s.tg.NotifyClient(user.TelegramUserID, text); err != nil {
			log.Printf("Warning: client notify error (order %d): %v", order.ID, err)
		}
	}

	if s.mail != nil && s.mail.Enabled() && user.Email != "" {
		subject := fmt.Sprintf("Заказ #%d: %s", order.ID, order.StatusLabel())
		if err := s.mail.Send(user.Email, subject, text); err != nil {
			log.Printf("Warning: email notify error (order %d): %v", order.ID, err)
		}
	}
}
